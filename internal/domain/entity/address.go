package entity

import (
	"time"
)

// Address is a physical address owned by a member. Plain CRUD, no
// cross-entity invariants beyond ownership.
type Address struct {
	AddressID       int64
	MemberID        string
	Address1        string
	Address2        string
	Address3        string
	AddressType     string
	PostCode        string
	City            string
	State           string
	RegionalCouncil string
	Country         int
	PublicPrivate   bool
	PostDate        time.Time
}
