package entity

import (
	"time"
)

// Member statuses as stored in members.status.
const (
	StatusActive    = "Active"
	StatusSuspended = "Suspended"
)

// Member is the aggregate root for the member domain.
// MemberID is an opaque 64-character key generated at registration; it is
// immutable once assigned and is never the email address.
type Member struct {
	MemberID            string
	Username            string
	Name                string
	NameVisible         bool
	NameLast            string
	NameLastVisible     bool
	Status              string
	UserPoints          int
	MemberType          string
	ProfileIntroduction string
	ParentMemberID      string
	PostDate            time.Time
}
