package entity

import (
	"time"
)

// Contact types as stored in contacts.contact_type.
const (
	ContactTypeEmail = "Email"
	ContactTypePhone = "Phone"
)

// Contact is a verifiable channel (email/phone) owned by exactly one member.
// Verified only flips to true through the verification flow; an edit that
// changes ContactDetail resets it to false.
type Contact struct {
	ContactID     int64
	MemberID      string
	ContactType   string
	ContactDetail string
	Verified      bool
	Code          string
	PublicPrivate bool
	Notes         string
	PostDate      time.Time
}
