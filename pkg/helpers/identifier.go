package helpers

import (
	"crypto/rand"
	"encoding/base64"
)

const memberIDLen = 64

// memberIDAlphabet keeps member IDs uppercase alphanumeric so they survive
// case-insensitive stores and URLs untouched.
const memberIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewMemberID generates the opaque 64-character member key assigned at
// registration. It is never derived from the email or username.
func NewMemberID() (string, error) {
	b := make([]byte, memberIDLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = memberIDAlphabet[int(b[i])%len(memberIDAlphabet)]
	}
	return string(b), nil
}

// NewVerificationCode generates the one-time code stored against an
// unverified contact and mailed to the member. URL-safe so it can ride in a
// verification link.
func NewVerificationCode() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
