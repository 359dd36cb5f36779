package application

import "errors"

// Workflow-level failures handlers translate into responses. Expected
// absence is reported through these, never by a raw storage error.
var (
	// ErrMemberNotFound covers both "no such member" and "no contact matches
	// that email" during authentication.
	ErrMemberNotFound = errors.New("member not found")
	// ErrNotVerified means the contact matched but has not completed email
	// verification. Distinct from ErrMemberNotFound so callers can say
	// "verify your email" instead of "no such account".
	ErrNotVerified = errors.New("email not verified")
	// ErrCodeNotFound means no contact carries the presented one-time code.
	ErrCodeNotFound = errors.New("verification code not found")
)
