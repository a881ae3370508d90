package member

import "errors"

var (
	// ErrNotFound is returned when no member matches the lookup.
	ErrNotFound = errors.New("member.not_found")

	// ErrInvalidMember is returned when a member record cannot be stored.
	ErrInvalidMember = errors.New("member.invalid")
)
