package errors

import "errors"

var (
	// ErrInvalidToken covers malformed, unsigned, expired, or otherwise
	// unverifiable bearer tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden is returned when the caller lacks the privilege for the
	// attempted operation.
	ErrForbidden = errors.New("forbidden")

	// ErrRequestNotFound is returned when a membership request does not
	// exist.
	ErrRequestNotFound = errors.New("membership request not found")

	// ErrRequestDecided is returned when a request was already accepted or
	// rejected.
	ErrRequestDecided = errors.New("membership request already decided")

	// ErrValidation covers syntactically invalid input.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownRole is returned for a role outside the closed role sets.
	ErrUnknownRole = errors.New("unknown role")
)
