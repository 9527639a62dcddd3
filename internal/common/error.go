// Package common defines shared constants and sentinel errors used across
// the Book Review client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrNotFound is returned when the server reports the resource is gone
	// (e.g. a review deleted by another session).
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized covers bad credentials, a missing or expired token,
	// and role mismatches. The client gives these one collapsed channel.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation marks a payload rejected either client-side before any
	// network call or by the server's own validation.
	ErrValidation = errors.New("validation error")

	// ErrUnavailable covers transport failures and server errors.
	ErrUnavailable = errors.New("server unavailable")
)
