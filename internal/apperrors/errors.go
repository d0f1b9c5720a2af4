// Package apperrors defines the sentinel errors shared by repositories,
// services and handlers. Services wrap these with context via fmt.Errorf and
// %w; handlers map them to HTTP status codes with errors.Is.
package apperrors

import "errors"

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound marks a lookup for an id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a duplicate email or a lost stock race.
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials is returned for any failed login, whether the
	// user is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
