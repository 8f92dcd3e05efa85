// Package domain holds the error kinds shared by every entity package.
// Entity packages wrap these with %w so the HTTP layer can map a whole
// family with one errors.Is check.
package domain

import "errors"

var (
	// ErrNotFound covers missing rows and rows owned by another user.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists covers unique-key conflicts such as a taken email.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation covers rejected input.
	ErrValidation = errors.New("invalid input")
	// ErrUnauthorized is returned when the caller has no valid identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller is known but not allowed.
	ErrForbidden = errors.New("forbidden")
)
