package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks malformed or missing input fields.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a duplicate value of a unique field.
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials is returned by login for an unknown user and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is returned for missing, invalid or revoked session tokens.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrHashing marks an unrecoverable password hashing failure.
	ErrHashing = errors.New("hashing failed")
)
