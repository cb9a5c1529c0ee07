package service

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is returned when the actor may not perform the operation
	ErrForbidden = errors.New("operation not allowed for this user")

	// ErrInvalidCredentials is returned on a failed login or refresh
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation is returned when request input fails validation
	ErrValidation = errors.New("validation failed")
)
