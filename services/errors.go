package services

import "errors"

// Service-level error taxonomy. Controllers map these onto HTTP statuses;
// anything not listed here is treated as an internal fault.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInput       = errors.New("invalid field value")
	ErrInvalidDateRange   = errors.New("end date must be after start date")
	ErrGroupFull          = errors.New("group event limit reached")
)
