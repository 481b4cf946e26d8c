package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Member errors
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrCardNotFound   = errors.New("member card not found")
)

// Device integration errors
var (
	ErrDeviceUnavailable = errors.New("device service unavailable")
)
