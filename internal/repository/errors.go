package repository

import "errors"

// Common repository errors
var (
	// ErrRecordNotFound is returned when no record is stored under a name
	ErrRecordNotFound = errors.New("record not found")
)
