package model

import "errors"

var (
	// ErrNotFound is returned when an application (or its history) is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when an application with the same ID is already stored.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned for invalid data: bad input, flow definitions
	// or status transitions not allowed by the lifecycle.
	ErrNotValid = errors.New("not valid")
)
