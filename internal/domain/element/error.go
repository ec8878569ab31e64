package element

import (
	"errors"
)

var (
	// ErrNotFound is returned when no shared row exists for an id.
	ErrNotFound = errors.New("canvas element not found")

	// ErrDataIntegrity is returned when the shared row exists but its
	// payload row is missing, or an unknown element type is stored.
	// Distinct from ErrNotFound: it signals a broken invariant.
	ErrDataIntegrity = errors.New("canvas element integrity violation")

	// ErrInvalidInput is returned when input fails field constraints.
	// Rejected before any write happens.
	ErrInvalidInput = errors.New("invalid canvas element input")
)
