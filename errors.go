package either

import "errors"

var (
	// ErrInvalidArgument is returned when an Either is built from a nil value.
	ErrInvalidArgument = errors.New("either: nil value")
	// ErrNoSuchElement is returned when the value of the inactive variant is requested.
	ErrNoSuchElement = errors.New("either: no such element")
)
