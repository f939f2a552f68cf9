package either

import "fmt"

// FromResult converts a (value, error) pair to an Either.
// A non-nil err becomes the Left value. A nil v with a nil err becomes a Left
// holding an error that wraps [ErrInvalidArgument].
func FromResult[T any](v T, err error) Either[error, T] {
	if err != nil {
		return Left[error, T](err)
	}

	e, err := TryRight[error](v)
	if err != nil {
		return Left[error, T](fmt.Errorf("from result: %w", err))
	}

	return e
}

// ToResult is the inverse of [FromResult].
func ToResult[T any](e Either[error, T]) (T, error) {
	if e.side == sideRight {
		return e.right, nil
	}

	var zero T

	return zero, e.left
}
