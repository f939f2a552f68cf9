// Package either provides [Either], a value that holds exactly one of two
// variants: Left, conventionally an error or alternative, and Right, the
// primary value.
package either

import (
	"fmt"
	"reflect"
)

type side uint8

const (
	sideLeft side = iota
	sideRight
)

// Either holds exactly one value, either of type L (Left) or of type R (Right).
// The variant is fixed at construction.
//
// The zero value is a Left holding the zero L. Use [Left], [Right] or [Cond]
// to create values.
type Either[L, R any] struct {
	side  side
	left  L
	right R
}

// Right returns the Right variant holding v.
// It panics with [ErrInvalidArgument] if v is nil.
func Right[L, R any](v R) Either[L, R] {
	e, err := TryRight[L](v)
	if err != nil {
		panic(err)
	}

	return e
}

// Left returns the Left variant holding v.
// It panics with [ErrInvalidArgument] if v is nil.
func Left[L, R any](v L) Either[L, R] {
	e, err := TryLeft[L, R](v)
	if err != nil {
		panic(err)
	}

	return e
}

// TryRight is like [Right] but returns an error instead of panicking.
func TryRight[L, R any](v R) (Either[L, R], error) {
	if isAbsent(v) {
		return Either[L, R]{}, fmt.Errorf("right: %w", ErrInvalidArgument)
	}

	//nolint:exhaustruct
	return Either[L, R]{side: sideRight, right: v}, nil
}

// TryLeft is like [Left] but returns an error instead of panicking.
func TryLeft[L, R any](v L) (Either[L, R], error) {
	if isAbsent(v) {
		return Either[L, R]{}, fmt.Errorf("left: %w", ErrInvalidArgument)
	}

	//nolint:exhaustruct
	return Either[L, R]{side: sideLeft, left: v}, nil
}

// Cond returns Right(right) if predicate is true, otherwise Left(left).
// Both values are evaluated by the caller, see [CondFunc] for the lazy form.
func Cond[L, R any](predicate bool, right R, left L) Either[L, R] {
	if predicate {
		return Right[L](right)
	}

	return Left[L, R](left)
}

// CondFunc is the lazy form of [Cond]: only the selected supplier is called.
func CondFunc[L, R any](predicate bool, right func() R, left func() L) Either[L, R] {
	if predicate {
		return Right[L](right())
	}

	return Left[L, R](left())
}

// IsRight reports whether e holds a Right value.
func (e Either[L, R]) IsRight() bool {
	return e.side == sideRight
}

// IsLeft reports whether e holds a Left value.
func (e Either[L, R]) IsLeft() bool {
	return e.side == sideLeft
}

// GetRight returns the Right value.
// The error wraps [ErrNoSuchElement] if e is a Left.
func (e Either[L, R]) GetRight() (R, error) {
	if e.side != sideRight {
		var zero R
		return zero, fmt.Errorf("GetRight() on Left: %w", ErrNoSuchElement)
	}

	return e.right, nil
}

// GetLeft returns the Left value.
// The error wraps [ErrNoSuchElement] if e is a Right.
func (e Either[L, R]) GetLeft() (L, error) {
	if e.side != sideLeft {
		var zero L
		return zero, fmt.Errorf("GetLeft() on Right: %w", ErrNoSuchElement)
	}

	return e.left, nil
}

// MustRight is like [Either.GetRight] but panics on a Left.
func (e Either[L, R]) MustRight() R {
	v, err := e.GetRight()
	if err != nil {
		panic(err)
	}

	return v
}

// MustLeft is like [Either.GetLeft] but panics on a Right.
func (e Either[L, R]) MustLeft() L {
	v, err := e.GetLeft()
	if err != nil {
		panic(err)
	}

	return v
}

// RightOrElseGet returns the Right value, or other applied to the Left value.
func (e Either[L, R]) RightOrElseGet(other func(L) R) R {
	if e.side == sideRight {
		return e.right
	}

	return other(e.left)
}

// LeftOrElseGet returns the Left value, or other applied to the Right value.
func (e Either[L, R]) LeftOrElseGet(other func(R) L) L {
	if e.side == sideLeft {
		return e.left
	}

	return other(e.right)
}

// Consume calls onRight with the Right value or onLeft with the Left value.
func (e Either[L, R]) Consume(onLeft func(L), onRight func(R)) {
	if e.side == sideRight {
		onRight(e.right)
	} else {
		onLeft(e.left)
	}
}

func (e Either[L, R]) String() string {
	if e.side == sideRight {
		return fmt.Sprintf("Right(%v)", e.right)
	}

	return fmt.Sprintf("Left(%v)", e.left)
}

// Fold maps whichever value e holds to U.
// Exactly one of the mappers is called.
func Fold[L, R, U any](e Either[L, R], onLeft func(L) U, onRight func(R) U) U {
	if e.side == sideRight {
		return onRight(e.right)
	}

	return onLeft(e.left)
}

// Bimap returns a new Either of the same variant with its value mapped by
// onLeft or onRight. The mapped value is not checked for nil.
func Bimap[L, R, LL, RR any](e Either[L, R], onLeft func(L) LL, onRight func(R) RR) Either[LL, RR] {
	if e.side == sideRight {
		//nolint:exhaustruct
		return Either[LL, RR]{side: sideRight, right: onRight(e.right)}
	}

	//nolint:exhaustruct
	return Either[LL, RR]{side: sideLeft, left: onLeft(e.left)}
}

// isAbsent reports whether v is nil: an untyped nil or a nil pointer, map,
// slice, channel, func or interface.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
