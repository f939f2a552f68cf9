package either

type Either[L, R any] struct {
	right bool
	l     L
	r     R
}

func Right[L, R any](v R) Either[L, R] { return Either[L, R]{right: true, r: v} }

func Left[L, R any](v L) Either[L, R] { return Either[L, R]{l: v} }

func (e Either[L, R]) IsRight() bool { return e.right }

func (e Either[L, R]) IsLeft() bool { return !e.right }

func (e Either[L, R]) MustRight() R {
	if !e.right {
		panic("MustRight on Left")
	}

	return e.r
}

func (e Either[L, R]) MustLeft() L {
	if e.right {
		panic("MustLeft on Right")
	}

	return e.l
}
