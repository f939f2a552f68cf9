package usage

import "sample/either"

type E = either.Either[string, int]

func unguarded(e E) int {
	return e.MustRight()
}

func unguardedLeft(e E) string {
	return e.MustLeft()
}

func viaPointer(e *E) int {
	return e.MustRight()
}

func wrongGuard(e E) int {
	if e.IsLeft() {
		return e.MustRight()
	}

	return 0
}

func otherReceiver(a, b E) int {
	if a.IsRight() {
		return b.MustRight()
	}

	return 0
}

func closure(e E) func() int {
	return func() int {
		return e.MustRight()
	}
}

func ignoredEarlyExit(e E, log func()) int {
	if e.IsLeft() {
		log()
	}

	return e.MustRight()
}

func guardedIf(e E) int {
	if e.IsRight() {
		return e.MustRight()
	}

	return 0
}

func guardedElse(e E) int {
	if e.IsLeft() {
		return 0
	} else {
		return e.MustRight()
	}
}

func guardedNot(e E) string {
	if !e.IsRight() {
		return e.MustLeft()
	}

	return ""
}

func guardedAnd(e E, ok bool) int {
	if ok && (e.IsRight()) {
		return e.MustRight()
	}

	return 0
}

func guardedOr(e E, ok bool) string {
	if e.IsRight() || ok {
		return ""
	} else {
		return e.MustLeft()
	}
}

func guardedShortCircuit(e E) bool {
	return e.IsRight() && e.MustRight() > 0
}

func guardedEarlyReturn(e E) int {
	if e.IsLeft() {
		return 0
	}

	return e.MustRight()
}

func guardedPanic(e E) string {
	if e.IsRight() {
		panic("unexpected right")
	}

	return e.MustLeft()
}

func guardedSwitch(e E) int {
	switch {
	case e.IsRight():
		return e.MustRight()
	default:
		return 0
	}
}

func guardedSwitchDefault(e E) int {
	switch {
	case e.IsLeft():
		return 0
	default:
		return e.MustRight()
	}
}

func guardedSwitchPrior(e E) string {
	switch {
	case e.IsRight():
		return ""
	case len(e.MustLeft()) > 0:
		return e.MustLeft()
	}

	return ""
}

func fallthroughCase(e E) int {
	switch {
	case e.IsLeft():
		fallthrough
	case e.IsRight():
		return e.MustRight()
	}

	return 0
}

func gotoSkip(e E) int {
	if e.IsLeft() {
		goto out
	}

	return 1
out:
	return e.MustRight()
}

func shadowed(e, o E) int {
	if e.IsRight() {
		e := o
		return e.MustRight()
	}

	return 0
}

func guardedLoop(es []E) (sum int) {
	for _, e := range es {
		if e.IsLeft() {
			continue
		}

		sum += e.MustRight()
	}

	return sum
}

type mustHaver struct{}

func (mustHaver) MustRight() int { return 0 }

func notEither(m mustHaver) int {
	return m.MustRight()
}
