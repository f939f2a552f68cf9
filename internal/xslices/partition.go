package xslices

import "iter"

// Partition splits s into at most n contiguous parts whose lengths differ by
// at most one. Longer parts come first. Empty parts are never yielded.
func Partition[Slice ~[]E, E any](s Slice, n int) iter.Seq[Slice] {
	if n < 1 {
		panic("cannot be less than 1")
	}

	return func(yield func(Slice) bool) {
		parts := min(n, len(s))
		if parts == 0 {
			return
		}

		size, rest := len(s)/parts, len(s)%parts
		start := 0

		for i := range parts {
			end := start + size
			if i < rest {
				end++
			}

			if !yield(s[start:end:end]) {
				return
			}

			start = end
		}
	}
}
