package ops

import (
	"time"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Cast converts element by element between real numeric types.
func Cast[D, S Number](src []S) []D {
	out := make([]D, len(src))

	n := len(src)
	i := 0

	for ; i+7 < n; i += 8 {
		out[i+0] = D(src[i+0])
		out[i+1] = D(src[i+1])
		out[i+2] = D(src[i+2])
		out[i+3] = D(src[i+3])
		out[i+4] = D(src[i+4])
		out[i+5] = D(src[i+5])
		out[i+6] = D(src[i+6])
		out[i+7] = D(src[i+7])
	}

	for ; i < n; i++ {
		out[i] = D(src[i])
	}

	return out
}

// BoolTo maps true to 1 and false to 0.
func BoolTo[D Number](src []bool) []D {
	out := make([]D, len(src))
	for i, v := range src {
		if v {
			out[i] = 1
		}
	}
	return out
}

func ToComplex[S Number](src []S) []complex128 {
	out := make([]complex128, len(src))
	for i, v := range src {
		out[i] = complex(float64(v), 0)
	}
	return out
}

func BoolToComplex(src []bool) []complex128 {
	out := make([]complex128, len(src))
	for i, v := range src {
		if v {
			out[i] = 1
		}
	}
	return out
}

// Box widens a typed buffer to objects.
func Box[T any](src []T) []any {
	out := make([]any, len(src))
	for i, v := range src {
		out[i] = v
	}
	return out
}

// NaT is the missing datetime sentinel.
const NaT = int64(-1 << 63)

// BoxTimes widens nanosecond timestamps to time.Time objects, NaT to nil.
func BoxTimes(src []int64) []any {
	out := make([]any, len(src))
	for i, v := range src {
		if v != NaT {
			out[i] = time.Unix(0, v).UTC()
		}
	}
	return out
}
