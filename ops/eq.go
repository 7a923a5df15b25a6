package ops

import (
	"math"
	"math/cmplx"
	"reflect"
)

// Equal compares buffers element by element.
func Equal[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}

	n := len(a)
	i := 0

	for ; i+7 < n; i += 8 {
		same := a[i+0] == b[i+0] &&
			a[i+1] == b[i+1] &&
			a[i+2] == b[i+2] &&
			a[i+3] == b[i+3] &&
			a[i+4] == b[i+4] &&
			a[i+5] == b[i+5] &&
			a[i+6] == b[i+6] &&
			a[i+7] == b[i+7]
		if !same {
			return false
		}
	}

	for ; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EqualFloats treats NaN as equal to NaN, which is what table equality wants.
func EqualFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
			return false
		}
	}
	return true
}

func EqualComplex(a, b []complex128) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] && !(cmplx.IsNaN(a[i]) && cmplx.IsNaN(b[i])) {
			return false
		}
	}
	return true
}

// EqualObjects compares boxed values. Non comparable values fall back to
// reflect.DeepEqual instead of panicking.
func EqualObjects(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalObject(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalObject(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		return reflect.DeepEqual(a, b)
	}

	if fa, ok := a.(float64); ok {
		fb := b.(float64)
		return fa == fb || (math.IsNaN(fa) && math.IsNaN(fb))
	}
	return a == b
}
