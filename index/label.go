package index

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Label is a column or row key. Any comparable value works; integers of
// every width are normalized to int so that 1, int64(1) and uint8(1) are
// the same label. Unsigned values above math.MaxInt keep their own type.
type Label = any

// MaxLevels bounds the depth of a hierarchical index.
const MaxLevels = 4

// Tuple is the label of one row of a hierarchical index. It is a value
// type and comparable, so it can key maps like any flat label.
type Tuple struct {
	n uint8
	v [MaxLevels]Label
}

// T builds a Tuple from up to MaxLevels values. Members are not checked
// here; an index built from a tuple with a non comparable member fails.
func T(values ...Label) Tuple {
	if len(values) > MaxLevels {
		panic(fmt.Sprintf("tuple of %d values exceeds %d levels", len(values), MaxLevels))
	}

	var t Tuple
	t.n = uint8(len(values))
	for i, v := range values {
		t.v[i] = normalize(v)
	}
	return t
}

func (t Tuple) Len() int { return int(t.n) }

func (t Tuple) At(level int) Label { return t.v[level] }

func (t Tuple) String() string {
	parts := make([]string, t.n)
	for i := range parts {
		parts[i] = FormatLabel(t.v[i])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func normalize(l Label) Label {
	switch v := l.(type) {
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case uint:
		if v <= math.MaxInt {
			return int(v)
		}
	case uint64:
		if v <= math.MaxInt {
			return int(v)
		}
	case uintptr:
		if v <= math.MaxInt {
			return int(v)
		}
	}
	return l
}

// checkComparable rejects labels that would panic as map keys, including
// tuples with a non comparable member.
func checkComparable(l Label) error {
	switch v := l.(type) {
	case nil:
		return nil
	case Tuple:
		for i := 0; i < v.Len(); i++ {
			if err := checkComparable(v.At(i)); err != nil {
				return fmt.Errorf("tuple member %d: %w", i, err)
			}
		}
		return nil
	}
	if !reflect.TypeOf(l).Comparable() {
		return fmt.Errorf("label of type %T is not comparable", l)
	}
	return nil
}

// FormatLabel renders a label for messages. Strings are quoted but keep
// printable non-ASCII runes as they are.
func FormatLabel(l Label) string {
	switch v := l.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case Tuple:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// compareLabels orders ints before strings before everything else, which
// is compared by its formatted text.
func compareLabels(a, b Label) int {
	ca, cb := labelClass(a), labelClass(b)
	if ca != cb {
		return ca - cb
	}

	switch av := a.(type) {
	case int:
		bv := b.(int)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case string:
		return strings.Compare(av, b.(string))
	}
	return strings.Compare(FormatLabel(a), FormatLabel(b))
}

func labelClass(l Label) int {
	switch l.(type) {
	case int:
		return 0
	case string:
		return 1
	}
	return 2
}
