package block

import (
	"fmt"
	"strings"
	"time"

	"github.com/dot5enko/blockframe/ops"
	"github.com/dot5enko/blockframe/schema"
)

// Vector is one column of the table, aligned to the row axis.
type Vector struct {
	typ  schema.FieldType
	data any
	own  Ownership
}

// NewVector copies data into an Owned vector of the inferred dtype.
func NewVector(data any) (*Vector, error) {
	typ, canonical, err := canonicalize(data)
	if err != nil {
		return nil, err
	}
	return &Vector{typ: typ, data: canonical, own: Owned}, nil
}

// MustVector is NewVector for literals in tests and examples.
func MustVector(data any) *Vector {
	vec, err := NewVector(data)
	if err != nil {
		panic(err)
	}
	return vec
}

// Full returns a vector of n copies of value.
func Full(value any, n int) (*Vector, error) {
	typ := schema.InferScalar(value)

	vec := &Vector{typ: typ, data: allocate(typ, n), own: Owned}
	holder := &Values{typ: typ, rows: 1, cols: n, data: vec.data}
	for i := 0; i < n; i++ {
		if err := holder.Set(0, i, value); err != nil {
			return nil, err
		}
	}
	return vec, nil
}

func (v *Vector) Type() schema.FieldType { return v.typ }

func (v *Vector) Len() int { return length(v.data) }

func (v *Vector) Ownership() Ownership { return v.own }

// Data exposes the backing buffer.
func (v *Vector) Data() any { return v.data }

// At returns one boxed element; see Values.At.
func (v *Vector) At(i int) any { return boxAt(v.typ, v.data, i) }

func (v *Vector) Bools() []bool {
	d, _ := v.data.([]bool)
	return d
}

func (v *Vector) Int64s() []int64 {
	if v.typ != schema.Int64FieldType {
		return nil
	}
	return v.data.([]int64)
}

func (v *Vector) Float64s() []float64 {
	d, _ := v.data.([]float64)
	return d
}

func (v *Vector) Complex128s() []complex128 {
	d, _ := v.data.([]complex128)
	return d
}

func (v *Vector) Objects() []any {
	d, _ := v.data.([]any)
	return d
}

// Times decodes a datetime vector. NaT becomes the zero time.
func (v *Vector) Times() []time.Time {
	if v.typ != schema.DatetimeFieldType {
		return nil
	}

	raw := v.data.([]int64)
	out := make([]time.Time, len(raw))
	for i, ns := range raw {
		if ns != ops.NaT {
			out[i] = time.Unix(0, ns).UTC()
		}
	}
	return out
}

// Clone returns an Owned copy.
func (v *Vector) Clone() *Vector {
	return &Vector{typ: v.typ, data: cloneData(v.data), own: Owned}
}

// AsType converts up the promotion order.
func (v *Vector) AsType(typ schema.FieldType) (*Vector, error) {
	if typ == v.typ {
		return v.Clone(), nil
	}
	converted, err := convert(v.typ, v.data, typ)
	if err != nil {
		return nil, err
	}
	return &Vector{typ: typ, data: converted, own: Owned}, nil
}

func (v *Vector) Equal(other *Vector) bool {
	return v.typ == other.typ && v.Len() == other.Len() && equalData(v.data, other.data)
}

func (v *Vector) String() string {
	n := v.Len()
	shown := min(n, 6)

	parts := make([]string, shown)
	for i := 0; i < shown; i++ {
		parts[i] = fmt.Sprintf("%v", v.At(i))
	}
	if shown < n {
		parts = append(parts, "...")
	}
	return fmt.Sprintf("Vector(%s, [%s])", v.typ, strings.Join(parts, " "))
}
