package block

import (
	"fmt"
	"math"
	"math/cmplx"
	"reflect"
	"slices"
	"time"

	"github.com/dot5enko/blockframe/ops"
	"github.com/dot5enko/blockframe/schema"
)

// Ownership tags a buffer holder. Owned buffers were allocated for their
// holder; Borrowed ones are views onto a buffer someone else also holds,
// and writes through them are visible to every holder.
type Ownership uint8

const (
	Owned Ownership = iota
	Borrowed
)

func (o Ownership) String() string {
	if o == Borrowed {
		return "borrowed"
	}
	return "owned"
}

// Values is a 2D row-major matrix of a single dtype. In a block, row i
// holds the data of item i and the columns run along the row axis.
//
// Storage per dtype: []bool, []int64, []float64, []complex128, []any for
// objects and []int64 nanoseconds for datetimes.
type Values struct {
	typ  schema.FieldType
	rows int
	cols int
	data any
	own  Ownership
}

// NewValues allocates a zeroed matrix.
func NewValues(typ schema.FieldType, rows, cols int) *Values {
	return &Values{
		typ:  typ,
		rows: rows,
		cols: cols,
		data: allocate(typ, rows*cols),
		own:  Owned,
	}
}

// ValuesFrom copies a flat row-major Go slice into a new matrix, widening
// narrow element types to their canonical dtype.
func ValuesFrom(data any, rows, cols int) (*Values, error) {
	typ, canonical, err := canonicalize(data)
	if err != nil {
		return nil, err
	}

	if length(canonical) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for a %dx%d matrix", ErrShapeMismatch, length(canonical), rows, cols)
	}

	return &Values{typ: typ, rows: rows, cols: cols, data: canonical, own: Owned}, nil
}

// ValuesFromItems stacks one Go slice per item. Every slice must have the
// same length and infer to the same dtype.
func ValuesFromItems(items ...any) (*Values, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrShapeMismatch)
	}

	vectors := make([]*Vector, len(items))
	for i, it := range items {
		vec, err := NewVector(it)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}

	return stackVectors(vectors)
}

// ValuesFromVectors copies one vector per row into a new matrix.
func ValuesFromVectors(vectors ...*Vector) (*Values, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no vectors", ErrShapeMismatch)
	}
	return stackVectors(vectors)
}

func stackVectors(vectors []*Vector) (*Values, error) {
	typ, cols := vectors[0].typ, vectors[0].Len()

	out := NewValues(typ, len(vectors), cols)
	for i, vec := range vectors {
		if vec.typ != typ {
			return nil, fmt.Errorf("%w: item %d is %s, expected %s", ErrDtypeMismatch, i, vec.typ, typ)
		}
		if vec.Len() != cols {
			return nil, fmt.Errorf("%w: item %d has %d values, expected %d", ErrShapeMismatch, i, vec.Len(), cols)
		}
		copyInto(out.data, i*cols, vec.data)
	}
	return out, nil
}

func (v *Values) Type() schema.FieldType { return v.typ }

func (v *Values) Shape() (rows, cols int) { return v.rows, v.cols }

func (v *Values) Rows() int { return v.rows }

func (v *Values) Cols() int { return v.cols }

func (v *Values) Ownership() Ownership { return v.own }

// Data exposes the backing buffer. Writes are visible to every holder.
func (v *Values) Data() any { return v.data }

// At returns one boxed element. Datetimes come back as time.Time, NaT as nil.
func (v *Values) At(row, col int) any {
	return boxAt(v.typ, v.data, row*v.cols+col)
}

// Set writes one element, converting within the dtype's own family only.
func (v *Values) Set(row, col int, value any) error {
	if row < 0 || row >= v.rows || col < 0 || col >= v.cols {
		return fmt.Errorf("%w: position (%d, %d) outside %dx%d", ErrShapeMismatch, row, col, v.rows, v.cols)
	}

	pos := row*v.cols + col
	switch d := v.data.(type) {
	case []bool:
		b, ok := value.(bool)
		if !ok {
			return scalarMismatch(value, v.typ)
		}
		d[pos] = b
	case []int64:
		if v.typ == schema.DatetimeFieldType {
			ts, ok := value.(time.Time)
			if !ok {
				return scalarMismatch(value, v.typ)
			}
			d[pos] = ts.UnixNano()
			return nil
		}
		i, ok := asInt64(value)
		if !ok {
			return scalarMismatch(value, v.typ)
		}
		d[pos] = i
	case []float64:
		f, ok := asFloat64(value)
		if !ok {
			return scalarMismatch(value, v.typ)
		}
		d[pos] = f
	case []complex128:
		c, ok := asComplex128(value)
		if !ok {
			return scalarMismatch(value, v.typ)
		}
		d[pos] = c
	case []any:
		d[pos] = value
	}
	return nil
}

func scalarMismatch(value any, typ schema.FieldType) error {
	return fmt.Errorf("%w: cannot store %T in a %s buffer", ErrDtypeMismatch, value, typ)
}

// Row returns a view of one row. It shares this matrix's buffer.
func (v *Values) Row(row int) *Vector {
	return &Vector{
		typ:  v.typ,
		data: subslice(v.data, row*v.cols, (row+1)*v.cols),
		own:  Borrowed,
	}
}

// SetRow overwrites one row in place.
func (v *Values) SetRow(row int, vec *Vector) error {
	if vec.typ != v.typ {
		return fmt.Errorf("%w: row is %s, matrix is %s", ErrDtypeMismatch, vec.typ, v.typ)
	}
	if vec.Len() != v.cols {
		return fmt.Errorf("%w: row has %d values, matrix has %d columns", ErrShapeMismatch, vec.Len(), v.cols)
	}

	copyInto(v.data, row*v.cols, vec.data)
	return nil
}

// View returns a Borrowed holder of the same buffer.
func (v *Values) View() *Values {
	view := *v
	view.own = Borrowed
	return &view
}

// Clone returns an Owned deep copy.
func (v *Values) Clone() *Values {
	return &Values{typ: v.typ, rows: v.rows, cols: v.cols, data: cloneData(v.data), own: Owned}
}

// Detach returns v itself when it already owns its buffer, otherwise a
// deep copy. Use it before mutating a buffer that must not be shared.
func (v *Values) Detach() *Values {
	if v.own == Owned {
		return v
	}
	return v.Clone()
}

// SharesBuffer reports whether both holders point at the same storage.
func (v *Values) SharesBuffer(other *Values) bool {
	return sameBacking(v.data, other.data)
}

// Take gathers rows into a new Owned matrix.
func (v *Values) Take(rows []int) *Values {
	var out any
	switch d := v.data.(type) {
	case []bool:
		out = ops.TakeRows(d, v.cols, rows)
	case []int64:
		out = ops.TakeRows(d, v.cols, rows)
	case []float64:
		out = ops.TakeRows(d, v.cols, rows)
	case []complex128:
		out = ops.TakeRows(d, v.cols, rows)
	case []any:
		out = ops.TakeRows(d, v.cols, rows)
	}
	return &Values{typ: v.typ, rows: len(rows), cols: v.cols, data: out, own: Owned}
}

// TakeCols gathers columns; -1 marks a missing column. When anything is
// missing and the dtype has no missing sentinel the result is first
// promoted per schema.MissingHolder.
func (v *Values) TakeCols(cols []int) *Values {
	src := v
	if slices.Contains(cols, -1) && schema.MissingHolder(v.typ) != v.typ {
		// promotion within the numeric tower never fails
		src, _ = v.AsType(schema.MissingHolder(v.typ))
	}

	var out any
	switch d := src.data.(type) {
	case []bool:
		out = ops.TakeColumns(d, src.rows, src.cols, cols, false)
	case []int64:
		// only datetimes reach this with a missing column
		out = ops.TakeColumns(d, src.rows, src.cols, cols, ops.NaT)
	case []float64:
		out = ops.TakeColumns(d, src.rows, src.cols, cols, math.NaN())
	case []complex128:
		out = ops.TakeColumns(d, src.rows, src.cols, cols, cmplx.NaN())
	case []any:
		out = ops.TakeColumns(d, src.rows, src.cols, cols, nil)
	}
	return &Values{typ: src.typ, rows: src.rows, cols: len(cols), data: out, own: Owned}
}

// SliceCols copies columns [start, end).
func (v *Values) SliceCols(start, end int) *Values {
	var out any
	switch d := v.data.(type) {
	case []bool:
		out = ops.SliceColumns(d, v.rows, v.cols, start, end)
	case []int64:
		out = ops.SliceColumns(d, v.rows, v.cols, start, end)
	case []float64:
		out = ops.SliceColumns(d, v.rows, v.cols, start, end)
	case []complex128:
		out = ops.SliceColumns(d, v.rows, v.cols, start, end)
	case []any:
		out = ops.SliceColumns(d, v.rows, v.cols, start, end)
	}
	return &Values{typ: v.typ, rows: v.rows, cols: end - start, data: out, own: Owned}
}

// ScatterRows copies row i of src into row dst[i] of v.
func (v *Values) ScatterRows(src *Values, dst []int) error {
	if src.typ != v.typ {
		return fmt.Errorf("%w: cannot scatter %s rows into %s", ErrDtypeMismatch, src.typ, v.typ)
	}
	if src.cols != v.cols || len(dst) != src.rows {
		return fmt.Errorf("%w: cannot scatter %dx%d into %dx%d", ErrShapeMismatch, src.rows, src.cols, v.rows, v.cols)
	}
	for _, d := range dst {
		if d < 0 || d >= v.rows {
			return fmt.Errorf("%w: row %d outside %d rows", ErrShapeMismatch, d, v.rows)
		}
	}

	switch d := v.data.(type) {
	case []bool:
		ops.Scatter(d, src.data.([]bool), v.cols, dst)
	case []int64:
		ops.Scatter(d, src.data.([]int64), v.cols, dst)
	case []float64:
		ops.Scatter(d, src.data.([]float64), v.cols, dst)
	case []complex128:
		ops.Scatter(d, src.data.([]complex128), v.cols, dst)
	case []any:
		ops.Scatter(d, src.data.([]any), v.cols, dst)
	}
	return nil
}

// Stack appends the rows of others below v. All dtypes and widths must match.
func (v *Values) Stack(others ...*Values) (*Values, error) {
	rows := v.rows
	for _, o := range others {
		if o.typ != v.typ {
			return nil, fmt.Errorf("%w: cannot stack %s onto %s", ErrDtypeMismatch, o.typ, v.typ)
		}
		if o.cols != v.cols {
			return nil, fmt.Errorf("%w: cannot stack %d columns onto %d", ErrShapeMismatch, o.cols, v.cols)
		}
		rows += o.rows
	}

	out := NewValues(v.typ, rows, v.cols)
	offset := copyInto(out.data, 0, v.data)
	for _, o := range others {
		offset += copyInto(out.data, offset, o.data)
	}
	return out, nil
}

// AsType converts to a dtype at or above this one in the promotion order.
// Converting to the same dtype yields a deep copy.
func (v *Values) AsType(typ schema.FieldType) (*Values, error) {
	if typ == v.typ {
		return v.Clone(), nil
	}
	if schema.Promote(v.typ, typ) != typ {
		return nil, fmt.Errorf("%w: cannot cast %s to %s without loss", ErrDtypeMismatch, v.typ, typ)
	}

	converted, err := convert(v.typ, v.data, typ)
	if err != nil {
		return nil, err
	}
	return &Values{typ: typ, rows: v.rows, cols: v.cols, data: converted, own: Owned}, nil
}

// Equal compares dtype, shape and elements. NaN equals NaN.
func (v *Values) Equal(other *Values) bool {
	if v.typ != other.typ || v.rows != other.rows || v.cols != other.cols {
		return false
	}
	return equalData(v.data, other.data)
}

func (v *Values) String() string {
	return fmt.Sprintf("Values(%s, %dx%d, %s)", v.typ, v.rows, v.cols, v.own)
}

func convert(from schema.FieldType, data any, to schema.FieldType) (any, error) {
	switch d := data.(type) {
	case []bool:
		switch to {
		case schema.Int64FieldType:
			return ops.BoolTo[int64](d), nil
		case schema.Float64FieldType:
			return ops.BoolTo[float64](d), nil
		case schema.Complex128FieldType:
			return ops.BoolToComplex(d), nil
		case schema.ObjectFieldType:
			return ops.Box(d), nil
		}
	case []int64:
		if from == schema.DatetimeFieldType {
			if to == schema.ObjectFieldType {
				return ops.BoxTimes(d), nil
			}
			break
		}
		switch to {
		case schema.Float64FieldType:
			return ops.Cast[float64](d), nil
		case schema.Complex128FieldType:
			return ops.ToComplex(d), nil
		case schema.ObjectFieldType:
			return ops.Box(d), nil
		}
	case []float64:
		switch to {
		case schema.Complex128FieldType:
			return ops.ToComplex(d), nil
		case schema.ObjectFieldType:
			return ops.Box(d), nil
		}
	case []complex128:
		if to == schema.ObjectFieldType {
			return ops.Box(d), nil
		}
	}
	return nil, fmt.Errorf("%w: no conversion from %s to %s", ErrDtypeMismatch, from, to)
}

func allocate(typ schema.FieldType, n int) any {
	switch typ {
	case schema.BoolFieldType:
		return make([]bool, n)
	case schema.Int64FieldType, schema.DatetimeFieldType:
		return make([]int64, n)
	case schema.Float64FieldType:
		return make([]float64, n)
	case schema.Complex128FieldType:
		return make([]complex128, n)
	case schema.ObjectFieldType:
		return make([]any, n)
	default:
		panic("unknown field type " + typ.String())
	}
}

// canonicalize copies a Go slice into the storage type of its dtype.
func canonicalize(data any) (schema.FieldType, any, error) {
	typ, err := schema.Infer(data)
	if err != nil {
		return schema.InvalidFieldType, nil, err
	}

	switch d := data.(type) {
	case []bool:
		return typ, slices.Clone(d), nil
	case []int:
		return typ, ops.Cast[int64](d), nil
	case []int8:
		return typ, ops.Cast[int64](d), nil
	case []int16:
		return typ, ops.Cast[int64](d), nil
	case []int32:
		return typ, ops.Cast[int64](d), nil
	case []int64:
		return typ, slices.Clone(d), nil
	case []uint8:
		return typ, ops.Cast[int64](d), nil
	case []uint16:
		return typ, ops.Cast[int64](d), nil
	case []uint32:
		return typ, ops.Cast[int64](d), nil
	case []float32:
		return typ, ops.Cast[float64](d), nil
	case []float64:
		return typ, slices.Clone(d), nil
	case []complex64:
		out := make([]complex128, len(d))
		for i, c := range d {
			out[i] = complex128(c)
		}
		return typ, out, nil
	case []complex128:
		return typ, slices.Clone(d), nil
	case []string:
		return typ, ops.Box(d), nil
	case []any:
		return typ, slices.Clone(d), nil
	case []time.Time:
		out := make([]int64, len(d))
		for i, ts := range d {
			out[i] = ts.UnixNano()
		}
		return typ, out, nil
	}
	return schema.InvalidFieldType, nil, fmt.Errorf("unsupported column data type %s", reflect.TypeOf(data))
}

func length(data any) int {
	return reflect.ValueOf(data).Len()
}

func subslice(data any, start, end int) any {
	switch d := data.(type) {
	case []bool:
		return d[start:end:end]
	case []int64:
		return d[start:end:end]
	case []float64:
		return d[start:end:end]
	case []complex128:
		return d[start:end:end]
	case []any:
		return d[start:end:end]
	}
	panic(fmt.Sprintf("unsupported buffer %T", data))
}

// copyInto copies src into dst starting at offset and returns the count.
func copyInto(dst any, offset int, src any) int {
	switch d := dst.(type) {
	case []bool:
		return copy(d[offset:], src.([]bool))
	case []int64:
		return copy(d[offset:], src.([]int64))
	case []float64:
		return copy(d[offset:], src.([]float64))
	case []complex128:
		return copy(d[offset:], src.([]complex128))
	case []any:
		return copy(d[offset:], src.([]any))
	}
	panic(fmt.Sprintf("unsupported buffer %T", dst))
}

func cloneData(data any) any {
	switch d := data.(type) {
	case []bool:
		return slices.Clone(d)
	case []int64:
		return slices.Clone(d)
	case []float64:
		return slices.Clone(d)
	case []complex128:
		return slices.Clone(d)
	case []any:
		return slices.Clone(d)
	}
	panic(fmt.Sprintf("unsupported buffer %T", data))
}

func equalData(a, b any) bool {
	switch d := a.(type) {
	case []bool:
		return ops.Equal(d, b.([]bool))
	case []int64:
		return ops.Equal(d, b.([]int64))
	case []float64:
		return ops.EqualFloats(d, b.([]float64))
	case []complex128:
		return ops.EqualComplex(d, b.([]complex128))
	case []any:
		return ops.EqualObjects(d, b.([]any))
	}
	return false
}

func sameBacking(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || va.Len() == 0 || vb.Len() == 0 {
		return false
	}
	return va.Pointer() == vb.Pointer()
}

func boxAt(typ schema.FieldType, data any, pos int) any {
	switch d := data.(type) {
	case []bool:
		return d[pos]
	case []int64:
		if typ == schema.DatetimeFieldType {
			if d[pos] == ops.NaT {
				return nil
			}
			return time.Unix(0, d[pos]).UTC()
		}
		return d[pos]
	case []float64:
		return d[pos]
	case []complex128:
		return d[pos]
	case []any:
		return d[pos]
	}
	panic(fmt.Sprintf("unsupported buffer %T", data))
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint:
		if uint64(x) <= math.MaxInt64 {
			return int64(x), true
		}
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x), true
		}
	case uintptr:
		if uint64(x) <= math.MaxInt64 {
			return int64(x), true
		}
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func asComplex128(v any) (complex128, bool) {
	switch x := v.(type) {
	case complex64:
		return complex128(x), true
	case complex128:
		return x, true
	}
	return 0, false
}
