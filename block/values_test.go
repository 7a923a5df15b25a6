package block

import (
	"math"
	"testing"
	"time"

	"github.com/dot5enko/blockframe/ops"
	"github.com/dot5enko/blockframe/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesCopyCallerSlices(t *testing.T) {
	src := []float64{1, 2, 3, 4}
	values, err := ValuesFrom(src, 2, 2)
	require.NoError(t, err)

	src[0] = 100
	assert.Equal(t, 1.0, values.At(0, 0))
	assert.Equal(t, Owned, values.Ownership())

	_, err = ValuesFrom(src, 3, 2)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestValuesViewSharesWrites(t *testing.T) {
	values, err := ValuesFromItems([]int64{1, 2}, []int64{3, 4})
	require.NoError(t, err)

	view := values.View()
	assert.Equal(t, Borrowed, view.Ownership())
	assert.True(t, view.SharesBuffer(values))

	require.NoError(t, view.Set(1, 0, 30))
	assert.Equal(t, int64(30), values.At(1, 0))

	detached := view.Detach()
	assert.Equal(t, Owned, detached.Ownership())
	assert.False(t, detached.SharesBuffer(values))
	assert.Same(t, values, values.Detach())
}

func TestValuesSetRejectsOtherFamilies(t *testing.T) {
	values := NewValues(schema.Int64FieldType, 1, 2)

	assert.ErrorIs(t, values.Set(0, 0, 1.5), ErrDtypeMismatch)
	assert.ErrorIs(t, values.Set(0, 5, 1), ErrShapeMismatch)

	require.NoError(t, values.Set(0, 1, uint64(7)))
	assert.Equal(t, int64(7), values.At(0, 1))
	assert.ErrorIs(t, values.Set(0, 1, uint64(math.MaxUint64)), ErrDtypeMismatch)

	objects := NewValues(schema.ObjectFieldType, 1, 1)
	require.NoError(t, objects.Set(0, 0, "anything"))
	assert.Equal(t, "anything", objects.At(0, 0))
}

func TestValuesAsTypeOnlyPromotes(t *testing.T) {
	values, err := ValuesFromItems([]bool{true, false})
	require.NoError(t, err)

	ints, err := values.AsType(schema.Int64FieldType)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 0}, ints.Data())

	objs, err := ints.AsType(schema.ObjectFieldType)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(0)}, objs.Data())

	_, err = objs.AsType(schema.Float64FieldType)
	assert.ErrorIs(t, err, ErrDtypeMismatch)
}

func TestDatetimeValues(t *testing.T) {
	ts := time.Date(2012, 3, 1, 0, 0, 0, 0, time.UTC)
	values, err := ValuesFromItems([]time.Time{ts, ts.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, schema.DatetimeFieldType, values.Type())
	assert.Equal(t, ts, values.At(0, 0))

	gapped := values.TakeCols([]int{1, -1})
	assert.Equal(t, schema.DatetimeFieldType, gapped.Type())
	assert.Nil(t, gapped.At(0, 1))
	assert.Equal(t, ops.NaT, gapped.Data().([]int64)[1])

	objs, err := values.AsType(schema.ObjectFieldType)
	require.NoError(t, err)
	assert.Equal(t, ts, objs.At(0, 0))
}

func TestTakeColsPromotesMissing(t *testing.T) {
	values, err := ValuesFromItems([]bool{true, false, true})
	require.NoError(t, err)

	out := values.TakeCols([]int{2, -1})
	assert.Equal(t, schema.Float64FieldType, out.Type())
	assert.Equal(t, 1.0, out.At(0, 0))
	assert.True(t, math.IsNaN(out.At(0, 1).(float64)))

	same := values.TakeCols([]int{2, 0})
	assert.Equal(t, schema.BoolFieldType, same.Type())
}

func TestStackAndScatter(t *testing.T) {
	a, err := ValuesFromItems([]float64{1, 2})
	require.NoError(t, err)
	b, err := ValuesFromItems([]float64{3, 4}, []float64{5, 6})
	require.NoError(t, err)

	stacked, err := a.Stack(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, stacked.Data())

	out := NewValues(schema.Float64FieldType, 3, 2)
	require.NoError(t, out.ScatterRows(b, []int{2, 0}))
	require.NoError(t, out.ScatterRows(a, []int{1}))
	assert.Equal(t, []float64{5, 6, 1, 2, 3, 4}, out.Data())

	ints := NewValues(schema.Int64FieldType, 1, 2)
	assert.ErrorIs(t, out.ScatterRows(ints, []int{0}), ErrDtypeMismatch)
	_, err = a.Stack(ints)
	assert.ErrorIs(t, err, ErrDtypeMismatch)
}

func TestVector(t *testing.T) {
	vec := MustVector([]int32{1, 2, 3})
	assert.Equal(t, schema.Int64FieldType, vec.Type())
	assert.Equal(t, []int64{1, 2, 3}, vec.Int64s())
	assert.Nil(t, vec.Float64s())

	floats, err := vec.AsType(schema.Float64FieldType)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, floats.Float64s())

	full, err := Full("foo", 3)
	require.NoError(t, err)
	assert.Equal(t, schema.ObjectFieldType, full.Type())
	assert.Equal(t, []any{"foo", "foo", "foo"}, full.Objects())

	assert.True(t, MustVector([]float64{math.NaN()}).Equal(MustVector([]float64{math.NaN()})))
	assert.Contains(t, MustVector(make([]float64, 10)).String(), "...")
}
