package ops

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTakeRows(t *testing.T) {
	// 3 rows x 2 columns
	src := []int64{0, 1, 10, 11, 20, 21}

	assert.Equal(t, []int64{20, 21, 0, 1}, TakeRows(src, 2, []int{2, 0}))
	assert.Empty(t, TakeRows(src, 2, nil))
}

func TestTakeColumnsWithFill(t *testing.T) {
	// 2 rows x 5 columns
	src := []float64{0, 1, 2, 3, 4, 10, 11, 12, 13, 14}

	out := TakeColumns(src, 2, 5, []int{4, -1, 0, 1, 2}, math.NaN())

	assert.Equal(t, 4.0, out[0])
	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, []float64{0, 1, 2}, out[2:5])
	assert.Equal(t, 14.0, out[5])
	assert.True(t, math.IsNaN(out[6]))
}

func TestSliceColumns(t *testing.T) {
	src := []bool{true, false, true, false, false, true}
	assert.Equal(t, []bool{false, true, false, true}, SliceColumns(src, 2, 3, 1, 3))
}

func TestScatter(t *testing.T) {
	out := make([]int64, 6)
	Scatter(out, []int64{1, 1, 2, 2}, 2, []int{2, 0})
	assert.Equal(t, []int64{2, 2, 0, 0, 1, 1}, out)
}

func TestCasts(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, Cast[float64]([]int64{1, 2, 3, 4, 5, 6, 7, 8, 9}))
	assert.Equal(t, []int64{1, 0}, BoolTo[int64]([]bool{true, false}))
	assert.Equal(t, []complex128{complex(2, 0)}, ToComplex([]float64{2}))
	assert.Equal(t, []complex128{1, 0}, BoolToComplex([]bool{true, false}))
	assert.Equal(t, []any{"a", "b"}, Box([]string{"a", "b"}))

	boxed := BoxTimes([]int64{0, NaT})
	assert.Equal(t, time.Unix(0, 0).UTC(), boxed[0])
	assert.Nil(t, boxed[1])
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal([]int64{1, 2, 3, 4, 5, 6, 7, 8, 9}, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}))
	assert.False(t, Equal([]int64{1, 2, 3, 4, 5, 6, 7, 8, 9}, []int64{1, 2, 3, 4, 5, 6, 7, 0, 9}))
	assert.False(t, Equal([]int64{1}, []int64{1, 2}))

	assert.True(t, EqualFloats([]float64{math.NaN(), 1}, []float64{math.NaN(), 1}))
	assert.False(t, EqualFloats([]float64{math.NaN()}, []float64{1}))

	assert.True(t, EqualComplex([]complex128{complex(math.NaN(), 0)}, []complex128{complex(math.NaN(), 0)}))

	assert.True(t, EqualObjects([]any{"a", nil, []int{1}}, []any{"a", nil, []int{1}}))
	assert.False(t, EqualObjects([]any{"a"}, []any{1}))
	assert.False(t, EqualObjects([]any{nil}, []any{0}))
}
