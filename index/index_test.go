package index

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	ix := Strings("a", "b", "c", "d", "e")

	pos, err := ix.Locate("c")
	require.NoError(t, err)
	assert.Equal(t, 2, pos)

	_, err = ix.Locate("z")
	assert.ErrorIs(t, err, ErrMissingLabel)

	var labelErr *LabelError
	require.True(t, errors.As(err, &labelErr))
	assert.Equal(t, "z", labelErr.Label)
}

func TestLocateDuplicates(t *testing.T) {
	ix := Strings("a", "a", "b")

	assert.False(t, ix.IsUnique())
	assert.Equal(t, []Label{"a"}, ix.Duplicated())
	assert.Equal(t, []int{0, 1}, ix.Positions("a"))

	_, err := ix.Locate("a")
	assert.ErrorIs(t, err, ErrAmbiguousLabel)

	pos, err := ix.Locate("b")
	require.NoError(t, err)
	assert.Equal(t, 2, pos)

	_, err = ix.Indexer(Strings("b"))
	assert.ErrorIs(t, err, ErrAmbiguousLabel)
}

func TestIntegerLabelsNormalize(t *testing.T) {
	ix := New(int64(1), int32(2), 3)

	assert.True(t, ix.Contains(1))
	assert.True(t, ix.Contains(int8(2)))
	assert.True(t, ix.Equals(Ints(1, 2, 3)))

	wide := New(uint(4), uint64(5), uintptr(6))
	assert.True(t, wide.Equals(Ints(4, 5, 6)))

	huge := New(uint64(math.MaxUint64))
	assert.True(t, huge.Contains(uint64(math.MaxUint64)))
	assert.False(t, huge.Contains(-1))
}

func TestNonComparableLabels(t *testing.T) {
	_, err := FromLabels([]Label{[]int{1}})
	assert.Error(t, err)

	_, err = FromLabels([]Label{T("a", []int{1})})
	assert.ErrorContains(t, err, "tuple member 1")

	assert.Panics(t, func() { New(T([]int{1})) })

	ix := Strings("a")
	assert.False(t, ix.Contains([]int{1}))
	assert.False(t, ix.Contains(T([]int{1})))

	_, err = ix.Locate(T([]int{1}))
	assert.ErrorIs(t, err, ErrMissingLabel)
}

func TestIdentityVersusEquality(t *testing.T) {
	a := Strings("x", "y")
	b := Strings("x", "y")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Same(b))
	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Same(a))
}

func TestSetOperations(t *testing.T) {
	ix := Strings("a", "c", "e")

	assert.Equal(t, []Label{"a", "c", "e", "b"}, ix.Union(Strings("b", "c")).Labels())
	assert.Equal(t, []Label{"c", "e"}, ix.Intersect(Strings("e", "c", "z")).Labels())
	assert.Equal(t, []Label{"a", "c", "e", "a"}, ix.Append(Strings("a")).Labels())

	dropped, err := ix.Drop("c")
	require.NoError(t, err)
	assert.Equal(t, []Label{"a", "e"}, dropped.Labels())

	_, err = ix.Drop("q")
	assert.ErrorIs(t, err, ErrMissingLabel)
}

func TestSorted(t *testing.T) {
	ix := New("b", 2, "a", 1)
	assert.Equal(t, []Label{1, 2, "a", "b"}, ix.Sorted().Labels())
}

func TestTakeAndSlice(t *testing.T) {
	ix := Strings("a", "b", "c", "d")

	assert.Equal(t, []Label{"d", "a"}, ix.Take([]int{3, 0}).Labels())
	assert.Equal(t, []Label{"b", "c"}, ix.Slice(1, 3).Labels())
	assert.Panics(t, func() { ix.Slice(2, 9) })
}

func TestIndexer(t *testing.T) {
	ix := Strings("a", "b", "c")

	indexer, err := ix.Indexer(Strings("c", "z", "a"))
	require.NoError(t, err)
	assert.Equal(t, []int{2, -1, 0}, indexer)
}

func TestNonASCII(t *testing.T) {
	ix := Strings("b", "א")

	assert.True(t, ix.Contains("א"))
	assert.Contains(t, ix.String(), "א")

	_, err := ix.Locate("ב")
	assert.ErrorIs(t, err, ErrMissingLabel)
	assert.Contains(t, err.Error(), "ב")
}

func TestNonComparableLabel(t *testing.T) {
	_, err := FromLabels([]Label{[]int{1}})
	assert.Error(t, err)
}

func sampleMulti(t *testing.T) *Index {
	t.Helper()

	ix, err := NewMulti(
		[][]Label{{"foo", "bar", "baz", "qux"}, {"one", "two", "three"}},
		[][]int{{0, 0, 0, 1, 1, 2, 2, 3, 3, 3}, {0, 1, 2, 0, 1, 1, 2, 0, 1, 2}},
		[]string{"first", "second"},
	)
	require.NoError(t, err)
	return ix
}

func TestMultiSliceLocs(t *testing.T) {
	ix := sampleMulti(t)

	assert.True(t, ix.IsHierarchical())
	assert.Equal(t, 10, ix.Len())
	assert.Equal(t, T("bar", "one"), ix.At(3))

	start, end, err := ix.SliceLocs("bar")
	require.NoError(t, err)
	assert.Equal(t, 3, start)
	assert.Equal(t, 5, end)

	start, end, err = ix.SliceLocs(T("baz", "three"))
	require.NoError(t, err)
	assert.Equal(t, 6, start)
	assert.Equal(t, 7, end)

	_, _, err = ix.SliceLocs("nope")
	assert.ErrorIs(t, err, ErrMissingLabel)
}

func TestMultiNotGrouped(t *testing.T) {
	ix, err := NewMulti(
		[][]Label{{"foo", "bar"}, {"one", "two"}},
		[][]int{{0, 1, 0}, {0, 0, 1}},
		nil,
	)
	require.NoError(t, err)

	_, _, err = ix.SliceLocs("foo")
	assert.ErrorIs(t, err, ErrNotGrouped)
}

func TestMultiTakeKeepsHierarchy(t *testing.T) {
	ix := sampleMulti(t).Slice(3, 5)

	assert.True(t, ix.IsHierarchical())
	assert.Equal(t, []int{1, 1}, ix.Codes(0))

	start, end, err := ix.SliceLocs("bar")
	require.NoError(t, err)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)
}

func TestMultiValidation(t *testing.T) {
	_, err := NewMulti([][]Label{{"a"}}, [][]int{{0}}, nil)
	assert.Error(t, err)

	_, err = NewMulti([][]Label{{"a"}, {"b"}}, [][]int{{0}, {1}}, nil)
	assert.Error(t, err)

	_, err = NewMulti([][]Label{{"a"}, {"b"}}, [][]int{{0, 0}, {0}}, nil)
	assert.Error(t, err)

	_, err = NewMulti([][]Label{{"a", "a"}, {"b"}}, [][]int{{0, 1}, {0, 0}}, nil)
	assert.ErrorContains(t, err, "duplicate")
}
