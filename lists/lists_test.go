package lists

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntersectKeepsBaseOrder(t *testing.T) {
	base := []string{"e", "b", "c", "f"}
	filter := []string{"a", "c", "e"}

	out := make([]string, len(base))
	n := Intersect(base, filter, out, map[string]uint8{})

	assert.Equal(t, []string{"e", "c"}, out[:n])
	assert.Equal(t, []string{"e", "c"}, IntersectOrdered(base, filter))
	assert.Empty(t, IntersectOrdered(base, nil))
}

func TestDifference(t *testing.T) {
	assert.Equal(t, []int{1, 3}, Difference([]int{1, 2, 3}, []int{2, 4}))
}

func TestUnion(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Union([]string{"a", "b"}, []string{"b", "c", "c"}))
}

func TestMultiset(t *testing.T) {
	assert.True(t, HasDuplicates([]string{"a", "a"}))
	assert.False(t, HasDuplicates([]string{"a", "b"}))

	assert.Equal(t, map[string]int{"a": 2, "b": 1}, Counts([]string{"a", "b", "a"}))
}

func BenchmarkIntersect(b *testing.B) {
	base := make([]int, 4000)
	filter := make([]int, 0, 2000)
	for i := range base {
		base[i] = i
		if i%2 == 0 {
			filter = append(filter, i)
		}
	}

	out := make([]int, len(base))
	cache := make(map[int]uint8, len(filter))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Intersect(base, filter, out, cache)
	}
}
