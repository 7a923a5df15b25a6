package lists

// Union returns a followed by the elements of b not already seen, keeping
// first-occurrence order. Duplicates inside a are preserved.
func Union[T comparable](a, b []T) []T {
	seen := make(map[T]uint8, len(a)+len(b))
	for _, v := range a {
		seen[v] = 0
	}

	out := make([]T, len(a), len(a)+len(b))
	copy(out, a)

	for _, v := range b {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = 0
		out = append(out, v)
	}
	return out
}

// Counts returns the number of occurrences of each element.
func Counts[T comparable](a []T) map[T]int {
	result := make(map[T]int, len(a))
	for _, v := range a {
		result[v]++
	}
	return result
}

// HasDuplicates reports whether any element occurs more than once.
func HasDuplicates[T comparable](a []T) bool {
	seen := make(map[T]uint8, len(a))
	for _, v := range a {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = 0
	}
	return false
}
