package lists

// Intersect writes into out every element of base that is also present in
// filter, in base order, and returns the number written. cache is cleared
// and reused as the lookup set so hot paths can keep it around.
func Intersect[T comparable](base, filter, out []T, cache map[T]uint8) int {
	if len(base) == 0 || len(filter) == 0 {
		return 0
	}

	clear(cache)
	for _, v := range filter {
		cache[v] = 0
	}

	filled := 0
	for _, v := range base {
		if _, ok := cache[v]; ok {
			out[filled] = v
			filled++
		}
	}

	return filled
}

// IntersectOrdered is the allocating form of Intersect.
func IntersectOrdered[T comparable](base, filter []T) []T {
	out := make([]T, len(base))
	n := Intersect(base, filter, out, make(map[T]uint8, len(filter)))
	return out[:n]
}

// Difference returns the elements of base that are not in drop, base order.
func Difference[T comparable](base, drop []T) []T {
	cache := make(map[T]uint8, len(drop))
	for _, v := range drop {
		cache[v] = 0
	}

	out := make([]T, 0, len(base))
	for _, v := range base {
		if _, ok := cache[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
