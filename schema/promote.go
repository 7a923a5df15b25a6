package schema

// rank orders the numeric tower bool < int64 < float64 < complex128 < object.
// Datetime sits outside the tower.
var rank = [...]int{
	BoolFieldType:       0,
	Int64FieldType:      1,
	Float64FieldType:    2,
	Complex128FieldType: 3,
	ObjectFieldType:     4,
	DatetimeFieldType:   -1,
}

// Promote returns the lowest dtype able to hold values of both a and b
// without loss. Object is the fallback when nothing else fits.
func Promote(a, b FieldType) FieldType {
	if a == b {
		return a
	}

	if a == DatetimeFieldType || b == DatetimeFieldType {
		return ObjectFieldType
	}

	if rank[a] > rank[b] {
		return a
	}
	return b
}

// Common folds Promote over types. It returns InvalidFieldType for an empty list.
func Common(types ...FieldType) FieldType {
	if len(types) == 0 {
		return InvalidFieldType
	}

	result := types[0]
	for _, t := range types[1:] {
		result = Promote(result, t)
	}
	return result
}

// MissingHolder is the dtype a column has to take to represent a missing
// entry. Bool and int64 have no missing sentinel and move to float64.
func MissingHolder(f FieldType) FieldType {
	switch f {
	case BoolFieldType, Int64FieldType:
		return Float64FieldType
	default:
		return f
	}
}
