package schema

import (
	"fmt"
	"reflect"
	"time"
)

// Infer maps a Go slice to the dtype it is stored as. Narrow numeric
// types widen to their 64 bit family.
func Infer(data any) (FieldType, error) {
	switch data.(type) {
	case []bool:
		return BoolFieldType, nil
	case []int, []int8, []int16, []int32, []int64, []uint8, []uint16, []uint32:
		return Int64FieldType, nil
	case []float32, []float64:
		return Float64FieldType, nil
	case []complex64, []complex128:
		return Complex128FieldType, nil
	case []string, []any:
		return ObjectFieldType, nil
	case []time.Time:
		return DatetimeFieldType, nil
	default:
		return InvalidFieldType, fmt.Errorf("unsupported column data type %s", reflect.TypeOf(data))
	}
}

// InferScalar maps a single value to its dtype. Unknown values are objects.
func InferScalar(v any) FieldType {
	switch v.(type) {
	case bool:
		return BoolFieldType
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		return Int64FieldType
	case float32, float64:
		return Float64FieldType
	case complex64, complex128:
		return Complex128FieldType
	case time.Time:
		return DatetimeFieldType
	default:
		return ObjectFieldType
	}
}
