package schema

import "fmt"

// FieldType is the dtype of a block. Every value inside a block shares it.
type FieldType uint8

const (
	BoolFieldType FieldType = iota
	Int64FieldType
	Float64FieldType
	Complex128FieldType
	ObjectFieldType
	DatetimeFieldType

	InvalidFieldType FieldType = 0xff
)

// AllFieldTypes lists the dtypes in enum order. Consolidation emits blocks in this order.
var AllFieldTypes = []FieldType{
	BoolFieldType,
	Int64FieldType,
	Float64FieldType,
	Complex128FieldType,
	ObjectFieldType,
	DatetimeFieldType,
}

func (f FieldType) String() string {
	switch f {
	case BoolFieldType:
		return "bool"
	case Int64FieldType:
		return "int64"
	case Float64FieldType:
		return "float64"
	case Complex128FieldType:
		return "complex128"
	case ObjectFieldType:
		return "object"
	case DatetimeFieldType:
		return "datetime64[ns]"
	default:
		return fmt.Sprintf("FieldType(%d)", uint8(f))
	}
}

// Size is the element size in bytes of the canonical storage. Object
// values are variable sized and report 0.
func (f FieldType) Size() int {
	switch f {
	case BoolFieldType:
		return 1
	case Int64FieldType, Float64FieldType, DatetimeFieldType:
		return 8
	case Complex128FieldType:
		return 16
	case ObjectFieldType:
		return 0
	default:
		panic("unknown field type " + f.String())
	}
}

func (f FieldType) Valid() bool {
	return f <= DatetimeFieldType
}

// IsNumeric reports int, float and complex dtypes. Bool is not
// numeric here; callers select it explicitly.
func (f FieldType) IsNumeric() bool {
	switch f {
	case Int64FieldType, Float64FieldType, Complex128FieldType:
		return true
	}
	return false
}

// ParseFieldType is the inverse of String.
func ParseFieldType(name string) (FieldType, error) {
	for _, t := range AllFieldTypes {
		if t.String() == name {
			return t, nil
		}
	}
	return InvalidFieldType, fmt.Errorf("unknown field type '%s'", name)
}
