package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteTower(t *testing.T) {
	assert.Equal(t, Int64FieldType, Promote(BoolFieldType, Int64FieldType))
	assert.Equal(t, Float64FieldType, Promote(Int64FieldType, Float64FieldType))
	assert.Equal(t, Complex128FieldType, Promote(Float64FieldType, Complex128FieldType))
	assert.Equal(t, ObjectFieldType, Promote(Complex128FieldType, ObjectFieldType))
	assert.Equal(t, ObjectFieldType, Promote(ObjectFieldType, BoolFieldType))

	assert.Equal(t, DatetimeFieldType, Promote(DatetimeFieldType, DatetimeFieldType))
	assert.Equal(t, ObjectFieldType, Promote(DatetimeFieldType, Int64FieldType))
}

func TestCommon(t *testing.T) {
	assert.Equal(t, BoolFieldType, Common(BoolFieldType, BoolFieldType))
	assert.Equal(t, Int64FieldType, Common(Int64FieldType))
	assert.Equal(t, Float64FieldType, Common(BoolFieldType, Int64FieldType, Float64FieldType))
	assert.Equal(t, InvalidFieldType, Common())
}

func TestInfer(t *testing.T) {
	cases := []struct {
		data any
		want FieldType
	}{
		{[]bool{true}, BoolFieldType},
		{[]int32{1}, Int64FieldType},
		{[]uint8{1}, Int64FieldType},
		{[]float32{1}, Float64FieldType},
		{[]complex64{1}, Complex128FieldType},
		{[]string{"a"}, ObjectFieldType},
		{[]any{1, "a"}, ObjectFieldType},
		{[]time.Time{time.Unix(0, 0)}, DatetimeFieldType},
	}

	for _, c := range cases {
		got, err := Infer(c.data)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%T", c.data)
	}

	_, err := Infer([]struct{}{{}})
	assert.Error(t, err)
}

func TestParseFieldType(t *testing.T) {
	for _, ft := range AllFieldTypes {
		parsed, err := ParseFieldType(ft.String())
		require.NoError(t, err)
		assert.Equal(t, ft, parsed)
	}

	_, err := ParseFieldType("float16")
	assert.Error(t, err)
}

func TestMissingHolder(t *testing.T) {
	assert.Equal(t, Float64FieldType, MissingHolder(BoolFieldType))
	assert.Equal(t, Float64FieldType, MissingHolder(Int64FieldType))
	assert.Equal(t, ObjectFieldType, MissingHolder(ObjectFieldType))
	assert.Equal(t, DatetimeFieldType, MissingHolder(DatetimeFieldType))
}
