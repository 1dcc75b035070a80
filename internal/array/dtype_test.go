package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDTypeSize(t *testing.T) {
	sizes := map[DType]int{
		Bool: 1, Int8: 1, Uint8: 1,
		Int16: 2, Uint16: 2,
		Int32: 4, Uint32: 4, Float32: 4,
		Int64: 8, Uint64: 8, Float64: 8,
	}
	for dtype, want := range sizes {
		assert.Equal(t, want, dtype.Size(), dtype.String())
	}
}

func TestDTypeFromString(t *testing.T) {
	for _, dtype := range DTypes {
		got, err := DTypeFromString(dtype.String())
		require.NoError(t, err)
		assert.Equal(t, dtype, got)
	}
	_, err := DTypeFromString("complex128")
	assert.ErrorIs(t, err, ErrUnsupportedDType)
}

func TestPromoteSymmetric(t *testing.T) {
	for _, a := range DTypes {
		for _, b := range DTypes {
			assert.Equal(t, Promote(a, b), Promote(b, a), "%s vs %s", a, b)
		}
	}
}

func TestPromoteIdentity(t *testing.T) {
	for _, d := range DTypes {
		assert.Equal(t, d, Promote(d, d))
		assert.Equal(t, d, Promote(d, Bool))
	}
}

func TestPromotePairs(t *testing.T) {
	cases := []struct {
		a, b, want DType
	}{
		{Int8, Int32, Int32},
		{Int8, Uint8, Int16},
		{Int16, Uint16, Int32},
		{Int32, Uint32, Int64},
		{Int64, Uint32, Int64},
		{Int64, Uint64, Float64},
		{Uint8, Uint32, Uint32},
		{Float32, Int8, Float32},
		{Float32, Int16, Float32},
		{Float32, Int32, Float64},
		{Float32, Int64, Float64},
		{Float32, Uint32, Float64},
		{Float32, Float64, Float64},
		{Float64, Uint64, Float64},
		{Bool, Float32, Float32},
		{Bool, Uint16, Uint16},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Promote(tc.a, tc.b), "%s + %s", tc.a, tc.b)
	}
}

func TestSumDType(t *testing.T) {
	assert.Equal(t, Int64, sumDType(Bool))
	assert.Equal(t, Int64, sumDType(Int8))
	assert.Equal(t, Int64, sumDType(Int64))
	assert.Equal(t, Uint64, sumDType(Uint8))
	assert.Equal(t, Uint64, sumDType(Uint64))
	assert.Equal(t, Float32, sumDType(Float32))
	assert.Equal(t, Float64, sumDType(Float64))
}
