package array_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nd4go/nd4go/array"
)

func TestEndToEnd(t *testing.T) {
	a, err := array.FromNested([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	b, err := array.FromNested([]float64{10, 20})
	require.NoError(t, err)

	sum, err := array.Add(a, b)
	require.NoError(t, err)
	v, err := sum.Get(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 24.0, v)

	total, err := array.Sum(sum)
	require.NoError(t, err)
	tv, err := total.Get()
	require.NoError(t, err)
	assert.Equal(t, 70.0, tv)

	prod, err := array.MatMul(a, a)
	require.NoError(t, err)
	assert.Equal(t, array.Shape{2, 2}, prod.Shape())
}

func TestParseSlice(t *testing.T) {
	a, err := array.Arange(0, 10, 1, array.Float64)
	require.NoError(t, err)

	ranges, err := array.ParseSlice("2:8:2")
	require.NoError(t, err)
	s, err := array.Slice(a, ranges)
	require.NoError(t, err)
	assert.Equal(t, array.Shape{3}, s.Shape())
	v, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	ranges, err = array.ParseSlice("::-1")
	require.NoError(t, err)
	rev, err := array.Slice(a, ranges)
	require.NoError(t, err)
	v, err = rev.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)

	_, err = array.ParseSlice("1:2:3:4")
	assert.Error(t, err)
}

func TestErrorKinds(t *testing.T) {
	a, err := array.Zeros(array.Shape{2}, array.Float64)
	require.NoError(t, err)
	b, err := array.Zeros(array.Shape{3}, array.Float64)
	require.NoError(t, err)
	_, err = array.Add(a, b)
	assert.ErrorIs(t, err, array.ErrShape)
	_, err = array.SumAxis(a, 5, false)
	assert.ErrorIs(t, err, array.ErrAxis)
	_, err = a.Get(7)
	assert.ErrorIs(t, err, array.ErrIndex)
}
