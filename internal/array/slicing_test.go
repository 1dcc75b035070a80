package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceBasic(t *testing.T) {
	a := mkf(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, Shape{10})

	s, err := Slice(a, []Range{NewRange(2, 7)})
	require.NoError(t, err)
	assert.Equal(t, Shape{5}, s.Shape())
	assert.True(t, s.IsView())
	assert.Equal(t, []float64{2, 3, 4, 5, 6}, values(t, s))
}

func TestSliceStep(t *testing.T) {
	a := mkf(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, Shape{10})

	s, err := Slice(a, []Range{{Start: 1, Stop: 8, Step: 2, HasStart: true, HasStop: true}})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 5, 7}, values(t, s))
}

func TestSliceNegativeStep(t *testing.T) {
	a := mkf(t, []float64{0, 1, 2, 3, 4}, Shape{5})

	// "::-1"
	s, err := Slice(a, []Range{{Step: -1}})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 3, 2, 1, 0}, values(t, s))

	// "3:0:-2"
	s, err = Slice(a, []Range{{Start: 3, Stop: 0, Step: -2, HasStart: true, HasStop: true}})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1}, values(t, s))
}

func TestSliceNegativeBounds(t *testing.T) {
	a := mkf(t, []float64{0, 1, 2, 3, 4}, Shape{5})
	s, err := Slice(a, []Range{NewRange(-3, -1)})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, values(t, s))
}

func TestSliceClampsOutOfRange(t *testing.T) {
	a := mkf(t, []float64{0, 1, 2}, Shape{3})
	s, err := Slice(a, []Range{NewRange(1, 100)})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, values(t, s))

	s, err = Slice(a, []Range{NewRange(2, 1)})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Size())
}

func TestSliceIndexRemovesAxis(t *testing.T) {
	a := mkf(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})

	row, err := Slice(a, []Range{Index(1)})
	require.NoError(t, err)
	assert.Equal(t, Shape{3}, row.Shape())
	assert.Equal(t, []float64{4, 5, 6}, values(t, row))

	elem, err := Slice(a, []Range{Index(-1), Index(-1)})
	require.NoError(t, err)
	assert.Equal(t, 0, elem.Rank())
	v, err := elem.Get()
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	_, err = Slice(a, []Range{Index(2)})
	assert.ErrorIs(t, err, ErrIndex)
}

func TestSliceTrailingAxesWhole(t *testing.T) {
	a := mkf(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	s, err := Slice(a, []Range{NewRange(1, 2)})
	require.NoError(t, err)
	assert.Equal(t, Shape{1, 3}, s.Shape())
	assert.Equal(t, []float64{4, 5, 6}, values(t, s))
}

func TestSliceZeroStepFails(t *testing.T) {
	a := mkf(t, []float64{1, 2, 3}, Shape{3})
	_, err := Slice(a, []Range{{Step: 0, HasStart: true}})
	assert.ErrorIs(t, err, ErrDomain)
}

func TestSliceTooManyTerms(t *testing.T) {
	a := mkf(t, []float64{1, 2, 3}, Shape{3})
	_, err := Slice(a, []Range{FullRange(), FullRange()})
	assert.ErrorIs(t, err, ErrShape)
}

func TestSliceWritesThrough(t *testing.T) {
	a := mkf(t, []float64{1, 2, 3, 4}, Shape{4})
	s, err := Slice(a, []Range{NewRange(1, 3)})
	require.NoError(t, err)
	require.NoError(t, s.Set(99, 0))
	v, err := a.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 99.0, v)
}
