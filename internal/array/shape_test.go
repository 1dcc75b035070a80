package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Equal(t, []int{1}, Shape{5}.ComputeStrides())
	assert.Equal(t, []int{}, []int(Shape{}.ComputeStrides()))
}

func TestComputeColMajorStrides(t *testing.T) {
	assert.Equal(t, []int{1, 2, 6}, Shape{2, 3, 4}.ComputeColMajorStrides())
	assert.Equal(t, []int{1}, Shape{5}.ComputeColMajorStrides())
	assert.Equal(t, []int{}, []int(Shape{}.ComputeColMajorStrides()))
}

func TestShapeValidate(t *testing.T) {
	assert.NoError(t, Shape{2, 0, 3}.Validate())
	assert.ErrorIs(t, Shape{2, -1}.Validate(), ErrShape)
}

func TestBroadcastShape(t *testing.T) {
	cases := []struct {
		a, b, want Shape
	}{
		{Shape{2, 3}, Shape{2, 3}, Shape{2, 3}},
		{Shape{2, 3}, Shape{3}, Shape{2, 3}},
		{Shape{2, 3}, Shape{1, 3}, Shape{2, 3}},
		{Shape{2, 1}, Shape{1, 3}, Shape{2, 3}},
		{Shape{8, 1, 6, 1}, Shape{7, 1, 5}, Shape{8, 7, 6, 5}},
		{Shape{3}, Shape{}, Shape{3}},
		{Shape{}, Shape{}, Shape{}},
	}
	for _, tc := range cases {
		got, err := BroadcastShape(tc.a, tc.b)
		require.NoError(t, err, "%v %v", tc.a, tc.b)
		assert.Equal(t, tc.want, got)
	}
}

func TestBroadcastShapeMismatch(t *testing.T) {
	_, err := BroadcastShape(Shape{2, 3}, Shape{4, 3})
	assert.ErrorIs(t, err, ErrShape)
	_, err = BroadcastShape(Shape{2}, Shape{3})
	assert.ErrorIs(t, err, ErrShape)
}

func TestBroadcastTo(t *testing.T) {
	a, err := FromSlice([]float64{1, 2, 3}, Shape{3})
	require.NoError(t, err)

	b, err := BroadcastTo(a, Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, b.Shape())
	assert.Equal(t, []int{0, 1}, b.Strides())
	assert.True(t, b.IsView())

	// The rows alias the same elements.
	v0, err := b.Get(0, 1)
	require.NoError(t, err)
	v1, err := b.Get(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v0)
	assert.Equal(t, 2.0, v1)

	// Mutating the source shows through the broadcast view.
	require.NoError(t, a.Set(9, 1))
	v1, err = b.Get(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 9.0, v1)
}

func TestBroadcastToShrinkFails(t *testing.T) {
	a, err := Zeros(Shape{2, 3}, Float64)
	require.NoError(t, err)
	_, err = BroadcastTo(a, Shape{3})
	assert.ErrorIs(t, err, ErrShape)
}

func TestBroadcastArrays(t *testing.T) {
	a, err := FromSlice([]float64{1, 2}, Shape{2, 1})
	require.NoError(t, err)
	b, err := FromSlice([]float64{10, 20, 30}, Shape{3})
	require.NoError(t, err)

	out, err := BroadcastArrays(a, b)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, Shape{2, 3}, out[0].Shape())
	assert.Equal(t, Shape{2, 3}, out[1].Shape())
}
