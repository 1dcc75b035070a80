package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nd4go/nd4go/array"
	"github.com/nd4go/nd4go/npy"
)

func TestLoadNpyNamesAfterStem(t *testing.T) {
	a, err := array.Arange(0, 4, 1, array.Float64)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "weights.npy")
	require.NoError(t, npy.WriteFile(path, a))

	arrays, err := load(path)
	require.NoError(t, err)
	require.Contains(t, arrays, "weights")
	assert.True(t, array.AllEqual(a, arrays["weights"]))
}

func TestLoadNpz(t *testing.T) {
	a, err := array.Ones(array.Shape{2}, array.Int64)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "data.npz")
	require.NoError(t, npy.WriteArchiveFile(path, map[string]*array.Array{"x": a, "y": a}))

	arrays, err := load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, sortedNames(arrays))
}

func TestPick(t *testing.T) {
	a, err := array.Ones(array.Shape{1}, array.Float64)
	require.NoError(t, err)
	arrays := map[string]*array.Array{"x": a, "y": a}

	got, err := pick(arrays, "y")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = pick(arrays, "z")
	assert.Error(t, err)
	_, err = pick(arrays, "")
	assert.Error(t, err)

	got, err = pick(map[string]*array.Array{"only": a}, "")
	require.NoError(t, err)
	assert.Same(t, a, got)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "(2, 3)", shapeString(array.Shape{2, 3}))
	assert.Equal(t, "()", shapeString(array.Shape{}))
}
