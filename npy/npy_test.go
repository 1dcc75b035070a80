package npy_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nd4go/nd4go/array"
	"github.com/nd4go/nd4go/npy"
)

func TestFileRoundTrip(t *testing.T) {
	a, err := array.Linspace(0, 1, 11)
	require.NoError(t, err)
	dir := t.TempDir()

	path := filepath.Join(dir, "a.npy")
	require.NoError(t, npy.WriteFile(path, a))
	back, err := npy.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, array.AllEqual(a, back))

	zpath := filepath.Join(dir, "a.npz")
	require.NoError(t, npy.WriteArchiveFile(zpath, map[string]*array.Array{"a": a}))
	members, err := npy.ReadArchiveFile(zpath)
	require.NoError(t, err)
	require.Contains(t, members, "a")
	assert.True(t, array.AllEqual(a, members["a"]))
}

func TestDescr(t *testing.T) {
	assert.Equal(t, "<f8", npy.Descr(array.Float64))
	d, err := npy.DTypeFromDescr("|u1")
	require.NoError(t, err)
	assert.Equal(t, array.Uint8, d)
}
