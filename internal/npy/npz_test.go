package npy

import (
	"bytes"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nd4go/nd4go/internal/array"
)

func TestArchiveRoundTrip(t *testing.T) {
	a, err := array.Arange(0, 6, 1, array.Float64)
	require.NoError(t, err)
	b, err := array.FromSlice([]int32{1, 2, 3, 4}, array.Shape{2, 2})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, map[string]*array.Array{"a": a, "b": b}))

	back, err := ReadArchive(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make([]string, 0, len(back))
	for name := range back {
		names = append(names, name)
	}
	sort.Strings(names)
	assert.Empty(t, cmp.Diff([]string{"a", "b"}, names))

	assert.True(t, array.AllEqual(a, back["a"]))
	assert.True(t, array.AllEqual(b, back["b"]))
	assert.Equal(t, array.Int32, back["b"].DType())
}

func TestArchiveRejectsGarbage(t *testing.T) {
	data := []byte("not a zip file at all")
	_, err := ReadArchive(bytes.NewReader(data), int64(len(data)))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestArchiveFileRoundTrip(t *testing.T) {
	a, err := array.Ones(array.Shape{3}, array.Float32)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "data.npz")
	require.NoError(t, WriteArchiveFile(path, map[string]*array.Array{"ones": a}))
	back, err := ReadArchiveFile(path)
	require.NoError(t, err)
	require.Contains(t, back, "ones")
	assert.True(t, array.AllEqual(a, back["ones"]))
}
