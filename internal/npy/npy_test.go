package npy

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nd4go/nd4go/internal/array"
)

func roundTrip(t *testing.T, a *array.Array) *array.Array {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, a))
	back, err := Read(&buf)
	require.NoError(t, err)
	return back
}

func TestRoundTripAllDTypes(t *testing.T) {
	for _, dtype := range array.DTypes {
		a, err := array.New(array.Shape{2, 3}, dtype)
		require.NoError(t, err)
		for i := 0; i < a.Size(); i++ {
			require.NoError(t, a.LinearSet(i, float64(i%2)))
		}
		back := roundTrip(t, a)
		assert.Equal(t, dtype, back.DType(), dtype.String())
		assert.True(t, array.AllEqual(a, back), dtype.String())
	}
}

func TestRoundTripShapes(t *testing.T) {
	for _, shape := range []array.Shape{{}, {0}, {5}, {2, 0, 3}, {2, 3, 4}} {
		a, err := array.Zeros(shape, array.Float64)
		require.NoError(t, err)
		back := roundTrip(t, a)
		assert.Equal(t, shape, back.Shape())
	}
}

func TestWriteNormalizesViews(t *testing.T) {
	a, err := array.FromSlice([]float64{1, 2, 3, 4, 5, 6}, array.Shape{2, 3})
	require.NoError(t, err)
	tr, err := array.Transpose(a)
	require.NoError(t, err)
	back := roundTrip(t, tr)
	assert.True(t, back.IsContiguous())
	assert.True(t, array.AllEqual(tr, back))
}

func TestPayloadAlignment(t *testing.T) {
	a, err := array.Zeros(array.Shape{4}, array.Float64)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, a))
	headerLen := buf.Len() - 4*8
	assert.Zero(t, headerLen%headerAlign)
	assert.Equal(t, byte('\n'), buf.Bytes()[headerLen-1])
}

func TestReadFortranOrder(t *testing.T) {
	// Hand-build a column-major 2x3 int32 file.
	dict := "{'descr': '<i4', 'fortran_order': True, 'shape': (2, 3), }"
	var buf bytes.Buffer
	buf.Write(magic)
	buf.Write([]byte{1, 0})
	pad := make([]byte, 2)
	binary.LittleEndian.PutUint16(pad, uint16(len(dict)+1))
	buf.Write(pad)
	buf.WriteString(dict)
	buf.WriteByte('\n')
	// Column-major payload of [[1,2,3],[4,5,6]].
	for _, v := range []int32{1, 4, 2, 5, 3, 6} {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
	}
	a, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, array.Shape{2, 3}, a.Shape())
	assert.True(t, a.IsFortran())
	v, err := a.Get(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("PK\x03\x04junk")))
	assert.ErrorIs(t, err, ErrFormat)

	// Unsupported version byte.
	bad := append(append([]byte{}, magic...), 9, 0)
	_, err = Read(bytes.NewReader(bad))
	assert.ErrorIs(t, err, ErrFormat)

	// Truncated payload.
	a, errNew := array.Zeros(array.Shape{4}, array.Float64)
	require.NoError(t, errNew)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, a))
	_, err = Read(bytes.NewReader(buf.Bytes()[:buf.Len()-8]))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestDescrTable(t *testing.T) {
	want := map[array.DType]string{
		array.Bool:    "|b1",
		array.Int8:    "|i1",
		array.Int16:   "<i2",
		array.Int32:   "<i4",
		array.Int64:   "<i8",
		array.Uint8:   "|u1",
		array.Uint16:  "<u2",
		array.Uint32:  "<u4",
		array.Uint64:  "<u8",
		array.Float32: "<f4",
		array.Float64: "<f8",
	}
	for dtype, descr := range want {
		assert.Equal(t, descr, Descr(dtype))
		back, err := DTypeFromDescr(descr)
		require.NoError(t, err)
		assert.Equal(t, dtype, back)
	}
}

func TestDTypeFromDescr(t *testing.T) {
	d, err := DTypeFromDescr("=f8")
	require.NoError(t, err)
	assert.Equal(t, array.Float64, d)

	_, err = DTypeFromDescr(">f8")
	assert.ErrorIs(t, err, ErrFormat)
	_, err = DTypeFromDescr("<c16")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestParseHeaderDict(t *testing.T) {
	h, err := parseHeaderDict("{'descr': '<f8', 'fortran_order': False, 'shape': (3, 4), }")
	require.NoError(t, err)
	want := Header{Descr: "<f8", Shape: []int{3, 4}}
	assert.Empty(t, cmp.Diff(want, h))

	h, err = parseHeaderDict("{'descr': '|b1', 'fortran_order': True, 'shape': (7,), }")
	require.NoError(t, err)
	want = Header{Descr: "|b1", FortranOrder: true, Shape: []int{7}}
	assert.Empty(t, cmp.Diff(want, h))

	h, err = parseHeaderDict("{'descr': '<i8', 'fortran_order': False, 'shape': (), }")
	require.NoError(t, err)
	assert.Empty(t, h.Shape)

	_, err = parseHeaderDict("{'fortran_order': False, 'shape': (3,), }")
	assert.ErrorIs(t, err, ErrFormat)
	_, err = parseHeaderDict("{'descr': '<f8', 'fortran_order': maybe, 'shape': (3,), }")
	assert.ErrorIs(t, err, ErrFormat)
	_, err = parseHeaderDict("{'descr': '<f8', 'fortran_order': False, 'shape': 3, }")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestHeaderDictRendering(t *testing.T) {
	h := Header{Descr: "<f8", Shape: []int{3}}
	assert.Equal(t, "{'descr': \"<f8\", 'fortran_order': False, 'shape': (3,), }", h.headerDict())

	back, err := parseHeaderDict(h.headerDict())
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(h, back))
}

func TestFileRoundTrip(t *testing.T) {
	a, err := array.Arange(0, 10, 1, array.Int64)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "a.npy")
	require.NoError(t, WriteFile(path, a))
	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.True(t, array.AllEqual(a, back))
}
