// Package npy exchanges arrays with the NPY binary format and NPZ
// archives.
//
// Example:
//
//	a, _ := array.Arange(0, 6, 1, array.Float64)
//	_ = npy.WriteFile("a.npy", a)
//	back, _ := npy.ReadFile("a.npy")
package npy

import (
	"io"

	"github.com/nd4go/nd4go/internal/array"
	"github.com/nd4go/nd4go/internal/npy"
)

// Header is the decoded NPY dict header.
type Header = npy.Header

// ErrFormat marks input that is not a well-formed NPY stream.
var ErrFormat = npy.ErrFormat

// Descr returns the NPY type descriptor for a dtype.
func Descr(dtype array.DType) string { return npy.Descr(dtype) }

// DTypeFromDescr resolves a type descriptor to a dtype.
func DTypeFromDescr(descr string) (array.DType, error) { return npy.DTypeFromDescr(descr) }

// Read decodes one NPY stream.
func Read(r io.Reader) (*array.Array, error) { return npy.Read(r) }

// Write encodes an array as one NPY stream.
func Write(w io.Writer, a *array.Array) error { return npy.Write(w, a) }

// ReadFile decodes a .npy file.
func ReadFile(path string) (*array.Array, error) { return npy.ReadFile(path) }

// WriteFile encodes an array into a .npy file.
func WriteFile(path string, a *array.Array) error { return npy.WriteFile(path, a) }

// ReadArchive decodes an NPZ archive into named arrays.
func ReadArchive(r io.ReaderAt, size int64) (map[string]*array.Array, error) {
	return npy.ReadArchive(r, size)
}

// WriteArchive encodes named arrays as an NPZ archive.
func WriteArchive(w io.Writer, arrays map[string]*array.Array) error {
	return npy.WriteArchive(w, arrays)
}

// ReadArchiveFile decodes a .npz file.
func ReadArchiveFile(path string) (map[string]*array.Array, error) {
	return npy.ReadArchiveFile(path)
}

// WriteArchiveFile encodes named arrays into a .npz file.
func WriteArchiveFile(path string, arrays map[string]*array.Array) error {
	return npy.WriteArchiveFile(path, arrays)
}
