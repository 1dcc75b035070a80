package npy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/nd4go/nd4go/internal/array"
)

// Read decodes one NPY stream into an owning array. Column-major
// (fortran_order) files are constructed over the decoded buffer with
// column-major strides, so no element shuffling happens on load.
func Read(r io.Reader) (*array.Array, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	dtype, err := DTypeFromDescr(h.Descr)
	if err != nil {
		return nil, err
	}
	shape := array.Shape(h.Shape)
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	data := make([]byte, shape.NumElements()*dtype.Size())
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrFormat, err)
	}
	strides := shape.ComputeStrides()
	if h.FortranOrder {
		strides = shape.ComputeColMajorStrides()
	}
	return array.NewStrided(data, shape, strides, 0, dtype)
}

// readHeader consumes the magic, version, and dict header.
func readHeader(r io.Reader) (Header, error) {
	var h Header
	pre := make([]byte, len(magic)+2)
	if _, err := io.ReadFull(r, pre); err != nil {
		return h, fmt.Errorf("%w: preamble: %v", ErrFormat, err)
	}
	if !bytes.Equal(pre[:len(magic)], magic) {
		return h, fmt.Errorf("%w: bad magic %q", ErrFormat, pre[:len(magic)])
	}
	major, minor := pre[len(magic)], pre[len(magic)+1]
	var headerLen int
	switch major {
	case 1:
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return h, fmt.Errorf("%w: header length: %v", ErrFormat, err)
		}
		headerLen = int(n)
	case 2, 3:
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return h, fmt.Errorf("%w: header length: %v", ErrFormat, err)
		}
		headerLen = int(n)
	default:
		return h, fmt.Errorf("%w: unsupported version %d.%d", ErrFormat, major, minor)
	}
	dict := make([]byte, headerLen)
	if _, err := io.ReadFull(r, dict); err != nil {
		return h, fmt.Errorf("%w: header: %v", ErrFormat, err)
	}
	return parseHeaderDict(string(dict))
}

// ReadFile decodes one .npy file.
func ReadFile(path string) (*array.Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
