package npy

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/nd4go/nd4go/internal/array"
)

// headerAlign pads the preamble plus dict to a multiple of this size,
// keeping the payload aligned for memory mapping.
const headerAlign = 64

// Write encodes an array as one NPY v1.0 stream (v2.0 when the dict
// outgrows the 16-bit length field). The payload is always row-major;
// non-contiguous inputs are normalized through a copy first.
func Write(w io.Writer, a *array.Array) error {
	src := a
	if !src.IsContiguous() || src.Offset() != 0 {
		src = a.Copy()
	}
	h := Header{
		Descr: Descr(src.DType()),
		Shape: append([]int{}, src.Shape()...),
	}
	if err := writeHeader(w, h); err != nil {
		return err
	}
	payload := src.Bytes()[:src.Size()*src.DType().Size()]
	_, err := w.Write(payload)
	return err
}

func writeHeader(w io.Writer, h Header) error {
	dict := h.headerDict()
	// 2 version bytes and a 2-byte length for v1, 4-byte for v2.
	prefix := len(magic) + 2 + 2
	major := byte(1)
	if len(dict)+prefix+1 > 0xffff {
		prefix += 2
		major = 2
	}
	padded := len(dict) + 1 // newline terminator
	if rem := (prefix + padded) % headerAlign; rem != 0 {
		padded += headerAlign - rem
	}
	buf := make([]byte, 0, prefix+padded)
	buf = append(buf, magic...)
	buf = append(buf, major, 0)
	if major == 1 {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(padded))
	} else {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(padded))
	}
	buf = append(buf, dict...)
	for len(buf) < prefix+padded-1 {
		buf = append(buf, ' ')
	}
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}

// WriteFile encodes an array into a .npy file.
func WriteFile(path string, a *array.Array) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, a); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
