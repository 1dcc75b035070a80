// Package npy reads and writes the NPY binary array format and NPZ
// archives, bridging files and the array engine's storage values.
package npy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nd4go/nd4go/internal/array"
)

// ErrFormat marks input that is not a well-formed NPY stream.
var ErrFormat = errors.New("invalid npy format")

// magic opens every NPY stream, followed by one version byte pair.
var magic = []byte("\x93NUMPY")

// Header is the decoded NPY dict header.
type Header struct {
	Descr        string
	FortranOrder bool
	Shape        []int
}

// descrTable maps engine dtypes to NPY type descriptors. Single-byte
// types carry the no-order marker, the rest are little-endian.
var descrTable = map[array.DType]string{
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

// Descr returns the NPY type descriptor for a dtype.
func Descr(dtype array.DType) string {
	return descrTable[dtype]
}

// DTypeFromDescr resolves a type descriptor. Big-endian data is
// rejected; '<', '|', and '=' order markers are accepted.
func DTypeFromDescr(descr string) (array.DType, error) {
	if strings.HasPrefix(descr, ">") {
		return 0, fmt.Errorf("%w: big-endian descr %q not supported", ErrFormat, descr)
	}
	trimmed := strings.TrimLeft(descr, "<|=")
	for dtype, d := range descrTable {
		if strings.TrimLeft(d, "<|=") == trimmed {
			return dtype, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown descr %q", ErrFormat, descr)
}

// headerDict renders the Python dict literal of an NPY header.
func (h Header) headerDict() string {
	dims := make([]string, len(h.Shape))
	for i, d := range h.Shape {
		dims[i] = fmt.Sprintf("%d", d)
	}
	shape := strings.Join(dims, ", ")
	if len(h.Shape) == 1 {
		shape += "," // 1-tuples keep the trailing comma
	}
	order := "False"
	if h.FortranOrder {
		order = "True"
	}
	return fmt.Sprintf("{'descr': %q, 'fortran_order': %s, 'shape': (%s), }",
		h.Descr, order, shape)
}

// parseHeaderDict decodes the dict literal of an NPY header. The
// grammar is fixed enough that key scanning beats a real parser.
func parseHeaderDict(dict string) (Header, error) {
	var h Header
	descr, err := stringValue(dict, "descr")
	if err != nil {
		return h, err
	}
	h.Descr = descr
	order, err := rawValue(dict, "fortran_order")
	if err != nil {
		return h, err
	}
	switch order {
	case "True":
		h.FortranOrder = true
	case "False":
	default:
		return h, fmt.Errorf("%w: fortran_order %q", ErrFormat, order)
	}
	shape, err := rawValue(dict, "shape")
	if err != nil {
		return h, err
	}
	h.Shape, err = parseShapeTuple(shape)
	return h, err
}

// stringValue extracts a quoted dict value.
func stringValue(dict, key string) (string, error) {
	raw, err := rawValue(dict, key)
	if err != nil {
		return "", err
	}
	if len(raw) < 2 || (raw[0] != '\'' && raw[0] != '"') || raw[len(raw)-1] != raw[0] {
		return "", fmt.Errorf("%w: %s value %q is not a string", ErrFormat, key, raw)
	}
	return raw[1 : len(raw)-1], nil
}

// rawValue extracts the text of a dict value up to the key-level comma.
func rawValue(dict, key string) (string, error) {
	for _, quote := range []string{"'", "\""} {
		marker := quote + key + quote + ":"
		if pos := strings.Index(dict, marker); pos >= 0 {
			rest := dict[pos+len(marker):]
			depth := 0
			for i, c := range rest {
				switch c {
				case '(', '[':
					depth++
				case ')', ']':
					depth--
				case ',', '}':
					if depth == 0 {
						return strings.TrimSpace(rest[:i]), nil
					}
				}
			}
			return strings.TrimSpace(rest), nil
		}
	}
	return "", fmt.Errorf("%w: header key %q missing", ErrFormat, key)
}

func parseShapeTuple(text string) ([]int, error) {
	text = strings.TrimSpace(text)
	if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
		return nil, fmt.Errorf("%w: shape %q is not a tuple", ErrFormat, text)
	}
	inner := strings.TrimSpace(text[1 : len(text)-1])
	if inner == "" {
		return []int{}, nil
	}
	parts := strings.Split(strings.TrimSuffix(inner, ","), ",")
	shape := make([]int, len(parts))
	for i, p := range parts {
		var err error
		if _, err = fmt.Sscanf(strings.TrimSpace(p), "%d", &shape[i]); err != nil {
			return nil, fmt.Errorf("%w: shape element %q", ErrFormat, p)
		}
	}
	return shape, nil
}
