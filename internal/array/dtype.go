// Package array implements the strided n-dimensional array engine:
// dtypes and promotion, strided storage with view/copy semantics,
// broadcasting, elementwise and reduction kernels, shape transforms,
// and the dense linear-algebra primitives.
package array

import "fmt"

// DType identifies the element type of an array's buffer.
type DType int

// The closed set of supported element types.
const (
	Bool DType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
)

// DTypes lists every supported dtype, in declaration order.
var DTypes = []DType{Bool, Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float32, Float64}

// Size returns the byte width of one element.
func (d DType) Size() int {
	switch d {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		panic(fmt.Sprintf("unknown dtype %d", int(d)))
	}
}

// IsFloat reports whether d is a floating-point dtype.
func (d DType) IsFloat() bool {
	return d == Float32 || d == Float64
}

// IsInteger reports whether d is an exact integer dtype (bool excluded).
func (d DType) IsInteger() bool {
	switch d {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

// IsSigned reports whether d is a signed integer dtype.
func (d DType) IsSigned() bool {
	switch d {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// IsWide reports whether d needs the 64-bit integer working representation.
// Arithmetic on these dtypes cannot round-trip through float64 without
// losing precision above 2^53.
func (d DType) IsWide() bool {
	return d == Int64 || d == Uint64
}

// String returns the NumPy-style name of the dtype.
func (d DType) String() string {
	switch d {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// DTypeFromString resolves a dtype name as produced by DType.String.
func DTypeFromString(name string) (DType, error) {
	for _, d := range DTypes {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("dtype: %w: %q", ErrUnsupportedDType, name)
}

// Promote selects the output dtype for a pair of operand dtypes.
// The rules follow NumPy's value-independent promotion lattice:
//
//   - identical dtypes stay put, bool yields to the other operand
//   - float64 dominates any float pairing; float32 survives only against
//     itself and the 8/16-bit integers (its 24-bit mantissa cannot hold
//     a 32-bit integer range)
//   - same-signedness integers take the larger width
//   - signed vs unsigned takes the signed type when it is strictly wider,
//     otherwise the smallest signed width that covers the unsigned range,
//     escalating to float64 when no such width exists (uint64)
func Promote(a, b DType) DType {
	if a == b {
		return a
	}
	if a == Bool {
		return b
	}
	if b == Bool {
		return a
	}
	if a.IsFloat() || b.IsFloat() {
		if a.IsFloat() && b.IsFloat() {
			if a == Float64 || b == Float64 {
				return Float64
			}
			return Float32
		}
		f, i := a, b
		if b.IsFloat() {
			f, i = b, a
		}
		if f == Float32 && i.Size() <= 2 {
			return Float32
		}
		return Float64
	}
	// Both exact integers from here on.
	if a.IsSigned() == b.IsSigned() {
		if a.Size() >= b.Size() {
			return a
		}
		return b
	}
	s, u := a, b
	if b.IsSigned() {
		s, u = b, a
	}
	if s.Size() > u.Size() {
		return s
	}
	switch {
	case u.Size() < 2:
		return Int16
	case u.Size() < 4:
		return Int32
	case u.Size() < 8:
		return Int64
	default:
		return Float64
	}
}

// promoteAll folds Promote over the dtypes of all operands.
func promoteAll(arrays []*Array) DType {
	d := arrays[0].dtype
	for _, a := range arrays[1:] {
		d = Promote(d, a.dtype)
	}
	return d
}

// toFloat maps a dtype to the floating dtype that operations like divide
// and mean produce: float32 stays, everything else widens to float64.
func toFloat(d DType) DType {
	if d == Float32 {
		return Float32
	}
	return Float64
}

// sumDType maps a dtype to the accumulator dtype used by sum/prod/trace:
// floats keep their precision, bool and signed integers widen to int64,
// unsigned integers widen to uint64.
func sumDType(d DType) DType {
	switch {
	case d.IsFloat():
		return d
	case d.IsInteger() && !d.IsSigned():
		return Uint64
	default:
		return Int64
	}
}
