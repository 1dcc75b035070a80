package array

import "fmt"

// Shape holds the ordered axis sizes of an array.
type Shape []int

// NumElements returns the total element count (1 for a 0-d shape).
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate rejects negative axis sizes. Zero-size axes are legal and
// produce empty arrays.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("shape: %w: negative size %d on axis %d", ErrShape, dim, i)
		}
	}
	return nil
}

// Equal reports whether two shapes match axis for axis.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major element strides:
// strides[i] = product of all axis sizes after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// ComputeColMajorStrides calculates column-major element strides:
// strides[i] = product of all axis sizes before i.
func (s Shape) ComputeColMajorStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[0] = 1
	for i := 1; i < len(s); i++ {
		strides[i] = strides[i-1] * s[i-1]
	}
	return strides
}

// BroadcastShape reconciles any number of shapes under the broadcasting
// rules: shapes are right-aligned, missing axes count as 1, and at each
// aligned position every size other than 1 must agree.
func BroadcastShape(shapes ...Shape) (Shape, error) {
	if len(shapes) == 0 {
		return Shape{}, nil
	}
	maxLen := 0
	for _, s := range shapes {
		if len(s) > maxLen {
			maxLen = len(s)
		}
	}
	result := make(Shape, maxLen)
	for i := range result {
		result[i] = 1
	}
	for _, s := range shapes {
		for i := 0; i < len(s); i++ {
			pos := maxLen - len(s) + i
			dim := s[i]
			switch {
			case dim == result[pos] || dim == 1:
			case result[pos] == 1:
				result[pos] = dim
			default:
				return nil, shapeErrorf("broadcast",
					"operands could not be broadcast together with shapes %v", shapeList(shapes))
			}
		}
	}
	return result, nil
}

func shapeList(shapes []Shape) string {
	out := ""
	for i, s := range shapes {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%v", []int(s))
	}
	return out
}
