package array

import (
	"fmt"
	"math"
	"reflect"
)

// Elem is the constraint covering the Go element types an Array can hold.
type Elem interface {
	~bool | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

func inferDType[T Elem](dummy T) DType {
	switch any(dummy).(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported element type")
	}
}

// Zeros allocates an owning array filled with zeros.
func Zeros(shape Shape, dtype DType) (*Array, error) {
	return New(shape, dtype)
}

// Empty allocates an owning array without defined contents. Go zeroes
// fresh memory, so this is Zeros under a different contract: callers
// must not rely on the initial values.
func Empty(shape Shape, dtype DType) (*Array, error) {
	return New(shape, dtype)
}

// Ones allocates an owning array filled with ones.
func Ones(shape Shape, dtype DType) (*Array, error) {
	return Full(shape, 1, dtype)
}

// Full allocates an owning array filled with value, cast to dtype.
func Full(shape Shape, value float64, dtype DType) (*Array, error) {
	a, err := New(shape, dtype)
	if err != nil {
		return nil, err
	}
	a.Fill(value)
	return a, nil
}

// FromSlice builds an owning array of the given shape from a flat
// row-major Go slice. The data is copied.
func FromSlice[T Elem](data []T, shape Shape) (*Array, error) {
	if shape.NumElements() != len(data) {
		return nil, shapeErrorf("fromSlice", "shape %v requires %d elements, got %d",
			[]int(shape), shape.NumElements(), len(data))
	}
	var dummy T
	a, err := New(shape, inferDType(dummy))
	if err != nil {
		return nil, err
	}
	switch src := any(data).(type) {
	case []bool:
		d := a.u8()
		for i, v := range src {
			if v {
				d[i] = 1
			}
		}
	case []int8:
		copy(a.i8(), src)
	case []int16:
		copy(a.i16(), src)
	case []int32:
		copy(a.i32(), src)
	case []int64:
		copy(a.i64(), src)
	case []uint8:
		copy(a.u8(), src)
	case []uint16:
		copy(a.u16(), src)
	case []uint32:
		copy(a.u32(), src)
	case []uint64:
		copy(a.u64(), src)
	case []float32:
		copy(a.f32(), src)
	case []float64:
		copy(a.f64(), src)
	default:
		panic("unsupported element type")
	}
	return a, nil
}

// FromNested builds an owning array from a scalar or arbitrarily nested
// Go slices, validating that the nesting is rectangular. The dtype is
// promoted over the leaf types (Go int maps to int64, uint to uint64).
func FromNested(data any) (*Array, error) {
	shape, dtype, err := nestedShape(reflect.ValueOf(data))
	if err != nil {
		return nil, err
	}
	a, err := New(shape, dtype)
	if err != nil {
		return nil, err
	}
	pos := 0
	var fill func(v reflect.Value, depth int) error
	stF := a.floatStorer()
	stI := a.intStorer()
	stU := a.uintStorer()
	fill = func(v reflect.Value, depth int) error {
		for v.Kind() == reflect.Interface {
			v = v.Elem()
		}
		if depth == len(shape) {
			switch v.Kind() {
			case reflect.Bool:
				if v.Bool() {
					stI(pos, 1)
				} else {
					stI(pos, 0)
				}
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				stI(pos, v.Int())
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				stU(pos, v.Uint())
			case reflect.Float32, reflect.Float64:
				stF(pos, v.Float())
			default:
				return fmt.Errorf("fromNested: %w: leaf of kind %s", ErrUnsupportedDType, v.Kind())
			}
			pos++
			return nil
		}
		if v.Len() != shape[depth] {
			return shapeErrorf("fromNested", "ragged nesting at depth %d: %d != %d", depth, v.Len(), shape[depth])
		}
		for i := 0; i < v.Len(); i++ {
			if err := fill(v.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := fill(reflect.ValueOf(data), 0); err != nil {
		return nil, err
	}
	return a, nil
}

// FromNestedAs builds an array from nested Go slices and casts it to an
// explicit dtype instead of the promoted leaf dtype.
func FromNestedAs(data any, dtype DType) (*Array, error) {
	a, err := FromNested(data)
	if err != nil {
		return nil, err
	}
	if a.dtype == dtype {
		return a, nil
	}
	return AsType(a, dtype)
}

// nestedShape walks the first spine of the nesting for the shape and the
// whole structure for the promoted leaf dtype.
func nestedShape(v reflect.Value) (Shape, DType, error) {
	shape := Shape{}
	spine := v
	for spine.Kind() == reflect.Interface {
		spine = spine.Elem()
	}
	for spine.Kind() == reflect.Slice || spine.Kind() == reflect.Array {
		shape = append(shape, spine.Len())
		if spine.Len() == 0 {
			break
		}
		spine = spine.Index(0)
		for spine.Kind() == reflect.Interface {
			spine = spine.Elem()
		}
	}
	dtype := Bool
	seen := false
	var scan func(v reflect.Value, depth int) error
	scan = func(v reflect.Value, depth int) error {
		for v.Kind() == reflect.Interface {
			v = v.Elem()
		}
		if depth == len(shape) {
			d, err := leafDType(v)
			if err != nil {
				return err
			}
			if !seen {
				dtype, seen = d, true
			} else {
				dtype = Promote(dtype, d)
			}
			return nil
		}
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return shapeErrorf("fromNested", "ragged nesting at depth %d", depth)
		}
		if v.Len() != shape[depth] {
			return shapeErrorf("fromNested", "ragged nesting at depth %d: %d != %d", depth, v.Len(), shape[depth])
		}
		for i := 0; i < v.Len(); i++ {
			if err := scan(v.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := scan(v, 0); err != nil {
		return nil, 0, err
	}
	if !seen {
		dtype = Float64 // empty input defaults to float64, like np.array([])
	}
	return shape, dtype, nil
}

func leafDType(v reflect.Value) (DType, error) {
	switch v.Kind() {
	case reflect.Bool:
		return Bool, nil
	case reflect.Int8:
		return Int8, nil
	case reflect.Int16:
		return Int16, nil
	case reflect.Int32:
		return Int32, nil
	case reflect.Int, reflect.Int64:
		return Int64, nil
	case reflect.Uint8:
		return Uint8, nil
	case reflect.Uint16:
		return Uint16, nil
	case reflect.Uint32:
		return Uint32, nil
	case reflect.Uint, reflect.Uint64:
		return Uint64, nil
	case reflect.Float32:
		return Float32, nil
	case reflect.Float64:
		return Float64, nil
	default:
		return 0, fmt.Errorf("fromNested: %w: leaf of kind %s", ErrUnsupportedDType, v.Kind())
	}
}

// Arange builds a 1-d array of evenly stepped values in [start, stop).
func Arange(start, stop, step float64, dtype DType) (*Array, error) {
	if step == 0 {
		return nil, domainErrorf("arange", "step must not be zero")
	}
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		n = 0
	}
	a, err := New(Shape{n}, dtype)
	if err != nil {
		return nil, err
	}
	st := a.floatStorer()
	for i := 0; i < n; i++ {
		st(i, start+float64(i)*step)
	}
	return a, nil
}

// Linspace builds num evenly spaced float64 values from start to stop
// inclusive.
func Linspace(start, stop float64, num int) (*Array, error) {
	if num < 0 {
		return nil, domainErrorf("linspace", "number of samples must be non-negative, got %d", num)
	}
	a, err := New(Shape{num}, Float64)
	if err != nil {
		return nil, err
	}
	d := a.f64()
	if num == 1 {
		d[0] = start
		return a, nil
	}
	step := (stop - start) / float64(num-1)
	for i := 0; i < num; i++ {
		d[i] = start + float64(i)*step
	}
	if num > 0 {
		d[num-1] = stop // land exactly on the endpoint
	}
	return a, nil
}

// Logspace builds num values spaced evenly on a log scale, from
// base**start to base**stop inclusive.
func Logspace(start, stop float64, num int, base float64) (*Array, error) {
	a, err := Linspace(start, stop, num)
	if err != nil {
		return nil, err
	}
	d := a.f64()
	for i := range d {
		d[i] = math.Pow(base, d[i])
	}
	return a, nil
}

// Geomspace builds num values spaced evenly on a log scale between start
// and stop inclusive. Both endpoints must be nonzero and share a sign.
func Geomspace(start, stop float64, num int) (*Array, error) {
	if start == 0 || stop == 0 {
		return nil, domainErrorf("geomspace", "endpoints must be nonzero")
	}
	if (start < 0) != (stop < 0) {
		return nil, domainErrorf("geomspace", "endpoints %v and %v have mixed signs", start, stop)
	}
	sign := 1.0
	if start < 0 {
		sign = -1
	}
	a, err := Logspace(math.Log10(sign*start), math.Log10(sign*stop), num, 10)
	if err != nil {
		return nil, err
	}
	d := a.f64()
	for i := range d {
		d[i] *= sign
	}
	if num > 0 {
		d[0] = start
	}
	if num > 1 {
		d[num-1] = stop
	}
	return a, nil
}

// Eye builds a rows×cols matrix with ones on the k-th diagonal.
func Eye(rows, cols, k int, dtype DType) (*Array, error) {
	a, err := New(Shape{rows, cols}, dtype)
	if err != nil {
		return nil, err
	}
	st := a.floatStorer()
	for i := 0; i < rows; i++ {
		j := i + k
		if j >= 0 && j < cols {
			st(i*cols+j, 1)
		}
	}
	return a, nil
}

// Identity builds the n×n identity matrix.
func Identity(n int, dtype DType) (*Array, error) {
	return Eye(n, n, 0, dtype)
}

// AsType returns an owning copy cast to the target dtype. Values round
// or truncate toward the target representation; no range validation.
func AsType(a *Array, dtype DType) (*Array, error) {
	if dtype == a.dtype {
		return a.Copy(), nil
	}
	out, err := New(a.shape, dtype)
	if err != nil {
		return nil, err
	}
	n := a.Size()
	switch {
	case dtype == Uint64 && !a.dtype.IsFloat():
		ld, st := a.uintLoader(), out.uintStorer()
		for i := 0; i < n; i++ {
			st(i, ld(i))
		}
	case !dtype.IsFloat() && !a.dtype.IsFloat():
		ld, st := a.intLoader(), out.intStorer()
		for i := 0; i < n; i++ {
			st(i, ld(i))
		}
	default:
		ld, st := a.floatLoader(), out.floatStorer()
		for i := 0; i < n; i++ {
			st(i, ld(i))
		}
	}
	return out, nil
}
