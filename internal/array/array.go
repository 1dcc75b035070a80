package array

import (
	"fmt"
	"unsafe"
)

// buffer is the flat element store shared between an owner and its views.
// It is a plain byte slice reinterpreted through unsafe.Slice; no
// reference counting, lifetime follows Go's garbage collector.
type buffer struct {
	data []byte
}

func newBuffer(numElements int, dtype DType) *buffer {
	return &buffer{data: make([]byte, numElements*dtype.Size())}
}

// numElements returns the buffer capacity in elements of the given dtype.
func (b *buffer) numElements(dtype DType) int {
	return len(b.data) / dtype.Size()
}

// Array is the strided storage value everything in the engine operates on.
// It references a flat buffer through shape, per-axis element strides, and
// an element offset. An Array is either an owner (fresh buffer) or a view
// (shares a buffer with other Arrays; mutation through any alias is
// visible through all). Shape, strides, dtype, and offset never change
// after construction; only buffer contents mutate.
type Array struct {
	buf     *buffer
	shape   Shape
	strides []int
	offset  int
	dtype   DType
	base    *Array // owning array this view was derived from, nil for owners
}

// New allocates an owning, zero-filled, row-major-contiguous array.
func New(shape Shape, dtype DType) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Array{
		buf:     newBuffer(shape.NumElements(), dtype),
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		dtype:   dtype,
	}, nil
}

// NewStrided constructs an owning array over a fresh buffer with explicit
// strides and offset. Every valid multi-index must resolve inside the
// buffer; callers are the format layer and tests.
func NewStrided(data []byte, shape Shape, strides []int, offset int, dtype DType) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(strides) != len(shape) {
		return nil, shapeErrorf("strided", "%d strides for rank %d", len(strides), len(shape))
	}
	a := &Array{
		buf:     &buffer{data: data},
		shape:   shape.Clone(),
		strides: append([]int(nil), strides...),
		offset:  offset,
		dtype:   dtype,
	}
	if size := shape.NumElements(); size > 0 {
		lo, hi := a.offset, a.offset
		for d, dim := range shape {
			span := (dim - 1) * strides[d]
			if span >= 0 {
				hi += span
			} else {
				lo += span
			}
		}
		if lo < 0 || hi >= a.buf.numElements(dtype) {
			return nil, fmt.Errorf("strided: %w: extent [%d,%d] outside buffer of %d elements",
				ErrIndex, lo, hi, a.buf.numElements(dtype))
		}
	}
	return a, nil
}

// view derives a new Array over the same buffer. The base back-reference
// always points at the owner, never at an intermediate view.
func (a *Array) view(shape Shape, strides []int, offset int) *Array {
	return &Array{
		buf:     a.buf,
		shape:   shape,
		strides: strides,
		offset:  offset,
		dtype:   a.dtype,
		base:    a.root(),
	}
}

// root returns the owning array behind any chain of views.
func (a *Array) root() *Array {
	if a.base != nil {
		return a.base
	}
	return a
}

// DType returns the element type.
func (a *Array) DType() DType { return a.dtype }

// Shape returns the axis sizes. The caller must not mutate it.
func (a *Array) Shape() Shape { return a.shape }

// Strides returns the per-axis element strides. The caller must not mutate it.
func (a *Array) Strides() []int { return a.strides }

// Offset returns the element offset of the first logical element.
func (a *Array) Offset() int { return a.offset }

// Rank returns the number of axes.
func (a *Array) Rank() int { return len(a.shape) }

// Size returns the total number of logical elements.
func (a *Array) Size() int { return a.shape.NumElements() }

// IsView reports whether the array shares its buffer with an owner.
func (a *Array) IsView() bool { return a.base != nil }

// Base returns the owning array a view was derived from, nil for owners.
// It exists for introspection only.
func (a *Array) Base() *Array { return a.base }

// Bytes exposes the raw backing buffer. Used by the binary format layer;
// mutations are visible through every alias.
func (a *Array) Bytes() []byte { return a.buf.data }

// IsContiguous reports whether the array is row-major contiguous: each
// stride equals the product of the axis sizes to its right. Size-1 axes
// place no constraint on their stride. A 1-d array is contiguous iff its
// single stride is 1.
func (a *Array) IsContiguous() bool {
	expect := 1
	for d := len(a.shape) - 1; d >= 0; d-- {
		if a.shape[d] == 1 {
			continue
		}
		if a.strides[d] != expect {
			return false
		}
		expect *= a.shape[d]
	}
	return true
}

// IsFortran reports whether the array is column-major contiguous: each
// stride equals the product of the axis sizes to its left.
func (a *Array) IsFortran() bool {
	expect := 1
	for d := 0; d < len(a.shape); d++ {
		if a.shape[d] == 1 {
			continue
		}
		if a.strides[d] != expect {
			return false
		}
		expect *= a.shape[d]
	}
	return true
}

// elemOffset validates a multi-index (negative indices count from the
// end) and resolves it to a physical element offset.
func (a *Array) elemOffset(op string, indices []int) (int, error) {
	if len(indices) != len(a.shape) {
		return 0, shapeErrorf(op, "%d indices for array of rank %d", len(indices), len(a.shape))
	}
	off := a.offset
	for d, idx := range indices {
		size := a.shape[d]
		if idx < 0 {
			idx += size
		}
		if idx < 0 || idx >= size {
			return 0, indexError(op, indices[d], d, size)
		}
		off += idx * a.strides[d]
	}
	return off, nil
}

// linearOffset maps a logical row-major flat index to a physical element
// offset by successive division over the trailing axes. This is the one
// mechanism every kernel uses to walk an array regardless of layout.
func (a *Array) linearOffset(i int) int {
	off := a.offset
	for d := len(a.shape) - 1; d >= 0; d-- {
		dim := a.shape[d]
		off += (i % dim) * a.strides[d]
		i /= dim
	}
	return off
}

// Get reads one element as float64.
func (a *Array) Get(indices ...int) (float64, error) {
	off, err := a.elemOffset("get", indices)
	if err != nil {
		return 0, err
	}
	return a.floatAt()(off), nil
}

// GetInt reads one element in the wide integer domain. Exact for the
// 64-bit integer dtypes where float64 would round.
func (a *Array) GetInt(indices ...int) (int64, error) {
	off, err := a.elemOffset("get", indices)
	if err != nil {
		return 0, err
	}
	return a.intAt()(off), nil
}

// Set writes one element, casting the value to the array's dtype.
func (a *Array) Set(value float64, indices ...int) error {
	off, err := a.elemOffset("set", indices)
	if err != nil {
		return err
	}
	a.setFloatAt()(off, value)
	return nil
}

// SetInt writes one element from the wide integer domain.
func (a *Array) SetInt(value int64, indices ...int) error {
	off, err := a.elemOffset("set", indices)
	if err != nil {
		return err
	}
	a.setIntAt()(off, value)
	return nil
}

// LinearGet reads the element at a logical row-major flat index.
func (a *Array) LinearGet(i int) (float64, error) {
	if i < 0 || i >= a.Size() {
		return 0, indexError("linearGet", i, 0, a.Size())
	}
	return a.floatAt()(a.linearOffset(i)), nil
}

// LinearSet writes the element at a logical row-major flat index.
func (a *Array) LinearSet(i int, value float64) error {
	if i < 0 || i >= a.Size() {
		return indexError("linearSet", i, 0, a.Size())
	}
	a.setFloatAt()(a.linearOffset(i), value)
	return nil
}

// Copy returns a new owning row-major-contiguous array with the same
// content. A contiguous source starting at offset 0 is a flat buffer
// copy; anything else is rewritten element by element in row-major
// order. Every copy semantic in the engine routes through here.
func (a *Array) Copy() *Array {
	out, _ := New(a.shape, a.dtype)
	if a.IsContiguous() && a.offset == 0 {
		copy(out.buf.data, a.buf.data[:len(out.buf.data)])
		return out
	}
	es := a.dtype.Size()
	n := a.Size()
	for i := 0; i < n; i++ {
		so := a.linearOffset(i) * es
		copy(out.buf.data[i*es:(i+1)*es], a.buf.data[so:so+es])
	}
	return out
}

// Fill overwrites every logical element with the given value, cast to
// the array's dtype. Writes through views mutate the shared buffer.
func (a *Array) Fill(value float64) {
	st := a.floatStorer()
	n := a.Size()
	for i := 0; i < n; i++ {
		st(i, value)
	}
}

// String renders dtype, shape, and the elements of small arrays.
func (a *Array) String() string {
	const maxRender = 64
	if a.Size() > maxRender {
		return fmt.Sprintf("Array[%s]%v (%d elements)", a.dtype, []int(a.shape), a.Size())
	}
	return fmt.Sprintf("Array[%s]%v %s", a.dtype, []int(a.shape), a.render())
}

func (a *Array) render() string {
	var rec func(prefix []int) string
	rec = func(prefix []int) string {
		if len(prefix) == len(a.shape) {
			off, _ := a.elemOffset("get", prefix)
			if a.dtype.IsWide() {
				if a.dtype == Uint64 {
					return fmt.Sprintf("%d", uint64(a.intAt()(off)))
				}
				return fmt.Sprintf("%d", a.intAt()(off))
			}
			if a.dtype == Bool {
				return fmt.Sprintf("%t", a.floatAt()(off) != 0)
			}
			return fmt.Sprintf("%v", a.floatAt()(off))
		}
		out := "["
		for i := 0; i < a.shape[len(prefix)]; i++ {
			if i > 0 {
				out += " "
			}
			out += rec(append(prefix, i))
		}
		return out + "]"
	}
	return rec(make([]int, 0, len(a.shape)))
}

// Typed full-buffer views, zero-copy reinterpretation of the byte store.
// Offsets into these slices are absolute element offsets.

func (a *Array) f32() []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(a.buf.data))), len(a.buf.data)/4)
}

func (a *Array) f64() []float64 {
	return unsafe.Slice((*float64)(unsafe.Pointer(unsafe.SliceData(a.buf.data))), len(a.buf.data)/8)
}

func (a *Array) i8() []int8 {
	return unsafe.Slice((*int8)(unsafe.Pointer(unsafe.SliceData(a.buf.data))), len(a.buf.data))
}

func (a *Array) i16() []int16 {
	return unsafe.Slice((*int16)(unsafe.Pointer(unsafe.SliceData(a.buf.data))), len(a.buf.data)/2)
}

func (a *Array) i32() []int32 {
	return unsafe.Slice((*int32)(unsafe.Pointer(unsafe.SliceData(a.buf.data))), len(a.buf.data)/4)
}

func (a *Array) i64() []int64 {
	return unsafe.Slice((*int64)(unsafe.Pointer(unsafe.SliceData(a.buf.data))), len(a.buf.data)/8)
}

func (a *Array) u8() []uint8 { return a.buf.data }

func (a *Array) u16() []uint16 {
	return unsafe.Slice((*uint16)(unsafe.Pointer(unsafe.SliceData(a.buf.data))), len(a.buf.data)/2)
}

func (a *Array) u32() []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(unsafe.SliceData(a.buf.data))), len(a.buf.data)/4)
}

func (a *Array) u64() []uint64 {
	return unsafe.Slice((*uint64)(unsafe.Pointer(unsafe.SliceData(a.buf.data))), len(a.buf.data)/8)
}
