// Package array is the public surface of the nd4go array engine:
// dtype-aware n-dimensional arrays over strided storage, with
// broadcasting, elementwise and reduction kernels, shape transforms,
// slicing, and dense linear algebra.
//
// Example:
//
//	a, _ := array.FromNested([][]float64{{1, 2}, {3, 4}})
//	b, _ := array.FromNested([]float64{10, 20})
//	sum, _ := array.Add(a, b) // broadcasts (2,2) with (2,)
package array

import (
	"github.com/nd4go/nd4go/internal/array"
	"github.com/nd4go/nd4go/internal/sliceexpr"
)

// Array is the strided storage value every operation consumes and
// produces. Owners hold a fresh buffer; views alias another Array's
// buffer through their own shape, strides, and offset.
type Array = array.Array

// Shape holds ordered axis sizes.
type Shape = array.Shape

// DType identifies an element type.
type DType = array.DType

// Range describes one axis of a slicing operation.
type Range = array.Range

// The supported dtypes.
const (
	Bool    DType = array.Bool
	Int8    DType = array.Int8
	Int16   DType = array.Int16
	Int32   DType = array.Int32
	Int64   DType = array.Int64
	Uint8   DType = array.Uint8
	Uint16  DType = array.Uint16
	Uint32  DType = array.Uint32
	Uint64  DType = array.Uint64
	Float32 DType = array.Float32
	Float64 DType = array.Float64
)

// Error kinds, matched with errors.Is.
var (
	ErrShape            = array.ErrShape
	ErrAxis             = array.ErrAxis
	ErrIndex            = array.ErrIndex
	ErrUnsupportedDType = array.ErrUnsupportedDType
	ErrDomain           = array.ErrDomain
)

// Elem constrains the Go element types an Array can hold.
type Elem = array.Elem

// Promote selects the output dtype for a pair of operand dtypes.
func Promote(a, b DType) DType { return array.Promote(a, b) }

// DTypeFromString resolves a dtype by name ("float64", "int32", ...).
func DTypeFromString(name string) (DType, error) { return array.DTypeFromString(name) }

// Construction.

// Zeros allocates a zero-filled array.
func Zeros(shape Shape, dtype DType) (*Array, error) { return array.Zeros(shape, dtype) }

// Ones allocates a one-filled array.
func Ones(shape Shape, dtype DType) (*Array, error) { return array.Ones(shape, dtype) }

// Empty allocates an array with undefined contents.
func Empty(shape Shape, dtype DType) (*Array, error) { return array.Empty(shape, dtype) }

// Full allocates an array filled with value.
func Full(shape Shape, value float64, dtype DType) (*Array, error) {
	return array.Full(shape, value, dtype)
}

// FromSlice builds an array from a flat row-major Go slice.
func FromSlice[T Elem](data []T, shape Shape) (*Array, error) {
	return array.FromSlice(data, shape)
}

// FromNested builds an array from a scalar or nested Go slices.
func FromNested(data any) (*Array, error) { return array.FromNested(data) }

// FromNestedAs builds an array from nested Go slices with an explicit dtype.
func FromNestedAs(data any, dtype DType) (*Array, error) {
	return array.FromNestedAs(data, dtype)
}

// Arange builds evenly stepped values in [start, stop).
func Arange(start, stop, step float64, dtype DType) (*Array, error) {
	return array.Arange(start, stop, step, dtype)
}

// Linspace builds num evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, num int) (*Array, error) {
	return array.Linspace(start, stop, num)
}

// Logspace builds num values evenly spaced on a log scale.
func Logspace(start, stop float64, num int, base float64) (*Array, error) {
	return array.Logspace(start, stop, num, base)
}

// Geomspace builds num values geometrically spaced between start and stop.
func Geomspace(start, stop float64, num int) (*Array, error) {
	return array.Geomspace(start, stop, num)
}

// Eye builds a rows×cols matrix with ones on the k-th diagonal.
func Eye(rows, cols, k int, dtype DType) (*Array, error) { return array.Eye(rows, cols, k, dtype) }

// Identity builds the n×n identity matrix.
func Identity(n int, dtype DType) (*Array, error) { return array.Identity(n, dtype) }

// AsType returns an owning copy cast to the target dtype.
func AsType(a *Array, dtype DType) (*Array, error) { return array.AsType(a, dtype) }

// Broadcasting.

// BroadcastShape reconciles shapes under the broadcasting rules.
func BroadcastShape(shapes ...Shape) (Shape, error) { return array.BroadcastShape(shapes...) }

// BroadcastTo views a as the target shape using stride-0 expansion.
func BroadcastTo(a *Array, target Shape) (*Array, error) { return array.BroadcastTo(a, target) }

// BroadcastArrays expands all inputs to their common shape.
func BroadcastArrays(arrays ...*Array) ([]*Array, error) { return array.BroadcastArrays(arrays...) }

// Elementwise arithmetic.

// Add computes a + b.
func Add(a, b *Array) (*Array, error) { return array.Add(a, b) }

// Subtract computes a - b.
func Subtract(a, b *Array) (*Array, error) { return array.Subtract(a, b) }

// Multiply computes a * b.
func Multiply(a, b *Array) (*Array, error) { return array.Multiply(a, b) }

// Divide computes a / b with a floating result.
func Divide(a, b *Array) (*Array, error) { return array.Divide(a, b) }

// FloorDivide computes floor(a / b).
func FloorDivide(a, b *Array) (*Array, error) { return array.FloorDivide(a, b) }

// Mod computes the floor-convention remainder.
func Mod(a, b *Array) (*Array, error) { return array.Mod(a, b) }

// Power computes a ** b.
func Power(a, b *Array) (*Array, error) { return array.Power(a, b) }

// Comparisons, producing bool arrays.

// Equal compares a == b.
func Equal(a, b *Array) (*Array, error) { return array.Equal(a, b) }

// NotEqual compares a != b.
func NotEqual(a, b *Array) (*Array, error) { return array.NotEqual(a, b) }

// Greater compares a > b.
func Greater(a, b *Array) (*Array, error) { return array.Greater(a, b) }

// GreaterEqual compares a >= b.
func GreaterEqual(a, b *Array) (*Array, error) { return array.GreaterEqual(a, b) }

// Less compares a < b.
func Less(a, b *Array) (*Array, error) { return array.Less(a, b) }

// LessEqual compares a <= b.
func LessEqual(a, b *Array) (*Array, error) { return array.LessEqual(a, b) }

// Unary ops.

// Sqrt computes the square root; integer inputs promote to float64.
func Sqrt(a *Array) (*Array, error) { return array.Sqrt(a) }

// Reciprocal computes 1/x; integer inputs promote to float64.
func Reciprocal(a *Array) (*Array, error) { return array.Reciprocal(a) }

// Exp computes e**x.
func Exp(a *Array) (*Array, error) { return array.Exp(a) }

// Log computes the natural logarithm.
func Log(a *Array) (*Array, error) { return array.Log(a) }

// Abs computes the absolute value.
func Abs(a *Array) (*Array, error) { return array.Abs(a) }

// Negative computes -x.
func Negative(a *Array) (*Array, error) { return array.Negative(a) }

// Positive returns a fresh elementwise copy.
func Positive(a *Array) (*Array, error) { return array.Positive(a) }

// Sign computes -1, 0, or 1 per element.
func Sign(a *Array) (*Array, error) { return array.Sign(a) }

// Floor rounds down per element.
func Floor(a *Array) (*Array, error) { return array.Floor(a) }

// Ceil rounds up per element.
func Ceil(a *Array) (*Array, error) { return array.Ceil(a) }

// Predicates.

// AllEqual reports identical shape and values.
func AllEqual(a, b *Array) bool { return array.AllEqual(a, b) }

// AllClose reports elementwise closeness within rtol/atol.
func AllClose(a, b *Array, rtol, atol float64) (bool, error) {
	return array.AllClose(a, b, rtol, atol)
}

// Reductions. The Axis variants reduce along one axis; the plain forms
// reduce the whole array to a 0-d scalar.

func Sum(a *Array) (*Array, error)  { return array.Sum(a) }
func Prod(a *Array) (*Array, error) { return array.Prod(a) }
func Mean(a *Array) (*Array, error) { return array.Mean(a) }
func Max(a *Array) (*Array, error)  { return array.Max(a) }
func Min(a *Array) (*Array, error)  { return array.Min(a) }
func All(a *Array) (*Array, error)  { return array.All(a) }
func Any(a *Array) (*Array, error)  { return array.Any(a) }

func SumAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return array.SumAxis(a, axis, keepdims)
}

func ProdAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return array.ProdAxis(a, axis, keepdims)
}

func MeanAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return array.MeanAxis(a, axis, keepdims)
}

func MaxAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return array.MaxAxis(a, axis, keepdims)
}

func MinAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return array.MinAxis(a, axis, keepdims)
}

func AllAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return array.AllAxis(a, axis, keepdims)
}

func AnyAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return array.AnyAxis(a, axis, keepdims)
}

// Var computes the variance with the given delta degrees of freedom.
func Var(a *Array, ddof int) (*Array, error) { return array.Var(a, ddof) }

// Std computes the standard deviation.
func Std(a *Array, ddof int) (*Array, error) { return array.Std(a, ddof) }

func VarAxis(a *Array, axis, ddof int, keepdims bool) (*Array, error) {
	return array.VarAxis(a, axis, ddof, keepdims)
}

func StdAxis(a *Array, axis, ddof int, keepdims bool) (*Array, error) {
	return array.StdAxis(a, axis, ddof, keepdims)
}

// ArgMax returns the flat index of the first maximum.
func ArgMax(a *Array) (*Array, error) { return array.ArgMax(a) }

// ArgMin returns the flat index of the first minimum.
func ArgMin(a *Array) (*Array, error) { return array.ArgMin(a) }

func ArgMaxAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return array.ArgMaxAxis(a, axis, keepdims)
}

func ArgMinAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return array.ArgMinAxis(a, axis, keepdims)
}

// Shape transforms.

// Reshape views (contiguous source) or copies into a new shape; one
// axis may be -1 and is inferred.
func Reshape(a *Array, newShape Shape) (*Array, error) { return array.Reshape(a, newShape) }

// Ravel flattens to 1-d, as a view when possible.
func Ravel(a *Array) (*Array, error) { return array.Ravel(a) }

// Flatten flattens to 1-d, always copying.
func Flatten(a *Array) *Array { return array.Flatten(a) }

// Transpose permutes axes as a view; no axes reverses them.
func Transpose(a *Array, axes ...int) (*Array, error) { return array.Transpose(a, axes...) }

// Swapaxes exchanges two axes as a view.
func Swapaxes(a *Array, axis1, axis2 int) (*Array, error) {
	return array.Swapaxes(a, axis1, axis2)
}

// Moveaxis moves one axis to a new position as a view.
func Moveaxis(a *Array, src, dst int) (*Array, error) { return array.Moveaxis(a, src, dst) }

// Squeeze drops size-1 axes as a view.
func Squeeze(a *Array, axes ...int) (*Array, error) { return array.Squeeze(a, axes...) }

// ExpandDims inserts a size-1 axis as a view.
func ExpandDims(a *Array, axis int) (*Array, error) { return array.ExpandDims(a, axis) }

// Concatenate joins arrays along an existing axis.
func Concatenate(arrays []*Array, axis int) (*Array, error) {
	return array.Concatenate(arrays, axis)
}

// Stack joins same-shaped arrays along a new axis.
func Stack(arrays []*Array, axis int) (*Array, error) { return array.Stack(arrays, axis) }

// VStack stacks row-wise, HStack column-wise, DStack depth-wise.

func VStack(arrays []*Array) (*Array, error) { return array.VStack(arrays) }
func HStack(arrays []*Array) (*Array, error) { return array.HStack(arrays) }
func DStack(arrays []*Array) (*Array, error) { return array.DStack(arrays) }

// Split divides an axis into equal sections, each owning a fresh buffer.
func Split(a *Array, sections, axis int) ([]*Array, error) {
	return array.Split(a, sections, axis)
}

// SplitAt divides an axis at explicit ascending points.
func SplitAt(a *Array, points []int, axis int) ([]*Array, error) {
	return array.SplitAt(a, points, axis)
}

// ArraySplit divides an axis into near-equal sections.
func ArraySplit(a *Array, sections, axis int) ([]*Array, error) {
	return array.ArraySplit(a, sections, axis)
}

// Tile repeats the array along each axis.
func Tile(a *Array, reps []int) (*Array, error) { return array.Tile(a, reps) }

// Repeat repeats each element along an axis.
func Repeat(a *Array, repeats, axis int) (*Array, error) {
	return array.Repeat(a, repeats, axis)
}

// RepeatFlat repeats each element of the flattened array.
func RepeatFlat(a *Array, repeats int) (*Array, error) { return array.RepeatFlat(a, repeats) }

// Slicing.

// FullRange is the whole-axis range, ":".
func FullRange() Range { return array.FullRange() }

// Index selects a single position along an axis, removing the axis.
func Index(i int) Range { return array.Index(i) }

// NewRange is the half-open [start, stop) range with step 1.
func NewRange(start, stop int) Range { return array.NewRange(start, stop) }

// Slice derives a view selecting per-axis ranges.
func Slice(a *Array, ranges []Range) (*Array, error) { return array.Slice(a, ranges) }

// ParseSlice parses a slice expression such as "1:5:2,::-1" into
// ranges for Slice.
func ParseSlice(expr string) ([]Range, error) {
	specs, err := sliceexpr.Parse(expr)
	if err != nil {
		return nil, err
	}
	ranges := make([]Range, len(specs))
	for i, s := range specs {
		ranges[i] = Range{
			Start:    s.Start,
			Stop:     s.Stop,
			Step:     s.Step,
			HasStart: s.HasStart,
			HasStop:  s.HasStop,
			IsIndex:  s.IsIndex,
		}
	}
	return ranges, nil
}

// Linear algebra.

// MatMul multiplies two 2-d arrays in double precision.
func MatMul(a, b *Array) (*Array, error) { return array.MatMul(a, b) }

// Dot dispatches the dot-product family on operand ranks.
func Dot(a, b *Array) (*Array, error) { return array.Dot(a, b) }

// TensorDot contracts explicit axis lists.
func TensorDot(a, b *Array, axesA, axesB []int) (*Array, error) {
	return array.TensorDot(a, b, axesA, axesB)
}

// TensorDotN contracts the trailing n axes of a against the leading n of b.
func TensorDotN(a, b *Array, n int) (*Array, error) { return array.TensorDotN(a, b, n) }

// Inner contracts the last axis of both operands.
func Inner(a, b *Array) (*Array, error) { return array.Inner(a, b) }

// Outer forms the full cross product of the flattened operands.
func Outer(a, b *Array) (*Array, error) { return array.Outer(a, b) }

// Trace sums the leading diagonal of a 2-d array.
func Trace(a *Array) (*Array, error) { return array.Trace(a) }
