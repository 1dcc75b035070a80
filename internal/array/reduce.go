package array

import "math"

// foldKernel carries a reduction's identity and step per working domain.
type foldKernel struct {
	initF float64
	stepF func(acc, x float64) float64
	initI int64
	stepI func(acc, x int64) int64
	initU uint64
	stepU func(acc, x uint64) uint64
}

// reducedShape removes the reduced axis, or keeps it with size 1.
func reducedShape(shape Shape, axis int, keepdims bool) Shape {
	out := make(Shape, 0, len(shape))
	for d, size := range shape {
		switch {
		case d != axis:
			out = append(out, size)
		case keepdims:
			out = append(out, 1)
		}
	}
	return out
}

// axisExtents splits a shape around the reduced axis: the product of the
// axes before it, the axis size, and the product of the axes after it.
func axisExtents(shape Shape, axis int) (outer, size, inner int) {
	outer, inner = 1, 1
	for d := 0; d < axis; d++ {
		outer *= shape[d]
	}
	for d := axis + 1; d < len(shape); d++ {
		inner *= shape[d]
	}
	return outer, shape[axis], inner
}

// reduceFull folds the whole array into a 0-d result.
func reduceFull(a *Array, out DType, k foldKernel) (*Array, error) {
	res, err := New(Shape{}, out)
	if err != nil {
		return nil, err
	}
	n := a.Size()
	switch domainOf(out) {
	case domInt:
		ld := a.intLoader()
		acc := k.initI
		for i := 0; i < n; i++ {
			acc = k.stepI(acc, ld(i))
		}
		res.setIntAt()(0, acc)
	case domUint:
		ld := a.uintLoader()
		acc := k.initU
		for i := 0; i < n; i++ {
			acc = k.stepU(acc, ld(i))
		}
		res.setUintAt()(0, acc)
	default:
		ld := a.floatLoader()
		acc := k.initF
		for i := 0; i < n; i++ {
			acc = k.stepF(acc, ld(i))
		}
		res.setFloatAt()(0, acc)
	}
	return res, nil
}

// reduceAxis folds along one axis: for every outer×inner lane the axis
// extent collapses into a single output element.
func reduceAxis(op string, a *Array, axis int, keepdims bool, out DType, k foldKernel) (*Array, error) {
	axis, err := normAxis(op, axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	res, err := New(reducedShape(a.shape, axis, keepdims), out)
	if err != nil {
		return nil, err
	}
	outer, size, inner := axisExtents(a.shape, axis)
	switch domainOf(out) {
	case domInt:
		ld, st := a.intLoader(), res.intStorer()
		for o := 0; o < outer; o++ {
			for i := 0; i < inner; i++ {
				acc := k.initI
				for j := 0; j < size; j++ {
					acc = k.stepI(acc, ld((o*size+j)*inner+i))
				}
				st(o*inner+i, acc)
			}
		}
	case domUint:
		ld, st := a.uintLoader(), res.uintStorer()
		for o := 0; o < outer; o++ {
			for i := 0; i < inner; i++ {
				acc := k.initU
				for j := 0; j < size; j++ {
					acc = k.stepU(acc, ld((o*size+j)*inner+i))
				}
				st(o*inner+i, acc)
			}
		}
	default:
		ld, st := a.floatLoader(), res.floatStorer()
		for o := 0; o < outer; o++ {
			for i := 0; i < inner; i++ {
				acc := k.initF
				for j := 0; j < size; j++ {
					acc = k.stepF(acc, ld((o*size+j)*inner+i))
				}
				st(o*inner+i, acc)
			}
		}
	}
	return res, nil
}

func sumKernel() foldKernel {
	return foldKernel{
		initF: 0, stepF: func(acc, x float64) float64 { return acc + x },
		initI: 0, stepI: func(acc, x int64) int64 { return acc + x },
		initU: 0, stepU: func(acc, x uint64) uint64 { return acc + x },
	}
}

func prodKernel() foldKernel {
	return foldKernel{
		initF: 1, stepF: func(acc, x float64) float64 { return acc * x },
		initI: 1, stepI: func(acc, x int64) int64 { return acc * x },
		initU: 1, stepU: func(acc, x uint64) uint64 { return acc * x },
	}
}

func maxKernel() foldKernel {
	return foldKernel{
		initF: math.Inf(-1), stepF: math.Max,
		initI: math.MinInt64, stepI: func(acc, x int64) int64 { return max(acc, x) },
		initU: 0, stepU: func(acc, x uint64) uint64 { return max(acc, x) },
	}
}

func minKernel() foldKernel {
	return foldKernel{
		initF: math.Inf(1), stepF: math.Min,
		initI: math.MaxInt64, stepI: func(acc, x int64) int64 { return min(acc, x) },
		initU: math.MaxUint64, stepU: func(acc, x uint64) uint64 { return min(acc, x) },
	}
}

// Sum reduces the whole array to a 0-d scalar. Integer inputs
// accumulate in the wide integer domain, bool counts true elements.
func Sum(a *Array) (*Array, error) {
	return reduceFull(a, sumDType(a.dtype), sumKernel())
}

// SumAxis reduces along one axis.
func SumAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return reduceAxis("sum", a, axis, keepdims, sumDType(a.dtype), sumKernel())
}

// Prod reduces the whole array by multiplication.
func Prod(a *Array) (*Array, error) {
	return reduceFull(a, sumDType(a.dtype), prodKernel())
}

// ProdAxis reduces along one axis by multiplication.
func ProdAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return reduceAxis("prod", a, axis, keepdims, sumDType(a.dtype), prodKernel())
}

// Max reduces the whole array to its largest element. Empty input is a
// domain error: the fold has no identity to report.
func Max(a *Array) (*Array, error) {
	if a.Size() == 0 {
		return nil, domainErrorf("max", "zero-size array has no maximum")
	}
	return reduceFull(a, a.dtype, maxKernel())
}

// MaxAxis reduces along one axis to the largest element.
func MaxAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	if err := nonEmptyAxis("max", a, axis); err != nil {
		return nil, err
	}
	return reduceAxis("max", a, axis, keepdims, a.dtype, maxKernel())
}

// Min reduces the whole array to its smallest element.
func Min(a *Array) (*Array, error) {
	if a.Size() == 0 {
		return nil, domainErrorf("min", "zero-size array has no minimum")
	}
	return reduceFull(a, a.dtype, minKernel())
}

// MinAxis reduces along one axis to the smallest element.
func MinAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	if err := nonEmptyAxis("min", a, axis); err != nil {
		return nil, err
	}
	return reduceAxis("min", a, axis, keepdims, a.dtype, minKernel())
}

func nonEmptyAxis(op string, a *Array, axis int) error {
	norm, err := normAxis(op, axis, len(a.shape))
	if err != nil {
		return err
	}
	if a.shape[norm] == 0 {
		return domainErrorf(op, "zero-size reduction axis %d", axis)
	}
	return nil
}

func allKernel() foldKernel {
	return foldKernel{
		initF: 1,
		stepF: func(acc, x float64) float64 { return b2f(acc != 0 && x != 0) },
	}
}

func anyKernel() foldKernel {
	return foldKernel{
		initF: 0,
		stepF: func(acc, x float64) float64 { return b2f(acc != 0 || x != 0) },
	}
}

// All reduces the whole array with logical AND.
func All(a *Array) (*Array, error) {
	return reduceFull(a, Bool, allKernel())
}

// AllAxis reduces along one axis with logical AND.
func AllAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return reduceAxis("all", a, axis, keepdims, Bool, allKernel())
}

// Any reduces the whole array with logical OR.
func Any(a *Array) (*Array, error) {
	return reduceFull(a, Bool, anyKernel())
}

// AnyAxis reduces along one axis with logical OR.
func AnyAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return reduceAxis("any", a, axis, keepdims, Bool, anyKernel())
}

// Mean reduces the whole array to its arithmetic mean. The result is
// always floating, float64 unless the input is float32.
func Mean(a *Array) (*Array, error) {
	s, err := reduceFull(a, Float64, sumKernel())
	if err != nil {
		return nil, err
	}
	res, err := New(Shape{}, toFloat(a.dtype))
	if err != nil {
		return nil, err
	}
	res.setFloatAt()(0, s.f64()[0]/float64(a.Size()))
	return res, nil
}

// MeanAxis reduces along one axis to the arithmetic mean.
func MeanAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	norm, err := normAxis("mean", axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	s, err := reduceAxis("mean", a, axis, keepdims, Float64, sumKernel())
	if err != nil {
		return nil, err
	}
	res, err := New(s.shape, toFloat(a.dtype))
	if err != nil {
		return nil, err
	}
	size := float64(a.shape[norm])
	src, st := s.f64(), res.floatStorer()
	for i := range src {
		st(i, src[i]/size)
	}
	return res, nil
}

// Var reduces the whole array to its variance: the squared-deviation
// sum divided by (size - ddof).
func Var(a *Array, ddof int) (*Array, error) {
	res, err := New(Shape{}, toFloat(a.dtype))
	if err != nil {
		return nil, err
	}
	res.setFloatAt()(0, varianceLane(a.floatLoader(), 0, 1, a.Size(), ddof))
	return res, nil
}

// VarAxis reduces along one axis to the variance.
func VarAxis(a *Array, axis, ddof int, keepdims bool) (*Array, error) {
	norm, err := normAxis("var", axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	res, err := New(reducedShape(a.shape, norm, keepdims), toFloat(a.dtype))
	if err != nil {
		return nil, err
	}
	outer, size, inner := axisExtents(a.shape, norm)
	ld, st := a.floatLoader(), res.floatStorer()
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			lane := func(j int) float64 { return ld((o*size+j)*inner + i) }
			st(o*inner+i, varianceSeq(lane, size, ddof))
		}
	}
	return res, nil
}

func varianceLane(ld func(int) float64, start, stride, n, ddof int) float64 {
	return varianceSeq(func(j int) float64 { return ld(start + j*stride) }, n, ddof)
}

// varianceSeq makes two passes: mean, then squared deviations.
func varianceSeq(at func(int) float64, n, ddof int) float64 {
	sum := 0.0
	for j := 0; j < n; j++ {
		sum += at(j)
	}
	mean := sum / float64(n)
	dev := 0.0
	for j := 0; j < n; j++ {
		d := at(j) - mean
		dev += d * d
	}
	return dev / float64(n-ddof)
}

// Std is the square root of Var.
func Std(a *Array, ddof int) (*Array, error) {
	v, err := Var(a, ddof)
	if err != nil {
		return nil, err
	}
	return Sqrt(v)
}

// StdAxis is the square root of VarAxis.
func StdAxis(a *Array, axis, ddof int, keepdims bool) (*Array, error) {
	v, err := VarAxis(a, axis, ddof, keepdims)
	if err != nil {
		return nil, err
	}
	return Sqrt(v)
}

// ArgMax returns the flat row-major index of the first occurrence of
// the largest element.
func ArgMax(a *Array) (*Array, error) {
	return argReduceFull("argmax", a, false)
}

// ArgMin returns the flat row-major index of the first occurrence of
// the smallest element.
func ArgMin(a *Array) (*Array, error) {
	return argReduceFull("argmin", a, true)
}

func argReduceFull(op string, a *Array, wantMin bool) (*Array, error) {
	if a.Size() == 0 {
		return nil, domainErrorf(op, "zero-size array")
	}
	reset, better := argScanner(a, wantMin)
	reset(0)
	bestIdx := 0
	n := a.Size()
	for i := 1; i < n; i++ {
		if better(i) {
			bestIdx = i
		}
	}
	res, err := New(Shape{}, Int64)
	if err != nil {
		return nil, err
	}
	res.setIntAt()(0, int64(bestIdx))
	return res, nil
}

// ArgMaxAxis returns, per lane, the index along the axis of the first
// occurrence of the largest element.
func ArgMaxAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return argReduceAxis("argmax", a, axis, keepdims, false)
}

// ArgMinAxis returns, per lane, the index along the axis of the first
// occurrence of the smallest element.
func ArgMinAxis(a *Array, axis int, keepdims bool) (*Array, error) {
	return argReduceAxis("argmin", a, axis, keepdims, true)
}

func argReduceAxis(op string, a *Array, axis int, keepdims, wantMin bool) (*Array, error) {
	norm, err := normAxis(op, axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	if a.shape[norm] == 0 {
		return nil, domainErrorf(op, "zero-size reduction axis %d", axis)
	}
	res, err := New(reducedShape(a.shape, norm, keepdims), Int64)
	if err != nil {
		return nil, err
	}
	outer, size, inner := axisExtents(a.shape, norm)
	reset, better := argScanner(a, wantMin)
	st := res.intStorer()
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			reset((o*size)*inner + i)
			bestIdx := 0
			for j := 1; j < size; j++ {
				if better((o*size+j)*inner + i) {
					bestIdx = j
				}
			}
			st(o*inner+i, int64(bestIdx))
		}
	}
	return res, nil
}

// argScanner builds the running-best comparator for arg reductions in
// a's native domain, so Int64 and Uint64 values compare exactly. reset
// seeds the best from flat index i; better reports whether element i
// beats it and advances the best when it does.
func argScanner(a *Array, wantMin bool) (reset func(i int), better func(i int) bool) {
	switch domainOf(a.dtype) {
	case domInt:
		ld := a.intLoader()
		var best int64
		reset = func(i int) { best = ld(i) }
		better = func(i int) bool {
			x := ld(i)
			if wantMin && x < best || !wantMin && x > best {
				best = x
				return true
			}
			return false
		}
	case domUint:
		ld := a.uintLoader()
		var best uint64
		reset = func(i int) { best = ld(i) }
		better = func(i int) bool {
			x := ld(i)
			if wantMin && x < best || !wantMin && x > best {
				best = x
				return true
			}
			return false
		}
	default:
		ld := a.floatLoader()
		var best float64
		reset = func(i int) { best = ld(i) }
		better = func(i int) bool {
			x := ld(i)
			if argBetter(x, best, wantMin) {
				best = x
				return true
			}
			return false
		}
	}
	return reset, better
}

// argBetter prefers NaN over any number, then strict comparison, so the
// first extreme (or first NaN) wins.
func argBetter(x, best float64, wantMin bool) bool {
	if math.IsNaN(best) {
		return false
	}
	if math.IsNaN(x) {
		return true
	}
	if wantMin {
		return x < best
	}
	return x > best
}
