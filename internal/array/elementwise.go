package array

import "math"

// Working domains. Kernels evaluate in the domain matching the output
// dtype: int64/uint64 arithmetic for the wide integer dtypes, double
// precision for everything else.
type domain int

const (
	domFloat domain = iota
	domInt
	domUint
)

func domainOf(d DType) domain {
	switch d {
	case Int64:
		return domInt
	case Uint64:
		return domUint
	default:
		return domFloat
	}
}

// binKernel holds one scalar function per working domain.
type binKernel struct {
	f func(x, y float64) float64
	i func(x, y int64) int64
	u func(x, y uint64) uint64
}

// applyBinary broadcasts both operands, allocates an owning result of
// dtype out, and fills it evaluating in the domain of eval. Validation
// happens before any allocation; a failed op never yields a partial
// result.
func applyBinary(op string, a, b *Array, out, eval DType, k binKernel) (*Array, error) {
	shape, err := BroadcastShape(a.shape, b.shape)
	if err != nil {
		return nil, shapeErrorf(op, "operands could not be broadcast together with shapes %v %v",
			[]int(a.shape), []int(b.shape))
	}
	ba, err := BroadcastTo(a, shape)
	if err != nil {
		return nil, err
	}
	bb, err := BroadcastTo(b, shape)
	if err != nil {
		return nil, err
	}
	res, err := New(shape, out)
	if err != nil {
		return nil, err
	}
	n := shape.NumElements()
	switch domainOf(eval) {
	case domInt:
		la, lb, st := ba.intLoader(), bb.intLoader(), res.intStorer()
		for i := 0; i < n; i++ {
			st(i, k.i(la(i), lb(i)))
		}
	case domUint:
		la, lb, st := ba.uintLoader(), bb.uintLoader(), res.uintStorer()
		for i := 0; i < n; i++ {
			st(i, k.u(la(i), lb(i)))
		}
	default:
		la, lb, st := ba.floatLoader(), bb.floatLoader(), res.floatStorer()
		for i := 0; i < n; i++ {
			st(i, k.f(la(i), lb(i)))
		}
	}
	return res, nil
}

// unKernel holds one scalar function per working domain.
type unKernel struct {
	f func(x float64) float64
	i func(x int64) int64
	u func(x uint64) uint64
}

// applyUnary allocates an owning result of dtype out and fills it from a.
func applyUnary(op string, a *Array, out DType, k unKernel) (*Array, error) {
	res, err := New(a.shape, out)
	if err != nil {
		return nil, err
	}
	n := a.Size()
	switch domainOf(out) {
	case domInt:
		ld, st := a.intLoader(), res.intStorer()
		for i := 0; i < n; i++ {
			st(i, k.i(ld(i)))
		}
	case domUint:
		ld, st := a.uintLoader(), res.uintStorer()
		for i := 0; i < n; i++ {
			st(i, k.u(ld(i)))
		}
	default:
		ld, st := a.floatLoader(), res.floatStorer()
		for i := 0; i < n; i++ {
			st(i, k.f(ld(i)))
		}
	}
	return res, nil
}

// Add computes a + b elementwise with broadcasting and promotion.
func Add(a, b *Array) (*Array, error) {
	out := Promote(a.dtype, b.dtype)
	return applyBinary("add", a, b, out, out, binKernel{
		f: func(x, y float64) float64 { return x + y },
		i: func(x, y int64) int64 { return x + y },
		u: func(x, y uint64) uint64 { return x + y },
	})
}

// Subtract computes a - b elementwise.
func Subtract(a, b *Array) (*Array, error) {
	out := Promote(a.dtype, b.dtype)
	return applyBinary("subtract", a, b, out, out, binKernel{
		f: func(x, y float64) float64 { return x - y },
		i: func(x, y int64) int64 { return x - y },
		u: func(x, y uint64) uint64 { return x - y },
	})
}

// Multiply computes a * b elementwise.
func Multiply(a, b *Array) (*Array, error) {
	out := Promote(a.dtype, b.dtype)
	return applyBinary("multiply", a, b, out, out, binKernel{
		f: func(x, y float64) float64 { return x * y },
		i: func(x, y int64) int64 { return x * y },
		u: func(x, y uint64) uint64 { return x * y },
	})
}

// Divide computes a / b elementwise. The result dtype is always
// floating so that division by zero can represent ±Inf and NaN.
func Divide(a, b *Array) (*Array, error) {
	out := toFloat(Promote(a.dtype, b.dtype))
	return applyBinary("divide", a, b, out, out, binKernel{
		f: func(x, y float64) float64 { return x / y },
	})
}

// FloorDivide computes the floor of a / b elementwise, keeping integer
// dtypes integral. Integer division by zero yields 0.
func FloorDivide(a, b *Array) (*Array, error) {
	out := Promote(a.dtype, b.dtype)
	return applyBinary("floorDivide", a, b, out, out, binKernel{
		f: func(x, y float64) float64 { return math.Floor(x / y) },
		i: floorDivInt,
		u: func(x, y uint64) uint64 {
			if y == 0 {
				return 0
			}
			return x / y
		},
	})
}

func floorDivInt(x, y int64) int64 {
	if y == 0 {
		return 0
	}
	q := x / y
	if x%y != 0 && (x < 0) != (y < 0) {
		q--
	}
	return q
}

// Mod computes the remainder with floor semantics: the result takes the
// sign of the divisor, matching floorDivide. Integer mod by zero yields
// 0; float mod by zero yields NaN.
func Mod(a, b *Array) (*Array, error) {
	out := Promote(a.dtype, b.dtype)
	return applyBinary("mod", a, b, out, out, binKernel{
		f: func(x, y float64) float64 {
			r := math.Mod(x, y)
			if r != 0 && (r < 0) != (y < 0) {
				r += y
			}
			return r
		},
		i: func(x, y int64) int64 {
			if y == 0 {
				return 0
			}
			r := x % y
			if r != 0 && (r < 0) != (y < 0) {
				r += y
			}
			return r
		},
		u: func(x, y uint64) uint64 {
			if y == 0 {
				return 0
			}
			return x % y
		},
	})
}

// Power computes a ** b elementwise. Integer outputs use exact integer
// exponentiation; a negative integer exponent truncates to 0 except for
// bases 1 and -1.
func Power(a, b *Array) (*Array, error) {
	out := Promote(a.dtype, b.dtype)
	return applyBinary("power", a, b, out, out, binKernel{
		f: math.Pow,
		i: ipow,
		u: upow,
	})
}

func ipow(x, y int64) int64 {
	if y < 0 {
		switch x {
		case 1:
			return 1
		case -1:
			if y%2 == 0 {
				return 1
			}
			return -1
		default:
			return 0
		}
	}
	var r int64 = 1
	for ; y > 0; y >>= 1 {
		if y&1 == 1 {
			r *= x
		}
		x *= x
	}
	return r
}

func upow(x, y uint64) uint64 {
	var r uint64 = 1
	for ; y > 0; y >>= 1 {
		if y&1 == 1 {
			r *= x
		}
		x *= x
	}
	return r
}

// compare runs a comparison in the promoted working domain, producing a
// single-byte boolean result regardless of operand dtypes.
func compare(op string, a, b *Array, cf func(x, y float64) bool, ci func(x, y int64) bool, cu func(x, y uint64) bool) (*Array, error) {
	eval := Promote(a.dtype, b.dtype)
	return applyBinary(op, a, b, Bool, eval, binKernel{
		f: func(x, y float64) float64 { return b2f(cf(x, y)) },
		i: func(x, y int64) int64 { return b2i(ci(x, y)) },
		u: func(x, y uint64) uint64 { return b2u(cu(x, y)) },
	})
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// Equal compares a == b elementwise.
func Equal(a, b *Array) (*Array, error) {
	return compare("equal", a, b,
		func(x, y float64) bool { return x == y },
		func(x, y int64) bool { return x == y },
		func(x, y uint64) bool { return x == y })
}

// NotEqual compares a != b elementwise.
func NotEqual(a, b *Array) (*Array, error) {
	return compare("notEqual", a, b,
		func(x, y float64) bool { return x != y },
		func(x, y int64) bool { return x != y },
		func(x, y uint64) bool { return x != y })
}

// Greater compares a > b elementwise.
func Greater(a, b *Array) (*Array, error) {
	return compare("greater", a, b,
		func(x, y float64) bool { return x > y },
		func(x, y int64) bool { return x > y },
		func(x, y uint64) bool { return x > y })
}

// GreaterEqual compares a >= b elementwise.
func GreaterEqual(a, b *Array) (*Array, error) {
	return compare("greaterEqual", a, b,
		func(x, y float64) bool { return x >= y },
		func(x, y int64) bool { return x >= y },
		func(x, y uint64) bool { return x >= y })
}

// Less compares a < b elementwise.
func Less(a, b *Array) (*Array, error) {
	return compare("less", a, b,
		func(x, y float64) bool { return x < y },
		func(x, y int64) bool { return x < y },
		func(x, y uint64) bool { return x < y })
}

// LessEqual compares a <= b elementwise.
func LessEqual(a, b *Array) (*Array, error) {
	return compare("lessEqual", a, b,
		func(x, y float64) bool { return x <= y },
		func(x, y int64) bool { return x <= y },
		func(x, y uint64) bool { return x <= y })
}

// floatOut maps an input dtype to the output dtype of float-only unary
// ops (sqrt, reciprocal, exp, log): integer inputs promote to float64.
func floatOut(d DType) DType {
	if d.IsFloat() {
		return d
	}
	return Float64
}

// Sqrt computes the square root elementwise, promoting integer inputs
// to float64.
func Sqrt(a *Array) (*Array, error) {
	return applyUnary("sqrt", a, floatOut(a.dtype), unKernel{f: math.Sqrt})
}

// Reciprocal computes 1/x elementwise, promoting integer inputs to
// float64.
func Reciprocal(a *Array) (*Array, error) {
	return applyUnary("reciprocal", a, floatOut(a.dtype), unKernel{
		f: func(x float64) float64 { return 1 / x },
	})
}

// Exp computes e**x elementwise, promoting integer inputs to float64.
func Exp(a *Array) (*Array, error) {
	return applyUnary("exp", a, floatOut(a.dtype), unKernel{f: math.Exp})
}

// Log computes the natural logarithm elementwise, promoting integer
// inputs to float64.
func Log(a *Array) (*Array, error) {
	return applyUnary("log", a, floatOut(a.dtype), unKernel{f: math.Log})
}

// Abs computes the absolute value elementwise.
func Abs(a *Array) (*Array, error) {
	return applyUnary("abs", a, a.dtype, unKernel{
		f: math.Abs,
		i: func(x int64) int64 {
			if x < 0 {
				return -x
			}
			return x
		},
		u: func(x uint64) uint64 { return x },
	})
}

// Negative computes -x elementwise. Unsigned dtypes wrap.
func Negative(a *Array) (*Array, error) {
	return applyUnary("negative", a, a.dtype, unKernel{
		f: func(x float64) float64 { return -x },
		i: func(x int64) int64 { return -x },
		u: func(x uint64) uint64 { return -x },
	})
}

// Positive returns a fresh elementwise copy of a.
func Positive(a *Array) (*Array, error) {
	return applyUnary("positive", a, a.dtype, unKernel{
		f: func(x float64) float64 { return x },
		i: func(x int64) int64 { return x },
		u: func(x uint64) uint64 { return x },
	})
}

// Sign computes the sign elementwise: -1, 0, or 1 (NaN stays NaN).
func Sign(a *Array) (*Array, error) {
	return applyUnary("sign", a, a.dtype, unKernel{
		f: func(x float64) float64 {
			switch {
			case x > 0:
				return 1
			case x < 0:
				return -1
			default:
				return x
			}
		},
		i: func(x int64) int64 {
			switch {
			case x > 0:
				return 1
			case x < 0:
				return -1
			default:
				return 0
			}
		},
		u: func(x uint64) uint64 {
			if x > 0 {
				return 1
			}
			return 0
		},
	})
}

// Floor rounds down elementwise; integer dtypes pass through.
func Floor(a *Array) (*Array, error) {
	return applyUnary("floor", a, a.dtype, unKernel{
		f: math.Floor,
		i: func(x int64) int64 { return x },
		u: func(x uint64) uint64 { return x },
	})
}

// Ceil rounds up elementwise; integer dtypes pass through.
func Ceil(a *Array) (*Array, error) {
	return applyUnary("ceil", a, a.dtype, unKernel{
		f: math.Ceil,
		i: func(x int64) int64 { return x },
		u: func(x uint64) uint64 { return x },
	})
}

// AllEqual reports whether a and b have identical shapes and identical
// values, compared exactly in the promoted working domain.
func AllEqual(a, b *Array) bool {
	if !a.shape.Equal(b.shape) {
		return false
	}
	eq, err := Equal(a, b)
	if err != nil {
		return false
	}
	n := eq.Size()
	d := eq.u8()
	for i := 0; i < n; i++ {
		if d[i] == 0 {
			return false
		}
	}
	return true
}

// AllClose reports whether a and b broadcast to a common shape and every
// element pair satisfies |x - y| <= atol + rtol*|y|.
func AllClose(a, b *Array, rtol, atol float64) (bool, error) {
	pair, err := BroadcastArrays(a, b)
	if err != nil {
		return false, err
	}
	la, lb := pair[0].floatLoader(), pair[1].floatLoader()
	n := pair[0].Size()
	for i := 0; i < n; i++ {
		x, y := la(i), lb(i)
		if math.IsNaN(x) || math.IsNaN(y) {
			return false, nil
		}
		if math.Abs(x-y) > atol+rtol*math.Abs(y) {
			return false, nil
		}
	}
	return true, nil
}
