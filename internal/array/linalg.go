package array

// MatMul multiplies two 2-d arrays. The kernel computes in double
// precision only: integer and bool operands are promoted to float64
// first, and any other working precision (float32) is refused. Operand
// layout (row-major, column-major, transposed views) is handled by
// stride inspection, never by materializing a transposed copy.
func MatMul(a, b *Array) (*Array, error) {
	if len(a.shape) != 2 || len(b.shape) != 2 {
		return nil, shapeErrorf("matmul", "need 2-d operands, got ranks %d and %d", len(a.shape), len(b.shape))
	}
	if a.shape[1] != b.shape[0] {
		return nil, shapeErrorf("matmul", "shapes %v and %v: inner dimensions differ", []int(a.shape), []int(b.shape))
	}
	work := Promote(a.dtype, b.dtype)
	if !work.IsFloat() {
		work = Float64
	}
	if work != Float64 {
		return nil, dtypeError("matmul", work)
	}
	fa, fb := a, b
	var err error
	if fa.dtype != Float64 {
		if fa, err = AsType(a, Float64); err != nil {
			return nil, err
		}
	}
	if fb.dtype != Float64 {
		if fb, err = AsType(b, Float64); err != nil {
			return nil, err
		}
	}
	c, err := New(Shape{a.shape[0], b.shape[1]}, Float64)
	if err != nil {
		return nil, err
	}
	gemm(1, fa, fb, 0, c)
	return c, nil
}

// gemm computes C = alpha*A*B + beta*C over float64 rank-2 arrays with
// arbitrary strides. Each operand's memory orientation is read off its
// strides (column stride exceeding row stride means a transposed view),
// selecting one of eight loop nests that keep the innermost loop on the
// smallest strides available.
func gemm(alpha float64, a, b *Array, beta float64, c *Array) {
	m, k, n := a.shape[0], a.shape[1], b.shape[1]
	ad, bd, cd := a.f64(), b.f64(), c.f64()
	ao, as0, as1 := a.offset, a.strides[0], a.strides[1]
	bo, bs0, bs1 := b.offset, b.strides[0], b.strides[1]
	co, cs0, cs1 := c.offset, c.strides[0], c.strides[1]
	aT := as1 > as0
	bT := bs1 > bs0
	cT := cs1 > cs0

	// Scale (or clear) C before accumulating.
	if beta == 0 {
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				cd[co+i*cs0+j*cs1] = 0
			}
		}
	} else if beta != 1 {
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				cd[co+i*cs0+j*cs1] *= beta
			}
		}
	}

	switch {
	case !cT && !aT && !bT:
		// stream B and C rows
		for i := 0; i < m; i++ {
			for kk := 0; kk < k; kk++ {
				av := alpha * ad[ao+i*as0+kk*as1]
				for j := 0; j < n; j++ {
					cd[co+i*cs0+j*cs1] += av * bd[bo+kk*bs0+j*bs1]
				}
			}
		}
	case !cT && !aT && bT:
		// dot of A row against B column, both contiguous
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				sum := 0.0
				for kk := 0; kk < k; kk++ {
					sum += ad[ao+i*as0+kk*as1] * bd[bo+kk*bs0+j*bs1]
				}
				cd[co+i*cs0+j*cs1] += alpha * sum
			}
		}
	case !cT && aT && !bT:
		// walk A columns in the middle loop
		for kk := 0; kk < k; kk++ {
			for i := 0; i < m; i++ {
				av := alpha * ad[ao+i*as0+kk*as1]
				for j := 0; j < n; j++ {
					cd[co+i*cs0+j*cs1] += av * bd[bo+kk*bs0+j*bs1]
				}
			}
		}
	case !cT && aT && bT:
		// both operands column-ordered; fall back to row dots
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				sum := 0.0
				for kk := 0; kk < k; kk++ {
					sum += ad[ao+i*as0+kk*as1] * bd[bo+kk*bs0+j*bs1]
				}
				cd[co+i*cs0+j*cs1] += alpha * sum
			}
		}
	case cT && !aT && !bT:
		// C columns innermost
		for j := 0; j < n; j++ {
			for kk := 0; kk < k; kk++ {
				bv := alpha * bd[bo+kk*bs0+j*bs1]
				for i := 0; i < m; i++ {
					cd[co+i*cs0+j*cs1] += ad[ao+i*as0+kk*as1] * bv
				}
			}
		}
	case cT && !aT && bT:
		// dot loops with B columns contiguous
		for j := 0; j < n; j++ {
			for i := 0; i < m; i++ {
				sum := 0.0
				for kk := 0; kk < k; kk++ {
					sum += ad[ao+i*as0+kk*as1] * bd[bo+kk*bs0+j*bs1]
				}
				cd[co+i*cs0+j*cs1] += alpha * sum
			}
		}
	case cT && aT && !bT:
		// A and C columns innermost
		for kk := 0; kk < k; kk++ {
			for j := 0; j < n; j++ {
				bv := alpha * bd[bo+kk*bs0+j*bs1]
				for i := 0; i < m; i++ {
					cd[co+i*cs0+j*cs1] += ad[ao+i*as0+kk*as1] * bv
				}
			}
		}
	default: // cT && aT && bT
		// everything column-ordered
		for j := 0; j < n; j++ {
			for kk := 0; kk < k; kk++ {
				bv := alpha * bd[bo+kk*bs0+j*bs1]
				for i := 0; i < m; i++ {
					cd[co+i*cs0+j*cs1] += ad[ao+i*as0+kk*as1] * bv
				}
			}
		}
	}
}

// Dot dispatches on operand ranks: scalars multiply elementwise, 1-d
// pairs form an inner product, 2-d pairs go through matmul, and higher
// ranks contract a's last axis against b's first (1-d b) or
// second-to-last axis.
func Dot(a, b *Array) (*Array, error) {
	ra, rb := len(a.shape), len(b.shape)
	switch {
	case ra == 0 || rb == 0:
		return Multiply(a, b)
	case ra == 1 && rb == 1:
		return contract("dot", a, b, []int{0}, []int{0})
	case ra == 2 && rb == 2:
		return MatMul(a, b)
	default:
		axisB := 0
		if rb > 1 {
			axisB = rb - 2
		}
		return contract("dot", a, b, []int{ra - 1}, []int{axisB})
	}
}

// TensorDot contracts explicit axis lists of a against b.
func TensorDot(a, b *Array, axesA, axesB []int) (*Array, error) {
	if len(axesA) != len(axesB) {
		return nil, shapeErrorf("tensordot", "axis lists differ in length: %v vs %v", axesA, axesB)
	}
	return contract("tensordot", a, b, axesA, axesB)
}

// TensorDotN contracts the trailing n axes of a against the leading n
// axes of b.
func TensorDotN(a, b *Array, n int) (*Array, error) {
	if n < 0 || n > len(a.shape) || n > len(b.shape) {
		return nil, axisError("tensordot", n, min(len(a.shape), len(b.shape)))
	}
	axesA := make([]int, n)
	axesB := make([]int, n)
	for i := 0; i < n; i++ {
		axesA[i] = len(a.shape) - n + i
		axesB[i] = i
	}
	return contract("tensordot", a, b, axesA, axesB)
}

// Inner contracts the last axis of both operands; scalar operands
// multiply elementwise.
func Inner(a, b *Array) (*Array, error) {
	if len(a.shape) == 0 || len(b.shape) == 0 {
		return Multiply(a, b)
	}
	return contract("inner", a, b, []int{len(a.shape) - 1}, []int{len(b.shape) - 1})
}

// Outer flattens both operands and forms the full cross product.
func Outer(a, b *Array) (*Array, error) {
	fa, err := Ravel(a)
	if err != nil {
		return nil, err
	}
	fb, err := Ravel(b)
	if err != nil {
		return nil, err
	}
	out := Promote(a.dtype, b.dtype)
	res, err := New(Shape{fa.Size(), fb.Size()}, out)
	if err != nil {
		return nil, err
	}
	m, n := fa.Size(), fb.Size()
	switch domainOf(out) {
	case domInt:
		la, lb, st := fa.intLoader(), fb.intLoader(), res.intStorer()
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				st(i*n+j, la(i)*lb(j))
			}
		}
	case domUint:
		la, lb, st := fa.uintLoader(), fb.uintLoader(), res.uintStorer()
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				st(i*n+j, la(i)*lb(j))
			}
		}
	default:
		la, lb, st := fa.floatLoader(), fb.floatLoader(), res.floatStorer()
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				st(i*n+j, la(i)*lb(j))
			}
		}
	}
	return res, nil
}

// Trace sums the leading diagonal of a 2-d array up to min(rows, cols).
func Trace(a *Array) (*Array, error) {
	if len(a.shape) != 2 {
		return nil, shapeErrorf("trace", "need a 2-d array, got rank %d", len(a.shape))
	}
	steps := min(a.shape[0], a.shape[1])
	out := sumDType(a.dtype)
	res, err := New(Shape{}, out)
	if err != nil {
		return nil, err
	}
	diag := a.strides[0] + a.strides[1]
	switch domainOf(out) {
	case domInt:
		at := a.intAt()
		var acc int64
		for i := 0; i < steps; i++ {
			acc += at(a.offset + i*diag)
		}
		res.setIntAt()(0, acc)
	case domUint:
		at := a.uintAt()
		var acc uint64
		for i := 0; i < steps; i++ {
			acc += at(a.offset + i*diag)
		}
		res.setUintAt()(0, acc)
	default:
		at := a.floatAt()
		var acc float64
		for i := 0; i < steps; i++ {
			acc += at(a.offset + i*diag)
		}
		res.setFloatAt()(0, acc)
	}
	return res, nil
}

// contract is the generalized contraction behind dot/tensordot/inner:
// permute each operand so contracted axes trail (a) or lead (b),
// flatten to 2-d, multiply, and reshape to the concatenated free axes.
// It evaluates in the promoted working domain, so integer contractions
// stay exact.
func contract(op string, a, b *Array, axesA, axesB []int) (*Array, error) {
	normA, freeA, err := contractAxes(op, a, axesA)
	if err != nil {
		return nil, err
	}
	normB, freeB, err := contractAxes(op, b, axesB)
	if err != nil {
		return nil, err
	}
	for i := range normA {
		if a.shape[normA[i]] != b.shape[normB[i]] {
			return nil, shapeErrorf(op, "contracted axis sizes differ: %d (axis %d of %v) vs %d (axis %d of %v)",
				a.shape[normA[i]], axesA[i], []int(a.shape), b.shape[normB[i]], axesB[i], []int(b.shape))
		}
	}
	pa, err := Transpose(a, append(append([]int{}, freeA...), normA...)...)
	if err != nil {
		return nil, err
	}
	pb, err := Transpose(b, append(append([]int{}, normB...), freeB...)...)
	if err != nil {
		return nil, err
	}
	kSize := 1
	for _, ax := range normA {
		kSize *= a.shape[ax]
	}
	outShape := make(Shape, 0, len(freeA)+len(freeB))
	for _, ax := range freeA {
		outShape = append(outShape, a.shape[ax])
	}
	for _, ax := range freeB {
		outShape = append(outShape, b.shape[ax])
	}
	mSize := 1
	for _, ax := range freeA {
		mSize *= a.shape[ax]
	}
	nSize := 1
	for _, ax := range freeB {
		nSize *= b.shape[ax]
	}
	ma, err := Reshape(pa, Shape{mSize, kSize})
	if err != nil {
		return nil, err
	}
	mb, err := Reshape(pb, Shape{kSize, nSize})
	if err != nil {
		return nil, err
	}
	out := Promote(a.dtype, b.dtype)
	res, err := New(outShape, out)
	if err != nil {
		return nil, err
	}
	switch domainOf(out) {
	case domInt:
		la, lb, st := ma.intLoader(), mb.intLoader(), res.intStorer()
		for i := 0; i < mSize; i++ {
			for j := 0; j < nSize; j++ {
				var sum int64
				for kk := 0; kk < kSize; kk++ {
					sum += la(i*kSize+kk) * lb(kk*nSize+j)
				}
				st(i*nSize+j, sum)
			}
		}
	case domUint:
		la, lb, st := ma.uintLoader(), mb.uintLoader(), res.uintStorer()
		for i := 0; i < mSize; i++ {
			for j := 0; j < nSize; j++ {
				var sum uint64
				for kk := 0; kk < kSize; kk++ {
					sum += la(i*kSize+kk) * lb(kk*nSize+j)
				}
				st(i*nSize+j, sum)
			}
		}
	default:
		la, lb, st := ma.floatLoader(), mb.floatLoader(), res.floatStorer()
		for i := 0; i < mSize; i++ {
			for j := 0; j < nSize; j++ {
				var sum float64
				for kk := 0; kk < kSize; kk++ {
					sum += la(i*kSize+kk) * lb(kk*nSize+j)
				}
				st(i*nSize+j, sum)
			}
		}
	}
	return res, nil
}

// contractAxes normalizes a contraction axis list and returns it with
// the remaining free axes in order.
func contractAxes(op string, a *Array, axes []int) (norm, free []int, err error) {
	rank := len(a.shape)
	used := make([]bool, rank)
	norm = make([]int, len(axes))
	for i, ax := range axes {
		n, err := normAxis(op, ax, rank)
		if err != nil {
			return nil, nil, err
		}
		if used[n] {
			return nil, nil, shapeErrorf(op, "repeated contraction axis %d", ax)
		}
		used[n] = true
		norm[i] = n
	}
	free = make([]int, 0, rank-len(axes))
	for d := 0; d < rank; d++ {
		if !used[d] {
			free = append(free, d)
		}
	}
	return norm, free, nil
}
