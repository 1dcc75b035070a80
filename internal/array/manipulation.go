package array

// Reshape returns an array with the same content and a new shape. One
// axis may be -1 and is inferred from the element count. Row-major
// contiguous sources reshape as a view over the shared buffer;
// everything else is normalized through Copy first, so the result is
// not always alias-free.
func Reshape(a *Array, newShape Shape) (*Array, error) {
	shape, err := resolveShape(a, newShape)
	if err != nil {
		return nil, err
	}
	if a.IsContiguous() {
		return a.view(shape, shape.ComputeStrides(), a.offset), nil
	}
	c := a.Copy()
	c.shape = shape
	c.strides = shape.ComputeStrides()
	return c, nil
}

// resolveShape validates a reshape target, inferring a single -1 axis.
func resolveShape(a *Array, newShape Shape) (Shape, error) {
	shape := newShape.Clone()
	infer := -1
	known := 1
	for d, size := range shape {
		switch {
		case size == -1 && infer == -1:
			infer = d
		case size < 0:
			return nil, shapeErrorf("reshape", "can only infer one axis, shape %v", []int(newShape))
		default:
			known *= size
		}
	}
	if infer >= 0 {
		if known == 0 || a.Size()%known != 0 {
			return nil, shapeErrorf("reshape", "cannot infer axis: %d elements into shape %v", a.Size(), []int(newShape))
		}
		shape[infer] = a.Size() / known
		known *= shape[infer]
	}
	if known != a.Size() {
		return nil, shapeErrorf("reshape", "cannot reshape %d elements into shape %v", a.Size(), []int(newShape))
	}
	return shape, nil
}

// Ravel flattens to 1-d, as a view when the source is contiguous.
func Ravel(a *Array) (*Array, error) {
	return Reshape(a, Shape{a.Size()})
}

// Flatten flattens to 1-d, always copying.
func Flatten(a *Array) *Array {
	c := a.Copy()
	c.shape = Shape{a.Size()}
	c.strides = []int{1}
	return c
}

// Transpose permutes axes without touching data; the result is always a
// view. With no axes given the axis order reverses.
func Transpose(a *Array, axes ...int) (*Array, error) {
	rank := len(a.shape)
	if len(axes) == 0 {
		axes = make([]int, rank)
		for d := range axes {
			axes[d] = rank - 1 - d
		}
	}
	if len(axes) != rank {
		return nil, shapeErrorf("transpose", "%d axes for array of rank %d", len(axes), rank)
	}
	shape := make(Shape, rank)
	strides := make([]int, rank)
	seen := make([]bool, rank)
	for d, ax := range axes {
		norm, err := normAxis("transpose", ax, rank)
		if err != nil {
			return nil, err
		}
		if seen[norm] {
			return nil, shapeErrorf("transpose", "repeated axis %d in permutation %v", ax, axes)
		}
		seen[norm] = true
		shape[d] = a.shape[norm]
		strides[d] = a.strides[norm]
	}
	return a.view(shape, strides, a.offset), nil
}

// Swapaxes exchanges two axes; always a view.
func Swapaxes(a *Array, axis1, axis2 int) (*Array, error) {
	rank := len(a.shape)
	ax1, err := normAxis("swapaxes", axis1, rank)
	if err != nil {
		return nil, err
	}
	ax2, err := normAxis("swapaxes", axis2, rank)
	if err != nil {
		return nil, err
	}
	axes := make([]int, rank)
	for d := range axes {
		axes[d] = d
	}
	axes[ax1], axes[ax2] = ax2, ax1
	return Transpose(a, axes...)
}

// Moveaxis moves one axis to a new position, preserving the order of
// the rest; always a view.
func Moveaxis(a *Array, src, dst int) (*Array, error) {
	rank := len(a.shape)
	s, err := normAxis("moveaxis", src, rank)
	if err != nil {
		return nil, err
	}
	d, err := normAxis("moveaxis", dst, rank)
	if err != nil {
		return nil, err
	}
	axes := make([]int, 0, rank)
	for ax := 0; ax < rank; ax++ {
		if ax != s {
			axes = append(axes, ax)
		}
	}
	axes = append(axes[:d], append([]int{s}, axes[d:]...)...)
	return Transpose(a, axes...)
}

// Squeeze drops size-1 axes; always a view. With no axes given every
// size-1 axis goes, collapsing an all-ones shape to a 0-d scalar. Named
// axes must have size 1.
func Squeeze(a *Array, axes ...int) (*Array, error) {
	rank := len(a.shape)
	drop := make([]bool, rank)
	if len(axes) == 0 {
		for d, size := range a.shape {
			drop[d] = size == 1
		}
	} else {
		for _, ax := range axes {
			norm, err := normAxis("squeeze", ax, rank)
			if err != nil {
				return nil, err
			}
			if a.shape[norm] != 1 {
				return nil, shapeErrorf("squeeze", "axis %d has size %d, expected 1", ax, a.shape[norm])
			}
			drop[norm] = true
		}
	}
	shape := make(Shape, 0, rank)
	strides := make([]int, 0, rank)
	for d := 0; d < rank; d++ {
		if !drop[d] {
			shape = append(shape, a.shape[d])
			strides = append(strides, a.strides[d])
		}
	}
	return a.view(shape, strides, a.offset), nil
}

// ExpandDims inserts a size-1 axis at the given position; always a view.
func ExpandDims(a *Array, axis int) (*Array, error) {
	rank := len(a.shape)
	if axis < -rank-1 || axis > rank {
		return nil, axisError("expandDims", axis, rank+1)
	}
	if axis < 0 {
		axis += rank + 1
	}
	shape := make(Shape, 0, rank+1)
	strides := make([]int, 0, rank+1)
	shape = append(append(shape, a.shape[:axis]...), 1)
	shape = append(shape, a.shape[axis:]...)
	strides = append(append(strides, a.strides[:axis]...), 0)
	strides = append(strides, a.strides[axis:]...)
	return a.view(shape, strides, a.offset), nil
}

// axisView restricts one axis to [start, stop) without copying.
func (a *Array) axisView(axis, start, stop int) *Array {
	shape := a.shape.Clone()
	shape[axis] = stop - start
	return a.view(shape, append([]int(nil), a.strides...), a.offset+start*a.strides[axis])
}

// assignInto writes src into dst elementwise; shapes must already match.
// Evaluates in dst's working domain.
func assignInto(dst, src *Array) {
	n := dst.Size()
	switch domainOf(dst.dtype) {
	case domInt:
		ld, st := src.intLoader(), dst.intStorer()
		for i := 0; i < n; i++ {
			st(i, ld(i))
		}
	case domUint:
		ld, st := src.uintLoader(), dst.uintStorer()
		for i := 0; i < n; i++ {
			st(i, ld(i))
		}
	default:
		ld, st := src.floatLoader(), dst.floatStorer()
		for i := 0; i < n; i++ {
			st(i, ld(i))
		}
	}
}

// Concatenate joins arrays along an existing axis. Shapes must agree on
// every other axis; the result dtype is the promotion over all inputs
// and always owns a fresh buffer.
func Concatenate(arrays []*Array, axis int) (*Array, error) {
	if len(arrays) == 0 {
		return nil, shapeErrorf("concatenate", "need at least one array")
	}
	rank := len(arrays[0].shape)
	norm, err := normAxis("concatenate", axis, rank)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, a := range arrays {
		if len(a.shape) != rank {
			return nil, shapeErrorf("concatenate", "ranks differ: %d vs %d", rank, len(a.shape))
		}
		for d := 0; d < rank; d++ {
			if d != norm && a.shape[d] != arrays[0].shape[d] {
				return nil, shapeErrorf("concatenate", "shapes %v and %v differ on axis %d",
					[]int(arrays[0].shape), []int(a.shape), d)
			}
		}
		total += a.shape[norm]
	}
	shape := arrays[0].shape.Clone()
	shape[norm] = total
	res, err := New(shape, promoteAll(arrays))
	if err != nil {
		return nil, err
	}
	pos := 0
	for _, a := range arrays {
		assignInto(res.axisView(norm, pos, pos+a.shape[norm]), a)
		pos += a.shape[norm]
	}
	return res, nil
}

// Stack joins arrays of identical shape along a new axis.
func Stack(arrays []*Array, axis int) (*Array, error) {
	if len(arrays) == 0 {
		return nil, shapeErrorf("stack", "need at least one array")
	}
	for _, a := range arrays[1:] {
		if !a.shape.Equal(arrays[0].shape) {
			return nil, shapeErrorf("stack", "all shapes must match, got %v and %v",
				[]int(arrays[0].shape), []int(a.shape))
		}
	}
	expanded := make([]*Array, len(arrays))
	for i, a := range arrays {
		e, err := ExpandDims(a, axis)
		if err != nil {
			return nil, err
		}
		expanded[i] = e
	}
	return Concatenate(expanded, axis)
}

// atleast2d views 0-d and 1-d inputs as 1×n rows.
func atleast2d(a *Array) *Array {
	switch len(a.shape) {
	case 0:
		return a.view(Shape{1, 1}, []int{0, 0}, a.offset)
	case 1:
		return a.view(Shape{1, a.shape[0]}, []int{0, a.strides[0]}, a.offset)
	default:
		return a
	}
}

// VStack stacks arrays row-wise: inputs below rank 2 become 1×n rows,
// then everything concatenates along axis 0.
func VStack(arrays []*Array) (*Array, error) {
	rows := make([]*Array, len(arrays))
	for i, a := range arrays {
		rows[i] = atleast2d(a)
	}
	return Concatenate(rows, 0)
}

// HStack stacks arrays column-wise: 1-d inputs concatenate along axis
// 0, higher ranks along axis 1.
func HStack(arrays []*Array) (*Array, error) {
	if len(arrays) == 0 {
		return nil, shapeErrorf("hstack", "need at least one array")
	}
	if len(arrays[0].shape) <= 1 {
		return Concatenate(arrays, 0)
	}
	return Concatenate(arrays, 1)
}

// DStack stacks arrays depth-wise along the third axis; lower-rank
// inputs are viewed up to rank 3 first.
func DStack(arrays []*Array) (*Array, error) {
	deep := make([]*Array, len(arrays))
	for i, a := range arrays {
		v := atleast2d(a)
		if len(v.shape) == 2 {
			var err error
			v, err = ExpandDims(v, 2)
			if err != nil {
				return nil, err
			}
		}
		deep[i] = v
	}
	return Concatenate(deep, 2)
}

// Split divides an axis into equal sections, each owning a fresh
// buffer. The axis size must divide evenly.
func Split(a *Array, sections, axis int) ([]*Array, error) {
	norm, err := normAxis("split", axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	if sections <= 0 {
		return nil, domainErrorf("split", "number of sections must be positive, got %d", sections)
	}
	size := a.shape[norm]
	if size%sections != 0 {
		return nil, shapeErrorf("split", "axis size %d does not divide into %d equal sections", size, sections)
	}
	return splitSizes(a, norm, equalSizes(size, sections, false)), nil
}

// ArraySplit divides an axis into near-equal sections: the first
// size%sections parts get one extra element.
func ArraySplit(a *Array, sections, axis int) ([]*Array, error) {
	norm, err := normAxis("arraySplit", axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	if sections <= 0 {
		return nil, domainErrorf("arraySplit", "number of sections must be positive, got %d", sections)
	}
	return splitSizes(a, norm, equalSizes(a.shape[norm], sections, true)), nil
}

// SplitAt divides an axis at explicit ascending points.
func SplitAt(a *Array, points []int, axis int) ([]*Array, error) {
	norm, err := normAxis("split", axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	size := a.shape[norm]
	sizes := make([]int, 0, len(points)+1)
	prev := 0
	for _, p := range points {
		if p < prev {
			return nil, domainErrorf("split", "split points must be ascending, got %v", points)
		}
		if p > size {
			p = size
		}
		sizes = append(sizes, p-prev)
		prev = p
	}
	sizes = append(sizes, size-prev)
	return splitSizes(a, norm, sizes), nil
}

func equalSizes(size, sections int, uneven bool) []int {
	sizes := make([]int, sections)
	base, extra := size/sections, size%sections
	for i := range sizes {
		sizes[i] = base
		if uneven && i < extra {
			sizes[i]++
		}
	}
	return sizes
}

func splitSizes(a *Array, axis int, sizes []int) []*Array {
	out := make([]*Array, len(sizes))
	pos := 0
	for i, size := range sizes {
		out[i] = a.axisView(axis, pos, pos+size).Copy()
		pos += size
	}
	return out
}

// Tile repeats the whole array reps[d] times along each axis,
// materializing a fresh buffer. Shorter of shape/reps is left-padded
// with 1s.
func Tile(a *Array, reps []int) (*Array, error) {
	for _, r := range reps {
		if r < 0 {
			return nil, domainErrorf("tile", "negative repetition in %v", reps)
		}
	}
	rank := max(len(a.shape), len(reps))
	src := a
	if len(a.shape) < rank {
		pad := make(Shape, rank-len(a.shape))
		for i := range pad {
			pad[i] = 1
		}
		var err error
		src, err = Reshape(a, append(pad, a.shape...))
		if err != nil {
			return nil, err
		}
	}
	shape := make(Shape, rank)
	for d := 0; d < rank; d++ {
		shape[d] = src.shape[d]
		if pos := d - (rank - len(reps)); pos >= 0 {
			shape[d] *= reps[pos]
		}
	}
	res, err := New(shape, a.dtype)
	if err != nil {
		return nil, err
	}
	n := res.Size()
	if n == 0 {
		return res, nil
	}
	if a.dtype.IsWide() {
		// exact wide path
		ati, seti := src.intAt(), res.setIntAt()
		idx := make([]int, rank)
		for i := 0; i < n; i++ {
			off := src.offset
			rem := i
			for d := rank - 1; d >= 0; d-- {
				idx[d] = rem % shape[d]
				rem /= shape[d]
				off += (idx[d] % src.shape[d]) * src.strides[d]
			}
			seti(i, ati(off))
		}
		return res, nil
	}
	at, set := src.floatAt(), res.setFloatAt()
	idx := make([]int, rank)
	for i := 0; i < n; i++ {
		off := src.offset
		rem := i
		for d := rank - 1; d >= 0; d-- {
			idx[d] = rem % shape[d]
			rem /= shape[d]
			off += (idx[d] % src.shape[d]) * src.strides[d]
		}
		set(i, at(off))
	}
	return res, nil
}

// Repeat repeats each element of an axis repeats times, materializing a
// fresh buffer.
func Repeat(a *Array, repeats, axis int) (*Array, error) {
	if repeats < 0 {
		return nil, domainErrorf("repeat", "negative repeat count %d", repeats)
	}
	norm, err := normAxis("repeat", axis, len(a.shape))
	if err != nil {
		return nil, err
	}
	shape := a.shape.Clone()
	shape[norm] *= repeats
	res, err := New(shape, a.dtype)
	if err != nil {
		return nil, err
	}
	outer, size, inner := axisExtents(a.shape, norm)
	if a.dtype.IsWide() {
		ld, st := a.intLoader(), res.intStorer()
		for o := 0; o < outer; o++ {
			for j := 0; j < size; j++ {
				for r := 0; r < repeats; r++ {
					for i := 0; i < inner; i++ {
						st((o*size*repeats+j*repeats+r)*inner+i, ld((o*size+j)*inner+i))
					}
				}
			}
		}
		return res, nil
	}
	srcLd, dstSt := a.floatLoader(), res.floatStorer()
	for o := 0; o < outer; o++ {
		for j := 0; j < size; j++ {
			for r := 0; r < repeats; r++ {
				for i := 0; i < inner; i++ {
					dstSt((o*size*repeats+j*repeats+r)*inner+i, srcLd((o*size+j)*inner+i))
				}
			}
		}
	}
	return res, nil
}

// RepeatFlat repeats each element of the flattened array repeats times.
func RepeatFlat(a *Array, repeats int) (*Array, error) {
	flat, err := Ravel(a)
	if err != nil {
		return nil, err
	}
	return Repeat(flat, repeats, 0)
}
