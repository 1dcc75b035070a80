package array

// Range describes one axis of a slicing operation, before normalization
// against the axis size. HasStart/HasStop distinguish omitted bounds
// ("::2") from explicit zeros. An index term (IsIndex) selects a single
// position and removes the axis from the result.
type Range struct {
	Start, Stop, Step int
	HasStart, HasStop bool
	IsIndex           bool
}

// FullRange is the whole-axis range, ":".
func FullRange() Range { return Range{Step: 1} }

// Index selects a single position along an axis.
func Index(i int) Range { return Range{Start: i, IsIndex: true} }

// NewRange is the half-open [start, stop) range with step 1.
func NewRange(start, stop int) Range {
	return Range{Start: start, Stop: stop, Step: 1, HasStart: true, HasStop: true}
}

// Slice derives a view selecting the given per-axis ranges. Fewer
// ranges than rank leaves the trailing axes whole. Negative bounds and
// indices count from the end of the axis; out-of-range bounds clamp,
// out-of-range indices fail. The view shares the source buffer.
func Slice(a *Array, ranges []Range) (*Array, error) {
	rank := len(a.shape)
	if len(ranges) > rank {
		return nil, shapeErrorf("slice", "%d slice terms for array of rank %d", len(ranges), rank)
	}
	shape := make(Shape, 0, rank)
	strides := make([]int, 0, rank)
	offset := a.offset
	for d := 0; d < rank; d++ {
		if d >= len(ranges) {
			shape = append(shape, a.shape[d])
			strides = append(strides, a.strides[d])
			continue
		}
		r := ranges[d]
		size := a.shape[d]
		if r.IsIndex {
			idx := r.Start
			if idx < 0 {
				idx += size
			}
			if idx < 0 || idx >= size {
				return nil, indexError("slice", r.Start, d, size)
			}
			offset += idx * a.strides[d]
			continue
		}
		if r.Step == 0 {
			return nil, domainErrorf("slice", "step must not be zero on axis %d", d)
		}
		start, count := normalizeRange(r, size)
		if count > 0 {
			offset += start * a.strides[d]
		}
		shape = append(shape, count)
		strides = append(strides, r.Step*a.strides[d])
	}
	return a.view(shape, strides, offset), nil
}

// normalizeRange resolves a range against an axis size, returning the
// first selected position and the selection length.
func normalizeRange(r Range, size int) (start, count int) {
	if r.Step > 0 {
		start = 0
		if r.HasStart {
			start = clampBound(r.Start, size, 0, size)
		}
		stop := size
		if r.HasStop {
			stop = clampBound(r.Stop, size, 0, size)
		}
		if stop > start {
			count = (stop - start + r.Step - 1) / r.Step
		}
		return start, count
	}
	start = size - 1
	if r.HasStart {
		start = clampBound(r.Start, size, -1, size-1)
	}
	stop := -1
	if r.HasStop {
		stop = clampBound(r.Stop, size, -1, size-1)
	}
	if start > stop {
		count = (start - stop - r.Step - 1) / -r.Step
	}
	return start, count
}

// clampBound applies negative wrapping then clamps into [lo, hi].
func clampBound(v, size, lo, hi int) int {
	if v < 0 {
		v += size
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
