package array

// BroadcastTo returns a view of a expanded to the target shape. Expanded
// and left-padded axes get stride 0, so the result aliases the source
// without copying; no data moves.
func BroadcastTo(a *Array, target Shape) (*Array, error) {
	rank := len(target)
	if len(a.shape) > rank {
		return nil, shapeErrorf("broadcast", "cannot broadcast shape %v to %v", []int(a.shape), []int(target))
	}
	strides := make([]int, rank)
	pad := rank - len(a.shape)
	for d := 0; d < rank; d++ {
		if d < pad {
			continue // stride 0 on padded axes
		}
		size := a.shape[d-pad]
		switch {
		case size == target[d]:
			strides[d] = a.strides[d-pad]
		case size == 1:
			strides[d] = 0
		default:
			return nil, shapeErrorf("broadcast", "cannot broadcast shape %v to %v", []int(a.shape), []int(target))
		}
	}
	return a.view(target.Clone(), strides, a.offset), nil
}

// BroadcastArrays computes the common broadcast shape once and expands
// every input to it.
func BroadcastArrays(arrays ...*Array) ([]*Array, error) {
	shapes := make([]Shape, len(arrays))
	for i, a := range arrays {
		shapes[i] = a.shape
	}
	common, err := BroadcastShape(shapes...)
	if err != nil {
		return nil, err
	}
	out := make([]*Array, len(arrays))
	for i, a := range arrays {
		out[i], err = BroadcastTo(a, common)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
