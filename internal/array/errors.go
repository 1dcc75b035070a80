package array

import (
	"errors"
	"fmt"
)

// The five error kinds the engine reports. Every error returned by this
// package wraps exactly one of them, so callers dispatch with errors.Is.
var (
	// ErrShape marks broadcast/concatenate/matmul/reshape shape mismatches.
	ErrShape = errors.New("shape mismatch")
	// ErrAxis marks an axis outside [-rank, rank).
	ErrAxis = errors.New("axis out of range")
	// ErrIndex marks a per-axis index outside the axis bounds.
	ErrIndex = errors.New("index out of bounds")
	// ErrUnsupportedDType marks a dtype combination a kernel cannot execute.
	ErrUnsupportedDType = errors.New("unsupported dtype")
	// ErrDomain marks value-level failures such as empty-array max/min.
	ErrDomain = errors.New("domain error")
)

func shapeErrorf(op, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, ErrShape, fmt.Sprintf(format, args...))
}

func axisError(op string, axis, rank int) error {
	return fmt.Errorf("%s: %w: axis %d for array of rank %d", op, ErrAxis, axis, rank)
}

func indexError(op string, index, axis, size int) error {
	return fmt.Errorf("%s: %w: index %d on axis %d with size %d", op, ErrIndex, index, axis, size)
}

func dtypeError(op string, d DType) error {
	return fmt.Errorf("%s: %w: %s", op, ErrUnsupportedDType, d)
}

func domainErrorf(op, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, ErrDomain, fmt.Sprintf(format, args...))
}

// normAxis resolves a possibly negative axis against rank.
func normAxis(op string, axis, rank int) (int, error) {
	if axis < -rank || axis >= rank {
		return 0, axisError(op, axis, rank)
	}
	if axis < 0 {
		axis += rank
	}
	return axis, nil
}
