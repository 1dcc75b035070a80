// Package sliceexpr parses NumPy-style slice expressions such as
// "1:5:2", "::-1", or "-1" into per-axis specs the array engine's
// slicing operation consumes.
package sliceexpr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax marks a malformed slice expression.
var ErrSyntax = errors.New("invalid slice expression")

// Spec is one comma-separated term of a slice expression. A bare
// integer is an index term (IsIndex); a colon form carries up to three
// bounds, each optional.
type Spec struct {
	Start, Stop, Step int
	HasStart, HasStop bool
	IsIndex           bool
}

// Parse splits a slice expression on commas and parses each term.
// Whitespace around terms and bounds is ignored.
func Parse(expr string) ([]Spec, error) {
	terms := strings.Split(expr, ",")
	specs := make([]Spec, 0, len(terms))
	for _, term := range terms {
		spec, err := parseTerm(strings.TrimSpace(term))
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseTerm(term string) (Spec, error) {
	if term == "" {
		return Spec{}, fmt.Errorf("%w: empty term", ErrSyntax)
	}
	parts := strings.Split(term, ":")
	if len(parts) > 3 {
		return Spec{}, fmt.Errorf("%w: %q has more than two colons", ErrSyntax, term)
	}
	if len(parts) == 1 {
		idx, err := parseBound(parts[0])
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %q: %v", ErrSyntax, term, err)
		}
		return Spec{Start: idx, IsIndex: true}, nil
	}
	spec := Spec{Step: 1}
	fields := []struct {
		text string
		dst  *int
		has  *bool
	}{
		{strings.TrimSpace(parts[0]), &spec.Start, &spec.HasStart},
		{strings.TrimSpace(parts[1]), &spec.Stop, &spec.HasStop},
	}
	for _, f := range fields {
		if f.text == "" {
			continue
		}
		v, err := parseBound(f.text)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %q: %v", ErrSyntax, term, err)
		}
		*f.dst = v
		*f.has = true
	}
	if len(parts) == 3 {
		text := strings.TrimSpace(parts[2])
		if text != "" {
			step, err := parseBound(text)
			if err != nil {
				return Spec{}, fmt.Errorf("%w: %q: %v", ErrSyntax, term, err)
			}
			if step == 0 {
				return Spec{}, fmt.Errorf("%w: %q: step must not be zero", ErrSyntax, term)
			}
			spec.Step = step
		}
	}
	return spec, nil
}

func parseBound(text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", text)
	}
	return v, nil
}
