// Package tensoradapter converts between gorgonia tensors and indicator
// series. It is kept apart from package indicators so that callers that
// never touch tensors do not link gorgonia.
package tensoradapter

import (
	"fmt"

	"gorgonia.org/tensor"

	"equity-indicators/pkg/indicators"
)

// FromDense adapts a one-dimensional Float64 tensor to a Series. Views
// (sliced or strided tensors) are materialized into a copy; other tensors
// are read in place.
func FromDense(t *tensor.Dense) (indicators.Series, error) {
	if t == nil {
		return nil, invalidInput("nil tensor")
	}
	if t.Dtype() != tensor.Float64 {
		return nil, invalidInput("tensor dtype %v, want float64", t.Dtype())
	}
	if t.Dims() != 1 {
		return nil, invalidInput("tensor has %d dims, want 1", t.Dims())
	}

	if t.IsView() {
		m, ok := t.Materialize().(*tensor.Dense)
		if !ok {
			return nil, invalidInput("cannot materialize tensor view")
		}
		t = m
	}

	data, ok := t.Data().([]float64)
	if !ok {
		return nil, invalidInput("tensor backing is %T", t.Data())
	}
	n := t.Shape()[0]
	if len(data) < n {
		return nil, invalidInput("tensor backing has %d values, shape wants %d", len(data), n)
	}
	return indicators.Slice[float64](data[:n]), nil
}

// ToDense wraps values in a one-dimensional Float64 tensor.
func ToDense(values []float64) *tensor.Dense {
	return tensor.New(tensor.WithShape(len(values)), tensor.WithBacking(values))
}

func invalidInput(format string, args ...any) error {
	return &indicators.IndicatorError{Kind: indicators.InvalidInput, Msg: fmt.Sprintf(format, args...)}
}
