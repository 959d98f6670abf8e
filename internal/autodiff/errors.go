package autodiff

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonFinite reports a NaN or infinite value produced by a graph pass.
var ErrNonFinite = errors.New("autodiff: non-finite value")

// CheckFinite returns an error wrapping ErrNonFinite if value or any
// gradient component is NaN or ±Inf. Graph passes never fail on their own;
// callers test their results with CheckFinite.
func CheckFinite(value float64, grad []float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: value %v", ErrNonFinite, value)
	}
	for i, v := range grad {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: gradient[%d] = %v", ErrNonFinite, i, v)
		}
	}
	return nil
}
