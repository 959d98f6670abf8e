package ops

import "math"

// ExpOp represents output = eᵃ.
//
// Backward pass:
//   - d(eᵃ)/da = eᵃ, reused from the cached output
type ExpOp struct{}

// Name returns "exp".
func (ExpOp) Name() string { return "exp" }

// Arity returns 1.
func (ExpOp) Arity() int { return 1 }

// Forward returns eᵃ.
func (ExpOp) Forward(args []float64) float64 {
	return math.Exp(args[0])
}

// Backward computes grad_a = eᵃ * outputGrad.
func (ExpOp) Backward(_ []float64, output, outputGrad float64, grads []float64) {
	grads[0] = output * outputGrad
}
