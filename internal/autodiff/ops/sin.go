package ops

import "math"

// SinOp represents output = sin(a), with d(sin a)/da = cos(a).
type SinOp struct{}

// Name returns "sin".
func (SinOp) Name() string { return "sin" }

// Arity returns 1.
func (SinOp) Arity() int { return 1 }

// Forward returns sin(a).
func (SinOp) Forward(args []float64) float64 {
	return math.Sin(args[0])
}

// Backward computes grad_a = cos(a) * outputGrad.
func (SinOp) Backward(args []float64, _, outputGrad float64, grads []float64) {
	grads[0] = math.Cos(args[0]) * outputGrad
}
