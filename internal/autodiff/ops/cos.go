package ops

import "math"

// CosOp represents output = cos(a), with d(cos a)/da = -sin(a).
type CosOp struct{}

// Name returns "cos".
func (CosOp) Name() string { return "cos" }

// Arity returns 1.
func (CosOp) Arity() int { return 1 }

// Forward returns cos(a).
func (CosOp) Forward(args []float64) float64 {
	return math.Cos(args[0])
}

// Backward computes grad_a = -sin(a) * outputGrad.
func (CosOp) Backward(args []float64, _, outputGrad float64, grads []float64) {
	grads[0] = -math.Sin(args[0]) * outputGrad
}
