package ops

import "math"

// ReLUOp represents output = max(a, 0).
//
// Backward pass:
//   - d(ReLU(a))/da = 1 if a > 0, else 0
//
// This is the one-sided hinge used to turn a constraint value into a penalty.
// NaN propagates in both directions so that a broken constraint is never
// mistaken for a satisfied one.
type ReLUOp struct{}

// Name returns "relu".
func (ReLUOp) Name() string { return "relu" }

// Arity returns 1.
func (ReLUOp) Arity() int { return 1 }

// Forward returns max(a, 0), or NaN for NaN.
func (ReLUOp) Forward(args []float64) float64 {
	if math.IsNaN(args[0]) || args[0] > 0 {
		return args[0]
	}
	return 0
}

// Backward computes grad_a = outputGrad where a > 0.
func (ReLUOp) Backward(args []float64, _, outputGrad float64, grads []float64) {
	switch {
	case math.IsNaN(args[0]):
		grads[0] = math.NaN()
	case args[0] > 0:
		grads[0] = outputGrad
	default:
		grads[0] = 0
	}
}
