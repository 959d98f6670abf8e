package ops

import "math"

// LogOp represents the natural logarithm: output = ln(a).
//
// Backward pass:
//   - d(ln a)/da = 1/a
type LogOp struct{}

// Name returns "log".
func (LogOp) Name() string { return "log" }

// Arity returns 1.
func (LogOp) Arity() int { return 1 }

// Forward returns ln(a).
func (LogOp) Forward(args []float64) float64 {
	return math.Log(args[0])
}

// Backward computes grad_a = outputGrad / a.
func (LogOp) Backward(args []float64, _, outputGrad float64, grads []float64) {
	grads[0] = outputGrad / args[0]
}
