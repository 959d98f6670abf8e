package ops

import "math"

// SqrtOp represents output = √a.
//
// Backward pass:
//   - d(√a)/da = 1 / (2√a)
//   - at a = 0 the gradient is taken as 0, so distances between coincident
//     points do not poison the whole gradient with Inf
type SqrtOp struct{}

// Name returns "sqrt".
func (SqrtOp) Name() string { return "sqrt" }

// Arity returns 1.
func (SqrtOp) Arity() int { return 1 }

// Forward returns √a.
func (SqrtOp) Forward(args []float64) float64 {
	return math.Sqrt(args[0])
}

// Backward computes grad_a = outputGrad / (2√a).
func (SqrtOp) Backward(_ []float64, output, outputGrad float64, grads []float64) {
	if output == 0 {
		grads[0] = 0
		return
	}
	grads[0] = outputGrad / (2 * output)
}
