package ops

// SquareOp represents output = a².
//
// Backward pass:
//   - d(a²)/da = 2a
type SquareOp struct{}

// Name returns "square".
func (SquareOp) Name() string { return "square" }

// Arity returns 1.
func (SquareOp) Arity() int { return 1 }

// Forward returns a * a.
func (SquareOp) Forward(args []float64) float64 {
	return args[0] * args[0]
}

// Backward computes grad_a = 2a * outputGrad.
func (SquareOp) Backward(args []float64, _, outputGrad float64, grads []float64) {
	grads[0] = 2 * args[0] * outputGrad
}
