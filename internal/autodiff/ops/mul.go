package ops

// MulOp represents a multiplication: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct{}

// Name returns "mul".
func (MulOp) Name() string { return "mul" }

// Arity returns 2.
func (MulOp) Arity() int { return 2 }

// Forward returns a * b.
func (MulOp) Forward(args []float64) float64 {
	return args[0] * args[1]
}

// Backward computes operand gradients for multiplication.
func (MulOp) Backward(args []float64, _, outputGrad float64, grads []float64) {
	grads[0] = outputGrad * args[1]
	grads[1] = outputGrad * args[0]
}
