package ops

// SubOp represents a subtraction: output = a - b.
//
// Backward pass:
//   - d(a-b)/da = 1, so grad_a = outputGrad
//   - d(a-b)/db = -1, so grad_b = -outputGrad
type SubOp struct{}

// Name returns "sub".
func (SubOp) Name() string { return "sub" }

// Arity returns 2.
func (SubOp) Arity() int { return 2 }

// Forward returns a - b.
func (SubOp) Forward(args []float64) float64 {
	return args[0] - args[1]
}

// Backward computes operand gradients for subtraction.
func (SubOp) Backward(_ []float64, _, outputGrad float64, grads []float64) {
	grads[0] = outputGrad
	grads[1] = -outputGrad
}
