package ops

// DivOp represents a division: output = a / b.
//
// Backward pass:
//   - d(a/b)/da = 1/b
//   - d(a/b)/db = -a/b²
type DivOp struct{}

// Name returns "div".
func (DivOp) Name() string { return "div" }

// Arity returns 2.
func (DivOp) Arity() int { return 2 }

// Forward returns a / b.
func (DivOp) Forward(args []float64) float64 {
	return args[0] / args[1]
}

// Backward computes operand gradients for division.
func (DivOp) Backward(args []float64, _, outputGrad float64, grads []float64) {
	b := args[1]
	grads[0] = outputGrad / b
	grads[1] = -outputGrad * args[0] / (b * b)
}
