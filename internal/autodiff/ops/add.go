package ops

// AddOp represents an n-ary sum: output = a + b + ...
//
// Backward pass:
//   - d(sum)/da = 1, so every operand receives outputGrad
type AddOp struct{}

// Name returns "add".
func (AddOp) Name() string { return "add" }

// Arity returns -1: AddOp accepts any number of operands.
func (AddOp) Arity() int { return -1 }

// Forward returns the sum of args.
func (AddOp) Forward(args []float64) float64 {
	sum := 0.0
	for _, a := range args {
		sum += a
	}
	return sum
}

// Backward passes the output gradient through to every operand.
func (AddOp) Backward(_ []float64, _, outputGrad float64, grads []float64) {
	for i := range grads {
		grads[i] = outputGrad
	}
}
