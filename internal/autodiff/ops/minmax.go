package ops

import "math"

// MaxOp represents output = max(a, b).
// The whole gradient flows to the selected operand; ties select a.
// A NaN operand makes the output and both operand gradients NaN.
type MaxOp struct{}

// Name returns "max".
func (MaxOp) Name() string { return "max" }

// Arity returns 2.
func (MaxOp) Arity() int { return 2 }

// Forward returns max(a, b).
func (MaxOp) Forward(args []float64) float64 {
	if hasNaN(args) {
		return math.NaN()
	}
	if args[0] >= args[1] {
		return args[0]
	}
	return args[1]
}

// Backward routes outputGrad to the larger operand.
func (MaxOp) Backward(args []float64, _, outputGrad float64, grads []float64) {
	if hasNaN(args) {
		grads[0], grads[1] = math.NaN(), math.NaN()
		return
	}
	if args[0] >= args[1] {
		grads[0] = outputGrad
		return
	}
	grads[1] = outputGrad
}

// MinOp represents output = min(a, b).
// The whole gradient flows to the selected operand; ties select a.
// A NaN operand makes the output and both operand gradients NaN.
type MinOp struct{}

// Name returns "min".
func (MinOp) Name() string { return "min" }

// Arity returns 2.
func (MinOp) Arity() int { return 2 }

// Forward returns min(a, b).
func (MinOp) Forward(args []float64) float64 {
	if hasNaN(args) {
		return math.NaN()
	}
	if args[0] <= args[1] {
		return args[0]
	}
	return args[1]
}

// Backward routes outputGrad to the smaller operand.
func (MinOp) Backward(args []float64, _, outputGrad float64, grads []float64) {
	if hasNaN(args) {
		grads[0], grads[1] = math.NaN(), math.NaN()
		return
	}
	if args[0] <= args[1] {
		grads[0] = outputGrad
		return
	}
	grads[1] = outputGrad
}

func hasNaN(args []float64) bool {
	for _, a := range args {
		if math.IsNaN(a) {
			return true
		}
	}
	return false
}
