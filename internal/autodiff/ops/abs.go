package ops

import "math"

// AbsOp represents output = |a|. The subgradient at 0 is 0.
type AbsOp struct{}

// Name returns "abs".
func (AbsOp) Name() string { return "abs" }

// Arity returns 1.
func (AbsOp) Arity() int { return 1 }

// Forward returns |a|.
func (AbsOp) Forward(args []float64) float64 {
	return math.Abs(args[0])
}

// Backward computes grad_a = sign(a) * outputGrad.
func (AbsOp) Backward(args []float64, _, outputGrad float64, grads []float64) {
	switch {
	case args[0] > 0:
		grads[0] = outputGrad
	case args[0] < 0:
		grads[0] = -outputGrad
	default:
		grads[0] = 0
	}
}
