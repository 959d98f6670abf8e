package ops

// NegOp represents a negation: output = -a.
type NegOp struct{}

// Name returns "neg".
func (NegOp) Name() string { return "neg" }

// Arity returns 1.
func (NegOp) Arity() int { return 1 }

// Forward returns -a.
func (NegOp) Forward(args []float64) float64 {
	return -args[0]
}

// Backward computes grad_a = -outputGrad.
func (NegOp) Backward(_ []float64, _, outputGrad float64, grads []float64) {
	grads[0] = -outputGrad
}
