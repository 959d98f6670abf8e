// Package ops defines the scalar operations a computation graph is built from.
//
// Each operation implements the Operation interface, which provides:
//   - Forward pass: the output value from the operand values
//   - Backward pass: the operand gradients given the output gradient
//
// Supported operations:
//   - AddOp: n-ary sum (d(a+b+...)/da = 1)
//   - SubOp, MulOp, DivOp, NegOp: arithmetic
//   - SquareOp, SqrtOp, AbsOp, ExpOp, LogOp, SinOp, CosOp: unary functions
//   - MaxOp, MinOp, ReLUOp: piecewise-linear functions (subgradient at the kink)
//
// Operations are stateless values; a graph stores one per node.
package ops

// Operation represents a differentiable scalar operation in the computation graph.
type Operation interface {
	// Name returns a short identifier used in graph dumps and error messages.
	Name() string

	// Arity returns the number of operands, or -1 for variadic operations.
	Arity() int

	// Forward computes the output value from the operand values.
	Forward(args []float64) float64

	// Backward writes the contribution of outputGrad to each operand gradient.
	// grads has the same length as args and is zeroed by the caller.
	//
	// Example for MulOp:
	//   args: [a, b]
	//   outputGrad: dL/d(a*b)
	//   grads: [outputGrad*b, outputGrad*a]
	Backward(args []float64, output, outputGrad float64, grads []float64)
}
