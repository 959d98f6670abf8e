package autodiff

import "fmt"

// Forward evaluates every node up to and including out at the point x,
// caching each node value for Value and for a following backward sweep.
func (g *Graph) Forward(out NodeID, x []float64) float64 {
	if len(x) != g.numVars {
		panic(fmt.Sprintf("autodiff: got %d inputs, graph has %d variables", len(x), g.numVars))
	}
	if out < 0 || int(out) >= len(g.nodes) {
		panic(fmt.Sprintf("autodiff: output node %d out of range", out))
	}
	g.resetForward()

	for i := 0; i <= int(out); i++ {
		n := &g.nodes[i]
		switch n.kind {
		case kindConst:
			g.values[i] = n.value
		case kindVar:
			g.values[i] = x[n.index]
		case kindSlot:
			g.values[i] = g.slots[n.index]
		default:
			args := g.gather(n)
			g.values[i] = n.op.Forward(args)
		}
	}
	return g.values[out]
}

// Evaluate returns the value of out at x. It is Forward under the name
// callers of a compiled objective expect.
func (g *Graph) Evaluate(out NodeID, x []float64) float64 {
	return g.Forward(out, x)
}

// Value returns the cached forward value of node id from the most recent pass.
// Nodes created after the last pass's output node read as 0.
func (g *Graph) Value(id NodeID) float64 {
	if int(id) >= len(g.values) {
		return 0
	}
	return g.values[id]
}

// Gradient evaluates out at x and returns its value together with ∂out/∂x.
// The returned slice is freshly allocated and owned by the caller.
func (g *Graph) Gradient(out NodeID, x []float64) (float64, []float64) {
	value := g.Forward(out, x)
	g.backward(out)
	grad := make([]float64, g.numVars)
	copy(grad, g.varGrad)
	return value, grad
}

// resetForward sizes and clears the forward cache.
func (g *Graph) resetForward() {
	n := len(g.nodes)
	if cap(g.values) < n {
		g.values = make([]float64, n)
	}
	g.values = g.values[:n]
	clear(g.values)
}

// gather copies the operand values of n into the shared scratch buffer.
func (g *Graph) gather(n *node) []float64 {
	count := int(n.count)
	if cap(g.scratch) < count {
		g.scratch = make([]float64, count)
	}
	args := g.scratch[:count]
	for j, id := range g.operands[n.start : n.start+n.count] {
		args[j] = g.values[id]
	}
	return args
}
