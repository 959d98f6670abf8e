package autodiff

// backward walks the arena from out down to 0, seeding ∂out/∂out = 1 and
// accumulating each operation's local derivative into its operands.
// It relies on the values cached by the preceding Forward call.
//
// Algorithm:
//  1. Start with gradient 1.0 at the output node
//  2. Walk nodes in reverse arena order (reverse topological order)
//  3. For each operation node, compute operand gradients using the chain rule
//  4. Accumulate gradients when the same node is an operand several times
func (g *Graph) backward(out NodeID) {
	g.resetBackward()
	g.grads[out] = 1

	for i := int(out); i >= 0; i-- {
		n := &g.nodes[i]
		upstream := g.grads[i]
		switch n.kind {
		case kindVar:
			g.varGrad[n.index] += upstream
		case kindOp:
			if upstream == 0 {
				continue
			}
			args := g.gather(n)
			local := g.localGrads(int(n.count))
			n.op.Backward(args, g.values[i], upstream, local)
			for j, id := range g.operands[n.start : n.start+n.count] {
				g.grads[id] += local[j]
			}
		}
	}
}

// resetBackward sizes and clears the gradient caches.
func (g *Graph) resetBackward() {
	n := len(g.nodes)
	if cap(g.grads) < n {
		g.grads = make([]float64, n)
	}
	g.grads = g.grads[:n]
	clear(g.grads)

	if cap(g.varGrad) < g.numVars {
		g.varGrad = make([]float64, g.numVars)
	}
	g.varGrad = g.varGrad[:g.numVars]
	clear(g.varGrad)
}

// localGrads returns a zeroed buffer for one operation's operand gradients.
func (g *Graph) localGrads(count int) []float64 {
	if cap(g.sgrads) < count {
		g.sgrads = make([]float64, count)
	}
	local := g.sgrads[:count]
	clear(local)
	return local
}
