// Package autodiff implements reverse-mode automatic differentiation over a
// scalar computation graph.
//
// Architecture:
//   - Graph: an arena of nodes addressed by NodeID; operands always precede
//     the node that uses them, so the arena order is a topological order
//   - Leaves: constants, varying-variable slots and named input slots
//   - Operation interface (package ops): each op implements its local derivative rule
//   - Reverse-mode AD: one forward sweep caches every node value, one reverse
//     sweep accumulates ∂out/∂node into each operand
//
// The structure of a graph is built once and evaluated many times. Per-pass
// caches are reset at the start of every pass rather than rebuilt.
//
// Usage:
//
//	g := autodiff.NewGraph(2)
//	a, b := g.Var(0), g.Var(1)
//	out := g.Square(g.Sub(a, b)) // (a-b)²
//	value, grad := g.Gradient(out, []float64{0, 5})
//	// value = 25, grad = [-10, 10]
//
// A Graph is not safe for concurrent use.
package autodiff

import (
	"fmt"

	"github.com/born-ml/layout/internal/autodiff/ops"
)

// NodeID addresses a node in a Graph.
type NodeID int32

// None is the zero-value sentinel for "no node".
const None NodeID = -1

type nodeKind uint8

const (
	kindConst nodeKind = iota
	kindVar
	kindSlot
	kindOp
)

// node is a single arena entry. Operands live in Graph.operands[start:start+count].
type node struct {
	kind  nodeKind
	op    ops.Operation
	start int32
	count int32
	index int     // variable or slot index for leaves
	value float64 // constant value
}

// Graph is an arena of scalar operation nodes.
type Graph struct {
	nodes    []node
	operands []NodeID

	numVars   int
	varNodes  []NodeID // memoized Var leaves, None until first requested
	slotNames []string
	slotNodes []NodeID
	slotIndex map[string]int
	slots     []float64 // current slot values, substituted on every pass

	// Per-pass caches, valid only for the most recent Forward/Gradient call.
	values  []float64
	grads   []float64
	scratch []float64
	sgrads  []float64
	varGrad []float64
}

// NewGraph creates an empty graph over numVars varying variables.
func NewGraph(numVars int) *Graph {
	varNodes := make([]NodeID, numVars)
	for i := range varNodes {
		varNodes[i] = None
	}
	return &Graph{
		nodes:     make([]node, 0, 64),
		operands:  make([]NodeID, 0, 128),
		numVars:   numVars,
		varNodes:  varNodes,
		slotIndex: make(map[string]int),
	}
}

// NumVars returns the number of varying variables the graph is defined over.
func (g *Graph) NumVars() int {
	return g.numVars
}

// NumNodes returns the number of nodes in the arena.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Const creates a constant leaf.
func (g *Graph) Const(v float64) NodeID {
	return g.leaf(node{kind: kindConst, value: v})
}

// Var returns the leaf for varying variable i. Repeated calls return the same node.
func (g *Graph) Var(i int) NodeID {
	if i < 0 || i >= g.numVars {
		panic(fmt.Sprintf("autodiff: variable index %d out of range [0, %d)", i, g.numVars))
	}
	if id := g.varNodes[i]; id != None {
		return id
	}
	id := g.leaf(node{kind: kindVar, index: i})
	g.varNodes[i] = id
	return id
}

// Slot returns the named input slot, creating it with value 0 on first use.
// Slots are substituted per evaluation via SetSlot without touching graph structure.
func (g *Graph) Slot(name string) NodeID {
	if idx, ok := g.slotIndex[name]; ok {
		return g.slotNodes[idx]
	}
	idx := len(g.slotNames)
	id := g.leaf(node{kind: kindSlot, index: idx})
	g.slotNames = append(g.slotNames, name)
	g.slotNodes = append(g.slotNodes, id)
	g.slotIndex[name] = idx
	g.slots = append(g.slots, 0)
	return id
}

// SetSlot sets the value the named slot takes in subsequent passes.
func (g *Graph) SetSlot(name string, v float64) {
	idx, ok := g.slotIndex[name]
	if !ok {
		panic(fmt.Sprintf("autodiff: unknown slot %q", name))
	}
	g.slots[idx] = v
}

// SlotValue returns the current value of the named slot.
func (g *Graph) SlotValue(name string) (float64, bool) {
	idx, ok := g.slotIndex[name]
	if !ok {
		return 0, false
	}
	return g.slots[idx], true
}

func (g *Graph) leaf(n node) NodeID {
	g.nodes = append(g.nodes, n)
	return NodeID(len(g.nodes) - 1)
}

// Apply appends a node computing op over args. Every operand must already
// exist in the graph, which keeps the arena acyclic.
func (g *Graph) Apply(op ops.Operation, args ...NodeID) NodeID {
	if arity := op.Arity(); arity >= 0 && arity != len(args) {
		panic(fmt.Sprintf("autodiff: %s expects %d operands, got %d", op.Name(), arity, len(args)))
	}
	next := NodeID(len(g.nodes))
	for _, a := range args {
		if a < 0 || a >= next {
			panic(fmt.Sprintf("autodiff: %s operand %d does not precede node %d", op.Name(), a, next))
		}
	}
	start := int32(len(g.operands))
	g.operands = append(g.operands, args...)
	g.nodes = append(g.nodes, node{
		kind:  kindOp,
		op:    op,
		start: start,
		count: int32(len(args)),
	})
	return next
}

// Add returns a + b.
func (g *Graph) Add(a, b NodeID) NodeID { return g.Apply(ops.AddOp{}, a, b) }

// Sum returns the sum of terms, or a zero constant when terms is empty.
func (g *Graph) Sum(terms ...NodeID) NodeID {
	if len(terms) == 0 {
		return g.Const(0)
	}
	return g.Apply(ops.AddOp{}, terms...)
}

// Sub returns a - b.
func (g *Graph) Sub(a, b NodeID) NodeID { return g.Apply(ops.SubOp{}, a, b) }

// Mul returns a * b.
func (g *Graph) Mul(a, b NodeID) NodeID { return g.Apply(ops.MulOp{}, a, b) }

// Div returns a / b.
func (g *Graph) Div(a, b NodeID) NodeID { return g.Apply(ops.DivOp{}, a, b) }

// Neg returns -a.
func (g *Graph) Neg(a NodeID) NodeID { return g.Apply(ops.NegOp{}, a) }

// Square returns a².
func (g *Graph) Square(a NodeID) NodeID { return g.Apply(ops.SquareOp{}, a) }

// Sqrt returns √a.
func (g *Graph) Sqrt(a NodeID) NodeID { return g.Apply(ops.SqrtOp{}, a) }

// Abs returns |a|.
func (g *Graph) Abs(a NodeID) NodeID { return g.Apply(ops.AbsOp{}, a) }

// Exp returns eᵃ.
func (g *Graph) Exp(a NodeID) NodeID { return g.Apply(ops.ExpOp{}, a) }

// Log returns ln(a).
func (g *Graph) Log(a NodeID) NodeID { return g.Apply(ops.LogOp{}, a) }

// Sin returns sin(a).
func (g *Graph) Sin(a NodeID) NodeID { return g.Apply(ops.SinOp{}, a) }

// Cos returns cos(a).
func (g *Graph) Cos(a NodeID) NodeID { return g.Apply(ops.CosOp{}, a) }

// Max returns max(a, b).
func (g *Graph) Max(a, b NodeID) NodeID { return g.Apply(ops.MaxOp{}, a, b) }

// Min returns min(a, b).
func (g *Graph) Min(a, b NodeID) NodeID { return g.Apply(ops.MinOp{}, a, b) }

// ReLU returns max(a, 0).
func (g *Graph) ReLU(a NodeID) NodeID { return g.Apply(ops.ReLUOp{}, a) }

// Describe returns a one-line description of node id, for diagnostics.
func (g *Graph) Describe(id NodeID) string {
	n := g.nodes[id]
	switch n.kind {
	case kindConst:
		return fmt.Sprintf("%%%d = const %g", id, n.value)
	case kindVar:
		return fmt.Sprintf("%%%d = var[%d]", id, n.index)
	case kindSlot:
		return fmt.Sprintf("%%%d = slot %q", id, g.slotNames[n.index])
	default:
		return fmt.Sprintf("%%%d = %s%v", id, n.op.Name(), g.operands[n.start:n.start+n.count])
	}
}
