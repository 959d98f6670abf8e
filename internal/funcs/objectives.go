package funcs

import (
	"github.com/born-ml/layout/internal/autodiff"
	"github.com/born-ml/layout/internal/energy"
)

// equal(a, b) = (a - b)²
func equal(g *autodiff.Graph, args []energy.Value) (autodiff.NodeID, error) {
	return g.Square(g.Sub(args[0].Scalar(), args[1].Scalar())), nil
}

// near(p, q, d) = (‖p - q‖ - d)²
func near(g *autodiff.Graph, args []energy.Value) (autodiff.NodeID, error) {
	d := Distance(g, args[0], args[1])
	return g.Square(g.Sub(d, args[2].Scalar())), nil
}

// repel(p, q) = 1 / (‖p - q‖² + ε)
func repel(g *autodiff.Graph, args []energy.Value) (autodiff.NodeID, error) {
	p, q := args[0], args[1]
	dx := g.Sub(p[0], q[0])
	dy := g.Sub(p[1], q[1])
	d2 := g.Sum(g.Square(dx), g.Square(dy), g.Const(repelEpsilon))
	return g.Div(g.Const(1), d2), nil
}

// centerX(p, x) = (p₀ - x)²
func centerX(g *autodiff.Graph, args []energy.Value) (autodiff.NodeID, error) {
	return g.Square(g.Sub(args[0][0], args[1].Scalar())), nil
}

func minimize(_ *autodiff.Graph, args []energy.Value) (autodiff.NodeID, error) {
	return args[0].Scalar(), nil
}

func maximize(g *autodiff.Graph, args []energy.Value) (autodiff.NodeID, error) {
	return g.Neg(args[0].Scalar()), nil
}
