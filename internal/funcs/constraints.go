package funcs

import (
	"github.com/born-ml/layout/internal/autodiff"
	"github.com/born-ml/layout/internal/energy"
)

// contains(cBig, rBig, cSmall, rSmall) = ‖cBig - cSmall‖ + rSmall - rBig
func contains(g *autodiff.Graph, args []energy.Value) (autodiff.NodeID, error) {
	d := Distance(g, args[0], args[2])
	return g.Sub(g.Add(d, args[3].Scalar()), args[1].Scalar()), nil
}

// disjoint(c1, r1, c2, r2) = r1 + r2 - ‖c1 - c2‖
func disjoint(g *autodiff.Graph, args []energy.Value) (autodiff.NodeID, error) {
	d := Distance(g, args[0], args[2])
	return g.Sub(g.Add(args[1].Scalar(), args[3].Scalar()), d), nil
}

// lessThan(a, b) = a - b
func lessThan(g *autodiff.Graph, args []energy.Value) (autodiff.NodeID, error) {
	return g.Sub(args[0].Scalar(), args[1].Scalar()), nil
}

// atLeast(a, k) = k - a
func atLeast(g *autodiff.Graph, args []energy.Value) (autodiff.NodeID, error) {
	return g.Sub(args[1].Scalar(), args[0].Scalar()), nil
}

// inRange(a, lo, hi) = max(lo - a, a - hi)
func inRange(g *autodiff.Graph, args []energy.Value) (autodiff.NodeID, error) {
	a, lo, hi := args[0].Scalar(), args[1].Scalar(), args[2].Scalar()
	return g.Max(g.Sub(lo, a), g.Sub(a, hi)), nil
}
