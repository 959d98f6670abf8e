// Package funcs provides a default dictionary of layout objectives and
// constraints over scalars and 2D points.
//
// Constraint functions return a value that is ≤ 0 when the relationship holds.
package funcs

import (
	"github.com/born-ml/layout/internal/autodiff"
	"github.com/born-ml/layout/internal/energy"
)

const (
	scalar = 1
	point  = 2
)

// repelEpsilon keeps repel finite for coincident points.
const repelEpsilon = 1e-6

// Default returns a fresh dictionary holding every builtin function.
func Default() energy.Dictionary {
	return energy.Merge(Objectives(), Constraints())
}

// Objectives returns the builtin objective functions.
func Objectives() energy.Dictionary {
	return energy.Dictionary{
		"equal":    {Dims: []int{scalar, scalar}, Build: equal},
		"near":     {Dims: []int{point, point, scalar}, Build: near},
		"repel":    {Dims: []int{point, point}, Build: repel},
		"centerX":  {Dims: []int{point, scalar}, Build: centerX},
		"minimize": {Dims: []int{scalar}, Build: minimize},
		"maximize": {Dims: []int{scalar}, Build: maximize},
	}
}

// Constraints returns the builtin constraint functions.
func Constraints() energy.Dictionary {
	return energy.Dictionary{
		"contains": {Dims: []int{point, scalar, point, scalar}, Build: contains},
		"disjoint": {Dims: []int{point, scalar, point, scalar}, Build: disjoint},
		"lessThan": {Dims: []int{scalar, scalar}, Build: lessThan},
		"atLeast":  {Dims: []int{scalar, scalar}, Build: atLeast},
		"inRange":  {Dims: []int{scalar, scalar, scalar}, Build: inRange},
	}
}

// Distance returns the Euclidean distance between two equal-length vectors.
// Its gradient is zero when p and q coincide: every direction is equally
// steep there, so a term built on it cannot separate coincident points.
// Multistart jitter breaks that symmetry.
func Distance(g *autodiff.Graph, p, q energy.Value) autodiff.NodeID {
	squares := make([]autodiff.NodeID, len(p))
	for i := range p {
		squares[i] = g.Square(g.Sub(p[i], q[i]))
	}
	return g.Sqrt(g.Sum(squares...))
}
