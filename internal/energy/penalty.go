package energy

import "github.com/born-ml/layout/internal/autodiff"

// Penalty selects the one-sided transform applied to constraint values.
type Penalty int

const (
	// PenaltySquaredHinge maps c to max(c, 0)². It is the default.
	PenaltySquaredHinge Penalty = iota
	// PenaltyHinge maps c to max(c, 0).
	PenaltyHinge
)

// String returns the penalty name.
func (p Penalty) String() string {
	switch p {
	case PenaltySquaredHinge:
		return "squared-hinge"
	case PenaltyHinge:
		return "hinge"
	default:
		return "unknown"
	}
}

// apply adds the penalty of constraint value c to g.
func (p Penalty) apply(g *autodiff.Graph, c autodiff.NodeID) autodiff.NodeID {
	if p == PenaltyHinge {
		return g.ReLU(c)
	}
	return g.Square(g.ReLU(c))
}

// Eval applies the penalty to a plain value.
func (p Penalty) Eval(c float64) float64 {
	if c <= 0 {
		return 0
	}
	if p == PenaltyHinge {
		return c
	}
	return c * c
}
