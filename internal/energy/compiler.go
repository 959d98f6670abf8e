package energy

import (
	"fmt"
	"math"

	"github.com/born-ml/layout/internal/autodiff"
)

// WeightSlot is the graph input slot holding the penalty weight.
const WeightSlot = "weight"

// DefaultConstraintScale makes constraint energy dominate objective energy
// once the penalty weight grows past a small threshold.
const DefaultConstraintScale = 1e5

// Config controls how terms are combined into one energy.
type Config struct {
	ConstraintScale float64 // Fixed multiplier of constraint energy (default: 1e5)
	Penalty         Penalty // Transform from constraint value to energy (default: max(c,0)²)
}

// Energy is a compiled energy graph:
//
//	energy = Σ objectives + Σ penalty(constraints) · scale · weight
//
// Energy and the closures it returns share one graph and are not safe
// for concurrent use.
type Energy struct {
	graph *autodiff.Graph

	objectives  []Term
	constraints []Term
	objNodes    []autodiff.NodeID
	constrNodes []autodiff.NodeID

	objEnergy    autodiff.NodeID
	constrEnergy autodiff.NodeID
	out          autodiff.NodeID

	scale   float64
	penalty Penalty
}

// Compile builds the energy graph for the given terms over numVars varying
// variables. Every term name is resolved against dict; an unknown name, a
// wrong argument count or an out-of-range variable fails with a
// *ConfigurationError.
func Compile(dict Dictionary, objectives, constraints []Term, numVars int, config Config) (*Energy, error) {
	if numVars < 0 {
		return nil, fmt.Errorf("energy: negative variable count %d", numVars)
	}
	if config.ConstraintScale == 0 {
		config.ConstraintScale = DefaultConstraintScale
	}

	g := autodiff.NewGraph(numVars)
	e := &Energy{
		graph:       g,
		objectives:  objectives,
		constraints: constraints,
		objNodes:    make([]autodiff.NodeID, 0, len(objectives)),
		constrNodes: make([]autodiff.NodeID, 0, len(constraints)),
		scale:       config.ConstraintScale,
		penalty:     config.Penalty,
	}

	for i, term := range objectives {
		id, err := buildTerm(g, dict, term, numVars)
		if err != nil {
			return nil, &ConfigurationError{Kind: Objective, Index: i, Name: term.Name, Err: err}
		}
		e.objNodes = append(e.objNodes, id)
	}
	for i, term := range constraints {
		id, err := buildTerm(g, dict, term, numVars)
		if err != nil {
			return nil, &ConfigurationError{Kind: Constraint, Index: i, Name: term.Name, Err: err}
		}
		e.constrNodes = append(e.constrNodes, id)
	}

	e.objEnergy = g.Sum(e.objNodes...)
	penalties := make([]autodiff.NodeID, len(e.constrNodes))
	for i, c := range e.constrNodes {
		penalties[i] = e.penalty.apply(g, c)
	}
	e.constrEnergy = g.Sum(penalties...)

	scaled := g.Mul(g.Mul(e.constrEnergy, g.Const(e.scale)), g.Slot(WeightSlot))
	e.out = g.Add(e.objEnergy, scaled)
	return e, nil
}

// buildTerm resolves term against dict and appends its node to g.
func buildTerm(g *autodiff.Graph, dict Dictionary, term Term, numVars int) (autodiff.NodeID, error) {
	fn, ok := dict[term.Name]
	if !ok || fn.Build == nil {
		return autodiff.None, ErrUnresolvedFunction
	}
	if len(term.Args) != fn.Arity() {
		return autodiff.None, fmt.Errorf("%w: want %d, got %d", ErrArity, fn.Arity(), len(term.Args))
	}

	values := make([]Value, len(term.Args))
	for i, arg := range term.Args {
		if want := fn.Dims[i]; want > 0 && len(arg) != want {
			return autodiff.None, fmt.Errorf("%w: argument %d has length %d, want %d", ErrDimension, i, len(arg), want)
		}
		if len(arg) == 0 {
			return autodiff.None, fmt.Errorf("%w: argument %d is empty", ErrDimension, i)
		}
		v := make(Value, len(arg))
		for j, s := range arg {
			if !s.IsVar() {
				v[j] = g.Const(s.Value)
				continue
			}
			if s.Var >= numVars {
				return autodiff.None, fmt.Errorf("%w: argument %d references variable %d of %d", ErrVariableRange, i, s.Var, numVars)
			}
			v[j] = g.Var(s.Var)
		}
		values[i] = v
	}
	return fn.Build(g, values)
}

// NumVars returns the number of varying variables.
func (e *Energy) NumVars() int {
	return e.graph.NumVars()
}

// NumNodes returns the size of the compiled graph.
func (e *Energy) NumNodes() int {
	return e.graph.NumNodes()
}

// Objectives returns the objective terms the energy was compiled from.
func (e *Energy) Objectives() []Term {
	return e.objectives
}

// Constraints returns the constraint terms the energy was compiled from.
func (e *Energy) Constraints() []Term {
	return e.constraints
}

// Value returns the energy at penalty weight as a function of x.
func (e *Energy) Value(weight float64) func(x []float64) float64 {
	return func(x []float64) float64 {
		e.graph.SetSlot(WeightSlot, weight)
		return e.graph.Evaluate(e.out, x)
	}
}

// Gradient returns ∂energy/∂x at penalty weight as a function of x.
func (e *Energy) Gradient(weight float64) func(x []float64) []float64 {
	return func(x []float64) []float64 {
		e.graph.SetSlot(WeightSlot, weight)
		_, grad := e.graph.Gradient(e.out, x)
		return grad
	}
}

// ValueGradient returns both energy and gradient from one forward and one
// backward pass.
func (e *Energy) ValueGradient(weight float64) func(x []float64) (float64, []float64) {
	return func(x []float64) (float64, []float64) {
		e.graph.SetSlot(WeightSlot, weight)
		return e.graph.Gradient(e.out, x)
	}
}

// Breakdown is the per-term decomposition of the energy at one point.
type Breakdown struct {
	Objectives  []float64 // value of each objective term
	Constraints []float64 // raw value of each constraint term, ≤ 0 when satisfied
	Objective   float64   // Σ objectives
	Constraint  float64   // Σ penalty(constraints), before scale and weight
	Total       float64   // full energy at the given weight
}

// Breakdown evaluates every term at x and penalty weight.
func (e *Energy) Breakdown(x []float64, weight float64) Breakdown {
	e.graph.SetSlot(WeightSlot, weight)
	total := e.graph.Forward(e.out, x)

	b := Breakdown{
		Objectives:  make([]float64, len(e.objNodes)),
		Constraints: make([]float64, len(e.constrNodes)),
		Objective:   e.graph.Value(e.objEnergy),
		Constraint:  e.graph.Value(e.constrEnergy),
		Total:       total,
	}
	for i, id := range e.objNodes {
		b.Objectives[i] = e.graph.Value(id)
	}
	for i, id := range e.constrNodes {
		b.Constraints[i] = e.graph.Value(id)
	}
	return b
}

// Satisfied reports whether every constraint value is at most tol.
// A NaN constraint value is never satisfied.
func (b Breakdown) Satisfied(tol float64) bool {
	for _, c := range b.Constraints {
		if math.IsNaN(c) || c > tol {
			return false
		}
	}
	return true
}
