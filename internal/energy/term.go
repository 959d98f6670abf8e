// Package energy compiles named objective and constraint terms into a single
// scalar energy graph parameterized by a penalty weight.
//
// The compiled Energy hands out closures over one shared graph:
//
//	e, err := energy.Compile(dict, objectives, constraints, n, energy.Config{})
//	f := e.Value(weight)     // x -> energy
//	df := e.Gradient(weight) // x -> ∂energy/∂x
//
// A new weight is a new closure, never a new graph.
package energy

import "github.com/born-ml/layout/internal/autodiff"

// Scalar is one component of a term argument: either a reference to a varying
// variable or a fixed constant.
type Scalar struct {
	Var   int     // varying variable index, or -1 for a constant
	Value float64 // constant value, used when Var < 0
}

// IsVar reports whether s refers to a varying variable.
func (s Scalar) IsVar() bool {
	return s.Var >= 0
}

// Arg is an ordered argument expression: a scalar (length 1) or a vector.
type Arg []Scalar

// Var returns a scalar argument bound to varying variable i.
func Var(i int) Arg {
	return Arg{{Var: i}}
}

// Const returns a constant scalar argument.
func Const(v float64) Arg {
	return Arg{{Var: -1, Value: v}}
}

// Vector concatenates parts into one vector argument.
func Vector(parts ...Arg) Arg {
	var v Arg
	for _, p := range parts {
		v = append(v, p...)
	}
	return v
}

// Point returns the 2-vector argument (x, y).
func Point(x, y Arg) Arg {
	return Vector(x, y)
}

// Term is a named objective or constraint applied to ordered arguments.
type Term struct {
	Name string
	Args []Arg
}

// NewTerm creates a term calling name with args.
func NewTerm(name string, args ...Arg) Term {
	return Term{Name: name, Args: args}
}

// Value is an argument resolved to graph nodes, one per component.
type Value []autodiff.NodeID

// Scalar returns the single node of a scalar value.
func (v Value) Scalar() autodiff.NodeID {
	return v[0]
}

// Func is a dictionary entry: it builds the graph node computing one term.
//
// Dims gives the expected length of each argument (1 for scalars, 2 for points);
// 0 accepts any length. The number of entries is the function's arity.
// For constraints Build returns a value that is ≤ 0 when the constraint holds.
type Func struct {
	Dims  []int
	Build func(g *autodiff.Graph, args []Value) (autodiff.NodeID, error)
}

// Arity returns the number of arguments f expects.
func (f Func) Arity() int {
	return len(f.Dims)
}

// Dictionary maps function names to their implementations.
type Dictionary map[string]Func

// Merge returns a new dictionary holding the entries of all dicts;
// later dictionaries override earlier ones.
func Merge(dicts ...Dictionary) Dictionary {
	out := make(Dictionary)
	for _, d := range dicts {
		for name, f := range d {
			out[name] = f
		}
	}
	return out
}
