// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package energy compiles objective and constraint terms into one weighted
// scalar energy.
//
// The energy of a layout x at penalty weight w is
//
//	E(x, w) = Σ objectives(x) + Σ penalty(constraint(x)) · ConstraintScale · w
//
// where penalty is max(c, 0)² by default. Terms are resolved by name against
// a Dictionary; see package funcs for the builtin one.
package energy

import "github.com/born-ml/layout/internal/energy"

// Term types.
type (
	// Scalar is a variable reference or a constant.
	Scalar = energy.Scalar
	// Arg is a scalar or vector term argument.
	Arg = energy.Arg
	// Term is a named function applied to arguments.
	Term = energy.Term
	// Value is an argument resolved to graph nodes.
	Value = energy.Value
	// Func builds the graph of one term.
	Func = energy.Func
	// Dictionary maps term names to implementations.
	Dictionary = energy.Dictionary
)

// Compiler types.
type (
	Config    = energy.Config
	Energy    = energy.Energy
	Breakdown = energy.Breakdown
	Penalty   = energy.Penalty
	TermKind  = energy.TermKind

	// ConfigurationError reports a term that cannot be compiled.
	ConfigurationError = energy.ConfigurationError
)

// Penalty transforms.
const (
	PenaltySquaredHinge = energy.PenaltySquaredHinge
	PenaltyHinge        = energy.PenaltyHinge
)

// Term kinds.
const (
	Objective  = energy.Objective
	Constraint = energy.Constraint
)

// WeightSlot is the graph slot holding the penalty weight.
const WeightSlot = energy.WeightSlot

// DefaultConstraintScale multiplies every constraint penalty.
const DefaultConstraintScale = energy.DefaultConstraintScale

// Configuration errors, matched with errors.Is.
var (
	ErrUnresolvedFunction = energy.ErrUnresolvedFunction
	ErrArity              = energy.ErrArity
	ErrDimension          = energy.ErrDimension
	ErrVariableRange      = energy.ErrVariableRange
)

// Var returns a scalar argument bound to varying variable i.
func Var(i int) Arg { return energy.Var(i) }

// Const returns a constant scalar argument.
func Const(v float64) Arg { return energy.Const(v) }

// Vector concatenates parts into one vector argument.
func Vector(parts ...Arg) Arg { return energy.Vector(parts...) }

// Point returns the 2-vector argument (x, y).
func Point(x, y Arg) Arg { return energy.Point(x, y) }

// NewTerm creates a term calling name with args.
func NewTerm(name string, args ...Arg) Term { return energy.NewTerm(name, args...) }

// Merge returns a new dictionary holding every entry of dicts; later
// dictionaries win.
func Merge(dicts ...Dictionary) Dictionary { return energy.Merge(dicts...) }

// Compile builds the energy graph over numVars varying variables.
// Unresolved names, arity and dimension mismatches and out-of-range variable
// references are reported as *ConfigurationError.
func Compile(dict Dictionary, objectives, constraints []Term, numVars int, config Config) (*Energy, error) {
	return energy.Compile(dict, objectives, constraints, numVars, config)
}
