// Package problem reads layout problems from YAML.
//
// A problem file names its variables and refers to them from term arguments:
//
//	variables:
//	  - {name: big.x, value: 0}
//	  - {name: big.r, value: 3, fixed: true}
//	objectives:
//	  - {fn: near, args: [[big.x, big.y], [0, 0], 2]}
//	constraints:
//	  - {fn: contains, args: [[big.x, big.y], big.r, [small.x, small.y], small.r]}
//	options:
//	  memory: 17
//	  starts: 4
//
// Fixed variables are substituted as constants and do not take part in the
// optimization.
package problem

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/layout/internal/energy"
	"github.com/born-ml/layout/internal/optim"
	"github.com/born-ml/layout/internal/resample"
)

// Errors reported while reading or resolving a problem file.
var (
	ErrUnknownVariable   = errors.New("unknown variable")
	ErrDuplicateVariable = errors.New("duplicate variable")
	ErrPenalty           = errors.New("unknown penalty")
)

// File is the decoded form of a problem file.
type File struct {
	Variables   []Variable `yaml:"variables"`
	Objectives  []TermSpec `yaml:"objectives"`
	Constraints []TermSpec `yaml:"constraints"`
	Options     Options    `yaml:"options"`
}

// Variable is one named scalar.
type Variable struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
	Fixed bool    `yaml:"fixed"`
}

// TermSpec is one objective or constraint call.
type TermSpec struct {
	Fn   string    `yaml:"fn"`
	Args []ArgExpr `yaml:"args"`
}

// Options holds solver settings. Zero fields keep the defaults; Memory and
// Jitter are pointers because an explicit 0 is meaningful for them.
type Options struct {
	Memory          *int     `yaml:"memory"`
	InnerIterations int      `yaml:"innerIterations"`
	MaxSteps        int      `yaml:"maxSteps"`
	Starts          int      `yaml:"starts"`
	Seed            uint64   `yaml:"seed"`
	Jitter          *float64 `yaml:"jitter"`
	Tolerance       float64  `yaml:"tolerance"`
	Penalty         string   `yaml:"penalty"`
}

// ArgExpr is a term argument: a variable name, a number, or a list of
// argument expressions flattened into a vector.
type ArgExpr struct {
	Name  string
	Value float64
	List  []ArgExpr
	kind  argKind
}

type argKind int

const (
	argNumber argKind = iota
	argName
	argList
)

// UnmarshalYAML decodes a scalar or a sequence.
func (a *ArgExpr) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		a.kind = argList
		return node.Decode(&a.List)
	case yaml.ScalarNode:
		var v float64
		if node.Tag != "!!str" && node.Decode(&v) == nil {
			a.kind = argNumber
			a.Value = v
			return nil
		}
		a.kind = argName
		a.Name = node.Value
		return nil
	default:
		return fmt.Errorf("line %d: argument must be a name, a number or a list", node.Line)
	}
}

// Load decodes a problem file from r.
func Load(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("problem: read: %w", err)
	}
	return Parse(data)
}

// Parse decodes a problem file. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("problem: decode: %w", err)
	}
	return &f, nil
}

// Problem resolves variable names and returns the optimizer problem.
// Paths lists the names of the varying variables in index order.
func (f *File) Problem(dict energy.Dictionary) (optim.Problem, error) {
	type binding struct {
		index int // varying index, -1 when fixed
		value float64
	}
	vars := make(map[string]binding, len(f.Variables))
	p := optim.Problem{Dictionary: dict}

	for _, v := range f.Variables {
		if _, dup := vars[v.Name]; dup {
			return optim.Problem{}, fmt.Errorf("problem: %w: %q", ErrDuplicateVariable, v.Name)
		}
		if v.Fixed {
			vars[v.Name] = binding{index: -1, value: v.Value}
			continue
		}
		vars[v.Name] = binding{index: len(p.Init), value: v.Value}
		p.Init = append(p.Init, v.Value)
		p.Paths = append(p.Paths, v.Name)
	}

	var resolve func(a ArgExpr) (energy.Arg, error)
	resolve = func(a ArgExpr) (energy.Arg, error) {
		switch a.kind {
		case argNumber:
			return energy.Const(a.Value), nil
		case argList:
			parts := make([]energy.Arg, len(a.List))
			for i, e := range a.List {
				part, err := resolve(e)
				if err != nil {
					return nil, err
				}
				parts[i] = part
			}
			return energy.Vector(parts...), nil
		default:
			b, ok := vars[a.Name]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, a.Name)
			}
			if b.index < 0 {
				return energy.Const(b.value), nil
			}
			return energy.Var(b.index), nil
		}
	}

	terms := func(kind energy.TermKind, specs []TermSpec) ([]energy.Term, error) {
		out := make([]energy.Term, len(specs))
		for i, spec := range specs {
			args := make([]energy.Arg, len(spec.Args))
			for j, a := range spec.Args {
				arg, err := resolve(a)
				if err != nil {
					return nil, &energy.ConfigurationError{Kind: kind, Index: i, Name: spec.Fn, Err: err}
				}
				args[j] = arg
			}
			out[i] = energy.NewTerm(spec.Fn, args...)
		}
		return out, nil
	}

	var err error
	if p.Objectives, err = terms(energy.Objective, f.Objectives); err != nil {
		return optim.Problem{}, err
	}
	if p.Constraints, err = terms(energy.Constraint, f.Constraints); err != nil {
		return optim.Problem{}, err
	}
	return p, nil
}

// Config applies the file options on top of base.
func (o Options) Config(base resample.Config) (resample.Config, error) {
	if o.Memory != nil {
		base.Optim.MemorySize = *o.Memory
	}
	if o.InnerIterations > 0 {
		base.InnerIterations = o.InnerIterations
	}
	if o.MaxSteps > 0 {
		base.MaxSteps = o.MaxSteps
	}
	if o.Starts > 0 {
		base.Starts = o.Starts
	}
	if o.Jitter != nil {
		base.Jitter = *o.Jitter
	}
	if o.Tolerance > 0 {
		base.Tolerance = o.Tolerance
	}
	base.Seed = o.Seed

	switch o.Penalty {
	case "":
	case energy.PenaltySquaredHinge.String():
		base.Optim.Energy.Penalty = energy.PenaltySquaredHinge
	case energy.PenaltyHinge.String():
		base.Optim.Energy.Penalty = energy.PenaltyHinge
	default:
		return base, fmt.Errorf("problem: %w: %q", ErrPenalty, o.Penalty)
	}
	return base, nil
}
