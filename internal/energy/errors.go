package energy

import (
	"errors"
	"fmt"
)

// Configuration errors. They are reported by Compile, before any
// optimization starts, wrapped in a *ConfigurationError.
var (
	ErrUnresolvedFunction = errors.New("unresolved function")
	ErrArity              = errors.New("argument count mismatch")
	ErrDimension          = errors.New("argument dimension mismatch")
	ErrVariableRange      = errors.New("variable index out of range")
)

// TermKind distinguishes objective terms from constraint terms.
type TermKind int

const (
	Objective TermKind = iota
	Constraint
)

// String returns "objective" or "constraint".
func (k TermKind) String() string {
	if k == Constraint {
		return "constraint"
	}
	return "objective"
}

// ConfigurationError reports a term that cannot be compiled.
type ConfigurationError struct {
	Kind  TermKind
	Index int    // position of the term in its list
	Name  string // function name of the term
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("energy: %s %d (%q): %v", e.Kind, e.Index, e.Name, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
