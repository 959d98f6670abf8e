package optim

import (
	"errors"
	"fmt"
)

// Errors returned by Initialize and WithVariables.
var (
	ErrVariableCount = errors.New("optim: variable count mismatch")
	ErrBindings      = errors.New("optim: binding count mismatch")
)

// ErrNoLayout is the user-facing meaning of a NumericError.
var ErrNoLayout = errors.New("could not find a valid layout")

// NumericError records the non-finite value that moved a State to Error.
// It is stored in the state, never returned from Step.
type NumericError struct {
	Round     int // penalty round
	Iteration int // inner iteration within the round
	Err       error
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("optim: %v: round %d, iteration %d: %v", ErrNoLayout, e.Round, e.Iteration, e.Err)
}

// Unwrap returns both the cause and ErrNoLayout, so errors.Is matches either.
func (e *NumericError) Unwrap() []error {
	return []error{e.Err, ErrNoLayout}
}
