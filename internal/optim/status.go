package optim

// Phase is the position of a State in the exterior-point state machine:
//
//	NewIter → UnconstrainedRunning ⇄ UnconstrainedConverged → EPConverged
//
// Error is reachable from every non-terminal phase when a value, gradient or
// variable becomes non-finite. EPConverged and Error are terminal.
type Phase int

const (
	// NewIter is the phase of a freshly initialized or resampled state.
	NewIter Phase = iota
	// UnconstrainedRunning minimizes the energy at the current penalty weight.
	UnconstrainedRunning
	// UnconstrainedConverged has finished one unconstrained minimization and
	// decides between growing the weight and stopping.
	UnconstrainedConverged
	// EPConverged is the terminal success phase.
	EPConverged
	// Error is the terminal failure phase; State.Err holds the cause.
	Error
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case NewIter:
		return "NewIter"
	case UnconstrainedRunning:
		return "UnconstrainedRunning"
	case UnconstrainedConverged:
		return "UnconstrainedConverged"
	case EPConverged:
		return "EPConverged"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further Step can change a state in this phase.
func (p Phase) Terminal() bool {
	return p == EPConverged || p == Error
}
