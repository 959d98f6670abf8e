// Package optim implements the exterior-point layout optimizer.
//
// This package provides:
//   - Precondition: the L-BFGS direction estimator (two-loop recursion)
//   - LineSearch: an Armijo / weak-Wolfe bracketing line search
//   - State: the exterior-point state machine driven by Step
//
// The optimizer solves a sequence of unconstrained problems at a geometrically
// growing penalty weight until both the inner and the outer convergence tests pass.
//
// Example usage:
//
//	state, err := optim.Initialize(problem, optim.DefaultConfig())
//	if err != nil {
//	    return err // unresolved function, arity mismatch, ...
//	}
//	for !state.IsTerminal() {
//	    state = state.Step(100)
//	    render(state.Variables())
//	}
//	if err := state.Err(); err != nil {
//	    return err // could not find a valid layout
//	}
package optim

import (
	"log/slog"

	"github.com/born-ml/layout/internal/energy"
)

// Config holds configuration for the exterior-point optimizer.
type Config struct {
	// MemorySize is the L-BFGS history length. 0 disables preconditioning
	// and the optimizer runs plain gradient descent (DefaultConfig: 17).
	MemorySize int

	InnerTolerance float64 // Unconstrained convergence threshold on ⟨g, Hg⟩ (default: 1e-2)
	OuterTolerance float64 // Penalty-round convergence threshold (default: 1e-3)
	InitialWeight  float64 // Penalty weight of the first round (default: 1e-3)
	WeightGrowth   float64 // Multiplicative weight growth per round, ≥ 1 (default: 10)

	LineSearch LineSearchConfig
	Energy     energy.Config

	// Logger receives phase transitions at Info and traces at Debug.
	// A nil Logger discards everything.
	Logger *slog.Logger

	TraceLineSearch bool // Log every line search trial
	TraceDescent    bool // Log every inner iteration
}

// Default hyperparameters.
const (
	DefaultMemorySize     = 17
	DefaultInnerTolerance = 1e-2
	DefaultOuterTolerance = 1e-3
	DefaultInitialWeight  = 1e-3
	DefaultWeightGrowth   = 10
)

// DefaultConfig returns the standard optimizer configuration.
func DefaultConfig() Config {
	return Config{
		MemorySize:     DefaultMemorySize,
		InnerTolerance: DefaultInnerTolerance,
		OuterTolerance: DefaultOuterTolerance,
		InitialWeight:  DefaultInitialWeight,
		WeightGrowth:   DefaultWeightGrowth,
	}
}

// withDefaults fills zero fields. MemorySize is left alone: 0 is meaningful.
func (c Config) withDefaults() Config {
	if c.MemorySize < 0 {
		c.MemorySize = 0
	}
	if c.InnerTolerance == 0 {
		c.InnerTolerance = DefaultInnerTolerance
	}
	if c.OuterTolerance == 0 {
		c.OuterTolerance = DefaultOuterTolerance
	}
	if c.InitialWeight == 0 {
		c.InitialWeight = DefaultInitialWeight
	}
	if c.WeightGrowth < 1 {
		c.WeightGrowth = DefaultWeightGrowth
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	c.LineSearch = c.LineSearch.withDefaults()
	return c
}
