// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"context"

	"github.com/born-ml/layout/internal/optim"
	"github.com/born-ml/layout/internal/resample"
)

// State machine

// State is one optimization run. Step returns a new State.
type State = optim.State

// Problem describes one layout optimization.
type Problem = optim.Problem

// Config holds configuration for the exterior-point optimizer.
type Config = optim.Config

// Phase is the position of a State in the state machine.
type Phase = optim.Phase

// Phases.
const (
	NewIter                = optim.NewIter
	UnconstrainedRunning   = optim.UnconstrainedRunning
	UnconstrainedConverged = optim.UnconstrainedConverged
	EPConverged            = optim.EPConverged
	Error                  = optim.Error
)

// Default hyperparameters.
const (
	DefaultMemorySize     = optim.DefaultMemorySize
	DefaultInnerTolerance = optim.DefaultInnerTolerance
	DefaultOuterTolerance = optim.DefaultOuterTolerance
	DefaultInitialWeight  = optim.DefaultInitialWeight
	DefaultWeightGrowth   = optim.DefaultWeightGrowth
)

// DefaultConfig returns the standard optimizer configuration.
func DefaultConfig() Config {
	return optim.DefaultConfig()
}

// Initialize compiles the problem and returns a State in the NewIter phase.
//
// Example:
//
//	state, err := optim.Initialize(problem, optim.DefaultConfig())
//	if errors.Is(err, energy.ErrUnresolvedFunction) {
//	    // fix the problem definition
//	}
func Initialize(p Problem, config Config) (*State, error) {
	return optim.Initialize(p, config)
}

// Run steps s until it is terminal, ctx is done or maxSteps is reached.
func Run(ctx context.Context, s *State, maxInner, maxSteps int) (*State, error) {
	return optim.Run(ctx, s, maxInner, maxSteps)
}

// Projector receives variables after every moving Step.
type Projector = optim.Projector

// ProjectorFunc adapts a function to Projector.
type ProjectorFunc = optim.ProjectorFunc

// Bindings pairs every path with its variable value.
func Bindings(paths []string, x []float64) map[string]float64 {
	return optim.Bindings(paths, x)
}

// Errors.
var (
	ErrNoLayout      = optim.ErrNoLayout
	ErrVariableCount = optim.ErrVariableCount
	ErrBindings      = optim.ErrBindings
	ErrStepLimit     = optim.ErrStepLimit
)

// NumericError records the non-finite value that moved a State to Error.
type NumericError = optim.NumericError

// Direction and step length

// Memory is the L-BFGS history.
type Memory = optim.Memory

// Precondition returns the L-BFGS estimate of H·grad and the updated memory.
func Precondition(x, grad []float64, mem Memory, size int) ([]float64, Memory) {
	return optim.Precondition(x, grad, mem, size)
}

// LineSearch is the Armijo / weak Wolfe line search.
type LineSearch = optim.LineSearch

// LineSearchConfig holds the line search parameters.
type LineSearchConfig = optim.LineSearchConfig

// Multistart

// ResampleConfig controls a multistart run.
type ResampleConfig = resample.Config

// ResampleResult holds every attempt and the best one.
type ResampleResult = resample.Result

// Attempt is the outcome of one start.
type Attempt = resample.Attempt

// ErrNoStart reports that no start converged.
var ErrNoStart = resample.ErrNoStart

// DefaultResampleConfig returns a single-start configuration.
func DefaultResampleConfig() ResampleConfig {
	return resample.DefaultConfig()
}

// Resample optimizes p from several jittered starts and keeps the
// lowest-energy converged one.
func Resample(ctx context.Context, p Problem, cfg ResampleConfig) (ResampleResult, error) {
	return resample.Run(ctx, p, cfg)
}
