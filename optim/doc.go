// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the exterior-point layout optimizer.
//
// # Overview
//
// This package contains:
//   - State: the exterior-point state machine, advanced with Step
//   - Precondition: the L-BFGS inverse Hessian estimate
//   - LineSearch: the Armijo / weak Wolfe step length search
//   - Resample: multistart runs from jittered initial layouts
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/layout/energy"
//	    "github.com/born-ml/layout/funcs"
//	    "github.com/born-ml/layout/optim"
//	)
//
//	func main() {
//	    problem := optim.Problem{
//	        Objectives: []energy.Term{
//	            energy.NewTerm("equal", energy.Var(0), energy.Var(1)),
//	        },
//	        Init:       []float64{0, 5},
//	        Dictionary: funcs.Default(),
//	    }
//
//	    state, err := optim.Initialize(problem, optim.DefaultConfig())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for !state.IsTerminal() {
//	        state = state.Step(100)
//	    }
//	    fmt.Println(state.Phase(), state.Variables())
//	}
//
// # Phases
//
//	NewIter → UnconstrainedRunning ⇄ UnconstrainedConverged → EPConverged
//
// Each UnconstrainedRunning phase minimizes the energy at a fixed penalty
// weight. Every UnconstrainedConverged either stops the run, when the layout
// or the energy no longer changes between rounds, or multiplies the weight
// by WeightGrowth and minimizes again. A NaN or infinite value at any point
// moves the state to Error; State.Err then matches ErrNoLayout.
//
// Step never mutates its receiver, so earlier states can be kept for
// rendering or undo while the run continues.
//
// # Multistart
//
//	cfg := optim.DefaultResampleConfig()
//	cfg.Starts = 8
//	result, err := optim.Resample(ctx, problem, cfg)
//	best := result.State()
package optim
