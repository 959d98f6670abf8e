// Package resample runs several optimizations of one problem from jittered
// starting points and keeps the best converged layout.
package resample

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/born-ml/layout/internal/optim"
	"github.com/born-ml/layout/internal/parallel"
)

// ErrNoStart reports that no start reached EPConverged.
var ErrNoStart = errors.New("resample: no start converged")

// Config controls a multistart run.
type Config struct {
	Starts          int     // Number of starts; the first uses Problem.Init unchanged (default: 1)
	Seed            uint64  // PCG seed for the jitter
	Jitter          float64 // Uniform jitter half-width added to every variable; 0 disables it (DefaultConfig: 1)
	Tolerance       float64 // Constraint value accepted as satisfied (default: 1e-2)
	InnerIterations int     // maxInner passed to every Step (default: 100)
	MaxSteps        int     // Step budget per start, 0 means unlimited (default: 1000)

	Optim    optim.Config
	Parallel parallel.Config
}

// DefaultTolerance is the constraint tolerance used to rank starts.
const DefaultTolerance = 1e-2

// DefaultConfig returns a single-start configuration.
func DefaultConfig() Config {
	return Config{
		Starts:          1,
		Jitter:          1,
		Tolerance:       DefaultTolerance,
		InnerIterations: 100,
		MaxSteps:        1000,
		Optim:           optim.DefaultConfig(),
		Parallel:        parallel.DefaultConfig(),
	}
}

func (c Config) withDefaults() Config {
	if c.Starts < 1 {
		c.Starts = 1
	}
	if c.Jitter < 0 {
		c.Jitter = 0
	}
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.InnerIterations <= 0 {
		c.InnerIterations = 100
	}
	if c.MaxSteps < 0 {
		c.MaxSteps = 0
	}
	if c.Optim.Logger == nil {
		c.Optim.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Attempt is the outcome of one start. Objective and Satisfied are only
// meaningful for a converged start.
type Attempt struct {
	Start     int
	Init      []float64
	State     *optim.State
	Err       error
	Energy    float64 // energy at the start's final weight
	Objective float64 // Σ objectives, independent of the weight
	Satisfied bool    // every constraint within Config.Tolerance
}

// converged reports whether the start reached EPConverged.
func (a Attempt) converged() bool {
	return a.State != nil && a.State.Phase() == optim.EPConverged
}

// better reports whether a should be preferred over b. Converged starts
// beat the rest, satisfied ones beat violated ones, and the objective
// breaks ties. Energies are not compared directly because starts end at
// different penalty weights.
func better(a, b Attempt) bool {
	if a.converged() != b.converged() {
		return a.converged()
	}
	if a.Satisfied != b.Satisfied {
		return a.Satisfied
	}
	return a.Objective < b.Objective
}

// Result holds every attempt and the index of the best one.
type Result struct {
	Attempts []Attempt
	Best     int // -1 when no start converged
}

// State returns the best converged state, or nil.
func (r Result) State() *optim.State {
	if r.Best < 0 {
		return nil
	}
	return r.Attempts[r.Best].State
}

// Run optimizes p from cfg.Starts starting points and picks the best
// converged start: satisfied constraints first, then the lowest objective. Each start compiles its
// own energy graph, so starts run concurrently under cfg.Parallel.
// p.Projector is not called for individual starts.
//
// Configuration errors are returned immediately. Otherwise the result holds
// every attempt; err is ErrNoStart when none converged and ctx.Err() when the
// context ended first.
func Run(ctx context.Context, p optim.Problem, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()

	// Compile once up front so configuration errors surface before any work.
	if _, err := optim.Initialize(p, cfg.Optim); err != nil {
		return Result{Best: -1}, err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	inits := make([][]float64, cfg.Starts)
	for i := range inits {
		inits[i] = append([]float64(nil), p.Init...)
		if i == 0 {
			continue
		}
		for j := range inits[i] {
			inits[i][j] += (2*rng.Float64() - 1) * cfg.Jitter
		}
	}

	attempts := parallel.Map(cfg.Starts, func(i int) Attempt {
		return runStart(ctx, p, cfg, i, inits[i])
	}, cfg.Parallel)

	res := Result{Attempts: attempts, Best: -1}
	for i, a := range attempts {
		if !a.converged() {
			continue
		}
		if res.Best < 0 || better(a, attempts[res.Best]) {
			res.Best = i
		}
	}

	if res.Best >= 0 {
		b := attempts[res.Best]
		cfg.Optim.Logger.Info("resample finished",
			"starts", cfg.Starts, "best", res.Best, "objective", b.Objective, "satisfied", b.Satisfied)
	} else {
		cfg.Optim.Logger.Warn("resample finished without a converged start", "starts", cfg.Starts)
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if res.Best < 0 {
		return res, fmt.Errorf("%w after %d starts", ErrNoStart, cfg.Starts)
	}
	return res, nil
}

func runStart(ctx context.Context, p optim.Problem, cfg Config, i int, init []float64) Attempt {
	a := Attempt{Start: i, Init: init, Energy: math.Inf(1), Objective: math.Inf(1)}

	p.Init = init
	p.Projector = nil
	s, err := optim.Initialize(p, cfg.Optim)
	if err != nil {
		a.Err = err
		return a
	}
	s, a.Err = optim.Run(ctx, s, cfg.InnerIterations, cfg.MaxSteps)
	a.State = s
	if s.Phase() == optim.EPConverged {
		b := s.Breakdown()
		a.Energy = s.Energy()
		a.Objective = b.Objective
		a.Satisfied = b.Satisfied(cfg.Tolerance)
	}
	return a
}
