package optim

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LineSearchConfig holds the Armijo–Wolfe line search parameters.
type LineSearchConfig struct {
	C1            float64 // Sufficient decrease constant (default: 1e-3)
	C2            float64 // Weak Wolfe curvature constant (default: 0.9)
	MinInterval   float64 // Stop once the bracket is narrower than this (default: 1e-10)
	MaxIterations int     // Maximum bracket updates (default: 10)
}

func (c LineSearchConfig) withDefaults() LineSearchConfig {
	if c.C1 == 0 {
		c.C1 = 1e-3
	}
	if c.C2 == 0 {
		c.C2 = 0.9
	}
	if c.MinInterval == 0 {
		c.MinInterval = 1e-10
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = 10
	}
	return c
}

// LineSearch finds a step length along a descent direction satisfying the
// Armijo sufficient decrease and weak Wolfe curvature conditions:
//
//	f(x + t·d) ≤ f(x) + c1·t·⟨∇f(x), d⟩
//	⟨∇f(x + t·d), d⟩ ≥ c2·⟨∇f(x), d⟩
//
// The bracket [a, b] starts at [0, +∞) with trial t = 1; a failed Armijo test
// shrinks b, a failed curvature test raises a. The next trial bisects a finite
// bracket and doubles a otherwise.
type LineSearch struct {
	config LineSearchConfig
	logger *slog.Logger
	trace  bool
}

// NewLineSearch creates a line search. Zero config fields take their defaults.
// With trace set every trial is logged at Debug level.
func NewLineSearch(config LineSearchConfig, logger *slog.Logger, trace bool) *LineSearch {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LineSearch{
		config: config.withDefaults(),
		logger: logger,
		trace:  trace,
	}
}

// Config returns the effective parameters.
func (ls *LineSearch) Config() LineSearchConfig {
	return ls.config
}

// Search returns a step length along d from x, where fx = value(x).
//
// It stops when both conditions hold, when the bracket collapses below
// MinInterval, or after MaxIterations updates. In the last two cases the
// current trial is returned as is; callers must tolerate an imperfect step.
func (ls *LineSearch) Search(
	x []float64,
	value func([]float64) float64,
	grad func([]float64) []float64,
	d []float64,
	fx float64,
) float64 {
	slope := floats.Dot(grad(x), d)
	c1, c2 := ls.config.C1, ls.config.C2

	a, b := 0.0, math.Inf(1)
	t := 1.0
	xt := make([]float64, len(x))

	for iter := 0; ; iter++ {
		if iter > ls.config.MaxIterations || math.Abs(b-a) < ls.config.MinInterval {
			if ls.trace {
				ls.logger.Debug("line search stopped without satisfying both conditions",
					"iterations", iter, "t", t, "a", a, "b", b)
			}
			return t
		}

		floats.AddScaledTo(xt, x, t, d)
		ft := value(xt)
		armijo := ft <= fx+c1*t*slope

		switch {
		case !armijo:
			b = t
		case floats.Dot(grad(xt), d) < c2*slope:
			a = t
		default:
			if ls.trace {
				ls.logger.Debug("line search accepted step", "iterations", iter, "t", t, "f", ft)
			}
			return t
		}

		if ls.trace {
			ls.logger.Debug("line search trial", "iteration", iter, "t", t, "f", ft, "armijo", armijo, "a", a, "b", b)
		}

		if math.IsInf(b, 1) {
			t = 2 * a
		} else {
			t = (a + b) / 2
		}
	}
}
