package optim

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/layout/internal/autodiff"
	"github.com/born-ml/layout/internal/energy"
)

// Problem describes one layout optimization.
type Problem struct {
	Objectives  []energy.Term
	Constraints []energy.Term

	// Init is the initial variable vector; its length fixes the number of
	// varying variables for the lifetime of every derived State.
	Init []float64

	// Paths optionally names the shape property each variable drives.
	// When set it must have one entry per variable.
	Paths []string

	// Dictionary resolves term names to implementations.
	Dictionary energy.Dictionary

	// Projector, if set, receives the variables after every moving Step.
	Projector Projector
}

// State is one optimization run. States are immutable from the caller's
// point of view: Step returns a new State and leaves its receiver untouched.
//
// States derived from one another share the compiled energy graph, so they
// must not be stepped concurrently.
type State struct {
	id      uuid.UUID
	config  Config
	problem Problem
	energy  *energy.Energy
	search  *LineSearch
	logger  *slog.Logger

	x      []float64
	fx     float64
	weight float64

	round      int // completed penalty rounds
	inner      int // inner iterations in the current round
	iterations int // inner iterations over the whole run
	gradNorm   float64

	baseline       []float64 // variables at the previous unconstrained convergence
	baselineEnergy float64

	memory Memory
	phase  Phase
	err    *NumericError
}

// Initialize compiles the problem and returns a State in the NewIter phase.
// Unresolved function names, arity mismatches and bad variable references
// are reported here as *energy.ConfigurationError, never during Step.
func Initialize(p Problem, config Config) (*State, error) {
	if p.Paths != nil && len(p.Paths) != len(p.Init) {
		return nil, fmt.Errorf("%w: %d paths for %d variables", ErrBindings, len(p.Paths), len(p.Init))
	}
	config = config.withDefaults()

	e, err := energy.Compile(p.Dictionary, p.Objectives, p.Constraints, len(p.Init), config.Energy)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	logger := config.Logger.With("run", id.String())
	s := &State{
		id:      id,
		config:  config,
		problem: p,
		energy:  e,
		search:  NewLineSearch(config.LineSearch, logger, config.TraceLineSearch),
		logger:  logger,
		x:       clone(p.Init),
		weight:  config.InitialWeight,
		phase:   NewIter,
	}
	if s.x == nil {
		s.x = []float64{}
	}
	s.fx = e.Value(s.weight)(s.x)

	logger.Info("optimization initialized",
		"variables", len(s.x),
		"objectives", len(p.Objectives),
		"constraints", len(p.Constraints),
		"nodes", e.NumNodes())
	return s, nil
}

// ID identifies the run in log records.
func (s *State) ID() uuid.UUID { return s.id }

// Phase returns the current state machine phase.
func (s *State) Phase() Phase { return s.phase }

// IsTerminal reports whether the phase is EPConverged or Error.
func (s *State) IsTerminal() bool { return s.phase.Terminal() }

// Err returns the cause of the Error phase, or nil in any other phase.
func (s *State) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// Variables returns a copy of the current variable vector.
func (s *State) Variables() []float64 { return clone(s.x) }

// Energy returns the energy of the current variables at the current weight.
func (s *State) Energy() float64 { return s.fx }

// Weight returns the current penalty weight.
func (s *State) Weight() float64 { return s.weight }

// Rounds returns the number of completed penalty rounds.
func (s *State) Rounds() int { return s.round }

// Iterations returns the number of inner iterations over the whole run.
func (s *State) Iterations() int { return s.iterations }

// GradientNorm returns ⟨g, Hg⟩ from the last inner iteration.
func (s *State) GradientNorm() float64 { return s.gradNorm }

// Memory returns the L-BFGS history of the current phase.
func (s *State) Memory() Memory { return s.memory }

// Paths returns the variable bindings of the problem.
func (s *State) Paths() []string { return s.problem.Paths }

// Breakdown returns the per-term energy decomposition at the current variables.
func (s *State) Breakdown() energy.Breakdown {
	return s.energy.Breakdown(s.x, s.weight)
}

// WithVariables returns a NewIter state over x that reuses the compiled
// energy. It is the resampling path: weight, counters and history restart.
func (s *State) WithVariables(x []float64) (*State, error) {
	if len(x) != len(s.x) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVariableCount, len(x), len(s.x))
	}
	next := &State{
		id:      uuid.New(),
		config:  s.config,
		problem: s.problem,
		energy:  s.energy,
		x:       clone(x),
		weight:  s.config.InitialWeight,
		phase:   NewIter,
	}
	next.logger = s.config.Logger.With("run", next.id.String())
	next.search = NewLineSearch(s.config.LineSearch, next.logger, s.config.TraceLineSearch)
	next.fx = s.energy.Value(next.weight)(next.x)
	return next, nil
}

// Step advances the state machine by at most maxInner inner iterations and
// returns the resulting state. Terminal states are returned unchanged.
// Numeric failures are not returned: they move the new state to Error.
// While UnconstrainedRunning, maxInner must be positive for the state to
// make progress; Run enforces this.
func (s *State) Step(maxInner int) *State {
	if s.IsTerminal() {
		return s
	}

	next := s.clone()
	switch next.phase {
	case NewIter:
		next.start()
	case UnconstrainedRunning:
		next.minimize(maxInner)
	case UnconstrainedConverged:
		next.advance()
	}
	return next
}

func (s *State) clone() *State {
	c := *s
	c.x = clone(s.x)
	return &c
}

// start resets weight, counters and history for a fresh run.
func (s *State) start() {
	for i, v := range s.x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			s.fail(fmt.Errorf("%w: variable[%d] = %v", autodiff.ErrNonFinite, i, v))
			return
		}
	}

	s.weight = s.config.InitialWeight
	s.round = 0
	s.inner = 0
	s.memory = Memory{}
	s.baseline = nil
	s.baselineEnergy = 0
	s.fx = s.energy.Value(s.weight)(s.x)
	s.transition(UnconstrainedRunning)
}

// minimize runs up to maxInner preconditioned gradient descent iterations
// at the current weight.
func (s *State) minimize(maxInner int) {
	if maxInner <= 0 {
		return
	}

	valueGrad := s.energy.ValueGradient(s.weight)
	value := s.energy.Value(s.weight)
	grad := s.energy.Gradient(s.weight)

	dir := make([]float64, len(s.x))
	moved := false
	for i := 0; i < maxInner; i++ {
		fx, g := valueGrad(s.x)
		if err := autodiff.CheckFinite(fx, g); err != nil {
			s.fail(err)
			return
		}

		var pg []float64
		pg, s.memory = Precondition(s.x, g, s.memory, s.config.MemorySize)
		s.gradNorm = floats.Dot(g, pg)

		floats.ScaleTo(dir, -1, pg)
		t := s.search.Search(s.x, value, grad, dir, fx)

		xNew := make([]float64, len(s.x))
		floats.AddScaledTo(xNew, s.x, t, dir)
		if err := autodiff.CheckFinite(0, xNew); err != nil {
			s.fail(fmt.Errorf("step %g: %w", t, err))
			return
		}

		s.x = xNew
		s.inner++
		s.iterations++
		moved = true

		if s.config.TraceDescent {
			s.logger.Debug("descent iteration",
				"round", s.round, "iteration", s.inner, "energy", fx, "step", t, "gradNorm", s.gradNorm)
		}
	}

	fx := value(s.x)
	if math.IsNaN(fx) || math.IsInf(fx, 0) {
		s.fail(fmt.Errorf("%w: energy %v after step", autodiff.ErrNonFinite, fx))
		return
	}
	s.fx = fx

	if moved && s.problem.Projector != nil {
		s.problem.Projector.Project(s.problem.Paths, clone(s.x))
	}

	if s.gradNorm < s.config.InnerTolerance {
		s.transition(UnconstrainedConverged)
	}
}

// advance either finishes the run or grows the penalty weight.
func (s *State) advance() {
	converged := false
	if s.round > 1 && s.baseline != nil {
		dx := floats.Distance(s.x, s.baseline, 2)
		de := math.Abs(s.fx - s.baselineEnergy)
		converged = dx < s.config.OuterTolerance || de < s.config.OuterTolerance
	}

	s.baseline = clone(s.x)
	s.baselineEnergy = s.fx

	if converged {
		s.transition(EPConverged)
		return
	}

	s.weight *= s.config.WeightGrowth
	s.round++
	s.inner = 0
	s.memory = Memory{}
	s.fx = s.energy.Value(s.weight)(s.x)
	s.transition(UnconstrainedRunning)
}

func (s *State) transition(to Phase) {
	s.logger.Info("phase transition",
		"from", s.phase.String(),
		"to", to.String(),
		"round", s.round,
		"weight", s.weight,
		"energy", s.fx)
	s.phase = to
}

func (s *State) fail(err error) {
	s.err = &NumericError{Round: s.round, Iteration: s.inner, Err: err}
	s.logger.Warn("numeric failure", "round", s.round, "iteration", s.inner, "error", err)
	s.phase = Error
}
