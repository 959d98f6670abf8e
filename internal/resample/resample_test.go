package resample_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/layout/internal/energy"
	"github.com/born-ml/layout/internal/funcs"
	"github.com/born-ml/layout/internal/optim"
	"github.com/born-ml/layout/internal/parallel"
	"github.com/born-ml/layout/internal/resample"
)

func problem() optim.Problem {
	return optim.Problem{
		Objectives: []energy.Term{
			energy.NewTerm("equal", energy.Var(0), energy.Const(1)),
			energy.NewTerm("equal", energy.Var(1), energy.Var(0)),
		},
		Constraints: []energy.Term{
			energy.NewTerm("atLeast", energy.Var(1), energy.Const(0)),
		},
		Init:       []float64{4, -2},
		Dictionary: funcs.Default(),
	}
}

// TestRun_PicksConvergedStart tests best-start selection over parallel starts.
func TestRun_PicksConvergedStart(t *testing.T) {
	cfg := resample.DefaultConfig()
	cfg.Starts = 4
	cfg.Seed = 7
	cfg.Parallel = parallel.Config{Enabled: true, NumWorkers: 2, MinChunkSize: 1}

	res, err := resample.Run(context.Background(), problem(), cfg)
	require.NoError(t, err)
	require.Len(t, res.Attempts, 4)
	require.GreaterOrEqual(t, res.Best, 0)

	best := res.State()
	require.NotNil(t, best)
	assert.Equal(t, optim.EPConverged, best.Phase())
	x := best.Variables()
	assert.InDelta(t, 1.0, x[0], 1e-2)
	assert.InDelta(t, 1.0, x[1], 1e-2)

	chosen := res.Attempts[res.Best]
	assert.True(t, chosen.Satisfied)
	for _, a := range res.Attempts {
		if a.State != nil && a.State.Phase() == optim.EPConverged && a.Satisfied {
			assert.LessOrEqual(t, chosen.Objective, a.Objective)
		}
	}
}

// TestRun_FirstStartUsesInit tests that only the extra starts are jittered.
func TestRun_FirstStartUsesInit(t *testing.T) {
	cfg := resample.DefaultConfig()
	cfg.Starts = 3
	cfg.Seed = 1
	cfg.Jitter = 0.5

	res, err := resample.Run(context.Background(), problem(), cfg)
	require.NoError(t, err)

	assert.Equal(t, []float64{4, -2}, res.Attempts[0].Init)
	for _, a := range res.Attempts[1:] {
		assert.NotEqual(t, []float64{4, -2}, a.Init)
		assert.InDelta(t, 4, a.Init[0], 0.5)
		assert.InDelta(t, -2, a.Init[1], 0.5)
	}
}

// TestRun_SeedIsDeterministic tests that one seed gives the same starts.
func TestRun_SeedIsDeterministic(t *testing.T) {
	cfg := resample.DefaultConfig()
	cfg.Starts = 3
	cfg.Seed = 42

	a, err := resample.Run(context.Background(), problem(), cfg)
	require.NoError(t, err)
	b, err := resample.Run(context.Background(), problem(), cfg)
	require.NoError(t, err)

	for i := range a.Attempts {
		assert.Equal(t, a.Attempts[i].Init, b.Attempts[i].Init)
	}
}

// TestRun_ConfigurationError tests that compile errors surface before any start runs.
func TestRun_ConfigurationError(t *testing.T) {
	p := problem()
	p.Constraints = append(p.Constraints, energy.NewTerm("bogus"))

	_, err := resample.Run(context.Background(), p, resample.DefaultConfig())
	assert.ErrorIs(t, err, energy.ErrUnresolvedFunction)
}

// TestRun_CanceledContext tests cancellation before the first Step.
func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := resample.Run(ctx, problem(), resample.DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, -1, res.Best)
	assert.Nil(t, res.State())
}

// TestRun_StepLimitMeansNoStart tests that a start cut off by MaxSteps does not count.
func TestRun_StepLimitMeansNoStart(t *testing.T) {
	cfg := resample.DefaultConfig()
	cfg.MaxSteps = 1

	res, err := resample.Run(context.Background(), problem(), cfg)
	assert.ErrorIs(t, err, resample.ErrNoStart)
	require.Len(t, res.Attempts, 1)
	assert.ErrorIs(t, res.Attempts[0].Err, optim.ErrStepLimit)
}

// TestRun_ZeroJitterRepeatsInit tests that an explicit zero jitter starts
// every run from Problem.Init.
func TestRun_ZeroJitterRepeatsInit(t *testing.T) {
	cfg := resample.DefaultConfig()
	cfg.Starts = 3
	cfg.Jitter = 0

	res, err := resample.Run(context.Background(), problem(), cfg)
	require.NoError(t, err)
	for _, a := range res.Attempts {
		assert.Equal(t, []float64{4, -2}, a.Init)
	}
}

// TestRun_PrefersSatisfiedStart tests two coincident disjoint circles. The
// unjittered start sits on a zero-gradient saddle and converges violated;
// a jittered start must be chosen instead.
func TestRun_PrefersSatisfiedStart(t *testing.T) {
	p := optim.Problem{
		Constraints: []energy.Term{
			energy.NewTerm("disjoint",
				energy.Point(energy.Var(0), energy.Var(1)), energy.Const(1),
				energy.Point(energy.Var(2), energy.Var(3)), energy.Const(1)),
		},
		Init:       []float64{0, 0, 0, 0},
		Dictionary: funcs.Default(),
	}
	cfg := resample.DefaultConfig()
	cfg.Starts = 4
	cfg.Seed = 3

	res, err := resample.Run(context.Background(), p, cfg)
	require.NoError(t, err)

	first := res.Attempts[0]
	require.Equal(t, optim.EPConverged, first.State.Phase())
	assert.False(t, first.Satisfied)

	assert.NotEqual(t, 0, res.Best)
	assert.True(t, res.Attempts[res.Best].Satisfied)
}
