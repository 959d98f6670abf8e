package autodiff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/layout/internal/autodiff"
)

// TestGraph_SquaredDifference tests value and gradient of (a-b)².
func TestGraph_SquaredDifference(t *testing.T) {
	g := autodiff.NewGraph(2)
	out := g.Square(g.Sub(g.Var(0), g.Var(1)))

	value, grad := g.Gradient(out, []float64{0, 5})

	assert.InDelta(t, 25.0, value, 1e-12)
	require.Len(t, grad, 2)
	assert.InDelta(t, -10.0, grad[0], 1e-12)
	assert.InDelta(t, 10.0, grad[1], 1e-12)
}

// TestGraph_VarIsMemoized tests that a variable leaf is shared between uses.
func TestGraph_VarIsMemoized(t *testing.T) {
	g := autodiff.NewGraph(1)
	a := g.Var(0)
	assert.Equal(t, a, g.Var(0))

	// x*x uses the same leaf twice; gradients accumulate to 2x.
	out := g.Mul(g.Var(0), g.Var(0))
	_, grad := g.Gradient(out, []float64{3})
	assert.InDelta(t, 6.0, grad[0], 1e-12)
}

// TestGraph_SharedSubexpression tests gradient accumulation through a DAG.
func TestGraph_SharedSubexpression(t *testing.T) {
	g := autodiff.NewGraph(1)
	x := g.Var(0)
	s := g.Add(x, g.Const(1)) // s = x + 1
	out := g.Mul(s, s)        // (x+1)²

	value, grad := g.Gradient(out, []float64{2})
	assert.InDelta(t, 9.0, value, 1e-12)
	assert.InDelta(t, 6.0, grad[0], 1e-12)
}

// TestGraph_ReuseResetsCaches tests that repeated passes do not leak state.
func TestGraph_ReuseResetsCaches(t *testing.T) {
	g := autodiff.NewGraph(2)
	out := g.Add(g.Square(g.Var(0)), g.Mul(g.Var(0), g.Var(1)))

	_, first := g.Gradient(out, []float64{1, 2})
	_, second := g.Gradient(out, []float64{1, 2})
	assert.Equal(t, first, second)

	value, grad := g.Gradient(out, []float64{-1, 4})
	assert.InDelta(t, 1.0-4.0, value, 1e-12)
	assert.InDelta(t, 2*-1.0+4.0, grad[0], 1e-12)
	assert.InDelta(t, -1.0, grad[1], 1e-12)
}

// TestGraph_UnusedVariableHasZeroGradient tests variables that do not reach the output.
func TestGraph_UnusedVariableHasZeroGradient(t *testing.T) {
	g := autodiff.NewGraph(3)
	out := g.Square(g.Var(2))

	_, grad := g.Gradient(out, []float64{7, 8, 1})
	assert.Equal(t, []float64{0, 0, 2}, grad)
}

// TestGraph_Slot tests substituting a named input without rebuilding the graph.
func TestGraph_Slot(t *testing.T) {
	g := autodiff.NewGraph(1)
	w := g.Slot("weight")
	assert.Equal(t, w, g.Slot("weight"), "slot lookup must be idempotent")

	out := g.Mul(w, g.Square(g.Var(0)))
	nodes := g.NumNodes()

	g.SetSlot("weight", 2)
	v1, grad1 := g.Gradient(out, []float64{3})
	g.SetSlot("weight", 10)
	v2, grad2 := g.Gradient(out, []float64{3})

	assert.InDelta(t, 18.0, v1, 1e-12)
	assert.InDelta(t, 12.0, grad1[0], 1e-12)
	assert.InDelta(t, 90.0, v2, 1e-12)
	assert.InDelta(t, 60.0, grad2[0], 1e-12)
	assert.Equal(t, nodes, g.NumNodes(), "substitution must not add nodes")

	value, ok := g.SlotValue("weight")
	assert.True(t, ok)
	assert.Equal(t, 10.0, value)
}

// TestGraph_ValueReadsIntermediateNodes tests the forward cache.
func TestGraph_ValueReadsIntermediateNodes(t *testing.T) {
	g := autodiff.NewGraph(2)
	diff := g.Sub(g.Var(0), g.Var(1))
	out := g.Square(diff)

	g.Forward(out, []float64{4, 1})
	assert.Equal(t, 3.0, g.Value(diff))
	assert.Equal(t, 9.0, g.Value(out))
}

// TestGraph_Sum tests the n-ary sum, including the empty case.
func TestGraph_Sum(t *testing.T) {
	g := autodiff.NewGraph(3)
	empty := g.Sum()
	out := g.Sum(g.Var(0), g.Var(1), g.Var(2))

	assert.Equal(t, 0.0, g.Evaluate(empty, []float64{1, 2, 3}))
	value, grad := g.Gradient(out, []float64{1, 2, 3})
	assert.Equal(t, 6.0, value)
	assert.Equal(t, []float64{1, 1, 1}, grad)
}

// TestGraph_NonFiniteIsReportedNotRaised tests that NaN flows through a pass silently.
func TestGraph_NonFiniteIsReportedNotRaised(t *testing.T) {
	g := autodiff.NewGraph(1)
	out := g.Log(g.Var(0))

	var (
		value float64
		grad  []float64
	)
	require.NotPanics(t, func() {
		value, grad = g.Gradient(out, []float64{-1})
	})
	assert.True(t, math.IsNaN(value))

	err := autodiff.CheckFinite(value, grad)
	require.Error(t, err)
	assert.ErrorIs(t, err, autodiff.ErrNonFinite)

	value, grad = g.Gradient(out, []float64{math.E})
	assert.NoError(t, autodiff.CheckFinite(value, grad))
}

// TestGraph_PiecewiseOpsKeepNaN tests that max and the hinge do not mask a
// NaN operand behind a finite one.
func TestGraph_PiecewiseOpsKeepNaN(t *testing.T) {
	g := autodiff.NewGraph(1)
	maxOut := g.Max(g.Sqrt(g.Var(0)), g.Const(2))
	hinge := g.Square(g.ReLU(g.Sub(g.Const(1), g.Log(g.Var(0)))))

	for _, out := range []autodiff.NodeID{maxOut, hinge} {
		value, grad := g.Gradient(out, []float64{-1})
		assert.True(t, math.IsNaN(value), g.Describe(out))
		assert.ErrorIs(t, autodiff.CheckFinite(value, grad), autodiff.ErrNonFinite)
	}

	value, grad := g.Gradient(maxOut, []float64{16})
	assert.Equal(t, 4.0, value)
	assert.NoError(t, autodiff.CheckFinite(value, grad))
}

// TestGraph_CheckFiniteGradient tests detection of a non-finite gradient component.
func TestGraph_CheckFiniteGradient(t *testing.T) {
	err := autodiff.CheckFinite(1, []float64{0, math.Inf(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, autodiff.ErrNonFinite)
	assert.Contains(t, err.Error(), "gradient[1]")
}

// TestGraph_Panics tests programmer errors.
func TestGraph_Panics(t *testing.T) {
	g := autodiff.NewGraph(1)
	out := g.Square(g.Var(0))

	assert.Panics(t, func() { g.Var(1) }, "variable out of range")
	assert.Panics(t, func() { g.Forward(out, []float64{1, 2}) }, "input length mismatch")
	assert.Panics(t, func() { g.Add(out, autodiff.NodeID(99)) }, "forward reference")
	assert.Panics(t, func() { g.SetSlot("missing", 1) }, "unknown slot")
}

// TestGraph_Describe tests diagnostic node descriptions.
func TestGraph_Describe(t *testing.T) {
	g := autodiff.NewGraph(1)
	x := g.Var(0)
	c := g.Const(2)
	w := g.Slot("weight")
	out := g.Mul(x, c)

	assert.Equal(t, "%0 = var[0]", g.Describe(x))
	assert.Equal(t, "%1 = const 2", g.Describe(c))
	assert.Equal(t, `%2 = slot "weight"`, g.Describe(w))
	assert.Equal(t, "%3 = mul[0 1]", g.Describe(out))
}
