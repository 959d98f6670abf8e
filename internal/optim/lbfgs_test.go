package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/layout/internal/optim"
)

// quadGrad returns the gradient A·x of f(x) = ½ xᵀAx for diagonal A.
func quadGrad(diag, x []float64) []float64 {
	g := make([]float64, len(x))
	for i := range x {
		g[i] = diag[i] * x[i]
	}
	return g
}

// TestPrecondition_FirstCallReturnsRawGradient tests that a fresh phase starts from the raw gradient.
func TestPrecondition_FirstCallReturnsRawGradient(t *testing.T) {
	x := []float64{1, 2}
	g := []float64{3, -4}

	pg, mem := optim.Precondition(x, g, optim.Memory{}, 5)

	assert.Equal(t, g, pg)
	assert.Equal(t, 1, mem.Steps)
	assert.Equal(t, 0, mem.Len())
	assert.Equal(t, x, mem.LastState)
	assert.Equal(t, g, mem.LastGrad)

	// The memory must not alias caller slices.
	x[0], g[0] = 100, 100
	assert.Equal(t, []float64{1, 2}, mem.LastState)
	assert.Equal(t, []float64{3, -4}, mem.LastGrad)
	pg[1] = 7
	assert.Equal(t, -4.0, mem.LastGrad[1])
}

// TestPrecondition_SecantEquation tests H·y = s for the newest pair.
func TestPrecondition_SecantEquation(t *testing.T) {
	// With x0 at the minimizer of ½ xᵀAx, the first pair is (s, y) = (x1, A·x1)
	// and the preconditioned gradient at x1 must satisfy H·y = s.
	diag := []float64{1, 10}
	x0 := []float64{0, 0}
	x1 := []float64{2, -1}

	_, mem := optim.Precondition(x0, quadGrad(diag, x0), optim.Memory{}, 5)
	pg, mem := optim.Precondition(x1, quadGrad(diag, x1), mem, 5)

	assert.InDeltaSlice(t, x1, pg, 1e-9)
	assert.Equal(t, 1, mem.Len())
	assert.Equal(t, 2, mem.Steps)
}

// TestPrecondition_ExactOnDiagonalQuadratic tests Newton directions on a separable quadratic.
func TestPrecondition_ExactOnDiagonalQuadratic(t *testing.T) {
	// Two independent pairs in 2D pin down the inverse Hessian exactly.
	diag := []float64{1, 10}
	points := [][]float64{{0, 0}, {1, 0}, {1, 1}}

	var (
		mem optim.Memory
		pg  []float64
	)
	for _, x := range points {
		pg, mem = optim.Precondition(x, quadGrad(diag, x), mem, 5)
	}

	// H·g = A⁻¹·A·x = x for the last point.
	assert.InDeltaSlice(t, []float64{1, 1}, pg, 1e-9)
	assert.Equal(t, 2, mem.Len())
}

// TestPrecondition_MemorySizeZeroIsGradientDescent tests that memory 0 never preconditions.
func TestPrecondition_MemorySizeZeroIsGradientDescent(t *testing.T) {
	diag := []float64{1, 10}
	var mem optim.Memory
	for _, x := range [][]float64{{4, 4}, {3, 1}, {1, -2}, {0.5, 0.1}} {
		g := quadGrad(diag, x)
		var pg []float64
		pg, mem = optim.Precondition(x, g, mem, 0)
		assert.Equal(t, g, pg)
		assert.Equal(t, 0, mem.Len())
	}
	assert.Equal(t, 4, mem.Steps)
}

// TestPrecondition_TruncatesHistory tests that at most size pairs are kept, newest first.
func TestPrecondition_TruncatesHistory(t *testing.T) {
	diag := []float64{1, 2, 3}
	xs := [][]float64{{1, 1, 1}, {2, 1, 1}, {2, 3, 1}, {2, 3, 4}, {5, 3, 4}}

	var mem optim.Memory
	for _, x := range xs {
		_, mem = optim.Precondition(x, quadGrad(diag, x), mem, 2)
	}

	require.Equal(t, 2, mem.Len())
	assert.Equal(t, []float64{3, 0, 0}, mem.S[0], "newest pair first")
	assert.Equal(t, []float64{0, 0, 3}, mem.S[1])
	assert.Equal(t, []float64{3, 0, 0}, mem.Y[0])
	assert.Len(t, mem.Y, 2)
}

// TestPrecondition_ResetsOnNonDescentDirection tests the fallback to the raw gradient.
func TestPrecondition_ResetsOnNonDescentDirection(t *testing.T) {
	// Negative curvature: the gradient decreases while x increases.
	_, mem := optim.Precondition([]float64{0}, []float64{1}, optim.Memory{}, 5)
	pg, mem := optim.Precondition([]float64{1}, []float64{-1}, mem, 5)

	assert.Equal(t, []float64{-1}, pg, "raw gradient after reset")
	assert.Equal(t, 0, mem.Len(), "history dropped")
	assert.Equal(t, 1, mem.Steps)
	assert.Equal(t, []float64{1}, mem.LastState, "last state recorded regardless")
	assert.Equal(t, []float64{-1}, mem.LastGrad)
}

// TestPrecondition_DoesNotMutateInputMemory tests that Memory behaves as a value.
func TestPrecondition_DoesNotMutateInputMemory(t *testing.T) {
	diag := []float64{1, 10}
	_, m1 := optim.Precondition([]float64{1, 1}, quadGrad(diag, []float64{1, 1}), optim.Memory{}, 3)
	_, m2 := optim.Precondition([]float64{0, 1}, quadGrad(diag, []float64{0, 1}), m1, 3)
	_, m3 := optim.Precondition([]float64{0, 0.5}, quadGrad(diag, []float64{0, 0.5}), m2, 3)

	assert.Equal(t, 0, m1.Len())
	assert.Equal(t, 1, m2.Len())
	assert.Equal(t, 2, m3.Len())
	assert.Equal(t, []float64{-1, 0}, m2.S[0])
	assert.Equal(t, m2.S[0], m3.S[1])
}
