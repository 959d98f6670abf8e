package optim

import (
	"gonum.org/v1/gonum/floats"
)

// lbfgsEpsilon keeps the curvature ratios finite when y·s or y·y vanish.
const lbfgsEpsilon = 1e-11

// Memory is the L-BFGS history of one unconstrained minimization.
//
// S and Y hold state and gradient differences, most recent first. Memory is
// a value: Precondition never modifies the vectors of the memory it is given,
// so copies of a State never observe each other's history.
type Memory struct {
	S         [][]float64
	Y         [][]float64
	LastState []float64 // nil before the first step
	LastGrad  []float64 // nil before the first step
	Steps     int
}

// Len returns the number of stored (s, y) pairs.
func (m Memory) Len() int {
	return len(m.S)
}

// Precondition returns an approximation of H·grad, where H is the inverse
// Hessian estimated from mem, together with the updated memory.
//
// The first call of a phase (mem.Steps == 0) returns grad unchanged. Later
// calls push (x - lastState, grad - lastGrad) and run the two-loop recursion
// over at most size pairs. If the result is not a descent direction the
// history is dropped and grad is returned instead.
func Precondition(x, grad []float64, mem Memory, size int) ([]float64, Memory) {
	raw := clone(grad)
	if mem.Steps == 0 || mem.LastState == nil {
		return raw, Memory{LastState: clone(x), LastGrad: clone(grad), Steps: 1}
	}

	s := make([]float64, len(x))
	floats.SubTo(s, x, mem.LastState)
	y := make([]float64, len(grad))
	floats.SubTo(y, grad, mem.LastGrad)

	next := Memory{
		S:         prepend(s, mem.S, size),
		Y:         prepend(y, mem.Y, size),
		LastState: clone(x),
		LastGrad:  clone(grad),
		Steps:     mem.Steps + 1,
	}
	if next.Len() == 0 {
		return raw, next
	}

	r := twoLoop(grad, next.S, next.Y)

	// -r must be a descent direction: -(r·g) < 0.
	if -floats.Dot(r, grad) >= 0 {
		return raw, Memory{LastState: next.LastState, LastGrad: next.LastGrad, Steps: 1}
	}
	return r, next
}

// twoLoop runs the L-BFGS two-loop recursion. S and Y are most recent first.
// See Nocedal & Wright, Numerical Optimization (2nd ed.), algorithm 7.4.
func twoLoop(grad []float64, S, Y [][]float64) []float64 {
	m := len(S)
	rho := make([]float64, m)
	alpha := make([]float64, m)

	// Newest to oldest.
	q := clone(grad)
	for i := 0; i < m; i++ {
		rho[i] = 1 / (floats.Dot(Y[i], S[i]) + lbfgsEpsilon)
		alpha[i] = rho[i] * floats.Dot(S[i], q)
		floats.AddScaled(q, -alpha[i], Y[i])
	}

	// H0 = γI from the most recent pair.
	gamma := floats.Dot(S[0], Y[0]) / (floats.Dot(Y[0], Y[0]) + lbfgsEpsilon)
	r := q
	floats.Scale(gamma, r)

	// Oldest to newest.
	for i := m - 1; i >= 0; i-- {
		beta := rho[i] * floats.Dot(Y[i], r)
		floats.AddScaled(r, alpha[i]-beta, S[i])
	}
	return r
}

// prepend returns [v, hist...] truncated to size entries.
func prepend(v []float64, hist [][]float64, size int) [][]float64 {
	if size <= 0 {
		return nil
	}
	keep := min(len(hist), size-1)
	out := make([][]float64, 0, keep+1)
	out = append(out, v)
	return append(out, hist[:keep]...)
}

func clone(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
