package ops_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/layout/internal/autodiff/ops"
)

// TestOperations checks every op's forward value and local derivatives.
func TestOperations(t *testing.T) {
	tests := []struct {
		op        ops.Operation
		args      []float64
		want      float64
		wantGrads []float64 // for outputGrad = 2
	}{
		{ops.AddOp{}, []float64{1, 2, 3}, 6, []float64{2, 2, 2}},
		{ops.SubOp{}, []float64{5, 3}, 2, []float64{2, -2}},
		{ops.MulOp{}, []float64{4, 3}, 12, []float64{6, 8}},
		{ops.DivOp{}, []float64{6, 3}, 2, []float64{2.0 / 3, -2 * 6.0 / 9}},
		{ops.NegOp{}, []float64{4}, -4, []float64{-2}},
		{ops.SquareOp{}, []float64{3}, 9, []float64{12}},
		{ops.SqrtOp{}, []float64{4}, 2, []float64{0.5}},
		{ops.SqrtOp{}, []float64{0}, 0, []float64{0}},
		{ops.AbsOp{}, []float64{-3}, 3, []float64{-2}},
		{ops.AbsOp{}, []float64{0}, 0, []float64{0}},
		{ops.ExpOp{}, []float64{0}, 1, []float64{2}},
		{ops.LogOp{}, []float64{2}, math.Log(2), []float64{1}},
		{ops.SinOp{}, []float64{0}, 0, []float64{2}},
		{ops.CosOp{}, []float64{0}, 1, []float64{0}},
		{ops.ReLUOp{}, []float64{-1}, 0, []float64{0}},
		{ops.ReLUOp{}, []float64{1.5}, 1.5, []float64{2}},
		{ops.MaxOp{}, []float64{1, 4}, 4, []float64{0, 2}},
		{ops.MaxOp{}, []float64{4, 4}, 4, []float64{2, 0}},
		{ops.MinOp{}, []float64{1, 4}, 1, []float64{2, 0}},
		{ops.MinOp{}, []float64{5, 4}, 4, []float64{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.op.Name(), func(t *testing.T) {
			if arity := tt.op.Arity(); arity >= 0 {
				assert.Len(t, tt.args, arity)
			}

			out := tt.op.Forward(tt.args)
			assert.InDelta(t, tt.want, out, 1e-12)

			grads := make([]float64, len(tt.args))
			tt.op.Backward(tt.args, out, 2, grads)
			assert.InDeltaSlice(t, tt.wantGrads, grads, 1e-12)
		})
	}
}

// TestOperations_NaNPropagates checks that the piecewise ops never select
// a finite operand over a NaN one.
func TestOperations_NaNPropagates(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		op   ops.Operation
		args []float64
	}{
		{"relu", ops.ReLUOp{}, []float64{nan}},
		{"max lhs", ops.MaxOp{}, []float64{nan, 2}},
		{"max rhs", ops.MaxOp{}, []float64{2, nan}},
		{"min lhs", ops.MinOp{}, []float64{nan, 2}},
		{"min rhs", ops.MinOp{}, []float64{-2, nan}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.op.Forward(tt.args)
			assert.True(t, math.IsNaN(out), "forward = %v", out)

			grads := make([]float64, len(tt.args))
			tt.op.Backward(tt.args, out, 1, grads)
			for i, g := range grads {
				assert.True(t, math.IsNaN(g), "grad[%d] = %v", i, g)
			}
		})
	}
}
