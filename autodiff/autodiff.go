// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar reverse-mode automatic differentiation.
//
// A Graph is an arena of scalar nodes. Nodes are added with the builder
// methods and referenced by NodeID; operands always precede the node that
// uses them, so the graph is acyclic by construction.
//
// Example:
//
//	import "github.com/born-ml/layout/autodiff"
//
//	func main() {
//	    g := autodiff.NewGraph(2)
//	    d := g.Sub(g.Var(0), g.Var(1))
//	    out := g.Mul(g.Square(d), g.Slot("weight"))
//
//	    g.SetSlot("weight", 10)
//	    value, grad := g.Gradient(out, []float64{3, 1})
//	    // value = 40, grad = [40, -40]
//	}
package autodiff

import (
	"github.com/born-ml/layout/internal/autodiff"
	"github.com/born-ml/layout/internal/autodiff/ops"
)

// Graph is a scalar expression graph with per-pass value and gradient caches.
type Graph = autodiff.Graph

// NodeID references a node of a Graph.
type NodeID = autodiff.NodeID

// Operation is the forward and backward rule of an op node.
type Operation = ops.Operation

// None is the NodeID that references no node.
const None = autodiff.None

// ErrNonFinite is wrapped by errors reporting NaN or infinite values.
var ErrNonFinite = autodiff.ErrNonFinite

// NewGraph creates an empty graph over numVars input variables.
func NewGraph(numVars int) *Graph {
	return autodiff.NewGraph(numVars)
}

// CheckFinite returns an error wrapping ErrNonFinite if value or any
// gradient component is NaN or infinite.
func CheckFinite(value float64, grad []float64) error {
	return autodiff.CheckFinite(value, grad)
}
