// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package problem reads layout problems from YAML files.
//
// Example:
//
//	f, err := problem.Load(file)
//	if err != nil {
//	    return err
//	}
//	p, err := f.Problem(funcs.Default())
//	if err != nil {
//	    return err // unknown variable or function
//	}
//	cfg, err := f.Options.Config(optim.DefaultResampleConfig())
package problem

import (
	"io"

	"github.com/born-ml/layout/internal/problem"
)

// File types.
type (
	File     = problem.File
	Variable = problem.Variable
	TermSpec = problem.TermSpec
	ArgExpr  = problem.ArgExpr
	Options  = problem.Options
)

// Errors reported while resolving a problem file.
var (
	ErrUnknownVariable   = problem.ErrUnknownVariable
	ErrDuplicateVariable = problem.ErrDuplicateVariable
	ErrPenalty           = problem.ErrPenalty
)

// Load decodes a problem file from r.
func Load(r io.Reader) (*File, error) { return problem.Load(r) }

// Parse decodes a problem file.
func Parse(data []byte) (*File, error) { return problem.Parse(data) }
