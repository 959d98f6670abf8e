// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package funcs provides the builtin layout objectives and constraints.
//
// Objectives:
//   - equal(a, b) = (a - b)²
//   - near(p, q, d) = (‖p - q‖ - d)²
//   - repel(p, q) = 1 / (‖p - q‖² + ε)
//   - centerX(p, x) = (p₀ - x)²
//   - minimize(a) = a, maximize(a) = -a
//
// Constraints hold when their value is ≤ 0:
//   - contains(cBig, rBig, cSmall, rSmall) = ‖cBig - cSmall‖ + rSmall - rBig
//   - disjoint(c1, r1, c2, r2) = r1 + r2 - ‖c1 - c2‖
//   - lessThan(a, b) = a - b
//   - atLeast(a, k) = k - a
//   - inRange(a, lo, hi) = max(lo - a, a - hi)
package funcs

import (
	"github.com/born-ml/layout/internal/energy"
	"github.com/born-ml/layout/internal/funcs"
)

// Default returns a fresh dictionary holding every builtin function.
func Default() energy.Dictionary { return funcs.Default() }

// Objectives returns the builtin objective functions.
func Objectives() energy.Dictionary { return funcs.Objectives() }

// Constraints returns the builtin constraint functions.
func Constraints() energy.Dictionary { return funcs.Constraints() }
