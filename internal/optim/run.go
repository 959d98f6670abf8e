package optim

import (
	"context"
	"errors"
)

// ErrStepLimit reports that Run gave up before the state became terminal.
var ErrStepLimit = errors.New("optim: step limit reached")

// Run steps s with maxInner inner iterations per Step until it is terminal.
// It stops early when ctx is done or after maxSteps calls (0 means no limit),
// returning the last state together with ctx.Err() or ErrStepLimit.
// For a terminal state the error is s.Err(). maxInner below 1 is raised to 1.
func Run(ctx context.Context, s *State, maxInner, maxSteps int) (*State, error) {
	maxInner = max(maxInner, 1)
	for steps := 0; !s.IsTerminal(); steps++ {
		if maxSteps > 0 && steps >= maxSteps {
			return s, ErrStepLimit
		}
		if err := ctx.Err(); err != nil {
			return s, err
		}
		s = s.Step(maxInner)
	}
	return s, s.Err()
}
