package planner

import "errors"

var (
	// ErrSplitExhausted means the decomposition spent its whole split
	// budget without making every cell simply traversable. Callers fall
	// back to covering the undecomposed region.
	ErrSplitExhausted = errors.New("planner: split search exhausted")

	// ErrUnknownStrategy means no strategy is registered under the
	// requested name.
	ErrUnknownStrategy = errors.New("planner: unknown strategy")
)
