// Package searchctl contains the iterative-deepening loop and time management built on top
// of pkg/search's fixed-depth algorithms.
package searchctl

import (
	"fmt"
	"time"
)

// DefaultGrowthFactor is the assumed ratio of cost(depth+1) to cost(depth), used to decide
// whether there is time for one more iterative-deepening ply before the budget runs out. The
// source material's time control instead split a game clock into a soft/hard pair per move
// (TimeControl.Limits); this is the single-search analogue of that soft limit, since the
// engine is not handed a two-clock game time budget, only a per-move thinking budget.
const DefaultGrowthFactor = 4.0

// Budget manages a single search's time allowance across iterative-deepening plies.
type Budget struct {
	Total        time.Duration
	GrowthFactor float64

	start time.Duration // elapsed at the start of the most recent iteration
}

// NewBudget creates a time budget with the default growth factor.
func NewBudget(total time.Duration) *Budget {
	return &Budget{Total: total, GrowthFactor: DefaultGrowthFactor}
}

// ShouldContinue reports whether, given elapsed time so far and the cost of the
// just-completed iteration, there is enough budget left to expect the next iteration (at
// growthFactor times the cost) to complete too. It implements the "continue only if the
// estimated next iteration fits within 85% of the remaining budget" rule: iterative
// deepening's cost grows so quickly with depth that starting an iteration unlikely to finish
// just wastes the time already spent on a worse answer.
func (b *Budget) ShouldContinue(elapsed, lastIteration time.Duration) bool {
	if b.Total <= 0 {
		return true // no budget configured: unlimited depth (bounded elsewhere, e.g. DepthLimit)
	}
	remaining := b.Total - elapsed
	if remaining <= 0 {
		return false
	}

	growth := b.GrowthFactor
	if growth <= 0 {
		growth = DefaultGrowthFactor
	}
	estimate := time.Duration(float64(lastIteration) * growth)

	return estimate < remaining*85/100
}

func (b *Budget) String() string {
	return fmt.Sprintf("budget=%v growth=%.1f", b.Total, b.GrowthFactor)
}
