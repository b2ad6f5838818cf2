// Package eval contains static position evaluation for guards-and-towers positions.
package eval

import (
	"context"

	"github.com/towerguard/engine/pkg/board"
)

// Evaluator is a static position evaluator. Evaluate returns a score in points from the
// perspective of the side to move: positive favors the mover. depth is the remaining search
// depth at the node being evaluated, folded into mate and mate-net magnitudes so that wins
// found higher in the tree outrank those found deeper (see MateForDepth). Implementations
// must not mutate pos.
type Evaluator interface {
	Evaluate(ctx context.Context, pos *board.Position, depth int) Score
}

// Feature is a single weighted evaluation term. Composing several small, independently
// testable features (rather than one monolithic function) mirrors the source material's
// one-term-per-file layout (material.go, pins.go, capture.go, ...).
type Feature interface {
	// Evaluate returns the term's contribution in points, from Red's perspective. Weighted
	// sums flip this to the mover's perspective once, at the top.
	Evaluate(pos *board.Position) Score
}

// Weighted composes a list of Features, each scaled by an integer weight, plus an optional
// noise term. It is the default Evaluator used by the engine.
type Weighted struct {
	Terms []WeightedTerm
	Noise Random
}

// WeightedTerm pairs a Feature with its integer weight.
type WeightedTerm struct {
	Feature Feature
	Weight  Score
}

// DefaultWeights returns the feature set and weights used by the engine by default, ordered
// roughly by how much each term tends to dominate the evaluation in practice.
func DefaultWeights() []WeightedTerm {
	return []WeightedTerm{
		{Feature: Material{}, Weight: 100},
		{Feature: Safety{}, Weight: 60},
		{Feature: Threat{}, Weight: 25},
		{Feature: Advancement{}, Weight: 12},
		{Feature: Mobility{}, Weight: 4},
		{Feature: Centrality{}, Weight: 2},
	}
}

func NewWeighted(terms []WeightedTerm, noise Random) Weighted {
	return Weighted{Terms: terms, Noise: noise}
}

func (w Weighted) Evaluate(ctx context.Context, pos *board.Position, depth int) Score {
	mover := pos.SideToMove()

	if winner, ok := pos.IsTerminal(); ok {
		if winner == mover {
			return MateForDepth(depth)
		}
		return -MateForDepth(depth)
	}

	// Mate net: the mover's (or the opponent's) guard is attacked with no safe escape --
	// not yet an outright capture, but decisive enough to anchor search the same way a
	// confirmed mate does (spec'd as evaluation item 6, guard safety).
	if MateNet(pos, mover) {
		return -MateNetForDepth(depth)
	}
	if MateNet(pos, mover.Opponent()) {
		return MateNetForDepth(depth)
	}

	var red Score
	for _, t := range w.Terms {
		red += t.Weight * t.Feature.Evaluate(pos)
	}

	score := red
	if mover == board.Blue {
		score = -red
	}
	return Crop(score + w.Noise.Evaluate(ctx, pos))
}
