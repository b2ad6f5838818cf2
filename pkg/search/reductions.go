package search

import (
	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/eval"
)

const (
	// nullMoveMinDepth is the shallowest remaining depth at which a null-move probe is still
	// worth its own recursive search; below it the reduced search would cost almost as much
	// as just generating moves normally.
	nullMoveMinDepth = 3
	// nullMoveReduction is the depth reduction (R) applied to the null-move probe itself.
	nullMoveReduction = 2

	// lateMoveThreshold is how many moves into the ordered list a quiet move must be before
	// it becomes a late-move-reduction candidate; the first few moves are the ones move
	// ordering expects to matter most and are never reduced.
	lateMoveThreshold = 3
	// lateMoveMinDepth is the shallowest remaining depth at which a late move is still
	// reduced; below it there is too little depth left to safely shave more off.
	lateMoveMinDepth = 3
	// lateMoveReductionAmount is the depth reduction applied to a qualifying late quiet move.
	lateMoveReductionAmount = 1
)

// allowNullMove reports whether a null-move probe is safe to try at this node: deep and wide
// enough to trust, and the side to move holds at least one tower (a guard-only side is the
// kind of zugzwang-prone endgame where passing can look artificially good, since every real
// move might worsen its position).
func allowNullMove(pos *board.Position, depth int, alpha, beta eval.Score) bool {
	if depth < nullMoveMinDepth {
		return false
	}
	if beta-alpha <= 1 {
		return false // already inside a null-window probe; do not stack another one on top
	}
	return pos.TowerCount(pos.SideToMove()) > 0
}

// lateMoveReduction returns the depth reduction to apply to the moveIndex'th move in the
// ordered list (0-based), or 0 if it does not qualify: late-move reductions only apply to
// quiet moves, deep enough in the tree, past the first few moves ordering already promoted.
func lateMoveReduction(cfg Config, depth, moveIndex int, quiet bool) int {
	if !cfg.LateMoveReductions {
		return 0
	}
	if !quiet || depth < lateMoveMinDepth || moveIndex < lateMoveThreshold {
		return 0
	}
	return lateMoveReductionAmount
}
