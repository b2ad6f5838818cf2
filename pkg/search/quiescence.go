package search

import (
	"context"

	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// quiescenceDepthCap bounds how many plies quiescence search can recurse, as a defensive
// backstop against runaway capture chains; captures on a 7x7 board with eight pieces per
// side at the start are short-lived in practice, but an explicit cap keeps worst-case latency
// bounded.
const quiescenceDepthCap = 16

// Quiescence extends search at the leaves of the main tree through tactical moves only
// (captures, guard-to-target moves, escapes of an endangered guard and direct threats to the
// enemy guard; see tacticalMoves), so the evaluator is never asked to judge a position where
// a capture is still hanging. Implements stand-pat and delta pruning.
type Quiescence struct{}

// Search runs quiescence search from pos, returning node count and the score from pos's
// side-to-move perspective. There is no principal variation: quiescence is for score
// refinement only, not line reporting.
func (q Quiescence) Search(ctx context.Context, st *State, pos *board.Position, alpha, beta eval.Score) (uint64, eval.Score) {
	return q.search(ctx, st, pos, 0, alpha, beta)
}

func (q Quiescence) search(ctx context.Context, st *State, pos *board.Position, ply int, alpha, beta eval.Score) (uint64, eval.Score) {
	if contextx.IsCancelled(ctx) {
		return 0, eval.ZeroScore
	}

	var nodes uint64 = 1

	standPat := st.Eval.Evaluate(ctx, pos, 0)
	if standPat >= beta {
		return nodes, beta
	}
	alpha = eval.Max(alpha, standPat)

	depthCap := quiescenceDepthCap
	if st.Config.QuiescenceMaxDepth > 0 {
		depthCap = st.Config.QuiescenceMaxDepth
	}
	if ply >= depthCap {
		return nodes, alpha
	}

	moves := tacticalMoves(pos)
	list := OrderMoves(pos, moves, st, 0, board.Move{}, board.Move{})

	for {
		m, ok := list.Next()
		if !ok {
			break
		}

		// Delta pruning: even winning this capture outright cannot raise alpha, so this move
		// is not worth the recursion. Later moves in the list are still checked one by one.
		gain := eval.ThreatValue(pos, m)
		if standPat+gain+deltaMargin < alpha {
			continue
		}

		// Static exchange filtering: a capture that is clearly losing once the recapture
		// sequence on the destination plays out is not worth recursing into either, even
		// though it cleared the coarser delta-pruning check above.
		if gain > 0 && eval.StaticExchangeValue(pos, m) < 0 {
			continue
		}

		child := pos.Copy()
		child.ApplyMove(m)

		n, s := q.search(ctx, st, child, ply+1, beta.Negate(), alpha.Negate())
		nodes += n
		s = s.Negate()

		if s >= beta {
			return nodes, beta
		}
		alpha = eval.Max(alpha, s)
	}

	return nodes, alpha
}

// deltaMargin is slack added to delta pruning to account for positional factors the material
// gain estimate ignores.
const deltaMargin = eval.Score(eval.GuardValue)

// tacticalMoves returns the subset of pos's pseudo-legal moves that quiescence search should
// consider: captures; moves that place the mover's guard on its target square (an immediate
// win); if the mover's own guard is currently in danger, every move of that guard (it must
// be allowed to run, even to a quiet square -- standing pat here would judge a position one
// move away from losing outright as merely "a bit worse"); and moves that newly attack the
// enemy guard directly (the threat itself needs to survive quiescence's static eval, not just
// the capture that would follow it next ply).
func tacticalMoves(pos *board.Position) []board.Move {
	side := pos.SideToMove()
	opp := side.Opponent()

	var target board.Square
	if side == board.Red {
		target = board.BlueTarget
	} else {
		target = board.RedTarget
	}

	guardSq, hasGuard := pos.GuardSquare(side)
	guardInDanger := hasGuard && pos.IsGuardInDanger(side)
	oppGuardSq, oppHasGuard := pos.GuardSquare(opp)

	var ret []board.Move
	for _, m := range pos.PseudoLegalMoves() {
		if _, _, _, ok := pos.Occupant(m.To); ok {
			ret = append(ret, m)
			continue
		}
		if m.To == target {
			ret = append(ret, m)
			continue
		}
		if guardInDanger && m.From == guardSq {
			ret = append(ret, m)
			continue
		}
		if oppHasGuard && attacksSquareAfter(pos, side, m, oppGuardSq) {
			ret = append(ret, m)
		}
	}
	return ret
}

// attacksSquareAfter reports whether playing m would let side reach sq on its next move --
// used to pull "this move newly threatens the enemy guard" into quiescence's tactical set.
func attacksSquareAfter(pos *board.Position, side board.Side, m board.Move, sq board.Square) bool {
	child := pos.Copy()
	child.ApplyMove(m)
	return child.CanReach(side, sq)
}
