package search

import (
	"context"

	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// AlphaBeta implements negamax search with alpha-beta pruning, a transposition table and
// quiescence search at the leaves. Pseudo-code:
//
//	function negamax(node, depth, α, β) is
//	    if depth = 0 or node is terminal then
//	        return quiesce(node, α, β)
//	    value := −∞
//	    for each child of node do
//	        value := max(value, −negamax(child, depth − 1, −β, −α))
//	        α := max(α, value)
//	        if α ≥ β then
//	            break (* β cutoff *)
//	    return value
//
// See: https://en.wikipedia.org/wiki/Alpha%E2%80%93beta_pruning.
type AlphaBeta struct {
	Quiescence Quiescence
}

func (a AlphaBeta) Search(ctx context.Context, st *State, pos *board.Position, depth int, alpha, beta eval.Score) (uint64, eval.Score, []board.Move, error) {
	run := &runAlphaBeta{st: st, q: a.Quiescence}
	score, moves := run.search(ctx, pos, 0, depth, alpha, beta)
	if contextx.IsCancelled(ctx) {
		return run.nodes, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runAlphaBeta struct {
	st    *State
	q     Quiescence
	nodes uint64
}

// search returns the score from pos's side-to-move perspective and the principal variation.
func (r *runAlphaBeta) search(ctx context.Context, pos *board.Position, ply, depth int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return eval.ZeroScore, nil
	}
	if winner, ok := pos.IsTerminal(); ok {
		r.nodes++
		if winner == pos.SideToMove() {
			return eval.MateForDepth(depth), nil
		}
		return -eval.MateForDepth(depth), nil
	}

	alphaOrig := alpha

	var hashMove board.Move
	if bound, d, score, m, ok := r.st.TT.Read(pos.Zobrist); ok {
		hashMove = m
		if d >= depth {
			switch bound {
			case ExactBound:
				return score, nil
			case LowerBound:
				alpha = eval.Max(alpha, score)
			case UpperBound:
				beta = eval.Min(beta, score)
			}
			if alpha >= beta {
				return score, nil
			}
		}
	}

	if depth == 0 {
		n, score := r.q.Search(ctx, r.st, pos, alpha, beta)
		r.nodes += n
		return score, nil
	}

	if r.st.Config.NullMovePruning && allowNullMove(pos, depth, alpha, beta) {
		child := pos.NullMove()
		score, _ := r.search(ctx, child, ply+1, depth-1-nullMoveReduction, beta.Negate(), beta.Negate()+1)
		score = score.Negate()
		if score >= beta {
			return score, nil // even passing a move refutes beta; a real move will do at least as well
		}
	}

	r.nodes++

	moves := pos.PseudoLegalMoves()
	list := OrderMoves(pos, moves, r.st, ply, r.st.PVMove(ply), hashMove)

	var pv []board.Move
	best := eval.NegInfScore
	var bestMove board.Move
	moveIndex := 0

	for {
		m, ok := list.Next()
		if !ok {
			break
		}

		child := pos.Copy()
		child.ApplyMove(m)

		newDepth := depth - 1
		if child.IsGuardInDanger(child.SideToMove()) {
			newDepth++ // check-like extension: this move threatens the opponent's guard
		} else if reduced := lateMoveReduction(r.st.Config, depth, moveIndex, isQuiet(pos, m)); reduced > 0 {
			newDepth -= reduced
		}

		score, rem := r.search(ctx, child, ply+1, newDepth, beta.Negate(), alpha.Negate())
		score = score.Negate()

		if newDepth < depth-1 && score > alpha {
			score, rem = r.search(ctx, child, ply+1, depth-1, beta.Negate(), alpha.Negate())
			score = score.Negate()
		}
		moveIndex++

		if score > best {
			best = score
			bestMove = m
			pv = append([]board.Move{m}, rem...)
		}
		alpha = eval.Max(alpha, score)
		if alpha >= beta {
			if isQuiet(pos, m) {
				r.st.RecordKiller(ply, m)
				r.st.RecordHistory(pos.SideToMove(), m, depth)
			}
			break // beta cutoff
		}
	}

	bound := ExactBound
	switch {
	case best <= alphaOrig:
		bound = UpperBound
	case best >= beta:
		bound = LowerBound
	}
	r.st.TT.Write(pos.Zobrist, bound, depth, best, bestMove)

	return best, pv
}
