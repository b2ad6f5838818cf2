package search

import (
	"context"

	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// PVS implements principal variation search: the first move at each node is searched with a
// full window, and every subsequent move is first tried with a null window (cheap to refute
// if it is not actually better) and only re-searched with the full window if it fails high.
// Pseudo-code:
//
//	function pvs(node, depth, α, β) is
//	    if depth = 0 or node is terminal then
//	        return quiesce(node, α, β)
//	    for each child of node do
//	        if child is first child then
//	            score := −pvs(child, depth − 1, −β, −α)
//	        else
//	            score := −pvs(child, depth − 1, −α − 1, −α) (* null window *)
//	            if α < score < β then
//	                score := −pvs(child, depth − 1, −β, −score) (* re-search *)
//	        α := max(α, score)
//	        if α ≥ β then
//	            break (* β cutoff *)
//	    return α
//
// See: https://en.wikipedia.org/wiki/Principal_variation_search.
type PVS struct {
	Quiescence Quiescence
}

func (p PVS) Search(ctx context.Context, st *State, pos *board.Position, depth int, alpha, beta eval.Score) (uint64, eval.Score, []board.Move, error) {
	run := &runPVS{st: st, q: p.Quiescence}
	score, moves := run.search(ctx, pos, 0, depth, alpha, beta)
	if contextx.IsCancelled(ctx) {
		return run.nodes, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runPVS struct {
	st    *State
	q     Quiescence
	nodes uint64
}

func (r *runPVS) search(ctx context.Context, pos *board.Position, ply, depth int, alpha, beta eval.Score) (eval.Score, []board.Move) {
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
	first := true
	moveIndex := 0

	for {
		m, ok := list.Next()
		if !ok {
			break
		}

		child := pos.Copy()
		child.ApplyMove(m)

		extended := child.IsGuardInDanger(child.SideToMove())
		reduction := 0
		if !extended {
			reduction = lateMoveReduction(r.st.Config, depth, moveIndex, isQuiet(pos, m))
		}
		newDepth := depth - 1
		if extended {
			newDepth++ // check-like extension: this move threatens the opponent's guard
		} else {
			newDepth -= reduction
		}

		var score eval.Score
		var rem []board.Move

		if first {
			score, rem = r.search(ctx, child, ply+1, newDepth, beta.Negate(), alpha.Negate())
			score = score.Negate()
		} else {
			score, rem = r.search(ctx, child, ply+1, newDepth, alpha.Negate()-1, alpha.Negate())
			score = score.Negate()
			if reduction > 0 && score > alpha {
				// the reduced null-window probe beat alpha: re-verify at full depth before
				// trusting it enough to trigger the usual full-window re-search below.
				score, rem = r.search(ctx, child, ply+1, depth-1, alpha.Negate()-1, alpha.Negate())
				score = score.Negate()
			}
			if alpha < score && score < beta {
				score, rem = r.search(ctx, child, ply+1, depth-1, beta.Negate(), score.Negate())
				score = score.Negate()
			}
		}
		first = false
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
			break
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
