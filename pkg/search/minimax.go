package search

import (
	"context"

	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Minimax implements naive negamax search with no pruning, transposition table or
// quiescence extension: it visits every node in the full-width tree. Too slow for play at
// any useful depth, but it is a ground truth oracle -- AlphaBeta and PVS, run on the same
// position and depth with a wide-open window, agree with Minimax's score exactly (modulo move
// ordering within equally-scored lines) on positions where their quiescence search and
// guard-threat extension find nothing to add; Minimax has neither. Pseudo-code:
//
//	function minimax(node, depth) is
//	    if depth = 0 or node is terminal then
//	        return the heuristic value of node
//	    value := −∞
//	    for each child of node do
//	        value := max(value, −minimax(child, depth − 1))
//	    return value
//
// See: https://en.wikipedia.org/wiki/Minimax.
type Minimax struct {
	Eval eval.Evaluator
}

func (m Minimax) Search(ctx context.Context, st *State, pos *board.Position, depth int, alpha, beta eval.Score) (uint64, eval.Score, []board.Move, error) {
	run := &runMinimax{eval: m.Eval}
	score, moves := run.search(ctx, pos, depth)
	if contextx.IsCancelled(ctx) {
		return run.nodes, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runMinimax struct {
	eval  eval.Evaluator
	nodes uint64
}

func (r *runMinimax) search(ctx context.Context, pos *board.Position, depth int) (eval.Score, []board.Move) {
	r.nodes++

	if contextx.IsCancelled(ctx) {
		return eval.ZeroScore, nil
	}
	if winner, ok := pos.IsTerminal(); ok {
		if winner == pos.SideToMove() {
			return eval.MateForDepth(depth), nil
		}
		return -eval.MateForDepth(depth), nil
	}
	if depth == 0 {
		return r.eval.Evaluate(ctx, pos, depth), nil
	}

	best := eval.NegInfScore
	var pv []board.Move

	for _, m := range pos.PseudoLegalMoves() {
		child := pos.Copy()
		child.ApplyMove(m)

		score, rem := r.search(ctx, child, depth-1)
		score = score.Negate()

		if score > best {
			best = score
			pv = append([]board.Move{m}, rem...)
		}
	}

	return best, pv
}
