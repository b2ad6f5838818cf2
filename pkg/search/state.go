package search

import (
	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/eval"
)

const maxPly = 64

// Config holds the optional search-tree techniques a State's search routines consult. The
// zero value disables null-move pruning and late-move reductions and keeps the default
// quiescence cap; the one-ply extension for moves that threaten the enemy guard is applied
// by AlphaBeta and PVS regardless of Config.
type Config struct {
	// NullMovePruning enables a null-move-reduced probe before generating moves at interior
	// nodes deep and wide enough to trust it (see §4.7 extensions and reductions).
	NullMovePruning bool
	// LateMoveReductions shaves depth off quiet moves past lateMoveThreshold in the ordered
	// move list, re-searching at full depth if the reduced score exceeds alpha.
	LateMoveReductions bool
	// QuiescenceMaxDepth overrides quiescenceDepthCap when positive.
	QuiescenceMaxDepth int
}

// State holds the tables a single search run reads and writes as it recurses: the shared
// transposition table, killer and history move-ordering heuristics, and the previous
// iteration's principal variation. The Nodes field is not updated by the search routines in
// this package, which return their node counts instead. engine.Engine keeps one State across
// its searches, so killers and history carry over until ClearHistory is called.
type State struct {
	TT     *TranspositionTable
	Eval   eval.Evaluator
	Nodes  uint64
	Config Config

	// PV is the principal variation found by the previous iterative-deepening iteration,
	// indexed by ply: PV[ply] is that line's move at ply. A fresh iteration reads it for move
	// ordering (§4.5 tier 3) before overwriting it with its own, deeper line.
	PV []board.Move

	// killers[ply] holds up to 2 moves that caused a beta cutoff at that ply in a sibling
	// branch -- cheap to try first since they are often good again.
	killers [maxPly][2]board.Move

	// history[side][from][to] accumulates depth^2 for every quiet move that caused a cutoff,
	// regardless of ply. Used as a move-ordering tie-break once hash move, captures and
	// killers are exhausted.
	history [board.NumSides][board.NumSquares][board.NumSquares]int
}

// NewState creates search state around a shared transposition table and evaluator.
func NewState(tt *TranspositionTable, ev eval.Evaluator) *State {
	return &State{TT: tt, Eval: ev}
}

// PVMove returns the previous iteration's principal-variation move at ply, the zero Move if
// none was recorded that deep.
func (s *State) PVMove(ply int) board.Move {
	if ply < 0 || ply >= len(s.PV) {
		return board.Move{}
	}
	return s.PV[ply]
}

// RecordKiller records a cutoff move at ply, if not already the top killer there.
func (s *State) RecordKiller(ply int, m board.Move) {
	if ply < 0 || ply >= maxPly {
		return
	}
	if s.killers[ply][0].Equals(m) {
		return
	}
	s.killers[ply][1] = s.killers[ply][0]
	s.killers[ply][0] = m
}

// Killers returns the up-to-2 killer moves recorded at ply.
func (s *State) Killers(ply int) [2]board.Move {
	if ply < 0 || ply >= maxPly {
		return [2]board.Move{}
	}
	return s.killers[ply]
}

// RecordHistory credits a cutoff move for side, weighted by the remaining depth so that
// cutoffs found deep in the tree count for more.
func (s *State) RecordHistory(side board.Side, m board.Move, depth int) {
	s.history[side][m.From][m.To] += depth * depth
}

// HistoryScore returns the accumulated history weight for side playing m.
func (s *State) HistoryScore(side board.Side, m board.Move) int {
	return s.history[side][m.From][m.To]
}

// DecayHistory halves every history entry, so cutoffs from earlier iterative-deepening
// iterations (or earlier positions in a long-lived engine) gradually lose influence over move
// ordering instead of accumulating without bound. Called once per completed iteration by
// searchctl.Run.
func (s *State) DecayHistory() {
	for side := range s.history {
		for from := range s.history[side] {
			for to := range s.history[side][from] {
				s.history[side][from][to] /= 2
			}
		}
	}
}

// ClearHistory resets move-ordering heuristics between independent searches (killers are
// ply-indexed and naturally stale quickly, but history persists across a whole game by
// default, so callers that want a clean slate -- e.g. tests -- call this explicitly).
func (s *State) ClearHistory() {
	s.history = [board.NumSides][board.NumSquares][board.NumSquares]int{}
	s.killers = [maxPly][2]board.Move{}
	s.PV = nil
}
