package search

import (
	"container/heap"
	"fmt"

	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/eval"
)

// Priority is a move ordering weight: higher values are tried first.
type Priority int32

const (
	hashMoveBonus     Priority = 1_000_000
	captureBase       Priority = 100_000
	pvBonus           Priority = 75_000
	killerBonus       Priority = 50_000
	secondKillerBonus Priority = 49_000

	// exposedGuardPenalty is subtracted from a quiet guard move that leaves the mover's own
	// guard capturable in reply, sinking it beneath every other quiet move instead of merely
	// de-prioritizing it -- a guard left hanging is rarely worth considering once something
	// better is on the list.
	exposedGuardPenalty Priority = 1_000_000
)

// MoveList is a move priority queue, backed by a binary heap so the highest-priority move
// is always popped next without a full upfront sort.
type MoveList struct {
	h moveHeap
}

// NewMoveList builds a priority queue over moves, scored by fn.
func NewMoveList(moves []board.Move, fn func(board.Move) Priority) *MoveList {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(m)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next pops the highest-priority remaining move.
func (ml *MoveList) Next() (board.Move, bool) {
	if ml.h.Len() == 0 {
		return board.Move{}, false
	}
	e := heap.Pop(&ml.h).(elm)
	return e.m, true
}

func (ml *MoveList) Len() int {
	return ml.h.Len()
}

func (ml *MoveList) String() string {
	if ml.h.Len() == 0 {
		return "[size=0]"
	}
	return fmt.Sprintf("[top=%v, size=%d]", ml.h[0].m, ml.h.Len())
}

type elm struct {
	m   board.Move
	val Priority
}

type moveHeap []elm

func (h moveHeap) Len() int            { return len(h) }
func (h moveHeap) Less(i, j int) bool  { return h[i].val > h[j].val }
func (h moveHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *moveHeap) Push(x interface{}) { *h = append(*h, x.(elm)) }
func (h *moveHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// OrderMoves builds a priority queue of moves for pos's side to move, in the tier order
// described by the engine's move ordering policy: hash move first, then MVV-LVA captures,
// then the principal-variation move carried over from the previous iterative-deepening
// iteration at this ply, then killer moves recorded at ply, then the history heuristic, with
// a small positional tie-break last. A quiet guard move that would leave the mover's own guard
// capturable in reply is penalized beneath the rest of that tail, regardless of its other
// merits.
func OrderMoves(pos *board.Position, moves []board.Move, st *State, ply int, pv, hashMove board.Move) *MoveList {
	side := pos.SideToMove()
	killers := st.Killers(ply)

	return NewMoveList(moves, func(m board.Move) Priority {
		if !hashMove.IsZero() && m.Equals(hashMove) {
			return hashMoveBonus
		}
		if p := mvvlva(pos, m); p > 0 {
			return captureBase + p
		}
		if !pv.IsZero() && m.Equals(pv) {
			return pvBonus
		}
		if killers[0].Equals(m) {
			return killerBonus
		}
		if killers[1].Equals(m) {
			return secondKillerBonus
		}

		p := Priority(st.HistoryScore(side, m)) + Priority(centralityTieBreak(m))
		if exposesOwnGuard(pos, m, side) {
			p -= exposedGuardPenalty
		}
		return p
	})
}

// exposesOwnGuard reports whether m moves side's own guard to a square from which the
// opponent could capture it in reply.
func exposesOwnGuard(pos *board.Position, m board.Move, side board.Side) bool {
	occSide, kind, _, ok := pos.Occupant(m.From)
	if !ok || kind != board.GuardPiece || occSide != side {
		return false
	}

	child := pos.Copy()
	child.ApplyMove(m)
	return child.IsGuardInDanger(side)
}

// isQuiet reports whether m is not a capture in pos -- only quiet moves are recorded as
// killers or credited to the history heuristic (§4.5 items 4-5); a capture already orders
// itself ahead of the quiet tail via MVV-LVA, so crediting it again would double up.
func isQuiet(pos *board.Position, m board.Move) bool {
	_, _, _, ok := pos.Occupant(m.To)
	return !ok
}

// mvvlva scores a capturing move by "most valuable victim, least valuable attacker": prefer
// capturing the highest-value piece with the lowest-value one, matching the source
// material's MVVLVA heuristic (there ported from board.Move.Piece/Capture fields, which this
// domain computes by inspecting the destination and source occupant directly instead).
func mvvlva(pos *board.Position, m board.Move) Priority {
	_, victimKind, victimHeight, ok := pos.Occupant(m.To)
	if !ok {
		return 0
	}

	victim := eval.TowerValue(victimHeight)
	if victimKind == board.GuardPiece {
		victim = eval.GuardValue
	}

	_, attackerKind, attackerHeight, ok := pos.Occupant(m.From)
	attacker := eval.TowerValue(attackerHeight)
	if ok && attackerKind == board.GuardPiece {
		attacker = eval.GuardValue
	}

	return Priority(100*victim - attacker)
}

// centralityTieBreak nudges ties towards moves that land closer to the center of the board.
func centralityTieBreak(m board.Move) int {
	df := int(m.To.File()) - 3
	if df < 0 {
		df = -df
	}
	dr := int(m.To.Rank()) - 3
	if dr < 0 {
		dr = -dr
	}
	dist := df
	if dr > dist {
		dist = dr
	}
	return 3 - dist
}
