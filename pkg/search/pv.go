// Package search contains adversarial search algorithms for guards-and-towers positions:
// minimax (as an oracle), alpha-beta, principal variation search, and quiescence search,
// plus the transposition table and move ordering machinery they share.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/eval"
)

// ErrHalted indicates a search was cancelled via context before it completed.
var ErrHalted = errors.New("search halted")

// PV is the principal variation found at a given search depth.
type PV struct {
	Depth int
	Moves []board.Move
	Score eval.Score
	Nodes uint64
	Time  time.Duration
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%d score=%v nodes=%d time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, p.Moves)
}

// BestMove returns the first move of the principal variation, if any.
func (p PV) BestMove() (board.Move, bool) {
	if len(p.Moves) == 0 {
		return board.Move{}, false
	}
	return p.Moves[0], true
}

// Search is a fixed-depth search algorithm: given a position and a state to read/write
// shared tables from, it returns the node count, score and principal variation found.
type Search interface {
	Search(ctx context.Context, st *State, pos *board.Position, depth int, alpha, beta eval.Score) (uint64, eval.Score, []board.Move, error)
}

// Strategy selects which Search implementation an engine.Engine's root search uses.
type Strategy uint8

const (
	// StrategyPVS uses principal variation search (the engine's default: a null-window
	// search for all but the first move at a node, re-searched with the full window only if
	// it fails high).
	StrategyPVS Strategy = iota
	// StrategyAlphaBeta uses plain alpha-beta, searching every move with the full window.
	// Slower than PVS in practice but a simpler baseline for comparison.
	StrategyAlphaBeta
)

func (s Strategy) String() string {
	switch s {
	case StrategyPVS:
		return "pvs"
	case StrategyAlphaBeta:
		return "alphabeta"
	default:
		return "?"
	}
}

// Root builds the Search implementation s names.
func (s Strategy) Root() Search {
	switch s {
	case StrategyAlphaBeta:
		return AlphaBeta{}
	default:
		return PVS{}
	}
}
