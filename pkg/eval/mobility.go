package eval

import "github.com/towerguard/engine/pkg/board"

// Mobility rewards having more pseudo-legal destinations than the opponent: a side with more
// options has more tactical resources and fewer forced lines.
type Mobility struct{}

func (Mobility) Evaluate(pos *board.Position) Score {
	red := len(pos.PseudoLegalMovesForSide(board.Red))
	blue := len(pos.PseudoLegalMovesForSide(board.Blue))
	return Score(red - blue)
}
