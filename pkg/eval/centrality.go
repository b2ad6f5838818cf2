package eval

import "github.com/towerguard/engine/pkg/board"

var center = board.NewSquare(board.FileD, board.Rank4)

// Centrality rewards towers for sitting closer to the center of the board, where a ray-walk
// piece commands the most squares in every direction. Guards are excluded: a guard's value
// lies in reaching the target rank, not in board control (see Advancement).
type Centrality struct{}

func (Centrality) Evaluate(pos *board.Position) Score {
	var s Score
	for _, sq := range pos.Towers[board.Red].Squares() {
		s += Score(centralityOf(sq))
	}
	for _, sq := range pos.Towers[board.Blue].Squares() {
		s -= Score(centralityOf(sq))
	}
	return s
}

// centralityOf returns a small bonus, larger for squares nearer the center.
func centralityOf(sq board.Square) int {
	df := int(sq.File()) - int(center.File())
	if df < 0 {
		df = -df
	}
	dr := int(sq.Rank()) - int(center.Rank())
	if dr < 0 {
		dr = -dr
	}
	dist := df
	if dr > dist {
		dist = dr
	}
	return 3 - dist // center: +3, corner: 0
}
