package eval

import "github.com/towerguard/engine/pkg/board"

// maxAdvancement is the largest possible rank distance a guard can be from its target, used
// to turn distance into a "closer is better" score.
const maxAdvancement = board.NumRanks - 1

// Advancement rewards each guard for being close to the square it needs to reach to win: the
// opponent's target square on the opponent's home rank. Distance is measured in ranks only,
// since a guard's target is always on file D but the straight-line file distance matters far
// less than closing the rank gap.
type Advancement struct{}

func (Advancement) Evaluate(pos *board.Position) Score {
	var s Score
	if sq, ok := pos.GuardSquare(board.Red); ok {
		s += Score(maxAdvancement - rankDistance(sq, board.BlueTarget))
	}
	if sq, ok := pos.GuardSquare(board.Blue); ok {
		s -= Score(maxAdvancement - rankDistance(sq, board.RedTarget))
	}
	return s
}

func rankDistance(a, b board.Square) int {
	d := int(a.Rank()) - int(b.Rank())
	if d < 0 {
		d = -d
	}
	return d
}
