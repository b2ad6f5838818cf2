package eval

import "github.com/towerguard/engine/pkg/board"

// GuardValue is the nominal value of a guard, which cannot be stacked or exchanged but whose
// loss ends the game outright -- given an arbitrarily large value, the same way the source
// material prices a king at 100 pawns.
const GuardValue Score = 20

// Material returns the tower-height and guard-count material balance, from Red's
// perspective. A tower's value equals its height, so a stack is worth exactly as much as the
// separate shorter towers of the same total height.
type Material struct{}

func (Material) Evaluate(pos *board.Position) Score {
	var s Score
	for _, sq := range pos.Towers[board.Red].Squares() {
		s += TowerValue(pos.Heights[board.Red][sq])
	}
	for _, sq := range pos.Towers[board.Blue].Squares() {
		s -= TowerValue(pos.Heights[board.Blue][sq])
	}
	if pos.Guard[board.Red] != board.EmptyBitboard {
		s += GuardValue
	}
	if pos.Guard[board.Blue] != board.EmptyBitboard {
		s -= GuardValue
	}
	return s
}

// TowerValue returns the nominal value of a single tower of the given height.
func TowerValue(height uint8) Score {
	return Score(height)
}
