package eval

import "github.com/towerguard/engine/pkg/board"

// FindThreats returns the subset of side's pseudo-legal moves that capture an opponent
// piece, analogous to the source material's FindCapture (which instead scans, per target
// square, which attackers land on it). Scanning outward from the attacker is simpler here:
// the board is small and move generation is already cheap.
func FindThreats(pos *board.Position, side board.Side) []board.Move {
	var ret []board.Move
	for _, m := range pos.PseudoLegalMovesForSide(side) {
		if _, _, _, ok := pos.Occupant(m.To); ok {
			ret = append(ret, m)
		}
	}
	return ret
}

// ThreatValue returns the nominal value of whatever m would capture, zero if m is not a
// capture.
func ThreatValue(pos *board.Position, m board.Move) Score {
	_, kind, height, ok := pos.Occupant(m.To)
	if !ok {
		return 0
	}
	if kind == board.GuardPiece {
		return GuardValue
	}
	return TowerValue(height)
}

// Threat rewards each side for the total value of the captures it currently threatens,
// favoring the side with the bigger tactical bite on the board.
type Threat struct{}

func (Threat) Evaluate(pos *board.Position) Score {
	var s Score
	for _, m := range FindThreats(pos, board.Red) {
		s += ThreatValue(pos, m)
	}
	for _, m := range FindThreats(pos, board.Blue) {
		s -= ThreatValue(pos, m)
	}
	return s
}
