package eval

import "github.com/towerguard/engine/pkg/board"

// Safety penalizes a side whose guard is currently capturable by the opponent: losing the
// guard ends the game immediately, so a guard in danger outweighs nearly everything else on
// the board short of an outright win.
type Safety struct{}

func (Safety) Evaluate(pos *board.Position) Score {
	var s Score
	if pos.IsGuardInDanger(board.Red) {
		s -= GuardValue
	}
	if pos.IsGuardInDanger(board.Blue) {
		s += GuardValue
	}
	return s
}

// MateNet reports whether side's guard is currently attacked and has no move that escapes
// capture: every destination square the guard could step to is itself attacked (or blocked),
// so the guard's loss is forced regardless of whose turn it nominally is. Only the guard's
// own moves are considered an "escape", matching the source material's narrower "no safe
// escape square" framing rather than a full search for a blocking or counter-capturing reply.
func MateNet(pos *board.Position, side board.Side) bool {
	if !pos.IsGuardInDanger(side) {
		return false
	}
	from, ok := pos.GuardSquare(side)
	if !ok {
		return false
	}

	for _, dir := range board.Directions {
		dest, onboard := board.Step(from, dir, 1)
		if !onboard {
			continue
		}
		occSide, kind, _, occ := pos.Occupant(dest)
		if occ && !(occSide != side && kind == board.GuardPiece) {
			continue // blocked by an own piece or an enemy tower: not a legal guard move
		}

		trial := pos.Copy()
		trial.Guard[side] = board.BitMask(dest)
		trial.Guard[side.Opponent()] &^= board.BitMask(dest)
		if !trial.IsGuardInDanger(side) {
			return false // this destination escapes capture
		}
	}
	return true
}
