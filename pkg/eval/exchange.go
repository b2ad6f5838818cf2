package eval

import (
	"sort"

	"github.com/towerguard/engine/pkg/board"
)

// StaticExchangeValue estimates the net material the side to move nets by completing the
// capture sequence on m.To, simulating the alternating recapture swap-off the way a human
// reads a pile-up on one square: cheapest attacker first, until a side has no attacker left
// or would only make the exchange worse by continuing. Grounded on the source material's
// FindCapture/SortByNominalValue building blocks (a "who attacks this square" scan, sorted
// by nominal value) and cmd/bernstein's IsMoveSafe/IsSafe, which apply the same idea in a
// single-ply "is this square safe" form -- this extends it to the full swap-off list. Like
// the source material's own exchange.go ("unclear to what extent SEE is performed... keep it
// simple"), attacker lists are computed once on the post-move position and not updated for
// attackers revealed behind a removed one, or for a defender's required amount changing as
// the stack on m.To grows through the exchange.
func StaticExchangeValue(pos *board.Position, m board.Move) Score {
	mover := pos.SideToMove()
	opp := mover.Opponent()
	to := m.To

	trial := pos.Copy()
	trial.ApplyMove(m)

	moverAttackers := sortedAttackerValues(trial, mover, to)
	oppAttackers := sortedAttackerValues(trial, opp, to)

	gain := []Score{ThreatValue(pos, m)}
	attackerVal := valueOf(trial, to) // the piece that just moved, now sitting on `to`
	side := opp                         // opp recaptures next in the exchange, if able

	for {
		var list *[]Score
		if side == opp {
			list = &oppAttackers
		} else {
			list = &moverAttackers
		}
		if len(*list) == 0 {
			break
		}
		next := (*list)[0]
		*list = (*list)[1:]

		d := len(gain)
		gain = append(gain, attackerVal-gain[d-1])
		if Max(-gain[d-1], gain[d]) < 0 {
			break // side would not choose to recapture here: already a net loss for them
		}

		attackerVal = next
		side = side.Opponent()
	}

	for d := len(gain) - 1; d > 0; d-- {
		gain[d-1] = -Max(-gain[d-1], gain[d])
	}
	return gain[0]
}

// sortedAttackerValues returns, ascending, the nominal value of every side piece that can
// legally land on sq in one pseudo-legal move -- the attacker list the swap algorithm
// consumes cheapest-first.
func sortedAttackerValues(pos *board.Position, side board.Side, sq board.Square) []Score {
	var vals []Score
	for _, m := range pos.PseudoLegalMovesForSide(side) {
		if m.To == sq {
			vals = append(vals, valueOf(pos, m.From))
		}
	}
	sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
	return vals
}

// valueOf returns the nominal value of whatever occupies sq, zero if empty.
func valueOf(pos *board.Position, sq board.Square) Score {
	_, kind, height, ok := pos.Occupant(sq)
	if !ok {
		return 0
	}
	if kind == board.GuardPiece {
		return GuardValue
	}
	return TowerValue(height)
}
