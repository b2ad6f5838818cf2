package board

// PseudoLegalMoves enumerates all pseudo-legal moves for the side to move. The generator
// does no legality pruning against leaving one's own guard capturable -- that is the
// caller's problem (search and evaluation handle it, see pkg/eval).
func (p *Position) PseudoLegalMoves() []Move {
	return p.PseudoLegalMovesForSide(p.SideToMove())
}

// PseudoLegalMovesForSide enumerates all pseudo-legal moves for side, regardless of whose
// turn it actually is. Used by attack/threat detection (CanReach) in addition to the main
// generator entry point above.
func (p *Position) PseudoLegalMovesForSide(side Side) []Move {
	var moves []Move

	if sq, ok := p.GuardSquare(side); ok {
		moves = p.appendGuardMoves(moves, side, sq)
	}
	for _, from := range p.Towers[side].Squares() {
		moves = p.appendTowerMoves(moves, side, from, p.Heights[side][from])
	}
	return moves
}

func (p *Position) appendGuardMoves(moves []Move, side Side, from Square) []Move {
	for _, dir := range Directions {
		dest, onboard := Step(from, dir, 1)
		if !onboard {
			continue
		}
		occSide, kind, _, occ := p.Occupant(dest)
		switch {
		case !occ:
			moves = append(moves, Move{From: from, To: dest, Amount: 1})
		case occSide != side && kind == GuardPiece:
			moves = append(moves, Move{From: from, To: dest, Amount: 1})
		default:
			// Own tower/guard, or an enemy tower: guards may not step there.
		}
	}
	return moves
}

func (p *Position) appendTowerMoves(moves []Move, side Side, from Square, height uint8) []Move {
	for _, dir := range Directions {
		for amount := 1; amount <= int(height); amount++ {
			dest, onboard := Step(from, dir, amount)
			if !onboard {
				break // off board or edge-wrapped: nothing further in this direction either
			}

			occSide, kind, victimHeight, occ := p.Occupant(dest)
			if !occ {
				moves = append(moves, Move{From: from, To: dest, Amount: uint8(amount)})
				continue // empty: keep walking further in this direction
			}

			// The destination is occupied: this is as far as this direction can reach,
			// whether or not landing here is itself legal.
			if occSide == side {
				if kind == TowerPiece && victimHeight+uint8(amount) <= 7 {
					moves = append(moves, Move{From: from, To: dest, Amount: uint8(amount)}) // stack
				}
			} else {
				if kind == GuardPiece {
					moves = append(moves, Move{From: from, To: dest, Amount: uint8(amount)}) // guard capture
				} else if uint8(amount) >= victimHeight {
					moves = append(moves, Move{From: from, To: dest, Amount: uint8(amount)}) // tower capture
				}
			}
			break
		}
	}
	return moves
}

// CanReach reports whether side has a pseudo-legal move landing on sq. Used to detect
// guard danger (is the opponent able to capture my guard next move?) and to select
// tactical moves in quiescence search.
func (p *Position) CanReach(side Side, sq Square) bool {
	for _, m := range p.PseudoLegalMovesForSide(side) {
		if m.To == sq {
			return true
		}
	}
	return false
}

// IsGuardInDanger reports whether side's guard is currently capturable by the opponent
// in one move.
func (p *Position) IsGuardInDanger(side Side) bool {
	sq, ok := p.GuardSquare(side)
	if !ok {
		return false
	}
	return p.CanReach(side.Opponent(), sq)
}
