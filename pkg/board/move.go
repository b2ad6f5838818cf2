package board

import (
	"fmt"
	"strconv"
)

// Move represents a not-necessarily-legal move: move the piece on From by Amount squares
// towards To (From and To must be colinear and orthogonally adjacent-or-further apart by
// exactly Amount squares; a guard move always has Amount == 1). Moves are value objects
// with no back-reference to the position in which they are legal. 24 bits.
type Move struct {
	From, To Square
	Amount   uint8
}

// Equals reports structural equality.
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Amount == o.Amount
}

// IsZero reports whether m is the zero-value move, used as a "no move" sentinel.
func (m Move) IsZero() bool {
	return m.From == m.To && m.Amount == 0
}

// ParseMove parses a move in the notation "<FileLetter><Rank>-<FileLetter><Rank>-<Amount>",
// e.g. "D2-D3-1". Rejects off-board coordinates and non-orthogonal endpoints.
func ParseMove(str string) (Move, error) {
	var fFrom, rFrom, fTo, rTo rune
	var amountStr string

	n, err := fmt.Sscanf(str, "%c%c-%c%c-%s", &fFrom, &rFrom, &fTo, &rTo, &amountStr)
	if err != nil || n != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrIllegalMoveString, str)
	}

	from, err := ParseSquare(fFrom, rFrom)
	if err != nil {
		return Move{}, fmt.Errorf("%w: invalid from in %q: %v", ErrIllegalMoveString, str, err)
	}
	to, err := ParseSquare(fTo, rTo)
	if err != nil {
		return Move{}, fmt.Errorf("%w: invalid to in %q: %v", ErrIllegalMoveString, str, err)
	}
	amount, err := strconv.Atoi(amountStr)
	if err != nil || amount < 1 || amount > 7 {
		return Move{}, fmt.Errorf("%w: invalid amount in %q", ErrIllegalMoveString, str)
	}

	if from.File() != to.File() && from.Rank() != to.Rank() {
		return Move{}, fmt.Errorf("%w: non-orthogonal move %q", ErrIllegalMoveString, str)
	}

	return Move{From: from, To: to, Amount: uint8(amount)}, nil
}

func (m Move) String() string {
	return fmt.Sprintf("%v%v-%v%v-%d", m.From.File(), m.From.Rank(), m.To.File(), m.To.Rank(), m.Amount)
}
