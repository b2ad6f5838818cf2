// Package fen contains utilities for reading and writing guard-and-tower positions in a
// FEN-style notation.
package fen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/towerguard/engine/pkg/board"
)

// ErrInvalidFen is the sentinel wrapped by every parse failure returned from Decode.
var ErrInvalidFen = errors.New("invalid fen")

// Initial is the canonical starting position: a guard and four height-1 towers on each
// side's home rank, three more height-1 towers one rank in, and an empty no-man's-land
// in between.
const Initial = "b11b1BGb11b1/1b11b11b11/7/7/7/1r11r11r11/r11r1RGr11r1 r"

// Decode parses a FEN string into a Position, whose RedToMove field carries the side to move.
//
// Example:
//
//	"b11b1BGb11b1/1b11b11b11/7/7/7/1r11r11r11/r11r1RGr11r1 r"
func Decode(fen string) (*board.Position, error) {
	parts := strings.Fields(strings.TrimSpace(fen))
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: expected '<rows> <side>': %q", ErrInvalidFen, fen)
	}

	rows := strings.Split(parts[0], "/")
	if len(rows) != board.NumRanks {
		return nil, fmt.Errorf("%w: expected %d rows, got %d: %q", ErrInvalidFen, board.NumRanks, len(rows), fen)
	}

	side, ok := board.ParseSide([]rune(parts[1])[0])
	if len(parts[1]) != 1 || !ok {
		return nil, fmt.Errorf("%w: invalid side to move: %q", ErrInvalidFen, fen)
	}

	var pieces []board.Placement
	for i, row := range rows {
		rank := board.Rank(board.NumRanks - 1 - i)

		placed, err := decodeRow(row, rank)
		if err != nil {
			return nil, fmt.Errorf("%w: %v: %q", ErrInvalidFen, err, fen)
		}
		pieces = append(pieces, placed...)
	}

	pos, err := board.NewPosition(pieces, side == board.Red)
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %q", ErrInvalidFen, err, fen)
	}
	return pos, nil
}

func decodeRow(row string, rank board.Rank) ([]board.Placement, error) {
	var ret []board.Placement

	file := board.File(0)
	runes := []rune(row)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsDigit(r):
			n := int(r - '0')
			if n < 1 || n > board.NumFiles {
				return nil, fmt.Errorf("invalid run length %q", r)
			}
			file += board.File(n)

		case r == 'R' || r == 'B':
			if i+1 >= len(runes) || runes[i+1] != 'G' {
				return nil, fmt.Errorf("invalid guard token at %q", row)
			}
			side := board.Red
			if r == 'B' {
				side = board.Blue
			}
			if !board.File(file).IsValid() {
				return nil, fmt.Errorf("row too wide: %q", row)
			}
			ret = append(ret, board.Placement{
				Square: board.NewSquare(file, rank),
				Side:   side,
				Kind:   board.GuardPiece,
			})
			file++
			i++ // consume the 'G'

		case r == 'r' || r == 'b':
			side := board.Red
			if r == 'b' {
				side = board.Blue
			}
			height := uint8(1)
			if i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
				h, err := strconv.Atoi(string(runes[i+1]))
				if err != nil || h < 1 || h > 7 {
					return nil, fmt.Errorf("invalid tower height at %q", row)
				}
				height = uint8(h)
				i++ // consume the height digit
			}
			if !board.File(file).IsValid() {
				return nil, fmt.Errorf("row too wide: %q", row)
			}
			ret = append(ret, board.Placement{
				Square: board.NewSquare(file, rank),
				Side:   side,
				Kind:   board.TowerPiece,
				Height: height,
			})
			file++

		default:
			return nil, fmt.Errorf("unexpected character %q in row %q", r, row)
		}
	}

	if int(file) != board.NumFiles {
		return nil, fmt.Errorf("row has %d squares, want %d: %q", file, board.NumFiles, row)
	}
	return ret, nil
}

// Encode renders a position and side to move back into FEN notation. Round-trips with
// Decode modulo spacing.
func Encode(pos *board.Position) string {
	var sb strings.Builder

	for i := 0; i < board.NumRanks; i++ {
		rank := board.Rank(board.NumRanks - 1 - i)

		blanks := 0
		for f := board.File(0); f < board.NumFiles; f++ {
			sq := board.NewSquare(f, rank)
			side, kind, height, ok := pos.Occupant(sq)
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(encodeOccupant(side, kind, height))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if i < board.NumRanks-1 {
			sb.WriteRune('/')
		}
	}

	sb.WriteRune(' ')
	if pos.RedToMove {
		sb.WriteRune('r')
	} else {
		sb.WriteRune('b')
	}
	return sb.String()
}

func encodeOccupant(side board.Side, kind board.PieceKind, height uint8) string {
	if kind == board.GuardPiece {
		if side == board.Red {
			return "RG"
		}
		return "BG"
	}
	letter := "r"
	if side == board.Blue {
		letter = "b"
	}
	return fmt.Sprintf("%v%d", letter, height)
}
