package board_test

import (
	"testing"

	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPseudoLegalMoves_GuardOneStepOrthogonal(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: d(board.FileD, board.Rank4), Side: board.Red, Kind: board.GuardPiece},
	}, true)
	require.NoError(t, err)

	moves := pos.PseudoLegalMoves()
	assert.Len(t, moves, 4, "an unobstructed guard in the center has exactly 4 destinations")
	for _, m := range moves {
		assert.EqualValues(t, 1, m.Amount)
	}
}

func TestPseudoLegalMoves_GuardCannotStepOnOwnTower(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: d(board.FileD, board.Rank4), Side: board.Red, Kind: board.GuardPiece},
		{Square: d(board.FileD, board.Rank5), Side: board.Red, Kind: board.TowerPiece, Height: 1},
	}, true)
	require.NoError(t, err)

	for _, m := range pos.PseudoLegalMoves() {
		assert.NotEqual(t, d(board.FileD, board.Rank5), m.To)
	}
}

func TestPseudoLegalMoves_GuardCannotCaptureEnemyTower(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: d(board.FileD, board.Rank4), Side: board.Red, Kind: board.GuardPiece},
		{Square: d(board.FileD, board.Rank5), Side: board.Blue, Kind: board.TowerPiece, Height: 1},
	}, true)
	require.NoError(t, err)

	for _, m := range pos.PseudoLegalMoves() {
		assert.NotEqual(t, d(board.FileD, board.Rank5), m.To)
	}
}

func TestPseudoLegalMoves_GuardCapturesEnemyGuard(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: d(board.FileD, board.Rank4), Side: board.Red, Kind: board.GuardPiece},
		{Square: d(board.FileD, board.Rank5), Side: board.Blue, Kind: board.GuardPiece},
	}, true)
	require.NoError(t, err)

	var found bool
	for _, m := range pos.PseudoLegalMoves() {
		if m.To == d(board.FileD, board.Rank5) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPseudoLegalMoves_TowerRayWalk(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: d(board.FileD, board.Rank4), Side: board.Red, Kind: board.TowerPiece, Height: 3},
	}, true)
	require.NoError(t, err)

	moves := pos.PseudoLegalMoves()
	// Each of the 4 directions offers amounts 1, 2, 3 (board is wide open), so 12 moves.
	assert.Len(t, moves, 12)
}

func TestPseudoLegalMoves_TowerBlockedByAnyPiece(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: d(board.FileD, board.Rank4), Side: board.Red, Kind: board.TowerPiece, Height: 3},
		{Square: d(board.FileD, board.Rank5), Side: board.Blue, Kind: board.TowerPiece, Height: 5},
	}, true)
	require.NoError(t, err)

	for _, m := range pos.PseudoLegalMoves() {
		if m.From == d(board.FileD, board.Rank4) {
			assert.NotEqual(t, d(board.FileD, board.Rank6), m.To, "a tower two ranks further cannot be reached; the one at rank5 blocks the ray")
		}
	}
}

func TestPseudoLegalMoves_TowerCannotCaptureTallerStack(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: d(board.FileD, board.Rank4), Side: board.Red, Kind: board.TowerPiece, Height: 2},
		{Square: d(board.FileD, board.Rank5), Side: board.Blue, Kind: board.TowerPiece, Height: 3},
	}, true)
	require.NoError(t, err)

	for _, m := range pos.PseudoLegalMoves() {
		assert.NotEqual(t, d(board.FileD, board.Rank5), m.To, "amount (<=2) never reaches victim height 3")
	}
}

func TestPseudoLegalMoves_TowerCapturesGuardAtAnyAmount(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: d(board.FileD, board.Rank4), Side: board.Red, Kind: board.TowerPiece, Height: 1},
		{Square: d(board.FileD, board.Rank5), Side: board.Blue, Kind: board.GuardPiece},
	}, true)
	require.NoError(t, err)

	var found bool
	for _, m := range pos.PseudoLegalMoves() {
		if m.To == d(board.FileD, board.Rank5) {
			found = true
		}
	}
	assert.True(t, found, "any amount >= 1 captures a guard, regardless of stack height convention")
}

func TestIsGuardInDanger(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: d(board.FileD, board.Rank4), Side: board.Red, Kind: board.GuardPiece},
		{Square: d(board.FileD, board.Rank5), Side: board.Blue, Kind: board.TowerPiece, Height: 1},
	}, true)
	require.NoError(t, err)

	assert.True(t, pos.IsGuardInDanger(board.Red))
	assert.False(t, pos.IsGuardInDanger(board.Blue))
}

func TestPseudoLegalMoves_InitialPositionIsSymmetric(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	red := len(pos.PseudoLegalMovesForSide(board.Red))
	blue := len(pos.PseudoLegalMovesForSide(board.Blue))
	assert.Equal(t, red, blue, "the starting position is mirror-symmetric across sides")
	assert.NotZero(t, red)
}
