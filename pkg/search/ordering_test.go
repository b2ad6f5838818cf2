package search_test

import (
	"testing"

	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMoves_HashMoveFirst(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.NewSquare(board.FileD, board.Rank4), Side: board.Red, Kind: board.TowerPiece, Height: 3},
	}, true)
	require.NoError(t, err)

	moves := pos.PseudoLegalMoves()
	require.NotEmpty(t, moves)
	hashMove := moves[len(moves)-1] // an arbitrary non-first move

	st := newState()
	list := search.OrderMoves(pos, moves, st, 0, board.Move{}, hashMove)

	first, ok := list.Next()
	require.True(t, ok)
	assert.True(t, first.Equals(hashMove))
}

func TestOrderMoves_CaptureBeforeQuiet(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.NewSquare(board.FileD, board.Rank4), Side: board.Red, Kind: board.TowerPiece, Height: 3},
		{Square: board.NewSquare(board.FileD, board.Rank6), Side: board.Blue, Kind: board.TowerPiece, Height: 2},
	}, true)
	require.NoError(t, err)

	moves := pos.PseudoLegalMoves()
	st := newState()
	list := search.OrderMoves(pos, moves, st, 0, board.Move{}, board.Move{})

	first, ok := list.Next()
	require.True(t, ok)
	assert.Equal(t, board.NewSquare(board.FileD, board.Rank6), first.To, "the capture must be ordered ahead of quiet moves")
}

func TestOrderMoves_PVBeatsKiller(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.NewSquare(board.FileD, board.Rank4), Side: board.Red, Kind: board.TowerPiece, Height: 1},
	}, true)
	require.NoError(t, err)

	moves := pos.PseudoLegalMoves()
	require.Len(t, moves, 4)

	st := newState()
	st.RecordKiller(0, moves[1])
	pv := moves[2]

	list := search.OrderMoves(pos, moves, st, 0, pv, board.Move{})
	first, ok := list.Next()
	require.True(t, ok)
	assert.True(t, first.Equals(pv), "the carried-over PV move should outrank a killer")
}

func TestOrderMoves_ExposedGuardMoveSinksToBottom(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.NewSquare(board.FileD, board.Rank4), Side: board.Red, Kind: board.GuardPiece},
		{Square: board.NewSquare(board.FileD, board.Rank6), Side: board.Blue, Kind: board.TowerPiece, Height: 2},
	}, true)
	require.NoError(t, err)

	moves := pos.PseudoLegalMoves()
	require.NotEmpty(t, moves)

	st := newState()
	list := search.OrderMoves(pos, moves, st, 0, board.Move{}, board.Move{})

	var ordered []board.Move
	for {
		m, ok := list.Next()
		if !ok {
			break
		}
		ordered = append(ordered, m)
	}
	require.NotEmpty(t, ordered)

	last := ordered[len(ordered)-1]
	assert.Equal(t, board.NewSquare(board.FileD, board.Rank5), last.To,
		"stepping onto D5 walks into the blue tower's ray and should sink to the bottom")
}

func TestOrderMoves_KillerBeatsHistory(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.NewSquare(board.FileD, board.Rank4), Side: board.Red, Kind: board.TowerPiece, Height: 1},
	}, true)
	require.NoError(t, err)

	moves := pos.PseudoLegalMoves()
	require.Len(t, moves, 4)

	st := newState()
	killer := moves[2]
	st.RecordKiller(0, killer)
	st.RecordHistory(board.Red, moves[0], 5) // some history weight, but less than a killer

	list := search.OrderMoves(pos, moves, st, 0, board.Move{}, board.Move{})
	first, ok := list.Next()
	require.True(t, ok)
	assert.True(t, first.Equals(killer))
}
