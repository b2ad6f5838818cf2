package search_test

import (
	"context"
	"testing"

	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/board/fen"
	"github.com/towerguard/engine/pkg/eval"
	"github.com/towerguard/engine/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimax_PicksWinningGuardCapture(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.NewSquare(board.FileD, board.Rank4), Side: board.Red, Kind: board.TowerPiece, Height: 1},
		{Square: board.NewSquare(board.FileD, board.Rank5), Side: board.Blue, Kind: board.GuardPiece},
		{Square: board.NewSquare(board.FileA, board.Rank1), Side: board.Red, Kind: board.GuardPiece},
		{Square: board.NewSquare(board.FileG, board.Rank7), Side: board.Blue, Kind: board.TowerPiece, Height: 1},
	}, true)
	require.NoError(t, err)

	mm := search.Minimax{Eval: eval.NewWeighted(eval.DefaultWeights(), eval.Random{})}
	_, score, moves, err := mm.Search(context.Background(), newState(), pos, 2, eval.NegInfScore, eval.InfScore)
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	assert.True(t, score.IsMate())
	assert.Equal(t, board.NewSquare(board.FileD, board.Rank5), moves[0].To)
}

func TestMinimax_DepthZeroReturnsStaticEval(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	ev := eval.NewWeighted(eval.DefaultWeights(), eval.Random{})
	mm := search.Minimax{Eval: ev}

	_, score, moves, err := mm.Search(context.Background(), newState(), pos, 0, eval.NegInfScore, eval.InfScore)
	require.NoError(t, err)
	assert.Empty(t, moves)
	assert.Equal(t, ev.Evaluate(context.Background(), pos, 0), score)
}
