package searchctl_test

import (
	"context"
	"testing"
	"time"

	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/board/fen"
	"github.com/towerguard/engine/pkg/eval"
	"github.com/towerguard/engine/pkg/search"
	"github.com/towerguard/engine/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_StopsAtDepthLimit(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	st := search.NewState(search.NewTranspositionTable(1<<20), eval.NewWeighted(eval.DefaultWeights(), eval.Random{}))
	opt := searchctl.Options{DepthLimit: lang.Some(uint(2))}

	pv, err := searchctl.Run(context.Background(), search.AlphaBeta{}, st, pos, opt)
	require.NoError(t, err)
	assert.Equal(t, 2, pv.Depth)
}

func TestRun_StopsOnForcedMate(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.NewSquare(board.FileD, board.Rank4), Side: board.Red, Kind: board.TowerPiece, Height: 1},
		{Square: board.NewSquare(board.FileD, board.Rank5), Side: board.Blue, Kind: board.GuardPiece},
		{Square: board.NewSquare(board.FileA, board.Rank1), Side: board.Red, Kind: board.GuardPiece},
		{Square: board.NewSquare(board.FileG, board.Rank7), Side: board.Blue, Kind: board.TowerPiece, Height: 1},
	}, true)
	require.NoError(t, err)

	st := search.NewState(search.NewTranspositionTable(1<<20), eval.NewWeighted(eval.DefaultWeights(), eval.Random{}))
	opt := searchctl.Options{DepthLimit: lang.Some(uint(10))}

	pv, err := searchctl.Run(context.Background(), search.AlphaBeta{}, st, pos, opt)
	require.NoError(t, err)
	assert.True(t, pv.Score.IsMate())
	assert.Less(t, pv.Depth, 10, "search should stop early once the forced capture is confirmed")
}

func TestRun_RespectsCancellation(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	st := search.NewState(search.NewTranspositionTable(1<<20), eval.NewWeighted(eval.DefaultWeights(), eval.Random{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pv, err := searchctl.Run(ctx, search.AlphaBeta{}, st, pos, searchctl.Options{})
	require.NoError(t, err)
	assert.Equal(t, search.PV{}, pv)
}

func TestBudget_ShouldContinue(t *testing.T) {
	b := searchctl.NewBudget(1 * time.Second)
	assert.True(t, b.ShouldContinue(10*time.Millisecond, 10*time.Millisecond))
	assert.False(t, b.ShouldContinue(990*time.Millisecond, 100*time.Millisecond))
}

func TestBudget_UnlimitedWhenZero(t *testing.T) {
	b := searchctl.NewBudget(0)
	assert.True(t, b.ShouldContinue(time.Hour, time.Hour))
}
