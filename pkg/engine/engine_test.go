package engine_test

import (
	"context"
	"testing"

	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/engine"
	"github.com/towerguard/engine/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_NewStartsAtInitialPosition(t *testing.T) {
	e := engine.New(context.Background())
	assert.Equal(t, "b11b1BGb11b1/1b11b11b11/7/7/7/1r11r11r11/r11r1RGr11r1 r", e.Position())
}

func TestEngine_MoveAndTakeBack(t *testing.T) {
	e := engine.New(context.Background())
	before := e.Position()

	require.NoError(t, e.Move(context.Background(), "D2-D3-1"))
	assert.NotEqual(t, before, e.Position())

	require.NoError(t, e.TakeBack(context.Background()))
	assert.Equal(t, before, e.Position())
}

func TestEngine_MoveRejectsIllegalMove(t *testing.T) {
	e := engine.New(context.Background())
	err := e.Move(context.Background(), "D2-D6-1")
	assert.Error(t, err)
}

func TestEngine_TakeBackWithoutHistoryErrors(t *testing.T) {
	e := engine.New(context.Background())
	assert.Error(t, e.TakeBack(context.Background()))
}

func TestEngine_BestMoveFindsForcedGuardCapture(t *testing.T) {
	e := engine.New(context.Background(), engine.WithOptions(engine.Options{Depth: 4, Hash: 4}))

	require.NoError(t, e.Reset(context.Background(), "7/7/3BG3/3r13/3RG3/7/7 r"))

	pv, err := e.BestMove(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, pv.Moves)

	assert.Equal(t, board.NewSquare(board.FileD, board.Rank4), pv.Moves[0].From)
	assert.Equal(t, board.NewSquare(board.FileD, board.Rank5), pv.Moves[0].To)
	assert.True(t, pv.Score.IsMate())
}

func TestEngine_BestMoveWithDepthOverridesDefault(t *testing.T) {
	e := engine.New(context.Background(), engine.WithOptions(engine.Options{Depth: 6, Hash: 4}))

	pv, err := e.BestMoveWithDepth(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, pv.Depth)
}

func TestEngine_BestMoveWithOptionalTechniquesAgreesWithPlainSearch(t *testing.T) {
	const fen = "7/7/3BG3/3r13/3RG3/7/7 r"

	plain := engine.New(context.Background(), engine.WithOptions(engine.Options{Depth: 4, Hash: 4}))
	require.NoError(t, plain.Reset(context.Background(), fen))
	want, err := plain.BestMove(context.Background())
	require.NoError(t, err)

	tuned := engine.New(context.Background(), engine.WithOptions(engine.Options{
		Depth:              4,
		Hash:               4,
		Strategy:           search.StrategyAlphaBeta,
		AspirationWindows:  true,
		NullMovePruning:    true,
		LateMoveReductions: true,
	}))
	require.NoError(t, tuned.Reset(context.Background(), fen))
	got, err := tuned.BestMove(context.Background())
	require.NoError(t, err)

	assert.Equal(t, want.Moves[0], got.Moves[0], "the forced capture should be found regardless of which optional techniques are enabled")
	assert.True(t, got.Score.IsMate())
}

func TestEngine_SetTTCapacitySizesTableExactly(t *testing.T) {
	e := engine.New(context.Background(), engine.WithOptions(engine.Options{Depth: 2, Hash: 4}))
	e.SetTTCapacity(1024)

	assert.Equal(t, uint64(1024*32), e.Statistics().TableSizeBytes)
}

func TestEngine_SetStrategySwitchesRootAlgorithm(t *testing.T) {
	e := engine.New(context.Background(), engine.WithOptions(engine.Options{Depth: 3, Hash: 4}))
	e.SetStrategy(search.StrategyAlphaBeta)
	assert.Equal(t, search.StrategyAlphaBeta, e.Options().Strategy)

	pv, err := e.BestMove(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, pv.Moves)
}

func TestEngine_ClearTablesResetsUtilization(t *testing.T) {
	e := engine.New(context.Background(), engine.WithOptions(engine.Options{Depth: 3, Hash: 4}))

	_, err := e.BestMove(context.Background())
	require.NoError(t, err)
	assert.True(t, e.Statistics().TableUsed > 0)

	e.ClearTables()
	assert.Zero(t, e.Statistics().TableUsed)
}
