// Package engine exposes a synchronous, game-playing façade over pkg/search and pkg/eval:
// hold a position, find the best move for it, and apply moves as a game progresses.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/board/fen"
	"github.com/towerguard/engine/pkg/eval"
	"github.com/towerguard/engine/pkg/search"
	"github.com/towerguard/engine/pkg/search/searchctl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine creation and runtime options.
type Options struct {
	// Depth is the default search depth limit. Zero means no limit (bounded by Budget
	// instead, or left to run until a forced win is confirmed).
	Depth uint
	// Hash is the transposition table size in MB. Zero (with TTCapacity also zero) gives a
	// minimal 64KiB table rather than none. Ignored if TTCapacity is set.
	Hash uint
	// TTCapacity, if non-zero, sizes the transposition table to exactly this many entries
	// (rounded down to a power of two) instead of an approximate MB budget -- useful for
	// tests and benchmarks that want a reproducible, exact table size.
	TTCapacity uint64
	// Noise adds a small amount of randomness, in points, to leaf evaluations.
	Noise uint
	// Budget is the default per-move thinking time. Zero means no time limit.
	Budget lang.Optional[int64] // nanoseconds; avoids importing time into the Options literal surface
	// Strategy selects the root search algorithm (PVS by default).
	Strategy search.Strategy
	// AspirationWindows enables narrow-window re-searches around each iteration's previous
	// score during iterative deepening (§4.7).
	AspirationWindows bool
	// NullMovePruning enables the null-move reduction at interior nodes (§4.7).
	NullMovePruning bool
	// LateMoveReductions enables depth reduction of late quiet moves in the ordered move
	// list, with a full-depth re-search if the reduced score beats alpha (§4.7).
	LateMoveReductions bool
	// QuiescenceMaxDepth overrides the default quiescence recursion cap when non-zero.
	QuiescenceMaxDepth uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%d, hash=%dMB, noise=%d, strategy=%v}", o.Depth, o.Hash, o.Noise, o.Strategy)
}

// DefaultOptions returns the engine's out-of-the-box configuration: depth-6 PVS search, a
// 32MB transposition table, and every optional technique (aspiration windows, null-move
// pruning, late-move reductions) disabled.
func DefaultOptions() Options {
	return Options{Depth: 6, Hash: 32, Strategy: search.StrategyPVS}
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOptions sets the engine's default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithRoot overrides the search algorithm used for the main tree directly, bypassing
// Options.Strategy entirely (primarily for tests that want to exercise a specific Search
// implementation, e.g. a bare Minimax oracle, rather than the usual PVS/AlphaBeta choice).
func WithRoot(root search.Search) Option {
	return func(e *Engine) { e.root = root; e.rootOverridden = true }
}

// WithZobristSeed overrides the zobrist table's random seed (primarily for tests wanting a
// deterministic, distinct table from the package default).
func WithZobristSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// Engine holds a current position and finds moves for it via iterative-deepening search. Not
// safe for concurrent use from multiple goroutines at once, beyond the mutex serializing
// individual calls -- callers must not invoke BestMove and Move concurrently and expect them
// to apply to consistent positions.
type Engine struct {
	opts           Options
	root           search.Search
	rootOverridden bool
	seed           int64

	pos     *board.Position
	history []*board.Position // one entry per applied move, for TakeBack

	tt *search.TranspositionTable
	st *search.State
	mu sync.Mutex
}

// New creates an engine at the standard starting position.
func New(ctx context.Context, opts ...Option) *Engine {
	e := &Engine{
		opts: DefaultOptions(),
		root: search.PVS{},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.rebuildTables()
	if err := e.Reset(ctx, fen.Initial); err != nil {
		// fen.Initial is a package constant; a decode failure here is a programmer error.
		panic(fmt.Sprintf("engine: invalid initial position: %v", err))
	}

	logw.Infof(ctx, "initialized engine %v, options=%v", Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func Name() string {
	return fmt.Sprintf("guards-and-towers %v", version)
}

func (e *Engine) rebuildTables() {
	size := uint64(e.opts.Hash) << 20
	if e.opts.TTCapacity > 0 {
		size = e.opts.TTCapacity * 32 // entries -> approximate bytes, matching NewTranspositionTable's own accounting
	}
	if size == 0 {
		size = 1 << 16 // a minimal table rather than no table: simplifies Read/Write call sites
	}
	e.tt = search.NewTranspositionTable(size)

	var noise eval.Random
	if e.opts.Noise > 0 {
		noise = eval.NewRandom(int(e.opts.Noise), e.seed)
	}
	e.st = search.NewState(e.tt, eval.NewWeighted(eval.DefaultWeights(), noise))
	e.st.Config = search.Config{
		NullMovePruning:    e.opts.NullMovePruning,
		LateMoveReductions: e.opts.LateMoveReductions,
		QuiescenceMaxDepth: int(e.opts.QuiescenceMaxDepth),
	}

	if !e.rootOverridden {
		e.root = e.opts.Strategy.Root()
	}
}

// Options returns the engine's current runtime options.
func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

// SetDepth updates the default search depth limit.
func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

// SetHash resizes the transposition table. Discards all cached entries.
func (e *Engine) SetHash(sizeMB uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = sizeMB
	e.rebuildTables()
}

// SetNoise updates the evaluation noise amplitude, in points.
func (e *Engine) SetNoise(points uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = points
	e.rebuildTables()
}

// SetStrategy switches the root search algorithm (PVS or AlphaBeta), unless WithRoot was used
// at construction to pin a specific Search implementation, in which case this is a no-op.
func (e *Engine) SetStrategy(s search.Strategy) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Strategy = s
	if !e.rootOverridden {
		e.root = s.Root()
	}
}

// SetTTCapacity resizes the transposition table to exactly this many entries, overriding the
// MB-based Hash option. Discards all cached entries. Zero reverts to Hash-based sizing.
func (e *Engine) SetTTCapacity(entries uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.TTCapacity = entries
	e.rebuildTables()
}

// SetNullMovePruning toggles the null-move reduction.
func (e *Engine) SetNullMovePruning(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.NullMovePruning = on
	e.st.Config.NullMovePruning = on
}

// SetLateMoveReductions toggles late-move reductions.
func (e *Engine) SetLateMoveReductions(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.LateMoveReductions = on
	e.st.Config.LateMoveReductions = on
}

// SetQuiescenceMaxDepth overrides the quiescence recursion cap; zero reverts to the package
// default.
func (e *Engine) SetQuiescenceMaxDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.QuiescenceMaxDepth = depth
	e.st.Config.QuiescenceMaxDepth = int(depth)
}

// SetAspirationWindows toggles aspiration-window re-searches during iterative deepening.
func (e *Engine) SetAspirationWindows(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.AspirationWindows = on
}

// ClearTables discards the transposition table and move-ordering heuristics, without
// otherwise disturbing the current position or options. Useful between unrelated games that
// reuse the same Engine instance.
func (e *Engine) ClearTables() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tt.Clear()
	e.st.ClearHistory()
}

// Position returns the current position encoded in FEN notation.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.pos)
}

// Reset replaces the current position (and move history) with the one encoded by position.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos, err := fen.Decode(position)
	if err != nil {
		return fmt.Errorf("engine: reset: %w", err)
	}

	e.pos = pos
	e.history = nil

	logw.Infof(ctx, "reset to %v", pos)
	return nil
}

// Move applies a move, given in "<from>-<to>-<amount>" notation (see board.ParseMove),
// usually an opponent's. Returns an error if the move is not among the current position's
// pseudo-legal moves.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("engine: move: %w", err)
	}
	return e.applyLocked(ctx, m)
}

// ApplyMove applies an already-parsed move, with the same legality check as Move.
func (e *Engine) ApplyMove(ctx context.Context, m board.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.applyLocked(ctx, m)
}

func (e *Engine) applyLocked(ctx context.Context, m board.Move) error {
	var found bool
	for _, c := range e.pos.PseudoLegalMoves() {
		if c.Equals(m) {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("engine: illegal move: %v", m)
	}

	e.history = append(e.history, e.pos.Copy())
	e.pos.ApplyMove(m)

	logw.Infof(ctx, "move %v: %v", m, e.pos)
	return nil
}

// TakeBack undoes the latest applied move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.history) == 0 {
		return fmt.Errorf("engine: no move to take back")
	}

	n := len(e.history) - 1
	e.pos = e.history[n]
	e.history = e.history[:n]

	logw.Infof(ctx, "takeback: %v", e.pos)
	return nil
}

// BestMove searches the current position using the engine's default options and returns the
// principal variation found.
func (e *Engine) BestMove(ctx context.Context) (search.PV, error) {
	return e.BestMoveWithOptions(ctx, searchctl.Options{})
}

// BestMoveWithDepth searches the current position to exactly the given depth, overriding the
// engine's default depth limit.
func (e *Engine) BestMoveWithDepth(ctx context.Context, depth uint) (search.PV, error) {
	return e.BestMoveWithOptions(ctx, searchctl.Options{DepthLimit: lang.Some(depth)})
}

// BestMoveWithOptions searches the current position, filling in any option left unset from
// the engine's defaults.
func (e *Engine) BestMoveWithOptions(ctx context.Context, opt searchctl.Options) (search.PV, error) {
	e.mu.Lock()
	pos := e.pos.Copy()
	st := e.st
	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}
	if e.opts.AspirationWindows {
		opt.AspirationWindows = true
	}
	if _, ok := opt.Budget.V(); !ok {
		if ns, ok := e.opts.Budget.V(); ok && ns > 0 {
			opt.Budget = lang.Some(time.Duration(ns))
		}
	}
	root := e.root
	e.mu.Unlock()

	logw.Infof(ctx, "searching %v, opt=%v", pos, opt)

	pv, err := searchctl.Run(ctx, root, st, pos, opt)
	if err != nil {
		return search.PV{}, fmt.Errorf("engine: search: %w", err)
	}

	logw.Infof(ctx, "found %v", pv)
	return pv, nil
}

// Statistics summarizes the engine's shared tables.
type Statistics struct {
	TableSizeBytes uint64
	TableUsed      float64
}

func (e *Engine) Statistics() Statistics {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Statistics{TableSizeBytes: e.tt.Size(), TableUsed: e.tt.Used()}
}
