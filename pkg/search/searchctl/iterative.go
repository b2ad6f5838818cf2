package searchctl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/towerguard/engine/pkg/board"
	"github.com/towerguard/engine/pkg/eval"
	"github.com/towerguard/engine/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// minMateConfirmDepth is the minimum iterative-deepening depth reached before a mate score
// short-circuits the loop -- a mate reported after only a depth-1 search is too shallow to
// trust over continuing to deepen.
const minMateConfirmDepth = 2

// Options hold dynamic search options, analogous to the source material's searchctl.Options
// but reduced to a single per-move thinking budget: this engine is not handed a two-clock
// game time control, only "think about this position for up to X".
type Options struct {
	// DepthLimit, if set, stops iterative deepening once this ply depth completes.
	DepthLimit lang.Optional[uint]
	// Budget, if set, stops iterative deepening once the estimated cost of the next
	// iteration would not fit comfortably within what is left of it.
	Budget lang.Optional[time.Duration]
	// AspirationWindows, if set, bounds each iteration (after the first) to a narrow window
	// around the previous iteration's score instead of the wide-open (-inf, +inf) window,
	// re-searching with the full window only if the narrow one fails to hold the true score.
	AspirationWindows bool
}

func (o Options) String() string {
	var parts []string
	if v, ok := o.DepthLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("depth=%d", v))
	}
	if v, ok := o.Budget.V(); ok {
		parts = append(parts, fmt.Sprintf("budget=%v", v))
	}
	if o.AspirationWindows {
		parts = append(parts, "aspiration")
	}
	return fmt.Sprintf("[%v]", strings.Join(parts, ", "))
}

// aspirationWindow is the half-width of the initial narrow window placed around the previous
// iteration's score, in evaluation points.
const aspirationWindow = eval.Score(50)

// Run performs synchronous iterative-deepening search: it repeatedly calls root.Search at
// increasing depths, starting a new table generation for the position and returning the
// deepest principal variation completed before a stopping condition is hit (depth limit,
// time budget, forced mate found, or ctx cancellation).
//
// Unlike the source material's searchctl.Iterative (which launches the loop on its own
// goroutine and streams PVs back over a channel), this loop runs on the caller's goroutine
// and is driven purely by ctx cancellation -- a cooperative, single-threaded design that
// fits a synchronous engine façade (see pkg/engine) without requiring callers to drain a
// channel or manage a Handle's lifecycle.
func Run(ctx context.Context, root search.Search, st *search.State, pos *board.Position, opt Options) (search.PV, error) {
	st.TT.NewAge()

	budget := NewBudget(0)
	if v, ok := opt.Budget.V(); ok {
		budget = NewBudget(v)
	}

	var best search.PV
	searchStart := time.Now()

	depth := 1
	for {
		if contextx.IsCancelled(ctx) {
			return best, nil
		}

		iterStart := time.Now()
		nodes, score, moves, err := runIteration(ctx, root, st, pos, depth, opt.AspirationWindows, best.Score, depth > 1)
		iterElapsed := time.Since(iterStart)

		if err != nil {
			if err == search.ErrHalted {
				return best, nil
			}
			return best, err
		}

		best = search.PV{Depth: depth, Moves: moves, Score: score, Nodes: nodes, Time: time.Since(searchStart)}
		logw.Debugf(ctx, "searched %v: %v", pos, best)

		st.PV = moves
		st.DecayHistory()

		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) >= limit {
			return best, nil
		}
		if depth >= minMateConfirmDepth && score.IsMate() {
			return best, nil // a true mate score after a minimum depth: stop rather than refine it further
		}
		if !budget.ShouldContinue(time.Since(searchStart), iterElapsed) {
			return best, nil
		}

		depth++
	}
}

// runIteration runs one iterative-deepening iteration, optionally starting with a narrow
// window around prevScore (only once a previous iteration has actually produced one) and
// re-searching with the full window if the narrow one failed to bracket the true score -- a
// fail-low reopens alpha downward, a fail-high reopens beta upward, so either retry simply
// falls back to the wide-open window rather than guessing a second narrow one.
func runIteration(ctx context.Context, root search.Search, st *search.State, pos *board.Position, depth int, useAspiration bool, prevScore eval.Score, havePrevScore bool) (uint64, eval.Score, []board.Move, error) {
	alpha, beta := eval.NegInfScore, eval.InfScore
	if useAspiration && havePrevScore && !prevScore.IsMate() {
		alpha, beta = prevScore-aspirationWindow, prevScore+aspirationWindow
	}

	nodes, score, moves, err := root.Search(ctx, st, pos, depth, alpha, beta)
	if err != nil {
		return nodes, score, moves, err
	}
	if score <= alpha || score >= beta {
		n2, s2, m2, err2 := root.Search(ctx, st, pos, depth, eval.NegInfScore, eval.InfScore)
		return nodes + n2, s2, m2, err2
	}
	return nodes, score, moves, nil
}
