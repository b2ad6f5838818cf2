package eval

import "fmt"

// Score is a signed position or move score in points, from the perspective of the side to
// move: positive favors the mover. Consolidates what the source material split across two
// conflicting Score types (board.Score int16 and eval.Score float32) into one canonical
// integer type, wide enough to comfortably encode mate magnitudes without overflow.
type Score int32

const (
	ZeroScore Score = 0

	// MateBase is the magnitude assigned to a position where the side to move has won
	// outright (the opponent's guard has been captured, or the mover's guard stands on the
	// opponent's target square). The remaining search depth at the node where the win was
	// found is added on top (see MateForDepth), so a win found higher in the tree -- with
	// more depth left to spend -- always outscores one found deeper, and shallower losses
	// are avoided in favor of deeper ones.
	MateBase Score = 10_000

	// MateNetBase is the magnitude assigned to a position where a side's guard is attacked
	// and has no move that escapes capture -- a "mate net": not yet an outright capture, but
	// as decisive as one, one ply early. Strictly larger than any MateForDepth value so a
	// confirmed mate net always outranks a merely-likely win, the same way MateForDepth
	// outranks ordinary material/positional scores.
	MateNetBase Score = 20_000

	// maxMateDepth bounds how much remaining depth can be folded into a mate or mate-net
	// magnitude; comfortably wider than any depth this engine is configured to search.
	maxMateDepth Score = 1_000

	MinScore Score = -(MateNetBase + maxMateDepth)
	MaxScore Score = MateNetBase + maxMateDepth

	// NegInfScore and InfScore bound the initial alpha/beta window, strictly wider than any
	// legal score.
	NegInfScore Score = MinScore - 1
	InfScore    Score = MaxScore + 1

	// InvalidScore marks the absence of a usable transposition table entry or aspiration
	// window bound.
	InvalidScore Score = MaxScore + 2
)

// MateForDepth returns the score magnitude for a side that has won outright with depth plies
// of search still remaining at the node the win was found. Negate the result for the losing
// side's perspective.
func MateForDepth(depth int) Score {
	return MateBase + clampMateDepth(depth)
}

// MateNetForDepth returns the score magnitude for a side whose guard is in a mate net, with
// depth plies of search still remaining at the node the net was found. Negate the result for
// the losing side's perspective.
func MateNetForDepth(depth int) Score {
	return MateNetBase + clampMateDepth(depth)
}

func clampMateDepth(depth int) Score {
	if depth < 0 {
		return 0
	}
	if Score(depth) > maxMateDepth {
		return maxMateDepth
	}
	return Score(depth)
}

func (s Score) String() string {
	switch {
	case s >= MateBase:
		return fmt.Sprintf("#+%d", s)
	case s <= -MateBase:
		return fmt.Sprintf("#%d", s)
	default:
		return fmt.Sprintf("%d", s)
	}
}

// IsInvalid reports whether s is the InvalidScore sentinel.
func (s Score) IsInvalid() bool {
	return s == InvalidScore
}

// IsMate reports whether s represents a forced win or loss (including a confirmed mate net)
// rather than a material or positional estimate: |s| >= MateBase.
func (s Score) IsMate() bool {
	return s >= MateBase || s <= -MateBase
}

// Negate flips the score to the opponent's perspective.
func (s Score) Negate() Score {
	return -s
}

// Less reports whether s is strictly less than o.
func (s Score) Less(o Score) bool {
	return s < o
}

// Crop clamps s into [MinScore;MaxScore].
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

// Max returns the larger of a and b.
func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

// Min returns the smaller of a and b.
func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}
