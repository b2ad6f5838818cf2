package eval

import (
	"context"
	"math/rand"

	"github.com/towerguard/engine/pkg/board"
)

// Random adds a small amount of noise to evaluations, which avoids always repeating the same
// game against a deterministic opponent. Limit specifies how many points to add or remove, in
// the range [-limit/2; limit-1-limit/2]. The zero value always returns zero.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Evaluate(ctx context.Context, pos *board.Position) Score {
	if n.limit <= 0 || n.rand == nil {
		return 0
	}
	return Score(n.rand.Intn(n.limit) - n.limit/2)
}
