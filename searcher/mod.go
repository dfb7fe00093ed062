package searcher

import (
	"fmt"

	"growth/experiments/metrics"
	"growth/game"
)

// Score bounds. They are symmetric so negating either one never overflows,
// and far outside any evaluation a Size×Size board can produce.
const (
	MaxScore = 1 << 20
	MinScore = -MaxScore
)

type ScoredMove struct {
	Score int
	Move  game.Position
}

func (m ScoredMove) String() string {
	return fmt.Sprintf("%s (%d)", m.Move, m.Score)
}

// Ranking is the outcome of one root move ranking.
type Ranking struct {
	Color game.Color
	Depth int
	Moves []ScoredMove // Best first, at most the configured top moves
	metrics.SearchMetric
}

// Best returns the top-ranked move, or false when the root had no moves.
func (r Ranking) Best() (ScoredMove, bool) {
	if len(r.Moves) == 0 {
		return ScoredMove{}, false
	}
	return r.Moves[0], true
}
