package searcher

import (
	"cmp"
	"context"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"growth/game"
)

// expectedRanking scores every White move with plain minimax and sorts
// stably, best first.
func expectedRanking(s game.State, depth int) []ScoredMove {
	var moves []ScoredMove
	for _, pos := range s.LegalMoves(game.White) {
		score := NewNode(s.With(pos, game.White)).Minimax(depth-1, false)
		moves = append(moves, ScoredMove{Score: score, Move: pos})
	}
	slices.SortStableFunc(moves, func(a, b ScoredMove) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return moves
}

func swapColors(s game.State) game.State {
	swapped := game.New()
	for row := range game.Size {
		for col := range game.Size {
			pos := game.Position{Row: row, Col: col}
			swapped.Place(pos, s.At(pos).Opponent())
		}
	}
	return swapped
}

// nearlyFull leaves three Empty cells in the top row, one of which White
// can grow into.
func nearlyFull() game.State {
	s := game.New()
	for row := range game.Size {
		for col := range game.Size {
			pos := game.Position{Row: row, Col: col}
			switch {
			case row == 0 && col < 3:
			case row == 1 && col < 4:
				s.Place(pos, game.White)
			default:
				s.Place(pos, game.Black)
			}
		}
	}
	return s
}

func TestRankMovesMatchesMinimax(t *testing.T) {
	states := []game.State{dense(), opening(1), opening(17)}
	for i, s := range states {
		for depth := 1; depth <= 3; depth++ {
			expected := expectedRanking(s, depth)
			searcher := NewSearcher(4, WithTopMoves(game.Size*game.Size))

			moves, err := searcher.RankMoves(context.Background(), s, depth)
			require.NoError(t, err)
			require.Equal(t, expected, moves, "state %d depth %d", i, depth)
		}
	}
}

func TestRankMovesTopMoves(t *testing.T) {
	s := dense()
	full := expectedRanking(s, 2)
	require.Greater(t, len(full), 5)

	moves, err := NewSearcher(2).RankMoves(context.Background(), s, 2)
	require.NoError(t, err)
	require.Len(t, moves, 5)
	require.Equal(t, full[:5], moves)
	require.True(t, slices.IsSortedFunc(moves, func(a, b ScoredMove) int {
		return cmp.Compare(b.Score, a.Score)
	}))

	t.Run("ties keep generator order", func(t *testing.T) {
		moves, err := NewSearcher(3, WithTopMoves(100)).RankMoves(context.Background(), s, 1)
		require.NoError(t, err)

		order := s.LegalMoves(game.White)
		index := func(p game.Position) int { return slices.Index(order, p) }
		for i := 1; i < len(moves); i++ {
			if moves[i-1].Score == moves[i].Score {
				require.Less(t, index(moves[i-1].Move), index(moves[i].Move))
			}
		}
	})
}

func TestRankMovesIsDeterministic(t *testing.T) {
	s := opening(4242)
	expected, err := NewSearcher(1).RankMoves(context.Background(), s, 3)
	require.NoError(t, err)

	for _, goroutines := range []int{2, 4, 16} {
		moves, err := NewSearcher(goroutines).RankMoves(context.Background(), s, 3)
		require.NoError(t, err)
		require.Equal(t, expected, moves, "%d goroutines", goroutines)
	}
}

func TestRankMovesWithoutMoves(t *testing.T) {
	searcher := NewSearcher(2)

	moves, err := searcher.RankMoves(context.Background(), game.New(), 2)
	require.NoError(t, err)
	require.Empty(t, moves)

	moves, err = searcher.RankMoves(context.Background(), whiteStuck(), 3)
	require.NoError(t, err)
	require.Empty(t, moves)
}

func TestRankMovesForBlack(t *testing.T) {
	s := opening(2)
	white, err := NewSearcher(4).RankMovesFor(context.Background(), s, game.White, 2)
	require.NoError(t, err)

	black, err := NewSearcher(4).RankMovesFor(context.Background(), swapColors(s), game.Black, 2)
	require.NoError(t, err)

	require.Equal(t, game.Black, black.Color)
	require.Equal(t, 2, black.Depth)
	require.Equal(t, white.Moves, black.Moves)
}

func TestRankMovesCancelled(t *testing.T) {
	t.Run("before the ranking starts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewSearcher(2).RankMoves(ctx, dense(), 2)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("while ranking completes the depth", func(t *testing.T) {
		for _, goroutines := range []int{1, 4} {
			ctx, cancel := context.WithCancel(context.Background())
			var calls atomic.Int64
			evaluate := func(s game.State) int {
				if calls.Add(1) == 50 {
					cancel()
				}
				return game.Material(s)
			}
			searcher := NewSearcher(goroutines, WithEvaluationFn(evaluate), WithTopMoves(game.Size*game.Size))

			moves, err := searcher.RankMoves(ctx, dense(), 3)
			require.NoError(t, err, "%d goroutines", goroutines)
			require.Error(t, ctx.Err())
			require.Greater(t, calls.Load(), int64(50))
			require.Equal(t, expectedRanking(dense(), 3), moves, "%d goroutines", goroutines)
		}
	})
}

func TestRankMovesPreconditions(t *testing.T) {
	searcher := NewSearcher(1)

	require.Panics(t, func() { NewSearcher(0) })
	require.Panics(t, func() { NewSearcher(1, WithMinDepth(4), WithMaxDepth(3)) })
	require.Panics(t, func() { _, _ = searcher.RankMoves(context.Background(), dense(), 0) })
	require.Panics(t, func() {
		_, _ = searcher.RankMovesFor(context.Background(), dense(), game.Empty, 1)
	})
}

func TestRankingMetrics(t *testing.T) {
	ranking, err := NewSearcher(2, WithMetrics()).RankMovesFor(context.Background(), dense(), game.White, 2)
	require.NoError(t, err)

	require.Positive(t, ranking.Nodes)
	require.Positive(t, ranking.Leaves)
	require.Equal(t, 2, ranking.Goroutines)
	require.Equal(t, 2, ranking.SearchMetric.Depth)

	best, ok := ranking.Best()
	require.True(t, ok)
	require.Equal(t, ranking.Moves[0], best)

	t.Run("dummy collector counts nothing", func(t *testing.T) {
		ranking, err := NewSearcher(2).RankMovesFor(context.Background(), dense(), game.White, 2)
		require.NoError(t, err)
		require.Zero(t, ranking.Nodes)
	})
}

func TestDeepen(t *testing.T) {
	s := dense()

	t.Run("stops at max depth", func(t *testing.T) {
		result := NewSearcher(4, WithMaxDepth(3), WithDuration(time.Minute)).Deepen(context.Background(), s)

		expected, err := NewSearcher(1).RankMoves(context.Background(), s, 3)
		require.NoError(t, err)
		require.Equal(t, 3, result.Depth)
		require.Equal(t, expected, result.Moves)
		require.Len(t, result.Iterations, 2)
		require.Equal(t, 2, result.Iterations[0].Depth)
		require.Equal(t, 3, result.Iterations[1].Depth)
		require.Equal(t, expected[0].Move.String(), result.Iterations[1].BestMove)
	})

	t.Run("min depth completes when the budget is spent", func(t *testing.T) {
		result := NewSearcher(4, WithDuration(time.Nanosecond)).Deepen(context.Background(), s)

		require.Equal(t, 2, result.Depth)
		require.Len(t, result.Iterations, 1)
		require.NotEmpty(t, result.Moves)
	})

	t.Run("min depth completes when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		result := NewSearcher(4).Deepen(ctx, s)

		expected, err := NewSearcher(1).RankMoves(context.Background(), s, 2)
		require.NoError(t, err)
		require.Equal(t, 2, result.Depth)
		require.Equal(t, expected, result.Moves)
	})

	t.Run("stops at saturation", func(t *testing.T) {
		board := nearlyFull()
		require.Len(t, board.EmptyCells(), 3)

		result := NewSearcher(2, WithDuration(time.Minute)).Deepen(context.Background(), board)
		require.Equal(t, 3, result.Depth)
		require.Len(t, result.Iterations, 2)
		require.NotEmpty(t, result.Moves)
	})

	t.Run("stops when white has no moves", func(t *testing.T) {
		result := NewSearcher(2, WithDuration(time.Minute)).Deepen(context.Background(), game.New())

		require.Equal(t, 2, result.Depth)
		require.Empty(t, result.Moves)
		require.Len(t, result.Iterations, 1)
		require.Empty(t, result.Iterations[0].BestMove)
	})
}
