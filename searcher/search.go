package searcher

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"growth/experiments/metrics"
	"growth/game"
	"growth/meta"
)

type Option func(s *Searcher)

// Searcher ranks root moves in parallel and drives iterative deepening.
// It runs one search at a time; use one Searcher per concurrent caller.
type Searcher struct {
	goroutines int
	duration   time.Duration
	minDepth   int
	maxDepth   int
	topMoves   int
	evaluate   game.Evaluate
	metrics    metrics.Collector
}

// WithDuration sets the wall-clock budget of Deepen.
func WithDuration(duration time.Duration) Option {
	return func(s *Searcher) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

// WithMinDepth sets the first, always completed, depth of Deepen.
func WithMinDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.minDepth = depth
		}
	}
}

// WithMaxDepth stops Deepen after the given depth even if budget remains.
func WithMaxDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

func WithTopMoves(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.topMoves = n
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

func NewSearcher(goroutines int, options ...Option) *Searcher {
	if goroutines < 1 {
		panic(fmt.Sprintf("need at least one goroutine, got %d", goroutines))
	}
	s := &Searcher{ // Default values
		goroutines: goroutines,
		duration:   meta.BUDGET,
		minDepth:   meta.MIN_DEPTH,
		topMoves:   meta.TOP_MOVES,
		evaluate:   game.Material,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.maxDepth > 0 && s.maxDepth < s.minDepth {
		panic(fmt.Sprintf("max depth %d is below min depth %d", s.maxDepth, s.minDepth))
	}
	return s
}

// RankMoves ranks White's root moves, see RankMovesFor.
func (s *Searcher) RankMoves(ctx context.Context, state game.State, depth int) ([]ScoredMove, error) {
	ranking, err := s.RankMovesFor(ctx, state, game.White, depth)
	if err != nil {
		return nil, err
	}
	return ranking.Moves, nil
}

// RankMovesFor scores every legal move of color with an alpha-beta search
// of depth-1 further plies, the opponent moving next. Scores are from
// color's perspective, so higher is better for the mover. Moves are
// sorted best first with ties kept in generator order, and cut to the top
// moves. A root without moves yields an empty ranking.
//
// Root branches run on up to goroutines workers. The context is checked
// once, before the ranking starts. A started ranking always runs to
// completion, so a cancel arriving midway still yields the full ranking.
func (s *Searcher) RankMovesFor(ctx context.Context, state game.State, color game.Color, depth int) (Ranking, error) {
	if depth < 1 {
		panic(fmt.Sprintf("root move ranking needs depth >= 1, got %d", depth))
	}
	if color != game.White && color != game.Black {
		panic(fmt.Sprintf("cannot rank moves for %s", color))
	}

	if err := ctx.Err(); err != nil {
		return Ranking{}, fmt.Errorf("ranking %s moves at depth %d: %w", color, depth, err)
	}

	s.metrics.Start(s.goroutines, depth)
	moves, err := s.rank(state, color, depth)
	if err != nil {
		return Ranking{}, err
	}
	return Ranking{
		Color:        color,
		Depth:        depth,
		Moves:        moves,
		SearchMetric: s.metrics.Complete(),
	}, nil
}

func (s *Searcher) rank(state game.State, color game.Color, depth int) ([]ScoredMove, error) {
	w := newWalker(s.evaluate, s.metrics)
	w.metrics.AddNode()
	moves := state.LegalMoves(color)
	sign := color.Sign()

	results := make([]ScoredMove, len(moves))
	g := new(errgroup.Group)
	g.SetLimit(s.goroutines)
	for i, pos := range moves {
		g.Go(func() error {
			child := state.With(pos, color)
			score := -w.alphaBeta(child, depth-1, MinScore, MaxScore, -sign)
			results[i] = ScoredMove{Score: score, Move: pos}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ranking %s moves at depth %d: %w", color, depth, err)
	}

	slices.SortStableFunc(results, func(a, b ScoredMove) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(results) > s.topMoves {
		results = results[:s.topMoves]
	}
	return results, nil
}

// Result is the outcome of iterative deepening: the ranking of the deepest
// completed depth and one record per completed depth.
type Result struct {
	// Depth is the deepest completed depth. Besides the budget, the context
	// and the max depth, it is capped at the number of Empty cells of the
	// root (saturation): deeper rankings would be identical, so a saturated
	// search reports that cap even with budget left.
	Depth      int
	Moves      []ScoredMove
	Iterations []metrics.IterationRecord
}

// Deepen ranks White's moves at increasing depths starting from the
// minimum depth. The budget and the context are only checked between
// depths: the minimum depth always completes, and a depth that has started
// is never interrupted. Deepening also stops once extra depth can no
// longer change the result, which is when depth reaches the number of
// Empty cells, when White has no root move at all, or at the configured
// max depth.
func (s *Searcher) Deepen(ctx context.Context, state game.State) Result {
	start := time.Now()
	limit := s.depthLimit(state)
	// Started depths must complete even if the caller cancels.
	searchCtx := context.WithoutCancel(ctx)

	result := Result{}
	for depth := s.minDepth; depth <= limit; depth++ {
		if depth > s.minDepth {
			if elapsed := time.Since(start); elapsed >= s.duration {
				log.Info().Dur("elapsed", elapsed).Int("depth", result.Depth).Msg("budget-spent")
				break
			}
			if err := ctx.Err(); err != nil {
				log.Info().Err(err).Int("depth", result.Depth).Msg("deepening-stopped")
				break
			}
		}

		log.Debug().Int("depth", depth).Msg("deepening-iteratively")
		ranking, err := s.RankMovesFor(searchCtx, state, game.White, depth)
		if err != nil {
			// Unreachable: searchCtx is never cancelled.
			panic(err)
		}

		result.Depth = depth
		result.Moves = ranking.Moves
		record := metrics.IterationRecord{
			Depth:        depth,
			Moves:        len(ranking.Moves),
			SearchMetric: ranking.SearchMetric,
		}
		if best, ok := ranking.Best(); ok {
			record.Best = best.Score
			record.BestMove = best.Move.String()
		}
		result.Iterations = append(result.Iterations, record)

		log.Info().
			Int("depth", depth).
			Int("moves", record.Moves).
			Str("best", record.BestMove).
			Int("score", record.Best).
			Dur("elapsed", time.Since(start)).
			Msg("depth-completed")

		if len(ranking.Moves) == 0 { // No root moves at any depth
			break
		}
	}
	return result
}

func (s *Searcher) depthLimit(state game.State) int {
	limit := max(s.minDepth, len(state.EmptyCells()))
	if s.maxDepth > 0 {
		limit = min(limit, s.maxDepth)
	}
	return limit
}
