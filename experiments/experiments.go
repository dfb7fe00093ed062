package experiments

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"growth/config"
	"growth/engine"
	"growth/experiments/metrics"
	"growth/game"
	"growth/searcher"
)

var ErrRankingMismatch = errors.New("rankings differ across goroutine counts")

// ScalingGoroutines are the worker counts the scaling experiment tries by default.
var ScalingGoroutines = []int{1, 2, 4, 8, 16}

// RunScaling ranks the same position once per goroutine count and checks
// that every count produces the ranking of the first one. Rankings are
// not truncated, so the comparison covers every root move.
func RunScaling(ctx context.Context, state game.State, depth int, goroutines []int) ([]metrics.ScalingRecord, error) {
	log.Info().Ints("goroutines", goroutines).Int("depth", depth).Msg("starting scaling experiment")

	var reference []searcher.ScoredMove
	records := []metrics.ScalingRecord{}
	for i, n := range goroutines {
		s := searcher.NewSearcher(n, searcher.WithMetrics(), searcher.WithTopMoves(game.Size*game.Size))
		ranking, err := s.RankMovesFor(ctx, state, game.White, depth)
		if err != nil {
			return records, fmt.Errorf("scaling with %d goroutines: %w", n, err)
		}

		if i == 0 {
			reference = ranking.Moves
		} else if !slices.Equal(reference, ranking.Moves) {
			return records, fmt.Errorf("%w: %d goroutines", ErrRankingMismatch, n)
		}

		speedup := 1.0
		if i > 0 && ranking.SearchMetric.Duration > 0 {
			speedup = float64(records[0].Duration) / float64(ranking.SearchMetric.Duration)
		}
		records = append(records, metrics.ScalingRecord{Speedup: speedup, SearchMetric: ranking.SearchMetric})

		log.Info().
			Int("goroutines", n).
			Dur("duration", ranking.SearchMetric.Duration).
			Int("nodes", ranking.Nodes).
			Float64("speedup", speedup).
			Msg("completed scaling run")
	}

	log.Info().Msg("completed scaling experiment")
	return records, nil
}

// RunSelfPlay plays cfg.Games games, game i starting from the random
// opening of seed+i. A zero seed is replaced by a fresh one first.
func RunSelfPlay(ctx context.Context, cfg config.Config) ([]metrics.GameRecord, []metrics.MoveRecord, error) {
	seed := cfg.Seed
	if seed == 0 {
		_, seed = game.NewRand(0)
	}

	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Int("games", cfg.Games).Uint64("seed", seed).Msg("starting self-play experiment")

	for i := range cfg.Games {
		id := i + 1
		rng, _ := game.NewRand(seed + uint64(i))
		e := engine.NewLocal(game.RandomOpening(rng), cfg.NewSearcher(), cfg.NewSearcher(), cfg.Depth)

		outcome, err := e.Run(ctx)
		if err != nil {
			return gameRecords, moveRecords, fmt.Errorf("game %d: %w", id, err)
		}

		gameRecords = append(gameRecords, metrics.GameRecord{ID: id, GameMetric: outcome.Game})
		moveRecords = append(moveRecords, lo.Map(outcome.MoveMetrics, func(m metrics.MoveMetric, _ int) metrics.MoveRecord {
			return metrics.MoveRecord{Game: id, MoveMetric: m}
		})...)

		log.Info().Msgf("completed game %d of %d with winner: %s", id, cfg.Games, outcome.Game.Winner)
	}

	log.Info().Msg("completed self-play experiment")
	return gameRecords, moveRecords, nil
}

// Store writes the config snapshot and whatever records write emits into
// a fresh <root>/<name>/<timestamp> directory, returning that directory.
func Store(root, name string, cfg config.Config, write func(w *metrics.Writer) error) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteConfig(cfg); err != nil {
		return "", fmt.Errorf("failed to store config: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored config")

	if err := write(writer); err != nil {
		return "", fmt.Errorf("failed to store %s results: %w", name, err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored results")
	return writer.Dir(), nil
}
