package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"growth/config"
	"growth/experiments"
	"growth/experiments/metrics"
	"growth/game"
	"growth/meta"
	"growth/searcher"
)

var (
	configFile    string
	scalingCounts []int

	v   = config.New()
	cfg config.Config

	rootCmd = &cobra.Command{
		Use:           "growth",
		Short:         "Game-tree search for the territory growth game",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			loaded, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			cfg = loaded
			zerolog.SetGlobalLevel(cfg.Level())
			return nil
		},
	}

	searchCmd = &cobra.Command{
		Use:   "search",
		Short: "Rank White's moves with iterative deepening",
		RunE:  runSearch,
	}

	selfPlayCmd = &cobra.Command{
		Use:   "selfplay",
		Short: "Play seeded games of the searcher against itself",
		RunE:  runSelfPlay,
	}

	scalingCmd = &cobra.Command{
		Use:   "scaling",
		Short: "Rank one position at several goroutine counts and compare",
		RunE:  runScaling,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "YAML config file")
	flags.Int("goroutines", meta.GOROUTINES, "Workers for root move ranking")
	flags.Duration("budget", meta.BUDGET, "Wall-clock budget of iterative deepening")
	flags.Int("min-depth", meta.MIN_DEPTH, "First deepening depth, always completed")
	flags.Int("max-depth", 0, "Last deepening depth, 0 for none")
	flags.Int("top-moves", meta.TOP_MOVES, "Number of ranked moves to report")
	flags.Uint64("seed", 0, "Seed of the random opening, 0 for a fresh one")
	flags.String("board", "", "File holding a rendered board to start from")
	flags.Bool("metrics", false, "Collect search metrics and write them to the output dir")
	flags.String("output-dir", "results", "Root directory of metric files")
	flags.String("log-level", zerolog.InfoLevel.String(), "Log level")

	selfPlayCmd.Flags().Int("depth", meta.MIN_DEPTH, "Search depth of every move")
	selfPlayCmd.Flags().Int("games", 1, "Number of games")

	scalingCmd.Flags().Int("depth", meta.MIN_DEPTH, "Ranking depth")
	scalingCmd.Flags().IntSliceVar(&scalingCounts, "counts", experiments.ScalingGoroutines, "Goroutine counts to compare")

	rootCmd.AddCommand(searchCmd, selfPlayCmd, scalingCmd)
}

// startingState reads the configured board, or deals a seeded random opening.
func startingState() (game.State, error) {
	if cfg.Board != "" {
		data, err := os.ReadFile(cfg.Board)
		if err != nil {
			return game.State{}, fmt.Errorf("failed to read board: %w", err)
		}
		state, err := game.Parse(string(data))
		if err != nil {
			return game.State{}, fmt.Errorf("board %s: %w", cfg.Board, err)
		}
		return state, nil
	}

	rng, seed := game.NewRand(cfg.Seed)
	log.Info().Uint64("seed", seed).Msg("dealing random opening")
	return game.RandomOpening(rng), nil
}

func formatMoves(moves []searcher.ScoredMove) string {
	if len(moves) == 0 {
		return "no moves"
	}
	return strings.Join(lo.Map(moves, func(m searcher.ScoredMove, _ int) string {
		return m.String()
	}), " ")
}

func runSearch(cmd *cobra.Command, args []string) error {
	state, err := startingState()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, state.String())

	result := cfg.NewSearcher().Deepen(cmd.Context(), state)
	fmt.Fprintf(out, "depth %d: %s\n", result.Depth, formatMoves(result.Moves))

	if !cfg.Metrics {
		return nil
	}
	dir, err := experiments.Store(cfg.OutputDir, "search", cfg, func(w *metrics.Writer) error {
		return w.WriteIterations(result.Iterations)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "metrics written to %s\n", dir)
	return nil
}

func runSelfPlay(cmd *cobra.Command, args []string) error {
	games, moves, err := experiments.RunSelfPlay(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	wins := lo.CountValuesBy(games, func(g metrics.GameRecord) string { return g.Winner })
	for _, winner := range []string{game.White.String(), game.Black.String(), "tie"} {
		fmt.Fprintf(out, "%s: %d\n", winner, wins[winner])
	}

	if !cfg.Metrics {
		return nil
	}
	dir, err := experiments.Store(cfg.OutputDir, "selfplay", cfg, func(w *metrics.Writer) error {
		if err := w.WriteGameRecords(games); err != nil {
			return err
		}
		return w.WriteMoveRecords(moves)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "metrics written to %s\n", dir)
	return nil
}

func runScaling(cmd *cobra.Command, args []string) error {
	state, err := startingState()
	if err != nil {
		return err
	}

	records, err := experiments.RunScaling(cmd.Context(), state, cfg.Depth, scalingCounts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, record := range records {
		fmt.Fprintf(out, "%3d goroutines: %v (x%.2f)\n", record.Goroutines, record.Duration, record.Speedup)
	}

	dir, err := experiments.Store(cfg.OutputDir, "scaling", cfg, func(w *metrics.Writer) error {
		return w.WriteScalingRecords(records)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "metrics written to %s\n", dir)
	return nil
}
