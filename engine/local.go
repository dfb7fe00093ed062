package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"growth/experiments/metrics"
	"growth/game"
	"growth/meta"
	"growth/searcher"
)

// Local plays both colors in process, each with its own searcher.
type Local struct {
	state    game.State
	players  map[game.Color]*searcher.Searcher
	depth    int
	maxMoves int
}

func NewLocal(state game.State, white, black *searcher.Searcher, depth int) *Local {
	if white == nil || black == nil {
		panic("need a searcher for each color")
	}
	if depth < 1 {
		panic(fmt.Sprintf("self-play needs depth >= 1, got %d", depth))
	}
	return &Local{
		state: state,
		players: map[game.Color]*searcher.Searcher{
			game.White: white,
			game.Black: black,
		},
		depth:    depth,
		maxMoves: meta.MAX_MOVES,
	}
}

// Run executes the game loop. White moves first and each side plays the
// top move of its ranking. Unlike the search, which scores a stuck side
// statically, the game lets a side without moves pass.
//
// The context is checked between turns only; a turn that has started
// always completes. On cancellation Run returns the game played so far
// together with the context error.
func (e *Local) Run(ctx context.Context) (Outcome, error) {
	start := time.Now()
	state := e.state
	color := game.White
	outcome := Outcome{}
	// Turns run detached so a cancel never cuts a search short.
	turnCtx := context.WithoutCancel(ctx)

	log.Info().Str("player", color.String()).Int("depth", e.depth).Msg("game-starting")

	var stopped error
	for step := 1; step <= e.maxMoves && !state.IsTerminal(); step++ {
		if err := ctx.Err(); err != nil {
			stopped = fmt.Errorf("game stopped before step %d: %w", step, err)
			break
		}

		ranking, err := e.players[color].RankMovesFor(turnCtx, state, color, e.depth)
		if err != nil {
			return Outcome{}, fmt.Errorf("step %d: %w", step, err)
		}

		turn := Turn{Color: color}
		moveMetric := metrics.MoveMetric{
			Step:         step,
			Player:       color.String(),
			SearchMetric: ranking.SearchMetric,
		}
		if best, ok := ranking.Best(); ok {
			state.Place(best.Move, color)
			turn.Move, turn.Score = best.Move, best.Score
			moveMetric.Move, moveMetric.Score = best.Move.String(), best.Score
		} else {
			turn.Pass = true
		}
		outcome.Turns = append(outcome.Turns, turn)
		outcome.MoveMetrics = append(outcome.MoveMetrics, moveMetric)

		log.Debug().
			Int("step", step).
			Str("player", color.String()).
			Str("move", moveMetric.Move).
			Int("score", turn.Score).
			Bool("pass", turn.Pass).
			Msg("turn-completed")

		color = color.Opponent()
	}

	outcome.Final = state
	outcome.Winner = state.Leader()
	end := time.Now()
	outcome.Game = metrics.GameMetric{
		Winner:     winnerName(outcome.Winner),
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		TotalMoves: len(outcome.Turns),
		Passes:     lo.CountBy(outcome.Turns, func(t Turn) bool { return t.Pass }),
		FinalScore: state.Evaluate(),
	}

	log.Info().
		Str("winner", outcome.Game.Winner).
		Int("score", outcome.Game.FinalScore).
		Int("moves", outcome.Game.TotalMoves).
		Int("passes", outcome.Game.Passes).
		Bool("terminal", state.IsTerminal()).
		Msg("game-completed")
	return outcome, stopped
}

func winnerName(c game.Color) string {
	if c == game.Empty {
		return "tie"
	}
	return c.String()
}
