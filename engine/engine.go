package engine

import (
	"context"

	"growth/experiments/metrics"
	"growth/game"
)

type Engine interface {
	// Run plays a game until the position is terminal or the move cap is
	// reached. Cancellation takes effect between turns.
	Run(ctx context.Context) (Outcome, error)
}

// Turn is one step of a game. A color without legal moves passes.
type Turn struct {
	Color game.Color
	Move  game.Position // Unset on a pass
	Pass  bool
	Score int // Score of the chosen move from the mover's perspective
}

type Outcome struct {
	Final       game.State
	Winner      game.Color // Empty on a tie
	Turns       []Turn
	Game        metrics.GameMetric
	MoveMetrics []metrics.MoveMetric
}
