package searcher

import (
	"growth/experiments/metrics"
	"growth/game"
)

// walker runs the single-threaded depth-first searches. Every variant
// stops at depth 0 and at a side with no legal moves, scoring the position
// statically. A terminal position has no moves for either side, so the
// empty move list check covers it. No pass is modeled inside the search.
type walker struct {
	evaluate game.Evaluate
	metrics  metrics.Collector
}

func newWalker(evaluate game.Evaluate, collector metrics.Collector) walker {
	return walker{evaluate: evaluate, metrics: collector}
}

func (w walker) leaf(state game.State, sign int) int {
	w.metrics.AddLeaf()
	return sign * w.evaluate(state)
}

func (w walker) minimax(state game.State, depth int, maximizing bool) int {
	w.metrics.AddNode()
	if depth == 0 {
		return w.leaf(state, 1)
	}

	color := game.Black
	if maximizing {
		color = game.White
	}
	moves := state.LegalMoves(color)
	if len(moves) == 0 {
		return w.leaf(state, 1)
	}

	if maximizing {
		best := MinScore
		for _, pos := range moves {
			best = max(best, w.minimax(state.With(pos, color), depth-1, false))
		}
		return best
	}
	best := MaxScore
	for _, pos := range moves {
		best = min(best, w.minimax(state.With(pos, color), depth-1, true))
	}
	return best
}

func (w walker) negamax(state game.State, depth, sign int) int {
	w.metrics.AddNode()
	if depth == 0 {
		return w.leaf(state, sign)
	}

	color := game.ColorOf(sign)
	moves := state.LegalMoves(color)
	if len(moves) == 0 {
		return w.leaf(state, sign)
	}

	best := MinScore
	for _, pos := range moves {
		best = max(best, -w.negamax(state.With(pos, color), depth-1, -sign))
	}
	return best
}

// alphaBeta is negamax with fail-hard pruning: once alpha reaches beta the
// remaining siblings are skipped.
func (w walker) alphaBeta(state game.State, depth, alpha, beta, sign int) int {
	w.metrics.AddNode()
	if depth == 0 {
		return w.leaf(state, sign)
	}

	color := game.ColorOf(sign)
	moves := state.LegalMoves(color)
	if len(moves) == 0 {
		return w.leaf(state, sign)
	}

	for _, pos := range moves {
		alpha = max(alpha, -w.alphaBeta(state.With(pos, color), depth-1, -beta, -alpha, -sign))
		if alpha >= beta {
			w.metrics.AddCutoff()
			return alpha
		}
	}
	return alpha
}
