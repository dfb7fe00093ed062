package searcher

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"growth/experiments/metrics"
	"growth/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

var seeds = []uint64{1, 2, 3, 17, 4242}

func opening(seed uint64) game.State {
	rng, _ := game.NewRand(seed)
	return game.RandomOpening(rng)
}

// whiteStuck has Black growth at B1 and B2 while the lone White stone at F6
// cannot grow.
func whiteStuck() game.State {
	s := game.New()
	s.Place(game.Position{Row: 0, Col: 0}, game.Black)
	s.Place(game.Position{Row: 0, Col: 2}, game.Black)
	s.Place(game.Position{Row: 5, Col: 5}, game.White)
	return s
}

// dense puts White on every other cell of row 3 and Black on every other
// cell of row 7, giving both sides a dozen or more moves.
func dense() game.State {
	s := game.New()
	for col := 0; col < game.Size; col += 2 {
		s.Place(game.Position{Row: 2, Col: col}, game.White)
		s.Place(game.Position{Row: 6, Col: col}, game.Black)
	}
	return s
}

func countingWalker() (walker, metrics.Collector) {
	c := metrics.NewCollector()
	c.Start(1, 0)
	return newWalker(game.Material, c), c
}

func TestDepthZero(t *testing.T) {
	for _, seed := range seeds {
		s := opening(seed)
		node := NewNode(s)
		eval := s.Evaluate()

		require.Equal(t, eval, node.Minimax(0, true))
		require.Equal(t, eval, node.Minimax(0, false))
		require.Equal(t, eval, node.Negamax(0, 1))
		require.Equal(t, -eval, node.Negamax(0, -1))
		require.Equal(t, eval, node.AlphaBeta(0, MinScore, MaxScore, 1))
	}

	t.Run("visits only the root", func(t *testing.T) {
		w, c := countingWalker()
		w.negamax(opening(1), 0, 1)

		require.Equal(t, 1, c.Complete().Nodes)
	})
}

func TestVariantsAgree(t *testing.T) {
	states := []game.State{dense(), whiteStuck()}
	for _, seed := range seeds {
		states = append(states, opening(seed))
	}
	for i, s := range states {
		node := NewNode(s)
		for depth := 0; depth <= 3; depth++ {
			minimax := node.Minimax(depth, true)

			require.Equal(t, minimax, node.Negamax(depth, 1), "state %d depth %d", i, depth)
			require.Equal(t, minimax, node.AlphaBeta(depth, MinScore, MaxScore, 1), "state %d depth %d", i, depth)

			minimaxBlack := node.Minimax(depth, false)
			require.Equal(t, minimaxBlack, -node.Negamax(depth, -1), "state %d depth %d", i, depth)
			require.Equal(t, minimaxBlack, -node.AlphaBeta(depth, MinScore, MaxScore, -1), "state %d depth %d", i, depth)
		}
	}

	t.Run("on random fills", func(t *testing.T) {
		rng, _ := game.NewRand(77)
		for range 5 {
			node := NewNode(game.RandomFill(rng))
			for depth := 1; depth <= 2; depth++ {
				minimax := node.Minimax(depth, true)
				require.Equal(t, minimax, node.Negamax(depth, 1))
				require.Equal(t, minimax, node.AlphaBeta(depth, MinScore, MaxScore, 1))
			}
		}
	})
}

func TestPruningVisitsFewerNodes(t *testing.T) {
	for _, seed := range seeds {
		s := opening(seed)
		for depth := 1; depth <= 3; depth++ {
			mw, mc := countingWalker()
			nw, nc := countingWalker()
			aw, ac := countingWalker()

			mw.minimax(s, depth, true)
			nw.negamax(s, depth, 1)
			aw.alphaBeta(s, depth, MinScore, MaxScore, 1)

			minimax, negamax, alphaBeta := mc.Complete(), nc.Complete(), ac.Complete()
			require.Equal(t, minimax.Nodes, negamax.Nodes, "Minimax and negamax walk the same tree")
			require.LessOrEqual(t, alphaBeta.Nodes, negamax.Nodes, "seed %d depth %d", seed, depth)
			require.LessOrEqual(t, alphaBeta.Leaves, negamax.Leaves, "seed %d depth %d", seed, depth)
			require.Zero(t, negamax.Cutoffs)
		}
	}

	t.Run("cutoffs happen on deeper searches", func(t *testing.T) {
		w, c := countingWalker()
		w.alphaBeta(dense(), 3, MinScore, MaxScore, 1)

		require.Positive(t, c.Complete().Cutoffs)
	})
}

func TestNoMoveFallback(t *testing.T) {
	s := whiteStuck()
	node := NewNode(s)

	require.False(t, s.IsTerminal())
	require.Empty(t, s.LegalMoves(game.White))

	t.Run("white to move scores statically", func(t *testing.T) {
		eval := s.Evaluate()

		require.Equal(t, -3, eval)
		require.Equal(t, eval, node.Minimax(3, true))
		require.Equal(t, eval, node.Negamax(3, 1))
		require.Equal(t, eval, node.AlphaBeta(3, MinScore, MaxScore, 1))
	})

	t.Run("black to move keeps searching", func(t *testing.T) {
		minimax := node.Minimax(2, false)

		require.Equal(t, minimax, -node.Negamax(2, -1))
		require.Equal(t, minimax, -node.AlphaBeta(2, MinScore, MaxScore, -1))
	})
}

func TestTerminalPosition(t *testing.T) {
	s := game.New()
	s.Place(game.Position{Row: 3, Col: 3}, game.White)
	node := NewNode(s)

	require.True(t, s.IsTerminal())
	require.Equal(t, 1, node.Minimax(4, true))
	require.Equal(t, 1, node.Minimax(4, false))
	require.Equal(t, -1, node.Negamax(4, -1))
}

func TestNodePreconditions(t *testing.T) {
	node := NewNode(game.New())

	require.Panics(t, func() { node.Negamax(1, 0) }, "Sign must be +1 or -1")
	require.Panics(t, func() { node.AlphaBeta(1, MinScore, MaxScore, 2) }, "Sign must be +1 or -1")
	require.Panics(t, func() { node.Minimax(-1, true) }, "Depth must not be negative")
}

func TestNodeWith(t *testing.T) {
	node := NewNode(game.New())
	child := node.With(game.Position{Row: 1, Col: 1}, game.White)

	parent := node.State()
	derived := child.State()
	require.Equal(t, game.Empty, parent.At(game.Position{Row: 1, Col: 1}))
	require.Equal(t, game.White, derived.At(game.Position{Row: 1, Col: 1}))
}
