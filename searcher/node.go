package searcher

import (
	"fmt"

	"growth/experiments/metrics"
	"growth/game"
)

// Node wraps the position a search starts from. It is a value; deriving a
// child never touches the parent.
type Node struct {
	state game.State
}

func NewNode(state game.State) Node {
	return Node{state: state}
}

func (n Node) State() game.State {
	return n.state
}

func (n Node) With(pos game.Position, color game.Color) Node {
	return Node{state: n.state.With(pos, color)}
}

func (n Node) walker() walker {
	return newWalker(game.Material, metrics.NewDummyCollector())
}

// Minimax scores the node with White maximizing and Black minimizing.
func (n Node) Minimax(depth int, maximizing bool) int {
	checkDepth(depth)
	return n.walker().minimax(n.state, depth, maximizing)
}

// Negamax scores the node from the perspective of the side to move,
// sign +1 for White and -1 for Black.
func (n Node) Negamax(depth, sign int) int {
	checkDepth(depth)
	checkSign(sign)
	return n.walker().negamax(n.state, depth, sign)
}

// AlphaBeta is Negamax with pruning. With the full [MinScore, MaxScore]
// window it returns exactly the Negamax score.
func (n Node) AlphaBeta(depth, alpha, beta, sign int) int {
	checkDepth(depth)
	checkSign(sign)
	return n.walker().alphaBeta(n.state, depth, alpha, beta, sign)
}

func checkDepth(depth int) {
	if depth < 0 {
		panic(fmt.Sprintf("negative search depth %d", depth))
	}
}

func checkSign(sign int) {
	if sign != 1 && sign != -1 {
		panic(fmt.Sprintf("sign must be +1 or -1, got %d", sign))
	}
}
