package searcher

import (
	"cmp"
	"fmt"
	"slices"

	"growth/game"
)

// Tree is a fully materialized game tree stored in an arena. Node 0 is the
// root; each node owns the indices of its children. White moves at even
// plies and Black at odd plies. Memory grows with branching^depth, so keep
// depths small.
type Tree struct {
	nodes    []treeNode
	depth    int
	evaluate game.Evaluate
}

type treeNode struct {
	move     game.Position // Move that led here, unset for the root
	state    game.State
	ply      int
	children []int
}

// BuildTree expands every line from state down to depth plies, stopping
// early where the side to move has no legal moves.
func BuildTree(state game.State, depth int) *Tree {
	return buildTree(state, depth, game.Material)
}

// BuildTree materializes a tree scored with the searcher's evaluation function.
func (s *Searcher) BuildTree(state game.State, depth int) *Tree {
	return buildTree(state, depth, s.evaluate)
}

func buildTree(state game.State, depth int, evaluate game.Evaluate) *Tree {
	checkDepth(depth)
	t := &Tree{
		nodes:    []treeNode{{state: state}},
		depth:    depth,
		evaluate: evaluate,
	}
	// Breadth-first: nodes are appended in ply order, so the frontier is
	// simply the tail of the arena.
	for i := 0; i < len(t.nodes); i++ {
		if t.nodes[i].ply == depth {
			continue
		}
		color := turn(t.nodes[i].ply)
		parent := t.nodes[i].state
		for _, pos := range parent.LegalMoves(color) {
			t.nodes = append(t.nodes, treeNode{
				move:  pos,
				state: parent.With(pos, color),
				ply:   t.nodes[i].ply + 1,
			})
			t.nodes[i].children = append(t.nodes[i].children, len(t.nodes)-1)
		}
	}
	return t
}

func turn(ply int) game.Color {
	if ply%2 == 0 {
		return game.White
	}
	return game.Black
}

// Len returns the number of materialized nodes, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) Depth() int {
	return t.depth
}

// Minimax returns the minimax value of the root.
func (t *Tree) Minimax() int {
	return t.value(0)
}

func (t *Tree) value(index int) int {
	node := &t.nodes[index]
	if len(node.children) == 0 {
		return t.evaluate(node.state)
	}

	if turn(node.ply) == game.White {
		best := MinScore
		for _, child := range node.children {
			best = max(best, t.value(child))
		}
		return best
	}
	best := MaxScore
	for _, child := range node.children {
		best = min(best, t.value(child))
	}
	return best
}

// Rank sorts the root's children by minimax value, best for White first
// with ties in generator order, and returns at most n of them.
func (t *Tree) Rank(n int) []ScoredMove {
	if n < 0 {
		panic(fmt.Sprintf("negative move count %d", n))
	}
	root := t.nodes[0]
	moves := make([]ScoredMove, 0, len(root.children))
	for _, child := range root.children {
		moves = append(moves, ScoredMove{Score: t.value(child), Move: t.nodes[child].move})
	}
	slices.SortStableFunc(moves, func(a, b ScoredMove) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(moves) > n {
		moves = moves[:n]
	}
	return moves
}
