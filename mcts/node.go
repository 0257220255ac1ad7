// Package mcts implements the two Monte-Carlo Tree Search engines: the
// primary transposition-rewiring engine ("schoko") and a simpler baseline
// ("vanilla") with a variance-augmented UCT score and no rewiring.
package mcts

import (
	"math"
	"math/rand"

	"schokoban-go/board"
)

// Node is the tree-side wrapper around a Board. Parent owns children;
// parent is a non-owning back reference, so the parent/child cycle is
// expressed one way only.
type Node struct {
	state  *board.Board
	parent *Node
	move   board.Push
	hasMv  bool // false only at the root, which has no incoming move
	hash   string
	depth  int

	children map[board.Push]*Node

	n        int
	q        float64
	maxValue board.Reward
	reward   board.Reward

	// sumSq accumulates rollout-value squares for the vanilla engine's
	// variance bonus; unused by the rewiring engine.
	sumSq float64
}

func newNode(state *board.Board, parent *Node, move board.Push, hasMv bool) *Node {
	depth := 0
	if parent != nil {
		depth = parent.depth + 1
	}
	reward := state.Reward()
	return &Node{
		state:    state,
		parent:   parent,
		move:     move,
		hasMv:    hasMv,
		hash:     state.Hash(),
		depth:    depth,
		children: make(map[board.Push]*Node),
		reward:   reward,
		maxValue: reward,
	}
}

// isUnvisited reports the UNVISITED state (n == 0).
func (nd *Node) isUnvisited() bool { return nd.n == 0 }

// isLeaf reports VISITED_LEAF: visited, no children, not terminal.
func (nd *Node) isLeaf() bool {
	return nd.n > 0 && len(nd.children) == 0 && nd.reward.Kind == board.Step
}

// isInternal reports INTERNAL: has children.
func (nd *Node) isInternal() bool { return len(nd.children) > 0 }

// uctScore is the plain UCT score used by visited siblings in the
// rewiring engine: q + C*sqrt(2*ln(parent.n)/n).
func uctScore(nd *Node, c float64) float64 {
	if nd.parent == nil || nd.n == 0 {
		return math.Inf(1)
	}
	return nd.q + c*math.Sqrt(2*math.Log(float64(nd.parent.n))/float64(nd.n))
}

// varianceUctScore is the vanilla engine's score: the plain UCT term plus
// a variance bonus sqrt(sum_sq/n - q^2 + D).
func varianceUctScore(nd *Node, c, d float64) float64 {
	if nd.parent == nil || nd.n == 0 {
		return math.Inf(1)
	}
	variance := nd.sumSq/float64(nd.n) - nd.q*nd.q + d
	if variance < 0 {
		variance = 0
	}
	return nd.q + c*math.Sqrt(2*math.Log(float64(nd.parent.n))/float64(nd.n)) + math.Sqrt(variance)
}

// update backs up a rollout value along the ancestor chain: running mean
// of q, bump n, and widen max_value under the reward total order.
func (nd *Node) update(value float64, maxValue board.Reward, trackVariance bool) {
	for cur := nd; cur != nil; cur = cur.parent {
		cur.q = (cur.q*float64(cur.n) + value) / float64(cur.n+1)
		if trackVariance {
			cur.sumSq += value * value
		}
		cur.n++
		cur.maxValue = cur.maxValue.Max(maxValue)
	}
}

// recomputeMaxValue refreshes max_value from the node's own static
// reward and its current children, used after a child is detached.
func (nd *Node) recomputeMaxValue() {
	best := nd.reward
	for _, c := range nd.children {
		best = best.Max(c.maxValue)
	}
	nd.maxValue = best
}

// selectChild implements "unvisited-first, then max-UCT-score with random
// tie-break" over nd's children, using scoreFn to score visited children.
func selectChild(nd *Node, rng *rand.Rand, scoreFn func(*Node) float64) *Node {
	var unvisited []*Node
	for _, c := range nd.children {
		if c.isUnvisited() {
			unvisited = append(unvisited, c)
		}
	}
	if len(unvisited) > 0 {
		return unvisited[rng.Intn(len(unvisited))]
	}

	var best []*Node
	bestScore := math.Inf(-1)
	for _, c := range nd.children {
		s := scoreFn(c)
		switch {
		case s > bestScore:
			bestScore = s
			best = []*Node{c}
		case s == bestScore:
			best = append(best, c)
		}
	}
	if len(best) == 0 {
		return nil
	}
	return best[rng.Intn(len(best))]
}

// uniformRandomChild picks one of nd's children uniformly at random, used
// to choose which freshly expanded child to roll out (spec step 2: "pick
// one child at random, back up that child's reward").
func uniformRandomChild(nd *Node, rng *rand.Rand) *Node {
	if len(nd.children) == 0 {
		return nil
	}
	children := make([]*Node, 0, len(nd.children))
	for _, c := range nd.children {
		children = append(children, c)
	}
	return children[rng.Intn(len(children))]
}

// selectMove picks, among nd's children, the one with the greatest
// max_value (random tie-break) — used for solution extraction.
func selectMove(nd *Node, rng *rand.Rand) *Node {
	var best []*Node
	var bestVal board.Reward
	first := true
	for _, c := range nd.children {
		if first || bestVal.Less(c.maxValue) {
			bestVal = c.maxValue
			best = []*Node{c}
			first = false
		} else if !c.maxValue.Less(bestVal) {
			best = append(best, c)
		}
	}
	if len(best) == 0 {
		return nil
	}
	return best[rng.Intn(len(best))]
}
