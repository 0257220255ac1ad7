package mcts

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"schokoban-go/board"
)

func TestSelectChildPrefersUnvisited(t *testing.T) {
	parent := &Node{n: 5, children: map[board.Push]*Node{}}
	visited := &Node{parent: parent, n: 3, q: 0.5}
	unvisited := &Node{parent: parent, n: 0}
	parent.children[board.Push{DC: 1}] = visited
	parent.children[board.Push{DC: 2}] = unvisited

	rng := rand.New(rand.NewSource(1))
	got := selectChild(parent, rng, func(nd *Node) float64 { return uctScore(nd, 8) })
	assert.Same(t, unvisited, got)
}

func TestUpdatePropagatesToAncestors(t *testing.T) {
	grandparent := &Node{}
	parent := &Node{parent: grandparent}
	leaf := &Node{parent: parent}

	leaf.update(1.0, board.Reward{Value: 1.0, Kind: board.Step}, false)

	assert.Equal(t, 1, leaf.n)
	assert.Equal(t, 1.0, leaf.q)
	assert.Equal(t, 1, parent.n)
	assert.Equal(t, 1, grandparent.n)
}

func TestSelectMoveReturnsOneOfTiedChildren(t *testing.T) {
	parent := &Node{children: map[board.Push]*Node{}}
	a := &Node{maxValue: board.Reward{Value: 5, Kind: board.Step}}
	b := &Node{maxValue: board.Reward{Value: 5, Kind: board.Step}}
	parent.children[board.Push{DC: 1}] = a
	parent.children[board.Push{DC: 2}] = b

	rng := rand.New(rand.NewSource(1))
	got := selectMove(parent, rng)
	assert.True(t, got == a || got == b)
}
