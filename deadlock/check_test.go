package deadlock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schokoban-go/board"
)

func TestCheckWallSweepDeadlock(t *testing.T) {
	level := writeLevel(t,
		"#####",
		"#$ .#",
		"#@  #",
		"#####",
	)
	mask := Compute(level)
	root := board.NewRootBoard(level, mask, Oracle{}, 1000)
	// The box sits in the top-left corner. The pusher can reach the
	// squares below it and to its right, but every push would drive it
	// into a wall: legal_pushes() is empty, so the first deadlock test
	// fires immediately. The leftmost non-wall column also holds a box and
	// no goal, so the wall-sweep test fires on its own as well.
	assert.True(t, Oracle{}.Check(root))
	assert.Empty(t, root.LegalPushes())
	assert.True(t, wallSweepDeadlock(root))
}

func TestWallSweepFiresWhenBoxOutnumbersGoalsInEdgeStrip(t *testing.T) {
	level := writeLevel(t,
		"######",
		"#@$  #",
		"#    #",
		"#   .#",
		"######",
	)
	mask := Compute(level)
	root := board.NewRootBoard(level, mask, Oracle{}, 1000)
	pushes := root.LegalPushes()
	require.NotEmpty(t, pushes)

	// Push the box once along the top row, away from the pusher. The
	// goal sits two rows down, so the top row (the first non-wall row
	// from the top edge) now holds one box and zero goals: the
	// wall-sweep test must fire even though the box still has a legal
	// push remaining (further right along the top row).
	var rightPush *board.Push
	for _, p := range pushes {
		if p.DR == 0 && p.DC == 1 {
			rightPush = &p
			break
		}
	}
	require.NotNil(t, rightPush)
	next, err := root.Move(*rightPush)
	require.NoError(t, err)

	assert.True(t, Oracle{}.Check(next))
	assert.True(t, wallSweepDeadlock(next))
	assert.NotEmpty(t, next.LegalPushes())
}

func TestCheckNoDeadlockOnOpenLevel(t *testing.T) {
	level := writeLevel(t,
		"######",
		"#@$ .#",
		"######",
	)
	mask := Compute(level)
	root := board.NewRootBoard(level, mask, Oracle{}, 1000)
	assert.False(t, Oracle{}.Check(root))
}

func TestCheckEmptyLegalMovesIsDeadlock(t *testing.T) {
	level := writeLevel(t,
		"#####",
		"#@$.#",
		"#####",
	)
	mask := Compute(level)
	root := board.NewRootBoard(level, mask, Oracle{}, 1000)
	pushes := root.LegalPushes()
	require.Len(t, pushes, 1)
	next, err := root.Move(pushes[0])
	require.NoError(t, err)
	// Box is on goal, pusher boxed into the corner with no further
	// pushes possible, so Check reports a dead end through its
	// empty-legal-pushes branch. Board.Reward tests for WIN before it
	// consults the checker, so this position still scores as a WIN.
	assert.Empty(t, next.LegalPushes())
	assert.True(t, Oracle{}.Check(next))
}
