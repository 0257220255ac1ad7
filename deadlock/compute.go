// Package deadlock implements the live-square oracle: per-goal
// reverse-reachability precomputation plus the runtime structural checks
// (mask lookup, wall-sweep, pairwise box-freeze) that classify a Board as
// a dead end.
package deadlock

import "schokoban-go/board"

// Compute builds the live-square mask for a level: for each goal, a
// reverse-Sokoban BFS (pulling a single box) from every side the pusher
// could stand on, unioning every cell the box ever occupies. A cell is
// live iff a box placed there can, in isolation, be pulled back to some
// goal.
func Compute(level *board.Level) *board.DeadlockMask {
	mask := board.NewDeadlockMask(level.Grid.Width, level.Grid.Height)
	for _, goal := range level.Goals {
		for _, d := range pullStartOffsets {
			pusherStart := board.Pos{Row: goal.Row + d.Row, Col: goal.Col + d.Col}
			rb, ok := board.NewSingleBoxReverseBoard(level.Grid, goal, pusherStart)
			if !ok {
				continue
			}
			markReachable(rb, mask)
		}
	}
	return mask
}

var pullStartOffsets = [4]board.Pos{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

// markReachable runs BFS over reverse-Sokoban pull moves from rb, marking
// every box position ever visited as live.
func markReachable(rb *board.ReverseBoard, mask *board.DeadlockMask) {
	seen := map[board.Pos]bool{rb.Box(): true}
	mask.MarkLive(rb.Box())

	type state struct {
		pusher, box board.Pos
	}
	startKey := state{rb.Pusher(), rb.Box()}
	visitedStates := map[state]bool{startKey: true}
	queue := []*board.ReverseBoard{rb}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, d := range cur.LegalPulls() {
			next := cur.Pull(d)
			key := state{next.Pusher(), next.Box()}
			if visitedStates[key] {
				continue
			}
			visitedStates[key] = true
			if !seen[next.Box()] {
				seen[next.Box()] = true
				mask.MarkLive(next.Box())
			}
			queue = append(queue, next)
		}
	}
}
