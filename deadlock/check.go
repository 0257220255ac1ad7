package deadlock

import "schokoban-go/board"

// Oracle is the runtime DeadlockChecker: empty legal moves, a box on a
// dead cell, the four-edge wall-sweep test, and (additionally) the
// pairwise box-freeze fixed point. It implements board.DeadlockChecker.
type Oracle struct {
	// EnableBoxFreeze toggles the pairwise vertical/horizontal lock
	// check. The oracle stays sound with it disabled; enabling it only
	// adds pruning.
	EnableBoxFreeze bool
}

// Check reports whether b is a provable dead end.
func (o Oracle) Check(b *board.Board) bool {
	if len(b.LegalPushes()) == 0 {
		return true
	}
	if mask := b.Mask(); mask != nil {
		for _, box := range b.Boxes() {
			if !mask.IsLive(box) {
				return true
			}
		}
	}
	if wallSweepDeadlock(b) {
		return true
	}
	if o.EnableBoxFreeze && boxFreezeDeadlock(b) {
		return true
	}
	return false
}

// wallSweepDeadlock scans inward from each of the four grid edges,
// finding the first row/column containing any non-wall cell, and counts
// boxes vs. goal-like cells within that strip. More boxes than goals
// there means a box is stuck in a wall-adjacent strip with nowhere to go.
func wallSweepDeadlock(b *board.Board) bool {
	g := b.Grid()

	firstRowFromTop := firstNonWallLine(g.Height, func(i int) bool { return rowHasNonWall(g, i) })
	if firstRowFromTop >= 0 && rowOverflows(g, firstRowFromTop) {
		return true
	}
	firstRowFromBottom := lastNonWallLine(g.Height, func(i int) bool { return rowHasNonWall(g, i) })
	if firstRowFromBottom >= 0 && rowOverflows(g, firstRowFromBottom) {
		return true
	}
	firstColFromLeft := firstNonWallLine(g.Width, func(i int) bool { return colHasNonWall(g, i) })
	if firstColFromLeft >= 0 && colOverflows(g, firstColFromLeft) {
		return true
	}
	firstColFromRight := lastNonWallLine(g.Width, func(i int) bool { return colHasNonWall(g, i) })
	if firstColFromRight >= 0 && colOverflows(g, firstColFromRight) {
		return true
	}
	return false
}

func firstNonWallLine(n int, hasNonWall func(int) bool) int {
	for i := 0; i < n; i++ {
		if hasNonWall(i) {
			return i
		}
	}
	return -1
}

func lastNonWallLine(n int, hasNonWall func(int) bool) int {
	for i := n - 1; i >= 0; i-- {
		if hasNonWall(i) {
			return i
		}
	}
	return -1
}

func rowHasNonWall(g board.Grid, row int) bool {
	for c := 0; c < g.Width; c++ {
		if g.At(board.Pos{Row: row, Col: c}) != board.Wall {
			return true
		}
	}
	return false
}

func colHasNonWall(g board.Grid, col int) bool {
	for r := 0; r < g.Height; r++ {
		if g.At(board.Pos{Row: r, Col: col}) != board.Wall {
			return true
		}
	}
	return false
}

func rowOverflows(g board.Grid, row int) bool {
	boxes, goals := 0, 0
	for c := 0; c < g.Width; c++ {
		k := g.At(board.Pos{Row: row, Col: c})
		if k.IsBoxLike() {
			boxes++
		}
		if k.IsGoalLike() {
			goals++
		}
	}
	return boxes > goals
}

func colOverflows(g board.Grid, col int) bool {
	boxes, goals := 0, 0
	for r := 0; r < g.Height; r++ {
		k := g.At(board.Pos{Row: r, Col: col})
		if k.IsBoxLike() {
			boxes++
		}
		if k.IsGoalLike() {
			goals++
		}
	}
	return boxes > goals
}

// boxFreezeDeadlock implements the pairwise "locked" analysis: a box is
// vertically locked if a wall or dead cell lies on both its top and
// bottom, or recursively if one of those adjacent cells holds another box
// that is horizontally locked, and symmetrically for horizontal lock. A
// box that is both vertically and horizontally locked and not parked on a
// goal is a dead end. Computed as a two-pass fixed point over the current
// box set.
func boxFreezeDeadlock(b *board.Board) bool {
	g := b.Grid()
	mask := b.Mask()
	boxes := b.Boxes()
	boxSet := make(map[board.Pos]bool, len(boxes))
	for _, p := range boxes {
		boxSet[p] = true
	}

	vertical := make(map[board.Pos]bool)
	horizontal := make(map[board.Pos]bool)

	isBlocked := func(p board.Pos) bool {
		if g.At(p) == board.Wall {
			return true
		}
		return mask != nil && !mask.IsLive(p)
	}

	changed := true
	for changed {
		changed = false
		for _, p := range boxes {
			if !vertical[p] {
				up, down := board.Pos{Row: p.Row - 1, Col: p.Col}, board.Pos{Row: p.Row + 1, Col: p.Col}
				if lockedSide(up, boxSet, horizontal, isBlocked) && lockedSide(down, boxSet, horizontal, isBlocked) {
					vertical[p] = true
					changed = true
				}
			}
			if !horizontal[p] {
				left, right := board.Pos{Row: p.Row, Col: p.Col - 1}, board.Pos{Row: p.Row, Col: p.Col + 1}
				if lockedSide(left, boxSet, vertical, isBlocked) && lockedSide(right, boxSet, vertical, isBlocked) {
					horizontal[p] = true
					changed = true
				}
			}
		}
	}

	for _, p := range boxes {
		if vertical[p] && horizontal[p] && g.At(p) != board.BoxOnGoal {
			return true
		}
	}
	return false
}

func lockedSide(p board.Pos, boxSet map[board.Pos]bool, otherAxisLocked map[board.Pos]bool, isBlocked func(board.Pos) bool) bool {
	if isBlocked(p) {
		return true
	}
	return boxSet[p] && otherAxisLocked[p]
}
