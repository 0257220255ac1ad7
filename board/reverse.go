package board

// ReverseBoard is a distinct position type used only by the deadlock
// precomputer: a single box and a pusher, with pull-move semantics
// instead of push. It shares Grid and floodFill with Board but differs
// in its move operator and legality predicate, so it is not expressed as
// a parameterized variant of Board (a push needs a free destination and a
// pusher behind the box; a pull needs a free destination-for-pusher and a
// box behind the pusher).
type ReverseBoard struct {
	grid   Grid
	pusher Pos
	box    Pos
}

// NewSingleBoxReverseBoard seeds a reverse simulation with one box on
// goal and the pusher standing on the given adjacent cell. Returns false
// if the starting cell is not usable (off-grid or a wall).
func NewSingleBoxReverseBoard(levelGrid Grid, goal, pusherStart Pos) (*ReverseBoard, bool) {
	if !levelGrid.inBounds(pusherStart) || levelGrid.At(pusherStart) == Wall {
		return nil, false
	}
	if !levelGrid.inBounds(goal) || levelGrid.At(goal) == Wall {
		return nil, false
	}
	return &ReverseBoard{grid: levelGrid, pusher: pusherStart, box: goal}, true
}

// Box is the current box position.
func (r *ReverseBoard) Box() Pos { return r.box }

// Pusher is the current pusher position.
func (r *ReverseBoard) Pusher() Pos { return r.pusher }

// LegalPulls enumerates every legal pull: the pusher moves one step in
// direction (dr, dc) and drags the box onto the square it just left. The
// box must be adjacent to the pusher on the side opposite the direction
// of travel, and the square the pusher steps onto must be in bounds and
// not a wall. The pusher never walks without pulling.
func (r *ReverseBoard) LegalPulls() []Pos {
	var dirs []Pos
	for _, d := range cardinals {
		// Box must sit on the far side of the pusher from the direction
		// of travel, so it lands on the pusher's old square after the pull.
		boxMustBeAt := r.pusher.add(-d[0], -d[1])
		if r.box != boxMustBeAt {
			continue
		}
		pusherDest := r.pusher.add(d[0], d[1])
		if !r.grid.inBounds(pusherDest) || r.grid.At(pusherDest) == Wall {
			continue
		}
		dirs = append(dirs, Pos{d[0], d[1]})
	}
	return dirs
}

// Pull applies one legal pull in direction d, returning the resulting
// ReverseBoard. d must have come from LegalPulls().
func (r *ReverseBoard) Pull(d Pos) *ReverseBoard {
	return &ReverseBoard{
		grid:   r.grid,
		pusher: r.pusher.add(d.Row, d.Col),
		box:    r.pusher,
	}
}
