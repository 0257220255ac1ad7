package board

import (
	"strconv"
	"strings"

	"schokoban-go/heuristic"
)

// DeadlockChecker decides whether a Board is a structural dead end. The
// board package depends on it only through this interface so the concrete
// oracle (precomputed mask plus wall-sweep plus box-freeze) can live in a
// separate package without an import cycle — the mask data itself
// (DeadlockMask) is still carried directly on the Board, per the data
// model; only the runtime *check* is injected.
type DeadlockChecker interface {
	Check(b *Board) bool
}

// noopChecker treats every position as live; used only when a Board is
// constructed without a checker (e.g. in isolated unit tests of
// legal-push enumeration).
type noopChecker struct{}

func (noopChecker) Check(*Board) bool { return false }

// Board is an immutable Sokoban push-state: a grid snapshot plus the
// derived pusher-reachability zone and box set needed to hash and score
// it. No Board is ever mutated after construction; Push returns a new
// one.
type Board struct {
	grid     Grid
	pusher   Pos
	boxes    []Pos // sorted
	goals    []Pos // sorted, fixed for the level
	interior []Pos // sorted
	steps    int
	maxSteps int
	mask     *DeadlockMask
	checker  DeadlockChecker
	hash     string
}

// Push is one legal move: the pusher square the move is taken from and
// the direction the box is pushed in.
type Push struct {
	Pusher Pos
	DR, DC int
}

func newBoard(grid Grid, pusher Pos, goals []Pos, steps, maxSteps int, mask *DeadlockMask, checker DeadlockChecker) *Board {
	if checker == nil {
		checker = noopChecker{}
	}
	b := &Board{
		grid:     grid,
		pusher:   pusher,
		goals:    goals,
		steps:    steps,
		maxSteps: maxSteps,
		mask:     mask,
		checker:  checker,
	}
	b.interior = floodFill(grid, pusher, func(k SquareKind) bool { return k.IsBoxLike() })
	b.boxes = findBoxes(grid)
	b.hash = computeHash(b.interior, b.boxes)
	return b
}

func findBoxes(g Grid) []Pos {
	var boxes []Pos
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			p := Pos{r, c}
			if g.At(p).IsBoxLike() {
				boxes = append(boxes, p)
			}
		}
	}
	sortPositions(boxes)
	return boxes
}

// computeHash is the deterministic key of (sorted(interior), sorted(boxes)).
// Two Boards with the same key are the same push-equivalence class.
func computeHash(interior, boxes []Pos) string {
	var sb strings.Builder
	for _, p := range interior {
		sb.WriteByte('i')
		sb.WriteString(strconv.Itoa(p.Row))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(p.Col))
		sb.WriteByte(';')
	}
	sb.WriteByte('|')
	for _, p := range boxes {
		sb.WriteByte('b')
		sb.WriteString(strconv.Itoa(p.Row))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(p.Col))
		sb.WriteByte(';')
	}
	return sb.String()
}

// Hash is the canonical push-equivalence key.
func (b *Board) Hash() string { return b.hash }

// Steps is the number of pushes applied since the root.
func (b *Board) Steps() int { return b.steps }

// MaxSteps is the search cutoff depth for this level.
func (b *Board) MaxSteps() int { return b.maxSteps }

// Grid exposes the current grid, for callers (e.g. the deadlock oracle)
// that need direct cell access. The returned Grid must not be mutated.
func (b *Board) Grid() Grid { return b.grid }

// Pusher is the pusher's current position.
func (b *Board) Pusher() Pos { return b.pusher }

// Boxes is the sorted set of current box positions.
func (b *Board) Boxes() []Pos { return b.boxes }

// Goals is the sorted set of goal positions, fixed for the level.
func (b *Board) Goals() []Pos { return b.goals }

// Interior is the sorted set of squares reachable from the pusher without
// crossing a wall or a box.
func (b *Board) Interior() []Pos { return b.interior }

// Mask is the level-wide live-square table shared by every Board derived
// from the same root.
func (b *Board) Mask() *DeadlockMask { return b.mask }

// LegalPushes enumerates every legal push from this position: for each
// box and each cardinal direction, the pusher's standing square must be
// in the interior and the destination must be a bare floor or goal cell
// (not a wall, not another box, and not the cell the pusher occupies).
func (b *Board) LegalPushes() []Push {
	var out []Push
	for _, box := range b.boxes {
		for _, d := range cardinals {
			standing := box.add(-d[0], -d[1])
			dest := box.add(d[0], d[1])
			if !containsPos(b.interior, standing) {
				continue
			}
			destKind := b.grid.At(dest)
			if destKind != Floor && destKind != Goal {
				continue
			}
			out = append(out, Push{Pusher: standing, DR: d[0], DC: d[1]})
		}
	}
	return out
}

// Move applies a push, returning a fresh Board. The push must be a member
// of legal_pushes() of the receiver; violating that precondition is an
// internal invariant failure rather than a recoverable error, since it can
// only be caused by a bug in the caller (the search never constructs a
// push except from LegalPushes).
func (b *Board) Move(p Push) (*Board, error) {
	box := p.Pusher.add(p.DR, p.DC)
	dest := box.add(p.DR, p.DC)

	if !containsPos(b.interior, p.Pusher) {
		return nil, newInvariantViolation("push %+v: pusher square not in interior", p)
	}
	boxKind := b.grid.At(box)
	if !boxKind.IsBoxLike() {
		return nil, newInvariantViolation("push %+v: no box at %+v", p, box)
	}
	destKind := b.grid.At(dest)
	if destKind != Floor && destKind != Goal {
		return nil, newInvariantViolation("push %+v: destination %+v not free", p, dest)
	}

	g := b.grid.clone()

	oldPusherKind := g.At(p.Pusher)
	if oldPusherKind == PlayerOnGoal {
		g.set(p.Pusher, Goal)
	} else {
		g.set(p.Pusher, Floor)
	}

	if boxKind == BoxOnGoal {
		g.set(box, PlayerOnGoal)
	} else {
		g.set(box, Player)
	}

	if destKind == Goal {
		g.set(dest, BoxOnGoal)
	} else {
		g.set(dest, Box)
	}

	next := newBoard(g, box, b.goals, b.steps+1, b.maxSteps, b.mask, b.checker)

	if len(next.boxes) != len(b.boxes) {
		return nil, newInvariantViolation("push %+v: box count changed %d -> %d", p, len(b.boxes), len(next.boxes))
	}
	return next, nil
}

// Reward classifies the current position: WIN if every box sits on a
// goal, LOSS if the deadlock checker fires or the step budget is spent,
// STEP otherwise. The value is the negated minimum-cost box-to-goal
// matching, so higher (closer to zero) is better.
func (b *Board) Reward() Reward {
	value := -heuristic.MinCostMatching(toPairs(b.boxes), toPairs(b.goals))

	if b.allBoxesParked() {
		return Reward{Value: value, Kind: Win}
	}
	if b.steps > b.maxSteps || b.checker.Check(b) {
		return Reward{Value: value, Kind: Loss}
	}
	return Reward{Value: value, Kind: Step}
}

func (b *Board) allBoxesParked() bool {
	for r := 0; r < b.grid.Height; r++ {
		for c := 0; c < b.grid.Width; c++ {
			if b.grid.At(Pos{r, c}) == Box {
				return false
			}
		}
	}
	return true
}

func toPairs(ps []Pos) []heuristic.Point {
	out := make([]heuristic.Point, len(ps))
	for i, p := range ps {
		out[i] = heuristic.Point{R: p.Row, C: p.Col}
	}
	return out
}
