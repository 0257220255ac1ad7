package board

import "sort"

// Pos is a (row, col) grid coordinate.
type Pos struct {
	Row, Col int
}

func (p Pos) add(dr, dc int) Pos { return Pos{p.Row + dr, p.Col + dc} }

// cardinals are the four push/pull directions, in a fixed enumeration
// order. Order is not externally visible (§5): it only affects iteration,
// never outcome.
var cardinals = [4][2]int{
	{-1, 0}, // up
	{1, 0},  // down
	{0, -1}, // left
	{0, 1},  // right
}

// Grid is a rectangular 2-D array of square kinds with fixed dimensions
// for the lifetime of a Board. It is always copied, never mutated in
// place, once handed to a Board.
type Grid struct {
	Width, Height int
	cells         []SquareKind
}

func newGrid(width, height int) Grid {
	return Grid{Width: width, Height: height, cells: make([]SquareKind, width*height)}
}

func (g Grid) inBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.Height && p.Col >= 0 && p.Col < g.Width
}

func (g Grid) At(p Pos) SquareKind {
	if !g.inBounds(p) {
		return Wall
	}
	return g.cells[p.Row*g.Width+p.Col]
}

// clone returns a deep copy suitable for mutation by a push/pull operator.
func (g Grid) clone() Grid {
	out := Grid{Width: g.Width, Height: g.Height, cells: make([]SquareKind, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

func (g Grid) set(p Pos, k SquareKind) {
	g.cells[p.Row*g.Width+p.Col] = k
}

// floodFill returns every cell reachable from start by repeated cardinal
// steps that never cross a wall and never cross blocked (matching
// isBlocked). The result is sorted for deterministic, canonical ordering.
func floodFill(g Grid, start Pos, isBlocked func(SquareKind) bool) []Pos {
	seen := map[Pos]bool{start: true}
	queue := []Pos{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range cardinals {
			next := cur.add(d[0], d[1])
			if seen[next] {
				continue
			}
			k := g.At(next)
			if k == Wall || isBlocked(k) {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	out := make([]Pos, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}

func sortPositions(ps []Pos) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Row != ps[j].Row {
			return ps[i].Row < ps[j].Row
		}
		return ps[i].Col < ps[j].Col
	})
}

func containsPos(ps []Pos, p Pos) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
