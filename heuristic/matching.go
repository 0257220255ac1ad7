// Package heuristic computes the minimum-cost perfect matching between
// boxes and goals on Manhattan distance, used as MCTS's rollout value.
package heuristic

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Point is a grid coordinate, independent of the board package so this
// package has no dependency on it (the board package depends on this one,
// not the other way around).
type Point struct {
	R, C int
}

func manhattan(a, b Point) float64 {
	return math.Abs(float64(a.R-b.R)) + math.Abs(float64(a.C-b.C))
}

// MinCostMatching returns the minimum total Manhattan distance over every
// perfect assignment of boxes to goals (Kuhn-Munkres / Hungarian
// algorithm). len(boxes) must equal len(goals); returns 0 for the empty
// case. The matching ignores walls and other boxes by design — reachability
// is the deadlock oracle's concern, not this one's.
func MinCostMatching(boxes, goals []Point) float64 {
	n := len(boxes)
	if n == 0 {
		return 0
	}
	if len(goals) != n {
		// Can only happen on a malformed level; the loader already
		// rejects box/goal count mismatches, so this is unreachable
		// in practice. Fail soft rather than panic mid-search.
		return math.Inf(1)
	}

	cost := mat.NewDense(n, n, nil)
	for i, b := range boxes {
		for j, g := range goals {
			cost.Set(i, j, manhattan(b, g))
		}
	}
	return hungarian(cost, n)
}

// hungarian runs the Kuhn-Munkres algorithm (Jonker-Volgenant style
// potential/slack formulation) on an n x n non-negative cost matrix and
// returns the minimum total assignment cost. No module in the retrieval
// pack ships an assignment solver, so this is hand-written; it only
// touches `cost` through gonum's mat.Dense accessors.
func hungarian(cost *mat.Dense, n int) float64 {
	const inf = math.MaxFloat64 / 4

	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1) // p[j] = row matched to column j (1-indexed), 0 = unmatched
	way := make([]int, n+1)

	at := func(i, j int) float64 { return cost.At(i-1, j-1) }

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := at(i0, j) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	total := 0.0
	for j := 1; j <= n; j++ {
		if p[j] != 0 {
			total += at(p[j], j)
		}
	}
	return total
}
