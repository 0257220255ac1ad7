package mcts

import "container/heap"

// LevelFrontier orders a suite-mode run's pending levels for the solver
// driver. It is adapted from a thread-safe min-heap in the retrieved
// source tree: the container/heap idiom is kept, but the mutex/condvar
// machinery is dropped, since the search is single-threaded end to end
// and nothing ever contends on the frontier concurrently.
type LevelFrontier struct {
	items frontierHeap
}

// frontierItem is one pending level: its id (the min-heap key, so suite
// mode processes levels in ascending id order) and a caller-supplied
// estimate carried alongside it; the estimate plays no part in ordering.
type frontierItem struct {
	LevelID  int
	Estimate float64
}

type frontierHeap []frontierItem

func (h frontierHeap) Len() int            { return len(h) }
func (h frontierHeap) Less(i, j int) bool  { return h[i].LevelID < h[j].LevelID }
func (h frontierHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *frontierHeap) Push(x interface{}) { *h = append(*h, x.(frontierItem)) }
func (h *frontierHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// NewLevelFrontier returns an empty frontier.
func NewLevelFrontier() *LevelFrontier {
	return &LevelFrontier{}
}

// Add enqueues a pending level.
func (f *LevelFrontier) Add(levelID int, estimate float64) {
	heap.Push(&f.items, frontierItem{LevelID: levelID, Estimate: estimate})
}

// Len reports how many levels remain.
func (f *LevelFrontier) Len() int { return len(f.items) }

// PopMin removes and returns the lowest-id pending level.
func (f *LevelFrontier) PopMin() (id int, estimate float64, ok bool) {
	if len(f.items) == 0 {
		return 0, 0, false
	}
	item := heap.Pop(&f.items).(frontierItem)
	return item.LevelID, item.Estimate, true
}
