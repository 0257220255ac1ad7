package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinCostMatchingEmpty(t *testing.T) {
	assert.Equal(t, 0.0, MinCostMatching(nil, nil))
}

func TestMinCostMatchingAlreadyParked(t *testing.T) {
	boxes := []Point{{0, 0}, {1, 1}}
	goals := []Point{{0, 0}, {1, 1}}
	assert.Equal(t, 0.0, MinCostMatching(boxes, goals))
}

func TestMinCostMatchingPicksCheaperAssignment(t *testing.T) {
	// Box 0 is near goal 1 and box 1 is near goal 0; the naive
	// index-order pairing costs more than the crossed pairing.
	boxes := []Point{{0, 0}, {0, 5}}
	goals := []Point{{0, 5}, {0, 0}}
	assert.Equal(t, 0.0, MinCostMatching(boxes, goals))
}

func TestMinCostMatchingSumsManhattan(t *testing.T) {
	boxes := []Point{{0, 0}, {3, 3}}
	goals := []Point{{0, 1}, {3, 5}}
	assert.Equal(t, 3.0, MinCostMatching(boxes, goals))
}

func TestMinCostMatchingNonNegative(t *testing.T) {
	boxes := []Point{{2, 1}, {0, 0}, {4, 4}}
	goals := []Point{{1, 1}, {3, 2}, {0, 4}}
	got := MinCostMatching(boxes, goals)
	assert.GreaterOrEqual(t, got, 0.0)
}
