package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFrontierOrdersByAscendingID(t *testing.T) {
	f := NewLevelFrontier()
	f.Add(5, 10)
	f.Add(1, 20)
	f.Add(3, 5)

	var got []int
	for f.Len() > 0 {
		id, _, ok := f.PopMin()
		require.True(t, ok)
		got = append(got, id)
	}
	assert.Equal(t, []int{1, 3, 5}, got)
}

func TestLevelFrontierEmptyPop(t *testing.T) {
	f := NewLevelFrontier()
	_, _, ok := f.PopMin()
	assert.False(t, ok)
}
