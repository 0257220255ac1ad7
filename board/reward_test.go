package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewardTotalOrder(t *testing.T) {
	loss := Reward{Value: 100, Kind: Loss}
	step := Reward{Value: -100, Kind: Step}
	win := Reward{Value: -1000, Kind: Win}

	assert.True(t, loss.Less(step))
	assert.True(t, step.Less(win))
	assert.True(t, loss.Less(win))
}

func TestRewardMaxPrefersBetterKindOverValue(t *testing.T) {
	loss := Reward{Value: 1000, Kind: Loss}
	win := Reward{Value: -1000, Kind: Win}
	assert.Equal(t, win, loss.Max(win))
}

func TestRewardMaxWithinSameKind(t *testing.T) {
	a := Reward{Value: -5, Kind: Step}
	b := Reward{Value: -2, Kind: Step}
	assert.Equal(t, b, a.Max(b))
}
