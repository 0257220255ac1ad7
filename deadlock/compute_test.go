package deadlock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schokoban-go/board"
)

func writeLevel(t *testing.T, lines ...string) *board.Level {
	t.Helper()
	dir := t.TempDir()
	content := ""
	for i, l := range lines {
		if i > 0 {
			content += "\n"
		}
		content += l
	}
	path := filepath.Join(dir, "level_0.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	level, err := board.LoadLevel(path)
	require.NoError(t, err)
	return level
}

func TestComputeMarksEveryGoalLive(t *testing.T) {
	level := writeLevel(t,
		"######",
		"#@$ .#",
		"######",
	)
	mask := Compute(level)
	for _, g := range level.Goals {
		assert.True(t, mask.IsLive(g), "goal %+v must be live", g)
	}
}

func TestComputeMarksPushableCorridorLive(t *testing.T) {
	level := writeLevel(t,
		"#######",
		"#@$  .#",
		"#######",
	)
	mask := Compute(level)
	// Every floor cell in the straight corridor between box and goal is
	// a valid box resting spot on the way to the goal.
	for c := 2; c <= 5; c++ {
		assert.True(t, mask.IsLive(board.Pos{Row: 1, Col: c}), "col %d must be live", c)
	}
}

func TestComputeLeavesWallsDead(t *testing.T) {
	level := writeLevel(t,
		"######",
		"#@$ .#",
		"######",
	)
	mask := Compute(level)
	assert.False(t, mask.IsLive(board.Pos{Row: 0, Col: 0}))
}
