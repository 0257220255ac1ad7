package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLevel(t *testing.T, dir string, id int, lines ...string) string {
	t.Helper()
	content := ""
	for i, l := range lines {
		if i > 0 {
			content += "\n"
		}
		content += l
	}
	path := LevelPath(dir, id)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLevelTrivialWin(t *testing.T) {
	dir := t.TempDir()
	path := writeLevel(t, dir, 0,
		"####",
		"#@$.#",
		"####",
	)
	level, err := LoadLevel(path)
	require.NoError(t, err)
	assert.Len(t, level.Goals, 1)

	b := NewRootBoard(level, nil, nil, 1000)
	pushes := b.LegalPushes()
	require.Len(t, pushes, 1)

	next, err := b.Move(pushes[0])
	require.NoError(t, err)
	assert.Equal(t, Win, next.Reward().Kind)
}

func TestLoadLevelRejectsMissingPusher(t *testing.T) {
	dir := t.TempDir()
	path := writeLevel(t, dir, 0,
		"####",
		"#$.#",
		"####",
	)
	_, err := LoadLevel(path)
	require.Error(t, err)
	var malformed *MalformedLevel
	require.ErrorAs(t, err, &malformed)
}

func TestLoadLevelRejectsBoxGoalMismatch(t *testing.T) {
	dir := t.TempDir()
	path := writeLevel(t, dir, 0,
		"#####",
		"#@$$.#",
		"#####",
	)
	_, err := LoadLevel(path)
	require.Error(t, err)
}

func TestLoadLevelNormalizesRaggedMargin(t *testing.T) {
	dir := t.TempDir()
	// Row 1 has a leading floor run before the first wall; it must
	// normalise to WALL rather than stay reachable floor.
	path := writeLevel(t, dir, 0,
		"  ###",
		"  #@$.#",
		"  ###",
	)
	level, err := LoadLevel(path)
	require.NoError(t, err)
	assert.Equal(t, Wall, level.Grid.At(Pos{1, 0}))
	assert.Equal(t, Wall, level.Grid.At(Pos{1, 1}))
	assert.Equal(t, Wall, level.Grid.At(Pos{1, 2}))
}

func TestLevelPathConvention(t *testing.T) {
	assert.Equal(t, filepath.Join("levels", "level_3.txt"), LevelPath("levels", 3))
}
