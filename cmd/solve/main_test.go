package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schokoban-go/board"
	"schokoban-go/deadlock"
)

func TestSolveLevelTrivialWin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(board.LevelPath(dir, 0), []byte("####\n#@$.#\n####\n"), 0o644))

	store, err := deadlock.OpenStore(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	defer store.Close()

	cfg := runConfig{folder: dir, iterations: 100, maxSteps: 100, mode: "schoko", seed: 1}
	outcome, moves, err := solveLevel(store, 0, cfg)
	require.NoError(t, err)
	assert.Equal(t, "WIN", outcome)
	assert.Equal(t, 1, moves)
}

func TestSolveLevelUnsolvableReportsLoss(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(board.LevelPath(dir, 0), []byte("#####\n#$ .#\n#@  #\n#####\n"), 0o644))

	store, err := deadlock.OpenStore(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	defer store.Close()

	cfg := runConfig{folder: dir, iterations: 200, maxSteps: 100, mode: "schoko", seed: 1}
	outcome, _, err := solveLevel(store, 0, cfg)
	require.NoError(t, err)
	assert.Equal(t, "LOSS", outcome)
}

func TestSearchSpaceEstimateEmptyGridIsZero(t *testing.T) {
	mask := board.NewDeadlockMask(3, 3)
	assert.Equal(t, 0.0, searchSpaceEstimate(board.Grid{}, mask, 0))
}
