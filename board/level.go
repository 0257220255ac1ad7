package board

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Level is a parsed, validated level file: the static grid plus its
// fixed goal set, independent of any particular Board constructed from
// it.
type Level struct {
	Path  string
	Grid  Grid
	Start Pos
	Goals []Pos
}

// LevelPath returns the conventional path for a level file: filename
// level_<id>.txt inside folder.
func LevelPath(folder string, id int) string {
	return filepath.Join(folder, fmt.Sprintf("level_%d.txt", id))
}

// LoadLevel reads and validates an ASCII level file. Ragged lines are
// right-padded (conceptually) with WALL out to the longest line's width;
// any contiguous run of floor cells on the left of a row before its first
// non-floor character is then normalised to WALL, since these are
// artefacts of ragged input rather than real interior floor.
func LoadLevel(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading level file %q", path)
	}

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}
	height := len(lines)

	var issues error
	grid := newGrid(width, height)
	var start Pos
	haveStart := false
	var goals []Pos
	boxCount := 0

	for r, line := range lines {
		firstNonFloor := -1
		for c := 0; c < width; c++ {
			var kind SquareKind
			if c >= len(line) {
				kind = Wall // right-pad ragged lines with WALL
			} else {
				ch := line[c]
				var ok bool
				kind, ok = charToKind(ch)
				if !ok {
					issues = multierror.Append(issues, errors.Errorf("row %d col %d: unknown glyph %q", r, c, ch))
					kind = Wall
				}
			}
			if kind != Floor && firstNonFloor == -1 {
				firstNonFloor = c
			}
			grid.set(Pos{r, c}, kind)
		}
		if firstNonFloor == -1 {
			firstNonFloor = width // an all-floor row normalises entirely to wall
		}
		for c := 0; c < firstNonFloor; c++ {
			grid.set(Pos{r, c}, Wall)
		}
	}

	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			p := Pos{r, c}
			switch grid.At(p) {
			case Player:
				if haveStart {
					issues = multierror.Append(issues, errors.New("more than one pusher"))
				}
				start, haveStart = p, true
			case PlayerOnGoal:
				if haveStart {
					issues = multierror.Append(issues, errors.New("more than one pusher"))
				}
				start, haveStart = p, true
				goals = append(goals, p)
			case Box:
				boxCount++
			case BoxOnGoal:
				boxCount++
				goals = append(goals, p)
			case Goal:
				goals = append(goals, p)
			}
		}
	}

	if !haveStart {
		issues = multierror.Append(issues, errors.New("no pusher found"))
	}
	if boxCount != len(goals) {
		issues = multierror.Append(issues, errors.Errorf("box count %d does not match goal count %d", boxCount, len(goals)))
	}

	if issues != nil {
		return nil, &MalformedLevel{Path: path, Issues: issues}
	}

	sortPositions(goals)
	return &Level{Path: path, Grid: grid, Start: start, Goals: goals}, nil
}

// NewRootBoard constructs the root Board for a level, wiring in the
// shared deadlock mask and checker every derived Board will carry.
func NewRootBoard(level *Level, mask *DeadlockMask, checker DeadlockChecker, maxSteps int) *Board {
	return newBoard(level.Grid.clone(), level.Start, level.Goals, 0, maxSteps, mask, checker)
}
