// Command solve runs the push-search engine over one level, or a whole
// folder of levels in suite mode, and reports WIN/LOSS per the external
// outcome contract.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"schokoban-go/board"
	"schokoban-go/deadlock"
	"schokoban-go/mcts"
)

var (
	winStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	lossStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

func main() {
	klog.InitFlags(nil)

	levelID := flag.Int("level_id", 0, "level file index to solve (level_<id>.txt)")
	folder := flag.String("folder", "", "folder containing level_<id>.txt files (required)")
	iterations := flag.Int("iterations", 100000, "MCTS iteration budget")
	maxSteps := flag.Int("max_steps", 1000, "push-depth search cutoff")
	verbose := flag.Int("verbose", 0, "verbosity 0-3")
	mode := flag.String("mode", "schoko", "search engine: schoko or vanilla")
	seed := flag.Int64("seed", 0, "PRNG seed for tie-breaks and random child choice")
	suite := flag.Bool("suite", false, "solve every level in folder, ignoring level_id")
	flag.Parse()

	if *folder == "" {
		fmt.Fprintln(os.Stderr, "folder is required")
		os.Exit(2)
	}
	if *mode != "schoko" && *mode != "vanilla" {
		fmt.Fprintf(os.Stderr, "unknown mode %q: must be schoko or vanilla\n", *mode)
		os.Exit(2)
	}
	_ = flag.Set("v", strconv.Itoa(*verbose))

	store, err := deadlock.OpenStore(deadlock.StoreDir(*folder))
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "opening deadlock mask store"))
		os.Exit(2)
	}
	defer store.Close()

	cfg := runConfig{
		folder:     *folder,
		iterations: *iterations,
		maxSteps:   *maxSteps,
		verbose:    *verbose,
		mode:       *mode,
		seed:       *seed,
	}

	if *suite {
		runSuite(store, cfg)
		return
	}

	outcome, _, err := solveLevel(store, *levelID, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	printOutcome(outcome)
}

type runConfig struct {
	folder     string
	iterations int
	maxSteps   int
	verbose    int
	mode       string
	seed       int64
}

// solveLevel loads one level, ensures its deadlock mask, runs the
// configured engine, and replays the returned moves on the root Board to
// determine the reported outcome — mirroring the driver's replay-and-
// check-reward contract rather than trusting the engine's own verdict
// blindly.
func solveLevel(store *deadlock.Store, levelID int, cfg runConfig) (outcome string, moveCount int, err error) {
	path := board.LevelPath(cfg.folder, levelID)
	level, err := board.LoadLevel(path)
	if err != nil {
		return "", 0, err
	}

	mask, err := deadlock.Ensure(store, level)
	if err != nil {
		return "", 0, err
	}

	if cfg.verbose >= 2 {
		klog.V(2).Infof("level %d: search-space estimate %.3g", levelID, searchSpaceEstimate(level.Grid, mask, len(level.Goals)))
	}

	root := board.NewRootBoard(level, mask, deadlock.Oracle{EnableBoxFreeze: true}, cfg.maxSteps)

	var moves []board.Push
	switch cfg.mode {
	case "vanilla":
		moves = mcts.NewVanillaTree(root, cfg.seed).Run(cfg.iterations, cfg.verbose)
	default:
		moves = mcts.NewTree(root, cfg.seed).Run(cfg.iterations, cfg.verbose)
	}

	cur := root
	for _, m := range moves {
		next, moveErr := cur.Move(m)
		if moveErr != nil {
			return "", 0, moveErr
		}
		cur = next
		if cfg.verbose >= 3 {
			klog.V(3).Infof("level %d after push %+v:\n%s", levelID, m, renderBoard(cur))
		}
		if cur.Reward().Kind != board.Step {
			break
		}
	}

	if cur.Reward().Kind == board.Win {
		return "WIN", len(moves), nil
	}
	return "LOSS", len(moves), nil
}

// searchSpaceEstimate mirrors the combinatorial estimate the Python
// driver prints at higher verbosity: choose(live_squares, num_boxes) times
// the count of non-wall tiles minus the box count (est_search_space.py's
// comb(p, b) * (n - b), with p the live-square count and n every
// non-wall tile: goal, box, player, floor, box-on-goal, player-on-goal).
func searchSpaceEstimate(grid board.Grid, mask *board.DeadlockMask, numBoxes int) float64 {
	live := 0
	for _, l := range mask.Bits() {
		if l {
			live++
		}
	}
	nonWall := countNonWallTiles(grid)
	return choose(live, numBoxes) * float64(nonWall-numBoxes)
}

func countNonWallTiles(g board.Grid) int {
	n := 0
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			if g.At(board.Pos{Row: r, Col: c}) != board.Wall {
				n++
			}
		}
	}
	return n
}

func choose(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result *= float64(n-i) / float64(i+1)
	}
	return math.Round(result)
}

func renderBoard(b *board.Board) string {
	g := b.Grid()
	out := ""
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			out += g.At(board.Pos{Row: r, Col: c}).String()
		}
		out += "\n"
	}
	return out
}

func printOutcome(outcome string) {
	if outcome == "WIN" {
		fmt.Println(winStyle.Render(outcome))
	} else {
		fmt.Println(lossStyle.Render(outcome))
	}
}

func runSuite(store *deadlock.Store, cfg runConfig) {
	entries, err := os.ReadDir(cfg.folder)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "reading folder %q", cfg.folder))
		os.Exit(2)
	}

	frontier := mcts.NewLevelFrontier()
	for _, e := range entries {
		var id int
		if _, scanErr := fmt.Sscanf(e.Name(), "level_%d.txt", &id); scanErr != nil {
			continue
		}
		if !e.IsDir() && e.Name() == fmt.Sprintf("level_%d.txt", id) {
			frontier.Add(id, 0)
		}
	}

	solved, total := 0, 0
	for frontier.Len() > 0 {
		id, _, ok := frontier.PopMin()
		if !ok {
			break
		}
		total++
		outcome, _, err := solveLevel(store, id, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "level %d: %v\n", id, err)
			continue
		}
		fmt.Printf("Level %d: %s.\n", id, outcome)
		if outcome == "WIN" {
			solved++
		}
	}
	fmt.Printf("Solved %d out of %d levels.\n", solved, total)
}
