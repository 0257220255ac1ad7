package mcts

import (
	"math/rand"

	"k8s.io/klog/v2"

	"schokoban-go/board"
)

// Baseline engine constants, taken from the source's plain-UCT variant:
// distinct from the rewiring engine's constant.
const (
	vanillaUCTConstant = 32
	vanillaVarianceD   = 8
)

// VanillaTree is the plain UCT baseline: no transposition table, no
// rewiring, and no global del_nodes registry — structurally simpler than
// Tree, avoiding cycles only by checking the local ancestor-hash path
// during expansion, matching the source's unregistered baseline variant.
type VanillaTree struct {
	root *Node
	rng  *rand.Rand
}

// NewVanillaTree constructs a baseline search context rooted at the given
// Board.
func NewVanillaTree(root *board.Board, seed int64) *VanillaTree {
	return &VanillaTree{
		root: newNode(root, nil, board.Push{}, false),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Run executes up to iterations iterations, returning the winning push
// sequence if found, or nil otherwise.
func (t *VanillaTree) Run(iterations int, verbose int) []board.Push {
	for i := 0; i < iterations; i++ {
		if t.root.reward.Kind == board.Loss && len(t.root.children) == 0 && t.root.n > 0 {
			if verbose >= 1 {
				klog.V(1).Infof("root has no remaining children at iteration %d: unsolvable", i)
			}
			break
		}
		t.iterate()
		if t.root.maxValue.Kind == board.Win {
			if verbose >= 1 {
				klog.V(1).Infof("win found at iteration %d", i)
			}
			break
		}
	}
	if t.root.maxValue.Kind != board.Win {
		return nil
	}
	return extractSolution(t.root, t.rng)
}

func (t *VanillaTree) iterate() {
	ancestors := map[string]bool{t.root.hash: true}
	v := t.selectLeaf(ancestors)
	if v == nil {
		return
	}

	if v.isUnvisited() {
		v.update(v.reward.Value, v.reward, true)
		return
	}

	t.expand(v, ancestors)
	if len(v.children) == 0 {
		t.remove(v)
		return
	}
	child := uniformRandomChild(v, t.rng)
	child.update(child.reward.Value, child.maxValue, true)
}

func (t *VanillaTree) selectLeaf(ancestors map[string]bool) *Node {
	cur := t.root
	for cur.isInternal() && cur.reward.Kind == board.Step {
		next := selectChild(cur, t.rng, func(nd *Node) float64 {
			return varianceUctScore(nd, vanillaUCTConstant, vanillaVarianceD)
		})
		if next == nil {
			return cur
		}
		ancestors[next.hash] = true
		cur = next
	}
	return cur
}

// expand creates one child per legal push whose resulting hash is not
// already on the current ancestor path (cycle avoidance without a global
// transposition table), then sweeps out LOSS children.
func (t *VanillaTree) expand(v *Node, ancestors map[string]bool) {
	for _, m := range v.state.LegalPushes() {
		child, err := v.state.Move(m)
		if err != nil {
			continue
		}
		h := child.Hash()
		if ancestors[h] {
			continue
		}
		v.children[m] = newNode(child, v, m, true)
	}

	for m, c := range v.children {
		if c.reward.Kind == board.Loss {
			delete(v.children, m)
		}
	}
	v.recomputeMaxValue()
}

// remove retires a childless, non-winning node by detaching it from its
// parent and cascading upward whenever the parent itself becomes
// childless — a pure parent-chain cascade with no registry to update,
// unlike the rewiring engine's Tree.retire.
func (t *VanillaTree) remove(node *Node) {
	parent := node.parent
	if parent == nil {
		return
	}
	delete(parent.children, node.move)
	parent.recomputeMaxValue()
	node.parent = nil

	if len(parent.children) == 0 && parent.reward.Kind != board.Win {
		t.remove(parent)
	}
}
