package mcts

import (
	"math/rand"

	"k8s.io/klog/v2"

	"schokoban-go/board"
)

// rewiringUCTConstant is the primary engine's exploration constant, taken
// from the source's value for the transposition-rewiring variant.
const rewiringUCTConstant = 8

// Tree is the transposition-aware search context: one Node per distinct
// state hash across the whole tree, rewired onto a shallower parent on
// rediscovery, with subtrees retired (and their hash blacklisted) on
// provable dead ends.
type Tree struct {
	root     *Node
	nodes    map[string]*Node
	delNodes map[string]bool
	rng      *rand.Rand
}

// NewTree constructs a search context rooted at the given Board.
func NewTree(root *board.Board, seed int64) *Tree {
	rootNode := newNode(root, nil, board.Push{}, false)
	t := &Tree{
		root:     rootNode,
		nodes:    map[string]*Node{rootNode.hash: rootNode},
		delNodes: map[string]bool{},
		rng:      rand.New(rand.NewSource(seed)),
	}
	return t
}

// Run executes up to iterations MCTS iterations, returning the winning
// push sequence if one is found in the retained tree, or nil otherwise.
func (t *Tree) Run(iterations int, verbose int) []board.Push {
	for i := 0; i < iterations; i++ {
		if t.delNodes[t.root.hash] {
			if verbose >= 1 {
				klog.V(1).Infof("root retired at iteration %d: unsolvable", i)
			}
			return nil
		}
		t.iterate()
		if t.root.maxValue.Kind == board.Win {
			if verbose >= 1 {
				klog.V(1).Infof("win found at iteration %d", i)
			}
			break
		}
		if verbose >= 3 && i%1000 == 0 {
			klog.V(3).Infof("iteration %d: root n=%d q=%.3f", i, t.root.n, t.root.q)
		}
	}
	if t.root.maxValue.Kind != board.Win {
		return nil
	}
	return extractSolution(t.root, t.rng)
}

func (t *Tree) iterate() {
	v := t.selectLeaf()
	if v == nil {
		return
	}

	if v.isUnvisited() {
		v.update(v.reward.Value, v.reward, false)
		return
	}

	t.expand(v)
	if len(v.children) == 0 {
		return // expand already retired v when it ended up childless
	}
	child := uniformRandomChild(v, t.rng)
	child.update(child.reward.Value, child.maxValue, false)
}

// selectLeaf descends from the root while the current node is INTERNAL
// and its reward kind is STEP, using unvisited-first/max-UCT selection.
func (t *Tree) selectLeaf() *Node {
	cur := t.root
	for cur.isInternal() && cur.reward.Kind == board.Step {
		next := selectChild(cur, t.rng, func(nd *Node) float64 { return uctScore(nd, rewiringUCTConstant) })
		if next == nil {
			return cur
		}
		cur = next
	}
	return cur
}

// expand creates or rewires one child per legal push from v's Board, then
// sweeps out LOSS/blacklisted children, retiring v if it ends up
// childless. Insertion happens before the sweep throughout, since
// insertion can itself trigger a retirement that the sweep must see.
func (t *Tree) expand(v *Node) {
	for _, m := range v.state.LegalPushes() {
		child, err := v.state.Move(m)
		if err != nil {
			continue // invariant violations are caller bugs; skip defensively here
		}
		h := child.Hash()
		if t.delNodes[h] {
			continue
		}
		if existing, ok := t.nodes[h]; ok {
			t.rewire(v, existing, m)
			continue
		}
		c := newNode(child, v, m, true)
		t.nodes[h] = c
		v.children[m] = c
	}

	for m, c := range v.children {
		if c.reward.Kind == board.Loss || t.delNodes[c.hash] {
			delete(v.children, m)
			delete(t.nodes, c.hash)
			t.delNodes[c.hash] = true
		}
	}
	v.recomputeMaxValue()

	if len(v.children) == 0 && v.reward.Kind != board.Win {
		t.retire(v)
	}
}

// rewire reparents an already-discovered node u under v when v offers a
// strictly shorter path (v.depth+1 < u.depth), conserving u's aggregate
// visit statistics along both the old and new ancestor chains.
func (t *Tree) rewire(v, u *Node, m board.Push) {
	if v.depth+1 >= u.depth {
		return // existing path is at least as short; do not add a second edge
	}

	oldParent := u.parent
	nU, qU := u.n, u.q
	if oldParent != nil {
		delete(oldParent.children, u.move)
		t.downgrade(oldParent, nU, qU)
		if len(oldParent.children) == 0 && oldParent.reward.Kind != board.Win {
			t.retire(oldParent)
		}
	}

	u.parent = v
	u.move = m
	u.hasMv = true
	v.children[m] = u
	rewriteDepths(u, v.depth+1)

	t.upgrade(v, nU, qU)
}

// rewriteDepths sets u's depth and recursively its descendants' depths
// after a rewire moves u under a new, shallower parent.
func rewriteDepths(u *Node, depth int) {
	u.depth = depth
	for _, c := range u.children {
		rewriteDepths(c, depth+1)
	}
}

// downgrade propagates the removal of a subtree's aggregate statistics
// (n, q) up the ancestor chain from node, recomputing max_value from
// each node's remaining children (or its own static reward).
func (t *Tree) downgrade(node *Node, n int, q float64) {
	for cur := node; cur != nil; cur = cur.parent {
		if cur.n > n {
			cur.q = (cur.q*float64(cur.n) - q*float64(n)) / float64(cur.n-n)
		} else {
			cur.q = 0
		}
		cur.n -= n
		if cur.n < 0 {
			cur.n = 0
		}
		cur.recomputeMaxValue()
	}
}

// upgrade is the symmetric counterpart of downgrade along the new parent
// chain: it adds the moved subtree's aggregate statistics in one step.
func (t *Tree) upgrade(node *Node, n int, q float64) {
	for cur := node; cur != nil; cur = cur.parent {
		total := cur.n + n
		if total > 0 {
			cur.q = (cur.q*float64(cur.n) + q*float64(n)) / float64(total)
		}
		cur.n = total
		cur.recomputeMaxValue()
	}
}

// retire adds node's hash to del_nodes, erases it from the live registry,
// detaches it from its parent, and cascades upward through the parent
// chain via hash membership (never pointer identity, since identity can
// desynchronise after rewiring) whenever a parent becomes childless.
func (t *Tree) retire(node *Node) {
	if t.delNodes[node.hash] {
		return
	}
	t.delNodes[node.hash] = true
	delete(t.nodes, node.hash)

	parent := node.parent
	if parent != nil {
		delete(parent.children, node.move)
		parent.recomputeMaxValue()
	}
	node.parent = nil

	if parent == nil {
		return
	}
	if t.delNodes[parent.hash] {
		return
	}
	if len(parent.children) == 0 && parent.reward.Kind != board.Win {
		t.retire(parent)
	}
}

// extractSolution walks from the root repeatedly choosing the child with
// the greatest max_value (random tie-break) until a childless node is
// reached, asserting it is a WIN.
func extractSolution(root *Node, rng *rand.Rand) []board.Push {
	var moves []board.Push
	cur := root
	for len(cur.children) > 0 {
		next := selectMove(cur, rng)
		if next == nil {
			break
		}
		moves = append(moves, next.move)
		cur = next
	}
	if cur.reward.Kind != board.Win {
		return nil
	}
	return moves
}
