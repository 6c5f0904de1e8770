package layout

import (
	"github.com/charmbracelet/log"

	"github.com/mlindqvist/pedigree/pkg/gene"
)

// =============================================================================
// Arena
// =============================================================================

// node is one entry in the per-invocation layout arena. All relationships are
// integer indices into the arena (-1 for none); the arena never holds cyclic
// object references.
type node struct {
	id  string
	ind gene.Individual

	// Tree links
	parent       int
	children     []int
	leftSibling  int
	rightSibling int
	spouses      []int
	family       string // family-cluster id, empty when unclustered
	childIndex   int    // position within the parent's children list
	depth        int    // traversal depth from the root

	// Walker state
	x, y          float64
	prelim, mod   float64
	shift, change float64
	thread        int // contour-traversal shortcut
	ancestor      int // bounds which subtree may move during conflict resolution
	extremeLeft   int // bottom of the subtree's left contour
	extremeRight  int // bottom of the subtree's right contour
	msel, mser    float64

	// Geometry
	width, height float64

	// spliced marks a spouse inserted into the partner's sibling list for
	// positioning only; the parent link under the partner's parent is
	// synthetic. Set for parentless spouses and for spouses relocated out
	// of a different subtree.
	spliced bool

	positioned bool
}

// arena owns every layout node of one invocation. It is created fresh from a
// snapshot, mutated in place by the walker passes, read by the fit transform
// and edge synthesizer, and then discarded.
type arena struct {
	nodes    []node
	index    map[string]int
	root     int
	baseSize float64
	params   Params
	logger   *log.Logger
}

// newArena allocates one node per individual with all links unset.
func newArena(individuals []gene.Individual, params Params, logger *log.Logger) *arena {
	a := &arena{
		nodes:  make([]node, len(individuals)),
		index:  make(map[string]int, len(individuals)),
		root:   -1,
		params: params,
		logger: logger,
	}
	for i, ind := range individuals {
		a.nodes[i] = node{
			id:           ind.ID,
			ind:          ind,
			parent:       -1,
			leftSibling:  -1,
			rightSibling: -1,
			thread:       -1,
			ancestor:     i,
			extremeLeft:  i,
			extremeRight: i,
			depth:        -1,
		}
		a.index[ind.ID] = i
	}
	return a
}

// =============================================================================
// Tree Builder
// =============================================================================

// buildTree assembles the arena from a snapshot: sizes nodes from the
// generation histogram, links children in adapter order, clusters spouses,
// and selects the root. Requires snap.HasTraversal().
func buildTree(snap *gene.Snapshot, params Params, logger *log.Logger) *arena {
	a := newArena(snap.Individuals, params, logger)
	if len(a.nodes) == 0 {
		return a
	}

	a.assignSizes(snap.GenerationHistogram())
	a.linkChildren(snap.Adapter)
	a.relinkSiblings()
	a.clusterSpouses(snap.Adapter)
	a.selectRoot()
	a.assignDepths()
	return a
}

// linkChildren assigns children in adapter-return order and sets parent
// back-references. A child keeps its first-assigned parent, and a link that
// would close an ancestry cycle is refused.
func (a *arena) linkChildren(adapter gene.TreeAdapter) {
	for i := range a.nodes {
		for _, kid := range adapter.ChildrenOf(a.nodes[i].id) {
			j, ok := a.index[kid.ID]
			if !ok || j == i {
				continue
			}
			if a.nodes[j].parent >= 0 {
				continue
			}
			if a.isAncestor(j, i) {
				a.logger.Warn("refusing cyclic ancestry link", "parent", a.nodes[i].id, "child", kid.ID)
				continue
			}
			a.nodes[j].parent = i
			a.nodes[i].children = append(a.nodes[i].children, j)
		}
	}
}

// isAncestor reports whether candidate appears on the parent chain above of.
// A visited set guards against malformed parent chains.
func (a *arena) isAncestor(candidate, of int) bool {
	visited := make(map[int]struct{})
	for cur := of; cur >= 0; cur = a.nodes[cur].parent {
		if cur == candidate {
			return true
		}
		if _, seen := visited[cur]; seen {
			return false
		}
		visited[cur] = struct{}{}
	}
	return false
}

// relinkSiblings rebuilds left/right sibling links and child indices from the
// current children lists.
func (a *arena) relinkSiblings() {
	for i := range a.nodes {
		kids := a.nodes[i].children
		for pos, k := range kids {
			a.nodes[k].childIndex = pos
			if pos > 0 {
				a.nodes[k].leftSibling = kids[pos-1]
			} else {
				a.nodes[k].leftSibling = -1
			}
			if pos < len(kids)-1 {
				a.nodes[k].rightSibling = kids[pos+1]
			} else {
				a.nodes[k].rightSibling = -1
			}
		}
	}
}

// clusterSpouses merges each spouse group into one family cluster and makes
// spouse pairs adjacent in sibling order. For exactly two spouses the pair is
// reordered by the configured gender policy; a spouse outside the partner's
// sibling list (parentless, or parented in another subtree) is spliced in
// next to its partner so the walker positions them together.
func (a *arena) clusterSpouses(adapter gene.TreeAdapter) {
	for i := range a.nodes {
		group := []int{i}
		for _, sp := range adapter.SpousesOf(a.nodes[i].id) {
			j, ok := a.index[sp.ID]
			if !ok || j == i {
				continue
			}
			group = append(group, j)
		}
		if len(group) < 2 {
			continue
		}

		family := a.familyFor(group)
		for _, m := range group {
			a.nodes[m].family = family
		}
		for _, m := range group {
			for _, other := range group {
				if m != other && !a.areSpouses(m, other) {
					a.nodes[m].spouses = append(a.nodes[m].spouses, other)
				}
			}
		}

		if len(group) == 2 {
			a.pairSpouses(group[0], group[1])
		}
	}
	a.relinkSiblings()
}

// familyFor returns the cluster id shared by a spouse group, reusing any
// already-assigned id so overlapping groups merge.
func (a *arena) familyFor(group []int) string {
	for _, m := range group {
		if a.nodes[m].family != "" {
			return a.nodes[m].family
		}
	}
	return a.nodes[group[0]].id
}

// pairSpouses makes a two-spouse cluster adjacent in sibling order. The
// conventionally first gender precedes the other; when both share a parent the
// children list is reordered, a parentless spouse is spliced in next to its
// parented partner, and a spouse rooted in a different subtree is relocated
// next to its partner.
func (a *arena) pairSpouses(x, y int) {
	first, second := x, y
	if !spouseBefore(string(a.nodes[x].ind.Gender.Normalize()), string(a.nodes[y].ind.Gender.Normalize()),
		a.nodes[x].id, a.nodes[y].id, a.params.SpouseOrder) {
		first, second = y, x
	}

	fp, sp := a.nodes[first].parent, a.nodes[second].parent
	switch {
	case fp >= 0 && fp == sp:
		a.reorderAdjacent(fp, first, second)
	case fp >= 0 && sp < 0:
		a.spliceAfter(fp, first, second)
	case sp >= 0 && fp < 0:
		a.spliceBefore(sp, second, first)
	case fp >= 0 && sp >= 0:
		a.relocateSpouse(fp, first, second)
	default:
		// Both parentless: the root's partners are placed after the walk,
		// and the shared family id still drives spacing.
	}
}

// relocateSpouse moves second, subtree and all, out of its own parent's
// children list and splices it in directly after first, so spouses rooted in
// different subtrees still become adjacent siblings. The relationship list
// keeps the real parent-child edge; the synthetic link under first's parent
// is marked so edge synthesis skips it. A move that would put an ancestor
// below its own descendant is refused.
func (a *arena) relocateSpouse(parent, first, second int) {
	if a.isAncestor(second, parent) {
		a.logger.Warn("refusing spouse relocation into own subtree",
			"spouse", a.nodes[second].id, "partner", a.nodes[first].id)
		return
	}
	a.detachChild(a.nodes[second].parent, second)
	a.spliceAfter(parent, first, second)
}

// detachChild removes child from parent's children list.
func (a *arena) detachChild(parent, child int) {
	kids := a.nodes[parent].children
	out := make([]int, 0, len(kids))
	for _, k := range kids {
		if k != child {
			out = append(out, k)
		}
	}
	a.nodes[parent].children = out
}

// reorderAdjacent moves second directly after first within parent's children.
func (a *arena) reorderAdjacent(parent, first, second int) {
	kids := a.nodes[parent].children
	out := make([]int, 0, len(kids))
	for _, k := range kids {
		if k == second {
			continue
		}
		out = append(out, k)
		if k == first {
			out = append(out, second)
		}
	}
	a.nodes[parent].children = out
}

// spliceAfter inserts orphan into parent's children directly after anchor and
// adopts the parent back-reference.
func (a *arena) spliceAfter(parent, anchor, orphan int) {
	kids := a.nodes[parent].children
	out := make([]int, 0, len(kids)+1)
	for _, k := range kids {
		out = append(out, k)
		if k == anchor {
			out = append(out, orphan)
		}
	}
	a.nodes[parent].children = out
	a.nodes[orphan].parent = parent
	a.nodes[orphan].spliced = true
}

// spliceBefore inserts orphan into parent's children directly before anchor.
func (a *arena) spliceBefore(parent, anchor, orphan int) {
	kids := a.nodes[parent].children
	out := make([]int, 0, len(kids)+1)
	for _, k := range kids {
		if k == anchor {
			out = append(out, orphan)
		}
		out = append(out, k)
	}
	a.nodes[parent].children = out
	a.nodes[orphan].parent = parent
	a.nodes[orphan].spliced = true
}

// selectRoot picks the parentless node with the most direct children, ties
// broken by first-encountered order. Disconnected roots other than the
// selected one are deliberately dropped from the layout.
func (a *arena) selectRoot() {
	best, bestKids := -1, -1
	for i := range a.nodes {
		if a.nodes[i].parent >= 0 {
			continue
		}
		if n := len(a.nodes[i].children); n > bestKids {
			best, bestKids = i, n
		}
	}
	a.root = best
	if best >= 0 {
		dropped := 0
		for i := range a.nodes {
			if a.nodes[i].parent < 0 && i != best {
				dropped++
			}
		}
		if dropped > 0 {
			a.logger.Debug("dropping disconnected roots", "root", a.nodes[best].id, "dropped", dropped)
		}
	}
}

// assignDepths walks the tree from the root assigning traversal depths.
func (a *arena) assignDepths() {
	if a.root < 0 {
		return
	}
	a.nodes[a.root].depth = 0
	queue := []int{a.root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range a.nodes[cur].children {
			a.nodes[c].depth = a.nodes[cur].depth + 1
			queue = append(queue, c)
		}
	}
}

// treeSize returns the number of nodes reachable from the root.
func (a *arena) treeSize() int {
	n := 0
	for i := range a.nodes {
		if a.nodes[i].depth >= 0 {
			n++
		}
	}
	return n
}
