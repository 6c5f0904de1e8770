package layout

// Two-pass tree positioning after Walker, with the contour-threading conflict
// resolution that keeps the total work near-linear: a postorder first walk
// computes preliminary x offsets and subtree modifiers, and a preorder second
// walk folds the modifiers into final coordinates.

// runWalker positions the subtree rooted at the selected root, places
// unpositioned cluster spouses next to their partners, and translates the
// whole layout so the root sits at the canvas's nominal center.
func (a *arena) runWalker() {
	if a.root < 0 {
		return
	}
	a.firstWalk(a.root)
	a.secondWalk(a.root, 0)
	a.placeClusterSpouses()
	a.centerOnCanvas()
}

// =============================================================================
// First Walk
// =============================================================================

// firstWalk computes prelim and mod for every node in postorder. After each
// child is walked, apportion resolves overlap against the earlier-placed
// sibling subtrees, and executeShifts spreads the accumulated displacement
// across the children so it tapers smoothly instead of jumping.
func (a *arena) firstWalk(v int) {
	n := &a.nodes[v]

	if len(n.children) == 0 {
		n.extremeLeft, n.extremeRight = v, v
		n.msel, n.mser = 0, 0
		if ls := n.leftSibling; ls >= 0 {
			n.prelim = a.nodes[ls].prelim + a.requiredDistance(ls, v)
		} else {
			n.prelim = 0
		}
		return
	}

	defaultAncestor := n.children[0]
	for _, c := range n.children {
		a.firstWalk(c)
		defaultAncestor = a.apportion(c, defaultAncestor)
	}
	a.executeShifts(v)

	first, last := n.children[0], n.children[len(n.children)-1]
	midpoint := (a.nodes[first].prelim + a.nodes[last].prelim) / 2

	if ls := n.leftSibling; ls >= 0 {
		n.prelim = a.nodes[ls].prelim + a.requiredDistance(ls, v)
		n.mod = n.prelim - midpoint
		if a.spouseLeaf(ls, v) {
			// Center the children under the spouse-pair midpoint rather than
			// under this node alone.
			n.mod -= a.requiredDistance(ls, v) / 2
		}
	} else {
		n.prelim = midpoint
		if rs := n.rightSibling; rs >= 0 && a.spouseLeaf(rs, v) {
			n.prelim = midpoint - a.requiredDistance(v, rs)/2
		}
	}

	n.extremeLeft = a.nodes[first].extremeLeft
	n.msel = a.nodes[first].msel + a.nodes[first].mod
	n.extremeRight = a.nodes[last].extremeRight
	n.mser = a.nodes[last].mser + a.nodes[last].mod
}

// spouseLeaf reports whether s is a childless spouse of v. Only a childless
// partner shifts the pair midpoint; when both spouses carry children each
// centers its own subtree.
func (a *arena) spouseLeaf(s, v int) bool {
	return a.areSpouses(s, v) && len(a.nodes[s].children) == 0
}

// =============================================================================
// Apportion
// =============================================================================

// apportion resolves overlap between the subtree rooted at v and the forest of
// its left siblings. Four pointers walk the facing contours in lockstep:
// inside-left (right contour of the sibling forest), inside-right (left
// contour of v's subtree), and the two outside contours, each carrying its own
// running modifier sum. A positive gap violation moves the bounded ancestor
// subtree rightward; when one contour runs out first, a thread bridges the gap
// carrying the outstanding modifier difference.
func (a *arena) apportion(v, defaultAncestor int) int {
	w := a.nodes[v].leftSibling
	if w < 0 {
		return defaultAncestor
	}

	vir, vor := v, v
	vil := w
	vol := a.leftmostSibling(v)
	sir, sor := a.nodes[vir].mod, a.nodes[vor].mod
	sil, sol := a.nodes[vil].mod, a.nodes[vol].mod

	for a.nextRight(vil) >= 0 && a.nextLeft(vir) >= 0 {
		vil = a.nextRight(vil)
		vir = a.nextLeft(vir)
		vol = a.nextLeft(vol)
		vor = a.nextRight(vor)
		a.nodes[vor].ancestor = v

		shift := (a.nodes[vil].prelim + sil) - (a.nodes[vir].prelim + sir) + a.requiredDistance(vil, vir)
		if shift > 0 {
			a.moveSubtree(a.ancestorSibling(vil, v, defaultAncestor), v, shift)
			sir += shift
			sor += shift
		}

		sil += a.nodes[vil].mod
		sir += a.nodes[vir].mod
		sol += a.nodes[vol].mod
		sor += a.nodes[vor].mod
	}

	if a.nextRight(vil) >= 0 && a.nextRight(vor) < 0 {
		a.nodes[vor].thread = a.nextRight(vil)
		a.nodes[vor].mod += sil - sor
	}
	if a.nextLeft(vir) >= 0 && a.nextLeft(vol) < 0 {
		a.nodes[vol].thread = a.nextLeft(vir)
		a.nodes[vol].mod += sir - sol
		defaultAncestor = v
	}
	return defaultAncestor
}

// nextLeft descends the left contour: the first child when one exists,
// otherwise the thread shortcut.
func (a *arena) nextLeft(v int) int {
	if kids := a.nodes[v].children; len(kids) > 0 {
		return kids[0]
	}
	return a.nodes[v].thread
}

// nextRight descends the right contour: the last child when one exists,
// otherwise the thread shortcut.
func (a *arena) nextRight(v int) int {
	if kids := a.nodes[v].children; len(kids) > 0 {
		return kids[len(kids)-1]
	}
	return a.nodes[v].thread
}

// leftmostSibling returns the first node in v's sibling list, or v itself.
func (a *arena) leftmostSibling(v int) int {
	if p := a.nodes[v].parent; p >= 0 {
		return a.nodes[p].children[0]
	}
	return v
}

// ancestorSibling returns the ancestor of vil when it is a sibling of v, so
// the shift stays bounded to the current subtree, else the default ancestor.
func (a *arena) ancestorSibling(vil, v, defaultAncestor int) int {
	anc := a.nodes[vil].ancestor
	if a.nodes[anc].parent == a.nodes[v].parent {
		return anc
	}
	return defaultAncestor
}

// moveSubtree shifts the subtree rooted at wr rightward, splitting the cost
// proportionally across the sibling subtrees between wl and wr via the
// shift/change accumulators so the displacement tapers.
func (a *arena) moveSubtree(wl, wr int, shift float64) {
	subtrees := float64(a.nodes[wr].childIndex - a.nodes[wl].childIndex)
	if subtrees < 1 {
		subtrees = 1
	}
	a.nodes[wr].change -= shift / subtrees
	a.nodes[wr].shift += shift
	a.nodes[wl].change += shift / subtrees
	a.nodes[wr].prelim += shift
	a.nodes[wr].mod += shift
}

// executeShifts propagates the accumulated shift/change of v's children from
// right to left, so each intermediate sibling absorbs its proportional share.
func (a *arena) executeShifts(v int) {
	var shift, change float64
	kids := a.nodes[v].children
	for i := len(kids) - 1; i >= 0; i-- {
		w := kids[i]
		a.nodes[w].prelim += shift
		a.nodes[w].mod += shift
		change += a.nodes[w].change
		shift += a.nodes[w].shift + change
	}
}

// =============================================================================
// Second Walk
// =============================================================================

// secondWalk assigns final coordinates in preorder. Each node's x is its
// prelim plus the running modifier sum of its ancestors; y is the generation
// depth times the generation spacing.
func (a *arena) secondWalk(v int, modSum float64) {
	n := &a.nodes[v]
	n.x = n.prelim + modSum
	n.y = float64(n.depth) * a.params.GenerationSpacing
	n.positioned = true
	for _, c := range n.children {
		a.secondWalk(c, modSum+n.mod)
	}
}

// =============================================================================
// Post-pass Placement
// =============================================================================

// placeClusterSpouses positions spouses that are clustered with a positioned
// node but sit in no sibling list (the root's partners). Each takes its
// policy-ordered side of the partner at spouse distance, pushed further
// outward when a row neighbor already occupies that spot; a childless pair is
// then recentered so the pair midpoint sits over the partner's children.
func (a *arena) placeClusterSpouses() {
	for v := range a.nodes {
		if !a.nodes[v].positioned {
			continue
		}
		var leftOff, rightOff float64
		for _, s := range a.nodes[v].spouses {
			if a.nodes[s].positioned {
				continue
			}
			d := a.requiredDistance(v, s)
			side := 1.0
			if spouseBefore(string(a.nodes[s].ind.Gender.Normalize()), string(a.nodes[v].ind.Gender.Normalize()),
				a.nodes[s].id, a.nodes[v].id, a.params.SpouseOrder) {
				side = -1
			}
			if side < 0 {
				leftOff += d
				x := a.pushClearOfRow(s, a.nodes[v].depth, a.nodes[v].x-leftOff, side)
				leftOff = a.nodes[v].x - x
				a.nodes[s].x = x
			} else {
				rightOff += d
				x := a.pushClearOfRow(s, a.nodes[v].depth, a.nodes[v].x+rightOff, side)
				rightOff = x - a.nodes[v].x
				a.nodes[s].x = x
			}
			a.nodes[s].y = a.nodes[v].y
			a.nodes[s].depth = a.nodes[v].depth
			a.nodes[s].positioned = true

			if len(a.nodes[v].spouses) == 1 && len(a.nodes[v].children) > 0 && len(a.nodes[s].children) == 0 {
				// Recenter the pair over the children: shift only the couple,
				// their subtree is already placed.
				a.nodes[v].x -= side * d / 2
				a.nodes[s].x -= side * d / 2
			}
		}
	}
}

// pushClearOfRow moves a candidate x outward until it keeps the required
// distance from every node already positioned in the row. Spouse groups
// larger than a pair stack partners beyond whatever siblings occupy the row
// instead of on top of them. Exact-distance placements pass untouched.
func (a *arena) pushClearOfRow(s, depth int, candidate, side float64) float64 {
	for range a.nodes {
		conflict := false
		for w := range a.nodes {
			if w == s || !a.nodes[w].positioned || a.nodes[w].depth != depth {
				continue
			}
			d := a.requiredDistance(w, s)
			if diff := candidate - a.nodes[w].x; diff > -d && diff < d {
				if side < 0 {
					candidate = a.nodes[w].x - d
				} else {
					candidate = a.nodes[w].x + d
				}
				conflict = true
			}
		}
		if !conflict {
			break
		}
	}
	return candidate
}

// centerOnCanvas translates every positioned node so the root lands at the
// canvas's nominal center. The fit transform later scales and recenters the
// bounding box; this fixes the frame the raw layout is expressed in.
func (a *arena) centerOnCanvas() {
	if a.root < 0 {
		return
	}
	dx := a.params.CanvasWidth/2 - a.nodes[a.root].x
	dy := a.params.CanvasHeight/2 - a.nodes[a.root].y
	for i := range a.nodes {
		if a.nodes[i].positioned {
			a.nodes[i].x += dx
			a.nodes[i].y += dy
		}
	}
}
