// Package layout computes 2-D node positions for a genealogical tree.
//
// # Overview
//
// The engine turns a flat snapshot of individuals and relationships into
// canvas coordinates that a rendering layer can draw without node overlap.
// It implements the multi-stage transformation:
//
//  1. Build: assemble an arena of layout nodes with parent/child/sibling/spouse
//     links from the snapshot's adapter, and select a root.
//  2. Size: derive adaptive node dimensions from generation density.
//  3. Position: run a two-pass variant of Walker's tree-drawing algorithm with
//     contour-based conflict resolution.
//  4. Fit: scale and translate the raw layout into canvas bounds.
//  5. Edges: synthesize straight-line edge descriptors between positioned nodes.
//
// When the snapshot carries no traversal adapter, positioning degrades to a
// generation-banded grid ([computeFallback]) instead of the tree walk.
//
// # Arena
//
// All mutual node references (parent, children, siblings, spouses, and the
// walker's thread and ancestor shortcuts) are stored as integer indices into a
// per-invocation arena. The arena is created fresh for every call, mutated in
// place across the two walker passes, read once by the fit transform and edge
// synthesizer, and discarded. No state survives a call and nothing is cached.
//
// # Walker's Algorithm
//
// The positioning core follows the contour-threading formulation: a postorder
// first walk computes a preliminary x and a subtree modifier per node,
// resolving conflicts between adjacent subtrees through apportion, which walks
// both subtree contours in lockstep and shifts the bounded ancestor subtree
// when the required distance is violated. Thread links bridge contour gaps so
// the walk never re-descends a subtree. A preorder second walk then folds the
// accumulated modifiers into final coordinates. Total work is near-linear in
// the node count.
//
// # Failure Semantics
//
// Empty input produces an empty result, never an error. Degenerate arithmetic
// (zero spreads, non-finite parameters) is clamped to safe defaults and the
// computation continues. The only hard failures are malformed input shapes
// (individuals without an id), rejected before the builder runs.
package layout
