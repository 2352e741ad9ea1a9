package bvh

import (
	"github.com/google/uuid"
)

// Tree is a built hierarchy. It is never modified after Build returns, so
// any number of goroutines may query it at once.
type Tree struct {
	cfg        Config
	root       ChildRef
	bounds     AABB
	nodes      []Node
	ordering   []int
	primBounds []AABB
	stats      BuildStats
	profile    *Profiler
}

func (t *Tree) ID() uuid.UUID     { return t.stats.ID }
func (t *Tree) Config() Config    { return t.cfg }
func (t *Tree) Root() ChildRef    { return t.root }
func (t *Tree) Bounds() AABB      { return t.bounds }
func (t *Tree) Len() int          { return len(t.primBounds) }
func (t *Tree) Stats() BuildStats { return t.stats }

// Profile is nil unless the tree was built with Config.Profile.
func (t *Tree) Profile() *Profiler { return t.profile }

// Nodes exposes the node array. Callers must not modify it.
func (t *Tree) Nodes() []Node { return t.nodes }

// Ordering maps leaf slots to primitive ids. Callers must not modify it.
func (t *Tree) Ordering() []int { return t.ordering }

// PrimitiveBounds returns the bounds the primitive was built with.
func (t *Tree) PrimitiveBounds(id int) AABB { return t.primBounds[id] }

// LeafIDs returns the primitive ids of a leaf reference.
func (t *Tree) LeafIDs(ref ChildRef) []int {
	if !ref.IsLeaf() {
		return nil
	}
	return t.ordering[ref.Index : ref.Index+ref.Count]
}
