package bvh

import (
	"errors"
	"fmt"
)

var ErrCorrupt = errors.New("bvh: tree invariant violated")

// Validate checks the structural invariants of t: every slot bound contains
// all primitives beneath it, every node is referenced exactly once, leaf
// ranges tile the ordering, the ordering is a permutation of the primitive
// ids and no leaf is deeper than the configured maximum.
func (t *Tree) Validate() error {
	n := len(t.primBounds)
	if len(t.ordering) != n {
		return fmt.Errorf("%w: ordering has %d entries for %d primitives", ErrCorrupt, len(t.ordering), n)
	}
	seenID := make([]bool, n)
	for slot, id := range t.ordering {
		if id < 0 || id >= n {
			return fmt.Errorf("%w: slot %d holds id %d", ErrCorrupt, slot, id)
		}
		if seenID[id] {
			return fmt.Errorf("%w: id %d appears twice", ErrCorrupt, id)
		}
		seenID[id] = true
	}

	v := validator{
		t:         t,
		covered:   make([]bool, n),
		seenNodes: make([]bool, len(t.nodes)),
	}
	if _, err := v.walk(t.root, 0); err != nil {
		return err
	}
	if !t.bounds.Contains(v.total) {
		return fmt.Errorf("%w: root bounds %v do not contain %v", ErrCorrupt, t.bounds, v.total)
	}
	for slot, ok := range v.covered {
		if !ok {
			return fmt.Errorf("%w: ordering slot %d not referenced by any leaf", ErrCorrupt, slot)
		}
	}
	for i, ok := range v.seenNodes {
		if !ok {
			return fmt.Errorf("%w: node %d unreachable", ErrCorrupt, i)
		}
	}
	return nil
}

type validator struct {
	t         *Tree
	covered   []bool
	seenNodes []bool
	total     AABB
}

// walk returns the union of primitive bounds under ref.
func (v *validator) walk(ref ChildRef, depth int) (AABB, error) {
	t := v.t
	if depth > t.cfg.MaxDepth {
		return AABB{}, fmt.Errorf("%w: depth %d exceeds %d", ErrCorrupt, depth, t.cfg.MaxDepth)
	}

	if ref.IsLeaf() {
		end := int(ref.Index) + int(ref.Count)
		if end > len(t.ordering) {
			return AABB{}, fmt.Errorf("%w: leaf [%d, %d) out of range", ErrCorrupt, ref.Index, end)
		}
		union := EmptyAABB()
		for slot := int(ref.Index); slot < end; slot++ {
			if v.covered[slot] {
				return AABB{}, fmt.Errorf("%w: ordering slot %d in two leaves", ErrCorrupt, slot)
			}
			v.covered[slot] = true
			union = union.Union(t.primBounds[t.ordering[slot]])
		}
		if depth == 0 {
			v.total = union
		}
		return union, nil
	}

	if !ref.IsInterior() || int(ref.Index) >= len(t.nodes) {
		return AABB{}, fmt.Errorf("%w: bad child reference %+v", ErrCorrupt, ref)
	}
	if v.seenNodes[ref.Index] {
		return AABB{}, fmt.Errorf("%w: node %d referenced twice", ErrCorrupt, ref.Index)
	}
	v.seenNodes[ref.Index] = true

	node := &t.nodes[ref.Index]
	width := node.Width()
	if width < 2 || width > t.cfg.BranchingFactor {
		return AABB{}, fmt.Errorf("%w: node %d has %d children", ErrCorrupt, ref.Index, width)
	}
	for slot := width; slot < MaxWidth; slot++ {
		if !node.Children[slot].IsEmpty() {
			return AABB{}, fmt.Errorf("%w: node %d slot %d used after a gap", ErrCorrupt, ref.Index, slot)
		}
	}

	union := EmptyAABB()
	for slot := 0; slot < width; slot++ {
		sub, err := v.walk(node.Children[slot], depth+1)
		if err != nil {
			return AABB{}, err
		}
		if !node.ChildBounds(slot).Contains(sub) {
			return AABB{}, fmt.Errorf("%w: node %d slot %d bounds %v do not contain %v",
				ErrCorrupt, ref.Index, slot, node.ChildBounds(slot), sub)
		}
		union = union.Union(sub)
	}
	if depth == 0 {
		v.total = union
	}
	return union, nil
}
