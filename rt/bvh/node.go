package bvh

import (
	"github.com/chewxy/math32"
)

// InteriorCount is the ChildRef.Count value that marks a reference to an
// interior node.
const InteriorCount = ^uint32(0)

// ChildRef points either at a node (Count == InteriorCount) or at a leaf
// range [Index, Index+Count) of the tree ordering. Count == 0 is an unused
// slot.
type ChildRef struct {
	Index uint32
	Count uint32
}

func LeafRef(offset, count int) ChildRef {
	return ChildRef{Index: uint32(offset), Count: uint32(count)}
}

func InteriorRef(node int) ChildRef {
	return ChildRef{Index: uint32(node), Count: InteriorCount}
}

func (r ChildRef) IsLeaf() bool     { return r.Count != InteriorCount && r.Count > 0 }
func (r ChildRef) IsInterior() bool { return r.Count == InteriorCount }
func (r ChildRef) IsEmpty() bool    { return r.Count == 0 }

// Node is a wide interior node. Child bounds are stored as structure of
// arrays so every child can be tested in one pass. Used slots are packed
// from slot 0.
type Node struct {
	MinX, MinY, MinZ [MaxWidth]float32
	MaxX, MaxY, MaxZ [MaxWidth]float32
	Children         [MaxWidth]ChildRef
}

func newNode() Node {
	var n Node
	inf := math32.Inf(1)
	for i := 0; i < MaxWidth; i++ {
		n.MinX[i], n.MinY[i], n.MinZ[i] = inf, inf, inf
		n.MaxX[i], n.MaxY[i], n.MaxZ[i] = -inf, -inf, -inf
	}
	return n
}

func (n *Node) setChild(slot int, bounds AABB, ref ChildRef) {
	n.MinX[slot], n.MinY[slot], n.MinZ[slot] = bounds.Min[0], bounds.Min[1], bounds.Min[2]
	n.MaxX[slot], n.MaxY[slot], n.MaxZ[slot] = bounds.Max[0], bounds.Max[1], bounds.Max[2]
	n.Children[slot] = ref
}

// ChildBounds returns the stored box of slot i.
func (n *Node) ChildBounds(i int) AABB {
	var b AABB
	b.Min[0], b.Min[1], b.Min[2] = n.MinX[i], n.MinY[i], n.MinZ[i]
	b.Max[0], b.Max[1], b.Max[2] = n.MaxX[i], n.MaxY[i], n.MaxZ[i]
	return b
}

// Width is the number of used slots.
func (n *Node) Width() int {
	for i := 0; i < MaxWidth; i++ {
		if n.Children[i].IsEmpty() {
			return i
		}
	}
	return MaxWidth
}

// intersectChildren slab tests the ray against every used slot. Bit i of the
// result is set when slot i overlaps [tMin, tMax]; dist[i] then holds the
// entry distance.
func (n *Node) intersectChildren(r *rayData, tMin, tMax float32, dist *[MaxWidth]float32) uint8 {
	var mask uint8
	for i := 0; i < MaxWidth; i++ {
		if n.Children[i].IsEmpty() {
			break
		}
		tn, tf := tMin, tMax
		tn, tf = r.slab(0, n.MinX[i], n.MaxX[i], tn, tf)
		tn, tf = r.slab(1, n.MinY[i], n.MaxY[i], tn, tf)
		tn, tf = r.slab(2, n.MinZ[i], n.MaxZ[i], tn, tf)
		if tn <= tf {
			mask |= 1 << i
			dist[i] = tn
		}
	}
	return mask
}
