package bvh

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BuildStats summarizes a finished build.
type BuildStats struct {
	ID           uuid.UUID
	Primitives   int
	Nodes        int
	Leaves       int
	ForcedLeaves int // leaves above MaxLeafSize that could not be split
	MaxDepth     int
	SAHCost      float32
	Duration     time.Duration
}

func (s BuildStats) AvgLeafSize() float32 {
	if s.Leaves == 0 {
		return 0
	}
	return float32(s.Primitives) / float32(s.Leaves)
}

func (s BuildStats) String() string {
	return fmt.Sprintf("bvh %s: prims=%d nodes=%d leaves=%d forced=%d depth=%d sah=%.3f time=%s",
		s.ID, s.Primitives, s.Nodes, s.Leaves, s.ForcedLeaves, s.MaxDepth, s.SAHCost, s.Duration)
}

// sahCost is the expected cost of a random ray through the root, relative to
// the root area.
func (t *Tree) sahCost() float32 {
	rootArea := t.bounds.HalfArea()
	if rootArea <= 0 {
		return 0
	}
	var cost float32
	leafCost := func(ref ChildRef, area float32) float32 {
		return t.cfg.IntersectCost * area * float32(ref.Count)
	}
	if t.root.IsLeaf() {
		return leafCost(t.root, rootArea) / rootArea
	}

	cost += t.cfg.TraversalCost * rootArea
	for i := range t.nodes {
		n := &t.nodes[i]
		for slot := 0; slot < n.Width(); slot++ {
			area := n.ChildBounds(slot).HalfArea()
			ref := n.Children[slot]
			if ref.IsLeaf() {
				cost += leafCost(ref, area)
			} else {
				cost += t.cfg.TraversalCost * area
			}
		}
	}
	return cost / rootArea
}
