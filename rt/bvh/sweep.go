package bvh

import (
	"cmp"
	"slices"
)

// sweeper evaluates the exact SAH over every primitive boundary. It keeps
// one index array per axis, each sorted by centroid, and keeps the three
// arrays partitioned consistently so a record range names the same
// primitive set in all of them.
type sweeper struct {
	prims []BuildPrimitive
	order [3][]int32

	isLeft  []bool
	scratch []int32
	areas   []float32
}

func newSweeper(prims []BuildPrimitive) *sweeper {
	s := &sweeper{
		prims:   prims,
		isLeft:  make([]bool, len(prims)),
		scratch: make([]int32, len(prims)),
		areas:   make([]float32, len(prims)),
	}
	for axis := AxisX; axis <= AxisZ; axis++ {
		idx := make([]int32, len(prims))
		for i := range idx {
			idx[i] = int32(i)
		}
		slices.SortStableFunc(idx, func(a, b int32) int {
			pa, pb := &prims[a], &prims[b]
			if c := cmp.Compare(pa.Centroid[axis], pb.Centroid[axis]); c != 0 {
				return c
			}
			return cmp.Compare(pa.ID, pb.ID)
		})
		s.order[axis] = idx
	}
	return s
}

func (s *sweeper) record(begin, end int) BuildRecord {
	rec := NewBuildRecord(begin)
	for _, i := range s.order[AxisX][begin:end] {
		rec.Expand(s.prims[i].Bounds)
	}
	return rec
}

func (s *sweeper) find(rec BuildRecord) Cut {
	best := invalidCut()
	n := rec.Size()
	if n < 2 {
		return best
	}
	extent := rec.CentroidBounds.Extent()

	for axis := AxisX; axis <= AxisZ; axis++ {
		if !(extent[axis] > 0) {
			continue
		}
		idx := s.order[axis][rec.Begin:rec.End]

		acc := EmptyAABB()
		for k := n - 1; k >= 1; k-- {
			acc = acc.Union(s.prims[idx[k]].Bounds)
			s.areas[k] = acc.HalfArea()
		}

		acc = EmptyAABB()
		for k := 1; k < n; k++ {
			acc = acc.Union(s.prims[idx[k-1]].Bounds)
			cost := acc.HalfArea()*float32(k) + s.areas[k]*float32(n-k)
			if cost < best.Cost {
				best = Cut{Axis: axis, Index: k, Cost: cost}
			}
		}
	}
	return best
}

func (s *sweeper) partition(cut Cut, rec BuildRecord) (BuildRecord, BuildRecord) {
	if !cut.Valid() {
		cut = Cut{Axis: rec.CentroidBounds.WidestAxis(), Index: rec.Size() / 2}
	}
	center := rec.Begin + cut.Index

	for k, i := range s.order[cut.Axis][rec.Begin:rec.End] {
		s.isLeft[i] = rec.Begin+k < center
	}
	for axis := AxisX; axis <= AxisZ; axis++ {
		if axis == cut.Axis {
			continue
		}
		idx := s.order[axis][rec.Begin:rec.End]
		tmp := s.scratch[:0]
		for _, i := range idx {
			if s.isLeft[i] {
				tmp = append(tmp, i)
			}
		}
		for _, i := range idx {
			if !s.isLeft[i] {
				tmp = append(tmp, i)
			}
		}
		copy(idx, tmp)
	}

	return s.record(rec.Begin, center), s.record(center, rec.End)
}

func (s *sweeper) appendIDs(dst []int, rec BuildRecord) []int {
	for _, i := range s.order[AxisX][rec.Begin:rec.End] {
		dst = append(dst, s.prims[i].ID)
	}
	return dst
}
