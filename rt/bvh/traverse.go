package bvh

import "github.com/chewxy/math32"

type QueryMode uint8

const (
	// QueryClosest visits every candidate leaf and keeps the nearest hit.
	QueryClosest QueryMode = iota
	// QueryAny stops at the first hit.
	QueryAny
)

// IntersectFunc tests primitive id against ray and reports a hit distance in
// [tMin, tMax].
type IntersectFunc func(id int, ray Ray, tMin, tMax float32) (float32, bool)

type HitRecord struct {
	T           float32
	PrimitiveID int
}

// TraceStats counts the work done by one query.
type TraceStats struct {
	Nodes      int
	Leaves     int
	Primitives int
}

// stackSize bounds the traversal stack. Each visited interior node pushes at
// most MaxWidth-1 entries and the builder never goes deeper than
// MaxTreeDepth.
const stackSize = MaxWidth * MaxTreeDepth

type stackEntry struct {
	ref  ChildRef
	dist float32
}

func (t *Tree) ClosestHit(ray Ray, maxDist float32, fn IntersectFunc) (HitRecord, bool) {
	return t.Trace(ray, maxDist, QueryClosest, fn, nil)
}

func (t *Tree) AnyHit(ray Ray, maxDist float32, fn IntersectFunc) bool {
	_, ok := t.Trace(ray, maxDist, QueryAny, fn, nil)
	return ok
}

// Trace walks the tree with an explicit stack. Nearer children are visited
// first; the nearest live child of a node is descended into directly and the
// others are pushed. Entries popped behind the current closest hit are
// skipped. stats may be nil.
func (t *Tree) Trace(ray Ray, maxDist float32, mode QueryMode, fn IntersectFunc, stats *TraceStats) (HitRecord, bool) {
	hit := HitRecord{T: maxDist, PrimitiveID: -1}
	if t == nil || math32.IsNaN(maxDist) || maxDist < 0 {
		return hit, false
	}
	rd, ok := newRayData(ray)
	if !ok {
		return hit, false
	}

	tfar := maxDist
	entry, ok := rd.intersectBox(t.bounds, 0, tfar)
	if !ok {
		return hit, false
	}

	var (
		st    TraceStats
		stack [stackSize]stackEntry
		sp    int
		found bool
		dist  [MaxWidth]float32
		order [MaxWidth]int
	)
	cur := stackEntry{ref: t.root, dist: entry}

	for {
		if cur.dist <= tfar {
			if cur.ref.IsLeaf() {
				st.Leaves++
				end := cur.ref.Index + cur.ref.Count
				for k := cur.ref.Index; k < end; k++ {
					id := t.ordering[k]
					st.Primitives++
					th, ok := fn(id, ray, 0, tfar)
					if !ok || th < 0 || th > tfar || (found && th == tfar) {
						continue
					}
					tfar = th
					hit = HitRecord{T: th, PrimitiveID: id}
					found = true
					if mode == QueryAny {
						st.copyTo(stats)
						return hit, true
					}
				}
			} else {
				node := &t.nodes[cur.ref.Index]
				st.Nodes++
				mask := node.intersectChildren(&rd, 0, tfar, &dist)

				n := 0
				for i := 0; i < MaxWidth; i++ {
					if mask&(1<<i) == 0 {
						continue
					}
					// Insertion sort by entry distance.
					j := n
					for j > 0 && dist[order[j-1]] > dist[i] {
						order[j] = order[j-1]
						j--
					}
					order[j] = i
					n++
				}

				if n > 0 {
					for k := n - 1; k >= 1; k-- {
						if sp >= len(stack) {
							panic(ErrStackOverflow)
						}
						stack[sp] = stackEntry{ref: node.Children[order[k]], dist: dist[order[k]]}
						sp++
					}
					cur = stackEntry{ref: node.Children[order[0]], dist: dist[order[0]]}
					continue
				}
			}
		}

		if sp == 0 {
			break
		}
		sp--
		cur = stack[sp]
	}

	st.copyTo(stats)
	return hit, found
}

func (s TraceStats) copyTo(dst *TraceStats) {
	if dst != nil {
		*dst = s
	}
}
