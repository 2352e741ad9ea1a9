package bvh

import "github.com/chewxy/math32"

// binner evaluates SAH splits over K uniform centroid bins per axis and
// partitions the primitive array in place.
type binner struct {
	prims []BuildPrimitive
	k     int

	bins       []AABB
	counts     []int
	rightArea  []float32
	rightCount []int
}

func newBinner(prims []BuildPrimitive, binCount int) *binner {
	return &binner{
		prims:      prims,
		k:          binCount,
		bins:       make([]AABB, binCount),
		counts:     make([]int, binCount),
		rightArea:  make([]float32, binCount),
		rightCount: make([]int, binCount),
	}
}

// binMapping returns the offset and scale that map a centroid coordinate on
// axis into [0, K). ok is false when the axis has no usable extent.
func (b *binner) binMapping(rec BuildRecord, axis Axis) (lo, scale float32, ok bool) {
	extent := rec.CentroidBounds.Max[axis] - rec.CentroidBounds.Min[axis]
	if !(extent > 0) {
		return 0, 0, false
	}
	scale = float32(b.k) / extent
	if math32.IsInf(scale, 0) {
		return 0, 0, false
	}
	return rec.CentroidBounds.Min[axis], scale, true
}

func (b *binner) binIndex(c, lo, scale float32) int {
	i := int(math32.Floor((c - lo) * scale))
	if i < 0 {
		return 0
	}
	if i >= b.k {
		return b.k - 1
	}
	return i
}

func (b *binner) find(rec BuildRecord) Cut {
	best := invalidCut()
	if b.k < 2 {
		return best
	}

	for axis := AxisX; axis <= AxisZ; axis++ {
		lo, scale, ok := b.binMapping(rec, axis)
		if !ok {
			continue
		}

		for i := range b.bins {
			b.bins[i] = EmptyAABB()
			b.counts[i] = 0
		}
		for i := rec.Begin; i < rec.End; i++ {
			p := &b.prims[i]
			bin := b.binIndex(p.Centroid[axis], lo, scale)
			b.bins[bin] = b.bins[bin].Union(p.Bounds)
			b.counts[bin]++
		}

		// Suffix sweep: rightArea[i] covers bins [i, K).
		acc := EmptyAABB()
		n := 0
		for i := b.k - 1; i >= 1; i-- {
			acc = acc.Union(b.bins[i])
			n += b.counts[i]
			b.rightArea[i] = acc.HalfArea()
			b.rightCount[i] = n
		}

		acc = EmptyAABB()
		n = 0
		for i := 1; i < b.k; i++ {
			acc = acc.Union(b.bins[i-1])
			n += b.counts[i-1]
			if n == 0 || b.rightCount[i] == 0 {
				continue
			}
			cost := acc.HalfArea()*float32(n) + b.rightArea[i]*float32(b.rightCount[i])
			if cost < best.Cost {
				best = Cut{Axis: axis, Index: i, Cost: cost}
			}
		}
	}
	return best
}

func (b *binner) partition(cut Cut, rec BuildRecord) (BuildRecord, BuildRecord) {
	if !cut.Valid() {
		return medianSplit(b.prims, rec)
	}
	lo, scale, ok := b.binMapping(rec, cut.Axis)
	if !ok {
		return medianSplit(b.prims, rec)
	}

	left := func(p *BuildPrimitive) bool {
		return b.binIndex(p.Centroid[cut.Axis], lo, scale) < cut.Index
	}

	i, j := rec.Begin, rec.End
	for {
		for i < j && left(&b.prims[i]) {
			i++
		}
		for i < j && !left(&b.prims[j-1]) {
			j--
		}
		if i >= j {
			break
		}
		b.prims[i], b.prims[j-1] = b.prims[j-1], b.prims[i]
		i++
		j--
	}

	return recordOf(b.prims, rec.Begin, i), recordOf(b.prims, i, rec.End)
}

func (b *binner) appendIDs(dst []int, rec BuildRecord) []int {
	for i := rec.Begin; i < rec.End; i++ {
		dst = append(dst, b.prims[i].ID)
	}
	return dst
}
