package bvh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// BuildPrimitive pairs the caller's primitive id with its bounds. The builder
// permutes a slice of these but never changes one.
type BuildPrimitive struct {
	ID       int
	Bounds   AABB
	Centroid mgl32.Vec3
}

func NewBuildPrimitive(id int, bounds AABB) BuildPrimitive {
	return BuildPrimitive{ID: id, Bounds: bounds, Centroid: bounds.Centroid()}
}

// BuildRecord describes the primitive range [Begin, End) together with the
// union of the primitive bounds and the union of their centroids.
type BuildRecord struct {
	Begin, End     int
	GeometryBounds AABB
	CentroidBounds AABB
	depth          int
}

func NewBuildRecord(begin int) BuildRecord {
	return BuildRecord{
		Begin:          begin,
		End:            begin,
		GeometryBounds: EmptyAABB(),
		CentroidBounds: EmptyAABB(),
	}
}

func (r BuildRecord) Size() int {
	return r.End - r.Begin
}

// Expand grows the record by one primitive with the given bounds.
func (r *BuildRecord) Expand(bounds AABB) {
	r.GeometryBounds = r.GeometryBounds.Union(bounds)
	r.CentroidBounds = r.CentroidBounds.ExpandPoint(bounds.Centroid())
	r.End++
}

// Merge unions two records taken from the same contiguous range.
func (r *BuildRecord) Merge(o BuildRecord) {
	r.Begin = min(r.Begin, o.Begin)
	r.End = max(r.End, o.End)
	r.GeometryBounds = r.GeometryBounds.Union(o.GeometryBounds)
	r.CentroidBounds = r.CentroidBounds.Union(o.CentroidBounds)
}

// splittable reports whether the centroids spread along at least one axis.
func (r BuildRecord) splittable() bool {
	if r.Size() < 2 {
		return false
	}
	e := r.CentroidBounds.Extent()
	return e[0] > 0 || e[1] > 0 || e[2] > 0
}

// Cut is a split decision. Axis == AxisInvalid means no split beat the leaf.
type Cut struct {
	Axis  Axis
	Index int
	Cost  float32
}

func invalidCut() Cut {
	return Cut{Axis: AxisInvalid, Cost: math32.Inf(1)}
}

func (c Cut) Valid() bool {
	return c.Axis != AxisInvalid
}

// recordOf rebuilds a record from the primitives in prims[begin:end].
func recordOf(prims []BuildPrimitive, begin, end int) BuildRecord {
	rec := NewBuildRecord(begin)
	for i := begin; i < end; i++ {
		rec.Expand(prims[i].Bounds)
	}
	return rec
}
