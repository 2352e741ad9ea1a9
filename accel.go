// Package accel puts a wide BVH over a set of shapes and answers ray and
// frustum queries against them.
package accel

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gekko3d/gekko-accel/rt/bvh"
	"github.com/gekko3d/gekko-accel/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// Hit is a resolved ray hit. Primitive indexes the shapes passed to Build.
type Hit struct {
	T         float32
	Primitive int
	Point     mgl32.Vec3
	Normal    mgl32.Vec3
}

// Accel is immutable after Build and safe for concurrent queries.
type Accel struct {
	shapes  []geom.Shape
	tree    *bvh.Tree
	workers int
}

func Build(shapes []geom.Shape, cfg Config, logger Logger) (*Accel, error) {
	logger = orNop(logger)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tree, err := bvh.BuildFrom(shapes, cfg.BVH)
	if err != nil {
		return nil, fmt.Errorf("build accel over %d shapes: %w", len(shapes), err)
	}

	st := tree.Stats()
	logger.Debugf("%s", st)
	if st.ForcedLeaves > 0 {
		logger.Warnf("bvh %s: %d leaves exceed max_leaf_size=%d (unsplittable centroids)",
			st.ID, st.ForcedLeaves, cfg.BVH.MaxLeafSize)
	}
	if p := tree.Profile(); p != nil && logger.DebugEnabled() {
		logger.Debugf("build phases:\n%s", p)
	}

	return &Accel{shapes: shapes, tree: tree, workers: cfg.Workers}, nil
}

func (a *Accel) Tree() *bvh.Tree       { return a.tree }
func (a *Accel) Stats() bvh.BuildStats { return a.tree.Stats() }
func (a *Accel) Len() int              { return len(a.shapes) }
func (a *Accel) Shape(id int) geom.Shape {
	return a.shapes[id]
}

// intersector adapts the shape list to the traversal callback and remembers
// the normal of the closest hit. Traversal only accepts strictly closer hits,
// which is the same rule applied here.
type intersector struct {
	shapes []geom.Shape
	best   float32
	normal mgl32.Vec3
}

func (in *intersector) test(id int, ray bvh.Ray, tMin, tMax float32) (float32, bool) {
	h, ok := in.shapes[id].Intersect(ray, tMin, tMax)
	if !ok {
		return 0, false
	}
	if h.T < in.best {
		in.best = h.T
		in.normal = h.Normal
	}
	return h.T, true
}

func (a *Accel) trace(ray bvh.Ray, maxDist float32, mode bvh.QueryMode, stats *bvh.TraceStats) (Hit, bool) {
	in := intersector{shapes: a.shapes, best: math32.Inf(1)}
	rec, ok := a.tree.Trace(ray, maxDist, mode, in.test, stats)
	if !ok {
		return Hit{T: maxDist, Primitive: -1}, false
	}
	return Hit{T: rec.T, Primitive: rec.PrimitiveID, Point: ray.At(rec.T), Normal: in.normal}, true
}

// ClosestHit returns the nearest hit with t in [0, maxDist].
func (a *Accel) ClosestHit(origin, dir mgl32.Vec3, maxDist float32) (Hit, bool) {
	return a.trace(bvh.Ray{Origin: origin, Dir: dir}, maxDist, bvh.QueryClosest, nil)
}

// AnyHit reports whether anything lies on the segment.
func (a *Accel) AnyHit(origin, dir mgl32.Vec3, maxDist float32) bool {
	_, ok := a.trace(bvh.Ray{Origin: origin, Dir: dir}, maxDist, bvh.QueryAny, nil)
	return ok
}

// TraceRay is ClosestHit with work counters.
func (a *Accel) TraceRay(ray bvh.Ray, maxDist float32, stats *bvh.TraceStats) (Hit, bool) {
	return a.trace(ray, maxDist, bvh.QueryClosest, stats)
}

// Cull returns the ids of shapes whose bounds intersect the frustum, in
// traversal order.
func (a *Accel) Cull(planes [6]mgl32.Vec4) []int {
	var ids []int
	a.tree.Cull(planes, func(id int) { ids = append(ids, id) })
	return ids
}
