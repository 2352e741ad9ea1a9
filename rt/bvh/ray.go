package bvh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// 1 + 2*gamma(3); widens the far slab distance to absorb rounding in the
// reciprocal multiply.
const slabFarScale = 1 + 2*(3*0x1p-24)/(1-3*0x1p-24)

// rayData caches what the slab test needs per ray.
type rayData struct {
	org mgl32.Vec3
	inv mgl32.Vec3
	neg [3]bool
}

// newRayData returns ok=false for rays that can never hit anything: NaN or
// infinite components, or a zero direction.
func newRayData(r Ray) (rayData, bool) {
	var rd rayData
	zero := true
	for i := 0; i < 3; i++ {
		o, d := r.Origin[i], r.Dir[i]
		if math32.IsNaN(o) || math32.IsNaN(d) || math32.IsInf(o, 0) || math32.IsInf(d, 0) {
			return rd, false
		}
		if d != 0 {
			zero = false
		}
		rd.org[i] = o
		rd.inv[i] = 1 / d
		rd.neg[i] = math32.Signbit(d)
	}
	return rd, !zero
}

// slab clips [tn, tf] against the slab [lo, hi] on axis. A zero direction
// component gives an infinite reciprocal; the 0*inf NaN that appears when
// the origin sits on the plane fails both comparisons and leaves the
// interval untouched.
func (r *rayData) slab(axis int, lo, hi, tn, tf float32) (float32, float32) {
	near, far := lo, hi
	if r.neg[axis] {
		near, far = hi, lo
	}
	t0 := (near - r.org[axis]) * r.inv[axis]
	t1 := (far - r.org[axis]) * r.inv[axis] * slabFarScale
	if t0 > tn {
		tn = t0
	}
	if t1 < tf {
		tf = t1
	}
	return tn, tf
}

// intersectBox returns the entry distance of the ray into b within
// [tMin, tMax].
func (r *rayData) intersectBox(b AABB, tMin, tMax float32) (float32, bool) {
	if b.IsEmpty() {
		return 0, false
	}
	tn, tf := tMin, tMax
	for axis := 0; axis < 3; axis++ {
		tn, tf = r.slab(axis, b.Min[axis], b.Max[axis], tn, tf)
	}
	return tn, tn <= tf
}
