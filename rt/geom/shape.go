package geom

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/gekko-accel/rt/bvh"
	"github.com/go-gl/mathgl/mgl32"
)

type Hit struct {
	T      float32
	Normal mgl32.Vec3
}

// Shape is a bounded object with an exact ray test.
type Shape interface {
	Bounds() bvh.AABB
	Intersect(ray bvh.Ray, tMin, tMax float32) (Hit, bool)
}

type Triangle struct {
	A, B, C mgl32.Vec3
}

func (tr Triangle) Bounds() bvh.AABB {
	return bvh.NewAABB(tr.A, tr.B).ExpandPoint(tr.C)
}

func (tr Triangle) Normal() mgl32.Vec3 {
	return tr.B.Sub(tr.A).Cross(tr.C.Sub(tr.A)).Normalize()
}

// Intersect is the Moller-Trumbore test. Both faces are hit.
func (tr Triangle) Intersect(ray bvh.Ray, tMin, tMax float32) (Hit, bool) {
	const eps = 1e-8
	e1 := tr.B.Sub(tr.A)
	e2 := tr.C.Sub(tr.A)
	p := ray.Dir.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < eps {
		return Hit{}, false
	}
	inv := 1 / det
	s := ray.Origin.Sub(tr.A)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return Hit{}, false
	}
	q := s.Cross(e1)
	v := ray.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}
	t := e2.Dot(q) * inv
	if t < tMin || t > tMax {
		return Hit{}, false
	}
	n := e1.Cross(e2).Normalize()
	if n.Dot(ray.Dir) > 0 {
		n = n.Mul(-1)
	}
	return Hit{T: t, Normal: n}, true
}

type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

func (s Sphere) Bounds() bvh.AABB {
	r := mgl32.Vec3{s.Radius, s.Radius, s.Radius}
	return bvh.AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

func (s Sphere) Intersect(ray bvh.Ray, tMin, tMax float32) (Hit, bool) {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Dir.Dot(ray.Dir)
	halfB := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := halfB*halfB - a*c
	if disc < 0 || a == 0 {
		return Hit{}, false
	}
	sq := math32.Sqrt(disc)
	t := (-halfB - sq) / a
	if t < tMin || t > tMax {
		t = (-halfB + sq) / a
		if t < tMin || t > tMax {
			return Hit{}, false
		}
	}
	n := ray.At(t).Sub(s.Center).Mul(1 / s.Radius)
	return Hit{T: t, Normal: n}, true
}

// Box is a solid axis aligned box.
type Box struct {
	bvh.AABB
}

func NewBox(center, halfSize mgl32.Vec3) Box {
	return Box{bvh.AABB{Min: center.Sub(halfSize), Max: center.Add(halfSize)}}
}

func (b Box) Bounds() bvh.AABB { return b.AABB }

func (b Box) Intersect(ray bvh.Ray, tMin, tMax float32) (Hit, bool) {
	tn, tf := tMin, tMax
	nearAxis := -1
	for axis := 0; axis < 3; axis++ {
		d := ray.Dir[axis]
		o := ray.Origin[axis]
		if d == 0 {
			if o < b.Min[axis] || o > b.Max[axis] {
				return Hit{}, false
			}
			continue
		}
		inv := 1 / d
		t0 := (b.Min[axis] - o) * inv
		t1 := (b.Max[axis] - o) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tn {
			tn, nearAxis = t0, axis
		}
		if t1 < tf {
			tf = t1
		}
		if tn > tf {
			return Hit{}, false
		}
	}
	var n mgl32.Vec3
	if nearAxis >= 0 {
		n[nearAxis] = -math32.Copysign(1, ray.Dir[nearAxis])
	}
	return Hit{T: tn, Normal: n}, true
}
