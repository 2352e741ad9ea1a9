package bvh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ

	// AxisInvalid marks a cut that found no beneficial split.
	AxisInvalid
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "invalid"
}

// AABB is an axis aligned box. The zero value is a degenerate box at the
// origin; use EmptyAABB for an accumulator.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func NewAABB(a, b mgl32.Vec3) AABB {
	return AABB{Min: minVec(a, b), Max: maxVec(a, b)}
}

func (b AABB) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// IsFinite reports whether every coordinate is a real number.
func (b AABB) IsFinite() bool {
	for i := 0; i < 3; i++ {
		if math32.IsNaN(b.Min[i]) || math32.IsNaN(b.Max[i]) ||
			math32.IsInf(b.Min[i], 0) || math32.IsInf(b.Max[i], 0) {
			return false
		}
	}
	return true
}

func (b AABB) ExpandPoint(p mgl32.Vec3) AABB {
	return AABB{Min: minVec(b.Min, p), Max: maxVec(b.Max, p)}
}

func (b AABB) Union(o AABB) AABB {
	return AABB{Min: minVec(b.Min, o.Min), Max: maxVec(b.Max, o.Max)}
}

func (b AABB) Extent() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

func (b AABB) Centroid() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// HalfArea is half of the surface area. Empty boxes have zero area.
func (b AABB) HalfArea() float32 {
	e := b.Extent()
	return e[0]*e[1] + e[1]*e[2] + e[2]*e[0]
}

// WidestAxis returns the axis with the largest extent.
func (b AABB) WidestAxis() Axis {
	e := b.Extent()
	axis := AxisX
	if e[1] > e[axis] {
		axis = AxisY
	}
	if e[2] > e[axis] {
		axis = AxisZ
	}
	return axis
}

// Contains reports whether o lies entirely inside b.
func (b AABB) Contains(o AABB) bool {
	for i := 0; i < 3; i++ {
		if o.Min[i] < b.Min[i] || o.Max[i] > b.Max[i] {
			return false
		}
	}
	return true
}

func minVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])}
}

func maxVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])}
}
