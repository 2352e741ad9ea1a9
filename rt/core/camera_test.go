package core

import (
	"testing"

	"github.com/gekko3d/gekko-accel/rt/bvh"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func box(min, max mgl32.Vec3) bvh.AABB { return bvh.AABB{Min: min, Max: max} }

func TestFrustumCulling(t *testing.T) {
	// Camera at origin looking down -Z, 90 deg FOV, near 1, far 100.
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1.0, 1.0, 100.0)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	cam := &CameraState{}
	planes := cam.ExtractFrustum(proj.Mul4(view))

	tests := []struct {
		name     string
		aabbMin  mgl32.Vec3
		aabbMax  mgl32.Vec3
		expected bool
	}{
		{"Inside (center)", mgl32.Vec3{-1, -1, -10}, mgl32.Vec3{1, 1, -5}, true},
		{"Outside (Left)", mgl32.Vec3{-20, -1, -10}, mgl32.Vec3{-15, 1, -5}, false},
		{"Outside (Right)", mgl32.Vec3{15, -1, -10}, mgl32.Vec3{20, 1, -5}, false},
		{"Outside (Behind/Near)", mgl32.Vec3{-1, -1, 2}, mgl32.Vec3{1, 1, 5}, false},
		{"Outside (Far)", mgl32.Vec3{-1, -1, -200}, mgl32.Vec3{1, 1, -150}, false},
		{"Intersecting (Left Plane)", mgl32.Vec3{-15, -1, -10}, mgl32.Vec3{-5, 1, -5}, true},
		{"Encompassing (Huge box)", mgl32.Vec3{-1000, -1000, -1000}, mgl32.Vec3{1000, 1000, 1000}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, bvh.BoxInFrustum(box(tc.aabbMin, tc.aabbMax), planes))
		})
	}
}

func TestFrustumOrtho(t *testing.T) {
	proj := mgl32.Ortho(-10, 10, -10, 10, 0, 20)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	planes := (&CameraState{}).ExtractFrustum(proj.Mul4(view))

	assert.True(t, bvh.BoxInFrustum(box(mgl32.Vec3{-1, -1, -6}, mgl32.Vec3{1, 1, -4}), planes))
	// Far is 20, so z=-25 is beyond it.
	assert.False(t, bvh.BoxInFrustum(box(mgl32.Vec3{-1, -1, -26}, mgl32.Vec3{1, 1, -24}), planes))
}

func TestCameraBasis(t *testing.T) {
	cam := NewCameraState()
	cam.Position = mgl32.Vec3{0, 0, 0}
	f, r, u := cam.GetForward(), cam.GetRight(), cam.GetUp()
	assert.InDelta(t, 0, f.Dot(r), 1e-6)
	assert.InDelta(t, 0, f.Dot(u), 1e-6)
	assert.InDelta(t, 1, u.Z(), 1e-6)

	cam.LookAt(mgl32.Vec3{10, 0, 0})
	f = cam.GetForward()
	assert.InDelta(t, 1, f.X(), 1e-5)
	assert.InDelta(t, 0, f.Y(), 1e-5)

	cam.LookAt(mgl32.Vec3{0, 0, 0})
	assert.InDelta(t, 1, cam.GetForward().X(), 1e-5, "looking at own position keeps orientation")
}

func TestPrimaryRay(t *testing.T) {
	cam := NewCameraState()
	cam.Position = mgl32.Vec3{0, 20, 0}
	cam.LookAt(mgl32.Vec3{0, 0, 0})

	// Centre pixel of an odd image goes straight ahead.
	ray := cam.PrimaryRay(50, 50, 101, 101)
	assert.Equal(t, cam.Position, ray.Origin)
	assert.InDelta(t, -1, ray.Dir.Y(), 1e-5)

	// Row 0 points up, column 0 points left.
	top := cam.PrimaryRay(50, 0, 101, 101)
	assert.Greater(t, top.Dir.Z(), float32(0))
	left := cam.PrimaryRay(0, 50, 101, 101)
	assert.Less(t, left.Dir.Dot(cam.GetRight()), float32(0))
	assert.InDelta(t, 1, left.Dir.Len(), 1e-5)
}

func TestPrimaryRaysInsideFrustum(t *testing.T) {
	cam := NewCameraState()
	cam.LookAt(mgl32.Vec3{0, 0, 0})
	planes := cam.Frustum(1)
	for _, px := range [][2]int{{0, 0}, {63, 0}, {0, 63}, {63, 63}, {32, 32}} {
		ray := cam.PrimaryRay(px[0], px[1], 64, 64)
		p := ray.At(10)
		assert.True(t, bvh.BoxInFrustum(box(p, p), planes), "pixel %v", px)
	}
}
