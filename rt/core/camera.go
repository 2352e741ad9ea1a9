package core

import (
	"math"

	"github.com/gekko3d/gekko-accel/rt/bvh"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraState struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	FovY     float32 // radians
	Near     float32
	Far      float32
}

func NewCameraState() *CameraState {
	return &CameraState{
		Position: mgl32.Vec3{0, 2, 20},
		FovY:     mgl32.DegToRad(60),
		Near:     0.1,
		Far:      1000,
	}
}

// LookAt points the camera at target, keeping Z as up.
func (c *CameraState) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	c.Pitch = float32(math.Asin(float64(mgl32.Clamp(d.Z(), -1, 1))))
	c.Yaw = float32(math.Atan2(float64(d.X()), float64(-d.Y())))
}

func (c *CameraState) GetForward() mgl32.Vec3 {
	// Z-up: Forward in XY plane, Z for pitch
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Pitch)) * math.Sin(float64(c.Yaw))),
		float32(-math.Cos(float64(c.Pitch)) * math.Cos(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
	}
}

func (c *CameraState) GetRight() mgl32.Vec3 {
	// Z-up: Right in XY plane
	return mgl32.Vec3{
		float32(-math.Cos(float64(c.Yaw))),
		float32(-math.Sin(float64(c.Yaw))),
		0,
	}
}

func (c *CameraState) GetUp() mgl32.Vec3 {
	return c.GetRight().Cross(c.GetForward())
}

func (c *CameraState) GetViewMatrix() mgl32.Mat4 {
	eye := c.Position
	return mgl32.LookAtV(eye, eye.Add(c.GetForward()), mgl32.Vec3{0, 0, 1})
}

func (c *CameraState) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// Frustum returns the culling planes for an image of the given aspect.
func (c *CameraState) Frustum(aspect float32) [6]mgl32.Vec4 {
	return c.ExtractFrustum(c.ProjectionMatrix(aspect).Mul4(c.GetViewMatrix()))
}

// PrimaryRay returns the ray through the centre of pixel (x, y) of a w x h
// image. Row 0 is the top of the image.
func (c *CameraState) PrimaryRay(x, y, w, h int) bvh.Ray {
	aspect := float32(w) / float32(h)
	tanHalf := float32(math.Tan(float64(c.FovY) / 2))
	px := (2*(float32(x)+0.5)/float32(w) - 1) * tanHalf * aspect
	py := (1 - 2*(float32(y)+0.5)/float32(h)) * tanHalf
	dir := c.GetForward().Add(c.GetRight().Mul(px)).Add(c.GetUp().Mul(py))
	return bvh.Ray{Origin: c.Position, Dir: dir.Normalize()}
}

// ExtractFrustum extracts the 6 planes of the frustum from the view-projection matrix.
// Returns planes in order: Left, Right, Bottom, Top, Near, Far.
// Plane is Ax + By + Cz + D = 0.
func (c *CameraState) ExtractFrustum(vp mgl32.Mat4) [6]mgl32.Vec4 {
	var planes [6]mgl32.Vec4
	row := func(i int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(i, 0), vp.At(i, 1), vp.At(i, 2), vp.At(i, 3)}
	}
	w := row(3)
	for i := 0; i < 3; i++ {
		planes[2*i] = w.Add(row(i))
		planes[2*i+1] = w.Sub(row(i))
	}

	for i := range planes {
		length := planes[i].Vec3().Len()
		if length > 0 {
			planes[i] = planes[i].Mul(1.0 / length)
		}
	}
	return planes
}
