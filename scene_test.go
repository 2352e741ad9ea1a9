package accel

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/gekko3d/gekko-accel/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneCommitAndRaycast(t *testing.T) {
	s := NewScene(DefaultConfig(), nil)
	assert.False(t, s.Raycast(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 100).Hit, "empty scene")

	near := s.Add(geom.Sphere{Center: mgl32.Vec3{0, 0, 10}, Radius: 1})
	far := s.Add(geom.Sphere{Center: mgl32.Vec3{0, 0, 20}, Radius: 1})
	assert.True(t, s.Dirty())
	assert.False(t, s.Raycast(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 100).Hit, "not committed yet")

	require.NoError(t, s.Commit())
	assert.False(t, s.Dirty())
	hit := s.Raycast(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 100)
	require.True(t, hit.Hit)
	assert.Equal(t, near, hit.Object)
	assert.InDelta(t, 9, hit.T, 1e-5)
	assert.InDelta(t, -1, hit.Normal.Z(), 1e-5)

	assert.True(t, s.Remove(near))
	assert.False(t, s.Remove(near))
	// Stale tree until the next commit.
	assert.Equal(t, near, s.Raycast(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 100).Object)

	require.NoError(t, s.Commit())
	hit = s.Raycast(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 100)
	require.True(t, hit.Hit)
	assert.Equal(t, far, hit.Object)
	assert.Equal(t, 1, s.Len())

	require.True(t, s.Remove(far))
	require.NoError(t, s.Commit())
	assert.False(t, s.Raycast(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 100).Hit)
}

func TestSceneVisible(t *testing.T) {
	s := NewScene(DefaultConfig(), nil)
	inside := s.Add(geom.NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}))
	s.Add(geom.NewBox(mgl32.Vec3{50, 0, 0}, mgl32.Vec3{1, 1, 1}))
	require.NoError(t, s.Commit())

	planes := [6]mgl32.Vec4{
		{1, 0, 0, 5}, {-1, 0, 0, 5},
		{0, 1, 0, 5}, {0, -1, 0, 5},
		{0, 0, 1, 5}, {0, 0, -1, 5},
	}
	assert.Equal(t, []ObjectID{inside}, s.Visible(planes))
}

func TestSceneCommitKeepsTreeOnError(t *testing.T) {
	s := NewScene(DefaultConfig(), nil)
	id := s.Add(geom.Sphere{Center: mgl32.Vec3{0, 0, 5}, Radius: 1})
	require.NoError(t, s.Commit())

	s.Add(geom.Sphere{Center: mgl32.Vec3{math32.NaN(), 0, 0}, Radius: 1})
	assert.Error(t, s.Commit())
	assert.True(t, s.Dirty())
	assert.Equal(t, id, s.Raycast(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 100).Object)
}
