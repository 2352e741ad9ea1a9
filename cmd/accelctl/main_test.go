package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	accel "github.com/gekko3d/gekko-accel"
	"github.com/gekko3d/gekko-accel/rt/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"accelctl"}, args...))
	return out.String(), err
}

func TestGlobalFlags(t *testing.T) {
	out, err := runApp(t, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "--vv")
	assert.Contains(t, out, "--config")

	out, err = runApp(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "0.1.0")
}

func TestStatsCommand(t *testing.T) {
	out, err := runApp(t, "stats", "--count", "500", "--compare")
	require.NoError(t, err)
	assert.Contains(t, out, "spheres scene, 500 shapes")
	assert.Contains(t, out, "binned")
	assert.Contains(t, out, "sweep")
	assert.Contains(t, out, "PRIMITIVES")
}

func TestStatsProfile(t *testing.T) {
	out, err := runApp(t, "-v", "stats", "--scene", "triangles", "--count", "300")
	require.NoError(t, err)
	assert.Contains(t, out, "build phases (binned, width 4)")
	assert.Contains(t, out, "partition")
}

func TestStatsUsesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bvh: {strategy: sweep, branching_factor: 8}\n"), 0o644))
	out, err := runApp(t, "--config", path, "stats", "--count", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "sweep")

	_, err = runApp(t, "stats", "--scene", "teapots")
	assert.Error(t, err)
}

func TestVerifyCommand(t *testing.T) {
	for _, scene := range []string{"spheres", "triangles", "boxes", "grid"} {
		out, err := runApp(t, "verify", "--scene", scene, "--count", "400", "--rays", "200")
		require.NoError(t, err, scene)
		assert.Contains(t, out, "Mismatches")
	}
}

func TestVerifyReport(t *testing.T) {
	shapes, err := geom.Generate(geom.SceneBoxes, 300, 10, 4)
	require.NoError(t, err)
	a, err := accel.Build(shapes, accel.DefaultConfig(), nil)
	require.NoError(t, err)
	rep, err := verify(a, shapes, 10, 300, 5)
	require.NoError(t, err)
	assert.Equal(t, 300, rep.Rays)
	assert.Zero(t, rep.Mismatches)
	assert.Positive(t, rep.Hits)
	assert.Positive(t, rep.Trace.Nodes)
}

func TestRenderDepth(t *testing.T) {
	shapes := []geom.Shape{geom.Sphere{Radius: 5}}
	a, err := accel.Build(shapes, accel.DefaultConfig(), nil)
	require.NoError(t, err)

	cam := sceneCamera(10)
	img, err := renderDepth(context.Background(), a, cam, 32, 24)
	require.NoError(t, err)
	assert.NotZero(t, img.GrayAt(16, 12).Y, "centre pixel sees the sphere")
	assert.Zero(t, img.GrayAt(0, 0).Y, "corner misses")

	up := upscale(img, 2)
	assert.Equal(t, 64, up.Bounds().Dx())
	assert.Equal(t, 48, up.Bounds().Dy())
	assert.Same(t, img, upscale(img, 1))
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depth.png")
	_, err := runApp(t, "render", "--scene", "grid", "--count", "27", "--width", "40", "--height", "30", "--out", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())
}
