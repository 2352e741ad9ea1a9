package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	accel "github.com/gekko3d/gekko-accel"
	"github.com/gekko3d/gekko-accel/rt/bvh"
	"github.com/gekko3d/gekko-accel/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/urfave/cli"
	"golang.org/x/image/draw"
)

// sceneCamera frames a scene of the given half size from above and in front.
func sceneCamera(spread float32) *core.CameraState {
	cam := core.NewCameraState()
	cam.Position = mgl32.Vec3{0, -2.5 * spread, spread}
	cam.Far = 10 * spread
	cam.LookAt(mgl32.Vec3{})
	return cam
}

// renderDepth traces one primary ray per pixel. Near hits are bright and
// misses are black.
func renderDepth(ctx context.Context, a *accel.Accel, cam *core.CameraState, w, h int) (*image.Gray, error) {
	rays := make([]bvh.Ray, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rays = append(rays, cam.PrimaryRay(x, y, w, h))
		}
	}
	results, err := a.TraceBatch(ctx, rays, cam.Far)
	if err != nil {
		return nil, err
	}

	near, far := cam.Far, float32(0)
	for _, r := range results {
		if r.OK {
			near = min(near, r.Hit.T)
			far = max(far, r.Hit.T)
		}
	}
	span := far - near
	if span <= 0 {
		span = 1
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	for i, r := range results {
		if !r.OK {
			continue
		}
		v := 1 - 0.85*(r.Hit.T-near)/span
		img.SetGray(i%w, i/w, color.Gray{Y: uint8(v * 255)})
	}
	return img, nil
}

func upscale(src image.Image, factor float64) image.Image {
	if factor == 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, int(float64(b.Dx())*factor), int(float64(b.Dy())*factor)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func runRender(ctx *cli.Context) error {
	cfg, logger, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	w, h := ctx.Int("width"), ctx.Int("height")
	scale := ctx.Float64("scale")
	if w < 1 || h < 1 || scale <= 0 {
		return fmt.Errorf("invalid image size %dx%d scale %g", w, h, scale)
	}
	shapes, err := loadScene(ctx)
	if err != nil {
		return err
	}
	a, err := accel.Build(shapes, cfg, logger)
	if err != nil {
		return err
	}

	img, err := renderDepth(context.Background(), a, sceneCamera(float32(ctx.Float64("spread"))), w, h)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, upscale(img, scale)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Infof("wrote %s", out)
	return nil
}
