package main

import (
	"fmt"
	"os"

	accel "github.com/gekko3d/gekko-accel"
	"github.com/gekko3d/gekko-accel/rt/geom"
	"github.com/urfave/cli"
)

// loadConfig reads --config if given and applies the verbosity flags.
func loadConfig(ctx *cli.Context) (accel.Config, accel.Logger, error) {
	cfg := accel.DefaultConfig()
	if path := ctx.GlobalString("config"); path != "" {
		var err error
		if cfg, err = accel.LoadConfig(path); err != nil {
			return cfg, nil, err
		}
	}
	if ctx.GlobalBool("v") {
		cfg.BVH.Profile = true
	}
	if ctx.GlobalBool("vv") {
		cfg.Debug = true
	}
	w := ctx.App.ErrWriter
	if w == nil {
		w = os.Stderr
	}
	return cfg, accel.NewLoggerTo(w, cfg.LogPrefix, cfg.Debug), nil
}

func loadScene(ctx *cli.Context) ([]geom.Shape, error) {
	count := ctx.Int("count")
	if count < 1 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}
	return geom.Generate(geom.SceneKind(ctx.String("scene")), count, float32(ctx.Float64("spread")), ctx.Int64("seed"))
}
