package main

import (
	"bytes"
	"fmt"
	"math/rand"

	accel "github.com/gekko3d/gekko-accel"
	"github.com/gekko3d/gekko-accel/rt/bvh"
	"github.com/gekko3d/gekko-accel/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

type verifyReport struct {
	Rays       int
	Hits       int
	Mismatches int
	Trace      bvh.TraceStats // summed over all rays
}

// verify checks tree structure and compares closest-hit and any-hit answers
// with a linear scan over the shapes.
func verify(a *accel.Accel, shapes []geom.Shape, spread float32, rays int, seed int64) (verifyReport, error) {
	var rep verifyReport
	if err := a.Tree().Validate(); err != nil {
		return rep, err
	}

	rng := rand.New(rand.NewSource(seed))
	point := func(s float32) mgl32.Vec3 {
		return mgl32.Vec3{(rng.Float32()*2 - 1) * s, (rng.Float32()*2 - 1) * s, (rng.Float32()*2 - 1) * s}
	}
	const maxDist = 1e6
	for i := 0; i < rays; i++ {
		origin := point(2 * spread)
		ray := bvh.Ray{Origin: origin, Dir: point(spread).Sub(origin).Normalize()}

		want, wantOK := float32(maxDist), false
		for _, s := range shapes {
			if h, ok := s.Intersect(ray, 0, want); ok {
				want, wantOK = h.T, true
			}
		}

		var st bvh.TraceStats
		got, ok := a.TraceRay(ray, maxDist, &st)
		anyOK := a.AnyHit(ray.Origin, ray.Dir, maxDist)
		rep.Rays++
		rep.Trace.Nodes += st.Nodes
		rep.Trace.Leaves += st.Leaves
		rep.Trace.Primitives += st.Primitives
		if ok {
			rep.Hits++
		}
		if ok != wantOK || anyOK != wantOK || (ok && got.T != want) {
			rep.Mismatches++
		}
	}
	if rep.Mismatches > 0 {
		return rep, fmt.Errorf("%d of %d rays disagree with brute force", rep.Mismatches, rep.Rays)
	}
	return rep, nil
}

func runVerify(ctx *cli.Context) error {
	cfg, logger, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	shapes, err := loadScene(ctx)
	if err != nil {
		return err
	}
	a, err := accel.Build(shapes, cfg, logger)
	if err != nil {
		return err
	}

	rep, err := verify(a, shapes, float32(ctx.Float64("spread")), ctx.Int("rays"), ctx.Int64("seed")+1)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Rays", "Hits", "Mismatches", "Nodes/ray", "Leaves/ray", "Prims/ray"})
	perRay := func(n int) string {
		if rep.Rays == 0 {
			return "0"
		}
		return fmt.Sprintf("%.1f", float64(n)/float64(rep.Rays))
	}
	table.Append([]string{
		fmt.Sprintf("%d", rep.Rays),
		fmt.Sprintf("%d", rep.Hits),
		fmt.Sprintf("%d", rep.Mismatches),
		perRay(rep.Trace.Nodes),
		perRay(rep.Trace.Leaves),
		perRay(rep.Trace.Primitives),
	})
	table.Render()
	fmt.Fprint(ctx.App.Writer, buf.String())

	if err != nil {
		logger.Errorf("verify %s: %v", a.Stats().ID, err)
		return err
	}
	logger.Infof("verify %s: ok", a.Stats().ID)
	return nil
}
