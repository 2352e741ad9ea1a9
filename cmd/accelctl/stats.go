package main

import (
	"bytes"
	"fmt"

	accel "github.com/gekko3d/gekko-accel"
	"github.com/gekko3d/gekko-accel/rt/bvh"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

func runStats(ctx *cli.Context) error {
	cfg, logger, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	shapes, err := loadScene(ctx)
	if err != nil {
		return err
	}

	configs := []accel.Config{cfg}
	if ctx.Bool("compare") {
		configs = configs[:0]
		for _, strategy := range []bvh.Strategy{bvh.StrategyBinned, bvh.StrategySweep} {
			for _, width := range []int{2, 4, 8} {
				c := cfg
				c.BVH.Strategy = strategy
				c.BVH.BranchingFactor = width
				configs = append(configs, c)
			}
		}
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Strategy", "Width", "Nodes", "Leaves", "Forced", "Avg leaf", "Depth", "SAH", "Build time"})

	var profiles []string
	for _, c := range configs {
		a, err := accel.Build(shapes, c, logger)
		if err != nil {
			return err
		}
		st := a.Stats()
		table.Append([]string{
			string(c.BVH.Strategy),
			fmt.Sprintf("%d", c.BVH.BranchingFactor),
			fmt.Sprintf("%d", st.Nodes),
			fmt.Sprintf("%d", st.Leaves),
			fmt.Sprintf("%d", st.ForcedLeaves),
			fmt.Sprintf("%.2f", st.AvgLeafSize()),
			fmt.Sprintf("%d", st.MaxDepth),
			fmt.Sprintf("%.3f", st.SAHCost),
			st.Duration.String(),
		})
		if p := a.Tree().Profile(); p != nil {
			profiles = append(profiles, profileTable(string(c.BVH.Strategy), c.BVH.BranchingFactor, p))
		}
	}
	table.SetFooter([]string{"", "", "", "", "", "", "", "PRIMITIVES", fmt.Sprintf("%d", len(shapes))})
	table.Render()

	fmt.Fprintf(ctx.App.Writer, "%s scene, %d shapes\n%s", ctx.String("scene"), len(shapes), buf.String())
	for _, p := range profiles {
		fmt.Fprint(ctx.App.Writer, p)
	}
	return nil
}

func profileTable(strategy string, width int, p *bvh.Profiler) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Phase", "Calls", "Time"})
	for _, name := range p.Slowest() {
		table.Append([]string{name, fmt.Sprintf("%d", p.Counts[name]), p.Scopes[name].String()})
	}
	table.Render()
	return fmt.Sprintf("build phases (%s, width %d)\n%s", strategy, width, buf.String())
}
