package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func sceneFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: "spheres",
			Usage: "procedural scene: spheres, triangles, boxes or grid",
		},
		cli.IntFlag{
			Name:  "count, n",
			Value: 10000,
			Usage: "number of shapes",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: 1,
			Usage: "random seed of the scene",
		},
		cli.Float64Flag{
			Name:  "spread",
			Value: 50,
			Usage: "scene half size",
		},
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "accelctl"
	app.Usage = "build and inspect wide bounding volume hierarchies"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "profile build phases and print their timings",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable debug logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "YAML configuration file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "stats",
			Usage: "build a procedural scene and print tree statistics",
			Description: `
Build the configured hierarchy over a procedural scene and print node, leaf and
SAH statistics. With --compare every strategy and branching factor is built
and tabulated side by side.`,
			Flags: append(sceneFlags(), cli.BoolFlag{
				Name:  "compare",
				Usage: "build every strategy and width",
			}),
			Action: runStats,
		},
		{
			Name:  "verify",
			Usage: "validate the tree and compare ray queries against brute force",
			Flags: append(sceneFlags(), cli.IntFlag{
				Name:  "rays",
				Value: 2000,
				Usage: "number of random rays",
			}),
			Action: runVerify,
		},
		{
			Name:  "render",
			Usage: "render a depth image of a procedural scene",
			Flags: append(sceneFlags(),
				cli.IntFlag{
					Name:  "width",
					Value: 320,
					Usage: "traced width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 240,
					Usage: "traced height",
				},
				cli.Float64Flag{
					Name:  "scale",
					Value: 2,
					Usage: "output upscale factor",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "depth.png",
					Usage: "image filename",
				},
			),
			Action: runRender,
		},
	}
	return app
}
