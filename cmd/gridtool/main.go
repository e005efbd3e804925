// gridtool is a CLI utility for working with terrain grid files.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/Ladvien/pixy-terrain/internal/demo"
	"github.com/Ladvien/pixy-terrain/internal/engine/palette"
	"github.com/Ladvien/pixy-terrain/internal/engine/terrain"
	"github.com/Ladvien/pixy-terrain/pkg/grid"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "generate", "gen":
		cmdGenerate(args)
	case "dump":
		cmdDump(args)
	case "mesh":
		cmdMesh(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gridtool - terrain grid file utility

Usage:
  gridtool <command> [options] <file.pxg>

Commands:
  info <file.pxg>                     Show grid information
  generate [options] <file.pxg>       Write a demo landscape grid
  dump [options] <file.pxg>           Print an ASCII height map
  mesh [options] <file.pxg>           Mesh the grid and report statistics

Examples:
  gridtool generate -size 64 -seed 7 terrain.pxg
  gridtool info terrain.pxg
  gridtool dump -slots terrain.pxg
  gridtool mesh -workers 4 -highpoly terrain.pxg`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gridtool info <file.pxg>")
		os.Exit(1)
	}

	g, err := grid.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	min, max := g.HeightRange()
	masked := 0
	slotCount := make(map[int]int)
	for z := 0; z < g.PointsH; z++ {
		for x := 0; x < g.PointsW; x++ {
			a, b := g.GroundAt(x, z)
			slotCount[palette.Decode(a, b)]++
			if !g.Mask[g.Index(x, z)].IsZero() {
				masked++
			}
		}
	}

	fmt.Printf("Grid:    %s\n", args[0])
	fmt.Printf("Points:  %d x %d\n", g.PointsW, g.PointsH)
	fmt.Printf("Cells:   %d x %d\n", g.CellsW(), g.CellsH())
	fmt.Printf("Heights: %.2f .. %.2f\n", min, max)
	fmt.Printf("Masked:  %d points\n", masked)
	fmt.Println()
	fmt.Println("Points by ground slot:")

	// Sort by count
	type slotStat struct {
		slot  int
		count int
	}
	var stats []slotStat
	for slot, count := range slotCount {
		stats = append(stats, slotStat{slot, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].count > stats[j].count
	})

	for _, s := range stats {
		fmt.Printf("  slot %-2d    %d\n", s.slot, s.count)
	}
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	size := fs.Int("size", 64, "Grid size in points per side")
	seed := fs.Uint64("seed", 1, "Landscape seed")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gridtool generate [-size N] [-seed S] <file.pxg>")
		os.Exit(1)
	}

	g := demo.Grid(*size, *size, *seed)
	if err := g.Save(fs.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated: %s (%d x %d points, seed %d)\n", fs.Arg(0), g.PointsW, g.PointsH, *seed)
}

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	slots := fs.Bool("slots", false, "Print ground slots instead of heights")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gridtool dump [-slots] <file.pxg>")
		os.Exit(1)
	}

	g, err := grid.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *slots {
		const digits = "0123456789abcdef"
		for z := 0; z < g.PointsH; z++ {
			line := make([]byte, g.PointsW)
			for x := 0; x < g.PointsW; x++ {
				a, b := g.GroundAt(x, z)
				line[x] = digits[palette.Decode(a, b)]
			}
			fmt.Println(string(line))
		}
		return
	}

	min, max := g.HeightRange()
	span := max - min
	if span <= 0 {
		span = 1
	}
	const ramp = " .:-=+*#%@"
	for z := 0; z < g.PointsH; z++ {
		line := make([]byte, g.PointsW)
		for x := 0; x < g.PointsW; x++ {
			t := (g.HeightAt(x, z) - min) / span
			line[x] = ramp[int(t*float32(len(ramp)-1))]
		}
		fmt.Println(string(line))
	}
}

func cmdMesh(args []string) {
	fs := flag.NewFlagSet("mesh", flag.ExitOnError)
	workers := fs.Int("workers", 0, "Worker count (0 = one per CPU)")
	highPoly := fs.Bool("highpoly", false, "Use the four-triangle floor fan")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gridtool mesh [-workers N] [-highpoly] <file.pxg>")
		os.Exit(1)
	}

	g, err := grid.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := terrain.DefaultOptions()
	opts.HighPoly = *highPoly
	gen := terrain.NewGenerator(g, opts)
	ch := gen.BuildChunkParallel(0, 0, g.CellsW(), g.CellsH(), *workers)
	st := ch.Stats()

	fmt.Printf("Cells:     %d\n", len(ch.Cells))
	fmt.Printf("Vertices:  %d\n", st.Vertices)
	fmt.Printf("Triangles: %d (%d floor, %d wall)\n", st.Triangles, st.FloorTris, st.WallTris)
	fmt.Println()
	fmt.Println("Cells by case:")
	for i, n := range st.Cases {
		if n > 0 {
			fmt.Printf("  %-12s %d\n", terrain.CellCase(i), n)
		}
	}
	fmt.Println()
	fmt.Println("Cells by dominant slot:")
	for slot, n := range st.Slots {
		if n > 0 {
			fmt.Printf("  slot %-2d    %d\n", slot, n)
		}
	}
}
