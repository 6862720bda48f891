package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mars-project/medax/grid"
	"github.com/mars-project/medax/simplicial"
)

func objCmd(args []string) error {
	fs := flag.NewFlagSet("obj", flag.ExitOnError)
	in := fs.String("in", "", "input OBJ file (required)")
	asMesh := fs.Bool("mesh", false, "parse as a query mesh (v/l lines) instead of a surface (v/f lines)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return fmt.Errorf("-in is required")
	}

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()

	if *asMesh {
		m, err := grid.ReadMeshFromOBJ(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", *in, err)
		}
		edges := 0
		for _, n := range m.Neighbors {
			edges += len(n)
		}
		fmt.Printf("points: %d\nedges:  %d\n", len(m.Points), edges/2)
		if m.DimDist != nil {
			fmt.Printf("dim_dist: %v\n", *m.DimDist)
		}
		return nil
	}

	c, err := simplicial.ReadOBJ(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *in, err)
	}
	fmt.Printf("vertices:  %d\nedges:     %d\ntriangles: %d\n",
		c.NumSimplicesOfDim(0), c.NumSimplicesOfDim(1), c.NumSimplicesOfDim(2))
	return nil
}
