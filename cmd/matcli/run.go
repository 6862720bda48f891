package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mars-project/medax/grid"
	"github.com/mars-project/medax/homology"
	"github.com/mars-project/medax/matstate"
	"github.com/mars-project/medax/simplicial"
	"golang.org/x/sync/errgroup"
)

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	objPath := fs.String("obj", "", "input surface OBJ file (required)")
	meshPath := fs.String("grid", "", "explicit query mesh OBJ file (default: a regular grid around the surface)")
	cellSize := fs.Float64("cell-size", 0.05, "regular grid cell size, used when -grid is not given")
	buffer := fs.Float64("buffer", 0.1, "regular grid buffer around the surface's bounding box, used when -grid is not given")
	out := fs.String("out", "", "output state file (required)")
	workers := fs.Int("workers", 1, "number of concurrent sub-grid workers (regular grid only)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *objPath == "" || *out == "" {
		fs.Usage()
		return fmt.Errorf("-obj and -out are required")
	}

	c, err := readComplex(*objPath)
	if err != nil {
		return err
	}

	var core *matstate.Core
	var vy *matstate.Vineyards

	if *meshPath != "" {
		f, err := os.Open(*meshPath)
		if err != nil {
			return err
		}
		defer f.Close()
		m, err := grid.ReadMeshFromOBJ(f)
		if err != nil {
			return fmt.Errorf("reading mesh %s: %w", *meshPath, err)
		}

		logOut.Info().Int("points", len(m.Points)).Msg("running vineyards over explicit mesh")
		start := time.Now()
		reductions, transitions, err := m.RunVineyards(c, false)
		if err != nil {
			return err
		}
		logOut.Info().Dur("elapsed", time.Since(start)).Int("transitions", len(transitions)).Msg("mesh walk complete")

		core = &matstate.Core{Complex: c, Mesh: m}
		vy = &matstate.Vineyards{Reductions: reductions, Transitions: transitions}
	} else {
		g := grid.AroundComplex(c, *cellSize, *buffer)
		logOut.Info().Int("cells", g.Volume()).Msg("built regular grid")

		start := time.Now()
		vy, err = runRegularGrid(c, g, *workers)
		if err != nil {
			return err
		}
		logOut.Info().Dur("elapsed", time.Since(start)).Int("transitions", len(vy.Transitions)).Msg("grid walk complete")

		core = &matstate.Core{Complex: c, Regular: g}
	}

	data, err := matstate.EncodeState(&matstate.State{Core: core, Vineyards: vy})
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	return nil
}

func readComplex(path string) (*simplicial.Complex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := simplicial.ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return c, nil
}

// runRegularGrid walks g with a single pass when workers <= 1, or splits it
// into at least workers overlapping sub-grids and walks each concurrently
// otherwise.
func runRegularGrid(c *simplicial.Complex, g *grid.Regular, workers int) (*matstate.Vineyards, error) {
	if workers <= 1 {
		reductions, transitions, err := g.RunVineyardsInGrid(c, g.CenterIndex(), false)
		if err != nil {
			return nil, err
		}
		return &matstate.Vineyards{Reductions: reductions, Transitions: transitions}, nil
	}

	subgrids := splitInto(g, workers)
	results := make([]*matstate.Vineyards, len(subgrids))

	grp, ctx := errgroup.WithContext(context.Background())
	for i, sg := range subgrids {
		i, sg := i, sg
		grp.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			reductions, transitions, err := sg.RunVineyardsInGrid(c, sg.CenterIndex(), false)
			if err != nil {
				return err
			}
			results[i] = &matstate.Vineyards{Reductions: reductions, Transitions: transitions}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return mergeResults(results), nil
}

// splitInto recursively bisects g until there are at least n sub-grids,
// each overlapping its neighbor by one cell so mergeResults sees the
// shared-boundary reductions from at least one side.
func splitInto(g *grid.Regular, n int) []*grid.Regular {
	grids := []*grid.Regular{g}
	for len(grids) < n {
		next := make([]*grid.Regular, 0, len(grids)*2)
		for _, sub := range grids {
			lower, upper, _ := sub.SplitWithOverlap(1)
			next = append(next, lower, upper)
		}
		grids = next
	}
	return grids
}

// mergeResults unions every sub-grid's Reduction cache and transition list
// into a single Vineyards. A grid point visited by more than one sub-grid's
// overlap band keeps whichever sub-grid's Reduction is unioned in first:
// both are equally valid at that point's own key point, so the choice only
// affects determinism of the merge, not correctness.
func mergeResults(results []*matstate.Vineyards) *matstate.Vineyards {
	merged := &matstate.Vineyards{Reductions: make(map[grid.Index]*homology.Reduction)}
	for _, r := range results {
		for idx, red := range r.Reductions {
			if _, ok := merged.Reductions[idx]; !ok {
				merged.Reductions[idx] = red
			}
		}
		merged.Transitions = append(merged.Transitions, r.Transitions...)
	}
	return merged
}
