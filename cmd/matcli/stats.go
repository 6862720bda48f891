package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/mars-project/medax/homology"
	"github.com/mars-project/medax/matstate"
	"github.com/mars-project/medax/memstats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func statsCmd(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	in := fs.String("in", "", "input state file (required)")
	barcodeOut := fs.String("barcode", "", "optional path to write a barcode diagram PNG")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return fmt.Errorf("-in is required")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	state, err := matstate.DecodeState(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", *in, err)
	}

	m := memstats.MarsMemOf(state.Core, state.Vineyards)
	fmt.Printf("complex:   %d vertices, %d edges, %d triangles (%s)\n",
		m.Complex.Vertices, m.Complex.Edges, m.Complex.Triangles, humanBytes(m.Complex.Bytes))
	fmt.Printf("grid:      %s, %d points (%s)\n", m.Grid.Kind, m.Grid.Points, humanBytes(m.Grid.Bytes))
	fmt.Printf("vineyards: %d reductions, %d transitions (%s)\n",
		m.Vineyards.NumReductions, m.Vineyards.NumTransitions, humanBytes(m.Vineyards.Bytes))
	fmt.Printf("total:     %s\n", humanBytes(m.Bytes))

	if *barcodeOut != "" {
		var bars []homology.BirthDeathPair
		for _, red := range state.Vineyards.Reductions {
			bars = red.Barcode(state.Core.Complex)
			break
		}
		if err := writeBarcodePNG(*barcodeOut, bars); err != nil {
			return fmt.Errorf("writing barcode: %w", err)
		}
		logOut.Info().Str("path", *barcodeOut).Msg("wrote barcode diagram")
	}
	return nil
}

// writeBarcodePNG renders one horizontal segment per birth-death pair, one
// row per bar, colored by dimension.
func writeBarcodePNG(path string, bars []homology.BirthDeathPair) error {
	p := plot.New()
	p.Title.Text = "persistence barcode"
	p.X.Label.Text = "filtration value"
	p.Y.Label.Text = "bar index"

	colors := []color.Color{
		color.RGBA{R: 200, A: 255},
		color.RGBA{G: 150, A: 255},
		color.RGBA{B: 200, A: 255},
	}

	maxVal := 1.0
	for _, b := range bars {
		if b.Birth > maxVal {
			maxVal = b.Birth
		}
		if !math.IsInf(b.Death, 1) && b.Death > maxVal {
			maxVal = b.Death
		}
	}

	for i, b := range bars {
		death := b.Death
		if math.IsInf(death, 1) {
			death = maxVal * 1.1
		}
		line, err := plotter.NewLine(plotter.XYs{
			{X: b.Birth, Y: float64(i)},
			{X: death, Y: float64(i)},
		})
		if err != nil {
			return err
		}
		line.Color = colors[b.Dim%len(colors)]
		p.Add(line)
	}

	return p.Save(20*vg.Centimeter, 15*vg.Centimeter, path)
}

func humanBytes(n uintptr) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uintptr(unit), 0
	for n/div >= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
