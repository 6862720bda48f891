package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mars-project/medax/homology"
	"github.com/mars-project/medax/matstate"
	"github.com/mars-project/medax/prune"
	"github.com/mars-project/medax/simplicial"
	"github.com/mars-project/medax/vineyard"
)

func pruneCmd(args []string) error {
	fs := flag.NewFlagSet("prune", flag.ExitOnError)
	in := fs.String("in", "", "input state file from the run subcommand (required)")
	out := fs.String("out", "", "output pruned state file (required)")
	paramsPath := fs.String("params", "", "pruning parameters JSON file (default: the built-in defaults)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		fs.Usage()
		return fmt.Errorf("-in and -out are required")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	state, err := matstate.DecodeState(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", *in, err)
	}

	params := prune.DefaultParams()
	if *paramsPath != "" {
		raw, err := os.ReadFile(*paramsPath)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &params); err != nil {
			return fmt.Errorf("parsing %s: %w", *paramsPath, err)
		}
	}

	before, after := 0, 0
	for i, t := range state.Vineyards.Transitions {
		from := state.Vineyards.Reductions[t.From]
		to := state.Vineyards.Reductions[t.To]
		before += len(t.Swaps.V)
		pruned := applyPerDim(t.Swaps, state.Core.Complex, params, from, to)
		after += len(pruned.V)
		state.Vineyards.Transitions[i].Swaps = pruned
	}
	logOut.Info().Int("before", before).Int("after", after).Msg("pruned swaps")

	outData, err := matstate.EncodeState(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.WriteFile(*out, outData, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	return nil
}

// applyPerDim runs each dimension's Param against only that dimension's
// swaps within the transposition, since prune.Apply's passes are keyed by a
// single Param but a vineyards Step's Swaps span all three dimensions.
func applyPerDim(swaps *vineyard.Swaps, c *simplicial.Complex, params [3]prune.Param, from, to *homology.Reduction) *vineyard.Swaps {
	var out []vineyard.Swap
	for dim := 0; dim < 3; dim++ {
		var dimSwaps []vineyard.Swap
		for _, s := range swaps.V {
			if s.Dim == dim {
				dimSwaps = append(dimSwaps, s)
			}
		}
		pruned := prune.Apply(&vineyard.Swaps{V: dimSwaps}, c, params[dim], from, to)
		out = append(out, pruned.V...)
	}
	return &vineyard.Swaps{V: out}
}
