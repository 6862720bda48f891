package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/mars-project/medax/prune"
)

func printPruneCmd(args []string) error {
	fs := flag.NewFlagSet("print-prune", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(prune.DefaultParams())
}
