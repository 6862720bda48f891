// Command matcli computes, prunes, and inspects the medial axis transform
// of a triangulated surface via the vineyards algorithm.
package main

import (
	"fmt"
	"log"
	"os"
)

func main() {
	log.SetPrefix("matcli: ")
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "run":
		err = runCmd(args)
	case "obj":
		err = objCmd(args)
	case "prune":
		err = pruneCmd(args)
	case "stats":
		err = statsCmd(args)
	case "print-prune":
		err = printPruneCmd(args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "matcli: unknown subcommand %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %+v", cmd, err)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: matcli <subcommand> [options]

Subcommands:
  run          compute a vineyards walk over a complex's query grid
  obj          summarize a surface or mesh OBJ file
  prune        filter a computed walk's swaps down to medial-axis structure
  stats        report memory usage and persistence statistics for a walk
  print-prune  print the default per-dimension pruning parameters

Run "matcli <subcommand> -h" for subcommand-specific options.
`)
}
