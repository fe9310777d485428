// Command dommerge merges turn-based strategy game mod files into one
// conflict-free mod, detecting entity-ID collisions in the modding
// range and relocating the losing side's IDs and cross-references.
package main

import (
	"fmt"
	"os"
)

func main() {
	cli := newDommergeCLI()
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
