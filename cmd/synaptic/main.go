// Command synaptic mines a git repository's commit history for SVCMS
// grammar memories and reconciles them into per-scope CLAUDE.md files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}
