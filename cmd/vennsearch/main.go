// Command vennsearch enumerates simple monotone Venn diagrams.
//
// The search subcommand runs the full enumeration for a curve count; the
// sweep subcommand splits the run across degree signatures and searches
// them in parallel; the signatures subcommand just lists the canonical
// signatures.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
