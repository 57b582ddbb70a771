// Patentai is a terminal client for assessing the novelty of an invention
// idea against a patent search service.
//
// Usage:
//
//	patentai [command] [flags]
//
// Running without a command starts the interactive analyst.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
