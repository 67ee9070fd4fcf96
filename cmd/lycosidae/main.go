package main

import (
	"os"

	"lycosidae/internal/cli"
)

// main delegates to the command tree. Wiring lives in internal/cli so
// commands stay testable.
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
