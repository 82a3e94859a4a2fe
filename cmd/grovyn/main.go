package main

import (
	"os"

	"github.com/grovyn/core-platform/cmd/grovyn/commands"
)

// main is the entry point for the Grovyn CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
