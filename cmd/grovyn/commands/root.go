package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "grovyn",
	Short: "Grovyn - deterministic multi-store retail analytics",
	Long: `Grovyn Core Platform CLI

A seeded, fully deterministic analytics pipeline for multi-store
retail: orders, commission, finance, inventory, workforce, profit
attribution, insights and the autopilot priority engine.

Usage:
  go run ./cmd/grovyn [command]

Examples:
  go run ./cmd/grovyn api
  go run ./cmd/grovyn pipeline
  go run ./cmd/grovyn brief
  go run ./cmd/grovyn audit`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
