package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovyn/core-platform/internal/brain"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
)

// briefCmd represents the brief command
var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Boot the pipeline and print the executive brief",
	Long: `Boots the pipeline and prints the morning executive brief: the
business snapshot, the attention list and the suggested actions.

Example:
  go run ./cmd/grovyn brief`,
	RunE: runBrief,
}

func init() {
	rootCmd.AddCommand(briefCmd)
}

func runBrief(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	reg, err := brain.Boot(cfg, log, nil)
	if err != nil {
		return fmt.Errorf("boot pipeline: %w", err)
	}

	b := reg.Autopilot.Brief

	fmt.Println("=== Executive Brief ===")
	fmt.Printf("Generated at: %s\n\n", b.GeneratedAt.Format("2006-01-02 15:04 MST"))

	fmt.Println("Business snapshot:")
	fmt.Printf("  Gross revenue:  %.2f\n", b.Snapshot.TotalGrossRevenue)
	fmt.Printf("  Net revenue:    %.2f\n", b.Snapshot.TotalNetRevenue)
	fmt.Printf("  Profit:         %.2f\n", b.Snapshot.TotalProfit)
	fmt.Printf("  Margin:         %.2f%%\n", b.Snapshot.OverallMarginPct)
	fmt.Printf("  Stores at risk: %d\n", b.Snapshot.StoresAtRiskCount)

	fmt.Println("\nWhat needs attention today:")
	if len(b.WhatNeedsAttention) == 0 {
		fmt.Println("  Nothing urgent.")
	}
	for _, line := range b.WhatNeedsAttention {
		fmt.Printf("  - %s\n", line)
	}

	fmt.Println("\nSuggested actions:")
	for _, action := range b.SuggestedActions {
		fmt.Printf("  - %s\n", action)
	}

	if len(reg.Autopilot.Alerts) > 0 {
		fmt.Printf("\nActive alerts: %d\n", len(reg.Autopilot.Alerts))
		for _, a := range reg.Autopilot.Alerts {
			fmt.Printf("  [%s] %s\n", a.Severity, a.Message)
		}
	}

	return nil
}
