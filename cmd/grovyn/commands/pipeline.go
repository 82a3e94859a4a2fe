package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovyn/core-platform/internal/brain"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
)

// pipelineCmd represents the pipeline command
var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full pipeline once and print a summary",
	Long: `Boots the deterministic pipeline end to end without starting the
API server, then prints the headline numbers. Useful for checking a
seed configuration from the shell.

Example:
  go run ./cmd/grovyn pipeline
  SEED_RANDOM_SEED=7 go run ./cmd/grovyn pipeline`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	reg, err := brain.Boot(cfg, log, nil)
	if err != nil {
		return fmt.Errorf("boot pipeline: %w", err)
	}

	fmt.Println("=== Grovyn Pipeline Summary ===")
	fmt.Printf("Reference day:     %s\n", reg.ReferenceDay)
	fmt.Printf("Seed:              %d\n", cfg.Seed.RandomSeed)
	fmt.Printf("Stores:            %d\n", len(reg.Dataset.Stores))
	fmt.Printf("Customers:         %d\n", len(reg.Dataset.Customers))
	fmt.Printf("Orders:            %d\n", len(reg.Ingestion.Orders))
	fmt.Printf("Gross revenue:     %.2f\n", reg.FinanceSummary.TotalGrossRevenue)
	fmt.Printf("Net revenue:       %.2f\n", reg.FinanceSummary.TotalNetRevenue)
	fmt.Printf("Commission cost:   %.2f\n", reg.FinanceSummary.TotalCommissionCost)
	fmt.Printf("Total profit:      %.2f\n", reg.Profit.Summary.TotalProfit)
	fmt.Printf("Overall margin:    %.2f%%\n", reg.Profit.Summary.OverallMarginPercent)
	fmt.Printf("Insights:          %d operational, %d growth\n",
		len(reg.Insights.Insights), len(reg.Intelligence.Insights))
	fmt.Printf("Ranked priorities: %d (top %d)\n",
		len(reg.Autopilot.Ranked), len(reg.Autopilot.TopPriorities))
	fmt.Printf("Alerts:            %d\n", len(reg.Autopilot.Alerts))

	return nil
}
