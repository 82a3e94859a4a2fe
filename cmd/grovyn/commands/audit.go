package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovyn/core-platform/internal/brain"
	"github.com/grovyn/core-platform/internal/scheduler"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run the determinism audit once",
	Long: `Boots the pipeline twice with the same configuration and compares
the results field by field. Any mismatch means the pipeline is not
deterministic for this seed.

Example:
  go run ./cmd/grovyn audit`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	baseline, err := brain.Boot(cfg, log, nil)
	if err != nil {
		return fmt.Errorf("boot pipeline: %w", err)
	}

	auditor := scheduler.NewAuditor(log, cfg, nil, baseline)
	diffs, err := auditor.RunOnce()
	if err != nil {
		return fmt.Errorf("audit run: %w", err)
	}

	if len(diffs) == 0 {
		fmt.Println("Audit passed: replay matches the baseline")
		return nil
	}

	fmt.Printf("Audit FAILED: %d mismatches\n", len(diffs))
	for _, d := range diffs {
		fmt.Printf("  - %s\n", d)
	}
	return fmt.Errorf("determinism audit failed")
}
