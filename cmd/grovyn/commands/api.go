package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovyn/core-platform/internal/api"
	"github.com/grovyn/core-platform/internal/api/handlers"
	"github.com/grovyn/core-platform/internal/brain"
	"github.com/grovyn/core-platform/internal/scheduler"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
	"github.com/grovyn/core-platform/pkg/telemetry"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Boot the pipeline and start the API server",
	Long: `Boots the full deterministic pipeline into memory, then serves
the REST API on top of the booted registry.

This command:
- Generates the seeded dataset and runs every pipeline stage
- Starts the determinism audit job when AUDIT_ENABLED is set
- Serves the versioned API with session auth

Example:
  go run ./cmd/grovyn api
  go run ./cmd/grovyn api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger and telemetry
	log := logger.New(cfg)
	tel := telemetry.NewRegistry()

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
		"seed": cfg.Seed.RandomSeed,
	}).Info("Initializing API server")

	// 3. Boot the pipeline
	reg, err := brain.Boot(cfg, log, tel)
	if err != nil {
		return fmt.Errorf("boot pipeline: %w", err)
	}

	// 4. Determinism audit job
	auditor := scheduler.NewAuditor(log, cfg, tel, reg)
	if err := auditor.Start(); err != nil {
		return fmt.Errorf("start audit job: %w", err)
	}

	// 5. Wire the HTTP layer
	h := handlers.NewHandler(reg, log)
	auth := api.NewAuth(reg, cfg.AuthPassword, log)
	router := api.NewRouter(h, auth, cfg, log, tel)
	server := api.New(cfg, log, router)

	// 6. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auditor.Stop(ctx)

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
