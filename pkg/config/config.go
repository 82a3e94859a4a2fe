package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// SSOT: all environment variables are read here and nowhere else
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Seed universe
	Seed SeedConfig

	// Rule thresholds (compiled defaults, optionally overridden from YAML)
	Rules Thresholds

	// Determinism audit job
	Audit AuditConfig

	// Auth
	AuthPassword string

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// SeedConfig controls the deterministic synthetic dataset.
// Same seed and anchor date produce the exact same entity set on every boot.
type SeedConfig struct {
	RandomSeed     uint32
	Cities         int
	StoresPerCity  int
	BrandsPerStore int
	ItemsPerBrand  int
	Customers      int
	Orders         int

	// AnchorDate is the "today" the generator spreads order dates behind
	// (YYYY-MM-DD). Fixed, never wall-clock, so restarts are reproducible.
	AnchorDate string
}

// AuditConfig controls the periodic determinism self-check.
type AuditConfig struct {
	Enabled  bool
	Schedule string // cron spec with seconds, e.g. "0 0 * * * *"
}

// Load reads configuration from environment variables
// SSOT: only this function calls os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Seed: SeedConfig{
			RandomSeed:     uint32(getEnvAsInt("SEED_RANDOM_SEED", 42)),
			Cities:         getEnvAsInt("SEED_CITIES", 2),
			StoresPerCity:  getEnvAsInt("SEED_STORES_PER_CITY", 3),
			BrandsPerStore: getEnvAsInt("SEED_BRANDS_PER_STORE", 2),
			ItemsPerBrand:  getEnvAsInt("SEED_ITEMS_PER_BRAND", 30),
			Customers:      getEnvAsInt("SEED_CUSTOMERS", 4000),
			Orders:         getEnvAsInt("SEED_ORDERS", 5000),
			AnchorDate:     getEnv("SEED_ANCHOR_DATE", "2025-06-30"),
		},

		Audit: AuditConfig{
			Enabled:  getEnvAsBool("AUDIT_ENABLED", false),
			Schedule: getEnv("AUDIT_SCHEDULE", "0 0 * * * *"),
		},

		AuthPassword: getEnv("AUTH_PASSWORD", "grovyn@123"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	// Rule thresholds: defaults, then optional YAML override
	cfg.Rules = DefaultThresholds()
	if rulesFile := getEnv("RULES_FILE", ""); rulesFile != "" {
		if err := cfg.Rules.LoadFile(rulesFile); err != nil {
			return nil, fmt.Errorf("load rules file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	s := c.Seed
	if s.Cities <= 0 || s.StoresPerCity <= 0 || s.BrandsPerStore <= 0 ||
		s.ItemsPerBrand <= 0 || s.Customers <= 0 || s.Orders <= 0 {
		return fmt.Errorf("seed entity counts must all be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
