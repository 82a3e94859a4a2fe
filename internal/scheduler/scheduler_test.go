package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovyn/core-platform/internal/brain"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
)

func auditConfig() *config.Config {
	return &config.Config{
		Seed: config.SeedConfig{
			RandomSeed:     42,
			Cities:         1,
			StoresPerCity:  2,
			BrandsPerStore: 2,
			ItemsPerBrand:  4,
			Customers:      100,
			Orders:         300,
			AnchorDate:     "2025-06-30",
		},
		Rules: config.DefaultThresholds(),
		Audit: config.AuditConfig{Enabled: true, Schedule: "0 0 * * * *"},
	}
}

func TestRunOncePassesAgainstSameSeed(t *testing.T) {
	cfg := auditConfig()
	baseline, err := brain.Boot(cfg, logger.NewNop(), nil)
	require.NoError(t, err)

	auditor := NewAuditor(logger.NewNop(), cfg, nil, baseline)
	diffs, err := auditor.RunOnce()
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestRunOnceDetectsSeedDrift(t *testing.T) {
	cfg := auditConfig()
	baseline, err := brain.Boot(cfg, logger.NewNop(), nil)
	require.NoError(t, err)

	drifted := *cfg
	drifted.Seed.RandomSeed = 9
	auditor := NewAuditor(logger.NewNop(), &drifted, nil, baseline)
	diffs, err := auditor.RunOnce()
	require.NoError(t, err)
	assert.NotEmpty(t, diffs)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	cfg := auditConfig()
	cfg.Audit.Schedule = "not a cron spec"
	baseline, err := brain.Boot(cfg, logger.NewNop(), nil)
	require.NoError(t, err)

	auditor := NewAuditor(logger.NewNop(), cfg, nil, baseline)
	assert.Error(t, auditor.Start())
}

func TestStartIsNoOpWhenDisabled(t *testing.T) {
	cfg := auditConfig()
	cfg.Audit.Enabled = false
	auditor := NewAuditor(logger.NewNop(), cfg, nil, nil)
	assert.NoError(t, auditor.Start())
}
