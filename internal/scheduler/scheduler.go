package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/grovyn/core-platform/internal/brain"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
	"github.com/grovyn/core-platform/pkg/telemetry"
)

// Auditor periodically re-runs the whole pipeline against the same
// seed and compares the result with the serving registry. Any
// numerical drift means a determinism bug and is loud in the logs.
type Auditor struct {
	logger   *logger.Logger
	cfg      *config.Config
	tel      *telemetry.Registry
	baseline *brain.Registry
	cron     *cron.Cron
}

func NewAuditor(log *logger.Logger, cfg *config.Config, tel *telemetry.Registry, baseline *brain.Registry) *Auditor {
	return &Auditor{
		logger:   log,
		cfg:      cfg,
		tel:      tel,
		baseline: baseline,
	}
}

// RunOnce reboots the pipeline and diffs it against the baseline.
// Returned mismatches are human-readable, one line per drifted value.
func (a *Auditor) RunOnce() ([]string, error) {
	fresh, err := brain.Boot(a.cfg, logger.NewNop(), nil)
	if err != nil {
		return nil, fmt.Errorf("audit reboot: %w", err)
	}
	diffs := brain.Diff(a.baseline, fresh)

	if a.tel != nil {
		a.tel.AuditRuns.Inc()
		if len(diffs) > 0 {
			a.tel.AuditMismatches.Add(float64(len(diffs)))
		}
	}
	if len(diffs) > 0 {
		a.logger.WithFields(map[string]interface{}{
			"mismatches": len(diffs),
			"first":      diffs[0],
		}).Error("Determinism audit failed")
	} else {
		a.logger.Debug("Determinism audit passed")
	}
	return diffs, nil
}

// Start schedules the audit per config. Schedule specs include a
// seconds field.
func (a *Auditor) Start() error {
	if !a.cfg.Audit.Enabled {
		a.logger.Debug("Determinism audit disabled")
		return nil
	}
	a.cron = cron.New(cron.WithSeconds())
	_, err := a.cron.AddFunc(a.cfg.Audit.Schedule, func() {
		if _, err := a.RunOnce(); err != nil {
			a.logger.WithError(err).Error("Determinism audit errored")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule audit %q: %w", a.cfg.Audit.Schedule, err)
	}
	a.cron.Start()
	a.logger.WithField("schedule", a.cfg.Audit.Schedule).Info("Determinism audit scheduled")
	return nil
}

// Stop halts the schedule and waits for a running audit to finish.
func (a *Auditor) Stop(ctx context.Context) {
	if a.cron == nil {
		return
	}
	select {
	case <-a.cron.Stop().Done():
	case <-ctx.Done():
	}
}
