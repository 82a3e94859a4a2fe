package brain

import (
	"errors"
	"fmt"
	"time"

	"github.com/grovyn/core-platform/internal/autopilot"
	"github.com/grovyn/core-platform/internal/commission"
	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/internal/finance"
	"github.com/grovyn/core-platform/internal/ingestion"
	"github.com/grovyn/core-platform/internal/insights"
	"github.com/grovyn/core-platform/internal/inventory"
	"github.com/grovyn/core-platform/internal/metrics"
	"github.com/grovyn/core-platform/internal/profit"
	"github.com/grovyn/core-platform/internal/seed"
	"github.com/grovyn/core-platform/internal/workforce"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
	"github.com/grovyn/core-platform/pkg/telemetry"
)

// ErrNotBooted is returned by accessors on a registry that has not
// completed Boot. A stage read before its dependency ran is a
// programming error, never a recoverable condition.
var ErrNotBooted = errors.New("pipeline not booted")

// Registry owns one immutable result per pipeline stage. It is
// populated exactly once by Boot and read-only afterwards; the HTTP
// layer serves straight from it.
type Registry struct {
	booted   bool
	BootedAt time.Time

	Dataset      contracts.Dataset
	ItemsByBrand map[string][]contracts.Item

	Ingestion  ingestion.Result
	Commission commission.Result
	Replay     []contracts.ReplayOrder

	Finance        finance.Result
	FinanceSummary contracts.FinanceSummary

	Inventory *inventory.Service
	Workforce *workforce.Roster
	Shifts    workforce.ShiftResult

	Profit profit.Result

	ReferenceDay string
	Metrics      contracts.MetricsSnapshot

	Insights     contracts.InsightSet
	Intelligence contracts.IntelligenceResult
	Autopilot    contracts.AutopilotResult
}

// Booted reports whether Boot completed. Handlers must refuse to serve
// from a registry that is not booted.
func (r *Registry) Booted() bool {
	return r != nil && r.booted
}

// Boot runs every stage in dependency order and records per-stage
// durations. A seed failure is fatal: no partial registry is ever
// returned. tel may be nil in tests.
func Boot(cfg *config.Config, log *logger.Logger, tel *telemetry.Registry) (*Registry, error) {
	start := time.Now()
	reg := &Registry{BootedAt: start}

	stage := func(name string, fn func()) {
		began := time.Now()
		fn()
		elapsed := time.Since(began)
		if tel != nil {
			tel.StageSeconds.WithLabelValues(name).Set(elapsed.Seconds())
		}
		log.WithFields(map[string]interface{}{
			"stage":   name,
			"elapsed": elapsed.String(),
		}).Debug("Pipeline stage complete")
	}

	seedStart := time.Now()
	params, err := seed.ParamsFromConfig(cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("stage seed: %w", err)
	}
	reg.Dataset, err = seed.Generate(params)
	if err != nil {
		return nil, fmt.Errorf("stage seed: %w", err)
	}
	if tel != nil {
		tel.StageSeconds.WithLabelValues("seed").Set(time.Since(seedStart).Seconds())
	}

	reg.ItemsByBrand = make(map[string][]contracts.Item, len(reg.Dataset.Brands))
	for _, it := range reg.Dataset.Items {
		reg.ItemsByBrand[it.BrandID] = append(reg.ItemsByBrand[it.BrandID], it)
	}

	stage("ingestion", func() {
		reg.Ingestion = ingestion.NewNormalizer(log).Run(reg.Dataset.Orders)
	})

	stage("commission", func() {
		reg.Commission = commission.NewEngine(log).Run(reg.Ingestion.Orders)
		reg.Replay = ingestion.BuildReplay(reg.Commission.Orders)
	})

	stage("finance", func() {
		reg.Finance = finance.NewEngine(log).Run(reg.Commission.Orders)
		reg.FinanceSummary = reg.Finance.Summary()
	})

	stage("inventory", func() {
		reg.Inventory = inventory.NewService(log, cfg.Seed.RandomSeed)
		reg.Inventory.InitLedger(reg.Dataset.Stores)
		reg.Inventory.RunConsumption(reg.Replay, reg.ItemsByBrand)
	})

	stage("workforce", func() {
		reg.Workforce = workforce.NewRoster(log, cfg.Seed.RandomSeed)
		reg.Workforce.Init(reg.Dataset.Stores)
		reg.Shifts = reg.Workforce.BuildShifts(reg.Dataset.Stores, reg.Commission.Orders)
	})

	stage("profit", func() {
		reg.Profit = profit.NewEngine(log).Run(profit.Inputs{
			Financials:    reg.Finance.Financials,
			Summary:       reg.FinanceSummary,
			Replay:        reg.Replay,
			ItemsByBrand:  reg.ItemsByBrand,
			BOM:           reg.Inventory.BOM,
			TotalConsumed: reg.Inventory.TotalConsumed(),
			ShiftMetrics:  reg.Shifts.Metrics,
		})
	})

	stage("metrics", func() {
		eng := metrics.NewEngine(log, reg.Commission, reg.Finance.Financials)
		reg.ReferenceDay = eng.ReferenceToday()
		reg.Metrics = eng.Snapshot(reg.Dataset.Stores)
	})

	stage("insights", func() {
		gen := insights.NewGenerator(log, cfg.Rules, cfg.Seed.RandomSeed)
		reg.Insights = gen.Run(insights.Inputs{
			Stores:       reg.Dataset.Stores,
			Items:        reg.Dataset.Items,
			Orders:       reg.Ingestion.Orders,
			Commission:   reg.Commission,
			Financials:   reg.Finance.Financials,
			Inventory:    reg.Inventory,
			ShiftMetrics: reg.Shifts.Metrics,
			Finance: insights.FinanceInputs{
				Profit:     reg.Profit,
				Financials: reg.Finance.Financials,
				Orders:     reg.Commission.Orders,
			},
			ReferenceDay: reg.ReferenceDay,
		})
	})

	stage("growth", func() {
		growth := insights.NewGrowthEngine(log, cfg.Rules)
		reg.Intelligence = growth.Run(insights.GrowthInputs{
			Metrics:     reg.Metrics,
			Orders:      reg.Commission.Orders,
			Items:       reg.Dataset.Items,
			ItemMargins: reg.Profit.Items,
		})
	})

	stage("autopilot", func() {
		reg.Autopilot = autopilot.NewEngine(log, cfg.Rules.Autopilot).Run(autopilot.Inputs{
			Set:          reg.Insights,
			Profit:       reg.Profit.Summary,
			Stores:       reg.Dataset.Stores,
			ReferenceDay: reg.ReferenceDay,
		})
	})

	if tel != nil {
		tel.BootSeconds.Set(time.Since(start).Seconds())
		tel.OrdersIngested.Set(float64(reg.Ingestion.Counts.Total))
		for domain, n := range reg.Autopilot.ConsumedByDomain {
			tel.InsightsTotal.WithLabelValues(string(domain)).Set(float64(n))
		}
		tel.AlertsActive.Set(float64(len(reg.Autopilot.Alerts)))
	}

	reg.booted = true
	log.WithFields(map[string]interface{}{
		"orders":       reg.Ingestion.Counts.Total,
		"insights":     len(reg.Autopilot.Ranked),
		"alerts":       len(reg.Autopilot.Alerts),
		"referenceDay": reg.ReferenceDay,
		"elapsed":      time.Since(start).String(),
	}).Info("Pipeline boot complete")
	return reg, nil
}
