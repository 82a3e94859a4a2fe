package insights

import (
	"github.com/grovyn/core-platform/internal/commission"
	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/internal/inventory"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
)

// Inputs is everything the generators read. All of it is stage output;
// the generators never recompute pipeline numbers.
type Inputs struct {
	Stores       []contracts.Store
	Items        []contracts.Item
	Orders       []contracts.NormalizedOrder
	Commission   commission.Result
	Financials   []contracts.OrderFinancial
	Inventory    *inventory.Service
	ShiftMetrics []contracts.ShiftMetrics
	Finance      FinanceInputs
	ReferenceDay string
}

// Generator runs all five rule domains and collects one insight set.
// Rule-based only; no model calls anywhere.
type Generator struct {
	logger *logger.Logger
	rules  config.Thresholds
	health *HealthEvaluator
}

func NewGenerator(log *logger.Logger, rules config.Thresholds, globalSeed uint32) *Generator {
	return &Generator{
		logger: log,
		rules:  rules,
		health: NewHealthEvaluator(log, rules.StoreHealth, globalSeed),
	}
}

func tagDomain(list []contracts.Insight, d contracts.Domain) []contracts.Insight {
	for i := range list {
		list[i].Domain = d
	}
	return list
}

// Run evaluates every domain in a fixed order so the combined slice is
// identical on every boot.
func (g *Generator) Run(in Inputs) contracts.InsightSet {
	set := contracts.InsightSet{
		StoreHealth: g.health.Evaluate(in.Stores, in.Orders),
	}
	set.Insights = append(set.Insights, tagDomain(PartnerInsights(g.rules.Partner, in.Commission, in.ReferenceDay), contracts.DomainPartner)...)
	set.Insights = append(set.Insights, tagDomain(InventoryInsights(g.rules.Inventory, in.Inventory, in.Items, in.ReferenceDay), contracts.DomainInventory)...)
	set.Insights = append(set.Insights, tagDomain(WorkforceInsights(g.rules.Workforce, in.ShiftMetrics, in.ReferenceDay), contracts.DomainWorkforce)...)
	set.Insights = append(set.Insights, tagDomain(FinanceInsights(g.rules.Finance, in.Finance, in.ReferenceDay), contracts.DomainFinance)...)

	bySeverity := map[contracts.Severity]int{}
	for _, i := range set.Insights {
		bySeverity[i.Severity]++
	}
	g.logger.WithFields(map[string]interface{}{
		"total":    len(set.Insights),
		"critical": bySeverity[contracts.SeverityCritical],
		"warning":  bySeverity[contracts.SeverityWarning],
		"info":     bySeverity[contracts.SeverityInfo],
	}).Info("Insight generators complete")

	return set
}
