package autopilot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
)

const globalBucket = "global"

// Inputs is the derived state the priority engine consumes. It never
// recomputes pipeline numbers, it only re-ranks what the generators
// already found.
type Inputs struct {
	Set          contracts.InsightSet
	Profit       contracts.ProfitSummary
	Stores       []contracts.Store
	ReferenceDay string
}

// Engine turns the full insight set into one ranked list, the
// executive alerts and the morning brief.
type Engine struct {
	logger  *logger.Logger
	weights config.AutopilotWeights
}

func NewEngine(log *logger.Logger, weights config.AutopilotWeights) *Engine {
	return &Engine{logger: log, weights: weights}
}

func (e *Engine) severityScore(s contracts.Severity) float64 {
	switch s {
	case contracts.SeverityCritical:
		return e.weights.CriticalScore
	case contracts.SeverityWarning:
		return e.weights.WarningScore
	default:
		return e.weights.InfoScore
	}
}

// healthInsights folds non-healthy store health results into the
// common insight shape so they rank alongside everything else.
func healthInsights(health []contracts.StoreHealthResult) []contracts.Insight {
	out := make([]contracts.Insight, 0)
	for _, h := range health {
		if h.Status == contracts.HealthHealthy {
			continue
		}
		severity := contracts.SeverityWarning
		if h.Status == contracts.HealthCritical {
			severity = contracts.SeverityCritical
		}
		out = append(out, contracts.Insight{
			Type:        "STORE_HEALTH",
			Severity:    severity,
			Domain:      contracts.DomainStoreHealth,
			Message:     fmt.Sprintf("%s is %s.", h.StoreName, strings.ReplaceAll(string(h.Status), "_", " ")),
			EvaluatedAt: h.LastEvaluatedAt,
			StoreID:     h.StoreID,
		})
	}
	return out
}

// fillEntityID gives every insight a primary entity reference so the
// alert rules never emit an empty id.
func fillEntityID(i contracts.Insight) contracts.Insight {
	if i.EntityID != "" {
		return i
	}
	switch {
	case i.PartnerID != "":
		i.EntityType, i.EntityID = "PARTNER", i.PartnerID
	case i.IngredientID != "":
		i.EntityType, i.EntityID = "INGREDIENT", i.IngredientID
	case i.BrandID != "":
		i.EntityType, i.EntityID = "BRAND", i.BrandID
	case i.ItemID != "":
		i.EntityType, i.EntityID = "ITEM", i.ItemID
	case i.CustomerID != "":
		i.EntityType, i.EntityID = "CUSTOMER", i.CustomerID
	case i.StoreID != "":
		i.EntityType, i.EntityID = "STORE", i.StoreID
	}
	return i
}

// Run scores, boosts and ranks every insight, then derives alerts and
// the executive brief from the ranked list.
func (e *Engine) Run(in Inputs) contracts.AutopilotResult {
	collected := make([]contracts.Insight, 0, len(in.Set.Insights)+len(in.Set.StoreHealth))
	collected = append(collected, healthInsights(in.Set.StoreHealth)...)
	collected = append(collected, in.Set.Insights...)

	consumed := make(map[contracts.Domain]int, 5)
	ranked := make([]contracts.RankedInsight, 0, len(collected))
	for _, raw := range collected {
		ins := fillEntityID(raw)
		consumed[ins.Domain]++
		score := e.severityScore(ins.Severity)
		if ins.Domain == contracts.DomainFinance {
			score += e.weights.FinanceBoost
		}
		ranked = append(ranked, contracts.RankedInsight{Insight: ins, PriorityScore: score})
	}

	// Same-store boost: a store carrying two or more findings outranks
	// isolated ones. Store-less insights share the global bucket.
	perStore := make(map[string]int, len(in.Stores)+1)
	for _, r := range ranked {
		perStore[storeBucket(r.Insight)]++
	}
	for i := range ranked {
		if perStore[storeBucket(ranked[i].Insight)] >= 2 {
			ranked[i].PriorityScore += e.weights.SameStoreBoost
		}
	}

	// Stable sort: equal scores keep generator order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriorityScore > ranked[j].PriorityScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	top := ranked
	if len(top) > e.weights.TopN {
		top = top[:e.weights.TopN]
	}

	result := contracts.AutopilotResult{
		Ranked:           ranked,
		TopPriorities:    top,
		ConsumedByDomain: consumed,
		Alerts:           e.buildAlerts(ranked, in.ReferenceDay),
		Brief:            e.buildBrief(ranked, in),
	}
	e.logger.WithFields(map[string]interface{}{
		"insights": len(ranked),
		"alerts":   len(result.Alerts),
	}).Info("Autopilot prioritization complete")
	return result
}

func storeBucket(i contracts.Insight) string {
	if i.StoreID == "" {
		return globalBucket
	}
	return i.StoreID
}

