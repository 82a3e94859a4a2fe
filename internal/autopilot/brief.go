package autopilot

import (
	"fmt"

	"github.com/grovyn/core-platform/internal/contracts"
)

// suggestedAction maps an insight type to the canned recommendation
// shown in the brief. Unknown types get the generic fallback.
func suggestedAction(insightType string) string {
	switch insightType {
	case "LOW_STOCK", "STORE_HEALTH":
		return "Reorder ingredient / review store ops"
	case "STAFF_SHORTAGE", "PRODUCTIVITY_RISK":
		return "Add evening staff or rebalance shifts"
	case "MARGIN_LEAKAGE", "NEGATIVE_PROFIT":
		return "Review pricing and discounts"
	case "DISCOUNT_MISUSE":
		return "Pause discount for one-time customers"
	case "LOW_ITEM_MARGIN":
		return "Review item pricing"
	case "OVERSTAFFING":
		return "Optimize shift allocation"
	case "COMMISSION_IMPACT_INCREASED", "PARTNER_UNDERPERFORMING":
		return "Review partner terms"
	case "OVERSTOCK", "WASTE_RISK":
		return "Reduce order or adjust menu"
	case "CHURN_RISK":
		return "Win back inactive high-value customers"
	default:
		return "Review and act"
	}
}

func truncateRunes(s string, limit int) (string, bool) {
	runes := []rune(s)
	if len(runes) <= limit {
		return s, false
	}
	return string(runes[:limit]), true
}

// attentionBullet renders one ranked insight as a single brief line,
// prefixed with the store name when it is known.
func attentionBullet(r contracts.RankedInsight, storeNames map[string]string) string {
	if name := storeNames[r.StoreID]; name != "" {
		msg, cut := truncateRunes(r.Message, 80)
		if cut {
			msg += "…"
		}
		return fmt.Sprintf("%s: %s", name, msg)
	}
	if r.StoreID != "" {
		msg, _ := truncateRunes(r.Message, 70)
		return fmt.Sprintf("Store %s: %s…", r.StoreID, msg)
	}
	return r.Message
}

// buildBrief composes the morning report from profit totals, store
// health counts and the already ranked priorities.
func (e *Engine) buildBrief(ranked []contracts.RankedInsight, in Inputs) contracts.ExecutiveBrief {
	storesAtRisk := 0
	for _, h := range in.Set.StoreHealth {
		if h.Status != contracts.HealthHealthy {
			storesAtRisk++
		}
	}

	storeNames := make(map[string]string, len(in.Stores))
	for _, s := range in.Stores {
		storeNames[s.ID] = s.Name
	}

	top := ranked
	if len(top) > 5 {
		top = top[:5]
	}
	attention := make([]string, 0, len(top))
	actions := make([]string, 0, len(top))
	seen := make(map[string]bool, len(top))
	for _, r := range top {
		attention = append(attention, attentionBullet(r, storeNames))
		action := suggestedAction(r.Type)
		if !seen[action] {
			seen[action] = true
			actions = append(actions, action)
		}
	}

	return contracts.ExecutiveBrief{
		GeneratedAt: contracts.BriefTime(in.ReferenceDay),
		Snapshot: contracts.BusinessSnapshot{
			TotalGrossRevenue: in.Profit.TotalGrossRevenue,
			TotalNetRevenue:   in.Profit.TotalNetRevenue,
			TotalProfit:       in.Profit.TotalProfit,
			OverallMarginPct:  in.Profit.OverallMarginPercent,
			StoresAtRiskCount: storesAtRisk,
		},
		WhatNeedsAttention: attention,
		SuggestedActions:   actions,
	}
}
