package insights

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
)

// Growth rule kinds, in firing order.
const (
	KindRepeatRateDrop      = "REPEAT_RATE_DROP"
	KindMarginDeclineWoW    = "MARGIN_DECLINE_WOW"
	KindCommissionRising    = "COMMISSION_RISING"
	KindChurnRisk           = "CUSTOMER_CHURN_RISK"
	KindReorderPrediction   = "REORDER_PREDICTION"
	KindLowMarginItems      = "LOW_MARGIN_ITEMS"
	KindStorePerformanceGap = "STORE_PERFORMANCE_GAP"
	KindDormantSegment      = "DORMANT_SEGMENT"
	KindChampionHealth      = "CHAMPION_HEALTH"
)

// GrowthInputs collects the derived state the nine growth rules read.
type GrowthInputs struct {
	Metrics     contracts.MetricsSnapshot
	Orders      []contracts.OrderWithCommission
	Items       []contracts.Item
	ItemMargins []contracts.ItemMargin
}

// GrowthEngine evaluates the fixed growth rule set against a metrics
// snapshot. Rules are threshold checks, confidence is a deterministic
// score, not a model output.
type GrowthEngine struct {
	logger *logger.Logger
	rules  config.Thresholds
}

func NewGrowthEngine(log *logger.Logger, rules config.Thresholds) *GrowthEngine {
	return &GrowthEngine{logger: log, rules: rules}
}

// growthConfidence caps deviation strength at 15 points and confirming
// signals at 10 (3 per signal), on a base of 70, ceiling 95.
func growthConfidence(deviation float64, confirming int) float64 {
	d := math.Min(deviation, 15)
	c := math.Min(float64(confirming)*3, 10)
	return math.Min(95, math.Round(70+d+c))
}

func metCount(conds []contracts.Condition) int {
	n := 0
	for _, c := range conds {
		if c.Met {
			n++
		}
	}
	return n
}

type customerStat struct {
	id        string
	orders    int
	ltv       float64
	lastOrder time.Time
}

// customerStats aggregates order count, lifetime value and most recent
// order per customer, sorted by customer id for stable iteration.
func customerStats(orders []contracts.OrderWithCommission) []customerStat {
	byID := make(map[string]*customerStat)
	ids := make([]string, 0)
	for _, o := range orders {
		st, ok := byID[o.CustomerID]
		if !ok {
			st = &customerStat{id: o.CustomerID}
			byID[o.CustomerID] = st
			ids = append(ids, o.CustomerID)
		}
		st.orders++
		st.ltv += o.TotalAmount
		if o.CreatedAt.After(st.lastOrder) {
			st.lastOrder = o.CreatedAt
		}
	}
	sort.Strings(ids)
	out := make([]customerStat, 0, len(ids))
	for _, id := range ids {
		out = append(out, *byID[id])
	}
	return out
}

// Run evaluates all nine rules in fixed order and derives the top
// action recommendations from whichever rules fired.
func (g *GrowthEngine) Run(in GrowthInputs) contracts.IntelligenceResult {
	insights := g.evaluate(in)
	result := contracts.IntelligenceResult{
		Insights: insights,
		Actions:  topActions(insights),
	}
	g.logger.WithFields(map[string]interface{}{
		"insights": len(result.Insights),
		"actions":  len(result.Actions),
	}).Info("Growth intelligence evaluated")
	return result
}

func (g *GrowthEngine) evaluate(in GrowthInputs) []contracts.GrowthInsight {
	m := in.Metrics
	stats := customerStats(in.Orders)
	insights := make([]contracts.GrowthInsight, 0, 9)
	idSeq := 0
	nextID := func() string {
		idSeq++
		return fmt.Sprintf("insight_%d", idSeq)
	}

	// 1. Repeat rate drop: 7-day repeat below 14-day by more than the
	// configured gap.
	repeatGap := m.Last14.RepeatRate - m.Last7.RepeatRate
	repeatDrop := m.Last7.RepeatRate < m.Last14.RepeatRate && repeatGap > g.rules.Growth.RepeatDropPoints
	cond1 := []contracts.Condition{
		{Condition: "repeat_7d < repeat_14d", Met: repeatDrop, Detail: fmt.Sprintf("%v%% < %v%%", m.Last7.RepeatRate, m.Last14.RepeatRate)},
		{Condition: "3-day continuous decline", Met: m.Trend3Day.RepeatRate == contracts.TrendDecline, Detail: string(m.Trend3Day.RepeatRate)},
		{Condition: "WoW repeat negative", Met: m.WoW.RepeatDeltaPct < 0, Detail: fmt.Sprintf("%v%%", m.WoW.RepeatDeltaPct)},
	}
	if repeatDrop {
		dev := math.Min(repeatGap/g.rules.Growth.RepeatDropPoints, 1) * 15
		insights = append(insights, contracts.GrowthInsight{
			ID:       nextID(),
			Kind:     KindRepeatRateDrop,
			Priority: contracts.GrowthPriorityHigh,
			Title:    "Repeat Rate Drop",
			Text: fmt.Sprintf(
				"7-day repeat rate (%v%%) is below 14-day (%v%%). WoW delta: %v%%. Consider retention campaigns.",
				m.Last7.RepeatRate, m.Last14.RepeatRate, m.WoW.RepeatDeltaPct),
			Confidence:  growthConfidence(dev, metCount(cond1)),
			TriggerRule: fmt.Sprintf("Fire if 7d repeat < 14d repeat by >%v%%.", g.rules.Growth.RepeatDropPoints),
			Conditions:  cond1,
		})
	}

	// 2. Margin decline week over week.
	marginDecline := m.WoW.MarginDeltaPct < g.rules.Growth.MarginDeclineWoW
	cond2 := []contracts.Condition{
		{Condition: fmt.Sprintf("WoW margin change < %v%%", g.rules.Growth.MarginDeclineWoW), Met: marginDecline, Detail: fmt.Sprintf("%v%%", m.WoW.MarginDeltaPct)},
		{Condition: "3-day margin decline", Met: m.Trend3Day.MarginPct == contracts.TrendDecline, Detail: string(m.Trend3Day.MarginPct)},
		{Condition: "Commission rising", Met: m.WoW.CommissionDeltaPct > 0, Detail: fmt.Sprintf("%v%%", m.WoW.CommissionDeltaPct)},
	}
	if marginDecline {
		dev := math.Min(math.Abs(m.WoW.MarginDeltaPct)/math.Abs(g.rules.Growth.MarginDeclineWoW), 1) * 15
		insights = append(insights, contracts.GrowthInsight{
			ID:       nextID(),
			Kind:     KindMarginDeclineWoW,
			Priority: contracts.GrowthPriorityMedium,
			Title:    "Margin Decline WoW",
			Text: fmt.Sprintf(
				"Week-over-week margin change is %v%%. Net margin 7d: %v%%, 14d: %v%%.",
				m.WoW.MarginDeltaPct, m.Last7.NetMarginPct, m.Last14.NetMarginPct),
			Confidence:  growthConfidence(dev, metCount(cond2)),
			TriggerRule: fmt.Sprintf("Fire if WoW margin change < %v%%.", g.rules.Growth.MarginDeclineWoW),
			Conditions:  cond2,
		})
	}

	// 3. Commission share rising week over week.
	commissionRising := m.WoW.CommissionDeltaPct > g.rules.Growth.CommissionRisingWoW
	cond3 := []contracts.Condition{
		{Condition: fmt.Sprintf("WoW commission change > +%v%%", g.rules.Growth.CommissionRisingWoW), Met: commissionRising, Detail: fmt.Sprintf("%v%%", m.WoW.CommissionDeltaPct)},
		{Condition: "3-day commission trend", Met: m.Trend3Day.CommissionPct == contracts.TrendIncrease, Detail: string(m.Trend3Day.CommissionPct)},
		{Condition: "Margin declining", Met: m.WoW.MarginDeltaPct < 0, Detail: fmt.Sprintf("%v%%", m.WoW.MarginDeltaPct)},
	}
	if commissionRising {
		dev := math.Min(m.WoW.CommissionDeltaPct/g.rules.Growth.CommissionRisingWoW, 1) * 15
		insights = append(insights, contracts.GrowthInsight{
			ID:       nextID(),
			Kind:     KindCommissionRising,
			Priority: contracts.GrowthPriorityMedium,
			Title:    "Commission Rising",
			Text: fmt.Sprintf(
				"Commission WoW change +%v%%. Consider shifting traffic to direct channel.",
				m.WoW.CommissionDeltaPct),
			Confidence:  growthConfidence(dev, metCount(cond3)),
			TriggerRule: fmt.Sprintf("Fire if WoW commission change > +%v%%.", g.rules.Growth.CommissionRisingWoW),
			Conditions:  cond3,
		})
	}

	// 4. Churn risk: inactive beyond the churn window with meaningful
	// lifetime value. The cutoff anchors to the reference day at noon.
	cutoff := contracts.EvaluationTime(m.ReferenceDate).Add(-time.Duration(g.rules.Finance.ChurnInactiveDays) * 24 * time.Hour)
	var inactive, atRisk int
	var ltvAtRisk, daysInactiveSum float64
	for _, st := range stats {
		if !st.lastOrder.Before(cutoff) {
			continue
		}
		inactive++
		daysInactiveSum += math.Floor(contracts.EvaluationTime(m.ReferenceDate).Sub(st.lastOrder).Hours() / 24)
		if st.ltv >= g.rules.Finance.ChurnLTV {
			atRisk++
			ltvAtRisk += st.ltv
		}
	}
	avgDaysInactive := 0.0
	if inactive > 0 {
		avgDaysInactive = daysInactiveSum / float64(inactive)
	}
	cond4 := []contracts.Condition{
		{Condition: fmt.Sprintf("Customers with last_order > %d days", g.rules.Finance.ChurnInactiveDays), Met: inactive > 0, Detail: fmt.Sprintf("%d customers", inactive)},
		{Condition: fmt.Sprintf("LTV >= %v", g.rules.Finance.ChurnLTV), Met: atRisk > 0, Detail: fmt.Sprintf("%d at risk", atRisk)},
	}
	if atRisk > 0 {
		insights = append(insights, contracts.GrowthInsight{
			ID:       nextID(),
			Kind:     KindChurnRisk,
			Priority: contracts.GrowthPriorityHigh,
			Title:    "Churn Risk",
			Text: fmt.Sprintf(
				"%d high-value customers inactive %d+ days. Total LTV at risk: %.0f. Avg days inactive: %.0f.",
				atRisk, g.rules.Finance.ChurnInactiveDays, ltvAtRisk, avgDaysInactive),
			Confidence:  growthConfidence(10, 2),
			TriggerRule: fmt.Sprintf("Fire if any customers have last_order > %d days AND LTV >= %v.", g.rules.Finance.ChurnInactiveDays, g.rules.Finance.ChurnLTV),
			Conditions:  cond4,
		})
	}

	// 5. Reorder prediction: recently active repeat customers. The
	// recency window anchors to the reference day at midnight.
	refMidnight, _ := contracts.ParseDateKey(m.ReferenceDate)
	reorderCutoff := refMidnight.Add(-time.Duration(g.rules.Growth.ReorderWindowDays) * 24 * time.Hour)
	var reorderCount int
	var capturable float64
	for _, st := range stats {
		if st.orders < g.rules.Growth.ReorderMinOrders || st.lastOrder.Before(reorderCutoff) {
			continue
		}
		reorderCount++
		capturable += st.ltv / math.Max(1, float64(st.orders))
	}
	cond5 := []contracts.Condition{
		{Condition: fmt.Sprintf("last_order <= %d days", g.rules.Growth.ReorderWindowDays), Met: reorderCount > 0, Detail: fmt.Sprintf("%d customers", reorderCount)},
		{Condition: fmt.Sprintf("total_orders >= %d", g.rules.Growth.ReorderMinOrders), Met: reorderCount > 0, Detail: fmt.Sprintf("%d customers", reorderCount)},
	}
	if reorderCount > 0 {
		insights = append(insights, contracts.GrowthInsight{
			ID:       nextID(),
			Kind:     KindReorderPrediction,
			Priority: contracts.GrowthPriorityLow,
			Title:    "Reorder Prediction",
			Text: fmt.Sprintf(
				"%d customers likely to reorder (active <=%d days, %d+ orders). Estimated capturable revenue: %.0f.",
				reorderCount, g.rules.Growth.ReorderWindowDays, g.rules.Growth.ReorderMinOrders, capturable),
			Confidence:  78,
			TriggerRule: fmt.Sprintf("Fire if customers have last_order <= %d days AND total_orders >= %d.", g.rules.Growth.ReorderWindowDays, g.rules.Growth.ReorderMinOrders),
			Conditions:  cond5,
		})
	}

	// 6. Low-margin items.
	itemNames := make(map[string]string, len(in.Items))
	for _, it := range in.Items {
		itemNames[it.ID] = it.Name
	}
	var lowMargin int
	var worst *contracts.ItemMargin
	for i := range in.ItemMargins {
		im := &in.ItemMargins[i]
		if im.Revenue <= 0 || im.MarginPercent >= g.rules.Growth.LowMarginItemPercent {
			continue
		}
		lowMargin++
		if worst == nil || im.MarginPercent < worst.MarginPercent {
			worst = im
		}
	}
	cond6 := []contracts.Condition{
		{Condition: fmt.Sprintf("Any item margin < %v%%", g.rules.Growth.LowMarginItemPercent), Met: lowMargin > 0, Detail: fmt.Sprintf("%d items", lowMargin)},
	}
	if worst != nil {
		name := itemNames[worst.ItemID]
		if name == "" {
			name = worst.ItemID
		}
		insights = append(insights, contracts.GrowthInsight{
			ID:       nextID(),
			Kind:     KindLowMarginItems,
			Priority: contracts.GrowthPriorityMedium,
			Title:    "Low-Margin Items",
			Text: fmt.Sprintf(
				"%d items below %v%% margin. Worst: %s at %.1f%%.",
				lowMargin, g.rules.Growth.LowMarginItemPercent, name, worst.MarginPercent),
			Confidence:  growthConfidence(15, 1),
			TriggerRule: fmt.Sprintf("Fire if any items have margin < %v%%.", g.rules.Growth.LowMarginItemPercent),
			Conditions:  cond6,
		})
	}

	// 7. Store performance gap on 7-day repeat rate.
	var maxGap float64
	var lagging *contracts.StoreMetrics
	for i := range m.PerStore {
		for j := range m.PerStore {
			if i == j {
				continue
			}
			gap := math.Abs(m.PerStore[i].Last7.RepeatRate - m.PerStore[j].Last7.RepeatRate)
			if gap > maxGap && gap > g.rules.Growth.StoreRepeatGapPoints {
				maxGap = gap
				if m.PerStore[i].Last7.RepeatRate < m.PerStore[j].Last7.RepeatRate {
					lagging = &m.PerStore[i]
				} else {
					lagging = &m.PerStore[j]
				}
			}
		}
	}
	cond7 := []contracts.Condition{
		{Condition: fmt.Sprintf("Repeat rate gap between stores > %v%%", g.rules.Growth.StoreRepeatGapPoints), Met: lagging != nil, Detail: fmt.Sprintf("%.1f%%", maxGap)},
	}
	if lagging != nil {
		insights = append(insights, contracts.GrowthInsight{
			ID:       nextID(),
			Kind:     KindStorePerformanceGap,
			Priority: contracts.GrowthPriorityMedium,
			Title:    "Store Performance Gap",
			Text: fmt.Sprintf(
				"Repeat rate gap %.1f%%. Lagging store: %s (%v%%).",
				maxGap, lagging.StoreName, lagging.Last7.RepeatRate),
			Confidence:  growthConfidence(12, 1),
			TriggerRule: fmt.Sprintf("Fire if repeat rate gap between any two stores > %v%%.", g.rules.Growth.StoreRepeatGapPoints),
			Conditions:  cond7,
		})
	}

	// 8. Dormant segment size. Win-back estimate assumes a 15% recovery
	// at 200 per recovered customer per month.
	winBack := float64(inactive) * 200 * 0.15
	cond8 := []contracts.Condition{
		{Condition: fmt.Sprintf("Dormant (%d+ days inactive) > %d", g.rules.Finance.ChurnInactiveDays, g.rules.Growth.DormantCustomersAbove), Met: inactive > g.rules.Growth.DormantCustomersAbove, Detail: fmt.Sprintf("%d dormant", inactive)},
	}
	if inactive > g.rules.Growth.DormantCustomersAbove {
		insights = append(insights, contracts.GrowthInsight{
			ID:       nextID(),
			Kind:     KindDormantSegment,
			Priority: contracts.GrowthPriorityLow,
			Title:    "Dormant Segment Size",
			Text: fmt.Sprintf(
				"%d dormant customers (%d+ days). Win-back revenue estimate at 15%% recovery: %.0f/month.",
				inactive, g.rules.Finance.ChurnInactiveDays, winBack),
			Confidence:  growthConfidence(10, 1),
			TriggerRule: fmt.Sprintf("Fire if dormant customers > %d.", g.rules.Growth.DormantCustomersAbove),
			Conditions:  cond8,
		})
	}

	// 9. Champion health. Always fires.
	var champions int
	var championLTV float64
	for _, st := range stats {
		if st.orders >= g.rules.Growth.ChampionMinOrders {
			champions++
			championLTV += st.ltv
		}
	}
	avgChampionLTV := 0.0
	if champions > 0 {
		avgChampionLTV = championLTV / float64(champions)
	}
	insights = append(insights, contracts.GrowthInsight{
		ID:       nextID(),
		Kind:     KindChampionHealth,
		Priority: contracts.GrowthPriorityLow,
		Title:    "Champion Health",
		Text: fmt.Sprintf(
			"%d high-value customers (%d+ orders). Avg LTV: %.0f.",
			champions, g.rules.Growth.ChampionMinOrders, avgChampionLTV),
		Confidence:  85,
		TriggerRule: "Always fire. Show count of high-value customers and avg LTV.",
		Conditions: []contracts.Condition{
			{Condition: fmt.Sprintf("Customers with %d+ orders", g.rules.Growth.ChampionMinOrders), Met: true, Detail: fmt.Sprintf("%d champions", champions)},
		},
	})

	return insights
}
