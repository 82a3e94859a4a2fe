package brain

import (
	"fmt"
	"math"
)

// floatTolerance absorbs summation-order differences; the pipeline is
// deterministic but float addition is not associative.
const floatTolerance = 1e-6

// Diff compares the significant outputs of two boots of the same seed.
// It returns one line per mismatch; an empty slice means the boots are
// numerically equivalent.
func Diff(a, b *Registry) []string {
	var diffs []string
	num := func(name string, x, y float64) {
		if math.Abs(x-y) > floatTolerance {
			diffs = append(diffs, fmt.Sprintf("%s: %v != %v", name, x, y))
		}
	}
	count := func(name string, x, y int) {
		if x != y {
			diffs = append(diffs, fmt.Sprintf("%s: %d != %d", name, x, y))
		}
	}

	if a.ReferenceDay != b.ReferenceDay {
		diffs = append(diffs, fmt.Sprintf("referenceDay: %s != %s", a.ReferenceDay, b.ReferenceDay))
	}
	count("orders", a.Ingestion.Counts.Total, b.Ingestion.Counts.Total)

	num("finance.gross", a.FinanceSummary.TotalGrossRevenue, b.FinanceSummary.TotalGrossRevenue)
	num("finance.net", a.FinanceSummary.TotalNetRevenue, b.FinanceSummary.TotalNetRevenue)
	num("finance.commission", a.FinanceSummary.TotalCommissionCost, b.FinanceSummary.TotalCommissionCost)
	num("finance.discount", a.FinanceSummary.TotalDiscountCost, b.FinanceSummary.TotalDiscountCost)

	num("profit.total", a.Profit.Summary.TotalProfit, b.Profit.Summary.TotalProfit)
	num("profit.marginPct", a.Profit.Summary.OverallMarginPercent, b.Profit.Summary.OverallMarginPercent)
	count("profit.stores", len(a.Profit.Stores), len(b.Profit.Stores))

	num("metrics.last7.revenue", a.Metrics.Last7.Revenue, b.Metrics.Last7.Revenue)
	num("metrics.last7.repeat", a.Metrics.Last7.RepeatRate, b.Metrics.Last7.RepeatRate)
	num("metrics.wow.margin", a.Metrics.WoW.MarginDeltaPct, b.Metrics.WoW.MarginDeltaPct)

	count("insights", len(a.Insights.Insights), len(b.Insights.Insights))
	count("growth.insights", len(a.Intelligence.Insights), len(b.Intelligence.Insights))
	count("autopilot.ranked", len(a.Autopilot.Ranked), len(b.Autopilot.Ranked))
	count("autopilot.alerts", len(a.Autopilot.Alerts), len(b.Autopilot.Alerts))
	for i := range a.Autopilot.Ranked {
		if i >= len(b.Autopilot.Ranked) {
			break
		}
		x, y := a.Autopilot.Ranked[i], b.Autopilot.Ranked[i]
		if x.Type != y.Type || x.PriorityScore != y.PriorityScore {
			diffs = append(diffs, fmt.Sprintf("autopilot.ranked[%d]: %s/%v != %s/%v",
				i, x.Type, x.PriorityScore, y.Type, y.PriorityScore))
		}
	}

	return diffs
}
