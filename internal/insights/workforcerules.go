package insights

import (
	"fmt"

	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/pkg/config"
)

func shiftLabel(s contracts.Shift) string {
	if s == contracts.ShiftMorning {
		return "Morning"
	}
	return "Evening"
}

// WorkforceInsights flags staff shortage, overstaffing and whole-day
// productivity risk from shift utilization.
func WorkforceInsights(rules config.WorkforceThresholds, metrics []contracts.ShiftMetrics, refKey string) []contracts.Insight {
	evaluatedAt := contracts.EvaluationTime(refKey)

	byStore := map[string][]contracts.ShiftMetrics{}
	var storeOrder []string
	for _, m := range metrics {
		if _, ok := byStore[m.StoreID]; !ok {
			storeOrder = append(storeOrder, m.StoreID)
		}
		byStore[m.StoreID] = append(byStore[m.StoreID], m)
	}

	var out []contracts.Insight
	for _, storeID := range storeOrder {
		storeMetrics := byStore[storeID]
		for _, m := range storeMetrics {
			if m.Utilization > rules.Shortage {
				severity := contracts.SeverityWarning
				if m.Utilization > rules.ShortageCritical {
					severity = contracts.SeverityCritical
				}
				out = append(out, contracts.Insight{
					Type:     "STAFF_SHORTAGE",
					Severity: severity,
					StoreID:  storeID,
					Message: fmt.Sprintf(
						"%s shift utilization (%.2f) exceeds %.1f. Consider adding staff.",
						shiftLabel(m.Shift), m.Utilization, rules.Shortage),
					EvaluatedAt: evaluatedAt,
				})
			}
			if m.Utilization < rules.Overstaffing && m.Utilization > 0 {
				out = append(out, contracts.Insight{
					Type:     "OVERSTAFFING",
					Severity: contracts.SeverityInfo,
					StoreID:  storeID,
					Message: fmt.Sprintf(
						"%s shift utilization (%.2f) below %.1f. Underused capacity.",
						shiftLabel(m.Shift), m.Utilization, rules.Overstaffing),
					EvaluatedAt: evaluatedAt,
				})
			}
		}

		var morning, evening *contracts.ShiftMetrics
		for i := range storeMetrics {
			switch storeMetrics[i].Shift {
			case contracts.ShiftMorning:
				morning = &storeMetrics[i]
			case contracts.ShiftEvening:
				evening = &storeMetrics[i]
			}
		}
		if morning != nil && evening != nil &&
			morning.Utilization > rules.Shortage && evening.Utilization > rules.Shortage {
			out = append(out, contracts.Insight{
				Type:     "PRODUCTIVITY_RISK",
				Severity: contracts.SeverityWarning,
				StoreID:  storeID,
				Message: fmt.Sprintf(
					"Both morning and evening shifts are overloaded (utilization %.2f / %.2f). Role capacity may be misaligned.",
					morning.Utilization, evening.Utilization),
				EvaluatedAt: evaluatedAt,
			})
		}
	}
	return out
}
