package insights

import (
	"fmt"

	"github.com/grovyn/core-platform/internal/commission"
	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/pkg/config"
)

// PartnerInsights runs the commission rules per partner. DIRECT is
// never evaluated; it pays no commission.
func PartnerInsights(rules config.PartnerThresholds, com commission.Result, refKey string) []contracts.Insight {
	evaluatedAt := contracts.EvaluationTime(refKey)
	baseline := com.BaselinePercentByPartner()
	thisWeek := com.OrdersThisWeek(refKey)

	var out []contracts.Insight
	for _, summary := range com.Summaries {
		if summary.PartnerID == contracts.DirectKey {
			continue
		}

		var weekGross, weekCommission float64
		for _, o := range thisWeek {
			if o.PartnerID != summary.PartnerID {
				continue
			}
			weekGross += o.TotalAmount
			weekCommission += o.CommissionAmount
		}
		weekPercent := 0.0
		if weekGross > 0 {
			weekPercent = weekCommission / weekGross * 100
		}
		if weekPercent > baseline[summary.PartnerID]+rules.CommissionIncreasePoints {
			out = append(out, contracts.Insight{
				Type:      "COMMISSION_IMPACT_INCREASED",
				Severity:  contracts.SeverityWarning,
				PartnerID: summary.PartnerID,
				Message: fmt.Sprintf(
					"This week's commission (%.1f%%) is above baseline (%.1f%%) by more than %.0f%%.",
					weekPercent, baseline[summary.PartnerID], rules.CommissionIncreasePoints),
				EvaluatedAt: evaluatedAt,
			})
		}

		highVolumeLowRevenue := summary.TotalOrders >= rules.HighVolumeOrders &&
			summary.NetRevenue < rules.LowNetRevenue
		commissionExceedsCap := summary.AverageCommissionPercent > rules.CommissionCapPercent
		if highVolumeLowRevenue || commissionExceedsCap {
			severity := contracts.SeverityWarning
			if highVolumeLowRevenue && commissionExceedsCap {
				severity = contracts.SeverityCritical
			}
			message := fmt.Sprintf(
				"Commission %% (%.1f%%) exceeds limit (%.0f%%)",
				summary.AverageCommissionPercent, rules.CommissionCapPercent)
			if highVolumeLowRevenue {
				message = fmt.Sprintf(
					"High order volume (%d) but low net revenue (%.2f)",
					summary.TotalOrders, summary.NetRevenue)
			}
			out = append(out, contracts.Insight{
				Type:        "PARTNER_UNDERPERFORMING",
				Severity:    severity,
				PartnerID:   summary.PartnerID,
				Message:     message,
				EvaluatedAt: evaluatedAt,
			})
		}
	}
	return out
}
