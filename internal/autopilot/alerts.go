package autopilot

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/grovyn/core-platform/internal/contracts"
)

// alertID derives a stable UUID from the rule name and reference day
// so alerts keep their identity across reboots of the same dataset.
func alertID(rule, refDay string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("alert:"+rule+":"+refDay)).String()
}

// buildAlerts evaluates the three escalation rules over the ranked
// list. Nothing is recomputed here.
func (e *Engine) buildAlerts(ranked []contracts.RankedInsight, refDay string) []contracts.Alert {
	generatedAt := contracts.BriefTime(refDay)
	alerts := make([]contracts.Alert, 0, 3)

	var critical []contracts.RankedInsight
	var negativeProfit []contracts.RankedInsight
	warningsByStore := make(map[string]int)
	warningStoreOrder := make([]string, 0)
	for _, r := range ranked {
		if r.Severity == contracts.SeverityCritical {
			critical = append(critical, r)
		}
		if r.Type == "NEGATIVE_PROFIT" {
			negativeProfit = append(negativeProfit, r)
		}
		if r.Severity == contracts.SeverityWarning && r.StoreID != "" {
			if warningsByStore[r.StoreID] == 0 {
				warningStoreOrder = append(warningStoreOrder, r.StoreID)
			}
			warningsByStore[r.StoreID]++
		}
	}

	if len(critical) > 0 {
		entities := make([]contracts.AlertEntity, 0, len(critical))
		for _, r := range critical {
			entities = append(entities, primaryEntity(r.Insight))
		}
		alerts = append(alerts, contracts.Alert{
			ID:          alertID("critical", refDay),
			Channel:     contracts.AlertChannelExecutive,
			Severity:    contracts.SeverityCritical,
			Message:     fmt.Sprintf("%d critical issue(s) require attention.", len(critical)),
			Entities:    entities,
			GeneratedAt: generatedAt,
		})
	}

	breached := make([]string, 0)
	for _, sid := range warningStoreOrder {
		if warningsByStore[sid] >= 2 {
			breached = append(breached, sid)
		}
	}
	if len(breached) > 0 {
		entities := make([]contracts.AlertEntity, 0, len(breached))
		for _, sid := range breached {
			entities = append(entities, contracts.AlertEntity{Type: "STORE", ID: sid})
		}
		alerts = append(alerts, contracts.Alert{
			ID:          alertID("store-warnings", refDay),
			Channel:     contracts.AlertChannelExecutive,
			Severity:    contracts.SeverityWarning,
			Message:     fmt.Sprintf("%d store(s) have 2+ warnings: %s.", len(breached), strings.Join(breached, ", ")),
			Entities:    entities,
			GeneratedAt: generatedAt,
		})
	}

	if len(negativeProfit) > 0 {
		entities := make([]contracts.AlertEntity, 0, len(negativeProfit))
		for _, r := range negativeProfit {
			entities = append(entities, contracts.AlertEntity{Type: r.EntityType, ID: r.EntityID})
		}
		alerts = append(alerts, contracts.Alert{
			ID:          alertID("negative-profit", refDay),
			Channel:     contracts.AlertChannelExecutive,
			Severity:    contracts.SeverityCritical,
			Message:     fmt.Sprintf("Negative profit detected on %d entity/entities.", len(entities)),
			Entities:    entities,
			GeneratedAt: generatedAt,
		})
	}

	for _, a := range alerts {
		e.logger.WithFields(map[string]interface{}{
			"severity": a.Severity,
			"message":  a.Message,
		}).Warn("Executive alert raised")
	}
	return alerts
}

// primaryEntity prefers the store reference, then the filled entity
// id, then the rule type as a last resort.
func primaryEntity(i contracts.Insight) contracts.AlertEntity {
	if i.StoreID != "" {
		return contracts.AlertEntity{Type: "STORE", ID: i.StoreID}
	}
	if i.EntityID != "" {
		return contracts.AlertEntity{Type: i.EntityType, ID: i.EntityID}
	}
	return contracts.AlertEntity{Type: i.Type, ID: i.Type}
}
