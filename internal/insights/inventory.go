package insights

import (
	"fmt"
	"math"

	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/internal/inventory"
	"github.com/grovyn/core-platform/pkg/config"
)

const untouchedStockDays = 999

// roundToUnit keeps reorder suggestions in sensible units: whole pieces
// for pcs, two decimals otherwise. Never negative.
func roundToUnit(v float64, unit string) float64 {
	if unit == "pcs" {
		return math.Max(0, math.Round(v))
	}
	return math.Max(0, contracts.Round2(v))
}

// InventoryInsights scans every ledger cell for low stock, overstock
// and waste risk. LOW_STOCK carries a reorder suggestion sized to
// refill one week of consumption.
func InventoryInsights(rules config.InventoryThresholds, inv *inventory.Service, items []contracts.Item, refKey string) []contracts.Insight {
	evaluatedAt := contracts.EvaluationTime(refKey)

	// ingredient -> items whose BOM uses it
	itemsByIngredient := map[string][]string{}
	for _, item := range items {
		for _, line := range inv.BOM(item.ID) {
			itemsByIngredient[line.IngredientID] = append(itemsByIngredient[line.IngredientID], item.ID)
		}
	}
	orderCountByItem := inv.OrderCountByItem()

	var out []contracts.Insight
	for _, storeID := range inv.StoreIDs() {
		rows := inv.Rows(storeID)
		for _, ing := range inventory.Ingredients {
			row, ok := rows[ing.ID]
			if !ok {
				continue
			}
			avgWeekly := row.AvgDailyConsumption * 7

			if row.DaysRemaining < rules.LowStockDays && row.DaysRemaining < untouchedStockDays {
				severity := contracts.SeverityWarning
				if row.DaysRemaining < 1 {
					severity = contracts.SeverityCritical
				}
				out = append(out, contracts.Insight{
					Type:         "LOW_STOCK",
					Severity:     severity,
					StoreID:      storeID,
					IngredientID: ing.ID,
					Message: fmt.Sprintf(
						"Days of stock remaining (%.1f) below %.0f. Consider reordering.",
						row.DaysRemaining, rules.LowStockDays),
					EvaluatedAt:              evaluatedAt,
					SuggestedReorderQuantity: roundToUnit(avgWeekly-row.CurrentStock, ing.Unit),
				})
			}

			if avgWeekly > 0 && row.CurrentStock > rules.OverstockMultiplier*avgWeekly {
				out = append(out, contracts.Insight{
					Type:         "OVERSTOCK",
					Severity:     contracts.SeverityInfo,
					StoreID:      storeID,
					IngredientID: ing.ID,
					Message: fmt.Sprintf(
						"Current stock (%.2f %s) exceeds %.0fx average weekly consumption (%.2f %s).",
						row.CurrentStock, ing.Unit, rules.OverstockMultiplier, avgWeekly, ing.Unit),
					EvaluatedAt: evaluatedAt,
				})
			}

			itemIDs := itemsByIngredient[ing.ID]
			totalOrders := 0
			for _, id := range itemIDs {
				totalOrders += orderCountByItem[id]
			}
			if len(itemIDs) > 0 && totalOrders < rules.WasteLowOrderVolume {
				severity := contracts.SeverityInfo
				if totalOrders < 10 {
					severity = contracts.SeverityWarning
				}
				out = append(out, contracts.Insight{
					Type:         "WASTE_RISK",
					Severity:     severity,
					StoreID:      storeID,
					IngredientID: ing.ID,
					Message: fmt.Sprintf(
						"Ingredient used in items with low total order volume (%d orders). Risk of waste if not used.",
						totalOrders),
					EvaluatedAt: evaluatedAt,
				})
			}
		}
	}
	return out
}
