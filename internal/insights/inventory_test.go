package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/internal/inventory"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
)

func drainReplay(storeID string, n int) []contracts.ReplayOrder {
	base := time.Date(2025, 6, 29, 10, 0, 0, 0, time.UTC)
	out := make([]contracts.ReplayOrder, n)
	for i := range out {
		out[i] = contracts.ReplayOrder{
			OrderWithCommission: contracts.OrderWithCommission{
				NormalizedOrder: contracts.NormalizedOrder{
					OrderID:   fmt.Sprintf("ord_%05d", i),
					StoreID:   storeID,
					BrandID:   "brand_1",
					CreatedAt: base.Add(time.Duration(i%2) * 24 * time.Hour),
				},
			},
			Pos: i,
		}
	}
	return out
}

func TestInventoryInsightsLowStockAfterDrain(t *testing.T) {
	items := []contracts.Item{
		{ID: "item_a", BrandID: "brand_1"},
		{ID: "item_b", BrandID: "brand_1"},
	}
	itemsByBrand := map[string][]contracts.Item{"brand_1": items}

	inv := inventory.NewService(logger.NewNop(), 42)
	inv.InitLedger([]contracts.Store{
		{ID: "store_busy", Status: contracts.StoreActive},
		{ID: "store_idle", Status: contracts.StoreActive},
	})
	// two days of heavy volume drains the busy store's BOM ingredients
	inv.RunConsumption(drainReplay("store_busy", 20000), itemsByBrand)

	out := InventoryInsights(config.DefaultThresholds().Inventory, inv, items, refKey)

	lowByStore := map[string]int{}
	for _, i := range out {
		if i.Type == "LOW_STOCK" {
			lowByStore[i.StoreID]++
			assert.NotEmpty(t, i.IngredientID)
			assert.GreaterOrEqual(t, i.SuggestedReorderQuantity, 0.0)
		}
	}
	require.NotZero(t, lowByStore["store_busy"], "drained store must report low stock")
	assert.Zero(t, lowByStore["store_idle"], "idle store holds seeded stock")
}

func TestInventoryInsightsWasteRiskOnLowVolume(t *testing.T) {
	items := []contracts.Item{{ID: "item_a", BrandID: "brand_1"}}
	itemsByBrand := map[string][]contracts.Item{"brand_1": items}

	inv := inventory.NewService(logger.NewNop(), 42)
	inv.InitLedger([]contracts.Store{{ID: "store_1", Status: contracts.StoreActive}})
	// five orders is far below the waste-risk volume threshold
	inv.RunConsumption(drainReplay("store_1", 5), itemsByBrand)

	out := InventoryInsights(config.DefaultThresholds().Inventory, inv, items, refKey)

	waste := 0
	for _, i := range out {
		if i.Type == "WASTE_RISK" {
			waste++
			assert.Equal(t, contracts.SeverityWarning, i.Severity, "under 10 orders is a warning")
		}
	}
	// one waste insight per ingredient used by item_a's BOM
	assert.Equal(t, len(inv.BOM("item_a")), waste)
}
