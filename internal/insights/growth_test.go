package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
)

func growthEngine() *GrowthEngine {
	return NewGrowthEngine(logger.NewNop(), config.DefaultThresholds())
}

func orderAt(customerID string, amount float64, daysBeforeRef int) contracts.OrderWithCommission {
	created, _ := contracts.ParseDateKey(contracts.AddDays(refKey, -daysBeforeRef))
	return contracts.OrderWithCommission{
		NormalizedOrder: contracts.NormalizedOrder{
			OrderID:     fmt.Sprintf("ord_%s_%d", customerID, daysBeforeRef),
			CustomerID:  customerID,
			TotalAmount: amount,
			CreatedAt:   created.Add(10 * time.Hour),
		},
	}
}

func findGrowth(t *testing.T, insights []contracts.GrowthInsight, kind string) contracts.GrowthInsight {
	t.Helper()
	for _, ins := range insights {
		if ins.Kind == kind {
			return ins
		}
	}
	t.Fatalf("no insight of kind %s", kind)
	return contracts.GrowthInsight{}
}

func hasGrowth(insights []contracts.GrowthInsight, kind string) bool {
	for _, ins := range insights {
		if ins.Kind == kind {
			return true
		}
	}
	return false
}

func TestGrowthConfidenceCaps(t *testing.T) {
	assert.Equal(t, 95.0, growthConfidence(30, 10))
	assert.Equal(t, 70.0, growthConfidence(0, 0))
	assert.Equal(t, 83.0, growthConfidence(10, 1))
	// Confirming signals cap at 10 points.
	assert.Equal(t, 80.0, growthConfidence(0, 5))
}

func TestGrowthRepeatRateDrop(t *testing.T) {
	in := GrowthInputs{
		Metrics: contracts.MetricsSnapshot{
			ReferenceDate: refKey,
			Last7:         contracts.WindowAggregate{RepeatRate: 10},
			Last14:        contracts.WindowAggregate{RepeatRate: 12},
			WoW:           contracts.WoWDeltas{RepeatDeltaPct: -3},
			Trend3Day:     contracts.TrendSet{RepeatRate: contracts.TrendDecline},
		},
	}
	res := growthEngine().Run(in)
	ins := findGrowth(t, res.Insights, KindRepeatRateDrop)
	assert.Equal(t, contracts.GrowthPriorityHigh, ins.Priority)
	// Gap of 2 points saturates deviation at 15 and all three
	// conditions are met: min(95, 70+15+9) = 94.
	assert.Equal(t, 94.0, ins.Confidence)
	require.Len(t, ins.Conditions, 3)
	for _, c := range ins.Conditions {
		assert.True(t, c.Met, c.Condition)
	}
}

func TestGrowthRepeatRateDropBelowGapDoesNotFire(t *testing.T) {
	in := GrowthInputs{
		Metrics: contracts.MetricsSnapshot{
			ReferenceDate: refKey,
			Last7:         contracts.WindowAggregate{RepeatRate: 11.6},
			Last14:        contracts.WindowAggregate{RepeatRate: 12},
		},
	}
	res := growthEngine().Run(in)
	assert.False(t, hasGrowth(res.Insights, KindRepeatRateDrop))
}

func TestGrowthMarginDeclineAndCommissionRising(t *testing.T) {
	in := GrowthInputs{
		Metrics: contracts.MetricsSnapshot{
			ReferenceDate: refKey,
			WoW: contracts.WoWDeltas{
				MarginDeltaPct:     -1.2,
				CommissionDeltaPct: 0.5,
			},
			Trend3Day: contracts.TrendSet{
				MarginPct:     contracts.TrendDecline,
				CommissionPct: contracts.TrendIncrease,
			},
		},
	}
	res := growthEngine().Run(in)
	margin := findGrowth(t, res.Insights, KindMarginDeclineWoW)
	assert.Equal(t, contracts.GrowthPriorityMedium, margin.Priority)
	// Deviation saturates and all three conditions met.
	assert.Equal(t, 94.0, margin.Confidence)

	comm := findGrowth(t, res.Insights, KindCommissionRising)
	assert.Equal(t, 94.0, comm.Confidence)
}

func TestGrowthChurnRiskAndDormantSegment(t *testing.T) {
	orders := []contracts.OrderWithCommission{
		orderAt("cust_whale", 800, 20),
		orderAt("cust_small", 50, 30),
		orderAt("cust_active", 900, 2),
	}
	in := GrowthInputs{
		Metrics: contracts.MetricsSnapshot{ReferenceDate: refKey},
		Orders:  orders,
	}
	res := growthEngine().Run(in)
	churn := findGrowth(t, res.Insights, KindChurnRisk)
	assert.Equal(t, contracts.GrowthPriorityHigh, churn.Priority)
	assert.Contains(t, churn.Text, "1 high-value customers")
	assert.Contains(t, churn.Text, "Total LTV at risk: 800")
	// Two inactive customers, 20 and 30 days out.
	assert.Contains(t, churn.Text, "Avg days inactive: 25")
	require.Len(t, churn.Conditions, 2)
	assert.Equal(t, "2 customers", churn.Conditions[0].Detail)
	assert.Equal(t, "1 at risk", churn.Conditions[1].Detail)

	// Two dormant customers is far below the threshold of 50.
	assert.False(t, hasGrowth(res.Insights, KindDormantSegment))
}

func TestGrowthDormantSegmentFires(t *testing.T) {
	orders := make([]contracts.OrderWithCommission, 0, 60)
	for i := 0; i < 60; i++ {
		orders = append(orders, orderAt(fmt.Sprintf("cust_%02d", i), 100, 20))
	}
	in := GrowthInputs{
		Metrics: contracts.MetricsSnapshot{ReferenceDate: refKey},
		Orders:  orders,
	}
	res := growthEngine().Run(in)
	dormant := findGrowth(t, res.Insights, KindDormantSegment)
	assert.Equal(t, contracts.GrowthPriorityLow, dormant.Priority)
	// 60 dormant × 200 × 0.15 recovery.
	assert.Contains(t, dormant.Text, "1800/month")
}

func TestGrowthReorderPrediction(t *testing.T) {
	orders := []contracts.OrderWithCommission{
		orderAt("cust_loyal", 100, 10),
		orderAt("cust_loyal", 200, 6),
		orderAt("cust_loyal", 300, 3),
		// Two orders only, never a candidate.
		orderAt("cust_pair", 100, 2),
		orderAt("cust_pair", 100, 1),
	}
	in := GrowthInputs{
		Metrics: contracts.MetricsSnapshot{ReferenceDate: refKey},
		Orders:  orders,
	}
	res := growthEngine().Run(in)
	reorder := findGrowth(t, res.Insights, KindReorderPrediction)
	assert.Contains(t, reorder.Text, "1 customers likely to reorder")
	// LTV 600 over 3 orders.
	assert.Contains(t, reorder.Text, "capturable revenue: 200")
	assert.Equal(t, 78.0, reorder.Confidence)
}

func TestGrowthLowMarginItemsPicksWorst(t *testing.T) {
	in := GrowthInputs{
		Metrics: contracts.MetricsSnapshot{ReferenceDate: refKey},
		Items: []contracts.Item{
			{ID: "item_a", Name: "Masala Bowl"},
			{ID: "item_b", Name: "Herb Wrap"},
		},
		ItemMargins: []contracts.ItemMargin{
			{ItemID: "item_a", Revenue: 100, MarginPercent: 12.5},
			{ItemID: "item_b", Revenue: 100, MarginPercent: 8.25},
			{ItemID: "item_c", Revenue: 100, MarginPercent: 40},
			{ItemID: "item_d", Revenue: 0, MarginPercent: 0},
		},
	}
	res := growthEngine().Run(in)
	low := findGrowth(t, res.Insights, KindLowMarginItems)
	assert.Contains(t, low.Text, "2 items below 25% margin")
	assert.Contains(t, low.Text, "Herb Wrap at 8.2%")
}

func TestGrowthStorePerformanceGap(t *testing.T) {
	in := GrowthInputs{
		Metrics: contracts.MetricsSnapshot{
			ReferenceDate: refKey,
			PerStore: []contracts.StoreMetrics{
				{StoreID: "store_a", StoreName: "Andheri Hub", Last7: contracts.WindowAggregate{RepeatRate: 12}},
				{StoreID: "store_b", StoreName: "Baner Hub", Last7: contracts.WindowAggregate{RepeatRate: 8}},
				{StoreID: "store_c", StoreName: "Kochi Hub", Last7: contracts.WindowAggregate{RepeatRate: 11}},
			},
		},
	}
	res := growthEngine().Run(in)
	gap := findGrowth(t, res.Insights, KindStorePerformanceGap)
	assert.Contains(t, gap.Text, "gap 4.0%")
	assert.Contains(t, gap.Text, "Baner Hub")
}

func TestGrowthStoreGapWithinToleranceDoesNotFire(t *testing.T) {
	in := GrowthInputs{
		Metrics: contracts.MetricsSnapshot{
			ReferenceDate: refKey,
			PerStore: []contracts.StoreMetrics{
				{StoreID: "store_a", Last7: contracts.WindowAggregate{RepeatRate: 10}},
				{StoreID: "store_b", Last7: contracts.WindowAggregate{RepeatRate: 11}},
			},
		},
	}
	res := growthEngine().Run(in)
	assert.False(t, hasGrowth(res.Insights, KindStorePerformanceGap))
}

func TestGrowthChampionHealthAlwaysFires(t *testing.T) {
	empty := growthEngine().Run(GrowthInputs{Metrics: contracts.MetricsSnapshot{ReferenceDate: refKey}})
	champ := findGrowth(t, empty.Insights, KindChampionHealth)
	assert.Equal(t, 85.0, champ.Confidence)
	assert.Contains(t, champ.Text, "0 high-value customers")

	orders := make([]contracts.OrderWithCommission, 0, 12)
	for i := 0; i < 12; i++ {
		orders = append(orders, orderAt("cust_champ", 100, i%5+1))
	}
	res := growthEngine().Run(GrowthInputs{
		Metrics: contracts.MetricsSnapshot{ReferenceDate: refKey},
		Orders:  orders,
	})
	champ = findGrowth(t, res.Insights, KindChampionHealth)
	assert.Contains(t, champ.Text, "1 high-value customers")
	assert.Contains(t, champ.Text, "Avg LTV: 1200")
}

func TestGrowthInsightIDsAreSequential(t *testing.T) {
	in := GrowthInputs{
		Metrics: contracts.MetricsSnapshot{
			ReferenceDate: refKey,
			Last7:         contracts.WindowAggregate{RepeatRate: 8},
			Last14:        contracts.WindowAggregate{RepeatRate: 12},
		},
	}
	res := growthEngine().Run(in)
	for i, ins := range res.Insights {
		assert.Equal(t, fmt.Sprintf("insight_%d", i+1), ins.ID)
	}
}

func TestTopActionsRankingAndLimit(t *testing.T) {
	insights := []contracts.GrowthInsight{
		{ID: "insight_1", Kind: KindRepeatRateDrop},
		{ID: "insight_2", Kind: KindCommissionRising},
		{ID: "insight_3", Kind: KindChurnRisk},
		{ID: "insight_4", Kind: KindLowMarginItems},
		{ID: "insight_5", Kind: KindChampionHealth},
	}
	actions := topActions(insights)
	require.Len(t, actions, 3)
	assert.Equal(t, "insight_3", actions[0].InsightID)
	assert.Equal(t, contracts.GrowthPriorityHigh, actions[0].Priority)
	assert.Equal(t, "insight_2", actions[1].InsightID)
	assert.Equal(t, contracts.GrowthPriorityMedium, actions[1].Priority)
	assert.Equal(t, "insight_4", actions[2].InsightID)
	assert.Equal(t, contracts.GrowthPriorityLow, actions[2].Priority)
}

func TestTopActionsSkipsUnmappedKinds(t *testing.T) {
	actions := topActions([]contracts.GrowthInsight{
		{ID: "insight_1", Kind: KindChampionHealth},
		{ID: "insight_2", Kind: KindStorePerformanceGap},
	})
	assert.Empty(t, actions)
}
