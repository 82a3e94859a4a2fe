package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovyn/core-platform/internal/commission"
	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/internal/profit"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
)

const refKey = "2025-06-30"

func refTime() time.Time {
	return time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
}

func TestHealthEvaluatorStatusLevels(t *testing.T) {
	// one store with all its orders far in the past: yesterday has
	// zero orders so the deviation signal breaches
	stores := []contracts.Store{{ID: "store_quiet", Name: "Quiet", OperatingHours: "08:00-22:00"}}
	old := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var orders []contracts.NormalizedOrder
	for i := 0; i < 50; i++ {
		orders = append(orders, contracts.NormalizedOrder{
			OrderID: "ord", StoreID: "store_quiet", CustomerID: "c",
			TotalAmount: 100, Channel: contracts.ChannelDirect, CreatedAt: old,
		})
	}
	// pin the reference date with a different store's order
	orders = append(orders, contracts.NormalizedOrder{
		OrderID: "pin", StoreID: "store_other", CustomerID: "c",
		TotalAmount: 1, Channel: contracts.ChannelDirect, CreatedAt: refTime(),
	})

	h := NewHealthEvaluator(logger.NewNop(), config.DefaultThresholds().StoreHealth, 42)
	results := h.Evaluate(stores, orders)

	require.Len(t, results, 1)
	r := results[0]
	// zero orders yesterday against a positive baseline is a full drop
	assert.InDelta(t, -100.0, r.Signals.OrderDeviationPercent, 0.01)
	assert.NotEqual(t, contracts.HealthHealthy, r.Status)
	assert.Equal(t, contracts.EvaluationTime(refKey), r.LastEvaluatedAt)
}

func TestHealthEvaluatorDeterministicFailureRate(t *testing.T) {
	h := NewHealthEvaluator(logger.NewNop(), config.DefaultThresholds().StoreHealth, 42)
	a := h.failureRate("store_1")
	b := h.failureRate("store_1")
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, 0.0)
	assert.LessOrEqual(t, a, 0.10)
}

func TestPartnerInsightsCommissionCap(t *testing.T) {
	com := commission.Result{
		Summaries: []contracts.PartnerSummary{
			{PartnerID: contracts.PartnerA, TotalOrders: 10, TotalGrossRevenue: 1000, AverageCommissionPercent: 22, NetRevenue: 780},
			{PartnerID: contracts.DirectKey, TotalOrders: 10, TotalGrossRevenue: 1000, NetRevenue: 1000},
		},
	}
	out := PartnerInsights(config.DefaultThresholds().Partner, com, refKey)

	require.Len(t, out, 1)
	assert.Equal(t, "PARTNER_UNDERPERFORMING", out[0].Type)
	assert.Equal(t, contracts.PartnerA, out[0].PartnerID)
	assert.Equal(t, contracts.SeverityWarning, out[0].Severity)
}

func TestPartnerInsightsCriticalWhenBothConditions(t *testing.T) {
	com := commission.Result{
		Summaries: []contracts.PartnerSummary{
			{PartnerID: contracts.PartnerB, TotalOrders: 600, TotalGrossRevenue: 60000, AverageCommissionPercent: 21, NetRevenue: 47400},
		},
	}
	out := PartnerInsights(config.DefaultThresholds().Partner, com, refKey)

	require.Len(t, out, 1)
	assert.Equal(t, contracts.SeverityCritical, out[0].Severity)
}

func TestPartnerInsightsSkipsDirect(t *testing.T) {
	com := commission.Result{
		Summaries: []contracts.PartnerSummary{
			// numbers that would breach every rule if DIRECT were evaluated
			{PartnerID: contracts.DirectKey, TotalOrders: 900, TotalGrossRevenue: 10000, AverageCommissionPercent: 30, NetRevenue: 100},
		},
	}
	assert.Empty(t, PartnerInsights(config.DefaultThresholds().Partner, com, refKey))
}

func TestWorkforceInsightsRules(t *testing.T) {
	metrics := []contracts.ShiftMetrics{
		{StoreID: "store_1", Shift: contracts.ShiftMorning, Utilization: 1.5},
		{StoreID: "store_1", Shift: contracts.ShiftEvening, Utilization: 1.2},
		{StoreID: "store_2", Shift: contracts.ShiftMorning, Utilization: 0.3},
		{StoreID: "store_2", Shift: contracts.ShiftEvening, Utilization: 0.9},
	}
	out := WorkforceInsights(config.DefaultThresholds().Workforce, metrics, refKey)

	types := map[string]int{}
	for _, i := range out {
		types[i.Type]++
	}
	// store_1: critical shortage (1.5 > 1.3), warning shortage (1.2),
	// productivity risk (both halves over 1.1); store_2: overstaffed
	assert.Equal(t, 2, types["STAFF_SHORTAGE"])
	assert.Equal(t, 1, types["PRODUCTIVITY_RISK"])
	assert.Equal(t, 1, types["OVERSTAFFING"])

	for _, i := range out {
		if i.Type == "STAFF_SHORTAGE" && i.Message[:7] == "Morning" {
			assert.Equal(t, contracts.SeverityCritical, i.Severity)
		}
	}
}

func TestWorkforceInsightsZeroUtilizationNotOverstaffed(t *testing.T) {
	metrics := []contracts.ShiftMetrics{
		{StoreID: "store_1", Shift: contracts.ShiftMorning, Utilization: 0},
	}
	assert.Empty(t, WorkforceInsights(config.DefaultThresholds().Workforce, metrics, refKey))
}

func TestFinanceInsightsMarginLeakage(t *testing.T) {
	in := FinanceInputs{
		Profit: profit.Result{
			Summary: contracts.ProfitSummary{OverallMarginPercent: 20},
			Stores: []contracts.StoreProfitability{
				{StoreID: "store_ok", GrossRevenue: 100, Profit: 25, MarginPercent: 25},
				{StoreID: "store_warn", GrossRevenue: 100, Profit: 12, MarginPercent: 12},
				{StoreID: "store_crit", GrossRevenue: 100, Profit: 5, MarginPercent: 5},
			},
		},
	}
	out := FinanceInsights(config.DefaultThresholds().Finance, in, refKey)

	var warn, crit int
	for _, i := range out {
		if i.Type != "MARGIN_LEAKAGE" {
			continue
		}
		switch i.Severity {
		case contracts.SeverityWarning:
			warn++
			assert.Equal(t, "store_warn", i.StoreID)
		case contracts.SeverityCritical:
			crit++
			assert.Equal(t, "store_crit", i.StoreID)
		}
	}
	assert.Equal(t, 1, warn)
	assert.Equal(t, 1, crit)
}

func TestFinanceInsightsNegativeProfit(t *testing.T) {
	in := FinanceInputs{
		Profit: profit.Result{
			Summary: contracts.ProfitSummary{OverallMarginPercent: 0},
			Stores:  []contracts.StoreProfitability{{StoreID: "store_1", GrossRevenue: 100, Profit: -50, MarginPercent: -50}},
			Brands:  []contracts.BrandProfitability{{BrandID: "brand_1", Profit: -10}},
		},
	}
	out := FinanceInsights(config.DefaultThresholds().Finance, in, refKey)

	var entities []string
	for _, i := range out {
		if i.Type == "NEGATIVE_PROFIT" {
			require.Equal(t, contracts.SeverityCritical, i.Severity)
			entities = append(entities, i.EntityType)
		}
	}
	assert.ElementsMatch(t, []string{"STORE", "BRAND"}, entities)
}

func TestFinanceInsightsChurnRiskScenario(t *testing.T) {
	// customer last ordered 20 days before the reference date with
	// lifetime value over 500: a churn insight must name their store
	last := refTime().AddDate(0, 0, -20)
	orders := []contracts.OrderWithCommission{
		{NormalizedOrder: contracts.NormalizedOrder{OrderID: "o1", StoreID: "store_a", CustomerID: "cust_vip", TotalAmount: 300, CreatedAt: last.AddDate(0, 0, -30)}},
		{NormalizedOrder: contracts.NormalizedOrder{OrderID: "o2", StoreID: "store_b", CustomerID: "cust_vip", TotalAmount: 400, CreatedAt: last}},
		// active customer, never flagged
		{NormalizedOrder: contracts.NormalizedOrder{OrderID: "o3", StoreID: "store_a", CustomerID: "cust_fresh", TotalAmount: 900, CreatedAt: refTime()}},
		// inactive but low value
		{NormalizedOrder: contracts.NormalizedOrder{OrderID: "o4", StoreID: "store_a", CustomerID: "cust_small", TotalAmount: 100, CreatedAt: last}},
	}
	in := FinanceInputs{Orders: orders}
	out := FinanceInsights(config.DefaultThresholds().Finance, in, refKey)

	var churn []contracts.Insight
	for _, i := range out {
		if i.Type == "CHURN_RISK" {
			churn = append(churn, i)
		}
	}
	require.Len(t, churn, 1)
	assert.Equal(t, "cust_vip", churn[0].CustomerID)
	// references the store of the most recent order
	assert.Equal(t, "store_b", churn[0].StoreID)
	assert.Equal(t, contracts.SeverityWarning, churn[0].Severity)
}

func TestFinanceInsightsDiscountMisuse(t *testing.T) {
	in := FinanceInputs{
		Financials: []contracts.OrderFinancial{
			{OrderID: "o1", StoreID: "store_a", HasDiscount: true},
			{OrderID: "o2", StoreID: "store_a", HasDiscount: true},
			{OrderID: "o3", StoreID: "store_a"},
		},
		Orders: []contracts.OrderWithCommission{
			// one-off discounted customer: flagged
			{NormalizedOrder: contracts.NormalizedOrder{OrderID: "o1", StoreID: "store_a", CustomerID: "cust_one", TotalAmount: 100, CreatedAt: refTime()}},
			// repeat customer with a discount: not flagged
			{NormalizedOrder: contracts.NormalizedOrder{OrderID: "o2", StoreID: "store_a", CustomerID: "cust_two", TotalAmount: 100, CreatedAt: refTime()}},
			{NormalizedOrder: contracts.NormalizedOrder{OrderID: "o3", StoreID: "store_a", CustomerID: "cust_two", TotalAmount: 100, CreatedAt: refTime()}},
		},
	}
	out := FinanceInsights(config.DefaultThresholds().Finance, in, refKey)

	var misuse []contracts.Insight
	for _, i := range out {
		if i.Type == "DISCOUNT_MISUSE" {
			misuse = append(misuse, i)
		}
	}
	require.Len(t, misuse, 1)
	assert.Equal(t, "cust_one", misuse[0].CustomerID)
	assert.Equal(t, "store_a", misuse[0].StoreID)
}

func TestOperatingHoursSpan(t *testing.T) {
	assert.Equal(t, 14.0, operatingHoursSpan("08:00-22:00"))
	assert.Equal(t, 9.0, operatingHoursSpan("09:00-18:00"))
	assert.Equal(t, 14.0, operatingHoursSpan("garbage"))
}

func TestRoundToUnit(t *testing.T) {
	assert.Equal(t, 3.0, roundToUnit(2.6, "pcs"))
	assert.Equal(t, 2.57, roundToUnit(2.567, "kg"))
	assert.Equal(t, 0.0, roundToUnit(-4, "kg"))
}
