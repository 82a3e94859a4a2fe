package metrics

import (
	"github.com/grovyn/core-platform/internal/commission"
	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/pkg/logger"
)

// Engine derives the time-series view. Everything is computed from the
// order book; nothing is hardcoded.
type Engine struct {
	logger *logger.Logger

	commission commission.Result
	finByOrder map[string]contracts.OrderFinancial
	refToday   string
}

// NewEngine binds the engine to the stage outputs it reads from. The
// reference "today" is the maximum order date, so windows never depend
// on wall-clock time.
func NewEngine(log *logger.Logger, com commission.Result, financials []contracts.OrderFinancial) *Engine {
	finByOrder := make(map[string]contracts.OrderFinancial, len(financials))
	for _, f := range financials {
		finByOrder[f.OrderID] = f
	}
	ref := ""
	for _, o := range com.Orders {
		if key := o.DateKey(); key > ref {
			ref = key
		}
	}
	return &Engine{
		logger:     log,
		commission: com,
		finByOrder: finByOrder,
		refToday:   ref,
	}
}

// ReferenceToday is the deterministic "today" of this boot.
func (e *Engine) ReferenceToday() string {
	return e.refToday
}

func (e *Engine) aggregate(orders []contracts.OrderWithCommission) contracts.WindowAggregate {
	var revenue, commissionPaid, netRevenue float64
	customerOrders := map[string]int{}
	for _, o := range orders {
		revenue += o.TotalAmount
		commissionPaid += o.CommissionAmount
		if f, ok := e.finByOrder[o.OrderID]; ok {
			netRevenue += f.NetRevenue
		}
		customerOrders[o.CustomerID]++
	}

	// repeat rate = share of orders placed by customers with 2+ orders
	// inside the window
	repeatOrders := 0
	for _, n := range customerOrders {
		if n >= 2 {
			repeatOrders += n
		}
	}
	repeatRate := 0.0
	if len(orders) > 0 {
		repeatRate = contracts.Round2(float64(repeatOrders) / float64(len(orders)) * 100)
	}
	netMarginPct := 0.0
	if revenue > 0 {
		netMarginPct = contracts.Round2(netRevenue / revenue * 100)
	}
	return contracts.WindowAggregate{
		Revenue:      contracts.Round2(revenue),
		Cost:         contracts.Round2(revenue - netRevenue),
		Commission:   contracts.Round2(commissionPaid),
		NetMargin:    contracts.Round2(netRevenue),
		NetMarginPct: netMarginPct,
		RepeatRate:   repeatRate,
		OrderCount:   len(orders),
	}
}

// AggregateRange aggregates an inclusive date-key window.
func (e *Engine) AggregateRange(fromKey, toKey string) contracts.WindowAggregate {
	return e.aggregate(e.commission.OrdersInDateRange(fromKey, toKey))
}

// AggregateStoreRange is AggregateRange filtered to one store.
func (e *Engine) AggregateStoreRange(storeID, fromKey, toKey string) contracts.WindowAggregate {
	var filtered []contracts.OrderWithCommission
	for _, o := range e.commission.OrdersInDateRange(fromKey, toKey) {
		if o.StoreID == storeID {
			filtered = append(filtered, o)
		}
	}
	return e.aggregate(filtered)
}

// DailyTrend is the last 7 days, oldest first.
func (e *Engine) DailyTrend() []contracts.DailyPoint {
	out := make([]contracts.DailyPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := contracts.AddDays(e.refToday, -i)
		agg := e.AggregateRange(day, day)
		commissionPct := 0.0
		if agg.Revenue > 0 {
			commissionPct = contracts.Round2(agg.Commission / agg.Revenue * 100)
		}
		out = append(out, contracts.DailyPoint{
			Date:          day,
			Revenue:       agg.Revenue,
			MarginPct:     agg.NetMarginPct,
			RepeatPct:     agg.RepeatRate,
			CommissionPct: commissionPct,
		})
	}
	return out
}

// classify3Day reads the last three values of a series. Strictly
// monotonic runs classify; anything else is stable.
func classify3Day(values []float64) contracts.Trend {
	if len(values) < 3 {
		return contracts.TrendStable
	}
	last := values[len(values)-3:]
	if last[0] < last[1] && last[1] < last[2] {
		return contracts.TrendIncrease
	}
	if last[0] > last[1] && last[1] > last[2] {
		return contracts.TrendDecline
	}
	return contracts.TrendStable
}

func trendSet(daily []contracts.DailyPoint) contracts.TrendSet {
	pluck := func(get func(contracts.DailyPoint) float64) []float64 {
		out := make([]float64, len(daily))
		for i, d := range daily {
			out[i] = get(d)
		}
		return out
	}
	return contracts.TrendSet{
		Revenue:       classify3Day(pluck(func(d contracts.DailyPoint) float64 { return d.Revenue })),
		MarginPct:     classify3Day(pluck(func(d contracts.DailyPoint) float64 { return d.MarginPct })),
		RepeatRate:    classify3Day(pluck(func(d contracts.DailyPoint) float64 { return d.RepeatPct })),
		CommissionPct: classify3Day(pluck(func(d contracts.DailyPoint) float64 { return d.CommissionPct })),
	}
}

// wow compares the prior week (days -14..-8) against the current week
// (days -7..-1). The reference day itself sits in neither half.
func (e *Engine) wow() contracts.WoWDeltas {
	prior := e.AggregateRange(contracts.AddDays(e.refToday, -14), contracts.AddDays(e.refToday, -8))
	current := e.AggregateRange(contracts.AddDays(e.refToday, -7), contracts.AddDays(e.refToday, -1))

	priorCommissionPct := 0.0
	if prior.Revenue > 0 {
		priorCommissionPct = prior.Commission / prior.Revenue * 100
	}
	currentCommissionPct := 0.0
	if current.Revenue > 0 {
		currentCommissionPct = current.Commission / current.Revenue * 100
	}
	revenueDelta := 0.0
	if prior.Revenue > 0 {
		revenueDelta = contracts.Round2((current.Revenue - prior.Revenue) / prior.Revenue * 100)
	}
	return contracts.WoWDeltas{
		MarginDeltaPct:     contracts.Round2(current.NetMarginPct - prior.NetMarginPct),
		RepeatDeltaPct:     contracts.Round2(current.RepeatRate - prior.RepeatRate),
		CommissionDeltaPct: contracts.Round2(currentCommissionPct - priorCommissionPct),
		RevenueDeltaPct:    revenueDelta,
	}
}

// Snapshot computes the full time-series state.
func (e *Engine) Snapshot(stores []contracts.Store) contracts.MetricsSnapshot {
	today := e.refToday
	yesterdayKey := contracts.AddDays(today, -1)
	day7Start := contracts.AddDays(today, -7)
	day14Start := contracts.AddDays(today, -14)

	daily := e.DailyTrend()
	perStore := make([]contracts.StoreMetrics, 0, len(stores))
	for _, store := range stores {
		s7 := e.AggregateStoreRange(store.ID, day7Start, today)
		s14 := e.AggregateStoreRange(store.ID, day14Start, today)
		perStore = append(perStore, contracts.StoreMetrics{
			StoreID:              store.ID,
			StoreName:            store.Name,
			Yesterday:            e.AggregateStoreRange(store.ID, yesterdayKey, yesterdayKey),
			Last7:                s7,
			Last14:               s14,
			RepeatRateDelta7vs14: contracts.Round2(s7.RepeatRate - s14.RepeatRate),
		})
	}

	return contracts.MetricsSnapshot{
		ReferenceDate: today,
		Yesterday:     e.AggregateRange(yesterdayKey, yesterdayKey),
		Last7:         e.AggregateRange(day7Start, today),
		Last14:        e.AggregateRange(day14Start, today),
		WoW:           e.wow(),
		DailyTrend:    daily,
		Trend3Day:     trendSet(daily),
		PerStore:      perStore,
	}
}
