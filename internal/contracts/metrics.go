package contracts

// Trend classifies the last three daily values of a metric.
// Strictly monotonic comparison; fewer than three points is stable.
type Trend string

const (
	TrendIncrease Trend = "increase"
	TrendDecline  Trend = "decline"
	TrendStable   Trend = "stable"
)

// WindowAggregate summarizes the orders of one calendar-day window.
type WindowAggregate struct {
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	Commission   float64 `json:"commission"`
	NetMargin    float64 `json:"netMargin"`
	NetMarginPct float64 `json:"netMarginPct"`
	RepeatRate   float64 `json:"repeatRate"`
	OrderCount   int     `json:"orderCount"`
}

// DailyPoint is one day of the 7-day trend series.
type DailyPoint struct {
	Date          string  `json:"date"`
	Revenue       float64 `json:"revenue"`
	MarginPct     float64 `json:"marginPct"`
	RepeatPct     float64 `json:"repeatPct"`
	CommissionPct float64 `json:"commissionPct"`
}

// WoWDeltas holds week-over-week changes between the prior window
// (days -14..-8) and the current window (days -7..-1). The most recent
// day is deliberately excluded from both halves.
type WoWDeltas struct {
	MarginDeltaPct     float64 `json:"marginDeltaPct"`
	RepeatDeltaPct     float64 `json:"repeatDeltaPct"`
	CommissionDeltaPct float64 `json:"commissionDeltaPct"`
	RevenueDeltaPct    float64 `json:"revenueDeltaPct"`
}

// TrendSet carries the 3-day trend classification per headline metric.
type TrendSet struct {
	Revenue       Trend `json:"revenue"`
	MarginPct     Trend `json:"marginPct"`
	RepeatRate    Trend `json:"repeatRate"`
	CommissionPct Trend `json:"commissionPct"`
}

// StoreMetrics is the per-store breakdown of the snapshot.
type StoreMetrics struct {
	StoreID              string          `json:"storeId"`
	StoreName            string          `json:"storeName"`
	Yesterday            WindowAggregate `json:"yesterday"`
	Last7                WindowAggregate `json:"last7"`
	Last14               WindowAggregate `json:"last14"`
	RepeatRateDelta7vs14 float64         `json:"repeatRateDelta7vs14"`
}

// MetricsSnapshot is the full time-series state for one boot. The
// reference date is the maximum order date in the dataset, never
// wall-clock time.
type MetricsSnapshot struct {
	ReferenceDate string          `json:"referenceToday"`
	Yesterday     WindowAggregate `json:"yesterday"`
	Last7         WindowAggregate `json:"last7"`
	Last14        WindowAggregate `json:"last14"`
	WoW           WoWDeltas       `json:"wow"`
	DailyTrend    []DailyPoint    `json:"dailyTrend"`
	Trend3Day     TrendSet        `json:"trend3Day"`
	PerStore      []StoreMetrics  `json:"perStore"`
}
