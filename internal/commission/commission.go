package commission

import (
	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/pkg/logger"
)

// Per-partner commission rates. Fixed set; tune here.
var partnerRates = map[string]float64{
	contracts.PartnerA: 0.15,
	contracts.PartnerB: 0.18,
}

// bucketOrder fixes the summary ordering across boots.
var bucketOrder = []string{contracts.PartnerA, contracts.PartnerB, contracts.DirectKey}

// Totals aggregates gross and commission over a subset of orders.
type Totals struct {
	TotalGross        float64 `json:"totalGross"`
	TotalCommission   float64 `json:"totalCommission"`
	CommissionPercent float64 `json:"commissionPercent"`
}

// Result is the commission stage output: every order enriched with its
// commission plus the per-partner rollup.
type Result struct {
	Orders    []contracts.OrderWithCommission
	Summaries []contracts.PartnerSummary
}

// Engine computes per-order commission and the per-partner summaries.
// This is the economic truth for margin and finance; nothing downstream
// recomputes a commission.
type Engine struct {
	logger *logger.Logger
}

func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Rate returns the commission rate for a partner bucket. DIRECT and
// unknown partners pay nothing.
func Rate(partnerID string) float64 {
	return partnerRates[partnerID]
}

// orderCommission is the per-order rule. DIRECT pays zero; an unknown
// partner id degrades to zero rather than failing the boot.
func orderCommission(o contracts.NormalizedOrder) float64 {
	if o.Channel == contracts.ChannelDirect {
		return 0
	}
	rate, ok := partnerRates[o.PartnerID]
	if !ok {
		return 0
	}
	return contracts.Round2(o.TotalAmount * rate)
}

// Run enriches the normalized orders and builds partner summaries.
func (e *Engine) Run(orders []contracts.NormalizedOrder) Result {
	e.logger.WithFields(map[string]interface{}{
		"partner_a": partnerRates[contracts.PartnerA],
		"partner_b": partnerRates[contracts.PartnerB],
	}).Info("Commission rates in effect")

	enriched := make([]contracts.OrderWithCommission, 0, len(orders))
	type agg struct {
		orders     int
		gross      float64
		commission float64
	}
	byBucket := map[string]*agg{}
	for _, o := range orders {
		oc := contracts.OrderWithCommission{
			NormalizedOrder:  o,
			CommissionAmount: orderCommission(o),
		}
		enriched = append(enriched, oc)

		key := o.PartnerBucket()
		a, ok := byBucket[key]
		if !ok {
			a = &agg{}
			byBucket[key] = a
		}
		a.orders++
		a.gross += oc.TotalAmount
		a.commission += oc.CommissionAmount
	}

	summaries := make([]contracts.PartnerSummary, 0, len(byBucket))
	for _, key := range bucketOrder {
		a, ok := byBucket[key]
		if !ok {
			continue
		}
		gross := contracts.Round2(a.gross)
		paid := contracts.Round2(a.commission)
		avgPct := 0.0
		if gross > 0 {
			avgPct = contracts.Round2(paid / gross * 100)
		}
		summaries = append(summaries, contracts.PartnerSummary{
			PartnerID:                key,
			TotalOrders:              a.orders,
			TotalGrossRevenue:        gross,
			TotalCommissionPaid:      paid,
			AverageCommissionPercent: avgPct,
			NetRevenue:               contracts.Round2(gross - paid),
		})
	}

	return Result{Orders: enriched, Summaries: summaries}
}

// BaselinePercentByPartner exposes the all-time average commission
// percent per bucket for the insight rules.
func (r Result) BaselinePercentByPartner() map[string]float64 {
	out := make(map[string]float64, len(r.Summaries))
	for _, s := range r.Summaries {
		out[s.PartnerID] = s.AverageCommissionPercent
	}
	return out
}

// TotalsFor sums gross and commission over an arbitrary order subset,
// such as "this week".
func TotalsFor(orders []contracts.OrderWithCommission) Totals {
	var t Totals
	for _, o := range orders {
		t.TotalGross += o.TotalAmount
		t.TotalCommission += o.CommissionAmount
	}
	if t.TotalGross > 0 {
		t.CommissionPercent = t.TotalCommission / t.TotalGross * 100
	}
	return t
}

// OrdersInDateRange filters by inclusive date-key range.
func (r Result) OrdersInDateRange(fromKey, toKey string) []contracts.OrderWithCommission {
	var out []contracts.OrderWithCommission
	for _, o := range r.Orders {
		key := o.DateKey()
		if key >= fromKey && key <= toKey {
			out = append(out, o)
		}
	}
	return out
}

// OrdersThisWeek returns the orders of the ISO week containing the
// reference day. Monday starts the week.
func (r Result) OrdersThisWeek(refKey string) []contracts.OrderWithCommission {
	t, err := contracts.ParseDateKey(refKey)
	if err != nil {
		return nil
	}
	weekday := int(t.Weekday())
	mondayOffset := 1 - weekday
	if weekday == 0 {
		mondayOffset = -6
	}
	monday := t.AddDate(0, 0, mondayOffset)
	sunday := monday.AddDate(0, 0, 6)
	return r.OrdersInDateRange(contracts.DateKey(monday), contracts.DateKey(sunday))
}
