package finance

import (
	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/pkg/logger"
)

// Discount simulation: every 10th order in the seeded sequence gets a
// flat 10% discount. The index is the position in the enriched order
// slice, not the replay position.
const (
	discountOrderModulo = 10
	discountRate        = 0.1
)

// Result is the financial truth per order plus per-channel payouts.
type Result struct {
	Financials []contracts.OrderFinancial
	// Payouts maps a partner bucket to the sum of its net revenue.
	Payouts map[string]float64
}

// Engine derives gross, commission, discount and net per order. No
// payment gateways; payouts are a simulation.
type Engine struct {
	logger *logger.Logger
}

func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Run builds order-level financials and per-bucket payouts.
func (e *Engine) Run(orders []contracts.OrderWithCommission) Result {
	e.logger.Info("Discount simulation: every 10th order gets a 10% discount")

	financials := make([]contracts.OrderFinancial, 0, len(orders))
	payouts := map[string]float64{}
	for i, o := range orders {
		gross := o.TotalAmount
		hasDiscount := i%discountOrderModulo == 0
		discount := 0.0
		if hasDiscount {
			discount = contracts.Round2(gross * discountRate)
		}
		net := contracts.Round2(gross - o.CommissionAmount - discount)

		financials = append(financials, contracts.OrderFinancial{
			OrderID:        o.OrderID,
			StoreID:        o.StoreID,
			BrandID:        o.BrandID,
			GrossRevenue:   gross,
			CommissionCost: o.CommissionAmount,
			DiscountCost:   discount,
			NetRevenue:     net,
			HasDiscount:    hasDiscount,
		})
		payouts[o.PartnerBucket()] += net
	}
	for k, v := range payouts {
		payouts[k] = contracts.Round2(v)
	}

	return Result{Financials: financials, Payouts: payouts}
}

// Summary sums the order financials for the summary API.
func (r Result) Summary() contracts.FinanceSummary {
	var gross, net, commission, discount float64
	for _, f := range r.Financials {
		gross += f.GrossRevenue
		net += f.NetRevenue
		commission += f.CommissionCost
		discount += f.DiscountCost
	}
	return contracts.FinanceSummary{
		TotalGrossRevenue:   contracts.Round2(gross),
		TotalNetRevenue:     contracts.Round2(net),
		TotalCommissionCost: contracts.Round2(commission),
		TotalDiscountCost:   contracts.Round2(discount),
	}
}
