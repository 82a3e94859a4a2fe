package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/internal/profit"
	"github.com/grovyn/core-platform/pkg/config"
)

// FinanceInputs collects what the finance rules read.
type FinanceInputs struct {
	Profit     profit.Result
	Financials []contracts.OrderFinancial
	Orders     []contracts.OrderWithCommission
}

// FinanceInsights runs margin leakage, negative profit, low item
// margin, discount misuse and churn risk. The baseline margin is the
// network-wide overall margin.
func FinanceInsights(rules config.FinanceThresholds, in FinanceInputs, refKey string) []contracts.Insight {
	evaluatedAt := contracts.EvaluationTime(refKey)
	baseline := in.Profit.Summary.OverallMarginPercent

	var out []contracts.Insight
	for _, s := range in.Profit.Stores {
		switch {
		case s.MarginPercent < baseline-rules.MarginLeakageCrit:
			out = append(out, contracts.Insight{
				Type:       "MARGIN_LEAKAGE",
				Severity:   contracts.SeverityCritical,
				EntityType: "STORE",
				EntityID:   s.StoreID,
				StoreID:    s.StoreID,
				Message: fmt.Sprintf(
					"Store margin (%.1f%%) is more than %.0f%% below baseline (%.1f%%).",
					s.MarginPercent, rules.MarginLeakageCrit, baseline),
				EvaluatedAt: evaluatedAt,
			})
		case s.MarginPercent < baseline-rules.MarginLeakagePoints:
			out = append(out, contracts.Insight{
				Type:       "MARGIN_LEAKAGE",
				Severity:   contracts.SeverityWarning,
				EntityType: "STORE",
				EntityID:   s.StoreID,
				StoreID:    s.StoreID,
				Message: fmt.Sprintf(
					"Store margin (%.1f%%) is more than %.0f%% below baseline (%.1f%%).",
					s.MarginPercent, rules.MarginLeakagePoints, baseline),
				EvaluatedAt: evaluatedAt,
			})
		}
		if s.Profit < 0 {
			out = append(out, contracts.Insight{
				Type:        "NEGATIVE_PROFIT",
				Severity:    contracts.SeverityCritical,
				EntityType:  "STORE",
				EntityID:    s.StoreID,
				StoreID:     s.StoreID,
				Message:     fmt.Sprintf("Store profit is negative (%.2f).", s.Profit),
				EvaluatedAt: evaluatedAt,
			})
		}
	}

	for _, b := range in.Profit.Brands {
		if b.Profit < 0 {
			out = append(out, contracts.Insight{
				Type:        "NEGATIVE_PROFIT",
				Severity:    contracts.SeverityCritical,
				EntityType:  "BRAND",
				EntityID:    b.BrandID,
				BrandID:     b.BrandID,
				Message:     fmt.Sprintf("Brand profit is negative (%.2f).", b.Profit),
				EvaluatedAt: evaluatedAt,
			})
		}
	}

	for _, m := range in.Profit.Items {
		if m.Revenue > 0 && m.MarginPercent < rules.LowItemMarginPercent {
			out = append(out, contracts.Insight{
				Type:       "LOW_ITEM_MARGIN",
				Severity:   contracts.SeverityInfo,
				EntityType: "ITEM",
				EntityID:   m.ItemID,
				ItemID:     m.ItemID,
				Message: fmt.Sprintf(
					"Item contribution margin (%.1f%%) is below %.0f%%.",
					m.MarginPercent, rules.LowItemMarginPercent),
				EvaluatedAt: evaluatedAt,
			})
		}
	}

	out = append(out, discountMisuse(in, evaluatedAt)...)
	out = append(out, churnRisk(rules, in.Orders, refKey, evaluatedAt)...)
	return out
}

// discountMisuse flags discounted orders whose customer never came
// back: the discount bought no repeat business.
func discountMisuse(in FinanceInputs, evaluatedAt time.Time) []contracts.Insight {
	discounted := map[string]bool{}
	for _, f := range in.Financials {
		if f.HasDiscount {
			discounted[f.OrderID] = true
		}
	}

	byCustomer := map[string][]contracts.OrderWithCommission{}
	for _, o := range in.Orders {
		byCustomer[o.CustomerID] = append(byCustomer[o.CustomerID], o)
	}
	customerIDs := make([]string, 0, len(byCustomer))
	for id := range byCustomer {
		customerIDs = append(customerIDs, id)
	}
	sort.Strings(customerIDs)

	var out []contracts.Insight
	for _, customerID := range customerIDs {
		orders := byCustomer[customerID]
		if len(orders) != 1 || !discounted[orders[0].OrderID] {
			continue
		}
		out = append(out, contracts.Insight{
			Type:       "DISCOUNT_MISUSE",
			Severity:   contracts.SeverityWarning,
			EntityType: "STORE",
			EntityID:   orders[0].StoreID,
			StoreID:    orders[0].StoreID,
			CustomerID: customerID,
			Message: fmt.Sprintf(
				"Discount applied to order %s but customer has no repeat orders (no uplift).",
				orders[0].OrderID),
			EvaluatedAt: evaluatedAt,
		})
	}
	return out
}

// churnRisk flags high-value customers gone quiet. The insight
// references the store of the customer's most recent order.
func churnRisk(rules config.FinanceThresholds, orders []contracts.OrderWithCommission, refKey string, evaluatedAt time.Time) []contracts.Insight {
	type activity struct {
		ltv         float64
		lastKey     string
		lastStoreID string
	}
	byCustomer := map[string]*activity{}
	for _, o := range orders {
		a, ok := byCustomer[o.CustomerID]
		if !ok {
			a = &activity{}
			byCustomer[o.CustomerID] = a
		}
		a.ltv += o.TotalAmount
		if key := o.DateKey(); key > a.lastKey {
			a.lastKey = key
			a.lastStoreID = o.StoreID
		}
	}

	customerIDs := make([]string, 0, len(byCustomer))
	for id := range byCustomer {
		customerIDs = append(customerIDs, id)
	}
	sort.Strings(customerIDs)

	cutoff := contracts.AddDays(refKey, -rules.ChurnInactiveDays)
	var out []contracts.Insight
	for _, customerID := range customerIDs {
		a := byCustomer[customerID]
		if a.lastKey >= cutoff || a.ltv < rules.ChurnLTV {
			continue
		}
		out = append(out, contracts.Insight{
			Type:       "CHURN_RISK",
			Severity:   contracts.SeverityWarning,
			StoreID:    a.lastStoreID,
			CustomerID: customerID,
			Message: fmt.Sprintf(
				"High-value customer (lifetime value %.2f) inactive since %s. Win-back offer recommended.",
				a.ltv, a.lastKey),
			EvaluatedAt: evaluatedAt,
		})
	}
	return out
}
