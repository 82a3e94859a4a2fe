package profit

import (
	"sort"

	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/pkg/logger"
)

// Labor cost model: per shift, utilization × base rate × shift hours.
const (
	baseHourlyRate = 10.0
	shiftHours     = 7.0
)

// ingredientUnitCost prices one unit of each catalog ingredient.
var ingredientUnitCost = map[string]float64{
	"ing_chicken":    5,
	"ing_rice":       2,
	"ing_oil":        3,
	"ing_spices":     8,
	"ing_packaging":  0.5,
	"ing_vegetables": 2,
	"ing_sauce":      4,
	"ing_flour":      1.5,
	"ing_dairy":      2,
	"ing_lentils":    3,
}

// UnitCost exposes one ingredient's price for the intelligence rules.
func UnitCost(ingredientID string) float64 {
	return ingredientUnitCost[ingredientID]
}

// Inputs collects everything the engine attributes cost from. All of
// it comes out of earlier stages; nothing is recomputed here.
type Inputs struct {
	Financials    []contracts.OrderFinancial
	Summary       contracts.FinanceSummary
	Replay        []contracts.ReplayOrder
	ItemsByBrand  map[string][]contracts.Item
	BOM           func(itemID string) []contracts.BOMLine
	TotalConsumed map[string]map[string]float64
	ShiftMetrics  []contracts.ShiftMetrics
}

// Result holds store, brand and item profitability for one boot.
type Result struct {
	Stores  []contracts.StoreProfitability
	Brands  []contracts.BrandProfitability
	Items   []contracts.ItemMargin
	Summary contracts.ProfitSummary
}

// Engine attributes cost to stores, brands and items. Every number is
// traceable to a stage output.
type Engine struct {
	logger *logger.Logger
}

func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Run computes the full profitability picture.
func (e *Engine) Run(in Inputs) Result {
	e.logger.WithFields(map[string]interface{}{
		"base_hourly_rate": baseHourlyRate,
		"shift_hours":      shiftHours,
	}).Info("Labor cost model in effect")

	stores := e.storeProfitability(in)
	res := Result{
		Stores: stores,
		Brands: e.brandProfitability(in, stores),
		Items:  e.itemMargins(in),
	}

	var totalProfit float64
	for _, s := range stores {
		totalProfit += s.Profit
	}
	overall := 0.0
	if in.Summary.TotalGrossRevenue > 0 {
		overall = contracts.Round2(totalProfit / in.Summary.TotalGrossRevenue * 100)
	}
	res.Summary = contracts.ProfitSummary{
		FinanceSummary:       in.Summary,
		TotalProfit:          contracts.Round2(totalProfit),
		OverallMarginPercent: overall,
	}
	return res
}

func storeIngredientCost(consumed map[string]float64) float64 {
	var cost float64
	for ingID, qty := range consumed {
		cost += qty * ingredientUnitCost[ingID]
	}
	return contracts.Round2(cost)
}

func storeLaborCost(storeID string, metrics []contracts.ShiftMetrics) float64 {
	var cost float64
	for _, m := range metrics {
		if m.StoreID != storeID {
			continue
		}
		cost += m.Utilization * baseHourlyRate * shiftHours
	}
	return contracts.Round2(cost)
}

func (e *Engine) storeProfitability(in Inputs) []contracts.StoreProfitability {
	type rev struct{ gross, net float64 }
	byStore := map[string]*rev{}
	var order []string
	for _, f := range in.Financials {
		r, ok := byStore[f.StoreID]
		if !ok {
			r = &rev{}
			byStore[f.StoreID] = r
			order = append(order, f.StoreID)
		}
		r.gross += f.GrossRevenue
		r.net += f.NetRevenue
	}

	out := make([]contracts.StoreProfitability, 0, len(order))
	for _, storeID := range order {
		r := byStore[storeID]
		ingredientCost := storeIngredientCost(in.TotalConsumed[storeID])
		laborCost := storeLaborCost(storeID, in.ShiftMetrics)
		profit := contracts.Round2(r.net - ingredientCost - laborCost)
		margin := 0.0
		if r.gross > 0 {
			margin = contracts.Round2(profit / r.gross * 100)
		}
		out = append(out, contracts.StoreProfitability{
			StoreID:        storeID,
			GrossRevenue:   contracts.Round2(r.gross),
			NetRevenue:     contracts.Round2(r.net),
			IngredientCost: ingredientCost,
			LaborCost:      laborCost,
			Profit:         profit,
			MarginPercent:  margin,
		})
	}
	return out
}

// brandProfitability allocates each store's ingredient and labor cost
// to its brands by gross revenue share. A brand never carries more cost
// than its stores did.
func (e *Engine) brandProfitability(in Inputs, stores []contracts.StoreProfitability) []contracts.BrandProfitability {
	storeByID := make(map[string]contracts.StoreProfitability, len(stores))
	for _, s := range stores {
		storeByID[s.StoreID] = s
	}

	type agg struct {
		gross, net float64
		byStore    map[string]float64
	}
	byBrand := map[string]*agg{}
	var order []string
	for _, f := range in.Financials {
		a, ok := byBrand[f.BrandID]
		if !ok {
			a = &agg{byStore: map[string]float64{}}
			byBrand[f.BrandID] = a
			order = append(order, f.BrandID)
		}
		a.gross += f.GrossRevenue
		a.net += f.NetRevenue
		a.byStore[f.StoreID] += f.GrossRevenue
	}

	out := make([]contracts.BrandProfitability, 0, len(order))
	for _, brandID := range order {
		a := byBrand[brandID]
		var ingredientCost, laborCost float64
		for storeID, brandGross := range a.byStore {
			store, ok := storeByID[storeID]
			if !ok || store.GrossRevenue == 0 {
				continue
			}
			share := brandGross / store.GrossRevenue
			ingredientCost += store.IngredientCost * share
			laborCost += store.LaborCost * share
		}
		profit := contracts.Round2(a.net - ingredientCost - laborCost)
		margin := 0.0
		if a.gross > 0 {
			margin = contracts.Round2(profit / a.gross * 100)
		}
		out = append(out, contracts.BrandProfitability{
			BrandID:        brandID,
			GrossRevenue:   contracts.Round2(a.gross),
			NetRevenue:     contracts.Round2(a.net),
			IngredientCost: contracts.Round2(ingredientCost),
			LaborCost:      contracts.Round2(laborCost),
			Profit:         profit,
			MarginPercent:  margin,
		})
	}
	return out
}

// itemMargins computes pre-labor contribution margin per item. The
// order-to-item assignment reads the replay position, so it is the same
// assignment the consumption replay used.
func (e *Engine) itemMargins(in Inputs) []contracts.ItemMargin {
	finByOrder := make(map[string]contracts.OrderFinancial, len(in.Financials))
	for _, f := range in.Financials {
		finByOrder[f.OrderID] = f
	}

	revenue := map[string]float64{}
	ingredientCost := map[string]float64{}
	commission := map[string]float64{}
	for _, o := range in.Replay {
		f, ok := finByOrder[o.OrderID]
		if !ok {
			continue
		}
		items := in.ItemsByBrand[o.BrandID]
		if len(items) == 0 {
			continue
		}
		item := items[o.Pos%len(items)]
		revenue[item.ID] += f.GrossRevenue
		commission[item.ID] += f.CommissionCost
		var cost float64
		for _, line := range in.BOM(item.ID) {
			cost += line.QuantityPerOrder * ingredientUnitCost[line.IngredientID]
		}
		ingredientCost[item.ID] += cost
	}

	ids := make([]string, 0, len(revenue))
	for id := range revenue {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]contracts.ItemMargin, 0, len(ids))
	for _, id := range ids {
		rev := contracts.Round2(revenue[id])
		ing := contracts.Round2(ingredientCost[id])
		com := contracts.Round2(commission[id])
		margin := contracts.Round2(rev - ing - com)
		marginPct := 0.0
		if rev > 0 {
			marginPct = contracts.Round2(margin / rev * 100)
		}
		out = append(out, contracts.ItemMargin{
			ItemID:         id,
			Revenue:        rev,
			IngredientCost: ing,
			Commission:     com,
			Margin:         margin,
			MarginPercent:  marginPct,
		})
	}
	return out
}
