package contracts

// StoreProfitability attributes revenue and cost to one store.
// Invariant: Profit = NetRevenue - IngredientCost - LaborCost and
// MarginPercent = Profit / GrossRevenue × 100 (0 when gross is 0).
type StoreProfitability struct {
	StoreID        string  `json:"storeId"`
	GrossRevenue   float64 `json:"grossRevenue"`
	NetRevenue     float64 `json:"netRevenue"`
	IngredientCost float64 `json:"ingredientCost"`
	LaborCost      float64 `json:"laborCost"`
	Profit         float64 `json:"profit"`
	MarginPercent  float64 `json:"marginPercent"`
}

// BrandProfitability attributes revenue and revenue-share-allocated store
// costs to one brand. A brand never carries more cost than its store did.
type BrandProfitability struct {
	BrandID        string  `json:"brandId"`
	GrossRevenue   float64 `json:"grossRevenue"`
	NetRevenue     float64 `json:"netRevenue"`
	IngredientCost float64 `json:"ingredientCost"`
	LaborCost      float64 `json:"laborCost"`
	Profit         float64 `json:"profit"`
	MarginPercent  float64 `json:"marginPercent"`
}

// ItemMargin is the pre-labor contribution margin of one catalog item.
type ItemMargin struct {
	ItemID         string  `json:"itemId"`
	Revenue        float64 `json:"revenue"`
	IngredientCost float64 `json:"ingredientCost"`
	Commission     float64 `json:"commission"`
	Margin         float64 `json:"margin"`
	MarginPercent  float64 `json:"marginPercent"`
}

// ProfitSummary extends the finance totals with attributed profit.
type ProfitSummary struct {
	FinanceSummary
	TotalProfit          float64 `json:"totalProfit"`
	OverallMarginPercent float64 `json:"overallMarginPercent"`
}
