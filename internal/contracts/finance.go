package contracts

// OrderFinancial is the financial truth for one order.
// Invariant: NetRevenue = GrossRevenue - CommissionCost - DiscountCost.
type OrderFinancial struct {
	OrderID        string  `json:"orderId"`
	StoreID        string  `json:"storeId"`
	BrandID        string  `json:"brandId"`
	GrossRevenue   float64 `json:"grossRevenue"`
	CommissionCost float64 `json:"commissionCost"`
	DiscountCost   float64 `json:"discountCost"`
	NetRevenue     float64 `json:"netRevenue"`
	HasDiscount    bool    `json:"hasDiscount"`
}

// FinanceSummary holds the global settlement totals.
type FinanceSummary struct {
	TotalGrossRevenue   float64 `json:"totalGrossRevenue"`
	TotalNetRevenue     float64 `json:"totalNetRevenue"`
	TotalCommissionCost float64 `json:"totalCommissionCost"`
	TotalDiscountCost   float64 `json:"totalDiscountCost"`
}
