package contracts

// Ingredient is a globally defined raw material. The catalog is the same
// for every store.
type Ingredient struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"` // kg, L or pcs
}

// BOMLine is one row of an item's bill of materials.
type BOMLine struct {
	IngredientID     string  `json:"ingredientId"`
	QuantityPerOrder float64 `json:"quantityPerOrder"`
}

// LedgerRow is the per-(store, ingredient) stock position. Stock floors
// at zero; derived fields are set after the consumption replay and are
// present on every row, consumed or not.
type LedgerRow struct {
	CurrentStock        float64 `json:"currentStock"`
	ReorderThreshold    float64 `json:"reorderThreshold"`
	MaxCapacity         float64 `json:"maxCapacity"`
	AvgDailyConsumption float64 `json:"avgDailyConsumption"`
	DaysRemaining       float64 `json:"daysRemaining"`
}

// IngredientPosition is a ledger row flattened for the API snapshot.
type IngredientPosition struct {
	IngredientID   string `json:"ingredientId"`
	IngredientName string `json:"ingredientName"`
	Unit           string `json:"unit"`
	LedgerRow
}

// StoreInventory is one store's full ingredient position.
type StoreInventory struct {
	StoreID     string               `json:"storeId"`
	Ingredients []IngredientPosition `json:"ingredients"`
}
