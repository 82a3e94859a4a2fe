package inventory

import (
	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/internal/seed"
)

// Ingredients is the global catalog. Every store tracks the same set.
var Ingredients = []contracts.Ingredient{
	{ID: "ing_chicken", Name: "Chicken", Unit: "kg"},
	{ID: "ing_rice", Name: "Rice", Unit: "kg"},
	{ID: "ing_oil", Name: "Oil", Unit: "L"},
	{ID: "ing_spices", Name: "Spices", Unit: "kg"},
	{ID: "ing_packaging", Name: "Packaging", Unit: "pcs"},
	{ID: "ing_vegetables", Name: "Vegetables", Unit: "kg"},
	{ID: "ing_sauce", Name: "Sauce", Unit: "L"},
	{ID: "ing_flour", Name: "Flour", Unit: "kg"},
	{ID: "ing_dairy", Name: "Dairy", Unit: "L"},
	{ID: "ing_lentils", Name: "Lentils", Unit: "kg"},
}

func ingredientMeta(id string) (name, unit string) {
	for _, ing := range Ingredients {
		if ing.ID == id {
			return ing.Name, ing.Unit
		}
	}
	return id, "kg"
}

// buildBOM derives an item's bill of materials from the item id and the
// global seed. 2 to 4 distinct ingredients with unit-appropriate
// quantities. Same item id always yields the same BOM.
func buildBOM(itemID string, globalSeed uint32) []contracts.BOMLine {
	r := seed.New(seed.HashString(itemID) + globalSeed)
	n := int(r.Int(2, 4))
	picked := map[string]bool{}
	lines := make([]contracts.BOMLine, 0, n)
	for len(lines) < n {
		ing := Ingredients[r.Int(0, int64(len(Ingredients)-1))]
		if picked[ing.ID] {
			continue
		}
		picked[ing.ID] = true
		var qty float64
		switch ing.Unit {
		case "pcs":
			qty = float64(r.Int(1, 3))
		case "L":
			qty = r.Float(0.02, 0.15, 2)
		default:
			qty = r.Float(0.05, 0.4, 2)
		}
		lines = append(lines, contracts.BOMLine{IngredientID: ing.ID, QuantityPerOrder: qty})
	}
	return lines
}
