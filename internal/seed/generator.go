package seed

import (
	"fmt"
	"time"

	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/pkg/config"
)

var (
	cityNames      = []string{"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Chennai", "Kolkata", "Pune", "Ahmedabad"}
	storeNameParts = []string{"Central", "North", "South", "East", "West", "Hub", "Cloud Kitchen"}
	brandNameParts = []string{"Spice", "Bowl", "Fresh", "Bite", "Chef", "Kitchen", "Eats", "Grill"}
	itemNames      = []string{"Biryani", "Curry", "Naan", "Rice Bowl", "Wrap", "Salad", "Soup", "Snack", "Combo", "Beverage", "Dessert", "Breakfast"}

	// three actives to one paused and one maintenance
	storeStatuses = []contracts.StoreStatus{
		contracts.StoreActive, contracts.StoreActive, contracts.StoreActive,
		contracts.StorePaused, contracts.StoreMaintenance,
	}
)

// Params controls one deterministic generation run.
type Params struct {
	RandomSeed     uint32
	Cities         int
	StoresPerCity  int
	BrandsPerStore int
	ItemsPerBrand  int
	Customers      int
	Orders         int
	// Anchor replaces wall-clock time so the dataset is identical
	// across process restarts, not just within one process.
	Anchor time.Time
}

// ParamsFromConfig maps the environment-driven seed settings onto
// generation parameters.
func ParamsFromConfig(sc config.SeedConfig) (Params, error) {
	anchor, err := time.Parse("2006-01-02", sc.AnchorDate)
	if err != nil {
		return Params{}, fmt.Errorf("invalid anchor date %q: %w", sc.AnchorDate, err)
	}
	return Params{
		RandomSeed:     sc.RandomSeed,
		Cities:         sc.Cities,
		StoresPerCity:  sc.StoresPerCity,
		BrandsPerStore: sc.BrandsPerStore,
		ItemsPerBrand:  sc.ItemsPerBrand,
		Customers:      sc.Customers,
		Orders:         sc.Orders,
		Anchor:         anchor.Add(12 * time.Hour),
	}, nil
}

func (p Params) validate() error {
	counts := []struct {
		name string
		n    int
	}{
		{"cities", p.Cities},
		{"stores per city", p.StoresPerCity},
		{"brands per store", p.BrandsPerStore},
		{"items per brand", p.ItemsPerBrand},
		{"customers", p.Customers},
		{"orders", p.Orders},
	}
	for _, c := range counts {
		if c.n <= 0 {
			return fmt.Errorf("seed: %s must be positive, got %d", c.name, c.n)
		}
	}
	if p.Anchor.IsZero() {
		return fmt.Errorf("seed: anchor time is required")
	}
	return nil
}

// id builds a reproducible hex identifier from the RNG stream.
func id(r *Rand, prefix string) string {
	const hexDigits = "0123456789abcdef"
	n := 16
	if prefix != "" {
		n = 8
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = hexDigits[r.Int(0, 15)]
	}
	if prefix == "" {
		return string(buf)
	}
	return prefix + "_" + string(buf)
}

// dateDaysAgo returns the anchor shifted back a random whole number of
// days in [0, daysAgoMax].
func dateDaysAgo(r *Rand, anchor time.Time, daysAgoMax int64) time.Time {
	return anchor.AddDate(0, 0, -int(r.Int(0, daysAgoMax)))
}

// orderDate weights order timestamps so half land in the trailing two
// weeks. That keeps repeat rates and week-over-week windows populated.
// Time of day is drawn too; shift load counts depend on the hour.
func orderDate(r *Rand, anchor time.Time) time.Time {
	day := anchor
	if r.Float(0, 1, 4) < 0.5 {
		day = dateDaysAgo(r, anchor, 14)
	} else {
		day = dateDaysAgo(r, anchor, 90)
	}
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(r.Int(0, 86399)) * time.Second)
}

// Generate builds the full synthetic dataset for the given parameters.
// The same parameters always yield the same dataset.
func Generate(p Params) (contracts.Dataset, error) {
	if err := p.validate(); err != nil {
		return contracts.Dataset{}, err
	}
	r := New(p.RandomSeed)

	cities := make([]contracts.City, 0, p.Cities)
	for i := 0; i < p.Cities; i++ {
		name := cityNames[i%len(cityNames)]
		if i >= len(cityNames) {
			name = fmt.Sprintf("%s %d", name, i+1)
		}
		cities = append(cities, contracts.City{
			ID:       id(r, "city"),
			Name:     name,
			Country:  "India",
			Timezone: "Asia/Kolkata",
		})
	}

	stores := make([]contracts.Store, 0, len(cities)*p.StoresPerCity)
	for _, city := range cities {
		for s := 0; s < p.StoresPerCity; s++ {
			stores = append(stores, contracts.Store{
				ID:             id(r, "store"),
				CityID:         city.ID,
				Name:           Pick(r, storeNameParts) + " " + Pick(r, storeNameParts),
				Status:         Pick(r, storeStatuses),
				OperatingHours: "08:00-22:00",
			})
		}
	}

	brands := make([]contracts.Brand, 0, len(stores)*p.BrandsPerStore)
	for _, store := range stores {
		for b := 0; b < p.BrandsPerStore; b++ {
			brands = append(brands, contracts.Brand{
				ID:             id(r, "brand"),
				StoreID:        store.ID,
				Name:           Pick(r, brandNameParts) + " " + Pick(r, brandNameParts),
				CommissionRate: r.Float(5, 25, 2),
			})
		}
	}

	items := make([]contracts.Item, 0, len(brands)*p.ItemsPerBrand)
	for _, brand := range brands {
		for k := 0; k < p.ItemsPerBrand; k++ {
			name := fmt.Sprintf("%s %d", Pick(r, itemNames), r.Int(1, 99))
			cost := r.Float(50, 200, 2)
			price := contracts.Round2(cost * r.Float(1.3, 2.2, 2))
			items = append(items, contracts.Item{
				ID:      id(r, "item"),
				BrandID: brand.ID,
				Name:    name,
				Price:   price,
				Cost:    cost,
			})
		}
	}

	customers := make([]contracts.Customer, 0, p.Customers)
	for c := 0; c < p.Customers; c++ {
		customers = append(customers, contracts.Customer{
			ID:        id(r, "cust"),
			Phone:     fmt.Sprintf("+91%d", r.Int(6000000000, 9999999999)),
			CreatedAt: dateDaysAgo(r, p.Anchor, 365),
		})
	}

	brandsByStore := make(map[string][]contracts.Brand, len(stores))
	for _, b := range brands {
		brandsByStore[b.StoreID] = append(brandsByStore[b.StoreID], b)
	}

	orders := make([]contracts.Order, 0, p.Orders)
	for o := 0; o < p.Orders; o++ {
		store := Pick(r, stores)
		brand := Pick(r, brandsByStore[store.ID])
		orders = append(orders, contracts.Order{
			ID:          id(r, "ord"),
			StoreID:     store.ID,
			BrandID:     brand.ID,
			CustomerID:  Pick(r, customers).ID,
			TotalAmount: r.Float(150, 2500, 2),
			CreatedAt:   orderDate(r, p.Anchor),
		})
	}

	ds := contracts.Dataset{
		Cities:    cities,
		Stores:    stores,
		Brands:    brands,
		Items:     items,
		Customers: customers,
		Orders:    orders,
	}
	if err := ds.Validate(); err != nil {
		return contracts.Dataset{}, err
	}
	return ds, nil
}
