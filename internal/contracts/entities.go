package contracts

import (
	"fmt"
	"time"
)

// Seed entities. Produced once at boot by the generator; immutable afterwards.

// City is a market the network operates in.
type City struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

// StoreStatus is the operational state a store was seeded with.
type StoreStatus string

const (
	StoreActive      StoreStatus = "active"
	StorePaused      StoreStatus = "paused"
	StoreMaintenance StoreStatus = "maintenance"
)

// Store is a physical kitchen location hosting one or more brands.
type Store struct {
	ID             string      `json:"id"`
	CityID         string      `json:"cityId"`
	Name           string      `json:"name"`
	Status         StoreStatus `json:"status"`
	OperatingHours string      `json:"operatingHours"` // "08:00-22:00"
}

// Brand is a virtual restaurant brand operated out of a store.
type Brand struct {
	ID             string  `json:"id"`
	StoreID        string  `json:"storeId"`
	Name           string  `json:"name"`
	CommissionRate float64 `json:"commissionRate"` // display percent, 5-25
}

// Item is a catalog (menu) item belonging to a brand.
type Item struct {
	ID      string  `json:"id"`
	BrandID string  `json:"brandId"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Cost    float64 `json:"cost"`
}

// Customer is an end customer placing orders.
type Customer struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// Order is a raw transactional record before normalization.
type Order struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"storeId"`
	BrandID     string    `json:"brandId"`
	CustomerID  string    `json:"customerId"`
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Dataset is the full deterministic entity universe for one boot.
type Dataset struct {
	Cities    []City
	Stores    []Store
	Brands    []Brand
	Items     []Item
	Customers []Customer
	Orders    []Order
}

// Validate rejects a dataset with any empty collection. Downstream
// stages assume every entity type exists.
func (d Dataset) Validate() error {
	counts := []struct {
		name string
		n    int
	}{
		{"cities", len(d.Cities)},
		{"stores", len(d.Stores)},
		{"brands", len(d.Brands)},
		{"items", len(d.Items)},
		{"customers", len(d.Customers)},
		{"orders", len(d.Orders)},
	}
	for _, c := range counts {
		if c.n == 0 {
			return fmt.Errorf("dataset: no %s generated", c.name)
		}
	}
	return nil
}
