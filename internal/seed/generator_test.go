package seed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovyn/core-platform/pkg/config"
)

func testParams() Params {
	return Params{
		RandomSeed:     42,
		Cities:         2,
		StoresPerCity:  3,
		BrandsPerStore: 2,
		ItemsPerBrand:  5,
		Customers:      50,
		Orders:         200,
		Anchor:         time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(testParams())
	require.NoError(t, err)
	b, err := Generate(testParams())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateCounts(t *testing.T) {
	ds, err := Generate(testParams())
	require.NoError(t, err)

	assert.Len(t, ds.Cities, 2)
	assert.Len(t, ds.Stores, 6)
	assert.Len(t, ds.Brands, 12)
	assert.Len(t, ds.Items, 60)
	assert.Len(t, ds.Customers, 50)
	assert.Len(t, ds.Orders, 200)
}

func TestGenerateReferentialIntegrity(t *testing.T) {
	ds, err := Generate(testParams())
	require.NoError(t, err)

	storeIDs := map[string]bool{}
	for _, s := range ds.Stores {
		storeIDs[s.ID] = true
	}
	brandStore := map[string]string{}
	for _, b := range ds.Brands {
		require.True(t, storeIDs[b.StoreID], "brand %s references unknown store", b.ID)
		brandStore[b.ID] = b.StoreID
	}
	customerIDs := map[string]bool{}
	for _, c := range ds.Customers {
		customerIDs[c.ID] = true
	}
	for _, o := range ds.Orders {
		require.True(t, storeIDs[o.StoreID])
		require.True(t, customerIDs[o.CustomerID])
		// an order's brand must live in the order's store
		require.Equal(t, o.StoreID, brandStore[o.BrandID])
	}
}

func TestGenerateIDPrefixes(t *testing.T) {
	ds, err := Generate(testParams())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ds.Cities[0].ID, "city_"))
	assert.True(t, strings.HasPrefix(ds.Stores[0].ID, "store_"))
	assert.True(t, strings.HasPrefix(ds.Brands[0].ID, "brand_"))
	assert.True(t, strings.HasPrefix(ds.Items[0].ID, "item_"))
	assert.True(t, strings.HasPrefix(ds.Customers[0].ID, "cust_"))
	assert.True(t, strings.HasPrefix(ds.Orders[0].ID, "ord_"))
}

func TestGenerateValueRanges(t *testing.T) {
	p := testParams()
	ds, err := Generate(p)
	require.NoError(t, err)

	for _, b := range ds.Brands {
		require.GreaterOrEqual(t, b.CommissionRate, 5.0)
		require.LessOrEqual(t, b.CommissionRate, 25.0)
	}
	for _, it := range ds.Items {
		require.GreaterOrEqual(t, it.Cost, 50.0)
		require.LessOrEqual(t, it.Cost, 200.0)
		require.Greater(t, it.Price, it.Cost)
	}
	anchorMidnight := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	for _, o := range ds.Orders {
		require.GreaterOrEqual(t, o.TotalAmount, 150.0)
		require.LessOrEqual(t, o.TotalAmount, 2500.0)
		require.True(t, o.CreatedAt.Before(anchorMidnight.AddDate(0, 0, 1)))
		require.False(t, o.CreatedAt.Before(anchorMidnight.AddDate(0, 0, -90)))
	}
}

func TestGenerateOrderDateWeighting(t *testing.T) {
	p := testParams()
	p.Orders = 2000
	ds, err := Generate(p)
	require.NoError(t, err)

	recent := 0
	cutoff := p.Anchor.AddDate(0, 0, -14)
	for _, o := range ds.Orders {
		if !o.CreatedAt.Before(cutoff) {
			recent++
		}
	}
	// half the draws target the trailing 14 days and the long tail
	// also lands some there, so well over a third must be recent
	assert.Greater(t, recent, len(ds.Orders)/3)
}

func TestGenerateRejectsZeroCounts(t *testing.T) {
	p := testParams()
	p.Orders = 0
	_, err := Generate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders")
}

func TestParamsFromConfig(t *testing.T) {
	sc := config.SeedConfig{
		RandomSeed:     42,
		Cities:         2,
		StoresPerCity:  3,
		BrandsPerStore: 2,
		ItemsPerBrand:  30,
		Customers:      4000,
		Orders:         5000,
		AnchorDate:     "2025-06-30",
	}
	p, err := ParamsFromConfig(sc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC), p.Anchor)

	sc.AnchorDate = "not-a-date"
	_, err = ParamsFromConfig(sc)
	require.Error(t, err)
}
