package ingestion

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/pkg/logger"
)

func rawOrders(n int) []contracts.Order {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	orders := make([]contracts.Order, n)
	for i := range orders {
		orders[i] = contracts.Order{
			ID:          fmt.Sprintf("ord_%04d", i),
			StoreID:     "store_1",
			BrandID:     "brand_1",
			CustomerID:  "cust_1",
			TotalAmount: 100,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
	}
	return orders
}

func TestRunChannelRotation(t *testing.T) {
	n := NewNormalizer(logger.NewNop())
	res := n.Run(rawOrders(9))

	for i, o := range res.Orders {
		switch i % 3 {
		case 0:
			assert.Equal(t, contracts.ChannelPartner, o.Channel)
			assert.Equal(t, contracts.PartnerA, o.PartnerID)
		case 1:
			assert.Equal(t, contracts.ChannelPartner, o.Channel)
			assert.Equal(t, contracts.PartnerB, o.PartnerID)
		case 2:
			assert.Equal(t, contracts.ChannelDirect, o.Channel)
			assert.Empty(t, o.PartnerID)
		}
	}
	assert.Equal(t, 3, res.Counts.ByBucket[contracts.PartnerA])
	assert.Equal(t, 3, res.Counts.ByBucket[contracts.PartnerB])
	assert.Equal(t, 3, res.Counts.ByBucket[contracts.DirectKey])
	assert.Equal(t, 9, res.Counts.Total)
}

func TestRunPartnerIDOnlyOnPartnerOrders(t *testing.T) {
	n := NewNormalizer(logger.NewNop())
	res := n.Run(rawOrders(30))

	for _, o := range res.Orders {
		if o.Channel == contracts.ChannelDirect {
			require.Empty(t, o.PartnerID)
		} else {
			require.NotEmpty(t, o.PartnerID)
		}
	}
}

func TestRunPreservesOrderFields(t *testing.T) {
	raw := rawOrders(3)
	n := NewNormalizer(logger.NewNop())
	res := n.Run(raw)

	require.Len(t, res.Orders, 3)
	for i, o := range res.Orders {
		assert.Equal(t, raw[i].ID, o.OrderID)
		assert.Equal(t, raw[i].StoreID, o.StoreID)
		assert.Equal(t, raw[i].BrandID, o.BrandID)
		assert.Equal(t, raw[i].CustomerID, o.CustomerID)
		assert.Equal(t, raw[i].TotalAmount, o.TotalAmount)
		assert.Equal(t, raw[i].CreatedAt, o.CreatedAt)
	}
}

func TestBuildReplayOrdering(t *testing.T) {
	ts := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	orders := []contracts.OrderWithCommission{
		{NormalizedOrder: contracts.NormalizedOrder{OrderID: "ord_b", CreatedAt: ts}},
		{NormalizedOrder: contracts.NormalizedOrder{OrderID: "ord_c", CreatedAt: ts.Add(-time.Hour)}},
		{NormalizedOrder: contracts.NormalizedOrder{OrderID: "ord_a", CreatedAt: ts}},
	}
	replay := BuildReplay(orders)

	require.Len(t, replay, 3)
	// earliest timestamp first, then order id breaks the tie
	assert.Equal(t, "ord_c", replay[0].OrderID)
	assert.Equal(t, "ord_a", replay[1].OrderID)
	assert.Equal(t, "ord_b", replay[2].OrderID)
	for i, r := range replay {
		assert.Equal(t, i, r.Pos)
	}
}

func TestBuildReplayDoesNotMutateInput(t *testing.T) {
	ts := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	orders := []contracts.OrderWithCommission{
		{NormalizedOrder: contracts.NormalizedOrder{OrderID: "ord_b", CreatedAt: ts}},
		{NormalizedOrder: contracts.NormalizedOrder{OrderID: "ord_a", CreatedAt: ts.Add(-time.Hour)}},
	}
	_ = BuildReplay(orders)
	assert.Equal(t, "ord_b", orders[0].OrderID)
}
