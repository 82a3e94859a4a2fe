package ingestion

import (
	"sort"

	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/pkg/logger"
)

// rotation assigns channels by order index. Deterministic; no RNG here.
var rotation = []string{contracts.PartnerA, contracts.PartnerB, contracts.DirectKey}

// Counts is the per-channel order tally, logged once at boot.
type Counts struct {
	Total    int            `json:"total"`
	ByBucket map[string]int `json:"byChannel"`
}

// Result is the normalized order book for one boot.
type Result struct {
	Orders []contracts.NormalizedOrder
	Counts Counts
}

// Normalizer maps raw seeded orders into the internal order shape that
// every downstream stage consumes. Downstream code never sees a raw
// order or cares which channel produced one.
type Normalizer struct {
	logger *logger.Logger
}

func NewNormalizer(log *logger.Logger) *Normalizer {
	return &Normalizer{logger: log}
}

// assignChannel maps an order index onto the fixed channel rotation.
func assignChannel(index int) (contracts.Channel, string) {
	key := rotation[index%len(rotation)]
	if key == contracts.DirectKey {
		return contracts.ChannelDirect, ""
	}
	return contracts.ChannelPartner, key
}

// Run normalizes the raw orders in their seeded sequence. The index
// used for channel assignment is the seed position, so the mapping is
// identical on every boot with the same dataset.
func (n *Normalizer) Run(raw []contracts.Order) Result {
	orders := make([]contracts.NormalizedOrder, 0, len(raw))
	counts := Counts{
		ByBucket: map[string]int{
			contracts.PartnerA:  0,
			contracts.PartnerB:  0,
			contracts.DirectKey: 0,
		},
	}
	for i, o := range raw {
		channel, partnerID := assignChannel(i)
		no := contracts.NormalizedOrder{
			OrderID:     o.ID,
			StoreID:     o.StoreID,
			BrandID:     o.BrandID,
			CustomerID:  o.CustomerID,
			TotalAmount: o.TotalAmount,
			Channel:     channel,
			PartnerID:   partnerID,
			CreatedAt:   o.CreatedAt,
		}
		orders = append(orders, no)
		counts.ByBucket[no.PartnerBucket()]++
	}
	counts.Total = len(orders)

	n.logger.WithFields(map[string]interface{}{
		"total":     counts.Total,
		"partner_a": counts.ByBucket[contracts.PartnerA],
		"partner_b": counts.ByBucket[contracts.PartnerB],
		"direct":    counts.ByBucket[contracts.DirectKey],
	}).Info("Normalized order book")

	return Result{Orders: orders, Counts: counts}
}

// BuildReplay produces the canonical replay sequence: orders sorted by
// (createdAt, orderId) with the position index made explicit. Every
// consumer that needs "the i-th order" reads Pos instead of sorting
// again.
func BuildReplay(orders []contracts.OrderWithCommission) []contracts.ReplayOrder {
	sorted := make([]contracts.OrderWithCommission, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].OrderID < sorted[j].OrderID
	})
	replay := make([]contracts.ReplayOrder, len(sorted))
	for i, o := range sorted {
		replay[i] = contracts.ReplayOrder{OrderWithCommission: o, Pos: i}
	}
	return replay
}
