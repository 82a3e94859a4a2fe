package contracts

import "time"

// Channel is the order acquisition channel.
type Channel string

const (
	ChannelDirect  Channel = "DIRECT"
	ChannelPartner Channel = "PARTNER"
)

// DirectKey is the bucket key used for direct orders wherever per-partner
// maps also need a slot for the no-intermediary channel.
const DirectKey = "DIRECT"

// Delivery partner identifiers. The set is fixed; commission rates are
// keyed on these.
const (
	PartnerA = "PARTNER_A"
	PartnerB = "PARTNER_B"
)

// NormalizedOrder is the internal order shape every downstream stage
// consumes. PartnerID is set iff Channel == ChannelPartner.
type NormalizedOrder struct {
	OrderID     string    `json:"orderId"`
	StoreID     string    `json:"storeId"`
	BrandID     string    `json:"brandId"`
	CustomerID  string    `json:"customerId"`
	TotalAmount float64   `json:"totalAmount"`
	Channel     Channel   `json:"channel"`
	PartnerID   string    `json:"partnerId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PartnerBucket returns the per-partner map key for this order.
func (o NormalizedOrder) PartnerBucket() string {
	if o.Channel == ChannelPartner {
		return o.PartnerID
	}
	return DirectKey
}

// DateKey returns the UTC calendar day of the order.
func (o NormalizedOrder) DateKey() string {
	return DateKey(o.CreatedAt)
}

// OrderWithCommission is a normalized order enriched with its commission.
type OrderWithCommission struct {
	NormalizedOrder
	CommissionAmount float64 `json:"commissionAmount"`
}

// PartnerSummary aggregates one partner channel (or DIRECT).
type PartnerSummary struct {
	PartnerID                string  `json:"partnerId"`
	TotalOrders              int     `json:"totalOrders"`
	TotalGrossRevenue        float64 `json:"totalGrossRevenue"`
	TotalCommissionPaid      float64 `json:"totalCommissionPaid"`
	AverageCommissionPercent float64 `json:"averageCommissionPercent"`
	NetRevenue               float64 `json:"netRevenue"`
}

// ReplayOrder is one entry of the canonical replay sequence: orders sorted
// by (timestamp, order id) with the resulting position made explicit.
// Consumption and item attribution both key off Pos, never re-derive it.
type ReplayOrder struct {
	OrderWithCommission
	Pos int
}
