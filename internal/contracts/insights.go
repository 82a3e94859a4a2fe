package contracts

import "time"

// Severity ranks an insight for the priority engine.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Domain identifies which generator produced an insight.
type Domain string

const (
	DomainStoreHealth Domain = "storeHealth"
	DomainPartner     Domain = "partner"
	DomainInventory   Domain = "inventory"
	DomainWorkforce   Domain = "workforce"
	DomainFinance     Domain = "finance"
)

// Insight is a single deterministic finding. Every insight carries at
// least one entity reference so alerts and the brief can name what it
// is about.
type Insight struct {
	Type        string    `json:"type"`
	Severity    Severity  `json:"severity"`
	Domain      Domain    `json:"domain"`
	Message     string    `json:"message"`
	EvaluatedAt time.Time `json:"evaluatedAt"`

	StoreID      string `json:"storeId,omitempty"`
	BrandID      string `json:"brandId,omitempty"`
	ItemID       string `json:"itemId,omitempty"`
	PartnerID    string `json:"partnerId,omitempty"`
	IngredientID string `json:"ingredientId,omitempty"`
	CustomerID   string `json:"customerId,omitempty"`

	// EntityType/EntityID name the primary subject for shift level
	// findings that are not tied to a single catalog entity.
	EntityType string `json:"entityType,omitempty"`
	EntityID   string `json:"entityId,omitempty"`

	SuggestedReorderQuantity float64 `json:"suggestedReorderQuantity,omitempty"`
}

// HealthStatus is the composite store classification.
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthAtRisk   HealthStatus = "at_risk"
	HealthCritical HealthStatus = "critical"
)

// HealthSignals are the three raw signals behind a store's status.
type HealthSignals struct {
	OrderDeviationPercent float64 `json:"orderDeviationPercent"`
	LoadFactor            float64 `json:"loadFactor"`
	FailureRate           float64 `json:"failureRate"`
}

// StoreHealthResult is the per-store output of the health generator.
type StoreHealthResult struct {
	StoreID         string        `json:"storeId"`
	StoreName       string        `json:"storeName"`
	Status          HealthStatus  `json:"status"`
	Signals         HealthSignals `json:"signals"`
	LastEvaluatedAt time.Time     `json:"lastEvaluatedAt"`
}

// InsightSet groups all generator output for one boot.
type InsightSet struct {
	StoreHealth []StoreHealthResult `json:"storeHealth"`
	Insights    []Insight           `json:"insights"`
}
