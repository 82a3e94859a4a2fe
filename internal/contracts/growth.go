package contracts

// GrowthPriority orders growth insights for display.
type GrowthPriority string

const (
	GrowthPriorityHigh   GrowthPriority = "high"
	GrowthPriorityMedium GrowthPriority = "medium"
	GrowthPriorityLow    GrowthPriority = "low"
)

// Condition records one evaluated trigger clause with its outcome, so
// every growth insight is auditable.
type Condition struct {
	Condition string `json:"condition"`
	Met       bool   `json:"met"`
	Detail    string `json:"detail"`
}

// GrowthInsight is one finding from the rule-based intelligence layer.
// Confidence is a fixed per-rule constant, not a model output.
type GrowthInsight struct {
	ID          string         `json:"id"`
	Kind        string         `json:"kind"`
	Priority    GrowthPriority `json:"priority"`
	Title       string         `json:"title"`
	Text        string         `json:"text"`
	Confidence  float64        `json:"confidence"`
	TriggerRule string         `json:"triggerRule"`
	Conditions  []Condition    `json:"conditions"`
}

// Action is the recommended follow-up derived from a growth insight.
type Action struct {
	Priority        GrowthPriority `json:"priority"`
	Effort          string         `json:"effort"`
	InsightID       string         `json:"insightId"`
	ActionText      string         `json:"actionText"`
	ExpectedOutcome string         `json:"expectedOutcome"`
}

// IntelligenceResult is the full intelligence surface for one boot.
type IntelligenceResult struct {
	Insights []GrowthInsight `json:"insights"`
	Actions  []Action        `json:"actions"`
}
