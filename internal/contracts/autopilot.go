package contracts

import "time"

// RankedInsight is an insight after the priority engine has scored it.
type RankedInsight struct {
	Insight
	PriorityScore float64 `json:"priorityScore"`
	Rank          int     `json:"rank"`
}

// AlertEntity names one entity an alert refers to.
type AlertEntity struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Alert is an executive-channel escalation derived from ranked
// insights. IDs are stable for a given seed and rule.
type Alert struct {
	ID          string        `json:"id"`
	Channel     string        `json:"channel"`
	Severity    Severity      `json:"severity"`
	Message     string        `json:"message"`
	Entities    []AlertEntity `json:"entities"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// AlertChannelExecutive is the only delivery channel.
const AlertChannelExecutive = "EXECUTIVE_ALERT"

// BusinessSnapshot is the headline block of the executive brief.
type BusinessSnapshot struct {
	TotalGrossRevenue float64 `json:"totalGrossRevenue"`
	TotalNetRevenue   float64 `json:"totalNetRevenue"`
	TotalProfit       float64 `json:"totalProfit"`
	OverallMarginPct  float64 `json:"overallMarginPct"`
	StoresAtRiskCount int     `json:"storesAtRiskCount"`
}

// ExecutiveBrief is the once-per-boot morning report.
type ExecutiveBrief struct {
	GeneratedAt        time.Time        `json:"generatedAt"`
	Snapshot           BusinessSnapshot `json:"businessSnapshot"`
	WhatNeedsAttention []string         `json:"whatNeedsAttentionToday"`
	SuggestedActions   []string         `json:"suggestedActions"`
}

// AutopilotResult bundles the priority engine output.
type AutopilotResult struct {
	Ranked           []RankedInsight `json:"ranked"`
	TopPriorities    []RankedInsight `json:"topPriorities"`
	ConsumedByDomain map[Domain]int  `json:"consumedByDomain"`
	Alerts           []Alert         `json:"alerts"`
	Brief            ExecutiveBrief  `json:"brief"`
}
