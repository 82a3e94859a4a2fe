package handlers

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/grovyn/core-platform/internal/contracts"
)

// GetMetrics handles GET /api/v1/metrics.
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	respondJSON(w, http.StatusOK, h.reg.Metrics)
}

// GetGrowthInsights handles GET /api/v1/insights.
func (h *Handler) GetGrowthInsights(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	list := h.reg.Intelligence.Insights
	respondList(w, list, len(list))
}

// GetActions handles GET /api/v1/actions.
func (h *Handler) GetActions(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	actions := h.reg.Intelligence.Actions
	respondList(w, actions, len(actions))
}

// GetDashboard handles GET /api/v1/dashboard: metrics, growth
// insights and actions in one payload.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"metrics":  h.reg.Metrics,
		"insights": h.reg.Intelligence.Insights,
		"actions":  h.reg.Intelligence.Actions,
	})
}

type segmentRow struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

type churnRiskRow struct {
	CustomerID       string  `json:"customerId"`
	Name             string  `json:"name"`
	LTV              float64 `json:"ltv"`
	Orders           int     `json:"orders"`
	LastOrderDaysAgo int     `json:"lastOrderDaysAgo"`
	AvgValue         float64 `json:"avgValue"`
	Risk             string  `json:"risk"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// GetCustomerSegments handles GET /api/v1/customers/segments:
// champions (10+ orders), loyal (5-9), new (1-4), dormant (inactive
// past the churn window), plus the top churn risks by lifetime value.
func (h *Handler) GetCustomerSegments(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	evalTime := contracts.EvaluationTime(h.reg.ReferenceDay)
	dormantCutoff := evalTime.Add(-14 * 24 * time.Hour)
	reorderCutoff := evalTime.Add(-5 * 24 * time.Hour)

	type stat struct {
		orders int
		ltv    float64
		last   time.Time
	}
	byCustomer := make(map[string]*stat)
	ids := make([]string, 0)
	for _, o := range h.reg.Commission.Orders {
		st, ok := byCustomer[o.CustomerID]
		if !ok {
			st = &stat{}
			byCustomer[o.CustomerID] = st
			ids = append(ids, o.CustomerID)
		}
		st.orders++
		st.ltv += o.TotalAmount
		if o.CreatedAt.After(st.last) {
			st.last = o.CreatedAt
		}
	}
	sort.Strings(ids)

	var champion, loyal, newer, dormant, predictedReorders int
	var championLTV float64
	risks := make([]churnRiskRow, 0)
	for _, cid := range ids {
		st := byCustomer[cid]
		switch {
		case st.orders >= 10:
			champion++
			championLTV += st.ltv
		case st.orders >= 5:
			loyal++
		default:
			newer++
		}
		if st.orders >= 3 && !st.last.Before(reorderCutoff) {
			predictedReorders++
		}
		if st.last.Before(dormantCutoff) {
			dormant++
			if st.ltv >= 500 {
				tail := cid
				if len(tail) > 6 {
					tail = tail[len(tail)-6:]
				}
				risks = append(risks, churnRiskRow{
					CustomerID:       cid,
					Name:             fmt.Sprintf("Customer %s", tail),
					LTV:              contracts.Round2(st.ltv),
					Orders:           st.orders,
					LastOrderDaysAgo: int(evalTime.Sub(st.last).Hours() / 24),
					AvgValue:         contracts.Round2(st.ltv / float64(st.orders)),
					Risk:             "high",
				})
			}
		}
	}
	sort.SliceStable(risks, func(i, j int) bool { return risks[i].LTV > risks[j].LTV })
	if len(risks) > 8 {
		risks = risks[:8]
	}

	total := len(ids)
	pct := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return round1(float64(n) / float64(total) * 100)
	}
	avgChampionLTV := 0.0
	if champion > 0 {
		avgChampionLTV = championLTV / float64(champion)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"totalCustomers":    total,
		"repeatRate7d":      h.reg.Metrics.Last7.RepeatRate,
		"wowRepeatDeltaPct": h.reg.Metrics.WoW.RepeatDeltaPct,
		"dormantCount":      dormant,
		"predictedReorders": predictedReorders,
		"segments": []segmentRow{
			{ID: "champion", Label: "Champions", Count: champion, Pct: pct(champion)},
			{ID: "loyal", Label: "Loyal", Count: loyal, Pct: pct(loyal)},
			{ID: "new", Label: "New", Count: newer, Pct: pct(newer)},
			{ID: "dormant", Label: "Dormant", Count: dormant, Pct: pct(dormant)},
		},
		"championAvgLtv":         avgChampionLTV,
		"dormantWinBackEstimate": math.Round(float64(dormant) * 200 * 0.15),
		"churnRisks":             risks,
	})
}
