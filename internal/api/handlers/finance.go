package handlers

import (
	"net/http"
	"sort"

	"github.com/grovyn/core-platform/internal/contracts"
)

// GetFinanceSummary handles GET /api/v1/finance/summary.
func (h *Handler) GetFinanceSummary(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"summary": h.reg.Profit.Summary,
		"payouts": h.reg.Finance.Payouts,
	})
}

// GetFinancePayouts handles GET /api/v1/finance/payouts.
func (h *Handler) GetFinancePayouts(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	respondJSON(w, http.StatusOK, h.reg.Finance.Payouts)
}

// GetStoreProfitability handles GET /api/v1/finance/stores.
func (h *Handler) GetStoreProfitability(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	stores := h.reg.Profit.Stores
	respondList(w, stores, len(stores))
}

// GetBrandProfitability handles GET /api/v1/finance/brands.
func (h *Handler) GetBrandProfitability(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	brands := h.reg.Profit.Brands
	respondList(w, brands, len(brands))
}

// GetItemMargins handles GET /api/v1/finance/items.
func (h *Handler) GetItemMargins(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	items := h.reg.Profit.Items
	respondList(w, items, len(items))
}

// GetFinanceInsights handles GET /api/v1/finance-insights.
func (h *Handler) GetFinanceInsights(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	list := h.insightsByDomain(contracts.DomainFinance)
	respondList(w, list, len(list))
}

// marginAnalysisRow is one item in the margin report, flagged when it
// sits below the healthy-margin threshold.
type marginAnalysisRow struct {
	ItemID        string  `json:"itemId"`
	Name          string  `json:"name"`
	Revenue       float64 `json:"revenue"`
	Cost          float64 `json:"cost"`
	Commission    float64 `json:"commission"`
	Margin        float64 `json:"margin"`
	MarginPercent float64 `json:"marginPercent"`
	Status        string  `json:"status"`
}

// GetItemMarginAnalysis handles GET /api/v1/items/margin-analysis:
// every item sorted worst margin first, with a status badge.
func (h *Handler) GetItemMarginAnalysis(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	names := make(map[string]string, len(h.reg.Dataset.Items))
	for _, it := range h.reg.Dataset.Items {
		names[it.ID] = it.Name
	}
	rows := make([]marginAnalysisRow, 0, len(h.reg.Profit.Items))
	for _, m := range h.reg.Profit.Items {
		name := names[m.ItemID]
		if name == "" {
			name = m.ItemID
		}
		status := "OK"
		if m.MarginPercent < 25 {
			status = "ALERT"
		}
		rows = append(rows, marginAnalysisRow{
			ItemID:        m.ItemID,
			Name:          name,
			Revenue:       m.Revenue,
			Cost:          m.IngredientCost,
			Commission:    m.Commission,
			Margin:        m.Margin,
			MarginPercent: m.MarginPercent,
			Status:        status,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].MarginPercent < rows[j].MarginPercent })
	respondList(w, rows, len(rows))
}
