package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/grovyn/core-platform/internal/contracts"
)

func (h *Handler) insightsByDomain(d contracts.Domain) []contracts.Insight {
	out := make([]contracts.Insight, 0)
	for _, i := range h.reg.Insights.Insights {
		if i.Domain == d {
			out = append(out, i)
		}
	}
	return out
}

// GetStoreHealth handles GET /api/v1/store-health.
func (h *Handler) GetStoreHealth(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	id := h.identity(r)
	results := make([]contracts.StoreHealthResult, 0, len(h.reg.Insights.StoreHealth))
	for _, res := range h.reg.Insights.StoreHealth {
		if id.CanAccessStore(res.StoreID) {
			results = append(results, res)
		}
	}
	respondList(w, results, len(results))
}

// GetStoreHealthByID handles GET /api/v1/stores/{id}/health.
func (h *Handler) GetStoreHealthByID(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	storeID := mux.Vars(r)["id"]
	for _, res := range h.reg.Insights.StoreHealth {
		if res.StoreID == storeID {
			respondJSON(w, http.StatusOK, res)
			return
		}
	}
	respondError(w, http.StatusNotFound, "Unknown store")
}

// GetPartners handles GET /api/v1/partners.
func (h *Handler) GetPartners(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	summaries := h.reg.Commission.Summaries
	respondList(w, summaries, len(summaries))
}

// GetPartnerInsights handles GET /api/v1/partner-insights.
func (h *Handler) GetPartnerInsights(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	list := h.insightsByDomain(contracts.DomainPartner)
	respondList(w, list, len(list))
}

// GetInventory handles GET /api/v1/inventory. ?storeId narrows the
// snapshot to one store's ledger.
func (h *Handler) GetInventory(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	id := h.identity(r)
	if storeID := r.URL.Query().Get("storeId"); storeID != "" {
		if !id.CanAccessStore(storeID) {
			respondError(w, http.StatusForbidden, "Access to this store not allowed")
			return
		}
		for _, inv := range h.reg.Inventory.Snapshot() {
			if inv.StoreID == storeID {
				respondJSON(w, http.StatusOK, inv)
				return
			}
		}
		respondError(w, http.StatusNotFound, "Unknown store")
		return
	}
	snapshot := make([]contracts.StoreInventory, 0)
	for _, inv := range h.reg.Inventory.Snapshot() {
		if id.CanAccessStore(inv.StoreID) {
			snapshot = append(snapshot, inv)
		}
	}
	respondList(w, snapshot, len(snapshot))
}

// GetInventoryInsights handles GET /api/v1/inventory-insights.
func (h *Handler) GetInventoryInsights(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	list := h.insightsByDomain(contracts.DomainInventory)
	respondList(w, list, len(list))
}

// GetStaff handles GET /api/v1/staff.
func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	id := h.identity(r)
	staff := h.reg.Workforce.Snapshot()
	if id.Role != RoleAdmin {
		scoped := staff[:0:0]
		for _, ss := range staff {
			if id.CanAccessStore(ss.StoreID) {
				scoped = append(scoped, ss)
			}
		}
		staff = scoped
	}
	respondList(w, staff, len(staff))
}

// GetShifts handles GET /api/v1/shifts.
func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	id := h.identity(r)
	metrics := make([]contracts.ShiftMetrics, 0, len(h.reg.Shifts.Metrics))
	for _, m := range h.reg.Shifts.Metrics {
		if id.CanAccessStore(m.StoreID) {
			metrics = append(metrics, m)
		}
	}
	respondList(w, metrics, len(metrics))
}

// GetWorkforceInsights handles GET /api/v1/workforce-insights.
func (h *Handler) GetWorkforceInsights(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	list := h.insightsByDomain(contracts.DomainWorkforce)
	respondList(w, list, len(list))
}
