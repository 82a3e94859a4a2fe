package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/grovyn/core-platform/internal/contracts"
)

// identity returns the caller, defaulting to an admin view for
// unauthenticated test calls that bypass the auth middleware.
func (h *Handler) identity(r *http.Request) Identity {
	if id, ok := IdentityFrom(r.Context()); ok {
		return id
	}
	return Identity{Role: RoleAdmin}
}

// visibleStores filters the seeded stores down to what the caller may
// see. Admins see all stores, staff only their own.
func (h *Handler) visibleStores(r *http.Request) []contracts.Store {
	id := h.identity(r)
	if id.Role == RoleAdmin {
		return h.reg.Dataset.Stores
	}
	out := make([]contracts.Store, 0, len(id.StoreIDs))
	for _, s := range h.reg.Dataset.Stores {
		if id.CanAccessStore(s.ID) {
			out = append(out, s)
		}
	}
	return out
}

// GetCities handles GET /api/v1/cities.
func (h *Handler) GetCities(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	cities := h.reg.Dataset.Cities
	respondList(w, cities, len(cities))
}

// GetStores handles GET /api/v1/stores.
func (h *Handler) GetStores(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	stores := h.visibleStores(r)
	respondList(w, stores, len(stores))
}

// GetStoreByID handles GET /api/v1/stores/{id}.
func (h *Handler) GetStoreByID(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	storeID := mux.Vars(r)["id"]
	for _, s := range h.reg.Dataset.Stores {
		if s.ID == storeID {
			respondJSON(w, http.StatusOK, s)
			return
		}
	}
	respondError(w, http.StatusNotFound, "Unknown store")
}

// GetBrands handles GET /api/v1/brands.
func (h *Handler) GetBrands(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	id := h.identity(r)
	brands := make([]contracts.Brand, 0, len(h.reg.Dataset.Brands))
	for _, b := range h.reg.Dataset.Brands {
		if id.CanAccessStore(b.StoreID) {
			brands = append(brands, b)
		}
	}
	respondList(w, brands, len(brands))
}

// GetItems handles GET /api/v1/items.
func (h *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	items := h.reg.Dataset.Items
	respondList(w, items, len(items))
}

// GetCustomers handles GET /api/v1/customers.
func (h *Handler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	customers := h.reg.Dataset.Customers
	limit := queryLimit(r, len(customers))
	respondList(w, customers[:limit], len(customers))
}

// GetOrders handles GET /api/v1/orders. The normalized order book can
// be large, so the response is capped by ?limit (default 100).
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	id := h.identity(r)
	orders := h.reg.Ingestion.Orders
	if id.Role != RoleAdmin {
		scoped := make([]contracts.NormalizedOrder, 0)
		for _, o := range orders {
			if id.CanAccessStore(o.StoreID) {
				scoped = append(scoped, o)
			}
		}
		orders = scoped
	}
	limit := 100
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > len(orders) {
		limit = len(orders)
	}
	respondList(w, orders[:limit], len(orders))
}

func queryLimit(r *http.Request, max int) int {
	limit := max
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n < max {
			limit = n
		}
	}
	return limit
}
