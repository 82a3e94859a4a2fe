package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/grovyn/core-platform/internal/api/handlers"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
	"github.com/grovyn/core-platform/pkg/telemetry"
)

const (
	requestsPerSecond = 50
	requestBurst      = 100
)

// NewRouter creates and configures the HTTP router.
// SSOT: route registration happens only in this function.
func NewRouter(h *handlers.Handler, auth *Auth, cfg *config.Config, log *logger.Logger, tel *telemetry.Registry) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Prometheus metrics, outside the versioned API
	if cfg.MetricsEnabled && tel != nil {
		r.Handle("/metrics", tel.Handler()).Methods("GET")
	}

	// API v1
	api := r.PathPrefix("/api/v1").Subrouter()

	// Auth endpoints, public
	api.HandleFunc("/auth/login", auth.Login).Methods("POST")
	api.HandleFunc("/auth/stores", auth.StoreOptions).Methods("GET")

	adminOrStaff := auth.Require(handlers.RoleAdmin, handlers.RoleStaff)
	adminOnly := auth.Require(handlers.RoleAdmin)

	// Catalog and store operations, visible to staff within their stores
	api.HandleFunc("/cities", adminOrStaff(h.GetCities)).Methods("GET")
	api.HandleFunc("/stores", adminOrStaff(h.GetStores)).Methods("GET")
	api.HandleFunc("/stores/{id}", adminOrStaff(auth.RequireStoreAccess("id", h.GetStoreByID))).Methods("GET")
	api.HandleFunc("/stores/{id}/health", adminOrStaff(auth.RequireStoreAccess("id", h.GetStoreHealthByID))).Methods("GET")
	api.HandleFunc("/brands", adminOrStaff(h.GetBrands)).Methods("GET")
	api.HandleFunc("/items", adminOrStaff(h.GetItems)).Methods("GET")
	api.HandleFunc("/customers", adminOrStaff(h.GetCustomers)).Methods("GET")
	api.HandleFunc("/orders", adminOrStaff(h.GetOrders)).Methods("GET")
	api.HandleFunc("/store-health", adminOrStaff(h.GetStoreHealth)).Methods("GET")
	api.HandleFunc("/inventory", adminOrStaff(h.GetInventory)).Methods("GET")
	api.HandleFunc("/inventory-insights", adminOrStaff(h.GetInventoryInsights)).Methods("GET")
	api.HandleFunc("/staff", adminOrStaff(h.GetStaff)).Methods("GET")
	api.HandleFunc("/shifts", adminOrStaff(h.GetShifts)).Methods("GET")
	api.HandleFunc("/workforce-insights", adminOrStaff(h.GetWorkforceInsights)).Methods("GET")
	api.HandleFunc("/autopilot/alerts", adminOrStaff(h.GetAlerts)).Methods("GET")

	// Partner and finance views, admin only
	api.HandleFunc("/partners", adminOnly(h.GetPartners)).Methods("GET")
	api.HandleFunc("/partner-insights", adminOnly(h.GetPartnerInsights)).Methods("GET")
	api.HandleFunc("/finance/summary", adminOnly(h.GetFinanceSummary)).Methods("GET")
	api.HandleFunc("/finance/payouts", adminOnly(h.GetFinancePayouts)).Methods("GET")
	api.HandleFunc("/finance/stores", adminOnly(h.GetStoreProfitability)).Methods("GET")
	api.HandleFunc("/finance/brands", adminOnly(h.GetBrandProfitability)).Methods("GET")
	api.HandleFunc("/finance/items", adminOnly(h.GetItemMargins)).Methods("GET")
	api.HandleFunc("/finance-insights", adminOnly(h.GetFinanceInsights)).Methods("GET")
	api.HandleFunc("/items/margin-analysis", adminOnly(h.GetItemMarginAnalysis)).Methods("GET")

	// Autopilot, admin only
	api.HandleFunc("/autopilot/status", adminOnly(h.GetAutopilotStatus)).Methods("GET")
	api.HandleFunc("/autopilot/insights", adminOnly(h.GetAutopilotInsights)).Methods("GET")
	api.HandleFunc("/autopilot/top", adminOnly(h.GetAutopilotTop)).Methods("GET")
	api.HandleFunc("/autopilot/executive-brief", adminOnly(h.GetExecutiveBrief)).Methods("GET")

	// Growth intelligence, admin only
	api.HandleFunc("/metrics", adminOnly(h.GetMetrics)).Methods("GET")
	api.HandleFunc("/insights", adminOnly(h.GetGrowthInsights)).Methods("GET")
	api.HandleFunc("/actions", adminOnly(h.GetActions)).Methods("GET")
	api.HandleFunc("/dashboard", adminOnly(h.GetDashboard)).Methods("GET")
	api.HandleFunc("/customers/segments", adminOnly(h.GetCustomerSegments)).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log, tel))
	r.Use(recoveryMiddleware(log))
	r.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst)))
	r.Use(auth.Optional)

	// CORS wraps the router itself so preflight requests short-circuit
	// before method matching.
	return corsMiddleware(r)
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "grovyn-core-api",
	})
}
