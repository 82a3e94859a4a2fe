package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovyn/core-platform/internal/api/handlers"
	"github.com/grovyn/core-platform/internal/brain"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
	"github.com/grovyn/core-platform/pkg/telemetry"
)

const testPassword = "grovyn@123"

var (
	bootOnce   sync.Once
	testRouter http.Handler
	testReg    *brain.Registry
)

func apiConfig() *config.Config {
	return &config.Config{
		Port:           "8080",
		Env:            "development",
		AuthPassword:   testPassword,
		MetricsEnabled: true,
		Seed: config.SeedConfig{
			RandomSeed:     7,
			Cities:         2,
			StoresPerCity:  2,
			BrandsPerStore: 2,
			ItemsPerBrand:  5,
			Customers:      150,
			Orders:         400,
			AnchorDate:     "2025-06-30",
		},
		Rules: config.DefaultThresholds(),
	}
}

func router(t *testing.T) http.Handler {
	t.Helper()
	bootOnce.Do(func() {
		cfg := apiConfig()
		log := logger.NewNop()
		tel := telemetry.NewRegistry()

		reg, err := brain.Boot(cfg, log, tel)
		if err != nil {
			panic(err)
		}
		testReg = reg

		h := handlers.NewHandler(reg, log)
		auth := NewAuth(reg, cfg.AuthPassword, log)
		testRouter = NewRouter(h, auth, cfg, log, tel)
	})
	require.NotNil(t, testRouter)
	return testRouter
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func login(t *testing.T, r http.Handler, role, storeID string) loginResponse {
	t.Helper()
	body := map[string]string{
		"email":    "ops@example.com",
		"password": testPassword,
		"role":     role,
	}
	if storeID != "" {
		body["storeId"] = storeID
	}
	rec := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp loginResponse
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.SessionToken)
	return resp
}

func TestHealthIsPublic(t *testing.T) {
	rec := doJSON(t, router(t), http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestPrometheusEndpointIsPublic(t *testing.T) {
	rec := doJSON(t, router(t), http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "grovyn_pipeline_boot_seconds")
}

func TestAuthStoresIsPublic(t *testing.T) {
	rec := doJSON(t, router(t), http.MethodGet, "/api/v1/auth/stores", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 4, body.Meta.Count)
	assert.NotEmpty(t, body.Data[0].Name)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	rec := doJSON(t, router(t), http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ops@example.com",
		"password": "wrong",
		"role":     handlers.RoleAdmin,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginStaffRequiresStore(t *testing.T) {
	r := router(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ops@example.com",
		"password": testPassword,
		"role":     handlers.RoleStaff,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ops@example.com",
		"password": testPassword,
		"role":     handlers.RoleStaff,
		"storeId":  "no-such-store",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminSessionSeesAllStores(t *testing.T) {
	r := router(t)
	sess := login(t, r, handlers.RoleAdmin, "")
	assert.Len(t, sess.StoreIDs, 4)

	rec := doJSON(t, r, http.MethodGet, "/api/v1/stores", sess.SessionToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 4, body.Meta.Count)
}

func TestAnonymousRequestsAreRejected(t *testing.T) {
	rec := doJSON(t, router(t), http.MethodGet, "/api/v1/stores", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router(t), http.MethodGet, "/api/v1/stores", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStaffSessionIsStoreScoped(t *testing.T) {
	r := router(t)
	stores := testReg.Dataset.Stores
	require.GreaterOrEqual(t, len(stores), 2)

	sess := login(t, r, handlers.RoleStaff, stores[0].ID)
	require.Equal(t, []string{stores[0].ID}, sess.StoreIDs)

	rec := doJSON(t, r, http.MethodGet, "/api/v1/stores", sess.SessionToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 1, body.Meta.Count)

	// Own store health is readable, a sibling store is not.
	rec = doJSON(t, r, http.MethodGet, "/api/v1/stores/"+stores[0].ID+"/health", sess.SessionToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/v1/stores/"+stores[1].ID+"/health", sess.SessionToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStaffCannotReachAdminSurfaces(t *testing.T) {
	r := router(t)
	stores := testReg.Dataset.Stores
	sess := login(t, r, handlers.RoleStaff, stores[0].ID)

	for _, path := range []string{
		"/api/v1/finance/summary",
		"/api/v1/partners",
		"/api/v1/autopilot/status",
		"/api/v1/dashboard",
		"/api/v1/customers/segments",
	} {
		rec := doJSON(t, r, http.MethodGet, path, sess.SessionToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}

func TestStoreByID(t *testing.T) {
	r := router(t)
	sess := login(t, r, handlers.RoleAdmin, "")
	store := testReg.Dataset.Stores[0]

	rec := doJSON(t, r, http.MethodGet, "/api/v1/stores/"+store.ID, sess.SessionToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decode(t, rec, &got)
	assert.Equal(t, store.ID, got.ID)
	assert.Equal(t, store.Name, got.Name)

	rec = doJSON(t, r, http.MethodGet, "/api/v1/stores/no-such-store", sess.SessionToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFinancePayouts(t *testing.T) {
	r := router(t)
	sess := login(t, r, handlers.RoleAdmin, "")

	rec := doJSON(t, r, http.MethodGet, "/api/v1/finance/payouts", sess.SessionToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payouts map[string]float64
	decode(t, rec, &payouts)
	assert.NotEmpty(t, payouts)
}

func TestAutopilotStatusPayload(t *testing.T) {
	r := router(t)
	sess := login(t, r, handlers.RoleAdmin, "")

	rec := doJSON(t, r, http.MethodGet, "/api/v1/autopilot/status", sess.SessionToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AutopilotActive       bool           `json:"autopilotActive"`
		TotalInsightsConsumed int            `json:"totalInsightsConsumed"`
		TopPrioritiesCount    int            `json:"topPrioritiesCount"`
		ConsumedByModule      map[string]int `json:"insightsConsumedByModule"`
	}
	decode(t, rec, &body)
	assert.True(t, body.AutopilotActive)
	assert.Equal(t, len(testReg.Autopilot.Ranked), body.TotalInsightsConsumed)
	assert.Equal(t, len(testReg.Autopilot.TopPriorities), body.TopPrioritiesCount)
}

func TestExecutiveBriefEndpoint(t *testing.T) {
	r := router(t)
	sess := login(t, r, handlers.RoleAdmin, "")

	rec := doJSON(t, r, http.MethodGet, "/api/v1/autopilot/executive-brief", sess.SessionToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		BusinessSnapshot map[string]interface{} `json:"businessSnapshot"`
	}
	decode(t, rec, &body)
	assert.NotEmpty(t, body.BusinessSnapshot)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/stores", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
