package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/grovyn/core-platform/internal/api/handlers"
	"github.com/grovyn/core-platform/internal/brain"
	"github.com/grovyn/core-platform/pkg/logger"
)

// Auth holds in-memory sessions. No persistence, no JWT; a restart
// logs everyone out, which is fine for a state-rebuilt-on-boot system.
type Auth struct {
	mu       sync.RWMutex
	sessions map[string]handlers.Identity

	reg      *brain.Registry
	password string
	logger   *logger.Logger
}

func NewAuth(reg *brain.Registry, password string, log *logger.Logger) *Auth {
	return &Auth{
		sessions: make(map[string]handlers.Identity),
		reg:      reg,
		password: password,
		logger:   log,
	}
}

func (a *Auth) session(token string) (handlers.Identity, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	id, ok := a.sessions[token]
	return id, ok
}

func (a *Auth) register(token string, id handlers.Identity) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions[token] = id
}

// Optional attaches the caller's identity when a valid bearer token is
// present; anonymous requests pass through untouched.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if id, ok := a.session(token); ok {
				r = r.WithContext(handlers.WithIdentity(r.Context(), id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Require wraps a handler so only sessions holding one of the allowed
// roles get through.
func (a *Auth) Require(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id, ok := handlers.IdentityFrom(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			for _, role := range roles {
				if id.Role == role {
					next(w, r)
					return
				}
			}
			forbidden(w, "Insufficient role")
		}
	}
}

// RequireStoreAccess additionally checks that the {id} path variable
// names a store the session may read. Admins always pass.
func (a *Auth) RequireStoreAccess(param string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := handlers.IdentityFrom(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		storeID := pathVar(r, param)
		if !id.CanAccessStore(storeID) {
			forbidden(w, "Access to this store not allowed")
			return
		}
		next(w, r)
	}
}

func unauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{
		"error":   "Unauthorized",
		"message": "Valid session required",
	})
}

func forbidden(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusForbidden, map[string]string{
		"error":   "Forbidden",
		"message": message,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	StoreID  string `json:"storeId"`
}

type loginResponse struct {
	UserID       string   `json:"userId"`
	Role         string   `json:"role"`
	StoreIDs     []string `json:"storeIds"`
	SessionToken string   `json:"sessionToken"`
}

// StoreOptions handles GET /api/v1/auth/stores: the public id/name
// list backing the login form.
func (a *Auth) StoreOptions(w http.ResponseWriter, r *http.Request) {
	type option struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	options := make([]option, 0, len(a.reg.Dataset.Stores))
	for _, s := range a.reg.Dataset.Stores {
		options = append(options, option{ID: s.ID, Name: s.Name})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": options,
		"meta": map[string]int{"count": len(options)},
	})
}

// Login handles POST /api/v1/auth/login. Staff sessions must name a
// valid store; admin sessions get the full store list.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		badRequest(w, "Email is required")
		return
	}
	if req.Password == "" {
		badRequest(w, "Password is required")
		return
	}
	if req.Password != a.password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "Unauthorized",
			"message": "Invalid email or password",
		})
		return
	}
	if req.Role != handlers.RoleAdmin && req.Role != handlers.RoleStaff {
		badRequest(w, "Role must be ADMIN or STAFF")
		return
	}

	var storeIDs []string
	if req.Role == handlers.RoleStaff {
		storeID := strings.TrimSpace(req.StoreID)
		if storeID == "" {
			badRequest(w, "Store selection is required for Staff")
			return
		}
		if !a.knownStore(storeID) {
			badRequest(w, "Invalid store")
			return
		}
		storeIDs = []string{storeID}
	} else {
		for _, s := range a.reg.Dataset.Stores {
			storeIDs = append(storeIDs, s.ID)
		}
	}

	userID := "u-" + uuid.NewString()[:8]
	token := uuid.NewString()
	identity := handlers.Identity{UserID: userID, Role: req.Role, StoreIDs: storeIDs}
	a.register(token, identity)

	a.logger.WithFields(map[string]interface{}{
		"userId": userID,
		"role":   req.Role,
	}).Info("Session created")

	writeJSON(w, http.StatusOK, loginResponse{
		UserID:       userID,
		Role:         req.Role,
		StoreIDs:     storeIDs,
		SessionToken: token,
	})
}

func (a *Auth) knownStore(storeID string) bool {
	for _, s := range a.reg.Dataset.Stores {
		if s.ID == storeID {
			return true
		}
	}
	return false
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error":   "Bad request",
		"message": message,
	})
}
