package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/grovyn/core-platform/internal/brain"
	"github.com/grovyn/core-platform/pkg/logger"
)

// Handler serves every API endpoint straight from the booted registry.
// Nothing here computes; the pipeline already did.
type Handler struct {
	reg    *brain.Registry
	logger *logger.Logger
}

func NewHandler(reg *brain.Registry, log *logger.Logger) *Handler {
	return &Handler{reg: reg, logger: log}
}

type listMeta struct {
	Count int `json:"count"`
}

type listEnvelope struct {
	Data interface{} `json:"data"`
	Meta listMeta    `json:"meta"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondList(w http.ResponseWriter, data interface{}, count int) {
	respondJSON(w, http.StatusOK, listEnvelope{Data: data, Meta: listMeta{Count: count}})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}

// requireBooted guards every data endpoint. The server refuses to
// answer from a registry that has not finished booting.
func (h *Handler) requireBooted(w http.ResponseWriter) bool {
	if !h.reg.Booted() {
		respondError(w, http.StatusServiceUnavailable, "Pipeline not booted")
		return false
	}
	return true
}
