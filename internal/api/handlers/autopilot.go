package handlers

import "net/http"

// GetAutopilotStatus handles GET /api/v1/autopilot/status.
func (h *Handler) GetAutopilotStatus(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	ap := h.reg.Autopilot
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"autopilotActive":          true,
		"totalInsightsConsumed":    len(ap.Ranked),
		"topPrioritiesCount":       len(ap.TopPriorities),
		"insightsConsumedByModule": ap.ConsumedByDomain,
	})
}

// GetAutopilotInsights handles GET /api/v1/autopilot/insights.
func (h *Handler) GetAutopilotInsights(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	ranked := h.reg.Autopilot.Ranked
	respondList(w, ranked, len(ranked))
}

// GetAutopilotTop handles GET /api/v1/autopilot/top.
func (h *Handler) GetAutopilotTop(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	top := h.reg.Autopilot.TopPriorities
	respondList(w, top, len(top))
}

// GetAlerts handles GET /api/v1/autopilot/alerts.
func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	alerts := h.reg.Autopilot.Alerts
	respondList(w, alerts, len(alerts))
}

// GetExecutiveBrief handles GET /api/v1/autopilot/executive-brief.
func (h *Handler) GetExecutiveBrief(w http.ResponseWriter, r *http.Request) {
	if !h.requireBooted(w) {
		return
	}
	respondJSON(w, http.StatusOK, h.reg.Autopilot.Brief)
}
