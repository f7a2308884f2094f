package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ngoriel/portfolio-api/internal/domain"
	"github.com/ngoriel/portfolio-api/internal/http/response"
	"github.com/ngoriel/portfolio-api/pkg/logger"
)

// PublicSettings serves the unauthenticated settings projection
func (h *Handlers) PublicSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.GetPublic(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load public settings", "error", err)
		response.InternalError(w, "Failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// GetSettings serves the full settings document (admin)
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load settings", "error", err)
		response.InternalError(w, "Failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings applies a replace-section update to the settings document
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var upd domain.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	settings, err := h.settingsService.Update(r.Context(), &upd)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// TestEmail sends a test mail to verify the email configuration
func (h *Handlers) TestEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.To == "" {
		response.BadRequest(w, "Recipient email is required")
		return
	}

	if err := h.settingsService.SendTestEmail(r.Context(), req.To); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Test email sent",
	})
}
