package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ngoriel/portfolio-api/internal/domain"
	"github.com/ngoriel/portfolio-api/internal/http/response"
	"github.com/ngoriel/portfolio-api/pkg/logger"
)

const headerGeoRegion = "X-Geo-Region"

// LogVisit records a page visit (public)
func (h *Handlers) LogVisit(w http.ResponseWriter, r *http.Request) {
	var req domain.VisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	visit, err := h.analyticsService.LogVisit(r.Context(), &domain.Visitor{
		IPAddress:   getClientIP(r),
		Country:     r.Header.Get(headerGeoCountry),
		Region:      r.Header.Get(headerGeoRegion),
		City:        geoCity(r),
		PageVisited: req.PageVisited,
		UserAgent:   r.UserAgent(),
		Referrer:    req.Referrer,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to log visit", "error", err)
		response.InternalError(w, "Failed to log visit")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": visit.ID})
}

// FinishVisit records the visit duration when the page is left (public)
func (h *Handlers) FinishVisit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.FinishVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if req.DurationSeconds < 0 {
		response.BadRequest(w, "Duration must not be negative")
		return
	}

	if err := h.analyticsService.FinishVisit(r.Context(), id, req.DurationSeconds); err != nil {
		response.NotFound(w, "Visit not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListVisitors returns recent visits (admin)
func (h *Handlers) ListVisitors(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	var from, to *time.Time
	if v := r.URL.Query().Get("date_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			from = &t
		}
	}
	if v := r.URL.Query().Get("date_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			to = &t
		}
	}

	visitors, err := h.analyticsService.ListVisitors(r.Context(), limit, from, to)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list visitors", "error", err)
		response.InternalError(w, "Failed to list visitors")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"visitors": visitors,
		"total":    len(visitors),
	})
}

// VisitorStats returns the dashboard rollup (admin)
func (h *Handlers) VisitorStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsService.Stats(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to compute stats", "error", err)
		response.InternalError(w, "Failed to compute stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
