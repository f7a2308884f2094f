package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/ngoriel/portfolio-api/internal/domain"
	"github.com/ngoriel/portfolio-api/internal/http/response"
	"github.com/ngoriel/portfolio-api/internal/service"
	"github.com/ngoriel/portfolio-api/pkg/logger"
)

// geo headers set by the edge proxy in front of the API
const (
	headerGeoCountry = "X-Geo-Country"
	headerGeoCity    = "X-Geo-City"
)

func geoCity(r *http.Request) string {
	city := r.Header.Get(headerGeoCity)
	if decoded, err := url.QueryUnescape(city); err == nil {
		return decoded
	}
	return city
}

// SubmitContact stores a public contact-form submission
func (h *Handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	msg, err := h.contactService.Submit(r.Context(), &req,
		getClientIP(r), r.Header.Get(headerGeoCountry), geoCity(r))
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

// ListContact returns all stored messages, newest first (admin)
func (h *Handlers) ListContact(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactService.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list messages", "error", err)
		response.InternalError(w, "Failed to list messages")
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// MarkContactRead flags a message as read (admin)
func (h *Handlers) MarkContactRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.contactService.MarkRead(r.Context(), id); err != nil {
		response.NotFound(w, "Message not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Message marked as read",
	})
}

// DeleteContact removes a message (admin)
func (h *Handlers) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		response.NotFound(w, "Message not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReplyContact emails a reply to the submitter and marks the message read (admin)
func (h *Handlers) ReplyContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	if err := h.contactService.Reply(r.Context(), id, &req); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			response.NotFound(w, "Message not found")
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Reply sent successfully",
	})
}
