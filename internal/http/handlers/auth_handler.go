package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ngoriel/portfolio-api/internal/domain"
	"github.com/ngoriel/portfolio-api/internal/http/response"
)

// Login handles admin authentication
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		response.WriteError(w, http.StatusUnauthorized, "Invalid credentials", response.CodeUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Profile returns the authenticated admin identity
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(r.Context(), claims.Sub)
	if err != nil {
		response.NotFound(w, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, user.ToUserInfo())
}

// UpdatePassword changes the admin password after re-verifying the current one
func (h *Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	var req domain.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	if err := h.authService.UpdatePassword(r.Context(), claims.Sub, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Password updated successfully",
	})
}
