package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ngoriel/portfolio-api/internal/domain"
	"github.com/ngoriel/portfolio-api/internal/http/response"
	"github.com/ngoriel/portfolio-api/pkg/logger"
)

// ListGallery serves gallery images, optionally filtered by category
func (h *Handlers) ListGallery(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	images, err := h.mediaService.ListImages(r.Context(), category)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list gallery", "error", err)
		response.InternalError(w, "Failed to list gallery")
		return
	}

	writeJSON(w, http.StatusOK, images)
}

// CreateImage adds a gallery entry (admin)
func (h *Handlers) CreateImage(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	img, err := h.mediaService.CreateImage(r.Context(), &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, img)
}

// UpdateImage edits a gallery entry (admin)
func (h *Handlers) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.UpdateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	img, err := h.mediaService.UpdateImage(r.Context(), id, &req)
	if err != nil {
		response.NotFound(w, "Image not found")
		return
	}

	writeJSON(w, http.StatusOK, img)
}

// DeleteImage removes a gallery entry (admin)
func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.mediaService.DeleteImage(r.Context(), id); err != nil {
		response.NotFound(w, "Image not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReorderGallery rewrites the gallery sort order (admin)
func (h *Handlers) ReorderGallery(w http.ResponseWriter, r *http.Request) {
	var req domain.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	if err := h.mediaService.ReorderImages(r.Context(), &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Gallery reordered",
	})
}

// ListVideos serves the video collection, optionally filtered by category
func (h *Handlers) ListVideos(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	videos, err := h.mediaService.ListVideos(r.Context(), category)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list videos", "error", err)
		response.InternalError(w, "Failed to list videos")
		return
	}

	writeJSON(w, http.StatusOK, videos)
}

// CreateVideo adds a video entry (admin)
func (h *Handlers) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	video, err := h.mediaService.CreateVideo(r.Context(), &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, video)
}

// UpdateVideo edits a video entry (admin)
func (h *Handlers) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.UpdateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	video, err := h.mediaService.UpdateVideo(r.Context(), id, &req)
	if err != nil {
		response.NotFound(w, "Video not found")
		return
	}

	writeJSON(w, http.StatusOK, video)
}

// DeleteVideo removes a video entry (admin)
func (h *Handlers) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.mediaService.DeleteVideo(r.Context(), id); err != nil {
		response.NotFound(w, "Video not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
