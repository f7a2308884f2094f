package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/ngoriel/portfolio-api/internal/http/response"
	"github.com/ngoriel/portfolio-api/internal/service"
	"github.com/ngoriel/portfolio-api/pkg/auth"
	"github.com/ngoriel/portfolio-api/pkg/config"
	"github.com/ngoriel/portfolio-api/pkg/logger"
)

type Handlers struct {
	authService      service.AuthService
	settingsService  service.SettingsService
	mediaService     service.MediaService
	contactService   service.ContactService
	analyticsService service.AnalyticsService
	config           *config.Config
}

func New(
	authService service.AuthService,
	settingsService service.SettingsService,
	mediaService service.MediaService,
	contactService service.ContactService,
	analyticsService service.AnalyticsService,
	config *config.Config,
) *Handlers {
	return &Handlers{
		authService:      authService,
		settingsService:  settingsService,
		mediaService:     mediaService,
		contactService:   contactService,
		analyticsService: analyticsService,
		config:           config,
	}
}

type ctxKey string

const ctxClaims ctxKey = "claims"

// RequireJWT gates routes behind a valid bearer token. Missing, malformed
// and expired credentials all map to 401; 403 is reserved for a valid token
// whose role is insufficient.
func (h *Handlers) RequireJWT(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				response.WriteError(w, http.StatusUnauthorized, "Missing or invalid authorization header", response.CodeUnauthorized)
				return
			}

			claims, err := auth.Parse(strings.TrimPrefix(authz, "Bearer "), h.config.Auth.JWTSecret)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, "Invalid token", response.CodeInvalidToken)
				return
			}

			if requiredRole != "" && claims.Role != requiredRole {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), logger.UserIDKey, claims.Sub)
			ctx = context.WithValue(ctx, ctxClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper functions
func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(ctxClaims).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func getClientIP(r *http.Request) string {
	// X-Forwarded-For first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
