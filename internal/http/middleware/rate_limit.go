package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ngoriel/portfolio-api/internal/http/response"
	"github.com/ngoriel/portfolio-api/internal/repo/postgres"
	"github.com/ngoriel/portfolio-api/pkg/logger"
)

// RateLimitConfig defines rate limiting parameters
type RateLimitConfig struct {
	Requests int                            // Max requests per window
	Window   time.Duration                  // Time window duration
	KeyFunc  func(r *http.Request) []string // Function to generate rate limit keys
}

// RateLimiter throttles abusive clients, backed by the Postgres UPSERT
// counter so limits survive restarts.
type RateLimiter struct {
	repo   postgres.RateLimitRepo
	config RateLimitConfig
}

func NewRateLimiter(repo postgres.RateLimitRepo, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		repo:   repo,
		config: config,
	}
}

func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			keys := rl.config.KeyFunc(r)

			for _, key := range keys {
				allowed, err := rl.repo.CheckRateLimit(r.Context(), key, rl.config.Requests, rl.config.Window)
				if err != nil {
					logger.ErrorContext(r.Context(), "Rate limit check failed", "error", err)
					continue // fail open
				}
				if !allowed {
					response.RateLimit(w, "Too many requests. Please try again later.")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// StartCleanup periodically drops expired rate limit windows so the counter
// table does not grow without bound. Stops when ctx is cancelled.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := rl.repo.CleanupExpired(ctx)
				if err != nil {
					logger.Error("Rate limit cleanup failed", "error", err)
					continue
				}
				if deleted > 0 {
					logger.Debug("Rate limit cleanup", "deleted", deleted)
				}
			}
		}
	}()
}

// ContactRateLimitKeyFunc keys the public contact form limiter on the real
// client IP. Keying on RemoteAddr alone would hand every TCP connection a
// fresh counter, since the port changes each time.
func ContactRateLimitKeyFunc(r *http.Request) []string {
	if ip := clientIP(r); ip != "" {
		return []string{"contact:" + ip}
	}
	return nil
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
