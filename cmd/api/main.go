package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/ngoriel/portfolio-api/internal/domain"
	"github.com/ngoriel/portfolio-api/internal/http/handlers"
	ratelimit "github.com/ngoriel/portfolio-api/internal/http/middleware"
	"github.com/ngoriel/portfolio-api/internal/mailer"
	"github.com/ngoriel/portfolio-api/internal/notify"
	"github.com/ngoriel/portfolio-api/internal/repo/postgres"
	"github.com/ngoriel/portfolio-api/internal/repo/redisstore"
	"github.com/ngoriel/portfolio-api/internal/service"
	"github.com/ngoriel/portfolio-api/pkg/config"
	"github.com/ngoriel/portfolio-api/pkg/database"
	"github.com/ngoriel/portfolio-api/pkg/events"
	"github.com/ngoriel/portfolio-api/pkg/logger"
	mw "github.com/ngoriel/portfolio-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Connect to database
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Connect to event bus
	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Idempotency store for duplicate contact submissions
	idemStore, err := redisstore.New(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer idemStore.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(pool)
	settingsRepo := postgres.NewSettingsRepo(pool)
	galleryRepo := postgres.NewGalleryRepo(pool)
	videoRepo := postgres.NewVideoRepo(pool)
	contactRepo := postgres.NewContactRepo(pool)
	visitorRepo := postgres.NewVisitorRepo(pool)
	rateLimitRepo := postgres.NewRateLimitRepo(pool)

	// Mailer selection
	var mail mailer.Service
	switch {
	case cfg.Email.DevMode:
		mail = mailer.NewDevMailer()
	case cfg.Email.MailerSendKey != "":
		mail = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.SenderName, cfg.Email.SenderEmail)
	default:
		mail = mailer.NewSMTPMailer(
			cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SenderEmail,
			cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS,
		)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg)
	settingsService := service.NewSettingsService(settingsRepo, mail, eventBus)
	mediaService := service.NewMediaService(galleryRepo, videoRepo)
	contactService := service.NewContactService(contactRepo, mail, eventBus)
	analyticsService := service.NewAnalyticsService(visitorRepo, eventBus)

	// Seed the admin identity and the settings document
	if err := authService.SeedAdmin(ctx); err != nil {
		logger.Error("Failed to seed admin identity", "error", err)
		os.Exit(1)
	}
	if err := settingsService.Seed(ctx); err != nil {
		logger.Error("Failed to seed settings", "error", err)
		os.Exit(1)
	}

	// Contact notifications run off the bus, not in the request path
	subscriber := notify.NewSubscriber(eventBus, mail, cfg.Email.InboxEmail)
	if err := subscriber.Start(); err != nil {
		logger.Error("Failed to start notify subscriber", "error", err)
		os.Exit(1)
	}

	// Initialize handlers
	h := handlers.New(authService, settingsService, mediaService, contactService, analyticsService, cfg)

	contactLimiter := ratelimit.NewRateLimiter(rateLimitRepo, ratelimit.RateLimitConfig{
		Requests: 5,
		Window:   time.Minute,
		KeyFunc:  ratelimit.ContactRateLimitKeyFunc,
	})
	contactLimiter.StartCleanup(ctx, time.Hour)

	// Setup router
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireAdmin := h.RequireJWT(domain.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"message":"` + cfg.Site.Name + ` API"}`))
		})

		r.Post("/auth/login", h.Login)
		r.With(requireAdmin).Get("/auth/profile", h.Profile)
		r.With(requireAdmin).Post("/auth/password", h.UpdatePassword)

		r.Get("/settings/public", h.PublicSettings)
		r.With(requireAdmin).Get("/settings", h.GetSettings)
		r.With(requireAdmin).Put("/settings", h.UpdateSettings)
		r.With(requireAdmin).Post("/settings/test-email", h.TestEmail)

		r.Route("/gallery", func(r chi.Router) {
			r.Get("/", h.ListGallery)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", h.CreateImage)
				r.Put("/reorder", h.ReorderGallery)
				r.Put("/{id}", h.UpdateImage)
				r.Delete("/{id}", h.DeleteImage)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", h.ListVideos)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", h.CreateVideo)
				r.Put("/{id}", h.UpdateVideo)
				r.Delete("/{id}", h.DeleteVideo)
			})
		})

		r.With(contactLimiter.Middleware(), mw.IdempotencyMiddleware(idemStore)).
			Post("/contact", h.SubmitContact)
		r.With(requireAdmin).Get("/contact", h.ListContact)
		r.With(requireAdmin).Post("/contact/{id}/read", h.MarkContactRead)
		r.With(requireAdmin).Post("/contact/{id}/reply", h.ReplyContact)
		r.With(requireAdmin).Delete("/contact/{id}", h.DeleteContact)

		r.Post("/analytics/visit", h.LogVisit)
		r.Put("/analytics/visit/{id}", h.FinishVisit)
		r.With(requireAdmin).Get("/analytics/visitors", h.ListVisitors)
		r.With(requireAdmin).Get("/analytics/stats", h.VisitorStats)
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}()

	logger.Info("Starting API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
