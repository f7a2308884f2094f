package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ngoriel/portfolio-api/internal/domain"
	"github.com/ngoriel/portfolio-api/internal/mailer"
	"github.com/ngoriel/portfolio-api/internal/repo/postgres"
	"github.com/ngoriel/portfolio-api/pkg/events"
	"github.com/ngoriel/portfolio-api/pkg/logger"
)

type SettingsService interface {
	GetPublic(ctx context.Context) (*domain.PublicSettings, error)
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, upd *domain.SettingsUpdate) (*domain.Settings, error)
	SendTestEmail(ctx context.Context, to string) error
	Seed(ctx context.Context) error
}

type settingsService struct {
	repo     postgres.SettingsRepo
	mailer   mailer.Service
	eventBus events.Publisher
}

func NewSettingsService(repo postgres.SettingsRepo, mailer mailer.Service, eventBus events.Publisher) SettingsService {
	return &settingsService{
		repo:     repo,
		mailer:   mailer,
		eventBus: eventBus,
	}
}

func (s *settingsService) GetPublic(ctx context.Context) (*domain.PublicSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings.Public(), nil
}

func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// Update applies a replace-section merge: every submitted section replaces
// the stored one wholesale, omitted sections keep their prior value. The
// returned document is the post-update state, visible to all readers.
func (s *settingsService) Update(ctx context.Context, upd *domain.SettingsUpdate) (*domain.Settings, error) {
	if err := upd.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	settings, err := s.repo.ApplyUpdate(ctx, upd)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	if err := s.eventBus.Publish(ctx, events.SettingsUpdated, events.SettingsUpdatedEvent{
		Sections:  upd.Sections(),
		UpdatedAt: time.Now(),
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish settings event", "error", err)
	}

	return settings, nil
}

func (s *settingsService) SendTestEmail(ctx context.Context, to string) error {
	if err := s.mailer.SendTestEmail(to); err != nil {
		return fmt.Errorf("failed to send test email: %w", err)
	}
	return nil
}

func (s *settingsService) Seed(ctx context.Context) error {
	if err := s.repo.Seed(ctx, domain.DefaultSettings()); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}
