package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ngoriel/portfolio-api/internal/domain"
	"github.com/ngoriel/portfolio-api/internal/repo/postgres"
	"github.com/ngoriel/portfolio-api/pkg/events"
	"github.com/ngoriel/portfolio-api/pkg/logger"
)

type AnalyticsService interface {
	LogVisit(ctx context.Context, v *domain.Visitor) (*domain.Visitor, error)
	FinishVisit(ctx context.Context, id string, durationSeconds int) error
	ListVisitors(ctx context.Context, limit int, from, to *time.Time) ([]domain.Visitor, error)
	Stats(ctx context.Context) (*domain.VisitorStats, error)
}

type analyticsService struct {
	repo     postgres.VisitorRepo
	eventBus events.Publisher
}

func NewAnalyticsService(repo postgres.VisitorRepo, eventBus events.Publisher) AnalyticsService {
	return &analyticsService{
		repo:     repo,
		eventBus: eventBus,
	}
}

func (s *analyticsService) LogVisit(ctx context.Context, v *domain.Visitor) (*domain.Visitor, error) {
	if v.PageVisited == "" {
		v.PageVisited = "/"
	}
	visit, err := s.repo.Create(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("failed to log visit: %w", err)
	}

	if err := s.eventBus.Publish(ctx, events.VisitLogged, events.VisitLoggedEvent{
		VisitID:     visit.ID,
		PageVisited: visit.PageVisited,
		Country:     visit.Country,
		LoggedAt:    visit.VisitStart,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish visit event", "error", err, "visit_id", visit.ID)
	}

	return visit, nil
}

func (s *analyticsService) FinishVisit(ctx context.Context, id string, durationSeconds int) error {
	if durationSeconds < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	if err := s.repo.Finish(ctx, id, durationSeconds); err != nil {
		return fmt.Errorf("failed to finish visit: %w", err)
	}
	return nil
}

func (s *analyticsService) ListVisitors(ctx context.Context, limit int, from, to *time.Time) ([]domain.Visitor, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	visitors, err := s.repo.List(ctx, limit, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitors: %w", err)
	}
	return visitors, nil
}

func (s *analyticsService) Stats(ctx context.Context) (*domain.VisitorStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}
