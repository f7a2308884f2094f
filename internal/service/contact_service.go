package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ngoriel/portfolio-api/internal/domain"
	"github.com/ngoriel/portfolio-api/internal/mailer"
	"github.com/ngoriel/portfolio-api/internal/repo/postgres"
	"github.com/ngoriel/portfolio-api/pkg/events"
	"github.com/ngoriel/portfolio-api/pkg/logger"
)

// ErrMessageNotFound reports a reply against a message id that does not exist.
var ErrMessageNotFound = errors.New("message not found")

type ContactService interface {
	Submit(ctx context.Context, req *domain.ContactRequest, ip, country, city string) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Reply(ctx context.Context, id string, req *domain.ReplyRequest) error
}

type contactService struct {
	repo     postgres.ContactRepo
	mailer   mailer.Service
	eventBus events.Publisher
}

func NewContactService(repo postgres.ContactRepo, mailer mailer.Service, eventBus events.Publisher) ContactService {
	return &contactService{
		repo:     repo,
		mailer:   mailer,
		eventBus: eventBus,
	}
}

func (s *contactService) Submit(ctx context.Context, req *domain.ContactRequest, ip, country, city string) (*domain.ContactMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	msg, err := s.repo.Create(ctx, req, ip, country, city)
	if err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	// The notify subscriber picks this up and emails the photographer.
	if err := s.eventBus.Publish(ctx, events.ContactReceived, events.ContactReceivedEvent{
		MessageID:   msg.ID,
		Name:        msg.Name,
		Email:       msg.Email,
		Phone:       msg.Phone,
		BookingDate: msg.BookingDate,
		Venue:       msg.Venue,
		Message:     msg.Message,
		ReceivedAt:  msg.CreatedAt,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish contact event", "error", err, "message_id", msg.ID)
	}

	return msg, nil
}

func (s *contactService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	messages, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (s *contactService) MarkRead(ctx context.Context, id string) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// Reply emails the submitter and marks the message read.
func (s *contactService) Reply(ctx context.Context, id string, req *domain.ReplyRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load message: %w", err)
	}
	if msg == nil {
		return ErrMessageNotFound
	}

	if err := s.mailer.SendReply(msg.Email, msg.Name, msg.Message, req.ReplyText); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		logger.WarnContext(ctx, "Failed to mark replied message read", "error", err, "message_id", id)
	}

	if err := s.eventBus.Publish(ctx, events.ContactReplied, events.ContactRepliedEvent{
		MessageID: id,
		Email:     msg.Email,
		RepliedAt: time.Now(),
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish reply event", "error", err, "message_id", id)
	}

	return nil
}
