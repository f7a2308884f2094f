// Package notify consumes contact events off the bus and emails the site
// owner. Kept out of the request path so a slow mail provider never delays
// the form submission.
package notify

import (
	"encoding/json"

	"github.com/ngoriel/portfolio-api/internal/domain"
	"github.com/ngoriel/portfolio-api/internal/mailer"
	"github.com/ngoriel/portfolio-api/pkg/events"
	"github.com/ngoriel/portfolio-api/pkg/logger"
)

type Subscriber struct {
	bus    events.Subscriber
	mailer mailer.Service
	inbox  string
}

func NewSubscriber(bus events.Subscriber, mailer mailer.Service, inbox string) *Subscriber {
	return &Subscriber{
		bus:    bus,
		mailer: mailer,
		inbox:  inbox,
	}
}

func (s *Subscriber) Start() error {
	return s.bus.QueueSubscribe(events.ContactReceived, "notify", s.handleContactReceived)
}

func (s *Subscriber) handleContactReceived(msg *events.Message) {
	var ev events.ContactReceivedEvent
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		logger.Error("Failed to decode contact event", "error", err)
		return
	}

	if s.inbox == "" {
		logger.Warn("No inbox configured, dropping contact notification", "message_id", ev.MessageID)
		return
	}

	m := &domain.ContactMessage{
		ID:          ev.MessageID,
		Name:        ev.Name,
		Email:       ev.Email,
		Phone:       ev.Phone,
		BookingDate: ev.BookingDate,
		Venue:       ev.Venue,
		Message:     ev.Message,
		CreatedAt:   ev.ReceivedAt,
	}
	if err := s.mailer.SendContactNotification(s.inbox, m); err != nil {
		logger.Error("Failed to send contact notification", "error", err, "message_id", ev.MessageID)
		return
	}
	logger.Info("Contact notification sent", "message_id", ev.MessageID)
}
