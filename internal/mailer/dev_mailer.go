package mailer

import (
	"github.com/ngoriel/portfolio-api/internal/domain"
	"github.com/ngoriel/portfolio-api/pkg/logger"
)

// DevMailer logs emails instead of sending them.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendContactNotification(inbox string, m *domain.ContactMessage) error {
	logger.Info("[DEV MAIL] Contact notification",
		"to", inbox,
		"from_name", m.Name,
		"from_email", m.Email,
		"booking_date", m.BookingDate,
		"venue", m.Venue,
		"message", m.Message,
	)
	return nil
}

func (d *DevMailer) SendReply(toEmail, toName, originalMessage, replyText string) error {
	logger.Info("[DEV MAIL] Reply",
		"to", toEmail,
		"name", toName,
		"reply", replyText,
	)
	return nil
}

func (d *DevMailer) SendTestEmail(toEmail string) error {
	logger.Info("[DEV MAIL] Test email", "to", toEmail)
	return nil
}
