package mailer

import "github.com/ngoriel/portfolio-api/internal/domain"

// Service sends the site's transactional email: the inquiry notification to
// the photographer, replies back to the submitter, and config test mails.
type Service interface {
	SendContactNotification(inbox string, m *domain.ContactMessage) error
	SendReply(toEmail, toName, originalMessage, replyText string) error
	SendTestEmail(toEmail string) error
}
