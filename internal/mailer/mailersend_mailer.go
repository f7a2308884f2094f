package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"
	"github.com/ngoriel/portfolio-api/internal/domain"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendContactNotification(inbox string, msg *domain.ContactMessage) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}
	subject, text, html := contactNotificationBody(msg)
	return m.sendEmail(inbox, "", subject, text, html)
}

func (m *MailerSendClient) SendReply(toEmail, toName, originalMessage, replyText string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}
	subject, text, html := replyBody(toName, originalMessage, replyText)
	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) SendTestEmail(toEmail string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}
	subject, text, html := testBody()
	return m.sendEmail(toEmail, "", subject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)
	msg.SetText(text)
	msg.SetHTML(html)

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
