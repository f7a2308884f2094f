package mailer

import (
	"fmt"
	"html"
	"strings"

	"github.com/ngoriel/portfolio-api/internal/domain"
)

func contactNotificationBody(m *domain.ContactMessage) (subject, text, htmlBody string) {
	subject = fmt.Sprintf("New inquiry from %s", m.Name)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\nEmail: %s\n", m.Name, m.Email)
	if m.Phone != "" {
		fmt.Fprintf(&sb, "Phone: %s\n", m.Phone)
	}
	if m.BookingDate != "" {
		fmt.Fprintf(&sb, "Booking date: %s\n", m.BookingDate)
	}
	if m.Venue != "" {
		fmt.Fprintf(&sb, "Venue: %s\n", m.Venue)
	}
	fmt.Fprintf(&sb, "\n%s\n", m.Message)
	text = sb.String()

	row := func(label, value string) string {
		if value == "" {
			return ""
		}
		return fmt.Sprintf(
			`<tr><td style="padding:6px 0;color:#888;font-size:13px;">%s</td><td style="padding:6px 0;font-size:13px;">%s</td></tr>`,
			label, html.EscapeString(value))
	}
	htmlBody = fmt.Sprintf(`
		<h2>New inquiry</h2>
		<table style="width:100%%;border-collapse:collapse;">
			%s%s%s%s
		</table>
		<p style="white-space:pre-wrap;">%s</p>
	`,
		row("Name", m.Name), row("Email", m.Email),
		row("Booking date", m.BookingDate), row("Venue", m.Venue),
		html.EscapeString(m.Message))
	return subject, text, htmlBody
}

func replyBody(toName, originalMessage, replyText string) (subject, text, htmlBody string) {
	subject = "Re: your inquiry"
	text = fmt.Sprintf("Hi %s,\n\n%s\n\n--- Your original message ---\n%s\n", toName, replyText, originalMessage)
	htmlBody = fmt.Sprintf(`
		<p>Hi %s,</p>
		<p style="white-space:pre-wrap;">%s</p>
		<hr/>
		<p style="color:#888;font-size:13px;white-space:pre-wrap;">%s</p>
	`, html.EscapeString(toName), html.EscapeString(replyText), html.EscapeString(originalMessage))
	return subject, text, htmlBody
}

func testBody() (subject, text, htmlBody string) {
	subject = "Test - email configuration works"
	text = "Your email configuration works correctly."
	htmlBody = `<h2>Test email</h2><p>Your email configuration works correctly.</p>`
	return subject, text, htmlBody
}
