package domain

import (
	"fmt"
	"time"
)

type ContactMessage struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	BookingDate string    `json:"booking_date"`
	Venue       string    `json:"venue"`
	Message     string    `json:"message"`
	IPAddress   string    `json:"ip_address,omitempty"`
	Country     string    `json:"country,omitempty"`
	City        string    `json:"city,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContactRequest is the public contact-form submission. Free-text fields are
// stored as-is.
type ContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	BookingDate string `json:"booking_date"`
	Venue       string `json:"venue"`
	Message     string `json:"message"`
}

type ReplyRequest struct {
	ReplyText string `json:"reply_text"`
}

func (r *ContactRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !isValidEmail(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

func (r *ReplyRequest) Validate() error {
	if r.ReplyText == "" {
		return fmt.Errorf("reply text is required")
	}
	return nil
}
