package domain

import (
	"fmt"
	"time"
)

// SettingsID is the primary key of the single settings row.
const SettingsID = "site_settings"

// ContactInfo is the public contact block. An empty Phone is valid and tells
// the frontend to hide the field, so it is never omitted from JSON.
type ContactInfo struct {
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Hours    string `json:"hours"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type EmailProvider struct {
	Provider    string `json:"provider"`
	APIKey      string `json:"api_key"`
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
}

// Settings is the singleton site configuration document.
type Settings struct {
	ContactInfo   ContactInfo            `json:"contact_info"`
	ButtonLabels  map[string]string      `json:"button_labels"`
	Categories    []Category             `json:"categories"`
	EmailProvider EmailProvider          `json:"email_provider"`
	Animations    map[string]interface{} `json:"animation_settings"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// PublicSettings is the unauthenticated projection: same values, but only the
// sections the public site consumes (no email provider credentials).
type PublicSettings struct {
	ContactInfo  ContactInfo       `json:"contact_info"`
	ButtonLabels map[string]string `json:"button_labels"`
	Categories   []Category        `json:"categories"`
}

func (s *Settings) Public() *PublicSettings {
	return &PublicSettings{
		ContactInfo:  s.ContactInfo,
		ButtonLabels: s.ButtonLabels,
		Categories:   s.Categories,
	}
}

// SettingsUpdate carries any subset of the document's sections. A submitted
// section replaces the stored section wholesale; nil sections are untouched.
type SettingsUpdate struct {
	ContactInfo   *ContactInfo           `json:"contact_info,omitempty"`
	ButtonLabels  map[string]string      `json:"button_labels,omitempty"`
	Categories    []Category             `json:"categories,omitempty"`
	EmailProvider *EmailProvider         `json:"email_provider,omitempty"`
	Animations    map[string]interface{} `json:"animation_settings,omitempty"`
}

func (u *SettingsUpdate) Validate() error {
	if u.ContactInfo == nil && u.ButtonLabels == nil && u.Categories == nil &&
		u.EmailProvider == nil && u.Animations == nil {
		return fmt.Errorf("at least one settings section is required")
	}
	for i, c := range u.Categories {
		if c.ID == "" || c.Name == "" || c.Slug == "" {
			return fmt.Errorf("category %d: id, name and slug are required", i)
		}
	}
	return nil
}

// Sections lists the section names present in the update.
func (u *SettingsUpdate) Sections() []string {
	var sections []string
	if u.ContactInfo != nil {
		sections = append(sections, "contact_info")
	}
	if u.ButtonLabels != nil {
		sections = append(sections, "button_labels")
	}
	if u.Categories != nil {
		sections = append(sections, "categories")
	}
	if u.EmailProvider != nil {
		sections = append(sections, "email_provider")
	}
	if u.Animations != nil {
		sections = append(sections, "animation_settings")
	}
	return sections
}

// DefaultSettings seeds the settings row on first start.
func DefaultSettings() *Settings {
	return &Settings{
		ContactInfo: ContactInfo{
			Location: "Stockholm, Sweden",
			Phone:    "",
			Email:    "info@example.com",
			Hours:    "Mon - Fri: 9:00 - 18:00",
		},
		ButtonLabels: map[string]string{
			"view_gallery": "View Gallery",
			"book_session": "Book a Session",
			"book_now":     "Book Now",
			"get_in_touch": "Get in Touch",
			"send_message": "Send Message",
		},
		Categories: []Category{
			{ID: "wedding", Name: "Wedding", Slug: "wedding"},
			{ID: "pre-wedding", Name: "Pre-Wedding", Slug: "pre-wedding"},
		},
		EmailProvider: EmailProvider{
			Provider: "smtp",
		},
		Animations: map[string]interface{}{},
	}
}
