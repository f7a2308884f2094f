package domain_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/ngoriel/portfolio-api/internal/domain"
)

func TestSettingsUpdateValidate(t *testing.T) {
	cases := []struct {
		name    string
		upd     domain.SettingsUpdate
		wantErr bool
	}{
		{
			name:    "empty update",
			upd:     domain.SettingsUpdate{},
			wantErr: true,
		},
		{
			name: "single section",
			upd: domain.SettingsUpdate{
				ButtonLabels: map[string]string{"book_now": "Book Now"},
			},
		},
		{
			name: "category missing slug",
			upd: domain.SettingsUpdate{
				Categories: []domain.Category{{ID: "wedding", Name: "Wedding"}},
			},
			wantErr: true,
		},
		{
			name: "complete category",
			upd: domain.SettingsUpdate{
				Categories: []domain.Category{{ID: "wedding", Name: "Wedding", Slug: "wedding"}},
			},
		},
		{
			name: "empty contact info is a valid replacement",
			upd: domain.SettingsUpdate{
				ContactInfo: &domain.ContactInfo{},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.upd.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSettingsUpdateSections(t *testing.T) {
	upd := domain.SettingsUpdate{
		ContactInfo:  &domain.ContactInfo{Email: "a@b.com"},
		ButtonLabels: map[string]string{"x": "y"},
	}
	got := upd.Sections()
	want := []string{"contact_info", "button_labels"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sections() = %v, want %v", got, want)
	}
}

func TestSettingsPublicProjection(t *testing.T) {
	s := domain.DefaultSettings()
	s.EmailProvider.APIKey = "secret-key"

	data, err := json.Marshal(s.Public())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(raw) != 3 {
		t.Errorf("got %d keys, want 3: %v", len(raw), raw)
	}
	if strings.Contains(string(data), "secret-key") {
		t.Error("public projection leaked the email provider key")
	}
}

func TestContactInfoPhoneNeverOmitted(t *testing.T) {
	data, err := json.Marshal(domain.ContactInfo{Email: "a@b.com"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"phone":""`) {
		t.Errorf("phone omitted from %s", data)
	}
}

func TestDefaultSettingsSeed(t *testing.T) {
	s := domain.DefaultSettings()

	if len(s.Categories) < 2 {
		t.Errorf("got %d categories, want at least 2", len(s.Categories))
	}
	for _, key := range []string{"view_gallery", "book_session", "book_now", "get_in_touch", "send_message"} {
		if _, ok := s.ButtonLabels[key]; !ok {
			t.Errorf("missing default button label %q", key)
		}
	}
}
