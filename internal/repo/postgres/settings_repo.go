package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ngoriel/portfolio-api/internal/domain"
)

type SettingsRepo interface {
	Get(ctx context.Context) (*domain.Settings, error)
	ApplyUpdate(ctx context.Context, upd *domain.SettingsUpdate) (*domain.Settings, error)
	Seed(ctx context.Context, defaults *domain.Settings) error
}

type settingsRepo struct {
	pool *pgxpool.Pool
}

func NewSettingsRepo(pool *pgxpool.Pool) SettingsRepo {
	return &settingsRepo{pool: pool}
}

const settingsCols = `contact_info, button_labels, categories, email_provider, animation_settings, updated_at`

func (r *settingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	const q = `SELECT ` + settingsCols + ` FROM settings WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var raw [5][]byte
	var s domain.Settings
	err := r.pool.QueryRow(ctx, q, domain.SettingsID).Scan(
		&raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalSettings(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ApplyUpdate replaces the submitted sections wholesale and leaves omitted
// sections untouched. A single UPDATE ... RETURNING keeps the write atomic
// and the returned document is the post-update state.
func (r *settingsRepo) ApplyUpdate(ctx context.Context, upd *domain.SettingsUpdate) (*domain.Settings, error) {
	const q = `
		UPDATE settings
		SET
			contact_info = COALESCE($2, contact_info),
			button_labels = COALESCE($3, button_labels),
			categories = COALESCE($4, categories),
			email_provider = COALESCE($5, email_provider),
			animation_settings = COALESCE($6, animation_settings),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + settingsCols

	args := make([]interface{}, 0, 6)
	args = append(args, domain.SettingsID)

	contactInfo, err := marshalSection(upd.ContactInfo != nil, upd.ContactInfo)
	if err != nil {
		return nil, err
	}
	buttonLabels, err := marshalSection(upd.ButtonLabels != nil, upd.ButtonLabels)
	if err != nil {
		return nil, err
	}
	categories, err := marshalSection(upd.Categories != nil, upd.Categories)
	if err != nil {
		return nil, err
	}
	emailProvider, err := marshalSection(upd.EmailProvider != nil, upd.EmailProvider)
	if err != nil {
		return nil, err
	}
	animations, err := marshalSection(upd.Animations != nil, upd.Animations)
	if err != nil {
		return nil, err
	}
	args = append(args, contactInfo, buttonLabels, categories, emailProvider, animations)

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var raw [5][]byte
	var s domain.Settings
	err = r.pool.QueryRow(ctx, q, args...).Scan(
		&raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalSettings(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepo) Seed(ctx context.Context, defaults *domain.Settings) error {
	const q = `
		INSERT INTO settings (id, contact_info, button_labels, categories, email_provider, animation_settings)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`

	contactInfo, err := json.Marshal(defaults.ContactInfo)
	if err != nil {
		return err
	}
	buttonLabels, err := json.Marshal(defaults.ButtonLabels)
	if err != nil {
		return err
	}
	categories, err := json.Marshal(defaults.Categories)
	if err != nil {
		return err
	}
	emailProvider, err := json.Marshal(defaults.EmailProvider)
	if err != nil {
		return err
	}
	animations, err := json.Marshal(defaults.Animations)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err = r.pool.Exec(ctx, q, domain.SettingsID,
		contactInfo, buttonLabels, categories, emailProvider, animations)
	return err
}

// marshalSection returns NULL for omitted sections so COALESCE keeps the
// stored value.
func marshalSection(present bool, v interface{}) ([]byte, error) {
	if !present {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalSettings(raw [5][]byte, s *domain.Settings) error {
	if err := json.Unmarshal(raw[0], &s.ContactInfo); err != nil {
		return fmt.Errorf("contact_info: %w", err)
	}
	if err := json.Unmarshal(raw[1], &s.ButtonLabels); err != nil {
		return fmt.Errorf("button_labels: %w", err)
	}
	if err := json.Unmarshal(raw[2], &s.Categories); err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	if err := json.Unmarshal(raw[3], &s.EmailProvider); err != nil {
		return fmt.Errorf("email_provider: %w", err)
	}
	if err := json.Unmarshal(raw[4], &s.Animations); err != nil {
		return fmt.Errorf("animation_settings: %w", err)
	}
	return nil
}
