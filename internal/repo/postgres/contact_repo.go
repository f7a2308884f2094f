package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ngoriel/portfolio-api/internal/domain"
)

type ContactRepo interface {
	Create(ctx context.Context, in *domain.ContactRequest, ip, country, city string) (*domain.ContactMessage, error)
	GetByID(ctx context.Context, id string) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type contactRepo struct {
	pool *pgxpool.Pool
}

func NewContactRepo(pool *pgxpool.Pool) ContactRepo {
	return &contactRepo{pool: pool}
}

const messageCols = `id, name, email, phone, booking_date, venue, message,
ip_address, country, city, is_read, created_at`

func (r *contactRepo) Create(ctx context.Context, in *domain.ContactRequest, ip, country, city string) (*domain.ContactMessage, error) {
	const q = `
		INSERT INTO contact_messages (name, email, phone, booking_date, venue, message, ip_address, country, city)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + messageCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var m domain.ContactMessage
	err := r.pool.QueryRow(ctx, q,
		in.Name, in.Email, in.Phone, in.BookingDate, in.Venue, in.Message, ip, country, city,
	).Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.BookingDate, &m.Venue, &m.Message,
		&m.IPAddress, &m.Country, &m.City, &m.IsRead, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	const q = `SELECT ` + messageCols + ` FROM contact_messages WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var m domain.ContactMessage
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.BookingDate, &m.Venue, &m.Message,
		&m.IPAddress, &m.Country, &m.City, &m.IsRead, &m.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *contactRepo) List(ctx context.Context) ([]domain.ContactMessage, error) {
	const q = `SELECT ` + messageCols + ` FROM contact_messages ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.ContactMessage{}
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Phone, &m.BookingDate, &m.Venue, &m.Message,
			&m.IPAddress, &m.Country, &m.City, &m.IsRead, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *contactRepo) MarkRead(ctx context.Context, id string) error {
	const q = `UPDATE contact_messages SET is_read = true WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM contact_messages WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
