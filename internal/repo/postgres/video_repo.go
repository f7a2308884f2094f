package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ngoriel/portfolio-api/internal/domain"
)

type VideoRepo interface {
	List(ctx context.Context, category string) ([]domain.Video, error)
	Create(ctx context.Context, in *domain.CreateVideoRequest) (*domain.Video, error)
	Update(ctx context.Context, id string, in *domain.UpdateVideoRequest) (*domain.Video, error)
	Delete(ctx context.Context, id string) error
}

type videoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) VideoRepo {
	return &videoRepo{pool: pool}
}

const videoCols = `id, title, embed_url, vimeo_id, category, created_at`

func (r *videoRepo) List(ctx context.Context, category string) ([]domain.Video, error) {
	q := `SELECT ` + videoCols + ` FROM videos ORDER BY created_at DESC`
	args := []interface{}{}
	if category != "" {
		q = `SELECT ` + videoCols + ` FROM videos WHERE category = $1 ORDER BY created_at DESC`
		args = append(args, category)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []domain.Video{}
	for rows.Next() {
		var v domain.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.EmbedURL, &v.VimeoID, &v.Category, &v.CreatedAt); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func (r *videoRepo) Create(ctx context.Context, in *domain.CreateVideoRequest) (*domain.Video, error) {
	const q = `
		INSERT INTO videos (title, embed_url, vimeo_id, category)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + videoCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var v domain.Video
	err := r.pool.QueryRow(ctx, q, in.Title, in.EmbedURL, in.VimeoID, in.Category).Scan(
		&v.ID, &v.Title, &v.EmbedURL, &v.VimeoID, &v.Category, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *videoRepo) Update(ctx context.Context, id string, in *domain.UpdateVideoRequest) (*domain.Video, error) {
	const q = `
		UPDATE videos
		SET
			title = COALESCE($2, title),
			embed_url = COALESCE($3, embed_url),
			vimeo_id = COALESCE($4, vimeo_id),
			category = COALESCE($5, category)
		WHERE id = $1
		RETURNING ` + videoCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var v domain.Video
	err := r.pool.QueryRow(ctx, q, id, in.Title, in.EmbedURL, in.VimeoID, in.Category).Scan(
		&v.ID, &v.Title, &v.EmbedURL, &v.VimeoID, &v.Category, &v.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *videoRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM videos WHERE id = $1`
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
