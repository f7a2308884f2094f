package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ngoriel/portfolio-api/internal/domain"
)

type GalleryRepo interface {
	List(ctx context.Context, category string) ([]domain.GalleryImage, error)
	Create(ctx context.Context, in *domain.CreateImageRequest) (*domain.GalleryImage, error)
	Update(ctx context.Context, id string, in *domain.UpdateImageRequest) (*domain.GalleryImage, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
}

type galleryRepo struct {
	pool *pgxpool.Pool
}

func NewGalleryRepo(pool *pgxpool.Pool) GalleryRepo {
	return &galleryRepo{pool: pool}
}

const imageCols = `id, url, title, category, sort_order, created_at`

func (r *galleryRepo) List(ctx context.Context, category string) ([]domain.GalleryImage, error) {
	q := `SELECT ` + imageCols + ` FROM gallery ORDER BY sort_order`
	args := []interface{}{}
	if category != "" {
		q = `SELECT ` + imageCols + ` FROM gallery WHERE category = $1 ORDER BY sort_order`
		args = append(args, category)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []domain.GalleryImage{}
	for rows.Next() {
		var img domain.GalleryImage
		if err := rows.Scan(&img.ID, &img.URL, &img.Title, &img.Category, &img.SortOrder, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *galleryRepo) Create(ctx context.Context, in *domain.CreateImageRequest) (*domain.GalleryImage, error) {
	// New images go to the end of the current order.
	const q = `
		INSERT INTO gallery (url, title, category, sort_order)
		VALUES ($1, $2, $3, (SELECT COALESCE(MAX(sort_order), -1) + 1 FROM gallery))
		RETURNING ` + imageCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var img domain.GalleryImage
	err := r.pool.QueryRow(ctx, q, in.URL, in.Title, in.Category).Scan(
		&img.ID, &img.URL, &img.Title, &img.Category, &img.SortOrder, &img.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *galleryRepo) Update(ctx context.Context, id string, in *domain.UpdateImageRequest) (*domain.GalleryImage, error) {
	const q = `
		UPDATE gallery
		SET
			url = COALESCE($2, url),
			title = COALESCE($3, title),
			category = COALESCE($4, category)
		WHERE id = $1
		RETURNING ` + imageCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var img domain.GalleryImage
	err := r.pool.QueryRow(ctx, q, id, in.URL, in.Title, in.Category).Scan(
		&img.ID, &img.URL, &img.Title, &img.Category, &img.SortOrder, &img.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *galleryRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM gallery WHERE id = $1`
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

func (r *galleryRepo) Reorder(ctx context.Context, ids []string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `UPDATE gallery SET sort_order = $2 WHERE id = $1`
	for i, id := range ids {
		if _, err := tx.Exec(ctx, q, id, i); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
