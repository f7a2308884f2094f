package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ngoriel/portfolio-api/internal/domain"
)

type VisitorRepo interface {
	Create(ctx context.Context, v *domain.Visitor) (*domain.Visitor, error)
	Finish(ctx context.Context, id string, durationSeconds int) error
	List(ctx context.Context, limit int, from, to *time.Time) ([]domain.Visitor, error)
	Stats(ctx context.Context) (*domain.VisitorStats, error)
}

type visitorRepo struct {
	pool *pgxpool.Pool
}

func NewVisitorRepo(pool *pgxpool.Pool) VisitorRepo {
	return &visitorRepo{pool: pool}
}

const visitorCols = `id, ip_address, country, region, city, page_visited,
user_agent, referrer, visit_start, visit_end, duration_seconds`

func (r *visitorRepo) Create(ctx context.Context, v *domain.Visitor) (*domain.Visitor, error) {
	const q = `
		INSERT INTO visitors (ip_address, country, region, city, page_visited, user_agent, referrer)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + visitorCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var out domain.Visitor
	err := r.pool.QueryRow(ctx, q,
		v.IPAddress, v.Country, v.Region, v.City, v.PageVisited, v.UserAgent, v.Referrer,
	).Scan(
		&out.ID, &out.IPAddress, &out.Country, &out.Region, &out.City, &out.PageVisited,
		&out.UserAgent, &out.Referrer, &out.VisitStart, &out.VisitEnd, &out.DurationSeconds,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *visitorRepo) Finish(ctx context.Context, id string, durationSeconds int) error {
	const q = `UPDATE visitors SET duration_seconds = $2, visit_end = now() WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id, durationSeconds)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *visitorRepo) List(ctx context.Context, limit int, from, to *time.Time) ([]domain.Visitor, error) {
	const q = `
		SELECT ` + visitorCols + `
		FROM visitors
		WHERE ($2::timestamptz IS NULL OR visit_start >= $2)
		  AND ($3::timestamptz IS NULL OR visit_start <= $3)
		ORDER BY visit_start DESC
		LIMIT $1`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visitors := []domain.Visitor{}
	for rows.Next() {
		var v domain.Visitor
		if err := rows.Scan(
			&v.ID, &v.IPAddress, &v.Country, &v.Region, &v.City, &v.PageVisited,
			&v.UserAgent, &v.Referrer, &v.VisitStart, &v.VisitEnd, &v.DurationSeconds,
		); err != nil {
			return nil, err
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

func (r *visitorRepo) Stats(ctx context.Context) (*domain.VisitorStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stats := &domain.VisitorStats{
		TopCountries: []domain.CountryCount{},
		TopPages:     []domain.PageCount{},
	}

	const countsQ = `
		SELECT
			count(*),
			count(*) FILTER (WHERE visit_start >= date_trunc('day', now())),
			count(*) FILTER (WHERE visit_start >= now() - interval '7 days'),
			COALESCE(round(avg(duration_seconds) FILTER (WHERE duration_seconds > 0)), 0)
		FROM visitors`
	err := r.pool.QueryRow(ctx, countsQ).Scan(
		&stats.TotalVisitors, &stats.TodayVisitors, &stats.WeekVisitors, &stats.AvgDurationSeconds,
	)
	if err != nil {
		return nil, err
	}

	const countriesQ = `
		SELECT country, count(*)
		FROM visitors
		WHERE country <> ''
		GROUP BY country
		ORDER BY count(*) DESC
		LIMIT 5`
	rows, err := r.pool.Query(ctx, countriesQ)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var c domain.CountryCount
		if err := rows.Scan(&c.Country, &c.Count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.TopCountries = append(stats.TopCountries, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const pagesQ = `
		SELECT page_visited, count(*)
		FROM visitors
		GROUP BY page_visited
		ORDER BY count(*) DESC
		LIMIT 5`
	rows, err = r.pool.Query(ctx, pagesQ)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var p domain.PageCount
		if err := rows.Scan(&p.Page, &p.Count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.TopPages = append(stats.TopPages, p)
	}
	rows.Close()
	return stats, rows.Err()
}
