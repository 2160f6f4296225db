package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftbook-dev/shiftbook/backend/internal/domain"
	"github.com/shiftbook-dev/shiftbook/backend/internal/scheduler"
)

func (r *Repository) GetWeekByStartDate(ctx context.Context, startDate string) (*domain.Week, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, end_date, is_published, published_at, created_at
		FROM weeks WHERE start_date = $1
	`

	week := &domain.Week{
		StartDate: startDate,
	}

	dst := []any{&week.ID, &week.EndDate, &week.IsPublished, &week.PublishedAt, &week.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, startDate).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return week, nil
}

func (r *Repository) GetWeekByID(ctx context.Context, id string) (*domain.Week, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT start_date, end_date, is_published, published_at, created_at
		FROM weeks WHERE id = $1
	`

	week := &domain.Week{
		ID: id,
	}

	dst := []any{&week.StartDate, &week.EndDate, &week.IsPublished, &week.PublishedAt, &week.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return week, nil
}

// CreateWeek inserts a week record. The weeks_start_date_key unique
// constraint is what makes the reconciler's get-or-create safe under
// concurrency: losing the race surfaces as scheduler.ErrWeekExists so the
// caller re-fetches the winner's row.
func (r *Repository) CreateWeek(ctx context.Context, week *domain.Week) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO weeks (id, start_date, end_date, is_published)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	args := []any{week.ID, week.StartDate, week.EndDate, week.IsPublished}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&week.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "weeks_start_date_key" {
			return scheduler.ErrWeekExists
		}
		return err
	}

	return nil
}

func (r *Repository) MarkWeekPublished(ctx context.Context, id, endDate string, publishedAt time.Time) (*domain.Week, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE weeks
		SET
			is_published = TRUE,
			published_at = $1,
			end_date = $2
		WHERE id = $3
		RETURNING start_date, created_at
	`

	week := &domain.Week{
		ID:          id,
		EndDate:     endDate,
		IsPublished: true,
		PublishedAt: &publishedAt,
	}

	args := []any{publishedAt, endDate, id}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&week.StartDate, &week.CreatedAt); err != nil {
		return nil, err
	}

	return week, nil
}
