package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shiftbook-dev/shiftbook/backend/internal/domain"
)

// GetShiftsBetween returns all shifts dated inside [from, to] inclusive,
// ordered by date then start time.
func (r *Repository) GetShiftsBetween(ctx context.Context, from, to string) ([]*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, name, date, start_time, end_time, week_id, created_at
		FROM shifts
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, start_time
	`

	rows, err := r.dbpool.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{&shift.ID, &shift.Name, &shift.Date, &shift.StartTime, &shift.EndTime, &shift.WeekID, &shift.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetShiftByID(ctx context.Context, id string) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT name, date, start_time, end_time, week_id, created_at
		FROM shifts WHERE id = $1
	`

	shift := &domain.Shift{
		ID: id,
	}

	dst := []any{&shift.Name, &shift.Date, &shift.StartTime, &shift.EndTime, &shift.WeekID, &shift.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return shift, nil
}

func (r *Repository) CreateShift(ctx context.Context, shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO shifts (id, name, date, start_time, end_time, week_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	args := []any{shift.ID, shift.Name, shift.Date, shift.StartTime, shift.EndTime, shift.WeekID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShift(ctx context.Context, shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE shifts
		SET
			name = $1,
			date = $2,
			start_time = $3,
			end_time = $4,
			week_id = $5
		WHERE id = $6
		RETURNING created_at
	`

	args := []any{shift.Name, shift.Date, shift.StartTime, shift.EndTime, shift.WeekID, shift.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM shifts WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
