package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftbook-dev/shiftbook/backend/internal/domain"
)

// ShiftStore is the persistence surface the scheduler needs for shifts.
// Lookups return (nil, nil) when no row matches. GetShiftsBetween returns
// shifts whose date falls inside the inclusive range, ordered by date then
// start time, so clash reporting is deterministic.
type ShiftStore interface {
	GetShiftsBetween(ctx context.Context, from, to string) ([]*domain.Shift, error)
	GetShiftByID(ctx context.Context, id string) (*domain.Shift, error)
	CreateShift(ctx context.Context, shift *domain.Shift) error
	UpdateShift(ctx context.Context, shift *domain.Shift) error
	DeleteShift(ctx context.Context, id string) error
}

// WeekStore is the persistence surface for weeks. CreateWeek must return
// ErrWeekExists when the start-date natural key is already taken.
type WeekStore interface {
	GetWeekByStartDate(ctx context.Context, startDate string) (*domain.Week, error)
	GetWeekByID(ctx context.Context, id string) (*domain.Week, error)
	CreateWeek(ctx context.Context, week *domain.Week) error
	MarkWeekPublished(ctx context.Context, id, endDate string, publishedAt time.Time) (*domain.Week, error)
}

// Scheduler enforces the roster invariants: shifts never overlap unless the
// caller overrides a detected clash, published weeks are immutable, and every
// shift belongs to the week record covering its date.
type Scheduler struct {
	shifts ShiftStore
	weeks  WeekStore
	newID  func() string
	now    func() time.Time
}

// NewScheduler wires the scheduler's collaborators. newID and now may be nil,
// in which case uuid generation and the system clock are used.
func NewScheduler(shifts ShiftStore, weeks WeekStore, newID func() string, now func() time.Time) *Scheduler {
	if newID == nil {
		newID = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}

	return &Scheduler{
		shifts: shifts,
		weeks:  weeks,
		newID:  newID,
		now:    now,
	}
}
