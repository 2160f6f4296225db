package scheduler

import (
	"context"
	"errors"

	"github.com/shiftbook-dev/shiftbook/backend/internal/domain"
)

func weekSummary(week *domain.Week, bounds Bounds) domain.WeekSummary {
	if week == nil {
		return domain.WeekSummary{
			StartDate:   bounds.StartDate,
			EndDate:     bounds.EndDate,
			IsPublished: false,
			PublishedAt: nil,
		}
	}

	return domain.WeekSummary{
		ID:          week.ID,
		StartDate:   week.StartDate,
		EndDate:     week.EndDate,
		IsPublished: week.IsPublished,
		PublishedAt: week.PublishedAt,
	}
}

// ensureWeek resolves the week record for the given bounds, creating it
// unpublished if it does not exist yet. When the insert loses the natural-key
// race to a concurrent writer the existing record is fetched instead, so
// repeated calls always converge on one row per start date.
func (s *Scheduler) ensureWeek(ctx context.Context, startDate, endDate string) (*domain.Week, error) {
	existing, err := s.weeks.GetWeekByStartDate(ctx, startDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	week := &domain.Week{
		ID:          s.newID(),
		StartDate:   startDate,
		EndDate:     endDate,
		IsPublished: false,
	}
	if err := s.weeks.CreateWeek(ctx, week); err != nil {
		if errors.Is(err, ErrWeekExists) {
			return s.weeks.GetWeekByStartDate(ctx, startDate)
		}
		return nil, err
	}

	return week, nil
}

func checkWeekNotPublished(week *domain.Week) error {
	if week != nil && week.IsPublished {
		return &PublishedWeekError{WeekStart: week.StartDate}
	}
	return nil
}

// PublishWeek locks the week containing weekStart against further edits.
// Empty weeks cannot be published, and the emptiness check runs before the
// week record is resolved, so a rejected publish never creates one as a side
// effect. The transition is one-way; publishing twice fails.
func (s *Scheduler) PublishWeek(ctx context.Context, weekStart string) (*domain.WeekSummary, error) {
	bounds, err := WeekBounds(weekStart)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	shifts, err := s.shifts.GetShiftsBetween(ctx, bounds.StartDate, bounds.EndDate)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, &ValidationError{Message: "cannot publish an empty week"}
	}

	week, err := s.ensureWeek(ctx, bounds.StartDate, bounds.EndDate)
	if err != nil {
		return nil, err
	}
	if week.IsPublished {
		return nil, ErrWeekAlreadyPublished
	}

	updated, err := s.weeks.MarkWeekPublished(ctx, week.ID, bounds.EndDate, s.now())
	if err != nil {
		return nil, err
	}

	summary := weekSummary(updated, bounds)
	return &summary, nil
}
