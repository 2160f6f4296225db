package scheduler

import (
	"context"

	"github.com/shiftbook-dev/shiftbook/backend/internal/domain"
)

type CreateShiftInput struct {
	Name        string
	Date        string
	StartTime   string
	EndTime     string
	IgnoreClash bool
}

// UpdateShiftInput carries partial updates: nil fields keep their prior
// value.
type UpdateShiftInput struct {
	Name        *string
	Date        *string
	StartTime   *string
	EndTime     *string
	IgnoreClash bool
}

// Find returns the schedule for the week containing weekStart, or the
// current week when weekStart is empty. When no week record exists yet an
// unpublished placeholder summary is synthesized from the bounds.
func (s *Scheduler) Find(ctx context.Context, weekStart string) (*domain.WeekSchedule, error) {
	baseDate := weekStart
	if baseDate == "" {
		baseDate = s.now().Format(DateFormat)
	}

	bounds, err := WeekBounds(baseDate)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	week, err := s.weeks.GetWeekByStartDate(ctx, bounds.StartDate)
	if err != nil {
		return nil, err
	}

	shifts, err := s.shifts.GetShiftsBetween(ctx, bounds.StartDate, bounds.EndDate)
	if err != nil {
		return nil, err
	}

	return &domain.WeekSchedule{
		Shifts: shifts,
		Week:   weekSummary(week, bounds),
	}, nil
}

func (s *Scheduler) FindByID(ctx context.Context, id string) (*domain.Shift, error) {
	shift, err := s.shifts.GetShiftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}

	return shift, nil
}

// Create validates the time range, refuses to write into a published week,
// runs clash detection (overridable via IgnoreClash) and only then resolves
// the week record, creating it on demand.
func (s *Scheduler) Create(ctx context.Context, input CreateShiftInput) (*domain.Shift, error) {
	if _, err := ShiftRange(input.Date, input.StartTime, input.EndTime); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	bounds, err := WeekBounds(input.Date)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	week, err := s.weeks.GetWeekByStartDate(ctx, bounds.StartDate)
	if err != nil {
		return nil, err
	}
	if err := checkWeekNotPublished(week); err != nil {
		return nil, err
	}

	clashing, err := s.findClashingShift(ctx, input.Date, input.StartTime, input.EndTime, "")
	if err != nil {
		return nil, err
	}
	if clashing != nil && !input.IgnoreClash {
		return nil, &ConflictError{Shift: clashing}
	}

	targetWeek, err := s.ensureWeek(ctx, bounds.StartDate, bounds.EndDate)
	if err != nil {
		return nil, err
	}

	shift := &domain.Shift{
		ID:        s.newID(),
		Name:      input.Name,
		Date:      input.Date,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		WeekID:    targetWeek.ID,
	}
	if err := s.shifts.CreateShift(ctx, shift); err != nil {
		return nil, err
	}

	return shift, nil
}

// UpdateByID merges the payload over the stored shift, re-validates the
// merged range and re-runs clash detection excluding the shift itself. Both
// the current owning week and, when the date moves, the target week must be
// unpublished; a date change re-homes the shift to the target week's record.
func (s *Scheduler) UpdateByID(ctx context.Context, id string, input UpdateShiftInput) (*domain.Shift, error) {
	existing, err := s.shifts.GetShiftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrShiftNotFound
	}

	currentWeek, err := s.weeks.GetWeekByID(ctx, existing.WeekID)
	if err != nil {
		return nil, err
	}
	if err := checkWeekNotPublished(currentWeek); err != nil {
		return nil, err
	}

	updatedDate := existing.Date
	if input.Date != nil {
		updatedDate = *input.Date
	}
	updatedStartTime := existing.StartTime
	if input.StartTime != nil {
		updatedStartTime = *input.StartTime
	}
	updatedEndTime := existing.EndTime
	if input.EndTime != nil {
		updatedEndTime = *input.EndTime
	}

	if _, err := ShiftRange(updatedDate, updatedStartTime, updatedEndTime); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	bounds, err := WeekBounds(updatedDate)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	targetWeek, err := s.weeks.GetWeekByStartDate(ctx, bounds.StartDate)
	if err != nil {
		return nil, err
	}
	if targetWeek != nil && targetWeek.ID != existing.WeekID {
		if err := checkWeekNotPublished(targetWeek); err != nil {
			return nil, err
		}
	}

	clashing, err := s.findClashingShift(ctx, updatedDate, updatedStartTime, updatedEndTime, id)
	if err != nil {
		return nil, err
	}
	if clashing != nil && !input.IgnoreClash {
		return nil, &ConflictError{Shift: clashing}
	}

	ensuredWeek, err := s.ensureWeek(ctx, bounds.StartDate, bounds.EndDate)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	existing.Date = updatedDate
	existing.StartTime = updatedStartTime
	existing.EndTime = updatedEndTime
	existing.WeekID = ensuredWeek.ID

	if err := s.shifts.UpdateShift(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// DeleteByID removes a single shift. Passing anything other than exactly one
// id is rejected; batch deletes are unsupported.
func (s *Scheduler) DeleteByID(ctx context.Context, ids ...string) error {
	if len(ids) != 1 {
		return ErrBatchDeleteUnsupported
	}
	id := ids[0]

	existing, err := s.shifts.GetShiftByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrShiftNotFound
	}

	week, err := s.weeks.GetWeekByID(ctx, existing.WeekID)
	if err != nil {
		return err
	}
	if err := checkWeekNotPublished(week); err != nil {
		return err
	}

	return s.shifts.DeleteShift(ctx, id)
}
