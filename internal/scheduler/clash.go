package scheduler

import (
	"context"

	"github.com/shiftbook-dev/shiftbook/backend/internal/domain"
)

// findClashingShift reports the first stored shift whose absolute range
// overlaps the candidate range, or nil if there is none. The scan covers the
// candidate date plus one day either side: an overnight shift recorded on
// day D spills into D+1, and one on D-1 can spill into D, so nothing outside
// that window can possibly overlap.
func (s *Scheduler) findClashingShift(ctx context.Context, date, startTime, endTime, ignoreID string) (*domain.Shift, error) {
	rng, err := ShiftRange(date, startTime, endTime)
	if err != nil {
		return nil, err
	}

	previous, next, err := AdjacentDates(date)
	if err != nil {
		return nil, err
	}

	candidates, err := s.shifts.GetShiftsBetween(ctx, previous, next)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		if ignoreID != "" && candidate.ID == ignoreID {
			continue
		}

		candidateRange, err := ShiftRange(candidate.Date, candidate.StartTime, candidate.EndTime)
		if err != nil {
			return nil, err
		}

		// half-open comparison: shifts that merely touch do not clash
		if rng.Start.Before(candidateRange.End) && candidateRange.Start.Before(rng.End) {
			return candidate, nil
		}
	}

	return nil, nil
}
