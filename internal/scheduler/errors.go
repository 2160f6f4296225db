package scheduler

import (
	"errors"
	"fmt"

	"github.com/shiftbook-dev/shiftbook/backend/internal/domain"
)

var (
	// ErrShiftNotFound is returned when a shift id does not resolve.
	ErrShiftNotFound = errors.New("shift not found")
	// ErrWeekAlreadyPublished is returned by PublishWeek when the week has
	// already gone through its one-way publish transition.
	ErrWeekAlreadyPublished = errors.New("this week has already been published")
	// ErrBatchDeleteUnsupported is returned when more than one shift id is
	// passed to a delete.
	ErrBatchDeleteUnsupported = errors.New("batch delete is not supported")

	// ErrWeekExists is the WeekStore contract for a lost get-or-create race:
	// CreateWeek must return it when another writer already owns the
	// start-date natural key, so the reconciler can re-fetch.
	ErrWeekExists = errors.New("week already exists")
)

// ValidationError reports a semantically invalid input, such as a zero-length
// time range or an attempt to publish an empty week.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PublishedWeekError reports a mutation attempted against a shift whose
// owning (or target) week is published.
type PublishedWeekError struct {
	WeekStart string
}

func (e *PublishedWeekError) Error() string {
	return fmt.Sprintf("week starting %s has been published and cannot be modified", e.WeekStart)
}

// ConflictError reports an overlapping shift that was not overridden. It
// carries the clashing shift so callers can present it and resubmit with
// the ignore-clash flag.
type ConflictError struct {
	Shift *domain.Shift
}

func (e *ConflictError) Error() string {
	return "shift clashes with an existing shift"
}
