package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shiftbook-dev/shiftbook/backend/internal/domain"
)

// fakeStore backs both store interfaces with maps so the scheduler can be
// exercised without a database.
type fakeStore struct {
	shifts map[string]*domain.Shift
	weeks  map[string]*domain.Week

	// when set, the next CreateWeek loses the natural-key race: a competing
	// record appears and ErrWeekExists is returned.
	loseWeekRace bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		shifts: make(map[string]*domain.Shift),
		weeks:  make(map[string]*domain.Week),
	}
}

func (f *fakeStore) GetShiftsBetween(_ context.Context, from, to string) ([]*domain.Shift, error) {
	out := make([]*domain.Shift, 0)
	for _, s := range f.shifts {
		if s.Date >= from && s.Date <= to {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (f *fakeStore) GetShiftByID(_ context.Context, id string) (*domain.Shift, error) {
	return f.shifts[id], nil
}

func (f *fakeStore) CreateShift(_ context.Context, shift *domain.Shift) error {
	f.shifts[shift.ID] = shift
	return nil
}

func (f *fakeStore) UpdateShift(_ context.Context, shift *domain.Shift) error {
	if _, ok := f.shifts[shift.ID]; !ok {
		return errors.New("no such shift")
	}
	f.shifts[shift.ID] = shift
	return nil
}

func (f *fakeStore) DeleteShift(_ context.Context, id string) error {
	delete(f.shifts, id)
	return nil
}

func (f *fakeStore) GetWeekByStartDate(_ context.Context, startDate string) (*domain.Week, error) {
	for _, w := range f.weeks {
		if w.StartDate == startDate {
			return w, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetWeekByID(_ context.Context, id string) (*domain.Week, error) {
	return f.weeks[id], nil
}

func (f *fakeStore) CreateWeek(_ context.Context, week *domain.Week) error {
	if f.loseWeekRace {
		f.loseWeekRace = false
		competing := &domain.Week{
			ID:        "competing-" + week.StartDate,
			StartDate: week.StartDate,
			EndDate:   week.EndDate,
		}
		f.weeks[competing.ID] = competing
		return ErrWeekExists
	}

	for _, w := range f.weeks {
		if w.StartDate == week.StartDate {
			return ErrWeekExists
		}
	}
	f.weeks[week.ID] = week
	return nil
}

func (f *fakeStore) MarkWeekPublished(_ context.Context, id, endDate string, publishedAt time.Time) (*domain.Week, error) {
	week, ok := f.weeks[id]
	if !ok {
		return nil, errors.New("no such week")
	}
	week.IsPublished = true
	week.PublishedAt = &publishedAt
	week.EndDate = endDate
	return week, nil
}

var testNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)

func newTestScheduler(store *fakeStore) *Scheduler {
	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return NewScheduler(store, store, newID, func() time.Time { return testNow })
}

func mustCreate(t *testing.T, s *Scheduler, input CreateShiftInput) *domain.Shift {
	t.Helper()
	shift, err := s.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create(%+v) failed: %v", input, err)
	}
	return shift
}

func strptr(s string) *string { return &s }

func TestCreateRejectsZeroLengthRange(t *testing.T) {
	s := newTestScheduler(newFakeStore())

	_, err := s.Create(context.Background(), CreateShiftInput{
		Name: "A", Date: "2024-01-08", StartTime: "09:00", EndTime: "09:00",
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateAssignsWeekOnDemand(t *testing.T) {
	store := newFakeStore()
	s := newTestScheduler(store)

	shift := mustCreate(t, s, CreateShiftInput{
		Name: "A", Date: "2024-01-10", StartTime: "09:00", EndTime: "17:00",
	})

	if shift.WeekID == "" {
		t.Fatal("shift should reference its week")
	}
	week := store.weeks[shift.WeekID]
	if week == nil {
		t.Fatal("week record should have been created")
	}
	if week.StartDate != "2024-01-08" || week.EndDate != "2024-01-14" {
		t.Fatalf("unexpected week bounds: %+v", week)
	}
	if week.IsPublished {
		t.Fatal("lazily created weeks start unpublished")
	}
}

func TestCreateReportsClashUnlessOverridden(t *testing.T) {
	s := newTestScheduler(newFakeStore())

	existing := mustCreate(t, s, CreateShiftInput{
		Name: "A", Date: "2024-01-08", StartTime: "09:00", EndTime: "17:00",
	})

	_, err := s.Create(context.Background(), CreateShiftInput{
		Name: "B", Date: "2024-01-08", StartTime: "16:00", EndTime: "18:00",
	})
	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if cErr.Shift == nil || cErr.Shift.ID != existing.ID {
		t.Fatalf("conflict should reference shift %s, got %+v", existing.ID, cErr.Shift)
	}

	// the caller can resubmit with the override flag
	if _, err := s.Create(context.Background(), CreateShiftInput{
		Name: "B", Date: "2024-01-08", StartTime: "16:00", EndTime: "18:00", IgnoreClash: true,
	}); err != nil {
		t.Fatalf("override create failed: %v", err)
	}
}

func TestAdjacentShiftsDoNotClash(t *testing.T) {
	s := newTestScheduler(newFakeStore())

	mustCreate(t, s, CreateShiftInput{
		Name: "A", Date: "2024-01-08", StartTime: "09:00", EndTime: "17:00",
	})
	mustCreate(t, s, CreateShiftInput{
		Name: "B", Date: "2024-01-08", StartTime: "17:00", EndTime: "18:00",
	})
}

func TestOvernightClashWindow(t *testing.T) {
	s := newTestScheduler(newFakeStore())

	mustCreate(t, s, CreateShiftInput{
		Name: "night", Date: "2024-01-08", StartTime: "23:00", EndTime: "01:00",
	})

	// 00:30 on the 9th falls inside the overnight shift anchored on the 8th
	_, err := s.Create(context.Background(), CreateShiftInput{
		Name: "early", Date: "2024-01-09", StartTime: "00:30", EndTime: "02:00",
	})
	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected overnight clash, got %v", err)
	}

	mustCreate(t, s, CreateShiftInput{
		Name: "daytime", Date: "2024-01-10", StartTime: "09:00", EndTime: "10:00",
	})
}

func TestPublishWeekLocksMutations(t *testing.T) {
	s := newTestScheduler(newFakeStore())

	shift := mustCreate(t, s, CreateShiftInput{
		Name: "A", Date: "2024-01-10", StartTime: "09:00", EndTime: "17:00",
	})

	summary, err := s.PublishWeek(context.Background(), "2024-01-08")
	if err != nil {
		t.Fatalf("PublishWeek failed: %v", err)
	}
	if !summary.IsPublished {
		t.Fatal("summary should report the week as published")
	}
	if summary.PublishedAt == nil || !summary.PublishedAt.Equal(testNow) {
		t.Fatalf("publishedAt should come from the injected clock, got %v", summary.PublishedAt)
	}

	var pErr *PublishedWeekError

	_, err = s.Create(context.Background(), CreateShiftInput{
		Name: "B", Date: "2024-01-11", StartTime: "09:00", EndTime: "17:00",
	})
	if !errors.As(err, &pErr) {
		t.Fatalf("create into published week should fail, got %v", err)
	}

	_, err = s.UpdateByID(context.Background(), shift.ID, UpdateShiftInput{EndTime: strptr("18:00")})
	if !errors.As(err, &pErr) {
		t.Fatalf("update in published week should fail, got %v", err)
	}

	if err := s.DeleteByID(context.Background(), shift.ID); !errors.As(err, &pErr) {
		t.Fatalf("delete in published week should fail, got %v", err)
	}

	if _, err := s.PublishWeek(context.Background(), "2024-01-08"); !errors.Is(err, ErrWeekAlreadyPublished) {
		t.Fatalf("second publish should fail, got %v", err)
	}
}

func TestPublishEmptyWeekRejectedWithoutSideEffects(t *testing.T) {
	store := newFakeStore()
	s := newTestScheduler(store)

	_, err := s.PublishWeek(context.Background(), "2024-02-05")

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(store.weeks) != 0 {
		t.Fatal("a failed publish must not create a week record")
	}
}

func TestUpdateRehomesShiftToNewWeek(t *testing.T) {
	store := newFakeStore()
	s := newTestScheduler(store)

	shift := mustCreate(t, s, CreateShiftInput{
		Name: "A", Date: "2024-01-10", StartTime: "09:00", EndTime: "17:00",
	})
	originalWeekID := shift.WeekID

	updated, err := s.UpdateByID(context.Background(), shift.ID, UpdateShiftInput{
		Date: strptr("2024-01-17"),
	})
	if err != nil {
		t.Fatalf("UpdateByID failed: %v", err)
	}

	if updated.WeekID == originalWeekID {
		t.Fatal("shift should have moved to the new week")
	}
	newWeek := store.weeks[updated.WeekID]
	if newWeek == nil || newWeek.StartDate != "2024-01-15" {
		t.Fatalf("target week record missing or wrong: %+v", newWeek)
	}
	if store.weeks[originalWeekID] == nil {
		t.Fatal("the now-empty original week must not be deleted")
	}
}

func TestUpdateMergesPartialPayload(t *testing.T) {
	s := newTestScheduler(newFakeStore())

	shift := mustCreate(t, s, CreateShiftInput{
		Name: "A", Date: "2024-01-10", StartTime: "09:00", EndTime: "17:00",
	})

	updated, err := s.UpdateByID(context.Background(), shift.ID, UpdateShiftInput{
		EndTime: strptr("18:00"),
	})
	if err != nil {
		t.Fatalf("UpdateByID failed: %v", err)
	}
	if updated.Name != "A" || updated.Date != "2024-01-10" || updated.StartTime != "09:00" {
		t.Fatalf("unspecified fields must keep prior values: %+v", updated)
	}
	if updated.EndTime != "18:00" {
		t.Fatalf("end time not applied: %+v", updated)
	}
}

func TestUpdateIntoPublishedWeekRejected(t *testing.T) {
	s := newTestScheduler(newFakeStore())

	shift := mustCreate(t, s, CreateShiftInput{
		Name: "A", Date: "2024-01-10", StartTime: "09:00", EndTime: "17:00",
	})
	mustCreate(t, s, CreateShiftInput{
		Name: "B", Date: "2024-01-17", StartTime: "09:00", EndTime: "17:00",
	})

	if _, err := s.PublishWeek(context.Background(), "2024-01-15"); err != nil {
		t.Fatalf("PublishWeek failed: %v", err)
	}

	_, err := s.UpdateByID(context.Background(), shift.ID, UpdateShiftInput{
		Date: strptr("2024-01-18"),
	})
	var pErr *PublishedWeekError
	if !errors.As(err, &pErr) {
		t.Fatalf("moving a shift into a published week should fail, got %v", err)
	}
}

func TestUpdateExcludesOwnShiftFromClashCheck(t *testing.T) {
	s := newTestScheduler(newFakeStore())

	shift := mustCreate(t, s, CreateShiftInput{
		Name: "A", Date: "2024-01-10", StartTime: "09:00", EndTime: "17:00",
	})

	// shrinking a shift overlaps its own stored range and must not clash
	if _, err := s.UpdateByID(context.Background(), shift.ID, UpdateShiftInput{
		EndTime: strptr("16:00"),
	}); err != nil {
		t.Fatalf("UpdateByID failed: %v", err)
	}
}

func TestDeleteBatchUnsupported(t *testing.T) {
	s := newTestScheduler(newFakeStore())

	if err := s.DeleteByID(context.Background(), "a", "b"); !errors.Is(err, ErrBatchDeleteUnsupported) {
		t.Fatalf("expected ErrBatchDeleteUnsupported, got %v", err)
	}
	if err := s.DeleteByID(context.Background()); !errors.Is(err, ErrBatchDeleteUnsupported) {
		t.Fatalf("expected ErrBatchDeleteUnsupported for empty id list, got %v", err)
	}
}

func TestMissingShiftResolvesToNotFound(t *testing.T) {
	s := newTestScheduler(newFakeStore())
	ctx := context.Background()

	if _, err := s.FindByID(ctx, "missing"); !errors.Is(err, ErrShiftNotFound) {
		t.Fatalf("FindByID: expected ErrShiftNotFound, got %v", err)
	}
	if _, err := s.UpdateByID(ctx, "missing", UpdateShiftInput{}); !errors.Is(err, ErrShiftNotFound) {
		t.Fatalf("UpdateByID: expected ErrShiftNotFound, got %v", err)
	}
	if err := s.DeleteByID(ctx, "missing"); !errors.Is(err, ErrShiftNotFound) {
		t.Fatalf("DeleteByID: expected ErrShiftNotFound, got %v", err)
	}
}

func TestFindSynthesizesSummaryForUnknownWeek(t *testing.T) {
	s := newTestScheduler(newFakeStore())

	schedule, err := s.Find(context.Background(), "2024-03-06")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(schedule.Shifts) != 0 {
		t.Fatalf("expected no shifts, got %d", len(schedule.Shifts))
	}
	week := schedule.Week
	if week.ID != "" || week.IsPublished || week.PublishedAt != nil {
		t.Fatalf("expected a synthetic unpublished summary, got %+v", week)
	}
	if week.StartDate != "2024-03-04" || week.EndDate != "2024-03-10" {
		t.Fatalf("unexpected bounds: %+v", week)
	}
}

func TestFindDefaultsToCurrentWeek(t *testing.T) {
	s := newTestScheduler(newFakeStore())

	schedule, err := s.Find(context.Background(), "")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if schedule.Week.StartDate != "2024-01-08" || schedule.Week.EndDate != "2024-01-14" {
		t.Fatalf("default week should come from the injected clock, got %+v", schedule.Week)
	}
}

func TestEnsureWeekRecoversFromLostRace(t *testing.T) {
	store := newFakeStore()
	store.loseWeekRace = true
	s := newTestScheduler(store)

	shift := mustCreate(t, s, CreateShiftInput{
		Name: "A", Date: "2024-01-10", StartTime: "09:00", EndTime: "17:00",
	})

	if shift.WeekID != "competing-2024-01-08" {
		t.Fatalf("shift should land in the week the concurrent writer created, got %s", shift.WeekID)
	}
	if len(store.weeks) != 1 {
		t.Fatalf("expected exactly one week record, got %d", len(store.weeks))
	}
}
