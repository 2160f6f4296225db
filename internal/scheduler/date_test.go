package scheduler

import (
	"testing"
	"time"
)

func TestCombineDateAndTime(t *testing.T) {
	got, err := CombineDateAndTime("2024-01-10", "09:30:15")
	if err != nil {
		t.Fatalf("CombineDateAndTime failed: %v", err)
	}
	want := time.Date(2024, 1, 10, 9, 30, 15, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCombineDateAndTimeSecondsOptional(t *testing.T) {
	got, err := CombineDateAndTime("2024-01-10", "09:30")
	if err != nil {
		t.Fatalf("CombineDateAndTime failed: %v", err)
	}
	if got.Second() != 0 {
		t.Fatalf("seconds should default to 0, got %d", got.Second())
	}
}

func TestCombineDateAndTimeRejectsGarbage(t *testing.T) {
	cases := []struct {
		date string
		tod  string
	}{
		{"not-a-date", "09:00"},
		{"2024-01-10", "morning"},
		{"2024-01-10", "09:00:00:00"},
		{"2024-01-10", "-1:00"},
	}

	for _, c := range cases {
		if _, err := CombineDateAndTime(c.date, c.tod); err == nil {
			t.Errorf("expected error for %q %q", c.date, c.tod)
		}
	}
}

func TestShiftRangeSameDay(t *testing.T) {
	rng, err := ShiftRange("2024-01-08", "09:00", "17:00")
	if err != nil {
		t.Fatalf("ShiftRange failed: %v", err)
	}
	if !rng.End.After(rng.Start) {
		t.Fatalf("end %v should be after start %v", rng.End, rng.Start)
	}
	if rng.Start.Day() != rng.End.Day() {
		t.Fatalf("same-day shift should not cross midnight: %v - %v", rng.Start, rng.End)
	}
}

func TestShiftRangeZeroLengthRejected(t *testing.T) {
	if _, err := ShiftRange("2024-01-08", "09:00", "09:00"); err == nil {
		t.Fatal("expected zero-length range to be rejected")
	}
}

func TestShiftRangeOvernight(t *testing.T) {
	rng, err := ShiftRange("2024-01-08", "22:00", "02:00")
	if err != nil {
		t.Fatalf("ShiftRange failed: %v", err)
	}
	if !rng.End.After(rng.Start) {
		t.Fatalf("end %v should be after start %v", rng.End, rng.Start)
	}
	if got := rng.End.Format(DateFormat); got != "2024-01-09" {
		t.Fatalf("overnight end should roll to the next day, got %s", got)
	}
}

func TestWeekBounds(t *testing.T) {
	cases := []struct {
		date      string
		startDate string
		endDate   string
	}{
		{"2024-01-10", "2024-01-08", "2024-01-14"}, // Wednesday
		{"2024-01-08", "2024-01-08", "2024-01-14"}, // Monday maps to itself
		{"2024-01-14", "2024-01-08", "2024-01-14"}, // Sunday belongs to the week before
		{"2024-01-01", "2024-01-01", "2024-01-07"},
		{"2023-12-31", "2023-12-25", "2023-12-31"}, // year boundary
	}

	for _, c := range cases {
		bounds, err := WeekBounds(c.date)
		if err != nil {
			t.Fatalf("WeekBounds(%s) failed: %v", c.date, err)
		}
		if bounds.StartDate != c.startDate || bounds.EndDate != c.endDate {
			t.Errorf("WeekBounds(%s) = %+v, want {%s %s}", c.date, bounds, c.startDate, c.endDate)
		}
	}
}

func TestAdjacentDates(t *testing.T) {
	previous, next, err := AdjacentDates("2024-01-01")
	if err != nil {
		t.Fatalf("AdjacentDates failed: %v", err)
	}
	if previous != "2023-12-31" || next != "2024-01-02" {
		t.Fatalf("got %s / %s, want 2023-12-31 / 2024-01-02", previous, next)
	}
}
