package scheduler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the wire format for all calendar dates.
const DateFormat = "2006-01-02"

// DateTimeRange is the absolute interval a shift occupies. Start is always
// strictly before End; intervals are half-open, so touching endpoints do not
// overlap.
type DateTimeRange struct {
	Start time.Time
	End   time.Time
}

// Bounds holds the Monday and Sunday of a calendar week as date strings.
type Bounds struct {
	StartDate string
	EndDate   string
}

func parseDate(date string) (time.Time, error) {
	d, err := time.ParseInLocation(DateFormat, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	return d, nil
}

func parseTimeOfDay(timeOfDay string) (hour, minute, second int, err error) {
	parts := strings.Split(timeOfDay, ":")
	if len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("invalid time %q", timeOfDay)
	}

	// seconds (and trailing parts in general) default to zero
	numbers := [3]int{}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, 0, 0, fmt.Errorf("invalid time %q", timeOfDay)
		}
		numbers[i] = n
	}

	return numbers[0], numbers[1], numbers[2], nil
}

// CombineDateAndTime merges a calendar date and a "HH:MM:SS" time of day
// (seconds optional) into a single instant on the naive local clock.
func CombineDateAndTime(date, timeOfDay string) (time.Time, error) {
	d, err := parseDate(date)
	if err != nil {
		return time.Time{}, err
	}

	hour, minute, second, err := parseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, second, 0, time.Local), nil
}

// ShiftRange combines both times of day against date. A shift whose end
// equals its start is rejected; an end earlier than the start means the shift
// spans midnight and the end rolls over to the next calendar day.
func ShiftRange(date, startTime, endTime string) (DateTimeRange, error) {
	start, err := CombineDateAndTime(date, startTime)
	if err != nil {
		return DateTimeRange{}, err
	}

	end, err := CombineDateAndTime(date, endTime)
	if err != nil {
		return DateTimeRange{}, err
	}

	if end.Equal(start) {
		return DateTimeRange{}, errors.New("shift end time must be after the start time")
	}
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}

	return DateTimeRange{Start: start, End: end}, nil
}

// WeekBounds returns the Monday on or before date and the Sunday six days
// after it.
func WeekBounds(date string) (Bounds, error) {
	d, err := parseDate(date)
	if err != nil {
		return Bounds{}, err
	}

	// time.Weekday counts from Sunday, the roster week counts from Monday
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)

	return Bounds{
		StartDate: start.Format(DateFormat),
		EndDate:   end.Format(DateFormat),
	}, nil
}

// AdjacentDates returns the dates one calendar day either side of date.
func AdjacentDates(date string) (previous, next string, err error) {
	d, err := parseDate(date)
	if err != nil {
		return "", "", err
	}

	return d.AddDate(0, 0, -1).Format(DateFormat), d.AddDate(0, 0, 1).Format(DateFormat), nil
}
