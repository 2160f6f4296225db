package domain

import "time"

// Shift is a single block of work anchored on a calendar date. Dates are
// naive "yyyy-MM-dd" strings and times are "HH:MM:SS" times of day; a shift
// whose end time is not after its start time spans midnight into the next day.
type Shift struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	WeekID    string    `json:"weekID"`
	CreatedAt time.Time `json:"createdAt"`
}
