package domain

import "time"

// Week is identified by its Monday start date, which is unique. Weeks are
// created lazily the first time a shift lands in them and are never deleted.
type Week struct {
	ID          string     `json:"id"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// WeekSummary is the projection returned to callers. When no week record
// exists yet the ID is empty and omitted from the payload.
type WeekSummary struct {
	ID          string     `json:"id,omitempty"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// WeekSchedule bundles a week summary with the shifts inside its bounds.
type WeekSchedule struct {
	Shifts []*Shift    `json:"shifts"`
	Week   WeekSummary `json:"week"`
}
