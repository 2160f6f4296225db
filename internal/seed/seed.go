package seed

import (
	"context"
	"log/slog"
	"time"

	"github.com/shiftbook-dev/shiftbook/backend/internal/scheduler"
)

type demoShift struct {
	name      string
	startTime string
	endTime   string
}

// weekday rota plus a Friday/Saturday night shift that crosses midnight
var demoShifts = []demoShift{
	{name: "Morning", startTime: "08:00:00", endTime: "14:00:00"},
	{name: "Afternoon", startTime: "14:00:00", endTime: "20:00:00"},
}

var demoNightShift = demoShift{name: "Night", startTime: "22:00:00", endTime: "04:00:00"}

// SeedDemoWeek fills the current week with a plausible roster, going through
// the scheduler so the usual invariants (clash detection, week records)
// apply. Already-seeded days just report clashes and are skipped.
func SeedDemoWeek(sched *scheduler.Scheduler) {
	today := time.Now().Format(scheduler.DateFormat)
	bounds, err := scheduler.WeekBounds(today)
	if err != nil {
		slog.Error("unable to compute week bounds", "error", err)
		return
	}

	start, err := time.ParseInLocation(scheduler.DateFormat, bounds.StartDate, time.Local)
	if err != nil {
		slog.Error("unable to parse week start", "error", err)
		return
	}

	created := 0
	for day := 0; day < 7; day++ {
		date := start.AddDate(0, 0, day).Format(scheduler.DateFormat)

		shifts := demoShifts
		if day == 4 || day == 5 {
			shifts = append(shifts, demoNightShift)
		}

		for _, ds := range shifts {
			_, err := sched.Create(context.Background(), scheduler.CreateShiftInput{
				Name:      ds.name,
				Date:      date,
				StartTime: ds.startTime,
				EndTime:   ds.endTime,
			})
			if err != nil {
				slog.Warn("skipped demo shift", "date", date, "name", ds.name, "error", err)
				continue
			}
			created++
		}
	}

	slog.Info("demo roster seeded", "week_start", bounds.StartDate, "shifts", created)
}
