// Package booking implements the reservation availability and admission
// engine: weekly-schedule lookups, 15-minute slot generation, the
// overlap/capacity rule and the queue-driven admission controller.
// Persistence and transport live in the repository and queue packages;
// this package only contains the temporal and capacity logic.
package booking

import (
	"time"

	"github.com/feastfleet/feastfleet/internal/model"
)

// DayStatus tags the result of a schedule lookup. A closed day is a
// valid state and distinct from a missing restaurant or schedule, which
// the repository reports separately; both surface as empty availability
// but with different messages.
type DayStatus int

const (
	// DayOpen means the restaurant accepts guests on the requested
	// weekday and the returned Hours are populated.
	DayOpen DayStatus = iota
	// DayClosed means the weekday entry exists but is marked closed.
	DayClosed
)

// Hours carries the opening window of a single day, as local times of
// day in "HH:MM" 24-hour form.
type Hours struct {
	OpensAt  string
	ClosesAt string
}

// HoursFor looks up the schedule entry for a weekday and reports
// whether the restaurant is open. A schedule that is missing the
// weekday entirely (which Validate prevents on write) is treated as
// closed rather than an error.
func HoursFor(s model.WeeklySchedule, weekday time.Weekday) (Hours, DayStatus) {
	d, ok := s.ForDay(weekday.String())
	if !ok || !d.Open {
		return Hours{}, DayClosed
	}
	return Hours{OpensAt: d.OpensAt, ClosesAt: d.ClosesAt}, DayOpen
}

// AnchorHours combines a day's opening window with a calendar date,
// producing concrete instants in the date's location. The date argument
// must be midnight-anchored in the restaurant's zone.
func AnchorHours(date time.Time, h Hours) (open, close time.Time, err error) {
	ot, err := time.Parse("15:04", h.OpensAt)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	ct, err := time.Parse("15:04", h.ClosesAt)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	loc := date.Location()
	open = time.Date(date.Year(), date.Month(), date.Day(), ot.Hour(), ot.Minute(), 0, 0, loc)
	close = time.Date(date.Year(), date.Month(), date.Day(), ct.Hour(), ct.Minute(), 0, 0, loc)
	return open, close, nil
}
