package model

import (
	"errors"
	"time"
)

// Weekday names in the order used by the weekly schedule. All seven
// days are always present in a schedule; the names double as keys in
// the JSON column that stores restaurant hours.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayHours describes a single weekday entry of a restaurant's weekly
// schedule. When Open is false the opening and closing times are empty.
// Times are local times of day in "HH:MM" (24-hour) format; overnight
// wraparound is not supported, so OpensAt must sort before ClosesAt.
//
// Fields:
//  Day      – weekday name (Monday..Sunday).
//  Open     – whether the restaurant accepts guests on this day.
//  OpensAt  – local opening time, "HH:MM"; empty when closed.
//  ClosesAt – local closing time, "HH:MM"; empty when closed.
type DayHours struct {
	Day      string `json:"day"`
	Open     bool   `json:"open"`
	OpensAt  string `json:"opening_hour,omitempty"`
	ClosesAt string `json:"closing_hour,omitempty"`
}

// WeeklySchedule lists one DayHours entry per weekday. It is stored as a
// JSON column on the restaurants table and treated as immutable by the
// booking engine within a single query; only the administrative update
// path replaces it.
type WeeklySchedule []DayHours

// ErrInvalidSchedule is returned by Validate when a schedule violates
// the structural invariants described on DayHours.
var ErrInvalidSchedule = errors.New("invalid weekly schedule")

// ForDay returns the entry matching the given weekday name, or false
// when the schedule does not contain it.
func (s WeeklySchedule) ForDay(day string) (DayHours, bool) {
	for _, d := range s {
		if d.Day == day {
			return d, true
		}
	}
	return DayHours{}, false
}

// Validate checks that the schedule has exactly one entry for each of
// the seven weekdays and that every entry satisfies the open/closed
// invariants: closed days carry no times, open days carry both times
// with opening strictly before closing.
func (s WeeklySchedule) Validate() error {
	if len(s) != len(Weekdays) {
		return ErrInvalidSchedule
	}
	seen := make(map[string]bool, len(Weekdays))
	for _, d := range s {
		ok := false
		for _, name := range Weekdays {
			if d.Day == name {
				ok = true
				break
			}
		}
		if !ok || seen[d.Day] {
			return ErrInvalidSchedule
		}
		seen[d.Day] = true
		if !d.Open {
			if d.OpensAt != "" || d.ClosesAt != "" {
				return ErrInvalidSchedule
			}
			continue
		}
		open, err1 := time.Parse("15:04", d.OpensAt)
		close, err2 := time.Parse("15:04", d.ClosesAt)
		if err1 != nil || err2 != nil || !open.Before(close) {
			return ErrInvalidSchedule
		}
	}
	return nil
}

// Restaurant represents a row in the `restaurants` table. The weekly
// schedule and seating capacity are owned by the restaurant record and
// consulted by both the availability query and the booking worker.
//
// Fields:
//  ID       – primary key identifier.
//  OwnerID  – users.id of the restaurant owner.
//  Name     – display name.
//  Cuisine  – cuisine tag used for search (e.g. "italian").
//  Address  – street address shown to customers.
//  Timezone – IANA zone name (e.g. "America/New_York"); all slot
//             arithmetic happens in this zone.
//  Capacity – maximum concurrent covered seats (not tables).
//  Hours    – the weekly schedule.
type Restaurant struct {
	ID        uint64         // restaurants.id
	OwnerID   uint64         // restaurants.owner_id
	Name      string         // restaurants.name
	Cuisine   string         // restaurants.cuisine
	Address   string         // restaurants.address
	Timezone  string         // restaurants.timezone
	Capacity  int            // restaurants.capacity
	Hours     WeeklySchedule // restaurants.hours (JSON column)
	CreatedAt time.Time      // restaurants.created_at
	UpdatedAt time.Time      // restaurants.updated_at
}

// Location resolves the restaurant's IANA time zone. UTC is used as a
// fallback when the zone name is empty or unknown so callers always get
// a usable location.
func (r *Restaurant) Location() *time.Location {
	if r.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ValidTimezone reports whether name resolves as an IANA zone.
func ValidTimezone(name string) bool {
	_, err := time.LoadLocation(name)
	return err == nil
}
