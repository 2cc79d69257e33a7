package booking

import (
	"iter"
	"time"

	"github.com/feastfleet/feastfleet/internal/model"
)

// SlotStep is the granularity of candidate reservation times.
const SlotStep = 15 * time.Minute

// Slot is one candidate reservation time together with its
// availability classification.
type Slot struct {
	Time      time.Time
	Available bool
}

// Display renders the slot's start in 12-hour clock form with an AM/PM
// suffix, e.g. "06:30 PM". This is the customer-facing representation.
func (s Slot) Display() string {
	return s.Time.Format("03:04 PM")
}

// RoundUpToQuarter advances t to the next quarter-hour boundary
// (:00/:15/:30/:45). A time already exactly on a boundary is returned
// unchanged; otherwise seconds and sub-seconds are dropped and the
// minute advances to the nearest following boundary.
func RoundUpToQuarter(t time.Time) time.Time {
	t = t.Truncate(time.Minute)
	if rem := t.Minute() % 15; rem != 0 {
		t = t.Add(time.Duration(15-rem) * time.Minute)
	}
	return t
}

// QuarterHours returns a lazy, restartable sequence of instants from
// `from` to `until` inclusive, stepping by SlotStep. When from is after
// until the sequence is empty.
func QuarterHours(from, until time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for t := from; !t.After(until); t = t.Add(SlotStep) {
			if !yield(t) {
				return
			}
		}
	}
}

// EffectiveWindow computes the first and last candidate instants for a
// date. When the requested date is today, slots that already passed are
// cut off by clamping the start to now; the start is then rounded up to
// the next quarter hour. The returned window may be empty (start after
// end), which means zero slots rather than an error.
func EffectiveWindow(open, close, now time.Time, sameDay bool) (time.Time, time.Time) {
	start := open
	if sameDay && now.After(start) {
		start = now
	}
	return RoundUpToQuarter(start), close
}

// Availability is the result of a read-path availability query. Slots
// cover every boundary from the effective opening time to the closing
// time inclusive. OpensAt/ClosesAt echo the effective window in 24-hour
// form for caller context.
type Availability struct {
	Slots    []Slot
	OpensAt  time.Time
	ClosesAt time.Time
}

// BuildAvailability walks the candidate sequence and classifies each
// slot against the existing reservations using the overlap/capacity
// rule. It never returns nil Slots so callers can serialize directly.
func BuildAvailability(from, until time.Time, existing []model.Reservation, partySize, capacity int) Availability {
	out := Availability{Slots: []Slot{}, OpensAt: from, ClosesAt: until}
	for t := range QuarterHours(from, until) {
		out.Slots = append(out.Slots, Slot{
			Time:      t,
			Available: IsTimeAvailable(t, existing, partySize, capacity),
		})
	}
	return out
}
