package booking

import (
	"time"

	"github.com/feastfleet/feastfleet/internal/model"
)

// overlapWindow is the neighborhood in which two reservations contend
// for the same seats. It approximates a one-hour table turnover: a
// party seated at 18:50 still occupies its table at 19:30 but not at
// 20:00. The comparison is on times of day, strictly less than the
// window (a 60-minute difference does not conflict).
const overlapWindow = 60 * time.Minute

// IsTimeAvailable reports whether seating a new party of partySize at
// the candidate time would keep the restaurant within capacity. It sums
// the party sizes of every existing reservation whose time of day lies
// strictly within overlapWindow of the candidate and admits the party
// iff the running total plus the new party fits.
//
// This is deliberately an aggregate heuristic, not per-table interval
// scheduling: capacity counts covered seats across the whole room.
func IsTimeAvailable(candidate time.Time, existing []model.Reservation, partySize, capacity int) bool {
	return overlapLoad(candidate, existing)+partySize <= capacity
}

// overlapLoad returns the number of seats already committed inside the
// overlap window around the candidate time.
func overlapLoad(candidate time.Time, existing []model.Reservation) int {
	cand := minutesOfDay(candidate.Hour(), candidate.Minute())
	total := 0
	for _, res := range existing {
		t, err := time.Parse("15:04", res.Time)
		if err != nil {
			// A malformed stored time cannot be positioned on the
			// clock; it never conflicts.
			continue
		}
		diff := minutesOfDay(t.Hour(), t.Minute()) - cand
		if diff < 0 {
			diff = -diff
		}
		if time.Duration(diff)*time.Minute < overlapWindow {
			total += res.PartySize
		}
	}
	return total
}

func minutesOfDay(h, m int) int { return h*60 + m }
