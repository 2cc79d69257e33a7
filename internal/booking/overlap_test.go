package booking

import (
	"testing"

	"github.com/feastfleet/feastfleet/internal/model"
)

func res(timeOfDay string, party int) model.Reservation {
	return model.Reservation{Time: timeOfDay, PartySize: party}
}

func TestIsTimeAvailableEmptyRoom(t *testing.T) {
	if !IsTimeAvailable(at(18, 0), nil, 10, 10) {
		t.Error("full-capacity party should fit an empty room")
	}
	if IsTimeAvailable(at(18, 0), nil, 11, 10) {
		t.Error("party larger than capacity should never fit")
	}
}

func TestIsTimeAvailableSumsOverlappingParties(t *testing.T) {
	existing := []model.Reservation{res("12:00", 4)}
	// 12:59 is 59 minutes away: inside the window, 4+6 = 10 <= 10.
	if !IsTimeAvailable(at(12, 59), existing, 6, 10) {
		t.Error("4+6 within capacity 10 should be available")
	}
	if IsTimeAvailable(at(12, 59), existing, 7, 10) {
		t.Error("4+7 over capacity 10 should not be available")
	}
}

func TestIsTimeAvailableWindowIsStrict(t *testing.T) {
	existing := []model.Reservation{res("12:00", 4)}
	// 13:00 is exactly 60 minutes away: outside the window.
	if !IsTimeAvailable(at(13, 0), existing, 7, 10) {
		t.Error("a 60-minute gap should not conflict")
	}
	// 13:01 is 61 minutes away.
	if !IsTimeAvailable(at(13, 1), existing, 7, 10) {
		t.Error("a 61-minute gap should not conflict")
	}
	// 12:45 is 45 minutes away.
	if IsTimeAvailable(at(12, 45), existing, 7, 10) {
		t.Error("a 45-minute gap should conflict when over capacity")
	}
}

func TestIsTimeAvailableSymmetricWindow(t *testing.T) {
	existing := []model.Reservation{res("12:00", 8)}
	if IsTimeAvailable(at(11, 15), existing, 4, 10) {
		t.Error("earlier candidate inside the window should conflict")
	}
	if !IsTimeAvailable(at(11, 0), existing, 4, 10) {
		t.Error("earlier candidate at exactly 60 minutes should not conflict")
	}
}

func TestIsTimeAvailableSkipsMalformedStoredTimes(t *testing.T) {
	existing := []model.Reservation{res("garbage", 100), res("12:30", 2)}
	if !IsTimeAvailable(at(12, 0), existing, 8, 10) {
		t.Error("malformed stored time must not count against capacity")
	}
}

func TestIsTimeAvailableMultipleReservations(t *testing.T) {
	existing := []model.Reservation{
		res("18:00", 3),
		res("18:30", 3),
		res("19:30", 3), // 90 minutes from 18:00, 60 from 18:30
	}
	// Candidate 18:15 overlaps 18:00 and 18:30 only: 3+3+4 = 10.
	if !IsTimeAvailable(at(18, 15), existing, 4, 10) {
		t.Error("candidate overlapping two of three reservations should fit")
	}
	if IsTimeAvailable(at(18, 15), existing, 5, 10) {
		t.Error("3+3+5 = 11 over capacity 10 should not fit")
	}
	// Candidate 19:00 overlaps 18:30 and 19:30: 3+3+4 = 10.
	if !IsTimeAvailable(at(19, 0), existing, 4, 10) {
		t.Error("candidate between second and third reservations should fit")
	}
}
