package booking

import (
	"testing"
	"time"

	"github.com/feastfleet/feastfleet/internal/model"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 14, hour, min, 0, 0, time.UTC)
}

func TestRoundUpToQuarter(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{at(9, 7), at(9, 15)},
		{at(9, 15), at(9, 15)},
		{at(9, 0), at(9, 0)},
		{at(9, 46), at(10, 0)},
		{at(23, 59), time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		if got := RoundUpToQuarter(c.in); !got.Equal(c.want) {
			t.Errorf("RoundUpToQuarter(%v) = %v, want %v", c.in.Format("15:04"), got.Format("15:04"), c.want.Format("15:04"))
		}
	}
}

func TestRoundUpToQuarterDropsSeconds(t *testing.T) {
	in := time.Date(2026, 9, 14, 9, 15, 30, 0, time.UTC)
	if got := RoundUpToQuarter(in); !got.Equal(at(9, 30)) {
		t.Errorf("got %v, want 09:30", got.Format("15:04:05"))
	}
}

func TestQuarterHoursInclusive(t *testing.T) {
	var got []string
	for ts := range QuarterHours(at(9, 0), at(10, 0)) {
		got = append(got, ts.Format("15:04"))
	}
	want := []string{"09:00", "09:15", "09:30", "09:45", "10:00"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestQuarterHoursEmptyWhenInverted(t *testing.T) {
	for ts := range QuarterHours(at(17, 0), at(9, 0)) {
		t.Fatalf("unexpected slot %v from inverted window", ts)
	}
}

func TestQuarterHoursRestartable(t *testing.T) {
	seq := QuarterHours(at(9, 0), at(9, 30))
	first, second := 0, 0
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	if first != 3 || second != 3 {
		t.Fatalf("restarted sequence yielded %d then %d slots, want 3 and 3", first, second)
	}
}

func TestEffectiveWindowFutureDayStartsAtOpen(t *testing.T) {
	from, until := EffectiveWindow(at(9, 0), at(17, 0), at(8, 0), false)
	if !from.Equal(at(9, 0)) || !until.Equal(at(17, 0)) {
		t.Fatalf("window = [%v, %v], want [09:00, 17:00]", from.Format("15:04"), until.Format("15:04"))
	}
}

func TestEffectiveWindowSameDayBeforeOpen(t *testing.T) {
	from, _ := EffectiveWindow(at(9, 0), at(17, 0), at(8, 0), true)
	if !from.Equal(at(9, 0)) {
		t.Fatalf("start = %v, want 09:00", from.Format("15:04"))
	}
}

func TestEffectiveWindowSameDayMidMorning(t *testing.T) {
	from, _ := EffectiveWindow(at(9, 0), at(17, 0), at(9, 7), true)
	if !from.Equal(at(9, 15)) {
		t.Fatalf("start = %v, want 09:15", from.Format("15:04"))
	}
}

func TestEffectiveWindowEmptyAfterClose(t *testing.T) {
	from, until := EffectiveWindow(at(9, 0), at(17, 0), at(17, 30), true)
	if !from.After(until) {
		t.Fatalf("expected empty window, got [%v, %v]", from.Format("15:04"), until.Format("15:04"))
	}
}

func TestBuildAvailabilityFullDay(t *testing.T) {
	avail := BuildAvailability(at(9, 0), at(17, 0), nil, 2, 10)
	if len(avail.Slots) != 33 { // 8 hours * 4 + closing boundary
		t.Fatalf("slot count = %d, want 33", len(avail.Slots))
	}
	for _, s := range avail.Slots {
		if !s.Available {
			t.Fatalf("slot %v unavailable with empty reservation set", s.Time.Format("15:04"))
		}
	}
	if avail.Slots[0].Display() != "09:00 AM" {
		t.Errorf("first display = %q, want 09:00 AM", avail.Slots[0].Display())
	}
	if avail.Slots[len(avail.Slots)-1].Display() != "05:00 PM" {
		t.Errorf("last display = %q, want 05:00 PM", avail.Slots[len(avail.Slots)-1].Display())
	}
}

func TestBuildAvailabilityNeverNilSlots(t *testing.T) {
	avail := BuildAvailability(at(17, 0), at(9, 0), nil, 2, 10)
	if avail.Slots == nil {
		t.Fatal("Slots is nil for an empty window")
	}
	if len(avail.Slots) != 0 {
		t.Fatalf("slot count = %d, want 0", len(avail.Slots))
	}
}

func TestBuildAvailabilityMarksConflicts(t *testing.T) {
	existing := []model.Reservation{
		{Time: "12:00", PartySize: 8},
	}
	avail := BuildAvailability(at(11, 0), at(13, 0), existing, 4, 10)
	byTime := make(map[string]bool, len(avail.Slots))
	for _, s := range avail.Slots {
		byTime[s.Time.Format("15:04")] = s.Available
	}
	// 11:00 is exactly 60 minutes away and does not conflict.
	if !byTime["11:00"] {
		t.Error("11:00 should be available at 60 minutes distance")
	}
	if byTime["11:15"] {
		t.Error("11:15 should conflict (45 minutes away, 8+4 > 10)")
	}
	if byTime["12:00"] {
		t.Error("12:00 should conflict")
	}
	if !byTime["13:00"] {
		t.Error("13:00 should be available at 60 minutes distance")
	}
}
