package booking

import (
	"testing"
	"time"

	"github.com/feastfleet/feastfleet/internal/model"
)

func weekSchedule() model.WeeklySchedule {
	s := model.WeeklySchedule{}
	for _, day := range model.Weekdays {
		if day == "Monday" {
			s = append(s, model.DayHours{Day: day, Open: false})
			continue
		}
		s = append(s, model.DayHours{Day: day, Open: true, OpensAt: "09:00", ClosesAt: "17:00"})
	}
	return s
}

func TestHoursForOpenDay(t *testing.T) {
	h, status := HoursFor(weekSchedule(), time.Friday)
	if status != DayOpen {
		t.Fatal("Friday should be open")
	}
	if h.OpensAt != "09:00" || h.ClosesAt != "17:00" {
		t.Fatalf("hours = %+v", h)
	}
}

func TestHoursForClosedDay(t *testing.T) {
	if _, status := HoursFor(weekSchedule(), time.Monday); status != DayClosed {
		t.Fatal("Monday should be closed")
	}
}

func TestHoursForMissingDayIsClosed(t *testing.T) {
	if _, status := HoursFor(model.WeeklySchedule{}, time.Friday); status != DayClosed {
		t.Fatal("a missing weekday entry should read as closed")
	}
}

func TestAnchorHours(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	date := time.Date(2026, 9, 18, 0, 0, 0, 0, ny)
	open, close, err := AnchorHours(date, Hours{OpensAt: "09:00", ClosesAt: "17:00"})
	if err != nil {
		t.Fatalf("AnchorHours: %v", err)
	}
	if open.Hour() != 9 || open.Location() != ny {
		t.Errorf("open = %v", open)
	}
	if close.Hour() != 17 || !close.After(open) {
		t.Errorf("close = %v", close)
	}
}

func TestAnchorHoursRejectsMalformedTimes(t *testing.T) {
	date := time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)
	if _, _, err := AnchorHours(date, Hours{OpensAt: "9am", ClosesAt: "17:00"}); err == nil {
		t.Fatal("expected an error for a malformed opening time")
	}
}
