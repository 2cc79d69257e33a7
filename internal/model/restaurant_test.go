package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fullWeek(open string, closeAt string) WeeklySchedule {
	s := WeeklySchedule{}
	for _, day := range Weekdays {
		s = append(s, DayHours{Day: day, Open: true, OpensAt: open, ClosesAt: closeAt})
	}
	return s
}

func TestScheduleValidateAccepts(t *testing.T) {
	if err := fullWeek("09:00", "22:00").Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	s := fullWeek("09:00", "22:00")
	s[0] = DayHours{Day: "Monday", Open: false}
	if err := s.Validate(); err != nil {
		t.Fatalf("closed day rejected: %v", err)
	}
}

func TestScheduleValidateRejects(t *testing.T) {
	cases := map[string]WeeklySchedule{
		"too few days":        fullWeek("09:00", "22:00")[:6],
		"unknown day name":    append(fullWeek("09:00", "22:00")[:6], DayHours{Day: "Funday", Open: false}),
		"duplicate day":       append(fullWeek("09:00", "22:00")[:6], DayHours{Day: "Monday", Open: false}),
		"open without times":  append(fullWeek("09:00", "22:00")[:6], DayHours{Day: "Sunday", Open: true}),
		"closed with times":   append(fullWeek("09:00", "22:00")[:6], DayHours{Day: "Sunday", Open: false, OpensAt: "09:00", ClosesAt: "22:00"}),
		"open equals close":   append(fullWeek("09:00", "22:00")[:6], DayHours{Day: "Sunday", Open: true, OpensAt: "09:00", ClosesAt: "09:00"}),
		"close before open":   append(fullWeek("09:00", "22:00")[:6], DayHours{Day: "Sunday", Open: true, OpensAt: "22:00", ClosesAt: "09:00"}),
		"unparseable time":    append(fullWeek("09:00", "22:00")[:6], DayHours{Day: "Sunday", Open: true, OpensAt: "9am", ClosesAt: "22:00"}),
	}
	for name, s := range cases {
		if err := s.Validate(); !errors.Is(err, ErrInvalidSchedule) {
			t.Errorf("%s: err = %v, want ErrInvalidSchedule", name, err)
		}
	}
}

func TestScheduleForDay(t *testing.T) {
	s := fullWeek("09:00", "22:00")
	d, ok := s.ForDay("Wednesday")
	if !ok || d.OpensAt != "09:00" {
		t.Fatalf("ForDay = %+v, %v", d, ok)
	}
	if _, ok := s.ForDay("Doomsday"); ok {
		t.Fatal("unknown day should not resolve")
	}
}

func TestScheduleJSONRoundTrip(t *testing.T) {
	in := fullWeek("11:30", "23:00")
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out WeeklySchedule
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if err := out.Validate(); err != nil {
		t.Fatalf("decoded schedule invalid: %v", err)
	}
	if d, _ := out.ForDay("Friday"); d.ClosesAt != "23:00" {
		t.Fatalf("Friday = %+v", d)
	}
}

func TestRestaurantLocationFallsBackToUTC(t *testing.T) {
	r := Restaurant{Timezone: "Mars/Olympus"}
	if loc := r.Location(); loc != time.UTC {
		t.Errorf("unknown zone resolved to %v, want UTC", loc)
	}
	r.Timezone = ""
	if loc := r.Location(); loc != time.UTC {
		t.Errorf("empty zone resolved to %v, want UTC", loc)
	}
	r.Timezone = "Europe/Berlin"
	if loc := r.Location(); loc.String() != "Europe/Berlin" {
		t.Errorf("zone = %v", loc)
	}
}

func TestValidTimezone(t *testing.T) {
	if !ValidTimezone("America/New_York") {
		t.Error("America/New_York should be valid")
	}
	if ValidTimezone("Nowhere/Special") {
		t.Error("Nowhere/Special should be invalid")
	}
}
