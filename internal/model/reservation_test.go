package model

import (
	"testing"
	"time"
)

func TestReservationIDDeterministic(t *testing.T) {
	a := ReservationID(42, "2026-09-14", "18:30", 7)
	b := ReservationID(42, "2026-09-14", "18:30", 7)
	if a != b {
		t.Fatalf("same inputs produced %q and %q", a, b)
	}
	if a != "42#2026-09-14#18:30#7" {
		t.Fatalf("id = %q", a)
	}
	if a == ReservationID(42, "2026-09-14", "18:30", 8) {
		t.Error("different users must produce different ids")
	}
	if a == ReservationID(42, "2026-09-14", "18:45", 7) {
		t.Error("different times must produce different ids")
	}
}

func TestReservationStartsAt(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	r := Reservation{Date: "2026-09-14", Time: "18:30"}
	got, err := r.StartsAt(ny)
	if err != nil {
		t.Fatalf("StartsAt: %v", err)
	}
	if got.Hour() != 18 || got.Minute() != 30 || got.Location() != ny {
		t.Fatalf("StartsAt = %v", got)
	}

	r.Time = "6:30 PM"
	if _, err := r.StartsAt(ny); err == nil {
		t.Fatal("expected an error for a 12-hour time string")
	}
}

func TestCartTotal(t *testing.T) {
	c := Cart{Items: []CartItem{
		{Quantity: 2, PriceCents: 1250},
		{Quantity: 1, PriceCents: 499},
	}}
	if got := c.Total(); got != 2999 {
		t.Fatalf("Total = %d, want 2999", got)
	}
	empty := Cart{}
	if got := empty.Total(); got != 0 {
		t.Fatalf("empty Total = %d", got)
	}
}
