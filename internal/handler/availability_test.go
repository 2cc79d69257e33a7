package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"

	"github.com/feastfleet/feastfleet/internal/repository"
)

// The happy path of GetAvailability needs a database; these tests cover
// the validation and short-circuit branches that never reach storage.

func callAvailability(t *testing.T, h *AvailabilityHandler, id, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/restaurants/"+id+"/availability"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h.GetAvailability(c); err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}
	return rec
}

func TestGetAvailabilityRejectsBadInput(t *testing.T) {
	h := &AvailabilityHandler{Now: time.Now}

	if rec := callAvailability(t, h, "abc", "?date=2026-09-14"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: status %d", rec.Code)
	}
	if rec := callAvailability(t, h, "1", "?date=14.09.2026"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad date: status %d", rec.Code)
	}
	if rec := callAvailability(t, h, "1", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("missing date: status %d", rec.Code)
	}
	if rec := callAvailability(t, h, "1", "?date=2026-09-14&party_size=0"); rec.Code != http.StatusBadRequest {
		t.Errorf("zero party: status %d", rec.Code)
	}
	if rec := callAvailability(t, h, "1", "?date=2026-09-14&party_size=two"); rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric party: status %d", rec.Code)
	}
}

func TestGetAvailabilityPastDateShortCircuits(t *testing.T) {
	// Repositories stay nil: a past date must never reach storage.
	h := &AvailabilityHandler{
		Now: func() time.Time {
			return time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
		},
	}
	rec := callAvailability(t, h, "1", "?date=2026-09-13&party_size=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	var body struct {
		AvailableTimes []slotView `json:"available_times"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.AvailableTimes == nil {
		t.Fatal("available_times missing from response")
	}
	if len(body.AvailableTimes) != 0 {
		t.Fatalf("got %d slots for a past date, want 0", len(body.AvailableTimes))
	}
}

func TestGetAvailabilityTodayOnWestOfUTCServer(t *testing.T) {
	// On a server clock west of UTC, midnight UTC of "today" sorts
	// before the server-local start of day. The past-date check
	// compares calendar dates, so today's date must still reach the
	// restaurant lookup. The repositories sit on an unreachable
	// database: reaching storage surfaces as a 500, short-circuiting
	// as a 200 with an empty list.
	db, err := sql.Open("mysql", "nobody@tcp(127.0.0.1:1)/none")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()

	h := &AvailabilityHandler{
		Restaurants:  repository.NewRestaurantRepo(db),
		Reservations: repository.NewReservationRepo(db),
		Now: func() time.Time {
			return time.Date(2026, 9, 14, 12, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
		},
	}

	rec := callAvailability(t, h, "1", "?date=2026-09-14&party_size=2")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("today's date: status %d, want 500 (restaurant lookup attempted)", rec.Code)
	}

	// A genuinely past date still stops before storage.
	rec = callAvailability(t, h, "1", "?date=2026-09-13&party_size=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("past date: status %d, want 200 empty without a storage call", rec.Code)
	}
}
