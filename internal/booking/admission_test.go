package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/feastfleet/feastfleet/internal/model"
	"github.com/feastfleet/feastfleet/internal/repository"
)

type fakeRestaurants map[uint64]*model.Restaurant

func (f fakeRestaurants) GetByID(_ context.Context, id uint64) (*model.Restaurant, error) {
	r, ok := f[id]
	if !ok {
		return nil, repository.ErrRestaurantNotFound
	}
	return r, nil
}

type fakeStore struct {
	mu   sync.Mutex
	rows map[string]*model.Reservation
	err  error // forced error for both operations
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]*model.Reservation)}
}

func (f *fakeStore) ListByRestaurantAndDate(_ context.Context, restaurantID uint64, date string) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Reservation
	for _, r := range f.rows {
		if r.RestaurantID == restaurantID && r.Date == date {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateIfAbsent(_ context.Context, res *model.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, exists := f.rows[res.ID]; exists {
		return repository.ErrDuplicateReservation
	}
	cp := *res
	f.rows[res.ID] = &cp
	return nil
}

func testRestaurant(capacity int) *model.Restaurant {
	return &model.Restaurant{
		ID:       1,
		Name:     "Trattoria Roma",
		Timezone: "UTC",
		Capacity: capacity,
	}
}

func newTestController(rest *model.Restaurant, store *fakeStore, now time.Time) *Controller {
	ctrl := NewController(fakeRestaurants{rest.ID: rest}, store)
	ctrl.now = func() time.Time { return now }
	return ctrl
}

func validRequest() Request {
	return Request{UserID: 7, RestaurantID: 1, Date: "2026-09-14", Time: "18:00", PartySize: 4}
}

func TestProcessAdmits(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(testRestaurant(10), store, at(8, 0))

	out, err := ctrl.Process(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !out.Admitted || out.Duplicate {
		t.Fatalf("outcome = %+v, want admitted non-duplicate", out)
	}
	if out.RestaurantName != "Trattoria Roma" {
		t.Errorf("restaurant name = %q", out.RestaurantName)
	}
	wantID := "1#2026-09-14#18:00#7"
	if out.Reservation == nil || out.Reservation.ID != wantID {
		t.Fatalf("reservation = %+v, want ID %s", out.Reservation, wantID)
	}
	if out.Reservation.Status != model.StatusReserved {
		t.Errorf("status = %q, want %q", out.Reservation.Status, model.StatusReserved)
	}
	if _, ok := store.rows[wantID]; !ok {
		t.Error("reservation not persisted")
	}
}

func TestProcessIdempotentOnRedelivery(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(testRestaurant(10), store, at(8, 0))

	first, err := ctrl.Process(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("first Process: %v", err)
	}
	second, err := ctrl.Process(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("second Process: %v", err)
	}
	if !second.Admitted || !second.Duplicate {
		t.Fatalf("redelivered outcome = %+v, want admitted duplicate", second)
	}
	if first.Duplicate {
		t.Error("first delivery must not be marked duplicate")
	}
	if len(store.rows) != 1 {
		t.Fatalf("store has %d rows, want 1", len(store.rows))
	}
}

func TestProcessRejectsOverCapacity(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(testRestaurant(5), store, at(8, 0))

	// Fill the room at 18:00.
	full := validRequest()
	full.PartySize = 5
	if out, err := ctrl.Process(context.Background(), full); err != nil || !out.Admitted {
		t.Fatalf("setup admit failed: out=%+v err=%v", out, err)
	}

	// 18:30 is inside the overlap window.
	blocked := Request{UserID: 8, RestaurantID: 1, Date: "2026-09-14", Time: "18:30", PartySize: 1}
	out, err := ctrl.Process(context.Background(), blocked)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.Admitted || out.Reason != ReasonCapacityExceeded {
		t.Fatalf("outcome = %+v, want capacity_exceeded", out)
	}

	// 19:05 is 65 minutes later and clears the window.
	later := Request{UserID: 8, RestaurantID: 1, Date: "2026-09-14", Time: "19:05", PartySize: 1}
	out, err = ctrl.Process(context.Background(), later)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !out.Admitted {
		t.Fatalf("outcome = %+v, want admitted outside overlap window", out)
	}
}

func TestProcessRejectsPastTime(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(testRestaurant(10), store, at(19, 0))

	req := validRequest() // 18:00 same day, now is 19:00
	out, err := ctrl.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.Admitted || out.Reason != ReasonPastTime {
		t.Fatalf("outcome = %+v, want past_time", out)
	}
	if len(store.rows) != 0 {
		t.Error("rejected request must not persist")
	}
}

func TestProcessPastCheckUsesRestaurantZone(t *testing.T) {
	rest := testRestaurant(10)
	rest.Timezone = "America/New_York"
	store := newFakeStore()
	// 2026-09-14 21:00 UTC is 17:00 in New York: an 18:00 local
	// reservation is still in the future there.
	now := time.Date(2026, 9, 14, 21, 0, 0, 0, time.UTC)
	ctrl := newTestController(rest, store, now)

	out, err := ctrl.Process(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !out.Admitted {
		t.Fatalf("outcome = %+v, want admitted (18:00 local is future in New York)", out)
	}
}

func TestProcessRejectsUnknownRestaurant(t *testing.T) {
	ctrl := newTestController(testRestaurant(10), newFakeStore(), at(8, 0))
	req := validRequest()
	req.RestaurantID = 99
	out, err := ctrl.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.Admitted || out.Reason != ReasonRestaurantNotFound {
		t.Fatalf("outcome = %+v, want restaurant_not_found", out)
	}
}

func TestProcessRejectsInvalidRequests(t *testing.T) {
	ctrl := newTestController(testRestaurant(10), newFakeStore(), at(8, 0))
	cases := []Request{
		{UserID: 7, RestaurantID: 1, Date: "2026-09-14", Time: "18:00", PartySize: 0},
		{UserID: 0, RestaurantID: 1, Date: "2026-09-14", Time: "18:00", PartySize: 2},
		{UserID: 7, RestaurantID: 0, Date: "2026-09-14", Time: "18:00", PartySize: 2},
		{UserID: 7, RestaurantID: 1, Date: "not-a-date", Time: "18:00", PartySize: 2},
		{UserID: 7, RestaurantID: 1, Date: "2026-09-14", Time: "6pm", PartySize: 2},
	}
	for i, req := range cases {
		out, err := ctrl.Process(context.Background(), req)
		if err != nil {
			t.Fatalf("case %d: Process: %v", i, err)
		}
		if out.Admitted || out.Reason != ReasonInvalidRequest {
			t.Fatalf("case %d: outcome = %+v, want invalid_request", i, out)
		}
	}
}

func TestProcessPropagatesStoreErrors(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")
	ctrl := newTestController(testRestaurant(10), store, at(8, 0))

	_, err := ctrl.Process(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected a transient error for redelivery")
	}
}

func TestReasonText(t *testing.T) {
	for _, code := range []string{ReasonCapacityExceeded, ReasonPastTime, ReasonRestaurantNotFound, ReasonInvalidRequest, "unknown"} {
		if ReasonText(code) == "" {
			t.Errorf("no text for reason %q", code)
		}
	}
}
