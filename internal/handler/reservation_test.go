package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/feastfleet/feastfleet/internal/queue"
)

type fakePublisher struct {
	published []queue.ReservationRequested
	err       error
}

func (p *fakePublisher) PublishReservationRequested(_ context.Context, ev queue.ReservationRequested) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, ev)
	return nil
}

func postReservation(t *testing.T, h *ReservationHandler, userID interface{}, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return rec
}

func TestCreateReservationEnqueues(t *testing.T) {
	pub := &fakePublisher{}
	h := &ReservationHandler{Publisher: pub}

	body := `{"restaurant_id":42,"res_date":"2026-09-20","time":"18:30","party_size":4}`
	rec := postReservation(t, h, float64(7), body)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status %d, want 202", rec.Code)
	}
	if len(pub.published) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.published))
	}
	ev := pub.published[0]
	if ev.UserID != 7 || ev.RestaurantID != 42 || ev.Date != "2026-09-20" || ev.Time != "18:30" || ev.PartySize != 4 {
		t.Fatalf("event = %+v", ev)
	}
}

func TestCreateReservationValidation(t *testing.T) {
	cases := map[string]string{
		"missing restaurant": `{"res_date":"2026-09-20","time":"18:30","party_size":4}`,
		"zero party":         `{"restaurant_id":42,"res_date":"2026-09-20","time":"18:30","party_size":0}`,
		"bad date":           `{"restaurant_id":42,"res_date":"20.09.2026","time":"18:30","party_size":4}`,
		"bad time":           `{"restaurant_id":42,"res_date":"2026-09-20","time":"6:30 PM","party_size":4}`,
	}
	for name, body := range cases {
		pub := &fakePublisher{}
		h := &ReservationHandler{Publisher: pub}
		rec := postReservation(t, h, float64(7), body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", name, rec.Code)
		}
		if len(pub.published) != 0 {
			t.Errorf("%s: invalid request must not reach the queue", name)
		}
	}
}

func TestCreateReservationRequiresAuth(t *testing.T) {
	h := &ReservationHandler{Publisher: &fakePublisher{}}
	rec := postReservation(t, h, nil, `{"restaurant_id":42,"res_date":"2026-09-20","time":"18:30","party_size":4}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}

func TestCreateReservationBrokerDown(t *testing.T) {
	h := &ReservationHandler{Publisher: &fakePublisher{err: errors.New("dial tcp: refused")}}
	rec := postReservation(t, h, float64(7), `{"restaurant_id":42,"res_date":"2026-09-20","time":"18:30","party_size":4}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d, want 503", rec.Code)
	}
}
