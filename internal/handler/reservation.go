package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/feastfleet/feastfleet/internal/queue"
	"github.com/feastfleet/feastfleet/internal/repository"
)

// RequestPublisher enqueues reservation requests for asynchronous
// admission. Satisfied by queue_publisher.Publisher.
type RequestPublisher interface {
	PublishReservationRequested(ctx context.Context, ev queue.ReservationRequested) error
}

// ReservationHandler covers the write ingress (enqueue a request) and
// the read endpoints for a user's own reservations. Admission itself is
// decided by the booking worker, never inline in a request handler.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Publisher    RequestPublisher

	Now func() time.Time
}

// NewReservationHandler wires the handler to its store and the queue.
func NewReservationHandler(reservations *repository.ReservationRepo, pub RequestPublisher) *ReservationHandler {
	if reservations == nil || pub == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: reservations, Publisher: pub, Now: time.Now}
}

type createReservationReq struct {
	RestaurantID uint64 `json:"restaurant_id"`
	Date         string `json:"res_date"`
	Time         string `json:"time"`
	PartySize    int    `json:"party_size"`
}

// Create handles POST /v1/reservations. The request is validated for
// shape only, then published to the booking queue; the outcome reaches
// the user through the notification channel. Responds 202 on enqueue.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RestaurantID == 0 || req.PartySize <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_id and party_size are required"})
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "res_date must be YYYY-MM-DD"})
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "time must be HH:MM"})
	}

	ev := queue.ReservationRequested{
		UserID:       userID,
		RestaurantID: req.RestaurantID,
		Date:         req.Date,
		Time:         req.Time,
		PartySize:    req.PartySize,
	}
	if err := h.Publisher.PublishReservationRequested(c.Request().Context(), ev); err != nil {
		log.Printf("[reservation] enqueue failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "reservation service unavailable, try again"})
	}
	return c.JSON(http.StatusAccepted, echo.Map{
		"message": "Reservation request submitted",
	})
}

// reservationView is the list/detail projection returned to clients.
type reservationView struct {
	ID             string `json:"reservation_id"`
	RestaurantID   uint64 `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	Date           string `json:"res_date"`
	Time           string `json:"time"`
	PartySize      int    `json:"party_size"`
	Status         string `json:"status"`
}

func toReservationView(d repository.ReservationDetail) reservationView {
	return reservationView{
		ID:             d.ID,
		RestaurantID:   d.RestaurantID,
		RestaurantName: d.RestaurantName,
		Date:           d.Date,
		Time:           d.Time,
		PartySize:      d.PartySize,
		Status:         d.Status,
	}
}

// List handles GET /v1/reservations and splits the caller's
// reservations into upcoming and past relative to each restaurant's
// own clock.
func (h *ReservationHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Reservations.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	now := h.Now()
	upcoming := make([]reservationView, 0)
	past := make([]reservationView, 0)
	for _, d := range details {
		starts, err := d.StartsAt()
		if err != nil {
			// Malformed rows are surfaced as past rather than dropped.
			past = append(past, toReservationView(d))
			continue
		}
		if starts.Before(now) {
			past = append(past, toReservationView(d))
		} else {
			upcoming = append(upcoming, toReservationView(d))
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"upcoming": upcoming,
		"past":     past,
	})
}

// Get handles GET /v1/reservations/:id. The id is the composite
// reservation key; ownership is enforced by the repository.
func (h *ReservationHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing reservation id"})
	}
	detail, err := h.Reservations.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound), errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusOK, toReservationView(*detail))
}

// Delete handles DELETE /v1/reservations/:id (cancellation).
func (h *ReservationHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing reservation id"})
	}
	if err := h.Reservations.DeleteByIDForUser(c.Request().Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound), errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
}
