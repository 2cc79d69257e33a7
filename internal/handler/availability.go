package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/feastfleet/feastfleet/internal/booking"
	"github.com/feastfleet/feastfleet/internal/repository"
)

// AvailabilityHandler serves the read path of the booking engine: it
// composes the schedule lookup, slot generation and the overlap/
// capacity rule into a displayable list of candidate times. The query
// is stateless and side-effect free; admission happens elsewhere.
type AvailabilityHandler struct {
	Restaurants  *repository.RestaurantRepo
	Reservations *repository.ReservationRepo

	// now is replaceable in tests; defaults to time.Now.
	Now func() time.Time
}

// NewAvailabilityHandler constructs the handler over the two repositories.
func NewAvailabilityHandler(restaurants *repository.RestaurantRepo, reservations *repository.ReservationRepo) *AvailabilityHandler {
	if restaurants == nil || reservations == nil {
		panic("nil repository passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Restaurants: restaurants, Reservations: reservations, Now: time.Now}
}

// slotView is one entry of the availability response.
type slotView struct {
	Status string `json:"status"` // AVAILABLE | UNAVAILABLE
	Time   string `json:"time"`   // 12-hour display, e.g. "06:30 PM"
}

const (
	statusAvailable   = "AVAILABLE"
	statusUnavailable = "UNAVAILABLE"
)

// GetAvailability handles GET /v1/restaurants/:id/availability. Query
// parameters: date (YYYY-MM-DD, required) and party_size (default 1).
// Errors on this path degrade to an empty slot list plus a message so
// the caller can always render the same shape; only malformed input and
// storage failures produce non-200 responses.
func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
	restaurantID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	dateStr := c.QueryParam("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	partySize := 1
	if ps := c.QueryParam("party_size"); ps != "" {
		n, err := strconv.Atoi(ps)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "party_size must be a positive integer"})
		}
		partySize = n
	}

	// A date already in the past yields an empty result before any
	// schedule lookup happens. Calendar dates in YYYY-MM-DD form
	// compare lexically; comparing instants here would mix the query
	// date's zone with the server's and misclassify "today".
	now := h.Now()
	if dateStr < now.Format("2006-01-02") {
		return c.JSON(http.StatusOK, echo.Map{"available_times": []slotView{}})
	}

	ctx := c.Request().Context()
	rest, err := h.Restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusOK, echo.Map{
				"available_times": []slotView{},
				"message":         "hours not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	loc := rest.Location()
	localNow := now.In(loc)
	localDate := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	if localDate.Before(startOfDay(localNow)) {
		return c.JSON(http.StatusOK, echo.Map{"available_times": []slotView{}})
	}

	hours, status := booking.HoursFor(rest.Hours, localDate.Weekday())
	if status == booking.DayClosed {
		return c.JSON(http.StatusOK, echo.Map{
			"available_times": []slotView{},
			"message":         "Restaurant is closed.",
		})
	}
	open, close, err := booking.AnchorHours(localDate, hours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invalid schedule"})
	}

	existing, err := h.Reservations.ListByRestaurantAndDate(ctx, restaurantID, dateStr)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	sameDay := startOfDay(localDate).Equal(startOfDay(localNow))
	from, until := booking.EffectiveWindow(open, close, localNow, sameDay)
	avail := booking.BuildAvailability(from, until, existing, partySize, rest.Capacity)

	views := make([]slotView, 0, len(avail.Slots))
	for _, s := range avail.Slots {
		tag := statusUnavailable
		if s.Available {
			tag = statusAvailable
		}
		views = append(views, slotView{Status: tag, Time: s.Display()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"available_times": views,
		"opening_hour":    avail.OpensAt.Format("15:04"),
		"closing_hour":    avail.ClosesAt.Format("15:04"),
	})
}

// startOfDay truncates an instant to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
