package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/feastfleet/feastfleet/internal/model"
	"github.com/feastfleet/feastfleet/internal/repository"
)

// Rejection reasons carried on an Outcome. They are machine-readable;
// the notification layer maps them to human-readable text.
const (
	ReasonCapacityExceeded   = "capacity_exceeded"
	ReasonPastTime           = "past_time"
	ReasonRestaurantNotFound = "restaurant_not_found"
	ReasonInvalidRequest     = "invalid_request"
)

// ReasonText maps a rejection reason code to the sentence shown to the
// requester in the outcome notification.
func ReasonText(code string) string {
	switch code {
	case ReasonCapacityExceeded:
		return "The restaurant is fully booked around the requested time."
	case ReasonPastTime:
		return "The requested date and time are in the past."
	case ReasonRestaurantNotFound:
		return "The restaurant could not be found."
	case ReasonInvalidRequest:
		return "The reservation request was invalid."
	default:
		return "The reservation could not be completed."
	}
}

// RestaurantSource is the narrow read contract the controller needs
// from the restaurant store. Lookups for unknown IDs must return an
// error satisfying errors.Is(err, repository.ErrRestaurantNotFound).
type RestaurantSource interface {
	GetByID(ctx context.Context, id uint64) (*model.Restaurant, error)
}

// ReservationStore is the contract for reading the reservation set of a
// restaurant-day and performing the conditional insert. CreateIfAbsent
// must fail with repository.ErrDuplicateReservation when a record with
// the same ID already exists, and must write nothing in that case.
type ReservationStore interface {
	ListByRestaurantAndDate(ctx context.Context, restaurantID uint64, date string) ([]model.Reservation, error)
	CreateIfAbsent(ctx context.Context, res *model.Reservation) error
}

// Request is a booking attempt pulled off the queue. Fields mirror the
// enqueued message; the consumer parses the wire payload into this
// struct before handing it to the controller.
type Request struct {
	UserID       uint64
	RestaurantID uint64
	Date         string // YYYY-MM-DD, restaurant-local
	Time         string // HH:MM 24-hour, restaurant-local
	PartySize    int
}

// Outcome is the single terminal result of one admission attempt.
// Exactly one of Admitted/Reason is meaningful: Admitted outcomes carry
// the persisted reservation, rejected outcomes carry a reason code.
// Duplicate marks an admitted outcome that hit an already-existing
// record (redelivered message); the caller must not send a second
// notification for it.
type Outcome struct {
	Admitted       bool
	Duplicate      bool
	Reason         string
	RestaurantName string
	Reservation    *model.Reservation
}

// Controller is the booking admission write path. It re-validates
// availability at commit time and performs the conditional idempotent
// insert. Admission for one (restaurant, date) pair is serialized by an
// in-process keyed mutex, which closes the cross-requester capacity
// race as long as a single worker process consumes the queue.
type Controller struct {
	Restaurants  RestaurantSource
	Reservations ReservationStore

	// now is replaceable in tests; defaults to time.Now.
	now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewController constructs a Controller over the given stores.
func NewController(restaurants RestaurantSource, reservations ReservationStore) *Controller {
	if restaurants == nil || reservations == nil {
		panic("nil store passed to NewController")
	}
	return &Controller{
		Restaurants:  restaurants,
		Reservations: reservations,
		now:          time.Now,
		locks:        make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing admission for one
// restaurant-day. Entries are never evicted; the map stays small
// because keys recycle daily and the worker process is restarted on
// deploys.
func (c *Controller) lockFor(restaurantID uint64, date string) *sync.Mutex {
	key := fmt.Sprintf("%d#%s", restaurantID, date)
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[key]
	if !ok {
		l = &sync.Mutex{}
		c.locks[key] = l
	}
	return l
}

// Process runs one booking attempt to a terminal outcome. A non-nil
// error means the attempt could not be decided (store unavailable,
// broken connection); the message should be redelivered and no
// notification sent. A nil error always comes with exactly one decided
// Outcome.
func (c *Controller) Process(ctx context.Context, req Request) (Outcome, error) {
	if req.PartySize <= 0 || req.RestaurantID == 0 || req.UserID == 0 {
		return Outcome{Reason: ReasonInvalidRequest}, nil
	}

	rest, err := c.Restaurants.GetByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return Outcome{Reason: ReasonRestaurantNotFound}, nil
		}
		return Outcome{}, err
	}

	loc := rest.Location()
	startsAt, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, loc)
	if err != nil {
		return Outcome{Reason: ReasonInvalidRequest, RestaurantName: rest.Name}, nil
	}
	if startsAt.Before(c.now().In(loc)) {
		return Outcome{Reason: ReasonPastTime, RestaurantName: rest.Name}, nil
	}

	lock := c.lockFor(req.RestaurantID, req.Date)
	lock.Lock()
	defer lock.Unlock()

	// Mandatory re-read: time has passed since the availability query
	// and other bookings may have landed on this restaurant-day.
	existing, err := c.Reservations.ListByRestaurantAndDate(ctx, req.RestaurantID, req.Date)
	if err != nil {
		return Outcome{}, err
	}
	if !IsTimeAvailable(startsAt, existing, req.PartySize, rest.Capacity) {
		return Outcome{Reason: ReasonCapacityExceeded, RestaurantName: rest.Name}, nil
	}

	res := &model.Reservation{
		ID:           model.ReservationID(req.RestaurantID, req.Date, req.Time, req.UserID),
		UserID:       req.UserID,
		RestaurantID: req.RestaurantID,
		Date:         req.Date,
		Time:         req.Time,
		PartySize:    req.PartySize,
		Status:       model.StatusReserved,
	}
	if err := c.Reservations.CreateIfAbsent(ctx, res); err != nil {
		if errors.Is(err, repository.ErrDuplicateReservation) {
			// A retried message for an already-admitted booking.
			// Report success but flag it so no second notification
			// fires.
			return Outcome{Admitted: true, Duplicate: true, RestaurantName: rest.Name, Reservation: res}, nil
		}
		return Outcome{}, err
	}
	return Outcome{Admitted: true, RestaurantName: rest.Name, Reservation: res}, nil
}
