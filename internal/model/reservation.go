package model

import (
	"fmt"
	"time"
)

// StatusReserved is the only reservation status produced by the booking
// worker. Cancellation deletes the record instead of transitioning it.
const StatusReserved = "RESERVED"

// Reservation records a confirmed table booking. Its ID is derived
// deterministically from the booking request so that redelivered queue
// messages map onto the same row and cannot create duplicates.
//
// Fields:
//  ID           – deterministic composite key, see ReservationID.
//  UserID       – user who requested the booking.
//  RestaurantID – restaurant being booked.
//  Date         – reservation date, "YYYY-MM-DD" (restaurant-local).
//  Time         – reservation start, "HH:MM" 24-hour (restaurant-local).
//  PartySize    – number of covers; positive.
//  Status       – always RESERVED once written.
//  CreatedAt    – timestamp of admission.
type Reservation struct {
	ID           string    // reservations.id
	UserID       uint64    // reservations.user_id
	RestaurantID uint64    // reservations.restaurant_id
	Date         string    // reservations.res_date
	Time         string    // reservations.res_time
	PartySize    int       // reservations.party_size
	Status       string    // reservations.status
	CreatedAt    time.Time // reservations.created_at
}

// ReservationID builds the deterministic reservation key. Two booking
// attempts for the same restaurant, date, time and user always collide
// on this key, which is what makes admission idempotent.
func ReservationID(restaurantID uint64, date, timeOfDay string, userID uint64) string {
	return fmt.Sprintf("%d#%s#%s#%d", restaurantID, date, timeOfDay, userID)
}

// StartsAt combines the reservation's date and time in the given
// location. It is used to decide whether a reservation lies in the past.
func (r *Reservation) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", r.Date+" "+r.Time, loc)
}
