// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and the booking worker to distinguish between different
// failure scenarios with errors.Is, e.g. a missing restaurant (empty
// availability with a message) versus a duplicate reservation insert
// (benign replay of a queue message).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as cancelling another user's
// reservation. Handlers should translate this into an HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrRestaurantNotFound is returned when a restaurant (and therefore
// its schedule and capacity) does not exist. The availability query
// surfaces this as an empty result with a message, not a hard error.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrReservationNotFound is returned when a reservation lookup or
// delete matches no row.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrDuplicateReservation is returned by the conditional reservation
// insert when a record with the same deterministic ID already exists.
// Callers treat it as already-admitted rather than a failure.
var ErrDuplicateReservation = errors.New("reservation already exists")

// ErrCartNotFound is returned when a user has no stored cart for the
// requested restaurant.
var ErrCartNotFound = errors.New("cart not found")

// ErrOrderNotFound is returned when an order lookup matches no row for
// the calling user.
var ErrOrderNotFound = errors.New("order not found")
