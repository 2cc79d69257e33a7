// Package queue defines message payloads exchanged over the message broker
// and the background consumers that process them.
package queue

// ReservationRequested is the ingress message for the booking write
// path. The HTTP handler publishes it and returns immediately; the
// booking worker consumes it and decides admission. Field names match
// the JSON the frontend already submits.
type ReservationRequested struct {
	UserID       uint64 `json:"user_id"`
	RestaurantID uint64 `json:"restaurant_id"`
	Date         string `json:"res_date"`
	Time         string `json:"time"`
	PartySize    int    `json:"party_size"`
}

// ReservationOutcome is published exactly once per decided booking
// attempt (admitted or rejected). It carries enough information for the
// notification consumer to write a log line and email the requester
// without touching the primary database.
type ReservationOutcome struct {
	ReservationID  string `json:"reservation_id,omitempty"`
	UserID         uint64 `json:"user_id"`
	Email          string `json:"email,omitempty"`
	RestaurantName string `json:"restaurant_name,omitempty"`
	Date           string `json:"res_date"`
	Time           string `json:"time"`
	PartySize      int    `json:"party_size"`
	Success        bool   `json:"success"`
	Reason         string `json:"reason,omitempty"`
	DecidedAt      string `json:"decided_at"`
}

// OrderPlaced is published after a food order is persisted so
// downstream consumers (kitchen displays, analytics) can react without
// polling the orders table. Nothing in this service consumes it.
type OrderPlaced struct {
	OrderID      string `json:"order_id"`
	UserID       uint64 `json:"user_id"`
	RestaurantID uint64 `json:"restaurant_id"`
	Status       string `json:"status"`
	PlacedAt     string `json:"placed_at"`
}
