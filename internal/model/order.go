package model

import "time"

// OrderPlaced is the initial status of every order. Downstream status
// transitions happen outside this service.
const OrderPlaced = "PLACED"

// OrderItem is a menu item and quantity inside a placed order.
type OrderItem struct {
	ItemID   uint64 `json:"item_id"`
	Name     string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// Order represents a placed food order. Unlike reservations, orders use
// a random UUID because there is no idempotency key in the request; the
// same user may legitimately place identical orders back to back.
//
// Fields:
//  ID           – UUID string assigned at placement.
//  UserID       – user who placed the order.
//  RestaurantID – restaurant the order is for.
//  Items        – ordered items (JSON column).
//  TotalCents   – order total in cents.
//  Status       – PLACED on creation.
type Order struct {
	ID           string      // orders.id
	UserID       uint64      // orders.user_id
	RestaurantID uint64      // orders.restaurant_id
	Items        []OrderItem // orders.items (JSON column)
	TotalCents   uint64      // orders.total_cents
	Status       string      // orders.status
	CreatedAt    time.Time   // orders.created_at
}
