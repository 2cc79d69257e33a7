package model

import "time"

// MenuItem represents one dish offered by a restaurant. Menu items are
// written by the administrative import path and read-only for customers.
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – owning restaurant.
//  Name         – dish name.
//  Description  – optional description shown on the menu page.
//  PriceCents   – price in cents.
//  Category     – menu section (e.g. "appetizers", "mains").
type MenuItem struct {
	ID           uint64    // menu_items.id
	RestaurantID uint64    // menu_items.restaurant_id
	Name         string    // menu_items.name
	Description  string    // menu_items.description
	PriceCents   uint32    // menu_items.price_cents
	Category     string    // menu_items.category
	CreatedAt    time.Time // menu_items.created_at
}
