package model

import "time"

// CartItem is a single line of a cart: a menu item with a quantity and
// the unit price captured at the time it was added.
type CartItem struct {
	ItemID     uint64 `json:"item_id"`
	Name       string `json:"item_name"`
	Quantity   int    `json:"item_quantity"`
	PriceCents uint32 `json:"item_price_cents"`
}

// Cart holds a user's pending order for one restaurant. A user has at
// most one cart per restaurant; adding items replaces the stored item
// list wholesale. Items are persisted as a JSON column.
//
// Fields:
//  UserID       – cart owner.
//  RestaurantID – restaurant the items belong to.
//  Items        – line items.
//  TotalCents   – sum of quantity x unit price across items.
type Cart struct {
	UserID       uint64     // carts.user_id
	RestaurantID uint64     // carts.restaurant_id
	Items        []CartItem // carts.items (JSON column)
	TotalCents   uint64     // carts.total_cents
	UpdatedAt    time.Time  // carts.updated_at
}

// Total recomputes the cart total from its line items.
func (c *Cart) Total() uint64 {
	var sum uint64
	for _, it := range c.Items {
		sum += uint64(it.Quantity) * uint64(it.PriceCents)
	}
	return sum
}
