package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/feastfleet/feastfleet/internal/model"
)

// CartRepo stores at most one cart per (user, restaurant) pair. The
// item list lives in a JSON column; saving a cart replaces the whole
// list, mirroring how the client submits it.
type CartRepo struct {
	db *sql.DB
}

// NewCartRepo returns a CartRepo bound to the given database.
func NewCartRepo(db *sql.DB) *CartRepo { return &CartRepo{db: db} }

// Save upserts the user's cart for a restaurant. The total is
// recomputed from the items before writing so a tampered client total
// never lands in the database.
func (r *CartRepo) Save(ctx context.Context, cart *model.Cart) error {
	cart.TotalCents = cart.Total()
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return err
	}
	const q = `INSERT INTO carts (user_id, restaurant_id, items, total_cents)
	           VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE items = VALUES(items), total_cents = VALUES(total_cents)`
	_, err = r.db.ExecContext(ctx, q, cart.UserID, cart.RestaurantID, items, cart.TotalCents)
	return err
}

// Get returns the user's cart for a restaurant, or ErrCartNotFound.
func (r *CartRepo) Get(ctx context.Context, userID, restaurantID uint64) (*model.Cart, error) {
	const q = `SELECT user_id, restaurant_id, items, total_cents, updated_at
	           FROM carts WHERE user_id = ? AND restaurant_id = ?`
	var cart model.Cart
	var items []byte
	err := r.db.QueryRowContext(ctx, q, userID, restaurantID).
		Scan(&cart.UserID, &cart.RestaurantID, &items, &cart.TotalCents, &cart.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &cart.Items); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Delete removes the user's cart for a restaurant. Deleting a missing
// cart is a no-op.
func (r *CartRepo) Delete(ctx context.Context, userID, restaurantID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM carts WHERE user_id = ? AND restaurant_id = ?", userID, restaurantID)
	return err
}
