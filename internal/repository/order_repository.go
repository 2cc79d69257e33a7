package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/feastfleet/feastfleet/internal/model"
)

// OrderRepo persists placed food orders. Order IDs are UUIDs assigned
// by the handler at placement time.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns an OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create inserts a new order and reads back its creation timestamp.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	const q = `INSERT INTO orders (id, user_id, restaurant_id, items, total_cents, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q,
		o.ID, o.UserID, o.RestaurantID, items, o.TotalCents, o.Status); err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, "SELECT created_at FROM orders WHERE id = ?", o.ID).Scan(&o.CreatedAt)
}

func scanOrder(row interface{ Scan(...any) error }) (*model.Order, error) {
	var o model.Order
	var items []byte
	if err := row.Scan(&o.ID, &o.UserID, &o.RestaurantID, &items, &o.TotalCents, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByIDForUser returns one order, enforcing ownership. It returns
// ErrOrderNotFound for both a missing row and another user's order so
// responses do not reveal which order IDs exist.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, id string, userID uint64) (*model.Order, error) {
	const q = `SELECT id, user_id, restaurant_id, items, total_cents, status, created_at
	           FROM orders WHERE id = ? AND user_id = ?`
	o, err := scanOrder(r.db.QueryRowContext(ctx, q, id, userID))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	return o, err
}

// ListByUser returns a user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
	const q = `SELECT id, user_id, restaurant_id, items, total_cents, status, created_at
	           FROM orders WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}
