package repository

import (
	"context"
	"database/sql"

	"github.com/feastfleet/feastfleet/internal/model"
)

// MenuRepo reads menu items. Menus are maintained by an administrative
// import path outside this service, so only lookups are exposed here
// plus a create used by owners seeding their menu.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo returns a MenuRepo bound to the given database.
func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

// ListByRestaurant returns the full menu of a restaurant grouped by
// category ordering, then by name for deterministic output. An empty
// menu yields an empty slice, not an error.
func (r *MenuRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.MenuItem, error) {
	const q = `SELECT id, restaurant_id, name, description, price_cents, category, created_at
	           FROM menu_items
	           WHERE restaurant_id = ?
	           ORDER BY category, name`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.MenuItem, 0)
	for rows.Next() {
		var it model.MenuItem
		if err := rows.Scan(&it.ID, &it.RestaurantID, &it.Name, &it.Description,
			&it.PriceCents, &it.Category, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Create inserts a menu item and populates its generated ID.
func (r *MenuRepo) Create(ctx context.Context, it *model.MenuItem) error {
	const q = `INSERT INTO menu_items (restaurant_id, name, description, price_cents, category)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, it.RestaurantID, it.Name, it.Description, it.PriceCents, it.Category)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}
