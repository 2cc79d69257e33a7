// This file defines the restaurant repository: lookups and CRUD for
// restaurant records including their weekly schedule and capacity. The
// schedule is stored as a JSON column and decoded into
// model.WeeklySchedule on read, so the booking engine always sees a
// typed schedule rather than raw JSON.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/feastfleet/feastfleet/internal/model"
)

// RestaurantRepo encapsulates all database queries related to
// restaurants. It depends on a sql.DB connection configured elsewhere.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo constructs a RestaurantRepo with the provided DB
// handle. This allows dependency injection of the database in tests and
// at startup.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo {
	return &RestaurantRepo{db: db}
}

// DB exposes the underlying handle for callers that need to open
// transactions spanning multiple repositories.
func (r *RestaurantRepo) DB() *sql.DB { return r.db }

const restaurantCols = "id, owner_id, name, cuisine, address, timezone, capacity, hours, created_at, updated_at"

func scanRestaurant(row interface{ Scan(...any) error }) (*model.Restaurant, error) {
	var rest model.Restaurant
	var hoursJSON []byte
	err := row.Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Cuisine, &rest.Address,
		&rest.Timezone, &rest.Capacity, &hoursJSON, &rest.CreatedAt, &rest.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(hoursJSON) > 0 {
		if err := json.Unmarshal(hoursJSON, &rest.Hours); err != nil {
			return nil, err
		}
	}
	return &rest, nil
}

// GetByID fetches a restaurant and its decoded weekly schedule.
// Returns ErrRestaurantNotFound when no row matches.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (*model.Restaurant, error) {
	const q = "SELECT " + restaurantCols + " FROM restaurants WHERE id = ?"
	rest, err := scanRestaurant(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrRestaurantNotFound
	}
	return rest, err
}

// Create inserts a new restaurant. On success the ID field is populated
// with the auto-generated value and timestamps are read back so callers
// receive a fully populated record. The schedule must already have been
// validated with model.WeeklySchedule.Validate.
func (r *RestaurantRepo) Create(ctx context.Context, rest *model.Restaurant) error {
	hoursJSON, err := json.Marshal(rest.Hours)
	if err != nil {
		return err
	}
	const qInsert = `INSERT INTO restaurants (owner_id, name, cuisine, address, timezone, capacity, hours)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		rest.OwnerID, rest.Name, rest.Cuisine, rest.Address, rest.Timezone, rest.Capacity, hoursJSON)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rest.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM restaurants WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, rest.ID).Scan(&rest.CreatedAt, &rest.UpdatedAt)
}

// Update replaces a restaurant's mutable fields, including schedule and
// capacity, after verifying ownership. It returns ErrRestaurantNotFound
// when the row does not exist and ErrForbidden when the caller does not
// own it.
func (r *RestaurantRepo) Update(ctx context.Context, rest *model.Restaurant, ownerID uint64) error {
	var actualOwner uint64
	err := r.db.QueryRowContext(ctx, "SELECT owner_id FROM restaurants WHERE id = ?", rest.ID).Scan(&actualOwner)
	if err == sql.ErrNoRows {
		return ErrRestaurantNotFound
	}
	if err != nil {
		return err
	}
	if actualOwner != ownerID {
		return ErrForbidden
	}
	hoursJSON, err := json.Marshal(rest.Hours)
	if err != nil {
		return err
	}
	const q = `UPDATE restaurants
	           SET name = ?, cuisine = ?, address = ?, timezone = ?, capacity = ?, hours = ?
	           WHERE id = ?`
	_, err = r.db.ExecContext(ctx, q,
		rest.Name, rest.Cuisine, rest.Address, rest.Timezone, rest.Capacity, hoursJSON, rest.ID)
	return err
}

// SearchQuery defines filters and pagination for restaurant search.
type SearchQuery struct {
	Name     string
	Cuisine  string
	Page     int
	PageSize int
}

// RestaurantRow is the sanitized search/browse projection of a
// restaurant, safe to expose without authentication.
type RestaurantRow struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Cuisine  string `json:"cuisine"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

// Search returns restaurants matching the query filters, newest first,
// along with the total match count for pagination. Name and cuisine
// match case-insensitively on substrings.
func (r *RestaurantRepo) Search(ctx context.Context, q SearchQuery) ([]RestaurantRow, int64, error) {
	where := []string{}
	args := []any{}

	if q.Name != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Name)+"%")
	}
	if q.Cuisine != "" {
		where = append(where, "LOWER(cuisine) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Cuisine)+"%")
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := "SELECT COUNT(*) FROM restaurants WHERE " + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 10
	}
	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT id, name, cuisine, address, capacity
	            FROM restaurants
	            WHERE ` + cond + `
	            ORDER BY created_at DESC
	            LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, dataSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]RestaurantRow, 0)
	for rows.Next() {
		var row RestaurantRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Cuisine, &row.Address, &row.Capacity); err != nil {
			return nil, 0, err
		}
		out = append(out, row)
	}
	return out, total, rows.Err()
}
