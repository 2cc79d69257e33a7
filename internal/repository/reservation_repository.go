package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/feastfleet/feastfleet/internal/model"
)

// ReservationRepo provides access to the reservations table. Rows are
// keyed by the deterministic composite ID built from (restaurant, date,
// time, user), which is how the conditional insert stays idempotent:
// the primary key itself encodes the uniqueness condition.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// mysqlDuplicateEntry is the server error number for a primary/unique
// key violation.
const mysqlDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a MySQL duplicate-key error.
func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// CreateIfAbsent inserts a reservation only if no record with the same
// ID exists. A duplicate key violation maps to ErrDuplicateReservation
// and leaves the existing row untouched; this is the atomic step of the
// admission write path. On success CreatedAt is read back.
func (r *ReservationRepo) CreateIfAbsent(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (id, user_id, restaurant_id, res_date, res_time, party_size, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		res.ID, res.UserID, res.RestaurantID, res.Date, res.Time, res.PartySize, res.Status)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrDuplicateReservation
		}
		return err
	}
	const sel = "SELECT created_at FROM reservations WHERE id = ?"
	return r.db.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt)
}

// ListByRestaurantAndDate returns every reservation for one
// restaurant-day. This is the set the overlap/capacity evaluator runs
// against, both on the read path and again at admission time.
func (r *ReservationRepo) ListByRestaurantAndDate(ctx context.Context, restaurantID uint64, date string) ([]model.Reservation, error) {
	const q = `SELECT id, user_id, restaurant_id, res_date, res_time, party_size, status, created_at
	           FROM reservations
	           WHERE restaurant_id = ? AND res_date = ?
	           ORDER BY res_time`
	rows, err := r.db.QueryContext(ctx, q, restaurantID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.RestaurantID, &res.Date, &res.Time,
			&res.PartySize, &res.Status, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// ReservationDetail joins a reservation with its restaurant's name and
// time zone for display and for the past/upcoming split.
type ReservationDetail struct {
	model.Reservation
	RestaurantName string
	Timezone       string
}

// StartsAt resolves the reservation instant in the restaurant's zone,
// falling back to UTC for unknown zone names.
func (d *ReservationDetail) StartsAt() (time.Time, error) {
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil || d.Timezone == "" {
		loc = time.UTC
	}
	return d.Reservation.StartsAt(loc)
}

// ListByUser returns all of a user's reservations, soonest date first,
// with restaurant context attached.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const q = `SELECT r.id, r.user_id, r.restaurant_id, r.res_date, r.res_time, r.party_size, r.status, r.created_at,
	                  rt.name, rt.timezone
	           FROM reservations r
	           JOIN restaurants rt ON rt.id = r.restaurant_id
	           WHERE r.user_id = ?
	           ORDER BY r.res_date, r.res_time`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.RestaurantID, &d.Date, &d.Time,
			&d.PartySize, &d.Status, &d.CreatedAt, &d.RestaurantName, &d.Timezone); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByIDForUser returns one reservation with restaurant context,
// enforcing ownership. It returns ErrReservationNotFound when no row
// matches the ID and ErrForbidden when the row belongs to another user.
func (r *ReservationRepo) GetByIDForUser(ctx context.Context, id string, userID uint64) (*ReservationDetail, error) {
	const q = `SELECT r.id, r.user_id, r.restaurant_id, r.res_date, r.res_time, r.party_size, r.status, r.created_at,
	                  rt.name, rt.timezone
	           FROM reservations r
	           JOIN restaurants rt ON rt.id = r.restaurant_id
	           WHERE r.id = ?`
	var d ReservationDetail
	err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.UserID, &d.RestaurantID, &d.Date, &d.Time,
		&d.PartySize, &d.Status, &d.CreatedAt, &d.RestaurantName, &d.Timezone)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, ErrForbidden
	}
	return &d, nil
}

// DeleteByIDForUser removes a reservation after verifying ownership.
// Cancellation is a plain delete; there is no CANCELLED status in this
// schema. Returns ErrReservationNotFound or ErrForbidden accordingly.
func (r *ReservationRepo) DeleteByIDForUser(ctx context.Context, id string, userID uint64) error {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx, "SELECT user_id FROM reservations WHERE id = ?", id).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return ErrReservationNotFound
	}
	if err != nil {
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, "DELETE FROM reservations WHERE id = ?", id)
	return err
}

// Exists reports whether a reservation with the given ID is already
// persisted.
func (r *ReservationRepo) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM reservations WHERE id = ? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
