// Package repository contains data access logic for Activity operations.
// Activities are the bookable experiences listed under a destination; the
// public endpoints only expose rows that are both active and bookable,
// matching what a visitor can actually add to their cart.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel definitions

	"github.com/horizonvoyages/travel-backend/internal/model" // row structs shared with handlers
)

// ErrActivityNotFound indicates that an activity was not located in the DB.
var ErrActivityNotFound = errors.New("activity not found")

// ActivityRepo manages persistence for activities.
type ActivityRepo struct {
	db *sql.DB
}

// NewActivityRepo constructs an ActivityRepo with the given DB handle.
func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

const activityCols = `id, destination_id, name, description, price_cents, currency, review_count, image_url, is_active, is_bookable, created_at, updated_at`

func scanActivity(row interface{ Scan(...any) error }) (model.Activity, error) {
	var a model.Activity
	err := row.Scan(&a.ID, &a.DestinationID, &a.Name, &a.Description, &a.PriceCents, &a.Currency,
		&a.ReviewCount, &a.ImageURL, &a.IsActive, &a.IsBookable, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Create inserts a new activity and assigns the generated ID back to the
// struct, then re-reads the row to pick up DB-default timestamps.
func (r *ActivityRepo) Create(ctx context.Context, a *model.Activity) error {
	const q = `INSERT INTO activities (destination_id, name, description, price_cents, currency, review_count, image_url, is_active, is_bookable)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.DestinationID, a.Name, a.Description, a.PriceCents, a.Currency,
		a.ReviewCount, a.ImageURL, a.IsActive, a.IsBookable)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	const sel = `SELECT ` + activityCols + ` FROM activities WHERE id = ?`
	got, err := scanActivity(r.db.QueryRowContext(ctx, sel, a.ID))
	if err != nil {
		return err
	}
	*a = got
	return nil
}

// GetByID retrieves an activity by its ID.  It returns ErrActivityNotFound
// if there is no matching row.
func (r *ActivityRepo) GetByID(ctx context.Context, id uint64) (*model.Activity, error) {
	const q = `SELECT ` + activityCols + ` FROM activities WHERE id = ?`
	a, err := scanActivity(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListBookableByDestination returns the active, bookable activities for a
// destination ordered by review count descending, so the most socially
// proven experiences lead the page.  This is the activity lookup boundary
// consumed by the browsing pages and the cart.
func (r *ActivityRepo) ListBookableByDestination(ctx context.Context, destinationID uint64) ([]model.Activity, error) {
	const q = `SELECT ` + activityCols + ` FROM activities
               WHERE destination_id = ? AND is_active = 1 AND is_bookable = 1
               ORDER BY review_count DESC, name ASC`
	return r.list(ctx, q, destinationID)
}

// ListByDestination returns every activity for a destination regardless of
// flags.  Used by the admin back-office.
func (r *ActivityRepo) ListByDestination(ctx context.Context, destinationID uint64) ([]model.Activity, error) {
	const q = `SELECT ` + activityCols + ` FROM activities WHERE destination_id = ? ORDER BY name ASC`
	return r.list(ctx, q, destinationID)
}

func (r *ActivityRepo) list(ctx context.Context, q string, args ...any) ([]model.Activity, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.DestinationID, &a.Name, &a.Description, &a.PriceCents, &a.Currency,
			&a.ReviewCount, &a.ImageURL, &a.IsActive, &a.IsBookable, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites the mutable fields of an activity.  It only performs
// the UPDATE when at least one field differs; otherwise it returns
// ErrNoChange.  When the row doesn't exist it returns ErrActivityNotFound.
func (r *ActivityRepo) Update(ctx context.Context, a *model.Activity) error {
	const q = `UPDATE activities
               SET destination_id = ?, name = ?, description = ?, price_cents = ?, currency = ?,
                   review_count = ?, image_url = ?, is_active = ?, is_bookable = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?
                 AND (destination_id <> ? OR name <> ? OR description <> ? OR NOT (price_cents <=> ?) OR NOT (currency <=> ?)
                      OR review_count <> ? OR NOT (image_url <=> ?) OR is_active <> ? OR is_bookable <> ?)`
	res, err := r.db.ExecContext(ctx, q,
		a.DestinationID, a.Name, a.Description, a.PriceCents, a.Currency, a.ReviewCount, a.ImageURL, a.IsActive, a.IsBookable, // SET
		a.ID, // WHERE
		a.DestinationID, a.Name, a.Description, a.PriceCents, a.Currency, a.ReviewCount, a.ImageURL, a.IsActive, a.IsBookable, // diff check
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM activities WHERE id = ? LIMIT 1`, a.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrActivityNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes an activity and its trip-request associations inside a
// transaction so no orphan association rows survive.  Returns
// ErrActivityNotFound when the activity does not exist.
func (r *ActivityRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Ensure rollback or commit at the end
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM activities WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrActivityNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM trip_request_activities WHERE activity_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
