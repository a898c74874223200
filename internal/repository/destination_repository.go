// Package repository contains data access logic for Destination operations.
// A Destination is the top-level browsing unit of the site; activities hang
// off destinations and the trip wizard's destination step offers the active
// ones. Inactive destinations are hidden from public endpoints but remain
// visible in the admin back-office.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel definitions

	"github.com/horizonvoyages/travel-backend/internal/model" // row structs shared with handlers
)

// ErrDestinationNotFound indicates that a destination was not located in the DB.
var ErrDestinationNotFound = errors.New("destination not found")

// DestinationRepo manages persistence for destinations.
type DestinationRepo struct {
	db *sql.DB
}

// NewDestinationRepo constructs a DestinationRepo with the given DB handle.
func NewDestinationRepo(db *sql.DB) *DestinationRepo {
	return &DestinationRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *DestinationRepo) DB() *sql.DB {
	return r.db
}

const destinationCols = `id, name, slug, country, summary, image_url, is_active, created_at, updated_at`

// scanDestination reads one destination row from the given scanner.
func scanDestination(row interface{ Scan(...any) error }) (model.Destination, error) {
	var d model.Destination
	err := row.Scan(&d.ID, &d.Name, &d.Slug, &d.Country, &d.Summary, &d.ImageURL, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// Create inserts a new destination and assigns the generated ID back to the
// struct.  Status defaults to active unless IsActive is explicitly false.
func (r *DestinationRepo) Create(ctx context.Context, d *model.Destination) error {
	const q = `INSERT INTO destinations (name, slug, country, summary, image_url, is_active) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, d.Name, d.Slug, d.Country, d.Summary, d.ImageURL, d.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	// Fetch the freshly inserted row to populate DB-default timestamps.
	const sel = `SELECT ` + destinationCols + ` FROM destinations WHERE id = ?`
	got, err := scanDestination(r.db.QueryRowContext(ctx, sel, d.ID))
	if err != nil {
		return err
	}
	*d = got
	return nil
}

// GetByID retrieves a destination by its ID.  It returns
// ErrDestinationNotFound if there is no matching row.
func (r *DestinationRepo) GetByID(ctx context.Context, id uint64) (*model.Destination, error) {
	const q = `SELECT ` + destinationCols + ` FROM destinations WHERE id = ?`
	d, err := scanDestination(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return &d, nil
}

// GetBySlug retrieves a destination by its URL slug.  Used by public pages
// which address destinations by slug rather than numeric ID.
func (r *DestinationRepo) GetBySlug(ctx context.Context, slug string) (*model.Destination, error) {
	const q = `SELECT ` + destinationCols + ` FROM destinations WHERE slug = ?`
	d, err := scanDestination(r.db.QueryRowContext(ctx, q, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListActive returns all destinations currently promoted on the site,
// ordered by name.  When none exist it returns an empty slice and nil error.
func (r *DestinationRepo) ListActive(ctx context.Context) ([]model.Destination, error) {
	const q = `SELECT ` + destinationCols + ` FROM destinations WHERE is_active = 1 ORDER BY name ASC`
	return r.list(ctx, q)
}

// ListAll returns every destination regardless of active flag.  Used by the
// admin back-office.
func (r *DestinationRepo) ListAll(ctx context.Context) ([]model.Destination, error) {
	const q = `SELECT ` + destinationCols + ` FROM destinations ORDER BY name ASC`
	return r.list(ctx, q)
}

func (r *DestinationRepo) list(ctx context.Context, q string, args ...any) ([]model.Destination, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Destination
	for rows.Next() {
		var d model.Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Slug, &d.Country, &d.Summary, &d.ImageURL, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites the mutable fields of a destination.  It only performs
// the UPDATE when at least one field differs; otherwise it returns
// ErrNoChange.  When the row doesn't exist it returns ErrDestinationNotFound.
func (r *DestinationRepo) Update(ctx context.Context, d *model.Destination) error {
	const q = `UPDATE destinations
               SET name = ?, slug = ?, country = ?, summary = ?, image_url = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?
                 AND (name <> ? OR slug <> ? OR country <> ? OR summary <> ? OR NOT (image_url <=> ?) OR is_active <> ?)`
	res, err := r.db.ExecContext(ctx, q,
		d.Name, d.Slug, d.Country, d.Summary, d.ImageURL, d.IsActive, // SET
		d.ID, // WHERE
		d.Name, d.Slug, d.Country, d.Summary, d.ImageURL, d.IsActive, // only if at least one field differs
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Determine if it's "not found" or simply "no change".
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM destinations WHERE id = ? LIMIT 1`, d.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDestinationNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes a destination.  The deletion is refused with ErrConflict
// when activities still reference the destination, so the admin must retire
// or move them first.
func (r *DestinationRepo) Delete(ctx context.Context, id uint64) error {
	var actCount int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities WHERE destination_id = ?`, id).Scan(&actCount); err != nil {
		return err
	}
	if actCount > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM destinations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDestinationNotFound
	}
	return nil
}
