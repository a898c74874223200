// Package repository contains data access logic for TripRequest operations.
// A TripRequest is the lead captured by the trip wizard; the wizard's
// submission reconciler calls Create once and then AssociateActivity once
// per cart entry.  AssociateActivity is idempotent so that a benign repeat
// of the same (trip request, activity) pair never fails the flow.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel definitions

	"github.com/horizonvoyages/travel-backend/internal/model" // row structs shared with handlers
)

// ErrTripRequestNotFound indicates that a trip request was not located in the DB.
var ErrTripRequestNotFound = errors.New("trip request not found")

// TripRequestRepo manages persistence for trip requests and their
// activity associations.
type TripRequestRepo struct {
	db *sql.DB
}

// NewTripRequestRepo constructs a TripRequestRepo with the given DB handle.
func NewTripRequestRepo(db *sql.DB) *TripRequestRepo {
	return &TripRequestRepo{db: db}
}

const tripRequestCols = `id, origin, destination, start_date, end_date, adults, children,
        first_name, last_name, phone_country_code, phone_number, email, nationality,
        airline, hotel, flight_class, visa_status, status, created_at, updated_at`

func scanTripRequest(row interface{ Scan(...any) error }) (model.TripRequest, error) {
	var t model.TripRequest
	err := row.Scan(&t.ID, &t.Origin, &t.Destination, &t.StartDate, &t.EndDate, &t.Adults, &t.Children,
		&t.FirstName, &t.LastName, &t.PhoneCountryCode, &t.PhoneNumber, &t.Email, &t.Nationality,
		&t.Airline, &t.Hotel, &t.FlightClass, &t.VisaStatus, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// Create inserts a new trip request and returns its generated ID.  Every
// column is mandatory at this boundary; the wizard validator guarantees the
// payload is complete before Create is ever called, but the NOT NULL
// constraints back that up at the schema level.
func (r *TripRequestRepo) Create(ctx context.Context, t *model.TripRequest) (uint64, error) {
	const q = `INSERT INTO trip_requests
               (origin, destination, start_date, end_date, adults, children,
                first_name, last_name, phone_country_code, phone_number, email, nationality,
                airline, hotel, flight_class, visa_status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		t.Origin, t.Destination, t.StartDate, t.EndDate, t.Adults, t.Children,
		t.FirstName, t.LastName, t.PhoneCountryCode, t.PhoneNumber, t.Email, t.Nationality,
		t.Airline, t.Hotel, t.FlightClass, t.VisaStatus,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	t.ID = uint64(id)
	return t.ID, nil
}

// AssociateActivity records that an activity was in the visitor's cart when
// the trip request was submitted.  The INSERT IGNORE together with the
// unique (trip_request_id, activity_id) index makes the call idempotent:
// recording the same pair twice is treated as already satisfied rather than
// an error.
func (r *TripRequestRepo) AssociateActivity(ctx context.Context, tripRequestID, activityID uint64) error {
	const q = `INSERT IGNORE INTO trip_request_activities (trip_request_id, activity_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, tripRequestID, activityID)
	return err
}

// GetByID retrieves a trip request by its ID.  It returns
// ErrTripRequestNotFound if there is no matching row.
func (r *TripRequestRepo) GetByID(ctx context.Context, id uint64) (*model.TripRequest, error) {
	const q = `SELECT ` + tripRequestCols + ` FROM trip_requests WHERE id = ?`
	t, err := scanTripRequest(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTripRequestNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns trip requests ordered newest first, optionally filtered by
// lead status.  An empty status returns every lead.  Used by the admin
// back-office lead list.
func (r *TripRequestRepo) List(ctx context.Context, status string) ([]model.TripRequest, error) {
	q := `SELECT ` + tripRequestCols + ` FROM trip_requests`
	var args []any
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.TripRequest
	for rows.Next() {
		var t model.TripRequest
		if err := rows.Scan(&t.ID, &t.Origin, &t.Destination, &t.StartDate, &t.EndDate, &t.Adults, &t.Children,
			&t.FirstName, &t.LastName, &t.PhoneCountryCode, &t.PhoneNumber, &t.Email, &t.Nationality,
			&t.Airline, &t.Hotel, &t.FlightClass, &t.VisaStatus, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListActivities returns the activities associated with a trip request,
// joined with their catalog rows so the back-office sees names and prices
// rather than bare IDs.  Results follow cart insertion order (association
// row id ascending).
func (r *TripRequestRepo) ListActivities(ctx context.Context, tripRequestID uint64) ([]model.Activity, error) {
	const q = `SELECT a.id, a.destination_id, a.name, a.description, a.price_cents, a.currency,
                      a.review_count, a.image_url, a.is_active, a.is_bookable, a.created_at, a.updated_at
               FROM trip_request_activities tra
               JOIN activities a ON a.id = tra.activity_id
               WHERE tra.trip_request_id = ?
               ORDER BY tra.id ASC`
	rows, err := r.db.QueryContext(ctx, q, tripRequestID)
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

// UpdateStatus moves a lead through its workflow (NEW -> CONTACTED ->
// CLOSED).  Returns ErrTripRequestNotFound when the row does not exist and
// ErrNoChange when the status already holds the requested value.
func (r *TripRequestRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE trip_requests SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status <> ?`
	res, err := r.db.ExecContext(ctx, q, status, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM trip_requests WHERE id = ? LIMIT 1`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTripRequestNotFound
		}
		return err
	}
	return ErrNoChange
}
