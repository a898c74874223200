// Package repository contains data access logic for Invoice operations.
// Invoices are issued by agency staff and looked up on the public site by
// their reference code, which reveals the status and a payment link.  The
// public lookup never exposes internal IDs or staff-only fields.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel definitions
	"strings"      // strings for duplicate-key detection

	"github.com/horizonvoyages/travel-backend/internal/model" // row structs shared with handlers
)

// ErrInvoiceNotFound indicates that an invoice was not located in the DB.
var ErrInvoiceNotFound = errors.New("invoice not found")

// ErrReferenceExists indicates an invoice with the same reference already exists.
var ErrReferenceExists = errors.New("invoice reference already exists")

// InvoiceRepo manages persistence for invoices.
type InvoiceRepo struct {
	db *sql.DB
}

// NewInvoiceRepo constructs an InvoiceRepo with the given DB handle.
func NewInvoiceRepo(db *sql.DB) *InvoiceRepo {
	return &InvoiceRepo{db: db}
}

const invoiceCols = `id, reference, customer_name, email, amount_cents, currency, status, payment_url, due_date, paid_at, created_at, updated_at`

func scanInvoice(row interface{ Scan(...any) error }) (model.Invoice, error) {
	var v model.Invoice
	err := row.Scan(&v.ID, &v.Reference, &v.CustomerName, &v.Email, &v.AmountCents, &v.Currency,
		&v.Status, &v.PaymentURL, &v.DueDate, &v.PaidAt, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

// Create inserts a new invoice.  The reference column carries a unique
// index; MySQL duplicate-key errors (1062) are mapped to ErrReferenceExists
// so handlers can answer 409 instead of 500.
func (r *InvoiceRepo) Create(ctx context.Context, v *model.Invoice) error {
	const q = `INSERT INTO invoices (reference, customer_name, email, amount_cents, currency, payment_url, due_date)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.Reference, v.CustomerName, v.Email, v.AmountCents, v.Currency, v.PaymentURL, v.DueDate)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrReferenceExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	const sel = `SELECT ` + invoiceCols + ` FROM invoices WHERE id = ?`
	got, err := scanInvoice(r.db.QueryRowContext(ctx, sel, v.ID))
	if err != nil {
		return err
	}
	*v = got
	return nil
}

// GetByReference retrieves an invoice by its public reference code.  This
// is the lookup used by the public payment page.
func (r *InvoiceRepo) GetByReference(ctx context.Context, reference string) (*model.Invoice, error) {
	const q = `SELECT ` + invoiceCols + ` FROM invoices WHERE reference = ?`
	v, err := scanInvoice(r.db.QueryRowContext(ctx, q, strings.TrimSpace(reference)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &v, nil
}

// GetByID retrieves an invoice by its primary key.  Used by the admin
// back-office.
func (r *InvoiceRepo) GetByID(ctx context.Context, id uint64) (*model.Invoice, error) {
	const q = `SELECT ` + invoiceCols + ` FROM invoices WHERE id = ?`
	v, err := scanInvoice(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &v, nil
}

// List returns invoices newest first, optionally filtered by status.
func (r *InvoiceRepo) List(ctx context.Context, status string) ([]model.Invoice, error) {
	q := `SELECT ` + invoiceCols + ` FROM invoices`
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
	var result []model.Invoice
	for rows.Next() {
		var v model.Invoice
		if err := rows.Scan(&v.ID, &v.Reference, &v.CustomerName, &v.Email, &v.AmountCents, &v.Currency,
			&v.Status, &v.PaymentURL, &v.DueDate, &v.PaidAt, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites the mutable fields of an invoice.  The reference is
// immutable once issued; only customer details, amount, payment link, due
// date and status may change.  Returns ErrInvoiceNotFound or ErrNoChange
// following the same convention as the other repositories.
func (r *InvoiceRepo) Update(ctx context.Context, v *model.Invoice) error {
	const q = `UPDATE invoices
               SET customer_name = ?, email = ?, amount_cents = ?, currency = ?, status = ?, payment_url = ?, due_date = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?
                 AND (customer_name <> ? OR email <> ? OR amount_cents <> ? OR currency <> ? OR status <> ? OR NOT (payment_url <=> ?) OR due_date <> ?)`
	res, err := r.db.ExecContext(ctx, q,
		v.CustomerName, v.Email, v.AmountCents, v.Currency, v.Status, v.PaymentURL, v.DueDate, // SET
		v.ID, // WHERE
		v.CustomerName, v.Email, v.AmountCents, v.Currency, v.Status, v.PaymentURL, v.DueDate, // diff check
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM invoices WHERE id = ? LIMIT 1`, v.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvoiceNotFound
		}
		return err
	}
	return ErrNoChange
}

// MarkPaid transitions an invoice to PAID and stamps paid_at.  Marking an
// already-paid invoice again returns ErrNoChange, keeping the operation
// safe to retry from a payment webhook.
func (r *InvoiceRepo) MarkPaid(ctx context.Context, id uint64) error {
	const q = `UPDATE invoices SET status = 'PAID', paid_at = NOW(), updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND status <> 'PAID'`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM invoices WHERE id = ? LIMIT 1`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvoiceNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes an invoice.  Paid invoices are retained for bookkeeping
// and refuse deletion with ErrConflict.
func (r *InvoiceRepo) Delete(ctx context.Context, id uint64) error {
	v, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v.Status == "PAID" {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}
