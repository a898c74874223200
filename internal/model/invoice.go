package model

import "time"

// Invoice represents a payable invoice issued by the agency, as stored in
// the `invoices` table. Visitors look invoices up by reference on the
// public site and are shown a payment link; staff manage them from the
// admin back-office.
//
// Fields:
//  ID           – primary key identifier.
//  Reference    – unique human-readable lookup code (e.g. "INV-2026-0042").
//  CustomerName – name the invoice was issued to.
//  Email        – customer contact email.
//  AmountCents  – invoice total in cents.
//  Currency     – ISO currency code.
//  Status       – invoice state (PENDING, PAID, CANCELLED).
//  PaymentURL   – external payment link handed to the customer (nullable).
//  DueDate      – payment due date ("YYYY-MM-DD").
//  PaidAt       – when payment was confirmed (null until paid).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Invoice struct {
    ID           uint64     // invoices.id
    Reference    string     // invoices.reference
    CustomerName string     // invoices.customer_name
    Email        string     // invoices.email
    AmountCents  uint32     // invoices.amount_cents
    Currency     string     // invoices.currency
    Status       string     // invoices.status
    PaymentURL   *string    // invoices.payment_url (nullable)
    DueDate      string     // invoices.due_date ("YYYY-MM-DD")
    PaidAt       *time.Time // invoices.paid_at (nullable)
    CreatedAt    time.Time  // invoices.created_at
    UpdatedAt    time.Time  // invoices.updated_at
}
