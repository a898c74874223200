package handler

// invoice.go exposes the public invoice lookup.  Customers receive an
// invoice reference from the agency and exchange it here for the payment
// link; no authentication is involved, the reference itself is the secret.

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/horizonvoyages/travel-backend/internal/repository"
)

// InvoiceHandler serves the public invoice lookup endpoint.
type InvoiceHandler struct {
    InvoiceRepo *repository.InvoiceRepo
}

// NewInvoiceHandler constructs an InvoiceHandler and panics on a nil repo.
func NewInvoiceHandler(repo *repository.InvoiceRepo) *InvoiceHandler {
    if repo == nil {
        panic("nil repository passed to NewInvoiceHandler")
    }
    return &InvoiceHandler{InvoiceRepo: repo}
}

// publicInvoice is the sanitized lookup response; internal ids and the
// customer email stay hidden.
type publicInvoice struct {
    Reference    string  `json:"reference"`
    CustomerName string  `json:"customer_name"`
    AmountCents  uint32  `json:"amount_cents"`
    Currency     string  `json:"currency"`
    Status       string  `json:"status"`
    PaymentURL   *string `json:"payment_url,omitempty"`
    DueDate      string  `json:"due_date"`
}

// Lookup handles GET /v1/invoices/lookup?ref=...  Cancelled invoices are
// reported as not found so stale references leak nothing.
func (h *InvoiceHandler) Lookup(c echo.Context) error {
    ref := strings.TrimSpace(c.QueryParam("ref"))
    if ref == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "ref query parameter required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    inv, err := h.InvoiceRepo.GetByReference(ctx, ref)
    if err != nil {
        if err == repository.ErrInvoiceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if inv.Status == "CANCELLED" {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
    }

    out := publicInvoice{
        Reference:    inv.Reference,
        CustomerName: inv.CustomerName,
        AmountCents:  inv.AmountCents,
        Currency:     inv.Currency,
        Status:       inv.Status,
        DueDate:      inv.DueDate,
    }
    // Only hand out the payment link while the invoice is still payable.
    if inv.Status == "PENDING" {
        out.PaymentURL = inv.PaymentURL
    }
    return c.JSON(http.StatusOK, out)
}
