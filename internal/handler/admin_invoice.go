package handler // handler package contains staff-facing invoice handlers

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/horizonvoyages/travel-backend/internal/model"
    "github.com/horizonvoyages/travel-backend/internal/repository"
)

// invoiceStatuses lists the legal invoice states.
var invoiceStatuses = map[string]bool{"PENDING": true, "PAID": true, "CANCELLED": true}

// CreateInvoice handles POST /v1/admin/invoices.
func (h *AdminHandler) CreateInvoice(c echo.Context) error {
    var body struct {
        Reference    string  `json:"reference"`
        CustomerName string  `json:"customer_name"`
        Email        string  `json:"email"`
        AmountCents  uint32  `json:"amount_cents"`
        Currency     string  `json:"currency"`
        PaymentURL   *string `json:"payment_url"`
        DueDate      string  `json:"due_date"` // "YYYY-MM-DD"
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ref := strings.TrimSpace(body.Reference)
    name := strings.TrimSpace(body.CustomerName)
    if ref == "" || name == "" || body.AmountCents == 0 || strings.TrimSpace(body.Currency) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "reference, customer_name, amount_cents and currency are required"})
    }
    if _, err := time.Parse("2006-01-02", body.DueDate); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "due_date must be YYYY-MM-DD"})
    }

    inv := &model.Invoice{
        Reference:    ref,
        CustomerName: name,
        Email:        strings.ToLower(strings.TrimSpace(body.Email)),
        AmountCents:  body.AmountCents,
        Currency:     strings.ToUpper(strings.TrimSpace(body.Currency)),
        Status:       "PENDING",
        PaymentURL:   body.PaymentURL,
        DueDate:      body.DueDate,
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.InvoiceRepo.Create(ctx, inv); err != nil {
        if err == repository.ErrReferenceExists {
            return c.JSON(http.StatusConflict, echo.Map{"error": "reference already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create invoice"})
    }
    return c.JSON(http.StatusCreated, inv)
}

// ListInvoices handles GET /v1/admin/invoices with an optional ?status=
// filter.
func (h *AdminHandler) ListInvoices(c echo.Context) error {
    status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
    if status != "" && !invoiceStatuses[status] {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.InvoiceRepo.List(ctx, status)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load invoices"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetInvoice handles GET /v1/admin/invoices/:id.
func (h *AdminHandler) GetInvoice(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    inv, err := h.InvoiceRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrInvoiceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load invoice"})
    }
    return c.JSON(http.StatusOK, inv)
}

// UpdateInvoice handles PATCH /v1/admin/invoices/:id.  The reference is
// immutable once issued; everything else may change.
func (h *AdminHandler) UpdateInvoice(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body struct {
        CustomerName *string `json:"customer_name"`
        Email        *string `json:"email"`
        AmountCents  *uint32 `json:"amount_cents"`
        Currency     *string `json:"currency"`
        Status       *string `json:"status"`
        PaymentURL   *string `json:"payment_url"`
        DueDate      *string `json:"due_date"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    cur, err := h.InvoiceRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrInvoiceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load invoice"})
    }

    if body.CustomerName != nil {
        cur.CustomerName = strings.TrimSpace(*body.CustomerName)
    }
    if body.Email != nil {
        cur.Email = strings.ToLower(strings.TrimSpace(*body.Email))
    }
    if body.AmountCents != nil {
        cur.AmountCents = *body.AmountCents
    }
    if body.Currency != nil {
        cur.Currency = strings.ToUpper(strings.TrimSpace(*body.Currency))
    }
    if body.Status != nil {
        s := strings.ToUpper(strings.TrimSpace(*body.Status))
        if !invoiceStatuses[s] {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
        }
        cur.Status = s
    }
    if body.PaymentURL != nil {
        cur.PaymentURL = body.PaymentURL
    }
    if body.DueDate != nil {
        if _, err := time.Parse("2006-01-02", *body.DueDate); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "due_date must be YYYY-MM-DD"})
        }
        cur.DueDate = *body.DueDate
    }
    if cur.CustomerName == "" || cur.AmountCents == 0 || cur.Currency == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_name, amount_cents and currency must not be empty"})
    }

    if err := h.InvoiceRepo.Update(ctx, cur); err != nil {
        switch err {
        case repository.ErrInvoiceNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
        case repository.ErrNoChange:
            return c.JSON(http.StatusConflict, echo.Map{"error": "invoice already has these values"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update invoice"})
        }
    }
    fresh, err := h.InvoiceRepo.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusOK, cur)
    }
    return c.JSON(http.StatusOK, fresh)
}

// MarkInvoicePaid handles POST /v1/admin/invoices/:id/paid.  The operation
// is idempotent-friendly: confirming an already-paid invoice returns the
// current record instead of failing, so payment webhooks can retry.
func (h *AdminHandler) MarkInvoicePaid(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    err := h.InvoiceRepo.MarkPaid(ctx, id)
    if err != nil && err != repository.ErrNoChange {
        if err == repository.ErrInvoiceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not mark invoice paid"})
    }
    inv, err := h.InvoiceRepo.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load invoice"})
    }
    return c.JSON(http.StatusOK, inv)
}

// DeleteInvoice handles DELETE /v1/admin/invoices/:id.  Paid invoices are
// retained for bookkeeping and refuse deletion.
func (h *AdminHandler) DeleteInvoice(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.InvoiceRepo.Delete(ctx, id); err != nil {
        switch err {
        case repository.ErrInvoiceNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "paid invoices cannot be deleted"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete invoice"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}
