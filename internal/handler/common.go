package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in getUserID
    "strconv" // strconv converts strings to numeric types

    "github.com/horizonvoyages/travel-backend/internal/repository" // repository holds data access layer
    "github.com/labstack/echo/v4"                                  // echo defines request context types
)

// AdminHandler bundles repositories for staff to manage the catalogue,
// invoices and captured trip requests.
type AdminHandler struct {
    DestinationRepo *repository.DestinationRepo // destination persistence
    ActivityRepo    *repository.ActivityRepo    // activity persistence
    InvoiceRepo     *repository.InvoiceRepo     // invoice persistence
    TripRequestRepo *repository.TripRequestRepo // captured lead persistence
}

// NewAdminHandler constructs a new AdminHandler and panics if any dependency is nil
func NewAdminHandler(destRepo *repository.DestinationRepo, actRepo *repository.ActivityRepo, invRepo *repository.InvoiceRepo, tripRepo *repository.TripRequestRepo) *AdminHandler {
    if destRepo == nil || actRepo == nil || invRepo == nil || tripRepo == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{
        DestinationRepo: destRepo,
        ActivityRepo:    actRepo,
        InvoiceRepo:     invRepo,
        TripRequestRepo: tripRepo,
    }
}

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric :id style route parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
    n, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || n == 0 {
        return 0, false
    }
    return n, true
}
