// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public browsing API. These routes allow
// unauthenticated visitors to browse destinations, activities and origin
// cities without requiring authentication. Sensitive fields (inactive rows,
// timestamps, etc.) are filtered from responses.

package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/horizonvoyages/travel-backend/internal/repository"
    "github.com/horizonvoyages/travel-backend/internal/wizard"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
// It produces sanitized responses suitable for public consumption.
type PublicHandler struct {
    DestinationRepo *repository.DestinationRepo // provides access to destination data
    ActivityRepo    *repository.ActivityRepo    // provides access to activity data
}

// PublicDestination represents a destination exposed via the public API. It
// contains only safe fields.
type PublicDestination struct {
    ID       uint64  `json:"id"`
    Name     string  `json:"name"`
    Slug     string  `json:"slug"`
    Country  string  `json:"country"`
    Summary  string  `json:"summary"`
    ImageURL *string `json:"image_url,omitempty"`
}

// PublicActivity represents an activity card in public list responses.
type PublicActivity struct {
    ID          uint64  `json:"id"`
    Name        string  `json:"name"`
    Description string  `json:"description"`
    PriceCents  *uint32 `json:"price_cents,omitempty"`
    Currency    *string `json:"currency,omitempty"`
    ReviewCount uint32  `json:"review_count"`
    ImageURL    *string `json:"image_url,omitempty"`
    IsBookable  bool    `json:"is_bookable"`
}

// ListDestinations returns all active destinations. Response JSON contains
// an "items" array of PublicDestination.
func (h *PublicHandler) ListDestinations(c echo.Context) error {
    ctx := c.Request().Context()
    items, err := h.DestinationRepo.ListActive(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicDestination, 0, len(items))
    for _, d := range items {
        out = append(out, PublicDestination{
            ID: d.ID, Name: d.Name, Slug: d.Slug, Country: d.Country,
            Summary: d.Summary, ImageURL: d.ImageURL,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetDestination returns a single active destination by id. Inactive
// destinations are reported as not found to the public.
func (h *PublicHandler) GetDestination(c echo.Context) error {
    ctx := c.Request().Context()
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    d, err := h.DestinationRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrDestinationNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !d.IsActive {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
    }
    return c.JSON(http.StatusOK, PublicDestination{
        ID: d.ID, Name: d.Name, Slug: d.Slug, Country: d.Country,
        Summary: d.Summary, ImageURL: d.ImageURL,
    })
}

// ListDestinationActivities lists bookable activities of a destination for
// unauthenticated visitors. It validates the destination exists and is
// active, then returns only non-sensitive fields ordered by review count.
func (h *PublicHandler) ListDestinationActivities(c echo.Context) error {
    ctx := c.Request().Context()
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    d, err := h.DestinationRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrDestinationNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !d.IsActive {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
    }
    items, err := h.ActivityRepo.ListBookableByDestination(ctx, d.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicActivity, 0, len(items))
    for _, a := range items {
        out = append(out, PublicActivity{
            ID: a.ID, Name: a.Name, Description: a.Description,
            PriceCents: a.PriceCents, Currency: a.Currency,
            ReviewCount: a.ReviewCount, ImageURL: a.ImageURL,
            IsBookable: a.IsBookable,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListOriginCities returns the fixed list of departure cities offered by
// the trip wizard, with coordinates so clients can render a map.
func (h *PublicHandler) ListOriginCities(c echo.Context) error {
    type originCity struct {
        Name string  `json:"name"`
        Lat  float64 `json:"lat"`
        Lng  float64 `json:"lng"`
    }
    out := make([]originCity, 0, len(wizard.OriginCities))
    for _, city := range wizard.OriginCities {
        out = append(out, originCity{Name: city.Name, Lat: city.Lat, Lng: city.Lng})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}
