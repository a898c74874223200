package handler // handler package contains staff-facing activity handlers

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/horizonvoyages/travel-backend/internal/model"
    "github.com/horizonvoyages/travel-backend/internal/repository"
)

// CreateActivity handles POST /v1/admin/destinations/:id/activities and
// adds a new activity under a destination.
func (h *AdminHandler) CreateActivity(c echo.Context) error {
    destID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid destination id"})
    }
    var body struct {
        Name        string  `json:"name"`
        Description string  `json:"description"`
        PriceCents  *uint32 `json:"price_cents"`
        Currency    *string `json:"currency"`
        ImageURL    *string `json:"image_url"`
        IsActive    *bool   `json:"is_active"`   // defaults to true
        IsBookable  *bool   `json:"is_bookable"` // defaults to true
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    name := strings.TrimSpace(body.Name)
    if name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    if body.PriceCents != nil && (body.Currency == nil || strings.TrimSpace(*body.Currency) == "") {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "currency required with price_cents"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    // Verify the parent destination exists before inserting.
    if _, err := h.DestinationRepo.GetByID(ctx, destID); err != nil {
        if err == repository.ErrDestinationNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify destination"})
    }

    a := &model.Activity{
        DestinationID: destID,
        Name:          name,
        Description:   strings.TrimSpace(body.Description),
        PriceCents:    body.PriceCents,
        Currency:      body.Currency,
        ImageURL:      body.ImageURL,
        IsActive:      true,
        IsBookable:    true,
    }
    if body.IsActive != nil {
        a.IsActive = *body.IsActive
    }
    if body.IsBookable != nil {
        a.IsBookable = *body.IsBookable
    }

    if err := h.ActivityRepo.Create(ctx, a); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create activity"})
    }
    return c.JSON(http.StatusCreated, a)
}

// ListActivitiesForDestination handles GET /v1/admin/destinations/:id/activities
// and returns every activity of a destination, including hidden ones.
func (h *AdminHandler) ListActivitiesForDestination(c echo.Context) error {
    destID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid destination id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.DestinationRepo.GetByID(ctx, destID); err != nil {
        if err == repository.ErrDestinationNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify destination"})
    }
    items, err := h.ActivityRepo.ListByDestination(ctx, destID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load activities"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateActivity handles PATCH /v1/admin/activities/:id.
func (h *AdminHandler) UpdateActivity(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body struct {
        Name        *string `json:"name"`
        Description *string `json:"description"`
        PriceCents  *uint32 `json:"price_cents"`
        Currency    *string `json:"currency"`
        ReviewCount *uint32 `json:"review_count"`
        ImageURL    *string `json:"image_url"`
        IsActive    *bool   `json:"is_active"`
        IsBookable  *bool   `json:"is_bookable"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    cur, err := h.ActivityRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrActivityNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load activity"})
    }

    if body.Name != nil {
        cur.Name = strings.TrimSpace(*body.Name)
    }
    if body.Description != nil {
        cur.Description = strings.TrimSpace(*body.Description)
    }
    if body.PriceCents != nil {
        cur.PriceCents = body.PriceCents
    }
    if body.Currency != nil {
        cur.Currency = body.Currency
    }
    if body.ReviewCount != nil {
        cur.ReviewCount = *body.ReviewCount
    }
    if body.ImageURL != nil {
        cur.ImageURL = body.ImageURL
    }
    if body.IsActive != nil {
        cur.IsActive = *body.IsActive
    }
    if body.IsBookable != nil {
        cur.IsBookable = *body.IsBookable
    }
    if cur.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must not be empty"})
    }
    if cur.PriceCents != nil && (cur.Currency == nil || *cur.Currency == "") {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "currency required with price_cents"})
    }

    if err := h.ActivityRepo.Update(ctx, cur); err != nil {
        switch err {
        case repository.ErrActivityNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
        case repository.ErrNoChange:
            return c.JSON(http.StatusConflict, echo.Map{"error": "activity already has these values"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update activity"})
        }
    }
    fresh, err := h.ActivityRepo.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusOK, cur)
    }
    return c.JSON(http.StatusOK, fresh)
}

// DeleteActivity handles DELETE /v1/admin/activities/:id.  Association rows
// on captured leads are removed along with the activity.
func (h *AdminHandler) DeleteActivity(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.ActivityRepo.Delete(ctx, id); err != nil {
        if err == repository.ErrActivityNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete activity"})
    }
    return c.NoContent(http.StatusNoContent)
}
