package handler // handler package contains staff-facing destination handlers

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/horizonvoyages/travel-backend/internal/model"
    "github.com/horizonvoyages/travel-backend/internal/repository"
)

// CreateDestination handles POST /v1/admin/destinations and adds a new
// destination to the catalogue.
func (h *AdminHandler) CreateDestination(c echo.Context) error {
    var body struct {
        Name     string  `json:"name"`
        Slug     string  `json:"slug"`
        Country  string  `json:"country"`
        Summary  string  `json:"summary"`
        ImageURL *string `json:"image_url"`
        IsActive *bool   `json:"is_active"` // defaults to true when omitted
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    name := strings.TrimSpace(body.Name)
    slug := strings.ToLower(strings.TrimSpace(body.Slug))
    if name == "" || slug == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and slug are required"})
    }

    d := &model.Destination{
        Name:     name,
        Slug:     slug,
        Country:  strings.TrimSpace(body.Country),
        Summary:  strings.TrimSpace(body.Summary),
        ImageURL: body.ImageURL,
        IsActive: true,
    }
    if body.IsActive != nil {
        d.IsActive = *body.IsActive
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.DestinationRepo.Create(ctx, d); err != nil {
        if strings.Contains(err.Error(), "1062") { // duplicate key on the slug unique index
            return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create destination"})
    }
    return c.JSON(http.StatusCreated, d)
}

// ListAllDestinations handles GET /v1/admin/destinations and returns the
// whole catalogue including inactive destinations.
func (h *AdminHandler) ListAllDestinations(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.DestinationRepo.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load destinations"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateDestination handles PATCH /v1/admin/destinations/:id.  Only the
// fields present in the body change; a no-op update is reported as 409 so
// the back-office UI can tell the operator nothing was saved.
func (h *AdminHandler) UpdateDestination(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body struct {
        Name     *string `json:"name"`
        Slug     *string `json:"slug"`
        Country  *string `json:"country"`
        Summary  *string `json:"summary"`
        ImageURL *string `json:"image_url"`
        IsActive *bool   `json:"is_active"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    cur, err := h.DestinationRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrDestinationNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load destination"})
    }

    if body.Name != nil {
        cur.Name = strings.TrimSpace(*body.Name)
    }
    if body.Slug != nil {
        cur.Slug = strings.ToLower(strings.TrimSpace(*body.Slug))
    }
    if body.Country != nil {
        cur.Country = strings.TrimSpace(*body.Country)
    }
    if body.Summary != nil {
        cur.Summary = strings.TrimSpace(*body.Summary)
    }
    if body.ImageURL != nil {
        cur.ImageURL = body.ImageURL
    }
    if body.IsActive != nil {
        cur.IsActive = *body.IsActive
    }
    if cur.Name == "" || cur.Slug == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and slug must not be empty"})
    }

    if err := h.DestinationRepo.Update(ctx, cur); err != nil {
        switch {
        case err == repository.ErrDestinationNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
        case err == repository.ErrNoChange:
            return c.JSON(http.StatusConflict, echo.Map{"error": "destination already has these values"})
        case strings.Contains(err.Error(), "1062"):
            return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update destination"})
        }
    }
    fresh, err := h.DestinationRepo.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusOK, cur)
    }
    return c.JSON(http.StatusOK, fresh)
}

// DeleteDestination handles DELETE /v1/admin/destinations/:id.  A
// destination with activities refuses deletion; deactivate it instead.
func (h *AdminHandler) DeleteDestination(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.DestinationRepo.Delete(ctx, id); err != nil {
        switch err {
        case repository.ErrDestinationNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "destination still has activities"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete destination"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}
