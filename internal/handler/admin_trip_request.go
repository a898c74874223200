package handler // handler package contains staff-facing trip-request (lead) handlers

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/horizonvoyages/travel-backend/internal/repository"
)

// leadStatuses lists the legal lead workflow states.
var leadStatuses = map[string]bool{"NEW": true, "CONTACTED": true, "CLOSED": true}

// ListTripRequests handles GET /v1/admin/trip-requests with an optional
// ?status= filter, newest first.
func (h *AdminHandler) ListTripRequests(c echo.Context) error {
    status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
    if status != "" && !leadStatuses[status] {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.TripRequestRepo.List(ctx, status)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load trip requests"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetTripRequest handles GET /v1/admin/trip-requests/:id and returns the
// lead together with the activities that were in the visitor's cart at
// submission time.
func (h *AdminHandler) GetTripRequest(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t, err := h.TripRequestRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrTripRequestNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "trip request not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load trip request"})
    }
    acts, err := h.TripRequestRepo.ListActivities(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load activities"})
    }
    return c.JSON(http.StatusOK, echo.Map{"trip_request": t, "activities": acts})
}

// UpdateTripRequestStatus handles PATCH /v1/admin/trip-requests/:id/status
// and moves a lead through its workflow (NEW -> CONTACTED -> CLOSED).
func (h *AdminHandler) UpdateTripRequestStatus(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body struct {
        Status string `json:"status"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    status := strings.ToUpper(strings.TrimSpace(body.Status))
    if !leadStatuses[status] {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.TripRequestRepo.UpdateStatus(ctx, id, status); err != nil {
        switch err {
        case repository.ErrTripRequestNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "trip request not found"})
        case repository.ErrNoChange:
            return c.JSON(http.StatusConflict, echo.Map{"error": "trip request already has this status"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update status"})
        }
    }
    fresh, err := h.TripRequestRepo.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load trip request"})
    }
    return c.JSON(http.StatusOK, fresh)
}
