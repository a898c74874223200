package handler

// cart.go exposes the session-scoped activity cart.  The cart shares the
// X-Session-ID identifier with the trip wizard but works independently of
// it: visitors collect activities while browsing and the wizard drains the
// cart only at submission time.

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/horizonvoyages/travel-backend/internal/cart"
    "github.com/horizonvoyages/travel-backend/internal/repository"
)

// CartHandler bundles the cart manager with the activity repository used to
// validate and enrich added items.
type CartHandler struct {
    Carts        *cart.Manager
    ActivityRepo *repository.ActivityRepo
}

// NewCartHandler constructs a CartHandler and panics on nil dependencies.
func NewCartHandler(carts *cart.Manager, actRepo *repository.ActivityRepo) *CartHandler {
    if carts == nil || actRepo == nil {
        panic("nil dependency passed to NewCartHandler")
    }
    return &CartHandler{Carts: carts, ActivityRepo: actRepo}
}

type addCartItemReq struct {
    ActivityID  uint64 `json:"activity_id"`
    TripContext string `json:"trip_context"` // optional label, e.g. the wizard's destination
}

type navigateReq struct {
    Path string `json:"path"`
}

// cartView is the JSON shape of a cart snapshot.
type cartView struct {
    Items        []cart.Entry `json:"items"`
    Count        int          `json:"count"`
    Notification *cart.Entry  `json:"notification,omitempty"`
}

// store resolves the session header into the cart for that session.  A
// missing header is the only failure mode; unknown ids simply get an empty
// cart.
func (h *CartHandler) store(c echo.Context) (*cart.Store, bool) {
    id := c.Request().Header.Get(HeaderSessionID)
    if id == "" {
        _ = c.JSON(http.StatusBadRequest, echo.Map{"error": "missing " + HeaderSessionID + " header"})
        return nil, false
    }
    return h.Carts.Get(c.Request().Context(), id), true
}

func snapshotCart(st *cart.Store) cartView {
    view := cartView{Items: st.Entries()}
    view.Count = len(view.Items)
    if e, ok := st.Notification(); ok {
        view.Notification = &e
    }
    return view
}

// AddItem handles POST /v1/cart/items.  The activity must exist and be
// bookable; a duplicate add is a silent no-op and does not re-arm the
// added-to-cart notification.
func (h *CartHandler) AddItem(c echo.Context) error {
    st, ok := h.store(c)
    if !ok {
        return nil
    }
    var req addCartItemReq
    if err := c.Bind(&req); err != nil || req.ActivityID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "activity_id is required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    a, err := h.ActivityRepo.GetByID(ctx, req.ActivityID)
    if err != nil {
        if err == repository.ErrActivityNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !a.IsActive || !a.IsBookable {
        return c.JSON(http.StatusConflict, echo.Map{"error": "activity is not bookable"})
    }

    entry := cart.Entry{
        ActivityID:    a.ID,
        Name:          a.Name,
        DestinationID: a.DestinationID,
        PriceCents:    a.PriceCents,
        TripContext:   req.TripContext,
    }
    if a.ImageURL != nil {
        entry.ImageURL = *a.ImageURL
    }
    if a.Currency != nil {
        entry.Currency = *a.Currency
    }
    added := st.Add(ctx, entry)
    return c.JSON(http.StatusOK, echo.Map{"added": added, "cart": snapshotCart(st)})
}

// RemoveItem handles DELETE /v1/cart/items/:id.  Removing an absent
// activity is a no-op.
func (h *CartHandler) RemoveItem(c echo.Context) error {
    st, ok := h.store(c)
    if !ok {
        return nil
    }
    id, valid := pathID(c, "id")
    if !valid {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    st.Remove(c.Request().Context(), id)
    return c.JSON(http.StatusOK, echo.Map{"cart": snapshotCart(st)})
}

// GetCart handles GET /v1/cart and returns the current snapshot including
// a still-fresh added-to-cart notification when present.
func (h *CartHandler) GetCart(c echo.Context) error {
    st, ok := h.store(c)
    if !ok {
        return nil
    }
    return c.JSON(http.StatusOK, snapshotCart(st))
}

// ClearCart handles DELETE /v1/cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
    st, ok := h.store(c)
    if !ok {
        return nil
    }
    st.Clear(c.Request().Context())
    return c.NoContent(http.StatusNoContent)
}

// Navigate handles POST /v1/cart/navigate.  Clients report page changes so
// the cart can drop its contents when the visitor leaves the browsing
// area (anything outside destination, activity and checkout pages).
func (h *CartHandler) Navigate(c echo.Context) error {
    st, ok := h.store(c)
    if !ok {
        return nil
    }
    var req navigateReq
    if err := c.Bind(&req); err != nil || req.Path == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "path is required"})
    }
    st.Navigate(c.Request().Context(), req.Path)
    return c.JSON(http.StatusOK, echo.Map{"cart": snapshotCart(st)})
}
