package handler

// wizard.go exposes the multi-step trip-request wizard over HTTP.  A wizard
// session is identified by an opaque id carried in the X-Session-ID header;
// the browser obtains one from POST /v1/wizard and sends it back on every
// later call.  All state lives server-side in the wizard session manager.

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/horizonvoyages/travel-backend/internal/cart"
    "github.com/horizonvoyages/travel-backend/internal/repository"
    "github.com/horizonvoyages/travel-backend/internal/wizard"
)

// HeaderSessionID carries the wizard session identifier.
const HeaderSessionID = "X-Session-ID"

// WizardHandler bundles the session manager, cart manager and submitter for
// the wizard endpoints.
type WizardHandler struct {
    Sessions        *wizard.SessionManager
    Carts           *cart.Manager
    Submitter       *wizard.Submitter
    DestinationRepo *repository.DestinationRepo
}

// NewWizardHandler constructs a WizardHandler and panics on nil dependencies.
func NewWizardHandler(sessions *wizard.SessionManager, carts *cart.Manager, submitter *wizard.Submitter, destRepo *repository.DestinationRepo) *WizardHandler {
    if sessions == nil || carts == nil || submitter == nil || destRepo == nil {
        panic("nil dependency passed to NewWizardHandler")
    }
    return &WizardHandler{Sessions: sessions, Carts: carts, Submitter: submitter, DestinationRepo: destRepo}
}

type createSessionReq struct {
    Seed string `json:"seed"` // destination label from a referral link, optional
}

type jumpReq struct {
    Index int `json:"index"`
}

type seedReq struct {
    Keep *bool `json:"keep"`
}

type locateReq struct {
    Lat     float64 `json:"lat"`
    Lng     float64 `json:"lng"`
    Located bool    `json:"located"` // false when the platform denied or failed geolocation
}

// CreateSession handles POST /v1/wizard.  It loads the currently active
// destinations to build the selectable option sets, then opens a fresh
// session.  The session id is returned both in the body and the
// X-Session-ID response header.
func (h *WizardHandler) CreateSession(c echo.Context) error {
    var req createSessionReq
    _ = c.Bind(&req) // empty body is fine

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    dests, err := h.DestinationRepo.ListActive(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    names := make([]string, 0, len(dests))
    for _, d := range dests {
        names = append(names, d.Name)
    }

    sess := h.Sessions.Create(req.Seed, wizard.DefaultOptions(names))
    c.Response().Header().Set(HeaderSessionID, sess.ID())
    return c.JSON(http.StatusCreated, sess.Snapshot())
}

// session resolves the X-Session-ID header into a live session.  The bool
// result is false when the header is missing or stale; an error response
// has already been written in that case.
func (h *WizardHandler) session(c echo.Context) (*wizard.Session, bool) {
    id := c.Request().Header.Get(HeaderSessionID)
    if id == "" {
        _ = c.JSON(http.StatusBadRequest, echo.Map{"error": "missing " + HeaderSessionID + " header"})
        return nil, false
    }
    sess, ok := h.Sessions.Get(id)
    if !ok {
        _ = c.JSON(http.StatusNotFound, echo.Map{"error": "unknown or expired session"})
        return nil, false
    }
    return sess, true
}

// ViewSession handles GET /v1/wizard and returns the current snapshot.
func (h *WizardHandler) ViewSession(c echo.Context) error {
    sess, ok := h.session(c)
    if !ok {
        return nil
    }
    return c.JSON(http.StatusOK, sess.Snapshot())
}

// PatchAnswers handles PATCH /v1/wizard/answers.  Only the fields present
// in the body are updated; the step position does not move.
func (h *WizardHandler) PatchAnswers(c echo.Context) error {
    sess, ok := h.session(c)
    if !ok {
        return nil
    }
    var p wizard.AnswerPatch
    if err := c.Bind(&p); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if (p.Adults != nil && *p.Adults < 0) || (p.Children != nil && *p.Children < 0) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "traveller counts must not be negative"})
    }
    sess.ApplyPatch(p)
    return c.JSON(http.StatusOK, sess.Snapshot())
}

// Advance handles POST /v1/wizard/advance.  The move is refused (200 with
// moved=false) when the current step does not validate.
func (h *WizardHandler) Advance(c echo.Context) error {
    sess, ok := h.session(c)
    if !ok {
        return nil
    }
    moved := sess.Advance()
    return c.JSON(http.StatusOK, echo.Map{"moved": moved, "session": sess.Snapshot()})
}

// Retreat handles POST /v1/wizard/retreat.  Going back never validates.
func (h *WizardHandler) Retreat(c echo.Context) error {
    sess, ok := h.session(c)
    if !ok {
        return nil
    }
    moved := sess.Retreat()
    return c.JSON(http.StatusOK, echo.Map{"moved": moved, "session": sess.Snapshot()})
}

// Jump handles POST /v1/wizard/jump and moves to an already-visited step.
func (h *WizardHandler) Jump(c echo.Context) error {
    sess, ok := h.session(c)
    if !ok {
        return nil
    }
    var req jumpReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    moved := sess.JumpTo(req.Index)
    return c.JSON(http.StatusOK, echo.Map{"moved": moved, "session": sess.Snapshot()})
}

// Seed handles POST /v1/wizard/seed, answering the destination-seed prompt.
// keep=true confirms the referred destination; keep=false discards it and
// shows the normal destination picker.
func (h *WizardHandler) Seed(c echo.Context) error {
    sess, ok := h.session(c)
    if !ok {
        return nil
    }
    var req seedReq
    if err := c.Bind(&req); err != nil || req.Keep == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "keep is required"})
    }
    moved := sess.ResolveSeed(*req.Keep)
    return c.JSON(http.StatusOK, echo.Map{"moved": moved, "session": sess.Snapshot()})
}

// Locate handles POST /v1/wizard/locate.  The client posts the coordinate
// it obtained (or located=false when the platform refused); the origin
// field is prefilled with the nearest departure city when one lies within
// the matching threshold.  The attempt is one-shot per session.
func (h *WizardHandler) Locate(c echo.Context) error {
    sess, ok := h.session(c)
    if !ok {
        return nil
    }
    var req locateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    prefilled := sess.Prefill(req.Lat, req.Lng, req.Located)
    return c.JSON(http.StatusOK, echo.Map{"prefilled": prefilled, "session": sess.Snapshot()})
}

// Submit handles POST /v1/wizard/submit.  A complete session is turned into
// a persistent trip request, its cart activities are attached, the cart is
// cleared and the lead announced.  Re-submitting a saved session returns
// the existing id.
func (h *WizardHandler) Submit(c echo.Context) error {
    sess, ok := h.session(c)
    if !ok {
        return nil
    }
    ctx := c.Request().Context()
    cartStore := h.Carts.Get(ctx, sess.ID())

    id, status := h.Submitter.Submit(ctx, sess, cartStore)
    switch status {
    case wizard.StatusSaved:
        if id == 0 {
            // already saved earlier; report the stored id
            _, id = sess.Status()
        }
        return c.JSON(http.StatusCreated, echo.Map{"status": status, "trip_request_id": id})
    case wizard.StatusSaving:
        return c.JSON(http.StatusConflict, echo.Map{"status": status, "error": "submission already in progress"})
    case wizard.StatusError:
        return c.JSON(http.StatusInternalServerError, echo.Map{"status": status, "error": "could not save trip request"})
    default:
        return c.JSON(http.StatusConflict, echo.Map{"status": status, "error": "wizard is not complete"})
    }
}

// SubmitStatus handles GET /v1/wizard/status for polling during submission.
func (h *WizardHandler) SubmitStatus(c echo.Context) error {
    sess, ok := h.session(c)
    if !ok {
        return nil
    }
    status, id := sess.Status()
    resp := echo.Map{"status": status}
    if id != 0 {
        resp["trip_request_id"] = id
    }
    return c.JSON(http.StatusOK, resp)
}
