package router

import (
	"github.com/horizonvoyages/travel-backend/internal/handler"
	"github.com/labstack/echo/v4"
)

// RegisterWizard registers the trip-request wizard and the session cart
// under /v1.  Neither requires authentication: wizard sessions are
// anonymous and identified only by the X-Session-ID header the client
// obtained from POST /v1/wizard.
func RegisterWizard(e *echo.Echo, w *handler.WizardHandler, cart *handler.CartHandler) {
	g := e.Group("/v1/wizard")
	// Open a fresh session; an optional {"seed": "..."} body arms the
	// destination confirmation step for referral links.
	g.POST("", w.CreateSession)
	g.GET("", w.ViewSession)
	// Merge partial answers without moving the step position.
	g.PATCH("/answers", w.PatchAnswers)
	// Step navigation.  Forward movement is gated by per-step validation;
	// backward movement and jumps to visited steps are always allowed.
	g.POST("/advance", w.Advance)
	g.POST("/retreat", w.Retreat)
	g.POST("/jump", w.Jump)
	// Answer the destination-seed prompt (keep or discard the referral).
	g.POST("/seed", w.Seed)
	// One-shot origin prefill from a client-supplied coordinate.
	g.POST("/locate", w.Locate)
	// Final submission and its polling endpoint.
	g.POST("/submit", w.Submit)
	g.GET("/status", w.SubmitStatus)

	c := e.Group("/v1/cart")
	c.POST("/items", cart.AddItem)
	c.DELETE("/items/:id", cart.RemoveItem)
	c.GET("", cart.GetCart)
	c.DELETE("", cart.ClearCart)
	// Clients report page navigation so carts expire outside the browsing area.
	c.POST("/navigate", cart.Navigate)
}
