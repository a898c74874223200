package router // router defines how HTTP routes are registered for the API

import (
	"github.com/horizonvoyages/travel-backend/internal/handler"    // admin handlers
	"github.com/horizonvoyages/travel-backend/internal/middleware" // JWT + role middlewares
	"github.com/labstack/echo/v4"
)

// RegisterAdmin registers back-office endpoints under /v1/admin.
// All routes require a valid JWT; catalogue and invoice writes are
// ADMIN-only while lead handling is open to AGENTs as well.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Destinations ----
	g.POST("/destinations", a.CreateDestination)
	g.GET("/destinations", a.ListAllDestinations) // includes inactive rows
	g.PUT("/destinations/:id", a.UpdateDestination)
	g.PATCH("/destinations/:id", a.UpdateDestination) // allow partial updates via PATCH as well
	g.DELETE("/destinations/:id", a.DeleteDestination)

	// ---- Activities ----
	g.POST("/destinations/:id/activities", a.CreateActivity)
	g.GET("/destinations/:id/activities", a.ListActivitiesForDestination)
	g.PUT("/activities/:id", a.UpdateActivity)
	g.PATCH("/activities/:id", a.UpdateActivity)
	g.DELETE("/activities/:id", a.DeleteActivity)

	// ---- Invoices ----
	g.POST("/invoices", a.CreateInvoice)
	g.GET("/invoices", a.ListInvoices)
	g.GET("/invoices/:id", a.GetInvoice)
	g.PUT("/invoices/:id", a.UpdateInvoice)
	g.PATCH("/invoices/:id", a.UpdateInvoice)
	g.POST("/invoices/:id/paid", a.MarkInvoicePaid)
	g.DELETE("/invoices/:id", a.DeleteInvoice)

	// ---- Trip requests (captured leads) ----
	// Agents work the lead queue, so these routes accept both roles.
	leads := e.Group(
		"/v1/admin/trip-requests",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "AGENT"),
	)
	leads.GET("", a.ListTripRequests)
	leads.GET("/:id", a.GetTripRequest)
	leads.PATCH("/:id/status", a.UpdateTripRequestStatus)
}
