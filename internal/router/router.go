package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/horizonvoyages/travel-backend/internal/handler"    // import the handlers that implement business logic
	"github.com/horizonvoyages/travel-backend/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.  Accounts exist only for
// back-office staff (ADMIN and AGENT).
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Group under /v1/auth for operations that do not require an existing
	// session (register, login, refresh).
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle staff registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle staff login at /v1/auth/login.
	g.POST("/login", a.Login)
    // Register a POST endpoint to refresh access tokens at /v1/auth/refresh. This rotates the refresh token.
    g.POST("/refresh", a.Refresh)
    // Register a POST endpoint to issue a new access token without rotating the refresh token.
    g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication.  The handler accepts a
	// JSON body containing a `refresh_token` (or a bearer token to revoke
	// every session) and invalidates it.
	g.POST("/logout", a.Logout)

	// Group for routes that require a valid access token.  All handlers
	// registered on this group execute the JWTAuth middleware first.
	auth := e.Group("/v1")
	// Apply the JWTAuth middleware to the protected group using the provided secret.
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Both staff roles may read their own identity.
	auth.Use(middleware.RequireRole("ADMIN", "AGENT"))
	// Register a GET endpoint at /v1/me that returns the authenticated user's information.
	auth.GET("/me", a.Me)

	// Additionally map POST /v1/logout to the same handler so clients can
	// call either /v1/auth/logout or /v1/logout with a valid refresh token
	// in the body to terminate a session.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The PublicHandler exposes sanitized destination and
// activity data, the InvoiceHandler the reference-based invoice lookup.
// These routes do not apply any JWT or role middleware and are intended
// for site visitors.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, inv *handler.InvoiceHandler) {
    // Expose the list of active destinations
    e.GET("/v1/destinations", p.ListDestinations)
    // Single destination detail page
    e.GET("/v1/destinations/:id", p.GetDestination)
    // Bookable activities of a destination, most-reviewed first
    e.GET("/v1/destinations/:id/activities", p.ListDestinationActivities)
    // Fixed departure-city list used by the trip wizard origin step
    e.GET("/v1/origin-cities", p.ListOriginCities)
    // Invoice lookup by reference; the reference itself is the secret
    e.GET("/v1/invoices/lookup", inv.Lookup)
}
