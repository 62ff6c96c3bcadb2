package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/dkoval23/hotel-booking-api/internal/handler"    // import the handlers that implement business logic
	"github.com/dkoval23/hotel-booking-api/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not belong to any feature
// group. Currently it exposes only a health check, used by load
// balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the signup and signin endpoints. Both are
// unauthenticated; signin is what issues the bearer token the booking
// routes require.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/auth")
	g.POST("/signup", a.Signup)
	g.POST("/signin", a.Signin)
}

// RegisterCatalog registers the public hotel browsing endpoints. The
// optional cache middleware (Redis-backed, built in main) is applied to
// this group only: catalog reads are the hot path and carry no per-user
// state, so they are safe to cache.
func RegisterCatalog(e *echo.Echo, h *handler.HotelHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/hotels")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

// RegisterBookings registers the booking endpoints behind JWT
// authentication. The middleware stores the token's user_id in the
// request context, which the handlers treat as the authoritative
// identity.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/bookings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.GET("", b.List)
	g.POST("", b.Create)
}
