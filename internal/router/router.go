// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check used by load balancers and
// monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes and the /v1/me
// profile endpoint. Unauthenticated operations live under /v1/auth,
// protected endpoints under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access only issues a
	// new access token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout works with either a bearer token (all sessions) or a
	// refresh_token in the body (one session), so it stays outside the
	// JWT middleware.
	g.POST("/logout", a.Logout)
	e.POST("/v1/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "MEMBER"))
	auth.GET("/me", a.Me)
}

// RegisterInvite registers the invitation surface. The token lookup is
// public so the invite link renders before login; redemption requires a
// session. Extra middleware (the response cache) applies to the lookup
// only.
func RegisterInvite(e *echo.Echo, h *handler.InviteHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	e.GET("/v1/invite/:token", h.Lookup, extra...)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "MEMBER"))
	auth.POST("/invite/:token/redeem", h.Redeem)
}
