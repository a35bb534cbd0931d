package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/middleware"
)

// RegisterMember registers the browse and booking endpoints. Admins use
// them too; per-venue access is checked inside the handlers, where
// membership and ownership are both accepted.
func RegisterMember(e *echo.Echo, h *handler.MemberHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN", "MEMBER"))
	g.Use(extra...)

	g.GET("/venues", h.ListVenues)
	g.GET("/venues/:id/rooms", h.ListVenueRooms)
	g.GET("/rooms/:id", h.GetRoom)
	g.GET("/rooms/:id/bookings", h.ListRoomBookings)

	g.POST("/bookings", h.CreateBooking)
	g.GET("/my-bookings", h.MyBookings)
	g.POST("/bookings/:id/cancel", h.CancelBooking)
}
