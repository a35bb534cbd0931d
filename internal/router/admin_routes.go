package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/middleware"
)

// RegisterAdmin registers the venue administration endpoints. The role
// middleware keeps members out; venue ownership is verified per request
// in the handlers.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))

	g.POST("/venues", h.CreateVenue)
	g.PATCH("/venues/:id", h.UpdateVenue)

	g.POST("/venues/:id/rooms", h.CreateRoom)
	g.PATCH("/rooms/:id", h.UpdateRoom)
	g.DELETE("/rooms/:id", h.DeleteRoom)
	g.PUT("/rooms/:id/photos", h.ReplacePhotos)

	g.GET("/venues/:id/bookings", h.ListVenueBookings)
	g.GET("/venues/:id/members", h.ListVenueMembers)
	g.POST("/venues/:id/members", h.AddVenueMember)

	g.GET("/venues/:id/invitations", h.ListVenueInvitations)
	g.POST("/invitations", h.CreateInvitation)
	g.PATCH("/invitations/:id", h.UpdateInvitation)
	g.POST("/invitations/:id/revoke", h.RevokeInvitation)
}
