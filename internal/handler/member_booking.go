package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/queue"
	queue_publisher "github.com/iliyamo/venue-booking/internal/service"
)

type createBookingReq struct {
	RoomID      uint64 `json:"room_id"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// CreateBooking reserves a slot. The overlap check and the insert run
// in one transaction with the room's bookings for that date locked, so
// two concurrent requests for the same slot cannot both succeed.
func (h *MemberHandler) CreateBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil || req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return repoError(c, err)
	}
	if ok, err := h.requireVenueAccess(c, room.VenueID, uid); !ok {
		return err
	}
	if msg, ok := validateBookingRequest(room, req.BookingDate, req.StartTime, req.EndTime, time.Now().UTC()); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	tx, err := h.Bookings.DB.BeginTx(ctx, nil)
	if err != nil {
		return repoError(c, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	existing, err := h.Bookings.ListActiveByRoomAndDateTx(ctx, tx, req.RoomID, req.BookingDate)
	if err != nil {
		return repoError(c, err)
	}
	bookingID, err := h.Bookings.CreateTx(ctx, tx, req.RoomID, uid, req.BookingDate, req.StartTime, req.EndTime, existing)
	if err != nil {
		return repoError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return repoError(c, err)
	}
	committed = true

	booking, err := h.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return repoError(c, err)
	}

	// Best effort; a broker outage must not fail the booking.
	venue, verr := h.Venues.GetByID(ctx, room.VenueID)
	if verr == nil {
		_ = queue_publisher.PublishBookingCreated(context.Background(), queue.BookingCreatedEvent{
			BookingID:   booking.ID,
			UserID:      uid,
			RoomID:      room.ID,
			RoomName:    room.Name,
			VenueID:     venue.ID,
			VenueName:   venue.Name,
			BookingDate: booking.BookingDate,
			StartTime:   booking.StartTime,
			EndTime:     booking.EndTime,
			CreatedAt:   booking.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"booking": bookingToView(booking, time.Now().UTC())})
}

// MyBookings lists every booking the caller has made, with the derived
// view status.
func (h *MemberHandler) MyBookings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	bookings, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return repoError(c, err)
	}
	now := time.Now().UTC()
	out := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingToView(b, now))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// CancelBooking cancels the caller's own active booking. Cancellation
// is terminal; a cancelled slot immediately becomes bookable again.
func (h *MemberHandler) CancelBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	booking, err := h.Bookings.Cancel(ctx, bookingID, uid, false)
	if err != nil {
		return repoError(c, err)
	}

	_ = queue_publisher.PublishBookingCancelled(context.Background(), queue.BookingCancelledEvent{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		RoomID:      booking.RoomID,
		BookingDate: booking.BookingDate,
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		CancelledBy: uid,
		CancelledAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"booking": bookingToView(booking, time.Now().UTC())})
}
