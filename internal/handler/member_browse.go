package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/schedule"
)

// MemberHandler bundles repositories for the member-facing browse and
// booking endpoints. Admins pass through the same handlers; the access
// guard accepts venue ownership as well as membership.
type MemberHandler struct {
	Venues      *repository.VenueRepo
	Rooms       *repository.RoomRepo
	Bookings    *repository.BookingRepo
	Memberships *repository.MembershipRepo
}

func NewMemberHandler(v *repository.VenueRepo, r *repository.RoomRepo, b *repository.BookingRepo, m *repository.MembershipRepo) *MemberHandler {
	if v == nil || r == nil || b == nil || m == nil {
		panic("nil repository passed to NewMemberHandler")
	}
	return &MemberHandler{Venues: v, Rooms: r, Bookings: b, Memberships: m}
}

type venueView struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

type roomView struct {
	ID            uint64   `json:"id"`
	VenueID       uint64   `json:"venue_id"`
	Name          string   `json:"name"`
	Capacity      uint32   `json:"capacity"`
	AvailableFrom string   `json:"available_from"`
	AvailableTo   string   `json:"available_to"`
	Photos        []string `json:"photos,omitempty"`
}

type bookingView struct {
	ID          uint64 `json:"id"`
	RoomID      uint64 `json:"room_id"`
	UserID      uint64 `json:"user_id"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
}

func venueToView(v model.Venue) venueView {
	return venueView{ID: v.ID, Name: v.Name, Description: v.Description, Address: v.Address}
}

func roomToView(r model.Room, photos []model.RoomPhoto) roomView {
	rv := roomView{
		ID: r.ID, VenueID: r.VenueID, Name: r.Name, Capacity: r.Capacity,
		AvailableFrom: r.AvailableFrom, AvailableTo: r.AvailableTo,
	}
	for _, p := range photos {
		rv.Photos = append(rv.Photos, p.URL)
	}
	return rv
}

func bookingToView(b model.Booking, now time.Time) bookingView {
	return bookingView{
		ID: b.ID, RoomID: b.RoomID, UserID: b.UserID,
		BookingDate: b.BookingDate, StartTime: b.StartTime, EndTime: b.EndTime,
		Status: string(schedule.BookingViewStatus(b.Status, b.BookingDate, b.EndTime, now)),
	}
}

// requireVenueAccess rejects users who neither belong to the venue nor
// own it. Returns false after writing the response.
func (h *MemberHandler) requireVenueAccess(c echo.Context, venueID, userID uint64) (bool, error) {
	ctx, cancel := reqContext(c)
	defer cancel()

	ok, err := h.Memberships.HasAccess(ctx, venueID, userID)
	if err != nil {
		return false, repoError(c, err)
	}
	if !ok {
		return false, c.JSON(http.StatusForbidden, echo.Map{"error": "not a member of this venue"})
	}
	return true, nil
}

// ListVenues returns the venues the caller belongs to or owns.
func (h *MemberHandler) ListVenues(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	venues, err := h.Venues.ListForMember(ctx, uid)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]venueView, 0, len(venues))
	for _, v := range venues {
		out = append(out, venueToView(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"venues": out})
}

// ListVenueRooms returns the rooms of a venue the caller can access.
func (h *MemberHandler) ListVenueRooms(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	if ok, err := h.requireVenueAccess(c, venueID, uid); !ok {
		return err
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	rooms, err := h.Rooms.ListByVenue(ctx, venueID)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]roomView, 0, len(rooms))
	for _, r := range rooms {
		photos, err := h.Rooms.ListPhotos(ctx, r.ID)
		if err != nil {
			return repoError(c, err)
		}
		out = append(out, roomToView(r, photos))
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}

// GetRoom returns one room with its photo list.
func (h *MemberHandler) GetRoom(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return repoError(c, err)
	}
	if ok, err := h.requireVenueAccess(c, room.VenueID, uid); !ok {
		return err
	}
	photos, err := h.Rooms.ListPhotos(ctx, roomID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"room": roomToView(room, photos)})
}

// ListRoomBookings returns the active bookings of a room on a date plus
// the availability grid derived from them: the bookable start times
// within the room's window.
func (h *MemberHandler) ListRoomBookings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	date := c.QueryParam("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return repoError(c, err)
	}
	if ok, err := h.requireVenueAccess(c, room.VenueID, uid); !ok {
		return err
	}

	bookings, err := h.Bookings.ListActiveByRoomAndDate(ctx, roomID, date)
	if err != nil {
		return repoError(c, err)
	}

	now := time.Now().UTC()
	out := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingToView(b, now))
	}

	window := schedule.Range{
		Start: schedule.ToMinutes(room.AvailableFrom),
		End:   schedule.ToMinutes(room.AvailableTo),
	}
	busy := schedule.BusyRanges(bookings)
	resp := echo.Map{
		"bookings":              out,
		"available_start_times": schedule.AvailableStartTimes(busy, window),
	}
	// With ?start=HH:MM the response also carries the valid end times for
	// that start, so a client can populate the end picker.
	if start := c.QueryParam("start"); start != "" {
		if schedule.NormalizeTime(start, "") != start {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be HH:MM"})
		}
		ends := schedule.AvailableEndMinutes(busy, window, schedule.ToMinutes(start))
		times := make([]string, 0, len(ends))
		for _, m := range ends {
			times = append(times, schedule.ToTime(m))
		}
		resp["available_end_times"] = times
	}
	return c.JSON(http.StatusOK, resp)
}
