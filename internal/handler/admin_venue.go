package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
)

// AdminHandler bundles repositories for the venue administration
// endpoints. Every method first proves the caller owns the venue it is
// touching; role middleware alone is not enough because any admin could
// otherwise reach into another admin's venue.
type AdminHandler struct {
	Venues      *repository.VenueRepo
	Rooms       *repository.RoomRepo
	Bookings    *repository.BookingRepo
	Memberships *repository.MembershipRepo
	Invitations *repository.InvitationRepo
	Users       *repository.UserRepo
}

func NewAdminHandler(v *repository.VenueRepo, r *repository.RoomRepo, b *repository.BookingRepo, m *repository.MembershipRepo, i *repository.InvitationRepo, u *repository.UserRepo) *AdminHandler {
	if v == nil || r == nil || b == nil || m == nil || i == nil || u == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Venues: v, Rooms: r, Bookings: b, Memberships: m, Invitations: i, Users: u}
}

// requireOwnedVenue loads a venue and checks that the caller owns it.
// On failure the response has already been written and ok is false.
func (h *AdminHandler) requireOwnedVenue(c echo.Context, venueID, userID uint64) (model.Venue, bool, error) {
	ctx, cancel := reqContext(c)
	defer cancel()

	venue, err := h.Venues.GetByID(ctx, venueID)
	if err != nil {
		return model.Venue{}, false, repoError(c, err)
	}
	if venue.AdminID != userID {
		return model.Venue{}, false, c.JSON(http.StatusForbidden, echo.Map{"error": "not your venue"})
	}
	return venue, true, nil
}

type createVenueReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

// CreateVenue creates the caller's venue. Each admin owns at most one.
func (h *AdminHandler) CreateVenue(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createVenueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	venue, err := h.Venues.Create(ctx, uid, req.Name, strings.TrimSpace(req.Description), strings.TrimSpace(req.Address))
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"venue": venueToView(venue)})
}

type updateVenueReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
}

// UpdateVenue applies a partial update to the caller's venue.
func (h *AdminHandler) UpdateVenue(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	var req updateVenueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	venue, err := h.Venues.Update(ctx, venueID, uid, req.Name, req.Description, req.Address)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"venue": venueToView(venue)})
}

// ListVenueBookings returns every booking across the venue's rooms.
func (h *AdminHandler) ListVenueBookings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	if _, ok, err := h.requireOwnedVenue(c, venueID, uid); !ok {
		return err
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	bookings, err := h.Bookings.ListByVenue(ctx, venueID)
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

type memberView struct {
	UserID    uint64  `json:"user_id"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      string  `json:"role"`
	JoinedAt  string  `json:"joined_at"`
}

// ListVenueMembers returns the venue's members with display fields.
func (h *AdminHandler) ListVenueMembers(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	if _, ok, err := h.requireOwnedVenue(c, venueID, uid); !ok {
		return err
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	members, err := h.Memberships.ListByVenue(ctx, venueID)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]memberView, 0, len(members))
	for _, m := range members {
		out = append(out, memberView{
			UserID:    m.Membership.UserID,
			Email:     m.Email,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Role:      string(m.Membership.Role),
			JoinedAt:  m.Membership.JoinedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"members": out})
}

type addMemberReq struct {
	Email string `json:"email"`
	Role  string `json:"role"` // MEMBER | MANAGER, default MEMBER
}

// AddVenueMember grants membership directly, without an invitation.
// Adding an existing member is a no-op.
func (h *AdminHandler) AddVenueMember(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	var req addMemberReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}
	role := model.MembershipRole(strings.ToUpper(strings.TrimSpace(req.Role)))
	if role != model.MembershipManager {
		role = model.MembershipMember
	}
	if _, ok, err := h.requireOwnedVenue(c, venueID, uid); !ok {
		return err
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return repoError(c, err)
	}
	if err := h.Memberships.Ensure(ctx, venueID, user.ID, role, nil); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"member": memberView{UserID: user.ID, Email: user.Email, FirstName: user.FirstName, LastName: user.LastName, Role: string(role)},
	})
}
