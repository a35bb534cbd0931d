package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/invite"
	"github.com/iliyamo/venue-booking/internal/model"
)

type invitationView struct {
	ID               uint64  `json:"id"`
	VenueID          uint64  `json:"venue_id"`
	VenueName        string  `json:"venue_name"`
	Token            string  `json:"token"`
	InviteeFirstName string  `json:"invitee_first_name,omitempty"`
	InviteeLastName  string  `json:"invitee_last_name,omitempty"`
	InviteeEmail     string  `json:"invitee_email,omitempty"`
	ExpiresAt        *string `json:"expires_at,omitempty"`
	MaxUses          uint32  `json:"max_uses"`
	Uses             uint32  `json:"uses"`
	Revoked          bool    `json:"revoked"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at"`
}

func invitationToView(inv model.Invitation) invitationView {
	v := invitationView{
		ID:               inv.ID,
		VenueID:          inv.VenueID,
		VenueName:        inv.VenueName,
		Token:            inv.Token,
		InviteeFirstName: inv.InviteeFirstName,
		InviteeLastName:  inv.InviteeLastName,
		InviteeEmail:     inv.InviteeEmail,
		MaxUses:          inv.MaxUses,
		Uses:             inv.Uses,
		Revoked:          inv.RevokedAt != nil,
		Status:           string(inv.Status),
		CreatedAt:        inv.CreatedAt.UTC().Format(time.RFC3339),
	}
	if inv.ExpiresAt != nil {
		s := inv.ExpiresAt.UTC().Format(time.RFC3339)
		v.ExpiresAt = &s
	}
	return v
}

type createInvitationReq struct {
	VenueID          uint64 `json:"venue_id"`
	InviteeEmail     string `json:"invitee_email"`
	InviteeFirstName string `json:"invitee_first_name"`
	InviteeLastName  string `json:"invitee_last_name"`
	ExpiresAt        string `json:"expires_at"` // RFC3339, optional
	MaxUses          uint32 `json:"max_uses"`   // default 1
}

// CreateInvitation issues an invitation for the caller's venue with a
// fresh random token.
func (h *AdminHandler) CreateInvitation(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createInvitationReq
	if err := c.Bind(&req); err != nil || req.VenueID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue_id required"})
	}
	var expiresAt *time.Time
	if strings.TrimSpace(req.ExpiresAt) != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "expires_at must be RFC3339"})
		}
		expiresAt = &t
	}
	if req.MaxUses == 0 {
		req.MaxUses = 1
	}
	if _, ok, err := h.requireOwnedVenue(c, req.VenueID, uid); !ok {
		return err
	}

	token, err := invite.NewToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	inv, err := h.Invitations.Create(ctx, model.Invitation{
		VenueID:          req.VenueID,
		Token:            token,
		CreatedByUserID:  uid,
		InviteeFirstName: strings.TrimSpace(req.InviteeFirstName),
		InviteeLastName:  strings.TrimSpace(req.InviteeLastName),
		InviteeEmail:     invite.NormalizeEmail(req.InviteeEmail),
		ExpiresAt:        expiresAt,
		MaxUses:          req.MaxUses,
	})
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"invitation": invitationToView(inv)})
}

// ListVenueInvitations returns the venue's invitations, newest first.
func (h *AdminHandler) ListVenueInvitations(c echo.Context) error {
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

	invitations, err := h.Invitations.ListByVenue(ctx, venueID)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]invitationView, 0, len(invitations))
	for _, inv := range invitations {
		out = append(out, invitationToView(inv))
	}
	return c.JSON(http.StatusOK, echo.Map{"invitations": out})
}

type updateInvitationReq struct {
	ExpiresAt        *string `json:"expires_at"` // RFC3339; empty string clears the expiry
	MaxUses          *uint32 `json:"max_uses"`
	InviteeEmail     *string `json:"invitee_email"`
	InviteeFirstName *string `json:"invitee_first_name"`
	InviteeLastName  *string `json:"invitee_last_name"`
}

// UpdateInvitation lets the admin adjust an invitation after issuing
// it, for example extending the expiry or raising max_uses to reopen an
// exhausted one.
func (h *AdminHandler) UpdateInvitation(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	invID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invitation id"})
	}
	var req updateInvitationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	var (
		expiresAt   *time.Time
		clearExpiry bool
	)
	if req.ExpiresAt != nil {
		if strings.TrimSpace(*req.ExpiresAt) == "" {
			clearExpiry = true
		} else {
			t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "expires_at must be RFC3339"})
			}
			expiresAt = &t
		}
	}
	var email *string
	if req.InviteeEmail != nil {
		e := invite.NormalizeEmail(*req.InviteeEmail)
		email = &e
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	current, err := h.Invitations.GetByID(ctx, invID)
	if err != nil {
		return repoError(c, err)
	}
	if _, ok, err := h.requireOwnedVenue(c, current.VenueID, uid); !ok {
		return err
	}

	inv, err := h.Invitations.Update(ctx, invID, expiresAt, clearExpiry, req.MaxUses, email, req.InviteeFirstName, req.InviteeLastName)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"invitation": invitationToView(inv)})
}

// RevokeInvitation stamps the invitation as revoked. Revoking twice is
// a no-op.
func (h *AdminHandler) RevokeInvitation(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	invID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invitation id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	current, err := h.Invitations.GetByID(ctx, invID)
	if err != nil {
		return repoError(c, err)
	}
	if _, ok, err := h.requireOwnedVenue(c, current.VenueID, uid); !ok {
		return err
	}

	inv, err := h.Invitations.Revoke(ctx, invID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"invitation": invitationToView(inv)})
}
