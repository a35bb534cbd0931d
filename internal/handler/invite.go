package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/invite"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
	queue_publisher "github.com/iliyamo/venue-booking/internal/service"
)

// InviteHandler serves the public invite-link lookup and the
// authenticated redemption endpoint.
type InviteHandler struct {
	Invitations *repository.InvitationRepo
	Memberships *repository.MembershipRepo
	Users       *repository.UserRepo
}

func NewInviteHandler(i *repository.InvitationRepo, m *repository.MembershipRepo, u *repository.UserRepo) *InviteHandler {
	if i == nil || m == nil || u == nil {
		panic("nil repository passed to NewInviteHandler")
	}
	return &InviteHandler{Invitations: i, Memberships: m, Users: u}
}

// validityOf maps the validity decision onto the string shown on the
// invite page.
func validityOf(inv *model.Invitation, now time.Time) string {
	switch err := invite.Validate(inv, now); {
	case err == nil:
		return "valid"
	case errors.Is(err, invite.ErrRevoked):
		return "revoked"
	case errors.Is(err, invite.ErrExpired):
		return "expired"
	default:
		return "exhausted"
	}
}

// Lookup renders the public invite page data for a token. The invitee
// email is not echoed back; the page only needs the venue and the
// display name.
func (h *InviteHandler) Lookup(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	inv, err := h.Invitations.GetByToken(ctx, token)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"venue_id":           inv.VenueID,
		"venue_name":         inv.VenueName,
		"invitee_first_name": inv.InviteeFirstName,
		"invitee_last_name":  inv.InviteeLastName,
		"status":             string(inv.Status),
		"validity":           validityOf(&inv, time.Now().UTC()),
	})
}

// Redeem connects the authenticated caller to the invitation's venue.
// The invitation row is locked for the duration of the transaction, so
// concurrent redemptions of the same token serialize and the usage
// counter stays exact. Redeeming a token one already redeemed returns
// success without touching anything.
func (h *InviteHandler) Redeem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	user, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return repoError(c, err)
	}

	tx, err := h.Invitations.DB.BeginTx(ctx, nil)
	if err != nil {
		return repoError(c, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	inv, err := h.Invitations.GetByTokenForUpdateTx(ctx, tx, token)
	if err != nil {
		return repoError(c, err)
	}

	already, err := invite.EvaluateRedeem(&inv, uid, user.Email, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, invite.ErrWrongUser), errors.Is(err, invite.ErrWrongEmail), errors.Is(err, invite.ErrAlreadyUsed):
			return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
	}
	if already {
		return c.JSON(http.StatusOK, echo.Map{
			"venue_id":          inv.VenueID,
			"venue_name":        inv.VenueName,
			"already_connected": true,
		})
	}

	if err := h.Memberships.EnsureTx(ctx, tx, inv.VenueID, uid, model.MembershipMember, &inv.ID); err != nil {
		return repoError(c, err)
	}
	if err := h.Invitations.MarkConnectedTx(ctx, tx, inv.ID, uid); err != nil {
		return repoError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return repoError(c, err)
	}
	committed = true

	// Best effort; the membership is already durable.
	_ = queue_publisher.PublishInvitationRedeemed(context.Background(), queue.InvitationRedeemedEvent{
		InvitationID: inv.ID,
		VenueID:      inv.VenueID,
		VenueName:    inv.VenueName,
		UserID:       uid,
		UserEmail:    user.Email,
		RedeemedAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"venue_id":          inv.VenueID,
		"venue_name":        inv.VenueName,
		"already_connected": false,
	})
}
