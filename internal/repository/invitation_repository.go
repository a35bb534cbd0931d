package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
)

// InvitationRepo stores invitations. Redemption mutations run inside a
// caller-supplied transaction together with the membership insert, with
// the invitation row locked FOR UPDATE so concurrent redemptions of the
// same token serialize.
type InvitationRepo struct{ DB *sql.DB }

func NewInvitationRepo(db *sql.DB) *InvitationRepo { return &InvitationRepo{DB: db} }

// ErrInvitationNotFound is returned when an invitation lookup fails.
var ErrInvitationNotFound = errors.New("invitation not found")

const invitationCols = `i.id, i.venue_id, v.name, i.token, i.created_by_user_id,
	i.invitee_user_id, i.invitee_first_name, i.invitee_last_name, i.invitee_email,
	i.expires_at, i.max_uses, i.uses, i.revoked_at, i.status,
	i.connected_at, i.connected_user_id, i.created_at`

type rowScanner interface{ Scan(dest ...any) error }

func scanInvitation(row rowScanner) (model.Invitation, error) {
	var inv model.Invitation
	err := row.Scan(&inv.ID, &inv.VenueID, &inv.VenueName, &inv.Token, &inv.CreatedByUserID,
		&inv.InviteeUserID, &inv.InviteeFirstName, &inv.InviteeLastName, &inv.InviteeEmail,
		&inv.ExpiresAt, &inv.MaxUses, &inv.Uses, &inv.RevokedAt, &inv.Status,
		&inv.ConnectedAt, &inv.ConnectedUserID, &inv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return inv, ErrInvitationNotFound
	}
	return inv, err
}

// Create inserts an invitation and returns the stored row.
func (r *InvitationRepo) Create(ctx context.Context, inv model.Invitation) (model.Invitation, error) {
	var (
		inviteeUserID any
		expiresAt     any
	)
	if inv.InviteeUserID != nil {
		inviteeUserID = *inv.InviteeUserID
	}
	if inv.ExpiresAt != nil {
		expiresAt = *inv.ExpiresAt
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO invitations
		(venue_id, token, created_by_user_id, invitee_user_id, invitee_first_name, invitee_last_name, invitee_email, expires_at, max_uses, status)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		inv.VenueID, inv.Token, inv.CreatedByUserID, inviteeUserID,
		inv.InviteeFirstName, inv.InviteeLastName, inv.InviteeEmail,
		expiresAt, inv.MaxUses, string(model.InvitationPending))
	if err != nil {
		return model.Invitation{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Invitation{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one invitation.
func (r *InvitationRepo) GetByID(ctx context.Context, id uint64) (model.Invitation, error) {
	return scanInvitation(r.DB.QueryRowContext(ctx,
		"SELECT "+invitationCols+" FROM invitations i JOIN venues v ON v.id = i.venue_id WHERE i.id=? LIMIT 1", id))
}

// GetByToken fetches one invitation by its public token.
func (r *InvitationRepo) GetByToken(ctx context.Context, token string) (model.Invitation, error) {
	return scanInvitation(r.DB.QueryRowContext(ctx,
		"SELECT "+invitationCols+" FROM invitations i JOIN venues v ON v.id = i.venue_id WHERE i.token=? LIMIT 1", token))
}

// GetByTokenForUpdateTx fetches an invitation by token under a row lock
// so the redemption decision and its mutation see a stable row.
func (r *InvitationRepo) GetByTokenForUpdateTx(ctx context.Context, tx *sql.Tx, token string) (model.Invitation, error) {
	return scanInvitation(tx.QueryRowContext(ctx,
		"SELECT "+invitationCols+" FROM invitations i JOIN venues v ON v.id = i.venue_id WHERE i.token=? LIMIT 1 FOR UPDATE", token))
}

// ListByVenue returns a venue's invitations, newest first.
func (r *InvitationRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.Invitation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+invitationCols+" FROM invitations i JOIN venues v ON v.id = i.venue_id WHERE i.venue_id=? ORDER BY i.created_at DESC",
		venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := make([]model.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// applyInvitationUpdate merges a partial admin update into an
// invitation. Nil fields keep their current value; clearExpiry removes
// the expiry entirely, which an admin uses to reopen a timed-out
// invitation.
func applyInvitationUpdate(inv *model.Invitation, expiresAt *time.Time, clearExpiry bool, maxUses *uint32, inviteeEmail, inviteeFirstName, inviteeLastName *string) {
	if expiresAt != nil {
		inv.ExpiresAt = expiresAt
	}
	if clearExpiry {
		inv.ExpiresAt = nil
	}
	if maxUses != nil {
		inv.MaxUses = *maxUses
	}
	if inviteeEmail != nil {
		inv.InviteeEmail = *inviteeEmail
	}
	if inviteeFirstName != nil {
		inv.InviteeFirstName = *inviteeFirstName
	}
	if inviteeLastName != nil {
		inv.InviteeLastName = *inviteeLastName
	}
}

// Update applies a partial admin update. The row is read under FOR
// UPDATE and written in the same transaction, so two concurrent admin
// edits serialize instead of one silently overwriting the other with
// stale fields.
func (r *InvitationRepo) Update(ctx context.Context, id uint64, expiresAt *time.Time, clearExpiry bool, maxUses *uint32, inviteeEmail, inviteeFirstName, inviteeLastName *string) (model.Invitation, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Invitation{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	inv, err := scanInvitation(tx.QueryRowContext(ctx,
		"SELECT "+invitationCols+" FROM invitations i JOIN venues v ON v.id = i.venue_id WHERE i.id=? LIMIT 1 FOR UPDATE", id))
	if err != nil {
		return model.Invitation{}, err
	}
	applyInvitationUpdate(&inv, expiresAt, clearExpiry, maxUses, inviteeEmail, inviteeFirstName, inviteeLastName)

	var exp any
	if inv.ExpiresAt != nil {
		exp = *inv.ExpiresAt
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE invitations SET expires_at=?, max_uses=?, invitee_email=?, invitee_first_name=?, invitee_last_name=? WHERE id=?",
		exp, inv.MaxUses, inv.InviteeEmail, inv.InviteeFirstName, inv.InviteeLastName, id)
	if err != nil {
		return model.Invitation{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Invitation{}, err
	}
	committed = true
	return r.GetByID(ctx, id)
}

// Revoke stamps RevokedAt. Revoking twice is a no-op that keeps the
// original timestamp.
func (r *InvitationRepo) Revoke(ctx context.Context, id uint64) (model.Invitation, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Invitation{}, err
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE invitations SET revoked_at=NOW() WHERE id=? AND revoked_at IS NULL", id)
	if err != nil {
		return model.Invitation{}, err
	}
	return r.GetByID(ctx, id)
}

// MarkConnectedTx records a successful redemption: increments the use
// counter, flips the invitation into its CONNECTED state bound to the
// redeeming user and binds invitee_user_id if it was still open. Runs
// in the redemption transaction.
func (r *InvitationRepo) MarkConnectedTx(ctx context.Context, tx *sql.Tx, id, userID uint64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE invitations SET uses=uses+1, status=?, connected_at=NOW(), connected_user_id=?, invitee_user_id=COALESCE(invitee_user_id, ?) WHERE id=?",
		string(model.InvitationConnected), userID, userID, id)
	return err
}
