package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/venue-booking/internal/model"
)

// MembershipRepo stores venue memberships. Creation is idempotent: the
// (venue_id, user_id) pair is unique and duplicate-key errors are
// swallowed, so redeeming an invitation twice or adding an existing
// member is harmless.
type MembershipRepo struct{ DB *sql.DB }

func NewMembershipRepo(db *sql.DB) *MembershipRepo { return &MembershipRepo{DB: db} }

// ErrMembershipNotFound is returned when a membership lookup fails.
var ErrMembershipNotFound = errors.New("membership not found")

// MemberInfo pairs a membership with the member's display fields for
// the admin member list.
type MemberInfo struct {
	Membership model.Membership
	Email      string
	FirstName  *string
	LastName   *string
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func ensureMembership(ctx context.Context, ex execer, venueID, userID uint64, role model.MembershipRole, invitationID *uint64) error {
	var invID any
	if invitationID != nil {
		invID = *invitationID
	}
	_, err := ex.ExecContext(ctx,
		"INSERT INTO memberships (venue_id, user_id, role, invitation_id) VALUES (?,?,?,?)",
		venueID, userID, string(role), invID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return nil
	}
	return err
}

// Ensure creates the membership if it does not already exist.
func (r *MembershipRepo) Ensure(ctx context.Context, venueID, userID uint64, role model.MembershipRole, invitationID *uint64) error {
	return ensureMembership(ctx, r.DB, venueID, userID, role, invitationID)
}

// EnsureTx is Ensure inside a caller-supplied transaction, used by
// invitation redemption so the membership and the invitation state
// change commit together.
func (r *MembershipRepo) EnsureTx(ctx context.Context, tx *sql.Tx, venueID, userID uint64, role model.MembershipRole, invitationID *uint64) error {
	return ensureMembership(ctx, tx, venueID, userID, role, invitationID)
}

// Get fetches the membership of a user in a venue.
func (r *MembershipRepo) Get(ctx context.Context, venueID, userID uint64) (model.Membership, error) {
	var m model.Membership
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, venue_id, user_id, role, invitation_id, joined_at FROM memberships WHERE venue_id=? AND user_id=? LIMIT 1",
		venueID, userID).Scan(&m.ID, &m.VenueID, &m.UserID, &m.Role, &m.InvitationID, &m.JoinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrMembershipNotFound
	}
	return m, err
}

// ListByVenue returns all members of a venue with their user display
// fields, ordered by join time.
func (r *MembershipRepo) ListByVenue(ctx context.Context, venueID uint64) ([]MemberInfo, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.id, m.venue_id, m.user_id, m.role, m.invitation_id, m.joined_at,
		       u.email, u.first_name, u.last_name
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.venue_id = ?
		ORDER BY m.joined_at`, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]MemberInfo, 0)
	for rows.Next() {
		var mi MemberInfo
		if err := rows.Scan(&mi.Membership.ID, &mi.Membership.VenueID, &mi.Membership.UserID,
			&mi.Membership.Role, &mi.Membership.InvitationID, &mi.Membership.JoinedAt,
			&mi.Email, &mi.FirstName, &mi.LastName); err != nil {
			return nil, err
		}
		members = append(members, mi)
	}
	return members, rows.Err()
}

// ListByUser returns every membership a user holds.
func (r *MembershipRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Membership, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, venue_id, user_id, role, invitation_id, joined_at FROM memberships WHERE user_id=? ORDER BY joined_at",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memberships := make([]model.Membership, 0)
	for rows.Next() {
		var m model.Membership
		if err := rows.Scan(&m.ID, &m.VenueID, &m.UserID, &m.Role, &m.InvitationID, &m.JoinedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

// HasAccess reports whether the user may browse the venue, either as a
// member or as the owning admin.
func (r *MembershipRepo) HasAccess(ctx context.Context, venueID, userID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, `
		SELECT 1 FROM memberships WHERE venue_id=? AND user_id=?
		UNION SELECT 1 FROM venues WHERE id=? AND admin_id=?
		LIMIT 1`, venueID, userID, venueID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
