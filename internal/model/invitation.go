package model

import "time"

// InvitationStatus tracks whether an invitation has been redeemed.
// PENDING is the initial state; CONNECTED is set by the first successful
// redemption and is terminal.  Revocation and expiry are orthogonal
// conditions recorded in RevokedAt/ExpiresAt, not in the status.
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "PENDING"
	InvitationConnected InvitationStatus = "CONNECTED"
)

// Invitation is a tokenized, single/limited-use grant of venue
// membership.  The token is the lookup key for the public invite link
// ({origin}/invite/{token}) and is a 64-character hex string drawn from
// crypto/rand.  Invitations are never deleted; admins revoke them or
// adjust ExpiresAt/MaxUses instead.
//
// Fields:
//  ID              – primary key identifier.
//  VenueID         – venue the invitation grants access to.
//  VenueName       – venue name joined in on read for the invite page.
//  Token           – unique opaque redemption token.
//  CreatedByUserID – admin who issued the invitation.
//  InviteeUserID   – bound target user; nil until bound at redemption.
//  InviteeFirstName/InviteeLastName – display name of the invitee.
//  InviteeEmail    – normalized (trimmed, lowercased) target email.
//  ExpiresAt       – optional expiry; nil means no time limit.
//  MaxUses         – maximum number of redemptions (default 1).
//  Uses            – redemptions performed so far.
//  RevokedAt       – set when an admin revokes; nil otherwise.
//  Status          – PENDING or CONNECTED.
//  ConnectedAt     – when the first successful redemption happened.
//  ConnectedUserID – user who redeemed the invitation.
//  CreatedAt       – creation timestamp.
type Invitation struct {
	ID               uint64           // invitations.id
	VenueID          uint64           // invitations.venue_id
	VenueName        string           // venues.name (joined on read)
	Token            string           // invitations.token
	CreatedByUserID  uint64           // invitations.created_by_user_id
	InviteeUserID    *uint64          // invitations.invitee_user_id (nullable)
	InviteeFirstName string           // invitations.invitee_first_name
	InviteeLastName  string           // invitations.invitee_last_name
	InviteeEmail     string           // invitations.invitee_email
	ExpiresAt        *time.Time       // invitations.expires_at (nullable)
	MaxUses          uint32           // invitations.max_uses
	Uses             uint32           // invitations.uses
	RevokedAt        *time.Time       // invitations.revoked_at (nullable)
	Status           InvitationStatus // invitations.status
	ConnectedAt      *time.Time       // invitations.connected_at (nullable)
	ConnectedUserID  *uint64          // invitations.connected_user_id (nullable)
	CreatedAt        time.Time        // invitations.created_at
}
