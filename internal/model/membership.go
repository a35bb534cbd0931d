package model

import "time"

// MembershipRole distinguishes ordinary members from managers inside a
// venue.  Venue admins are not members: they are authorized through
// venue ownership and never hold a membership row.
type MembershipRole string

const (
	MembershipMember  MembershipRole = "MEMBER"
	MembershipManager MembershipRole = "MANAGER"
)

// Membership grants a non-admin user access to a venue's rooms.  At most
// one membership exists per (VenueID, UserID) pair; creation is
// idempotent and duplicate-key races are swallowed.  A membership may
// record the invitation that produced it.
//
// Fields:
//  ID           – primary key identifier.
//  VenueID      – venue the user belongs to.
//  UserID       – the member.
//  Role         – MEMBER or MANAGER.
//  InvitationID – invitation that granted access (null for direct grants).
//  JoinedAt     – when the membership was created.
type Membership struct {
	ID           uint64         // memberships.id
	VenueID      uint64         // memberships.venue_id
	UserID       uint64         // memberships.user_id
	Role         MembershipRole // memberships.role
	InvitationID *uint64        // memberships.invitation_id (nullable)
	JoinedAt     time.Time      // memberships.joined_at
}
