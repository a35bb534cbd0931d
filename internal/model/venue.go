package model

import "time"

// Venue represents a bookable location owned by exactly one admin user.
// A venue contains rooms, memberships and invitations.  The application
// enforces that an admin owns at most one venue; the schema does not.
//
// Fields:
//  ID          – primary key identifier.
//  AdminID     – users.id of the owning admin.
//  Name        – human-friendly venue name.
//  Description – optional free-text description.
//  Address     – postal address shown to members.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Venue struct {
	ID          uint64    // venues.id
	AdminID     uint64    // venues.admin_id
	Name        string    // venues.name
	Description string    // venues.description
	Address     string    // venues.address
	CreatedAt   time.Time // venues.created_at
	UpdatedAt   time.Time // venues.updated_at
}
