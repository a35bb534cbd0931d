package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-booking/internal/model"
)

// VenueRepo provides CRUD access to venues.
type VenueRepo struct{ DB *sql.DB }

func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{DB: db} }

// ErrVenueNotFound is returned when a venue lookup fails.
var ErrVenueNotFound = errors.New("venue not found")

// ErrVenueExists is returned when an admin who already owns a venue
// tries to create another one. The one-venue-per-admin rule lives in
// the application, so the check happens here rather than in a unique
// index.
var ErrVenueExists = errors.New("admin already owns a venue")

const venueCols = "id, admin_id, name, description, address, created_at, updated_at"

func scanVenue(row *sql.Row) (model.Venue, error) {
	var v model.Venue
	err := row.Scan(&v.ID, &v.AdminID, &v.Name, &v.Description, &v.Address, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return v, ErrVenueNotFound
	}
	return v, err
}

// Create inserts a venue for the admin and returns the stored row with
// database-assigned id and timestamps.
func (r *VenueRepo) Create(ctx context.Context, adminID uint64, name, description, address string) (model.Venue, error) {
	if _, err := r.GetByAdminID(ctx, adminID); err == nil {
		return model.Venue{}, ErrVenueExists
	} else if !errors.Is(err, ErrVenueNotFound) {
		return model.Venue{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO venues (admin_id, name, description, address) VALUES (?,?,?,?)",
		adminID, name, description, address)
	if err != nil {
		return model.Venue{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Venue{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one venue.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (model.Venue, error) {
	return scanVenue(r.DB.QueryRowContext(ctx,
		"SELECT "+venueCols+" FROM venues WHERE id=? LIMIT 1", id))
}

// GetByAdminID fetches the venue owned by an admin, if any.
func (r *VenueRepo) GetByAdminID(ctx context.Context, adminID uint64) (model.Venue, error) {
	return scanVenue(r.DB.QueryRowContext(ctx,
		"SELECT "+venueCols+" FROM venues WHERE admin_id=? LIMIT 1", adminID))
}

// ListForMember returns the venues the user can browse, meaning every
// venue where they hold a membership plus any venue they administer.
func (r *VenueRepo) ListForMember(ctx context.Context, userID uint64) ([]model.Venue, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DISTINCT v.id, v.admin_id, v.name, v.description, v.address, v.created_at, v.updated_at
		FROM venues v
		LEFT JOIN memberships m ON m.venue_id = v.id
		WHERE m.user_id = ? OR v.admin_id = ?
		ORDER BY v.name`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]model.Venue, 0)
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.AdminID, &v.Name, &v.Description, &v.Address, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// Update applies a partial update. Nil fields keep their current value.
// Only the owning admin may update; ownership is verified here so the
// check and the write cannot disagree.
func (r *VenueRepo) Update(ctx context.Context, id, adminID uint64, name, description, address *string) (model.Venue, error) {
	v, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Venue{}, err
	}
	if v.AdminID != adminID {
		return model.Venue{}, ErrForbidden
	}
	if name != nil {
		v.Name = *name
	}
	if description != nil {
		v.Description = *description
	}
	if address != nil {
		v.Address = *address
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE venues SET name=?, description=?, address=? WHERE id=?",
		v.Name, v.Description, v.Address, id)
	if err != nil {
		return model.Venue{}, err
	}
	return r.GetByID(ctx, id)
}
