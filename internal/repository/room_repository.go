package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/schedule"
)

// RoomRepo provides CRUD access to rooms and their photo lists.
type RoomRepo struct{ DB *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{DB: db} }

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomNameExists is returned on a duplicate room name within a venue.
var ErrRoomNameExists = errors.New("room name already exists in this venue")

const roomCols = "id, venue_id, name, capacity, available_from, available_to, created_at, updated_at"

func scanRoom(row *sql.Row) (model.Room, error) {
	var rm model.Room
	err := row.Scan(&rm.ID, &rm.VenueID, &rm.Name, &rm.Capacity, &rm.AvailableFrom, &rm.AvailableTo, &rm.CreatedAt, &rm.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rm, ErrRoomNotFound
	}
	return rm, err
}

// Create inserts a room after normalizing its availability window and
// returns the stored row. The (venue_id, name) pair carries a unique
// index, so duplicate names surface as ErrRoomNameExists.
func (r *RoomRepo) Create(ctx context.Context, venueID uint64, name string, capacity uint32, availableFrom, availableTo string) (model.Room, error) {
	from, to := schedule.NormalizeAvailability(availableFrom, availableTo)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO rooms (venue_id, name, capacity, available_from, available_to) VALUES (?,?,?,?,?)",
		venueID, name, capacity, from, to)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Room{}, ErrRoomNameExists
		}
		return model.Room{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Room{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one room.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	return scanRoom(r.DB.QueryRowContext(ctx,
		"SELECT "+roomCols+" FROM rooms WHERE id=? LIMIT 1", id))
}

// ListByVenue returns all rooms of a venue ordered by name.
func (r *RoomRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+roomCols+" FROM rooms WHERE venue_id=? ORDER BY name", venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.VenueID, &rm.Name, &rm.Capacity, &rm.AvailableFrom, &rm.AvailableTo, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// Update applies a partial update to a room. Nil fields keep their
// current value. When either end of the availability window changes,
// the pair is re-normalized as a whole.
func (r *RoomRepo) Update(ctx context.Context, id uint64, name *string, capacity *uint32, availableFrom, availableTo *string) (model.Room, error) {
	rm, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Room{}, err
	}
	if name != nil {
		rm.Name = *name
	}
	if capacity != nil {
		rm.Capacity = *capacity
	}
	if availableFrom != nil {
		rm.AvailableFrom = *availableFrom
	}
	if availableTo != nil {
		rm.AvailableTo = *availableTo
	}
	rm.AvailableFrom, rm.AvailableTo = schedule.NormalizeAvailability(rm.AvailableFrom, rm.AvailableTo)
	_, err = r.DB.ExecContext(ctx,
		"UPDATE rooms SET name=?, capacity=?, available_from=?, available_to=? WHERE id=?",
		rm.Name, rm.Capacity, rm.AvailableFrom, rm.AvailableTo, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Room{}, ErrRoomNameExists
		}
		return model.Room{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a room together with its photos and bookings in one
// transaction, so a half-deleted room can never be observed.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM room_photos WHERE room_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE room_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM rooms WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListPhotos returns a room's photos in display order.
func (r *RoomRepo) ListPhotos(ctx context.Context, roomID uint64) ([]model.RoomPhoto, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, room_id, position, url FROM room_photos WHERE room_id=? ORDER BY position", roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]model.RoomPhoto, 0)
	for rows.Next() {
		var p model.RoomPhoto
		if err := rows.Scan(&p.ID, &p.RoomID, &p.Position, &p.URL); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// ReplacePhotos swaps a room's entire photo list for the given URLs in
// order. Delete-then-insert inside one transaction keeps positions dense
// and the cover photo at position 0.
func (r *RoomRepo) ReplacePhotos(ctx context.Context, roomID uint64, urls []string) ([]model.RoomPhoto, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM room_photos WHERE room_id=?", roomID); err != nil {
		return nil, err
	}
	for i, url := range urls {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO room_photos (room_id, position, url) VALUES (?,?,?)",
			roomID, i, url); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return r.ListPhotos(ctx, roomID)
}
