package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/schedule"
)

// BookingRepo stores bookings and enforces the no-overlap invariant.
// Creation runs inside a caller-supplied transaction: the handler opens
// the transaction, the repo locks the room's bookings for the date with
// SELECT ... FOR UPDATE, checks the proposed interval against them and
// inserts only when it is free. Two concurrent requests for the same
// slot therefore serialize on the row locks and the loser gets
// ErrSlotTaken instead of a double booking.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

const bookingCols = "id, room_id, user_id, DATE_FORMAT(booking_date,'%Y-%m-%d'), start_time, end_time, status, created_at, updated_at"

func scanBooking(row *sql.Row) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.RoomID, &b.UserID, &b.BookingDate, &b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrBookingNotFound
	}
	return b, err
}

func collectBookings(rows *sql.Rows) ([]model.Booking, error) {
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.RoomID, &b.UserID, &b.BookingDate, &b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// ListActiveByRoomAndDateTx loads the active bookings for a room and
// date under row locks, so they cannot change until the transaction
// ends.
func (r *BookingRepo) ListActiveByRoomAndDateTx(ctx context.Context, tx *sql.Tx, roomID uint64, date string) ([]model.Booking, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE room_id=? AND booking_date=? AND status=? FOR UPDATE",
		roomID, date, string(model.BookingActive))
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// CreateTx inserts a booking if its interval is free, returning the new
// booking id. Must run in the same transaction that locked the
// existing bookings.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, roomID, userID uint64, date, startTime, endTime string, existing []model.Booking) (uint64, error) {
	if schedule.HasConflict(schedule.BusyRanges(existing), schedule.ToMinutes(startTime), schedule.ToMinutes(endTime)) {
		return 0, ErrSlotTaken
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO bookings (room_id, user_id, booking_date, start_time, end_time, status) VALUES (?,?,?,?,?,?)",
		roomID, userID, date, startTime, endTime, string(model.BookingActive))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches one booking.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	return scanBooking(r.DB.QueryRowContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE id=? LIMIT 1", id))
}

// ListActiveByRoomAndDate returns the active bookings of a room on one
// date, ordered by start time. Used for the availability views where no
// locking is needed.
func (r *BookingRepo) ListActiveByRoomAndDate(ctx context.Context, roomID uint64, date string) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE room_id=? AND booking_date=? AND status=? ORDER BY start_time",
		roomID, date, string(model.BookingActive))
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// ListByUser returns every booking the user has made, newest date first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE user_id=? ORDER BY booking_date DESC, start_time DESC",
		userID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// ListByVenue returns every booking across all of a venue's rooms,
// newest date first. Admin view.
func (r *BookingRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.id, b.room_id, b.user_id, DATE_FORMAT(b.booking_date,'%Y-%m-%d'), b.start_time, b.end_time, b.status, b.created_at, b.updated_at
		FROM bookings b
		JOIN rooms rm ON rm.id = b.room_id
		WHERE rm.venue_id = ?
		ORDER BY b.booking_date DESC, b.start_time DESC`, venueID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// canCancel is the cancellation policy: the owner may cancel their own
// ACTIVE booking as long as it has not ended yet; force (the admin
// path) skips the ownership and time checks but never resurrects a
// cancelled booking.
func canCancel(b model.Booking, userID uint64, force bool, now time.Time) error {
	if !force && b.UserID != userID {
		return ErrForbidden
	}
	if b.Status != model.BookingActive {
		return ErrConflict
	}
	if !force {
		if endAt, err := schedule.CombineDateTime(b.BookingDate, b.EndTime); err == nil && !endAt.After(now) {
			return ErrConflict
		}
	}
	return nil
}

// Cancel flips an ACTIVE booking to CANCELLED, subject to canCancel.
func (r *BookingRepo) Cancel(ctx context.Context, id, userID uint64, force bool) (model.Booking, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if err := canCancel(b, userID, force, time.Now().UTC()); err != nil {
		return model.Booking{}, err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=? AND status=?",
		string(model.BookingCancelled), id, string(model.BookingActive))
	if err != nil {
		return model.Booking{}, err
	}
	return r.GetByID(ctx, id)
}
