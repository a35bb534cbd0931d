package model

import "time"

// BookingStatus is the persisted lifecycle state of a booking.  Only two
// values are ever stored: ACTIVE and CANCELLED.  "Completed" is a derived
// view state computed from the wall clock and never written to the
// database (see the schedule package).
type BookingStatus string

const (
	BookingActive    BookingStatus = "ACTIVE"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking reserves a half-open [StartTime, EndTime) interval on a room
// for one user on one calendar date.  Date is an ISO "YYYY-MM-DD" string
// and the times are "HH:MM" strings aligned to the 15-minute grid, with
// "24:00" allowed only as an end time.  Bookings never cross midnight.
//
// Invariant: for a given (RoomID, BookingDate) no two ACTIVE bookings
// overlap.  The repository enforces this inside the creation transaction.
//
// Fields:
//  ID          – primary key identifier.
//  RoomID      – booked room.
//  UserID      – user who made the booking.
//  BookingDate – calendar date of the reservation.
//  StartTime   – inclusive start, "HH:MM".
//  EndTime     – exclusive end, "HH:MM" or "24:00".
//  Status      – ACTIVE or CANCELLED; cancellation is terminal.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Booking struct {
	ID          uint64        // bookings.id
	RoomID      uint64        // bookings.room_id
	UserID      uint64        // bookings.user_id
	BookingDate string        // bookings.booking_date (DATE)
	StartTime   string        // bookings.start_time
	EndTime     string        // bookings.end_time
	Status      BookingStatus // bookings.status
	CreatedAt   time.Time     // bookings.created_at
	UpdatedAt   time.Time     // bookings.updated_at
}
