package model

import "time"

// Room is a bookable unit inside a venue.  Every booking references a
// room.  AvailableFrom/AvailableTo bound the daily window in which slots
// may be booked; both are wall-clock "HH:MM" strings where "24:00" is the
// end-of-day sentinel.  The window is normalized on write so that an
// inverted or zero-length window falls back to the full day.
//
// Fields:
//  ID            – primary key identifier.
//  VenueID       – containing venue.
//  Name          – room name, unique per venue.
//  Capacity      – seat/person capacity, always > 0.
//  AvailableFrom – start of the bookable window ("00:00" default).
//  AvailableTo   – end of the bookable window ("24:00" default).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Room struct {
	ID            uint64    // rooms.id
	VenueID       uint64    // rooms.venue_id
	Name          string    // rooms.name
	Capacity      uint32    // rooms.capacity
	AvailableFrom string    // rooms.available_from
	AvailableTo   string    // rooms.available_to
	CreatedAt     time.Time // rooms.created_at
	UpdatedAt     time.Time // rooms.updated_at
}

// RoomPhoto is one entry of a room's ordered photo list.  Position 0 is
// the cover photo.  Only the storable URL is kept; upload and resizing
// happen outside this service.
type RoomPhoto struct {
	ID       uint64 // room_photos.id
	RoomID   uint64 // room_photos.room_id
	Position uint32 // room_photos.position
	URL      string // room_photos.url
}
