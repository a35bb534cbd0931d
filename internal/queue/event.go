// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// Queue names used by the publisher and consumer. The routing key equals
// the queue name because everything goes through the default exchange.
const (
	BookingCreatedQueue     = "booking.created"
	BookingCancelledQueue   = "booking.cancelled"
	InvitationRedeemedQueue = "invitation.redeemed"
)

// BookingCreatedEvent is published when a booking is successfully
// created. It carries enough denormalized context for downstream
// consumers to log or notify without querying the primary database.
type BookingCreatedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	RoomID      uint64 `json:"room_id"`
	RoomName    string `json:"room_name"`
	VenueID     uint64 `json:"venue_id"`
	VenueName   string `json:"venue_name"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	CreatedAt   string `json:"created_at"`
}

// BookingCancelledEvent is published when an active booking is
// cancelled, by its owner or by the venue admin.
type BookingCancelledEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	RoomID      uint64 `json:"room_id"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	CancelledBy uint64 `json:"cancelled_by"`
	CancelledAt string `json:"cancelled_at"`
}

// InvitationRedeemedEvent is published on the first successful
// redemption of an invitation, when the membership is created.
type InvitationRedeemedEvent struct {
	InvitationID uint64 `json:"invitation_id"`
	VenueID      uint64 `json:"venue_id"`
	VenueName    string `json:"venue_name"`
	UserID       uint64 `json:"user_id"`
	UserEmail    string `json:"user_email"`
	RedeemedAt   string `json:"redeemed_at"`
}
