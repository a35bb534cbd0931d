// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrSlotTaken signals that a proposed booking
// interval overlaps an existing active booking for the same room
// and date.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own or are not a member of. Handlers
// should translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as cancelling a booking that is already
// cancelled when the caller required an active one. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrSlotTaken is returned by the booking conflict guard when the
// proposed interval overlaps an existing active booking. It is kept
// distinct from ErrConflict so the UI can prompt the user to pick a
// different slot rather than suggest a generic retry.
var ErrSlotTaken = errors.New("room is already booked for this time")
