package schedule

import (
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
)

// ViewStatus is the derived display state of a booking.  Only cancelled
// is ever persisted; active versus completed depends on the wall clock
// and must be recomputed on every read.
type ViewStatus string

const (
	ViewActive    ViewStatus = "active"
	ViewCompleted ViewStatus = "completed"
	ViewCancelled ViewStatus = "cancelled"
)

// BookingViewStatus derives the display state of a booking at the given
// instant.  A stored CANCELLED status is terminal and wins regardless of
// time.  Otherwise the booking is completed once its end instant has
// passed.  An unparseable date/time pair fails open to active so that a
// corrupt row never breaks a listing.
func BookingViewStatus(status model.BookingStatus, bookingDate, endTime string, now time.Time) ViewStatus {
	if status == model.BookingCancelled {
		return ViewCancelled
	}
	endAt, err := CombineDateTime(bookingDate, endTime)
	if err != nil {
		return ViewActive
	}
	if !endAt.After(now) {
		return ViewCompleted
	}
	return ViewActive
}
