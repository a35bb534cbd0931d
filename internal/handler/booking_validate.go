package handler

import (
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/schedule"
)

// validateBookingRequest checks a proposed booking against the shape
// rules, the wall clock and the room's availability window before any
// database work. It returns a client-facing message and false when the
// request is rejected. The no-overlap check against existing bookings
// happens later, inside the creation transaction.
func validateBookingRequest(room model.Room, date, startTime, endTime string, now time.Time) (string, bool) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "booking_date must be YYYY-MM-DD", false
	}
	if startTime != schedule.NormalizeTime(startTime, "") {
		return "start_time must be HH:MM", false
	}
	if endTime != schedule.NormalizeTime(endTime, "") {
		return "end_time must be HH:MM", false
	}

	start := schedule.ToMinutes(startTime)
	end := schedule.ToMinutes(endTime)
	if start%schedule.StepMinutes != 0 || end%schedule.StepMinutes != 0 {
		return "times must align to the 15-minute grid", false
	}
	if start >= end {
		return "end_time must be after start_time", false
	}
	if start >= schedule.MinutesInDay {
		return "start_time must be before midnight", false
	}

	if startAt, err := schedule.CombineDateTime(date, startTime); err == nil && startAt.Before(now) {
		return "booking cannot start in the past", false
	}

	window := schedule.Range{
		Start: schedule.ToMinutes(room.AvailableFrom),
		End:   schedule.ToMinutes(room.AvailableTo),
	}
	if start < window.Start || end > window.End {
		return "requested slot is outside the room's available hours", false
	}
	return "", true
}
