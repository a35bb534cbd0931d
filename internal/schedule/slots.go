package schedule

import "github.com/iliyamo/venue-booking/internal/model"

// Range is a half-open [Start, End) interval in minutes since midnight.
type Range struct {
	Start int
	End   int
}

// FullDay spans the whole bookable day.  It is the window used when a
// room has no configured availability restriction.
var FullDay = Range{Start: 0, End: MinutesInDay}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.  A booking ending at 10:00 does not conflict
// with one starting at 10:00.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// BusyRanges maps the ACTIVE bookings of one (room, date) onto busy
// intervals.  Cancelled bookings do not occupy their slot.
func BusyRanges(bookings []model.Booking) []Range {
	busy := make([]Range, 0, len(bookings))
	for _, b := range bookings {
		if b.Status != model.BookingActive {
			continue
		}
		busy = append(busy, Range{Start: ToMinutes(b.StartTime), End: ToMinutes(b.EndTime)})
	}
	return busy
}

// HasConflict reports whether a proposed [start, end) interval overlaps
// any busy range.  This is the authoritative test the repository runs
// before committing a booking.
func HasConflict(busy []Range, start, end int) bool {
	for _, r := range busy {
		if Overlaps(start, end, r.Start, r.End) {
			return true
		}
	}
	return false
}

// IsSlotBusy reports whether the 15-minute slot beginning at slotStart
// intersects any busy range.
func IsSlotBusy(busy []Range, slotStart int) bool {
	for _, r := range busy {
		if slotStart < r.End && slotStart+StepMinutes > r.Start {
			return true
		}
	}
	return false
}

// nextBusyStartAfter returns the nearest busy-range start strictly after
// the given minute, or limit when none exists before it.
func nextBusyStartAfter(busy []Range, minute, limit int) int {
	nearest := limit
	for _, r := range busy {
		if r.Start > minute && r.Start < nearest {
			nearest = r.Start
		}
	}
	return nearest
}

// AvailableEndMinutes lists every valid end minute for a booking that
// starts at startMinute inside window.  The run of selectable ends is
// contiguous: it stops at the next busy-range start (a booking may abut
// but never span an existing reservation) or at the window end.
func AvailableEndMinutes(busy []Range, window Range, startMinute int) []int {
	bound := nextBusyStartAfter(busy, startMinute, window.End)
	var ends []int
	for minute := startMinute + StepMinutes; minute <= bound; minute += StepMinutes {
		ends = append(ends, minute)
	}
	return ends
}

// AvailableStartMinutes lists every grid-aligned start minute inside
// window that is not busy and has at least one valid end time.  A free
// slot immediately followed by a busy one with no room for a
// minimum-length booking is excluded.
func AvailableStartMinutes(busy []Range, window Range) []int {
	var starts []int
	for minute := window.Start; minute+StepMinutes <= window.End; minute += StepMinutes {
		if IsSlotBusy(busy, minute) {
			continue
		}
		if len(AvailableEndMinutes(busy, window, minute)) == 0 {
			continue
		}
		starts = append(starts, minute)
	}
	return starts
}

// AvailableStartTimes is AvailableStartMinutes rendered as "HH:MM"
// strings for API responses.
func AvailableStartTimes(busy []Range, window Range) []string {
	minutes := AvailableStartMinutes(busy, window)
	times := make([]string, 0, len(minutes))
	for _, m := range minutes {
		times = append(times, ToTime(m))
	}
	return times
}
