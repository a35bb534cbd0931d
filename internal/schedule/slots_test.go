package schedule

import (
	"reflect"
	"testing"

	"github.com/iliyamo/venue-booking/internal/model"
)

func TestOverlapsHalfOpenBoundary(t *testing.T) {
	// A booking ending at 10:00 abuts, but does not conflict with, one
	// starting at 10:00.
	if Overlaps(ToMinutes("09:00"), ToMinutes("10:00"), ToMinutes("10:00"), ToMinutes("11:00")) {
		t.Error("abutting intervals reported as overlapping")
	}
	if !Overlaps(ToMinutes("09:00"), ToMinutes("10:00"), ToMinutes("09:59"), ToMinutes("10:30")) {
		t.Error("intersecting intervals not reported as overlapping")
	}
}

func TestOverlapsSymmetry(t *testing.T) {
	intervals := []Range{
		{540, 630},  // 09:00–10:30
		{600, 660},  // 10:00–11:00
		{630, 660},  // 10:30–11:00
		{0, 1440},   // whole day
		{720, 735},   // one slot
		{1425, 1440}, // last slot
	}
	for _, a := range intervals {
		for _, b := range intervals {
			ab := Overlaps(a.Start, a.End, b.Start, b.End)
			ba := Overlaps(b.Start, b.End, a.Start, a.End)
			if ab != ba {
				t.Fatalf("Overlaps not symmetric for %v / %v", a, b)
			}
		}
	}
}

func TestBusyRangesSkipsCancelled(t *testing.T) {
	bookings := []model.Booking{
		{StartTime: "09:00", EndTime: "10:30", Status: model.BookingActive},
		{StartTime: "11:00", EndTime: "12:00", Status: model.BookingCancelled},
		{StartTime: "13:00", EndTime: "13:15", Status: model.BookingActive},
	}
	busy := BusyRanges(bookings)
	want := []Range{{540, 630}, {780, 795}}
	if !reflect.DeepEqual(busy, want) {
		t.Fatalf("BusyRanges = %v, want %v", busy, want)
	}
}

func TestIsSlotBusy(t *testing.T) {
	busy := []Range{{540, 630}} // 09:00–10:30
	cases := []struct {
		slot string
		want bool
	}{
		{"08:45", false},
		{"09:00", true},
		{"10:15", true},
		{"10:30", false}, // booking end is exclusive
		{"10:45", false},
	}
	for _, tc := range cases {
		if got := IsSlotBusy(busy, ToMinutes(tc.slot)); got != tc.want {
			t.Errorf("IsSlotBusy(%s) = %v, want %v", tc.slot, got, tc.want)
		}
	}
}

func TestAvailableEndMinutesBoundedByNextBusyRange(t *testing.T) {
	busy := []Range{{660, 720}} // 11:00–12:00
	ends := AvailableEndMinutes(busy, FullDay, ToMinutes("10:00"))
	// Contiguous run only: 10:15, 10:30, 10:45 and 11:00 (abutting end),
	// never past the 11:00 reservation.
	want := []int{615, 630, 645, 660}
	if !reflect.DeepEqual(ends, want) {
		t.Fatalf("AvailableEndMinutes = %v, want %v", ends, want)
	}
}

func TestAvailableEndMinutesReachesEndOfDay(t *testing.T) {
	ends := AvailableEndMinutes(nil, FullDay, ToMinutes("23:30"))
	want := []int{ToMinutes("23:45"), MinutesInDay}
	if !reflect.DeepEqual(ends, want) {
		t.Fatalf("AvailableEndMinutes = %v, want %v", ends, want)
	}
}

func TestAvailableStartMinutesExcludesDeadStarts(t *testing.T) {
	// 00:00–00:15 is free but immediately followed by a busy run is fine;
	// a start whose free run has no room for any end must be excluded.
	busy := []Range{{15, 60}} // 00:15–01:00
	starts := AvailableStartMinutes(busy, FullDay)
	if len(starts) == 0 {
		t.Fatal("expected available starts")
	}
	if starts[0] != 0 {
		t.Fatalf("expected 00:00 to remain selectable, first start = %s", ToTime(starts[0]))
	}
	for _, s := range starts {
		if IsSlotBusy(busy, s) {
			t.Fatalf("busy slot %s offered as start", ToTime(s))
		}
	}
}

func TestAvailableStartTimesWithinWindow(t *testing.T) {
	busy := []Range{{600, 660}} // 10:00–11:00
	window := Range{Start: ToMinutes("09:00"), End: ToMinutes("12:00")}
	starts := AvailableStartTimes(busy, window)
	want := []string{"09:00", "09:15", "09:30", "09:45", "11:00", "11:15", "11:30", "11:45"}
	if !reflect.DeepEqual(starts, want) {
		t.Fatalf("AvailableStartTimes = %v, want %v", starts, want)
	}
}

// Every advertised start must have at least one end for which the
// proposed interval passes the conflict guard.
func TestSlotAvailabilitySoundness(t *testing.T) {
	busy := []Range{{540, 630}, {780, 840}, {1380, 1440}}
	for _, start := range AvailableStartMinutes(busy, FullDay) {
		ends := AvailableEndMinutes(busy, FullDay, start)
		if len(ends) == 0 {
			t.Fatalf("start %s offered with no valid end", ToTime(start))
		}
		for _, end := range ends {
			if end <= start {
				t.Fatalf("end %s not after start %s", ToTime(end), ToTime(start))
			}
			if HasConflict(busy, start, end) {
				t.Fatalf("advertised interval %s–%s conflicts", ToTime(start), ToTime(end))
			}
		}
	}
}

// Simulates sequential creations against one room and date using the
// same guard the repository runs: no accepted pair of ACTIVE intervals
// may ever overlap, and a conflicting request never mutates state.
func TestNoDoubleBookInvariant(t *testing.T) {
	requests := []struct {
		start, end string
		accepted   bool
	}{
		{"09:00", "10:30", true},
		{"10:00", "11:00", false}, // overlaps the first booking
		{"10:30", "11:00", true},  // abuts, does not overlap
		{"10:45", "11:15", false},
		{"23:00", "24:00", true},
		{"23:45", "24:00", false},
	}
	var busy []Range
	for _, req := range requests {
		start, end := ToMinutes(req.start), ToMinutes(req.end)
		if HasConflict(busy, start, end) {
			if req.accepted {
				t.Fatalf("request %s–%s unexpectedly rejected", req.start, req.end)
			}
			continue
		}
		if !req.accepted {
			t.Fatalf("request %s–%s unexpectedly accepted", req.start, req.end)
		}
		busy = append(busy, Range{Start: start, End: end})
	}
	for i := range busy {
		for j := i + 1; j < len(busy); j++ {
			if Overlaps(busy[i].Start, busy[i].End, busy[j].Start, busy[j].End) {
				t.Fatalf("accepted bookings %v and %v overlap", busy[i], busy[j])
			}
		}
	}
}
