package schedule

import (
	"testing"
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
)

func TestBookingViewStatus(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		status   model.BookingStatus
		date     string
		endTime  string
		want     ViewStatus
	}{
		{"cancelled wins over time", model.BookingCancelled, "2020-01-01", "10:00", ViewCancelled},
		{"cancelled wins in the future too", model.BookingCancelled, "2030-01-01", "10:00", ViewCancelled},
		{"past booking completed", model.BookingActive, "2020-01-01", "10:00", ViewCompleted},
		{"future booking active", model.BookingActive, "2030-01-01", "10:00", ViewActive},
		{"end exactly now is completed", model.BookingActive, "2025-01-01", "12:00", ViewCompleted},
		{"end one minute later still active", model.BookingActive, "2025-01-01", "12:01", ViewActive},
		{"end of day sentinel", model.BookingActive, "2024-12-31", "24:00", ViewCompleted},
		{"unparseable fails open to active", model.BookingActive, "garbage", "10:00", ViewActive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BookingViewStatus(tc.status, tc.date, tc.endTime, now); got != tc.want {
				t.Errorf("BookingViewStatus(%s, %s, %s) = %s, want %s",
					tc.status, tc.date, tc.endTime, got, tc.want)
			}
		})
	}
}

// The resolver is a pure function of its inputs: repeated evaluation with
// the same arguments must yield identical results.
func TestBookingViewStatusDeterminism(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	first := BookingViewStatus(model.BookingActive, "2025-06-15", "09:00", now)
	second := BookingViewStatus(model.BookingActive, "2025-06-15", "09:00", now)
	if first != second {
		t.Fatalf("resolver not deterministic: %s then %s", first, second)
	}
	if first != ViewCompleted {
		t.Fatalf("expected completed, got %s", first)
	}
}
