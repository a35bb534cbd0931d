package handler

import (
	"testing"
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
)

func TestValidateBookingRequest(t *testing.T) {
	fullDay := model.Room{AvailableFrom: "00:00", AvailableTo: "24:00"}
	business := model.Room{AvailableFrom: "09:00", AvailableTo: "18:00"}
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		room  model.Room
		date  string
		start string
		end   string
		ok    bool
	}{
		{"simple slot", fullDay, "2025-06-01", "09:00", "10:30", true},
		{"last slot of the day", fullDay, "2025-06-01", "23:45", "24:00", true},
		{"within business window", business, "2025-06-01", "09:00", "18:00", true},
		{"future date", fullDay, "2025-06-02", "00:00", "00:15", true},
		{"start exactly now", fullDay, "2025-06-01", "08:00", "09:00", true},
		{"bad date", fullDay, "06/01/2025", "09:00", "10:00", false},
		{"missing date", fullDay, "", "09:00", "10:00", false},
		{"unpadded time", fullDay, "2025-06-01", "9:00", "10:00", false},
		{"off-grid start", fullDay, "2025-06-01", "09:10", "10:00", false},
		{"off-grid end", fullDay, "2025-06-01", "09:00", "10:05", false},
		{"zero length", fullDay, "2025-06-01", "10:00", "10:00", false},
		{"inverted", fullDay, "2025-06-01", "11:00", "10:00", false},
		{"start at midnight sentinel", fullDay, "2025-06-01", "24:00", "24:00", false},
		{"past date", fullDay, "2020-01-01", "09:00", "10:00", false},
		{"yesterday", fullDay, "2025-05-31", "09:00", "10:00", false},
		{"earlier today", fullDay, "2025-06-01", "07:00", "08:00", false},
		{"before window opens", business, "2025-06-01", "08:00", "09:00", false},
		{"past window close", business, "2025-06-01", "17:30", "18:15", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, ok := validateBookingRequest(tc.room, tc.date, tc.start, tc.end, now)
			if ok != tc.ok {
				t.Fatalf("ok = %v (msg %q), want %v", ok, msg, tc.ok)
			}
			if !ok && msg == "" {
				t.Fatal("rejection carried no message")
			}
		})
	}
}
