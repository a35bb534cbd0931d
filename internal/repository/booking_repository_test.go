package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
)

func TestCanCancel(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	active := model.Booking{
		ID: 1, UserID: 42, RoomID: 3,
		BookingDate: "2025-06-02", StartTime: "09:00", EndTime: "10:00",
		Status: model.BookingActive,
	}

	cases := []struct {
		name   string
		mut    func(*model.Booking)
		userID uint64
		force  bool
		want   error
	}{
		{"owner cancels future booking", func(b *model.Booking) {}, 42, false, nil},
		{"other user rejected", func(b *model.Booking) {}, 9, false, ErrForbidden},
		{"already cancelled", func(b *model.Booking) { b.Status = model.BookingCancelled }, 42, false, ErrConflict},
		{"ended booking not cancellable", func(b *model.Booking) {
			b.BookingDate = "2025-06-01"
			b.StartTime = "09:00"
			b.EndTime = "10:00"
		}, 42, false, ErrConflict},
		{"end exactly now not cancellable", func(b *model.Booking) {
			b.BookingDate = "2025-06-01"
			b.StartTime = "11:00"
			b.EndTime = "12:00"
		}, 42, false, ErrConflict},
		{"in-progress booking cancellable", func(b *model.Booking) {
			b.BookingDate = "2025-06-01"
			b.StartTime = "11:00"
			b.EndTime = "13:00"
		}, 42, false, nil},
		{"force skips ownership and time", func(b *model.Booking) {
			b.BookingDate = "2025-06-01"
			b.StartTime = "09:00"
			b.EndTime = "10:00"
		}, 9, true, nil},
		{"force never revives cancelled", func(b *model.Booking) { b.Status = model.BookingCancelled }, 9, true, ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := active
			tc.mut(&b)
			if got := canCancel(b, tc.userID, tc.force, now); !errors.Is(got, tc.want) {
				t.Errorf("canCancel = %v, want %v", got, tc.want)
			}
		})
	}
}
