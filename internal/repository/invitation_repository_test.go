package repository

import (
	"testing"
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
)

func strPtr(s string) *string { return &s }

func TestApplyInvitationUpdate(t *testing.T) {
	expiry := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	newExpiry := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	maxUses := uint32(5)

	base := model.Invitation{
		ID:               1,
		VenueID:          2,
		Token:            "tok",
		InviteeEmail:     "old@example.com",
		InviteeFirstName: "Ada",
		InviteeLastName:  "Lovelace",
		ExpiresAt:        &expiry,
		MaxUses:          1,
	}

	t.Run("nil fields keep current values", func(t *testing.T) {
		inv := base
		applyInvitationUpdate(&inv, nil, false, nil, nil, nil, nil)
		if inv != base {
			t.Errorf("invitation changed: got %+v, want %+v", inv, base)
		}
	})

	t.Run("set fields replace current values", func(t *testing.T) {
		inv := base
		applyInvitationUpdate(&inv, &newExpiry, false, &maxUses, strPtr("new@example.com"), strPtr("Grace"), strPtr("Hopper"))
		if inv.ExpiresAt == nil || !inv.ExpiresAt.Equal(newExpiry) {
			t.Errorf("ExpiresAt = %v, want %v", inv.ExpiresAt, newExpiry)
		}
		if inv.MaxUses != maxUses {
			t.Errorf("MaxUses = %d, want %d", inv.MaxUses, maxUses)
		}
		if inv.InviteeEmail != "new@example.com" || inv.InviteeFirstName != "Grace" || inv.InviteeLastName != "Hopper" {
			t.Errorf("invitee = %q %q %q", inv.InviteeEmail, inv.InviteeFirstName, inv.InviteeLastName)
		}
	})

	t.Run("clear expiry reopens timed-out invitation", func(t *testing.T) {
		inv := base
		applyInvitationUpdate(&inv, nil, true, nil, nil, nil, nil)
		if inv.ExpiresAt != nil {
			t.Errorf("ExpiresAt = %v, want nil", inv.ExpiresAt)
		}
	})

	t.Run("clear expiry wins over a new expiry", func(t *testing.T) {
		inv := base
		applyInvitationUpdate(&inv, &newExpiry, true, nil, nil, nil, nil)
		if inv.ExpiresAt != nil {
			t.Errorf("ExpiresAt = %v, want nil", inv.ExpiresAt)
		}
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		inv := base
		applyInvitationUpdate(&inv, nil, false, &maxUses, nil, nil, nil)
		if inv.MaxUses != maxUses {
			t.Errorf("MaxUses = %d, want %d", inv.MaxUses, maxUses)
		}
		if inv.InviteeEmail != base.InviteeEmail || inv.ExpiresAt != base.ExpiresAt {
			t.Errorf("unrelated fields changed: %+v", inv)
		}
	})
}
