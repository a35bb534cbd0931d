package invite

import (
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
)

func u64(v uint64) *uint64 { return &v }

func pendingInvitation() model.Invitation {
	return model.Invitation{
		ID:           7,
		VenueID:      3,
		VenueName:    "Loft on Main",
		Token:        "abc123",
		InviteeEmail: "guest@example.com",
		MaxUses:      1,
		Uses:         0,
		Status:       model.InvitationPending,
	}
}

func TestNewToken(t *testing.T) {
	a, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if len(a) != 64 {
		t.Fatalf("token length = %d, want 64 hex chars", len(a))
	}
	b, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if a == b {
		t.Fatal("two generated tokens collided")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Guest@Example.COM "); got != "guest@example.com" {
		t.Fatalf("NormalizeEmail = %q", got)
	}
}

func TestValidateOrder(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	cases := []struct {
		name string
		mut  func(*model.Invitation)
		want error
	}{
		{"fresh invitation valid", func(inv *model.Invitation) {}, nil},
		{"revoked", func(inv *model.Invitation) { inv.RevokedAt = &past }, ErrRevoked},
		{"expired", func(inv *model.Invitation) { inv.ExpiresAt = &past }, ErrExpired},
		{"expiring exactly now", func(inv *model.Invitation) { t := now; inv.ExpiresAt = &t }, ErrExpired},
		{"exhausted", func(inv *model.Invitation) { inv.Uses = 1 }, ErrExhausted},
		{"revoked wins over expired", func(inv *model.Invitation) {
			inv.RevokedAt = &past
			inv.ExpiresAt = &past
			inv.Uses = 5
		}, ErrRevoked},
		{"expired wins over exhausted", func(inv *model.Invitation) {
			inv.ExpiresAt = &past
			inv.Uses = 5
		}, ErrExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := pendingInvitation()
			tc.mut(&inv)
			if got := Validate(&inv, now); !errors.Is(got, tc.want) {
				t.Errorf("Validate = %v, want %v", got, tc.want)
			}
		})
	}
}

// Scenario from the admin workflow: one fresh single-use invitation is
// valid, becomes exhausted after its redemption is recorded, and an
// expired invitation is rejected even with uses remaining.
func TestValidateLifecycle(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	inv := pendingInvitation()
	if err := Validate(&inv, now); err != nil {
		t.Fatalf("fresh invitation invalid: %v", err)
	}
	inv.Uses = 1
	if err := Validate(&inv, now); !errors.Is(err, ErrExhausted) {
		t.Fatalf("used-up invitation: got %v, want %v", err, ErrExhausted)
	}

	expired := pendingInvitation()
	exp := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	expired.ExpiresAt = &exp
	if err := Validate(&expired, now); !errors.Is(err, ErrExpired) {
		t.Fatalf("expired invitation: got %v, want %v", err, ErrExpired)
	}
}

func TestEvaluateRedeem(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	connectedAt := now.Add(-time.Hour)

	cases := []struct {
		name        string
		mut         func(*model.Invitation)
		userID      uint64
		email       string
		wantAlready bool
		wantErr     error
	}{
		{
			name:   "fresh redemption proceeds",
			mut:    func(inv *model.Invitation) {},
			userID: 42, email: "guest@example.com",
		},
		{
			name:   "email compared after normalization",
			mut:    func(inv *model.Invitation) {},
			userID: 42, email: "  GUEST@Example.com ",
		},
		{
			name:   "missing caller email skips the check",
			mut:    func(inv *model.Invitation) {},
			userID: 42, email: "",
		},
		{
			name:    "wrong email rejected",
			mut:     func(inv *model.Invitation) {},
			userID:  42, email: "other@example.com",
			wantErr: ErrWrongEmail,
		},
		{
			name:    "bound to another user",
			mut:     func(inv *model.Invitation) { inv.InviteeUserID = u64(9) },
			userID:  42, email: "guest@example.com",
			wantErr: ErrWrongUser,
		},
		{
			name: "bound to this user proceeds",
			mut:  func(inv *model.Invitation) { inv.InviteeUserID = u64(42) },
			userID: 42, email: "guest@example.com",
		},
		{
			name: "reconnect by same user is idempotent success",
			mut: func(inv *model.Invitation) {
				inv.Status = model.InvitationConnected
				inv.ConnectedUserID = u64(42)
				inv.ConnectedAt = &connectedAt
				inv.Uses = 1
			},
			userID: 42, email: "guest@example.com",
			wantAlready: true,
		},
		{
			name: "connected by another user rejected",
			mut: func(inv *model.Invitation) {
				inv.Status = model.InvitationConnected
				inv.ConnectedUserID = u64(9)
				inv.Uses = 1
			},
			userID:  42, email: "guest@example.com",
			wantErr: ErrAlreadyUsed,
		},
		{
			name:    "revoked rejected",
			mut:     func(inv *model.Invitation) { inv.RevokedAt = &connectedAt },
			userID:  42, email: "guest@example.com",
			wantErr: ErrRevoked,
		},
		{
			name: "expired rejected even with uses left",
			mut: func(inv *model.Invitation) {
				exp := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
				inv.ExpiresAt = &exp
			},
			userID:  42, email: "guest@example.com",
			wantErr: ErrExpired,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := pendingInvitation()
			tc.mut(&inv)
			already, err := EvaluateRedeem(&inv, tc.userID, tc.email, now)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("EvaluateRedeem err = %v, want %v", err, tc.wantErr)
			}
			if already != tc.wantAlready {
				t.Fatalf("alreadyConnected = %v, want %v", already, tc.wantAlready)
			}
		})
	}
}

// Re-running the decision for an already-successful (token, user) pair
// keeps returning idempotent success and never asks for a mutation.
func TestEvaluateRedeemIdempotence(t *testing.T) {
	now := time.Now().UTC()
	inv := pendingInvitation()

	already, err := EvaluateRedeem(&inv, 42, "guest@example.com", now)
	if err != nil || already {
		t.Fatalf("first attempt: already=%v err=%v", already, err)
	}
	// Apply the mutation the repository would perform.
	inv.Uses++
	inv.Status = model.InvitationConnected
	inv.ConnectedUserID = u64(42)
	inv.ConnectedAt = &now

	for i := 0; i < 2; i++ {
		already, err = EvaluateRedeem(&inv, 42, "guest@example.com", now)
		if err != nil {
			t.Fatalf("retry %d returned error: %v", i, err)
		}
		if !already {
			t.Fatalf("retry %d did not report idempotent success", i)
		}
	}
	if inv.Uses != 1 {
		t.Fatalf("uses incremented on retry: %d", inv.Uses)
	}
}
