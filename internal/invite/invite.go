// Package invite implements the invitation lifecycle rules: token
// generation, validity evaluation and the redemption decision.  The
// package is pure — it never touches storage — so the state machine can
// be exercised directly in tests.  Repositories apply the mutations this
// package approves.
package invite

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
)

// tokenBytes is the entropy of an invitation token.  32 random bytes
// encode to 64 hex characters, comfortably past the unguessability bar,
// so no uniqueness retry loop is needed.
const tokenBytes = 32

// Sentinel errors returned by Validate and EvaluateRedeem.  Handlers
// translate them into 400/403 responses with distinct messages.
var (
	ErrRevoked     = errors.New("invitation has been revoked")
	ErrExpired     = errors.New("invitation has expired")
	ErrExhausted   = errors.New("invitation has no uses left")
	ErrAlreadyUsed = errors.New("invitation already used by another user")
	ErrWrongUser   = errors.New("invitation is intended for another user")
	ErrWrongEmail  = errors.New("invitation is intended for another email")
)

// NewToken returns a cryptographically random hex token for the public
// invite link.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// NormalizeEmail trims surrounding whitespace and lowercases an email
// address.  It is applied when an invitation is created and again at
// redemption; normalizing on both paths keeps the comparison safe even
// if one write path slipped through unnormalized.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate evaluates whether an invitation can still be redeemed at the
// given instant.  Checks run in a fixed order and the first failure
// wins: revocation, then expiry, then usage exhaustion.  A nil return
// means the invitation is valid.  None of these conditions reverses
// without an explicit admin update (raising MaxUses or clearing
// ExpiresAt), so validity is monotonic in time.
func Validate(inv *model.Invitation, now time.Time) error {
	if inv.RevokedAt != nil {
		return ErrRevoked
	}
	if inv.ExpiresAt != nil && !now.Before(*inv.ExpiresAt) {
		return ErrExpired
	}
	if inv.MaxUses > 0 && inv.Uses >= inv.MaxUses {
		return ErrExhausted
	}
	return nil
}

// EvaluateRedeem decides whether a redemption attempt by the given user
// may proceed.  The returned flag reports idempotent success: the
// invitation is already CONNECTED to this same user, so the caller must
// return success without mutating anything.  This makes page reloads and
// double-clicks on the invite link safe.  A (false, nil) result means
// the redemption should be applied: increment Uses, set the CONNECTED
// state and ensure the membership exists.
func EvaluateRedeem(inv *model.Invitation, userID uint64, userEmail string, now time.Time) (alreadyConnected bool, err error) {
	if inv.InviteeUserID != nil && *inv.InviteeUserID != userID {
		return false, ErrWrongUser
	}
	if inv.Status == model.InvitationConnected {
		if inv.ConnectedUserID != nil && *inv.ConnectedUserID == userID {
			return true, nil
		}
		return false, ErrAlreadyUsed
	}
	// Email binding is checked only when both sides carry an address.
	if inv.InviteeEmail != "" && userEmail != "" {
		if NormalizeEmail(inv.InviteeEmail) != NormalizeEmail(userEmail) {
			return false, ErrWrongEmail
		}
	}
	if err := Validate(inv, now); err != nil {
		return false, err
	}
	return false, nil
}
