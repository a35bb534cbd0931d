package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/config"
)

func cacheCtx(t *testing.T, target, routePattern string, userID any) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(routePattern)
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c
}

func TestCacheKeyDistinguishesResources(t *testing.T) {
	cfg := config.LoadCacheConfig()

	// Two rooms resolve through the same route pattern but must never
	// share a cache entry.
	a := cacheKeyFrom(cfg, cacheCtx(t, "/v1/rooms/5/bookings?date=2025-06-01", "/v1/rooms/:id/bookings", float64(1)))
	b := cacheKeyFrom(cfg, cacheCtx(t, "/v1/rooms/7/bookings?date=2025-06-01", "/v1/rooms/:id/bookings", float64(1)))
	if a == b {
		t.Fatalf("rooms 5 and 7 share cache key %s", a)
	}
}

func TestCacheKeyDistinguishesUsers(t *testing.T) {
	cfg := config.LoadCacheConfig()

	a := cacheKeyFrom(cfg, cacheCtx(t, "/v1/my-bookings", "/v1/my-bookings", float64(1)))
	b := cacheKeyFrom(cfg, cacheCtx(t, "/v1/my-bookings", "/v1/my-bookings", float64(2)))
	if a == b {
		t.Fatalf("two users share cache key %s", a)
	}

	// Same user and URL must stay stable or the cache never hits.
	again := cacheKeyFrom(cfg, cacheCtx(t, "/v1/my-bookings", "/v1/my-bookings", float64(1)))
	if a != again {
		t.Fatalf("cache key unstable for identical request: %s vs %s", a, again)
	}
}

func TestCacheKeyGuestLookup(t *testing.T) {
	cfg := config.LoadCacheConfig()

	// The public invite lookup has no session; distinct tokens still get
	// distinct entries.
	a := cacheKeyFrom(cfg, cacheCtx(t, "/v1/invite/aaaa", "/v1/invite/:token", nil))
	b := cacheKeyFrom(cfg, cacheCtx(t, "/v1/invite/bbbb", "/v1/invite/:token", nil))
	if a == b {
		t.Fatalf("two invite tokens share cache key %s", a)
	}
}

func TestContextUserID(t *testing.T) {
	cases := []struct {
		name string
		val  any
		want string
	}{
		{"missing", nil, "guest"},
		{"jwt float64", float64(42), "42"},
		{"string", "42", "42"},
		{"empty string", "", "guest"},
		{"uint64", uint64(7), "7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := cacheCtx(t, "/v1/me", "/v1/me", nil)
			if tc.val != nil {
				c.Set("user_id", tc.val)
			}
			if got := contextUserID(c); got != tc.want {
				t.Errorf("contextUserID = %q, want %q", got, tc.want)
			}
		})
	}
}
