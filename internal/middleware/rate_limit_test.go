package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5) // 10 per minute, burst of 5
	defer rl.Stop()

	// First 5 requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		if !rl.Allow("p1") {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 6th request should be rate limited (exceeded burst)
	if rl.Allow("p1") {
		t.Error("Request 6 should be rate limited")
	}
}

func TestRateLimiter_DifferentProfiles(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	// Exhaust p1's burst
	for i := 0; i < 3; i++ {
		if !rl.Allow("p1") {
			t.Errorf("p1 request %d should be allowed", i+1)
		}
	}

	if rl.Allow("p1") {
		t.Error("p1 should be rate limited")
	}

	// p2 should still have its full burst
	for i := 0; i < 3; i++ {
		if !rl.Allow("p2") {
			t.Errorf("p2 request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter()
	rl.Stop()
	rl.Stop()
}

func TestRateLimitMiddleware_SkipsEmptyKey(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(1, 1)
	defer rl.Stop()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles//sync/pull", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RateLimitMiddleware(rl, ProfileParamKey)(handler)(c)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("Request %d: expected 200 without a profile id, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimitMiddleware_LimitsPerProfile(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(10, 2) // Small burst for testing
	defer rl.Stop()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	call := func(profileID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/"+profileID+"/sync/pull", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(profileID)

		if err := RateLimitMiddleware(rl, ProfileParamKey)(handler)(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		return rec
	}

	// First 2 requests should succeed (burst)
	for i := 0; i < 2; i++ {
		rec := call("p1")
		if rec.Code != http.StatusOK {
			t.Errorf("Request %d: Expected status 200, got %d", i+1, rec.Code)
		}
		if rec.Header().Get("X-RateLimit-Limit") != "10" {
			t.Errorf("Request %d: Expected X-RateLimit-Limit 10, got %q", i+1, rec.Header().Get("X-RateLimit-Limit"))
		}
	}

	// 3rd request should be rate limited
	rec := call("p1")
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}

	var problem problemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Expected problem details body, got %v", err)
	}
	if problem.Type != errorTypeRateLimit || problem.Status != http.StatusTooManyRequests {
		t.Errorf("Unexpected problem details: %+v", problem)
	}

	// Another profile is unaffected
	if rec := call("p2"); rec.Code != http.StatusOK {
		t.Errorf("Expected p2 to be allowed, got %d", rec.Code)
	}
}
