package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request denied")
	}
	if !rl.Allow("10.0.0.1") {
		t.Fatal("second request denied")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("third request allowed over capacity")
	}

	// Independent budget per client.
	if !rl.Allow("10.0.0.2") {
		t.Error("fresh client denied")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request denied")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("request allowed with empty bucket")
	}

	time.Sleep(30 * time.Millisecond)
	if !rl.Allow("10.0.0.1") {
		t.Error("request denied after refill window")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	defer rl.Stop()

	handler := rateLimitMiddleware(rl, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:54321"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestRateLimitMiddlewareNilLimiter(t *testing.T) {
	handler := rateLimitMiddleware(nil, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for range 5 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d with limiter disabled", rec.Code)
		}
	}
}
