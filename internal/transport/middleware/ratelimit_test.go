package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func hit(h http.Handler, remote string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/grade", nil)
	req.RemoteAddr = remote
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit("grade", 10)(okHandler())

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, hit(handler, "1.2.3.4:1234").Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit("grade", 5)(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(handler, "1.2.3.4:1234").Code)
	}

	rec := hit(handler, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "13", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimiter_PortChangesShareBucket(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit("grade", 2)(okHandler())

	assert.Equal(t, http.StatusOK, hit(handler, "1.1.1.1:1000").Code)
	assert.Equal(t, http.StatusOK, hit(handler, "1.1.1.1:1001").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "1.1.1.1:1002").Code)
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit("grade", 2)(okHandler())

	for i := 0; i < 2; i++ {
		hit(handler, "1.1.1.1:1234")
	}
	assert.Equal(t, http.StatusOK, hit(handler, "2.2.2.2:5678").Code)
}

func TestRateLimiter_ScopesIndependent(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	generate := rl.Limit("generate", 1)(okHandler())
	grade := rl.Limit("grade", 1)(okHandler())

	assert.Equal(t, http.StatusOK, hit(generate, "1.1.1.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(generate, "1.1.1.1:1234").Code)
	assert.Equal(t, http.StatusOK, hit(grade, "1.1.1.1:1234").Code)
}

// fakeClock replaces the limiter's time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRateLimiter_TokenRefill(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl.now = clock.now

	// 60 per minute refills one token per second.
	handler := rl.Limit("grade", 60)(okHandler())
	for i := 0; i < 60; i++ {
		hit(handler, "3.3.3.3:1234")
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "3.3.3.3:1234").Code)

	clock.advance(time.Second)
	assert.Equal(t, http.StatusOK, hit(handler, "3.3.3.3:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "3.3.3.3:1234").Code)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(time.Hour)
	defer rl.Stop()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl.now = clock.now

	handler := rl.Limit("grade", 1)(okHandler())
	hit(handler, "4.4.4.4:1")
	clock.advance(idleClientTTL / 2)
	hit(handler, "5.5.5.5:1")

	clock.advance(idleClientTTL/2 + time.Second)
	rl.evictIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "grade|4.4.4.4")
	assert.Contains(t, rl.clients, "grade|5.5.5.5")
}

func TestRateLimiter_StopIdempotent(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	rl.Stop()
	rl.Stop()
}
