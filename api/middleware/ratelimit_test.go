package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(limit, window)
	t.Cleanup(rl.Stop)
	return rl
}

// visitorCount returns the number of tracked clients
func (rl *RateLimiter) visitorCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := newTestLimiter(t, 3, time.Second)

	assert.True(t, rl.Allow("127.0.0.1"))
	assert.True(t, rl.Allow("127.0.0.1"))
	assert.True(t, rl.Allow("127.0.0.1"))

	assert.False(t, rl.Allow("127.0.0.1"))

	// Different IP has its own bucket
	assert.True(t, rl.Allow("192.168.1.1"))
	assert.Equal(t, 2, rl.visitorCount())

	// One token refills after window/limit
	time.Sleep(400 * time.Millisecond)
	assert.True(t, rl.Allow("127.0.0.1"))
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Stop()
	rl.Stop()
}

func TestRateLimitMiddleware_AllowsRequestsUnderLimit(t *testing.T) {
	limiter := newTestLimiter(t, 5, time.Minute)
	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "127.0.0.1:1234"
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
		assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimitMiddleware_Returns429ForExceededLimit(t *testing.T) {
	limiter := newTestLimiter(t, 2, time.Minute)
	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/api/recipes", nil)
		req.RemoteAddr = "127.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest("GET", "/api/recipes", nil)
	req.RemoteAddr = "127.0.0.1:1234"
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_UsesIPAddressForLimiting(t *testing.T) {
	limiter := newTestLimiter(t, 1, time.Minute)
	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(remote string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve("127.0.0.1:1234"))
	// Same host, different port
	assert.Equal(t, http.StatusTooManyRequests, serve("127.0.0.1:9999"))
	assert.Equal(t, http.StatusOK, serve("192.168.1.1:5678"))
}

func TestRateLimitMiddleware_IgnoresForwardedHeadersByDefault(t *testing.T) {
	limiter := newTestLimiter(t, 1, time.Minute)
	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(forwarded string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve("10.0.0.1"))
	// A fresh header value does not buy a fresh bucket
	assert.Equal(t, http.StatusTooManyRequests, serve("10.0.0.2"))
}

func TestRateLimitMiddleware_TrustedProxyUsesForwardedClient(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute, WithTrustedProxy(true))
	t.Cleanup(limiter.Stop)
	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(forwarded string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.254:4000"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve("198.51.100.1"))
	assert.Equal(t, http.StatusOK, serve("198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, serve("198.51.100.1"))
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		setupReq   func(*http.Request)
		expectedIP string
	}{
		{
			name:       "uses last X-Forwarded-For hop",
			trustProxy: true,
			setupReq: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "203.0.113.1, 198.51.100.2")
				r.RemoteAddr = "10.0.0.1:1234"
			},
			expectedIP: "198.51.100.2",
		},
		{
			name:       "uses X-Real-IP header",
			trustProxy: true,
			setupReq: func(r *http.Request) {
				r.Header.Set("X-Real-IP", "203.0.113.1")
				r.RemoteAddr = "10.0.0.1:1234"
			},
			expectedIP: "203.0.113.1",
		},
		{
			name:       "prefers X-Forwarded-For over X-Real-IP",
			trustProxy: true,
			setupReq: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "203.0.113.1")
				r.Header.Set("X-Real-IP", "198.51.100.1")
			},
			expectedIP: "203.0.113.1",
		},
		{
			name: "untrusted headers are ignored",
			setupReq: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "203.0.113.1")
				r.Header.Set("X-Real-IP", "198.51.100.1")
				r.RemoteAddr = "10.0.0.1:1234"
			},
			expectedIP: "10.0.0.1",
		},
		{
			name: "strips port from RemoteAddr",
			setupReq: func(r *http.Request) {
				r.RemoteAddr = "192.168.1.1:1234"
			},
			expectedIP: "192.168.1.1",
		},
		{
			name: "keeps RemoteAddr without port",
			setupReq: func(r *http.Request) {
				r.RemoteAddr = "192.168.1.1"
			},
			expectedIP: "192.168.1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			tt.setupReq(req)

			assert.Equal(t, tt.expectedIP, extractIP(req, tt.trustProxy))
		})
	}
}
