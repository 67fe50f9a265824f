package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitPerIP(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2)
	h := RateLimit(limiter)(okHandler)

	request := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/tournaments", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, request("10.0.0.1:5000"))
	assert.Equal(t, http.StatusNoContent, request("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1:5002"))
	assert.Equal(t, http.StatusNoContent, request("10.0.0.2:5000"))
}

func TestIPRateLimiterPrunesIdleEntries(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return start }

	for i := 0; i <= cleanupThreshold; i++ {
		limiter.GetLimiter(string(rune('a'+i%26)) + time.Duration(i).String())
	}
	assert.Equal(t, cleanupThreshold+1, limiter.size())

	limiter.now = func() time.Time { return start.Add(maxIdleAge + time.Minute) }
	limiter.GetLimiter("fresh")
	assert.Equal(t, 1, limiter.size())
}
