package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

type fakeParser map[string]int64

func (p fakeParser) ParseToken(token string) (int64, error) {
	if id, ok := p[token]; ok {
		return id, nil
	}
	return 0, errors.New("bad token")
}

func TestAuth(t *testing.T) {
	var gotID int64
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = GetAdminID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := Auth(fakeParser{"good": 42}, logger.NewNop())(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantID     int64
	}{
		{"valid", "Bearer good", http.StatusNoContent, 42},
		{"missing", "", http.StatusUnauthorized, 0},
		{"no scheme", "good", http.StatusUnauthorized, 0},
		{"empty token", "Bearer ", http.StatusUnauthorized, 0},
		{"rejected", "Bearer forged", http.StatusUnauthorized, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotOK = 0, false
			req := httptest.NewRequest(http.MethodGet, "/api/v1/shifts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantID, gotID)
			assert.Equal(t, tt.wantStatus == http.StatusNoContent, gotOK)
		})
	}
}

type recordedHTTP struct {
	method, path string
	status       int
}

type fakeHTTPMetrics struct {
	calls []recordedHTTP
}

func (f *fakeHTTPMetrics) ObserveHTTP(method, path string, status int, _ time.Duration) {
	f.calls = append(f.calls, recordedHTTP{method, path, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/shifts/{shiftId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}).Methods(http.MethodDelete)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/shifts/17", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, recordedHTTP{http.MethodDelete, "/api/v1/shifts/{shiftId}", http.StatusConflict}, m.calls[0])
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2, time.Minute, false)
	rl.now = func() time.Time { return now }

	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	hit := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:5002"), "burst exhausted for the same IP")
	assert.Equal(t, http.StatusOK, hit("10.0.0.2:5000"), "other IPs have their own bucket")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, hit("10.0.0.1:5003"), "one token refilled after a second")
}

func TestRateLimiter_SweepsIdleVisitors(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1, time.Minute, false)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	rl.getLimiter("10.0.0.2")
	require.Len(t, rl.visitors, 2)

	now = now.Add(2 * time.Minute)
	rl.getLimiter("10.0.0.3")

	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.3")
}

func TestRateLimiter_ClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	assert.Equal(t, "192.0.2.1", NewRateLimiter(1, 1, time.Minute, false).clientIP(req))
	assert.Equal(t, "203.0.113.9", NewRateLimiter(1, 1, time.Minute, true).clientIP(req))
}
