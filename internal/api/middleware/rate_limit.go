package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP (token bucket на каждый адрес)
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	limit          rate.Limit
	burst          int
	idleTTL        time.Duration
	lastSweep      time.Time
	trustForwarded bool
	now            func() time.Time
}

// NewRateLimiter rps запросов в секунду с запасом burst.
// Адреса, молчавшие дольше idleTTL, выкидываются из памяти
func NewRateLimiter(rps float64, burst int, idleTTL time.Duration, trustForwarded bool) *RateLimiter {
	return &RateLimiter{
		visitors:       make(map[string]*visitor),
		limit:          rate.Limit(rps),
		burst:          burst,
		idleTTL:        idleTTL,
		trustForwarded: trustForwarded,
		now:            time.Now,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		for key, v := range rl.visitors {
			if now.Sub(v.lastSeen) >= rl.idleTTL {
				delete(rl.visitors, key)
			}
		}
		rl.lastSweep = now
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Limit оборачивает handler; при превышении лимита отвечает 429
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)
		if !rl.getLimiter(ip).AllowN(rl.now(), 1) {
			w.Header().Set("Retry-After", "1")
			handlers.RespondTooManyRequests(w, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LimitFunc то же, что Limit, для http.HandlerFunc
func (rl *RateLimiter) LimitFunc(next http.HandlerFunc) http.Handler {
	return rl.Limit(next)
}

func (rl *RateLimiter) clientIP(r *http.Request) string {
	if rl.trustForwarded {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
