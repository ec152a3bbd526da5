package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limita requisições por IP, usado no login para conter força bruta
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}

	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		idleTTL:  10 * time.Minute,
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()

	return v.limiter
}

// Cleanup remove visitantes sem requisições recentes
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.visitors {
		if time.Since(v.lastSeen) > rl.idleTTL {
			delete(rl.visitors, key)
		}
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if i := strings.IndexByte(forwarded, ','); i >= 0 {
			return strings.TrimSpace(forwarded[:i])
		}
		return strings.TrimSpace(forwarded)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Handler pode ser usado como middleware de rota
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)

		if !rl.limiterFor(key).Allow() {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"remote_addr": key,
				"path":        r.URL.Path,
			}).Warn("Limite de requisições excedido")

			w.Header().Set("Retry-After", "1")
			apiErrors.WriteError(w, apiErrors.ErrTooManyRequests, "Muitas tentativas, aguarde alguns segundos", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
