package http

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client address.
type IPRateLimiter struct {
	ips map[string]*rate.Limiter
	mu  sync.RWMutex
	r   rate.Limit
	b   int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{ips: make(map[string]*rate.Limiter), r: r, b: b}
}

// Limiter returns the bucket for ip, creating it on first use.
func (l *IPRateLimiter) Limiter(ip string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.ips[ip]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, ok = l.ips[ip]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(l.r, l.b)
	l.ips[ip] = limiter
	return limiter
}

// RateLimit rejects requests over the per-IP budget with 429.
func RateLimit(limiter *IPRateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Limiter(c.RealIP()).Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
			}
			return next(c)
		}
	}
}

type cachedResponse struct {
	status      int
	contentType string
	body        []byte
}

type bodyRecorder struct {
	http.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheKeyFunc names the cache entry for a request. Returning false skips
// the cache for that request.
type CacheKeyFunc func(c echo.Context) (string, bool)

// Cache serves repeated GETs with the same key from store for ttl. Only 2xx
// responses are kept.
func Cache(store *cache.Cache, ttl time.Duration, keyFor CacheKeyFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			key, ok := keyFor(c)
			if !ok {
				return next(c)
			}
			if hit, found := store.Get(key); found {
				cached := hit.(cachedResponse)
				c.Response().Header().Set("X-Cache", "HIT")
				return c.Blob(cached.status, cached.contentType, cached.body)
			}

			recorder := &bodyRecorder{ResponseWriter: c.Response().Writer, body: new(bytes.Buffer)}
			c.Response().Writer = recorder

			if err := next(c); err != nil {
				return err
			}

			if status := c.Response().Status; status >= 200 && status < 300 {
				store.Set(key, cachedResponse{
					status:      status,
					contentType: c.Response().Header().Get(echo.HeaderContentType),
					body:        recorder.body.Bytes(),
				}, ttl)
			}
			return nil
		}
	}
}
