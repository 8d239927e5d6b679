package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// AdmissionInfo carries the limiter's decision metadata, surfaced to
// clients through X-RateLimit-* headers.
type AdmissionInfo struct {
	Allowed    bool `json:"allowed"`
	Limit      int  `json:"limit"`
	Remaining  int  `json:"remaining"`
	RetryAfter int  `json:"retry_after"`
}

// Admission is the pre-dispatch check claim endpoints run before doing any
// work. Implementations must be safe for concurrent use. The in-memory
// WindowLimiter is the default backend; a cache-backed counter (REDIS_URL)
// can be swapped in behind the same interface.
type Admission interface {
	Allow(clientID string) *AdmissionInfo
}

// clientWindow tracks one client's request count for the current window.
type clientWindow struct {
	count int
	reset time.Time
}

// WindowLimiter is a fixed-window per-client request counter. Each client
// may issue PerMinute+Burst requests per minute; the window resets a minute
// after its first request.
type WindowLimiter struct {
	perMinute int
	burst     int
	windows   map[string]*clientWindow
	mu        sync.Mutex
}

func NewWindowLimiter(perMinute, burst int) *WindowLimiter {
	return &WindowLimiter{
		perMinute: perMinute,
		burst:     burst,
		windows:   make(map[string]*clientWindow),
	}
}

func (l *WindowLimiter) Allow(clientID string) *AdmissionInfo {
	limit := l.perMinute + l.burst

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[clientID]
	if !ok || now.After(w.reset) {
		w = &clientWindow{reset: now.Add(time.Minute)}
		l.windows[clientID] = w
	}

	info := &AdmissionInfo{Limit: limit}
	if w.count >= limit {
		info.RetryAfter = secondsUntil(w.reset)
		return info
	}

	w.count++
	info.Allowed = true
	info.Remaining = limit - w.count
	return info
}

// StartCleanup removes expired client windows on a periodic interval. It
// blocks until ctx is cancelled, so call it in a goroutine.
func (l *WindowLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			l.mu.Lock()
			for id, w := range l.windows {
				if now.After(w.reset) {
					delete(l.windows, id)
				}
			}
			l.mu.Unlock()
		}
	}
}

// RateLimit returns an echo middleware that runs the admission check before
// the handler. A rejected request gets a 429 with Retry-After and no work
// is performed downstream.
func RateLimit(adm Admission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			info := adm.Allow(clientID(c))

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))

			if !info.Allowed {
				h.Set("Retry-After", strconv.Itoa(info.RetryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}

// clientID resolves the rate-limit key: an explicit X-Client-ID header
// wins, otherwise the client IP.
func clientID(c echo.Context) string {
	if h := c.Request().Header.Get("X-Client-ID"); h != "" {
		return h
	}
	return c.RealIP()
}

// secondsUntil returns the number of seconds from now until t, minimum 1.
func secondsUntil(t time.Time) int {
	s := int(time.Until(t).Seconds())
	if s < 1 {
		return 1
	}
	return s
}
