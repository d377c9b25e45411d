package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// EndpointType groups routes that share a request budget.
type EndpointType string

const (
	EndpointGeneral EndpointType = "general"
	EndpointAuth    EndpointType = "auth"
	EndpointAdmin   EndpointType = "admin"  // dashboard forms
	EndpointPublic  EndpointType = "public" // JSON API and calendar feeds
)

// ErrInvalidLimit is returned for a budget that cannot refill.
var ErrInvalidLimit = errors.New("rate limit needs positive requests and window")

// Limit is a request budget per client over a window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// DefaultLimits are the budgets applied per client IP.
var DefaultLimits = map[EndpointType]Limit{
	EndpointGeneral: {Requests: 100, Window: 15 * time.Minute},
	EndpointAuth:    {Requests: 20, Window: 15 * time.Minute},
	EndpointAdmin:   {Requests: 60, Window: time.Minute},
	EndpointPublic:  {Requests: 10, Window: time.Minute},
}

// ClassifyPath maps a request path to its endpoint type.
func ClassifyPath(path string) EndpointType {
	switch {
	case strings.HasPrefix(path, "/api/auth"), strings.HasPrefix(path, "/auth"), strings.HasPrefix(path, "/sign-in"):
		return EndpointAuth
	case strings.HasPrefix(path, "/dashboard"):
		return EndpointAdmin
	case strings.HasPrefix(path, "/api/"), strings.HasSuffix(path, ".ics"):
		return EndpointPublic
	default:
		return EndpointGeneral
	}
}

// Exempt reports whether path is served without spending a budget:
// the home page, static assets, health checks and metrics scrapes.
func Exempt(path string) bool {
	switch path {
	case "/", "/health", "/api/health", "/metrics":
		return true
	}
	return strings.HasPrefix(path, "/static/")
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps a token bucket per client and endpoint type.
type RateLimiter struct {
	limits map[EndpointType]Limit
	now    func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// NewRateLimiter creates a limiter. A nil limits map selects DefaultLimits.
// Every limit must be positive and a general limit must be present, since
// unlisted types fall back to it.
func NewRateLimiter(limits map[EndpointType]Limit) (*RateLimiter, error) {
	if limits == nil {
		limits = DefaultLimits
	}
	if _, ok := limits[EndpointGeneral]; !ok {
		return nil, fmt.Errorf("%w: missing %s limit", ErrInvalidLimit, EndpointGeneral)
	}
	for typ, limit := range limits {
		if limit.Requests <= 0 || limit.Window <= 0 {
			return nil, fmt.Errorf("%w: %s has %d per %s", ErrInvalidLimit, typ, limit.Requests, limit.Window)
		}
	}
	return &RateLimiter{
		limits:  limits,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}, nil
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	Reset      time.Time
	RetryAfter time.Duration
}

// Allow spends one request from the client's budget for typ.
func (l *RateLimiter) Allow(client string, typ EndpointType) Decision {
	limit, ok := l.limits[typ]
	if !ok {
		limit = l.limits[EndpointGeneral]
	}
	every := limit.Window / time.Duration(limit.Requests)

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	key := string(typ) + "|" + client
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), limit.Requests)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	d := Decision{Limit: limit.Requests}
	if b.limiter.AllowN(now, 1) {
		d.Allowed = true
	} else {
		r := b.limiter.ReserveN(now, 1)
		d.RetryAfter = r.DelayFrom(now)
		r.CancelAt(now)
	}

	tokens := b.limiter.TokensAt(now)
	d.Remaining = max(int(math.Floor(tokens)), 0)
	missing := float64(limit.Requests) - tokens
	d.Reset = now.Add(time.Duration(missing * float64(every)))

	return d
}

// sweep drops buckets that have been idle long enough to be full again.
// Callers hold l.mu.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < time.Minute {
		return
	}
	l.lastSweep = now

	for key, b := range l.buckets {
		typ, _, _ := strings.Cut(key, "|")
		limit, ok := l.limits[EndpointType(typ)]
		if !ok {
			limit = l.limits[EndpointGeneral]
		}
		window := limit.Window
		if now.Sub(b.lastSeen) > window {
			delete(l.buckets, key)
		}
	}
}

// RateLimit enforces the limiter per client IP and sets the X-RateLimit headers.
// Exempt paths pass straight through.
// Run it after chi's RealIP so RemoteAddr holds the client address.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Exempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			d := limiter.Allow(clientIP(r), ClassifyPath(r.URL.Path))

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Unix(), 10))

			if !d.Allowed {
				retry := int(math.Ceil(d.RetryAfter.Seconds()))
				h.Set("Retry-After", strconv.Itoa(retry))
				WriteJSON(w, http.StatusTooManyRequests, map[string]any{
					"error":      "Too many requests",
					"message":    "Rate limit exceeded. Please try again later.",
					"retryAfter": retry,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// WriteJSON encodes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}
