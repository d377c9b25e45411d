package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vangoframework/pellines/internal/auth"
	"github.com/vangoframework/pellines/internal/middleware"
)

const testSecret = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
})

func identityEcho(w http.ResponseWriter, r *http.Request) {
	id, present, err := auth.UserID(r.Context(), auth.ContextAuthenticator{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !present {
		w.Write([]byte("anonymous"))
		return
	}
	w.Write([]byte(id))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/eventos", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/eventos", entry["path"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.EqualValues(t, len("short and stout"), entry["size"])
}

func TestLogger_ServerErrorsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := middleware.Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/mapa", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "kaboom")
	assert.Contains(t, buf.String(), "panic recovered")
}

func sessionCookie(t *testing.T, store *auth.SessionStore, data *auth.SessionData) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, store.Set(rec, data))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSession_LoadsIdentity(t *testing.T) {
	store, err := auth.NewSessionStore(testSecret, time.Hour, false)
	require.NoError(t, err)

	handler := middleware.Session(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := middleware.GetSession(r.Context())
		require.NotNil(t, session)
		assert.Equal(t, "Rosa", session.Name)
		identityEcho(w, r)
	}))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(sessionCookie(t, store, &auth.SessionData{Subject: "user_rosa", Name: "Rosa"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "user_rosa", rec.Body.String())
}

func TestSession_Anonymous(t *testing.T) {
	store, err := auth.NewSessionStore(testSecret, time.Hour, false)
	require.NoError(t, err)

	handler := middleware.Session(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Nil(t, middleware.GetSession(r.Context()))
		identityEcho(w, r)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "tampered"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "anonymous", rec.Body.String())
}

type fakeVerifier struct {
	calls int
}

func (f *fakeVerifier) Verify(token string) (*auth.Identity, error) {
	f.calls++
	if token == "good" {
		return &auth.Identity{Subject: "user_token"}, nil
	}
	return nil, auth.ErrInvalidToken
}

func TestIdentity(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid bearer", "Bearer good", "user_token"},
		{"invalid bearer", "Bearer bad", "anonymous"},
		{"no header", "", "anonymous"},
		{"wrong scheme", "Basic good", "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.Identity(&fakeVerifier{}, logger)(http.HandlerFunc(identityEcho))

			req := httptest.NewRequest("GET", "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestIdentity_SessionWins(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	verifier := &fakeVerifier{}
	handler := middleware.Identity(verifier, logger)(http.HandlerFunc(identityEcho))

	req := httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	req = req.WithContext(auth.WithIdentity(req.Context(), &auth.Identity{Subject: "user_session"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "user_session", rec.Body.String())
	assert.Zero(t, verifier.calls)
}

func TestRequireAuth(t *testing.T) {
	handler := middleware.RequireAuth(ok)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/dashboard?tab=comercios", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sign-in?redirect_url=%2Fdashboard%3Ftab%3Dcomercios", rec.Header().Get("Location"))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), &auth.Identity{Subject: "user_1"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAPIAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	middleware.RequireAPIAuth(ok).ServeHTTP(rec, httptest.NewRequest("GET", "/api/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		identity *auth.Identity
		want     int
	}{
		{"anonymous", nil, http.StatusForbidden},
		{"resident", &auth.Identity{Subject: "u", Role: "member"}, http.StatusForbidden},
		{"admin", &auth.Identity{Subject: "u", Role: "admin"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.identity != nil {
				req = req.WithContext(auth.WithIdentity(req.Context(), tt.identity))
			}
			rec := httptest.NewRecorder()
			middleware.RequireAdmin(ok).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestClassifyPath(t *testing.T) {
	tests := map[string]middleware.EndpointType{
		"/api/auth/session": middleware.EndpointAuth,
		"/auth/session":     middleware.EndpointAuth,
		"/sign-in":             middleware.EndpointAuth,
		"/dashboard/comercios": middleware.EndpointAdmin,
		"/api/weather":         middleware.EndpointPublic,
		"/calendario.ics":      middleware.EndpointPublic,
		"/eventos/abc.ics":     middleware.EndpointPublic,
		"/eventos":             middleware.EndpointGeneral,
		"/":                    middleware.EndpointGeneral,
	}
	for path, want := range tests {
		assert.Equal(t, want, middleware.ClassifyPath(path), path)
	}
}

func newLimiter(t *testing.T, limits map[middleware.EndpointType]middleware.Limit) *middleware.RateLimiter {
	t.Helper()
	limiter, err := middleware.NewRateLimiter(limits)
	require.NoError(t, err)
	return limiter
}

func TestNewRateLimiter_RejectsInvalidLimits(t *testing.T) {
	tests := map[string]map[middleware.EndpointType]middleware.Limit{
		"zero requests": {
			middleware.EndpointGeneral: {Requests: 10, Window: time.Minute},
			middleware.EndpointAuth:    {Requests: 0, Window: time.Minute},
		},
		"zero window": {
			middleware.EndpointGeneral: {Requests: 10},
		},
		"missing general": {
			middleware.EndpointAuth: {Requests: 10, Window: time.Minute},
		},
	}
	for name, limits := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := middleware.NewRateLimiter(limits)
			assert.ErrorIs(t, err, middleware.ErrInvalidLimit)
		})
	}

	_, err := middleware.NewRateLimiter(nil)
	assert.NoError(t, err)
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter := newLimiter(t, map[middleware.EndpointType]middleware.Limit{
		middleware.EndpointGeneral: {Requests: 3, Window: 3 * time.Second},
	})

	for i := 0; i < 3; i++ {
		d := limiter.Allow("10.0.0.1", middleware.EndpointGeneral)
		require.True(t, d.Allowed, "request %d", i)
		assert.Equal(t, 3, d.Limit)
		assert.Equal(t, 2-i, d.Remaining)
	}

	d := limiter.Allow("10.0.0.1", middleware.EndpointGeneral)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, d.RetryAfter, time.Second)

	// Another client has its own budget.
	assert.True(t, limiter.Allow("10.0.0.2", middleware.EndpointGeneral).Allowed)
}

func TestRateLimit_Middleware(t *testing.T) {
	limiter := newLimiter(t, map[middleware.EndpointType]middleware.Limit{
		middleware.EndpointGeneral: {Requests: 100, Window: time.Minute},
		middleware.EndpointAuth:    {Requests: 1, Window: time.Hour},
	})
	handler := middleware.RateLimit(limiter)(ok)

	do := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", path, nil)
		req.RemoteAddr = "192.0.2.7:51234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := do("/auth/session")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, first.Header().Get("X-RateLimit-Reset"))

	second := do("/auth/session")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.Equal(t, "Too many requests", body["error"])

	// General routes are budgeted separately.
	general := do("/eventos")
	assert.Equal(t, http.StatusOK, general.Code)
	assert.Equal(t, "99", general.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimit_ExemptPaths(t *testing.T) {
	limiter := newLimiter(t, map[middleware.EndpointType]middleware.Limit{
		middleware.EndpointGeneral: {Requests: 1, Window: time.Hour},
	})
	handler := middleware.RateLimit(limiter)(ok)

	do := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", path, nil)
		req.RemoteAddr = "192.0.2.8:40000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 3; i++ {
		for _, path := range []string{"/", "/static/css/app.css", "/health", "/api/health", "/metrics"} {
			rec := do(path)
			assert.Equal(t, http.StatusOK, rec.Code, path)
			assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"), path)
		}
	}

	assert.Equal(t, http.StatusOK, do("/eventos").Code)
	assert.Equal(t, http.StatusTooManyRequests, do("/eventos").Code)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(metrics.Handler)
	r.Get("/comercios/{slug}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "slug") == "missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ok"))
	})

	for _, path := range []string{"/comercios/panaderia-rosa", "/comercios/almacen", "/comercios/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
	}

	expected := `
# HELP pellines_http_requests_total HTTP requests by route pattern, method and status.
# TYPE pellines_http_requests_total counter
pellines_http_requests_total{method="GET",route="/comercios/{slug}",status="200"} 2
pellines_http_requests_total{method="GET",route="/comercios/{slug}",status="404"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "pellines_http_requests_total"))
}
