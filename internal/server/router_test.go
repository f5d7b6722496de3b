package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
)

func TestNewRouterRegistersHealthRoute(t *testing.T) {
	router := newRouter(scs.New(), routerOptions{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json content type, got %q", ct)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatal("expected health checks to skip the session cookie")
	}
}

func TestNewRouterUnknownRoute(t *testing.T) {
	router := newRouter(scs.New(), routerOptions{})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote addr", "192.0.2.1:5000", nil, false, "192.0.2.1"},
		{"ignores headers without trust", "192.0.2.1:5000", map[string]string{"X-Forwarded-For": "203.0.113.9"}, false, "192.0.2.1"},
		{"first forwarded", "192.0.2.1:5000", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, true, "203.0.113.9"},
		{"real ip", "192.0.2.1:5000", map[string]string{"X-Real-IP": "198.51.100.4"}, true, "198.51.100.4"},
		{"bare remote", "192.0.2.7", nil, false, "192.0.2.7"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req, tt.trustProxy); got != tt.want {
				t.Fatalf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIPRateLimiterSweepsIdleClients(t *testing.T) {
	t.Parallel()

	limiter := NewIPRateLimiter(1, 5)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	limiter.lastSweep = now

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		limiter.Limiter(ip)
	}
	if limiter.Len() != 3 {
		t.Fatalf("expected 3 buckets, got %d", limiter.Len())
	}

	now = now.Add(30 * time.Second)
	limiter.Limiter("10.0.0.1")
	if limiter.Len() != 3 {
		t.Fatalf("expected no sweep before the idle window, got %d", limiter.Len())
	}

	now = now.Add(45 * time.Second)
	limiter.Limiter("10.0.0.4")
	if limiter.Len() != 2 {
		t.Fatalf("expected idle clients swept, got %d buckets", limiter.Len())
	}
	if limiter.Limiter("10.0.0.1") == nil {
		t.Fatal("expected recently seen client kept")
	}
}
