package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/alexedwards/scs/v2"

	"creatives/internal/content"
	"creatives/internal/handlers"
	applog "creatives/internal/log"
	"creatives/internal/origin"
	"creatives/internal/storage"
	"creatives/internal/upload"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr    string
	Session SessionConfig
	// Backend holds every origin namespace. A nil Backend keeps state in memory.
	Backend         storage.Store
	Auth            AuthConfig
	RateLimit       RateLimitConfig
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
	// OriginIdleTimeout evicts cached origin workspaces left unused this
	// long. Their state stays in Backend. Zero disables eviction.
	OriginIdleTimeout time.Duration
	// TrustProxy resolves client addresses from forwarding headers.
	TrustProxy bool
}

// SessionConfig controls session behavior for the HTTP server.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// AuthConfig sets the simulated sign-in and sign-up round trips.
type AuthConfig struct {
	SignInDelay time.Duration
	SignUpDelay time.Duration
}

// RateLimitConfig bounds auth form submissions per client address. A zero
// PerSecond disables limiting.
type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

// Server wraps an http.Server and exposes helpers for bootstrapping a
// production-ready web service.
type Server struct {
	config     Config
	registry   *origin.Registry
	httpServer *http.Server

	pruneMu   sync.Mutex
	stopped   bool
	stopPrune context.CancelFunc
	pruneDone chan struct{}
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
	)

	sessionCfg := cfg.Session
	if sessionCfg.Lifetime <= 0 {
		applog.Debug(context.Background(), "session lifetime not provided, using default")
		sessionCfg.Lifetime = 30 * 24 * time.Hour
	}
	if strings.TrimSpace(sessionCfg.CookieName) == "" {
		applog.Debug(context.Background(), "session cookie name not provided, using default")
		sessionCfg.CookieName = "creatives_session"
	}

	backend := cfg.Backend
	if backend == nil {
		applog.Debug(context.Background(), "no storage backend provided, using memory")
		backend = storage.NewMemory()
	}

	sessionManager := scs.New()
	sessionManager.Store = storage.NewSessionStore(backend)
	sessionManager.Lifetime = sessionCfg.Lifetime
	sessionManager.Cookie.Name = sessionCfg.CookieName
	sessionManager.Cookie.Domain = sessionCfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = sessionCfg.CookieSecure

	applog.Debug(context.Background(), "session manager configured",
		"cookieName", sessionCfg.CookieName,
		"cookieDomain", sessionCfg.CookieDomain,
		"cookieSecure", sessionCfg.CookieSecure,
	)

	seed, err := content.SeedPosts()
	if err != nil {
		return nil, fmt.Errorf("load seed posts: %w", err)
	}
	registry := origin.NewRegistry(backend, origin.Options{
		Authenticator: content.NewSimulated(cfg.Auth.SignInDelay, cfg.Auth.SignUpDelay),
		Seed:          seed,
		IdleTimeout:   cfg.OriginIdleTimeout,
	})

	handlers.Configure(sessionManager, registry, upload.NewIntake(cfg.MaxUploadBytes))

	applog.Debug(context.Background(), "handler dependencies configured", "seedPosts", len(seed))

	handler := newRouter(sessionManager, routerOptions{
		rateLimit:  cfg.RateLimit,
		trustProxy: cfg.TrustProxy,
	})

	applog.Debug(context.Background(), "http handler chain prepared")

	return &Server{
		config:   cfg,
		registry: registry,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	s.startPruning()
	applog.Info(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	s.stopPruning()
	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	applog.Info(ctx, "server initiating graceful shutdown", "timeout", timeout.String())
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) startPruning() {
	s.pruneMu.Lock()
	defer s.pruneMu.Unlock()
	idle := s.config.OriginIdleTimeout
	if idle <= 0 || s.stopped || s.stopPrune != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.stopPrune = cancel
	done := make(chan struct{})
	s.pruneDone = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(pruneInterval(idle))
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if dropped := s.registry.Prune(); dropped > 0 {
					applog.Debug(ctx, "evicted idle origins", "dropped", dropped, "cached", s.registry.Len())
				}
			}
		}
	}()
}

func (s *Server) stopPruning() {
	s.pruneMu.Lock()
	defer s.pruneMu.Unlock()
	s.stopped = true
	if s.stopPrune == nil {
		return
	}
	s.stopPrune()
	<-s.pruneDone
	s.stopPrune = nil
}

func pruneInterval(idle time.Duration) time.Duration {
	interval := idle / 2
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Origins reports how many origins have been opened since start.
func (s *Server) Origins() int {
	return s.registry.Len()
}
