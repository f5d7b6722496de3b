package server

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"creatives/internal/handlers"
	applog "creatives/internal/log"
)

type routerOptions struct {
	rateLimit  RateLimitConfig
	trustProxy bool
}

func newRouter(sm *scs.SessionManager, opts routerOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLog)

	applog.Debug(context.Background(), "registering http routes")
	r.Get("/healthz", handlers.Health)
	// The websocket upgrade needs the raw connection, so the session is read
	// by the handler rather than the middleware.
	r.Get("/events", handlers.Events)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/static"))))

	r.Group(func(r chi.Router) {
		r.Use(sm.LoadAndSave)

		r.Group(func(r chi.Router) {
			if opts.rateLimit.PerSecond > 0 {
				limiter := NewIPRateLimiter(opts.rateLimit.PerSecond, opts.rateLimit.Burst)
				r.Use(RateLimit(limiter, opts.trustProxy))
				applog.Debug(context.Background(), "auth rate limit enabled", "rps", opts.rateLimit.PerSecond, "burst", opts.rateLimit.Burst)
			}
			r.HandleFunc("/login", handlers.Login)
			r.HandleFunc("/signup", handlers.Signup)
		})
		r.HandleFunc("/logout", handlers.Logout)
		r.HandleFunc("/", handlers.Home)
		r.HandleFunc("/themes", handlers.Themes)
		r.HandleFunc("/preferences/theme", handlers.UpdatePreferences)

		r.Group(func(r chi.Router) {
			r.Use(handlers.RequireAuthentication)
			r.HandleFunc("/create", handlers.CreatePost)
			r.HandleFunc("/profile", handlers.Profile)
			r.HandleFunc("/posts/{id}/like", handlers.LikePost)
			r.HandleFunc("/posts/{id}", handlers.UpdatePost)
		})
	})
	applog.Debug(context.Background(), "http routes registered")
	return r
}

// requestLog writes one line per request once the response is complete.
func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		applog.Info(r.Context(), "http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"user_agent", r.UserAgent(),
		)
	})
}
