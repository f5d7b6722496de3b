package handlers

import (
	"net/http"

	applog "creatives/internal/log"
	"creatives/internal/realtime"
)

// Events streams the origin's state changes over a websocket. It runs
// outside the session middleware, so the session is loaded from the cookie
// here and never saved.
func Events(w http.ResponseWriter, r *http.Request) {
	if sessionManager == nil || registry == nil {
		http.Error(w, "events not available", http.StatusServiceUnavailable)
		return
	}

	cookie, err := r.Cookie(sessionManager.Cookie.Name)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	ctx, err := sessionManager.Load(r.Context(), cookie.Value)
	if err != nil {
		applog.Error(r.Context(), "failed to load session for events", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	id := sessionManager.GetString(ctx, sessionOriginKey)
	if id == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	ws, release, err := registry.Acquire(r.Context(), id)
	if err != nil {
		applog.Error(r.Context(), "failed to open workspace for events", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer release()
	if err := realtime.Serve(w, r, ws); err != nil {
		applog.Debug(r.Context(), "event stream ended", "origin", id, "error", err)
	}
}
