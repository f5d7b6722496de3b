package handlers

import (
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	applog "creatives/internal/log"
	"creatives/internal/origin"
	"creatives/internal/upload"
	"creatives/models"
)

const (
	sessionOriginKey = "origin:id"
	sessionFlashKey  = "flash:message"
)

var (
	sessionManager *scs.SessionManager
	registry       *origin.Registry
	intake         *upload.Intake
)

var errNotConfigured = errors.New("handlers not configured")

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, reg *origin.Registry, in *upload.Intake) {
	sessionManager = sm
	registry = reg
	intake = in
}

// originID returns the origin bound to the request's session. When create
// is set a fresh origin is assigned on first visit; otherwise an unbound
// session yields "".
func originID(r *http.Request, create bool) (string, error) {
	if sessionManager == nil {
		return "", errNotConfigured
	}
	id := sessionManager.GetString(r.Context(), sessionOriginKey)
	if id == "" && create {
		id = uuid.NewString()
		sessionManager.Put(r.Context(), sessionOriginKey, id)
		applog.Debug(r.Context(), "assigned new origin", "origin", id)
	}
	return id, nil
}

// currentWorkspace returns the caller's own workspace, assigning an origin
// if needed. Handlers that change state use it.
func currentWorkspace(r *http.Request) (*origin.Workspace, error) {
	if registry == nil {
		return nil, errNotConfigured
	}
	id, err := originID(r, true)
	if err != nil {
		return nil, err
	}
	return registry.Open(r.Context(), id)
}

// viewWorkspace is currentWorkspace for read-only handlers: visitors without
// an origin see the shared guest workspace and get no session.
func viewWorkspace(r *http.Request) (*origin.Workspace, error) {
	if registry == nil {
		return nil, errNotConfigured
	}
	id, err := originID(r, false)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return registry.Guest(r.Context())
	}
	return registry.Open(r.Context(), id)
}

func currentIdentity(r *http.Request) (*models.Identity, error) {
	ws, err := viewWorkspace(r)
	if err != nil {
		return nil, err
	}
	identity, ok := ws.Content.Identity()
	if !ok {
		return nil, nil
	}
	return &identity, nil
}

// ActiveSession returns true when the request's origin has a signed-in identity.
func ActiveSession(r *http.Request) bool {
	identity, err := currentIdentity(r)
	if err != nil {
		applog.Debug(r.Context(), "unable to resolve identity", "error", err)
		return false
	}
	return identity != nil
}

// RequireAuthentication ensures the origin has a signed-in identity before
// accessing the resource.
func RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ActiveSession(r) {
			redirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Logout signs the identity out. The origin and its posts are kept.
func Logout(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPost:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id, err := originID(r, false)
	if err != nil {
		applog.Error(r.Context(), "failed to resolve origin for logout", "error", err)
		http.Error(w, "session not available", http.StatusServiceUnavailable)
		return
	}
	if id == "" {
		redirectToLogin(w, r)
		return
	}
	ws, err := registry.Open(r.Context(), id)
	if err != nil {
		applog.Error(r.Context(), "failed to open workspace for logout", "error", err)
		http.Error(w, "session not available", http.StatusServiceUnavailable)
		return
	}
	if err := ws.Content.SignOut(r.Context()); err != nil {
		applog.Error(r.Context(), "failed to clear identity", "error", err)
	}
	if err := sessionManager.RenewToken(r.Context()); err != nil {
		applog.Error(r.Context(), "failed to renew session token", "error", err)
	}

	redirectToLogin(w, r)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirectTo(w, r, "/login")
}

func redirectToHome(w http.ResponseWriter, r *http.Request) {
	redirectTo(w, r, "/")
}

func redirectTo(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}
