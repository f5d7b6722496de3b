package handlers

import (
	"net/http"
	"strings"

	"creatives/internal/content"
	applog "creatives/internal/log"
	"creatives/internal/views/pages"
)

// Profile renders the signed-in identity's profile and accepts profile edits.
func Profile(w http.ResponseWriter, r *http.Request) {
	ws, err := currentWorkspace(r)
	if err != nil {
		applog.Error(r.Context(), "failed to open workspace for profile", "error", err)
		http.Error(w, "profile not available", http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(r.PostFormValue("name"))
		if name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		if err := ws.Content.UpdateProfile(r.Context(), name, strings.TrimSpace(r.PostFormValue("bio"))); err != nil {
			applog.Error(r.Context(), "failed to update profile", "error", err)
			http.Error(w, "failed to save profile", http.StatusInternalServerError)
			return
		}
		sessionManager.Put(r.Context(), sessionFlashKey, "Profile updated.")
		redirectTo(w, r, "/profile")
		return
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	identity, ok := ws.Content.Identity()
	if !ok {
		redirectToLogin(w, r)
		return
	}
	tab := content.ParseTab(r.URL.Query().Get("tab"))
	data := pages.ProfileData{
		Profile: content.BuildProfile(ws.Content.Posts(), identity),
		Tab:     tab,
		Message: sessionManager.PopString(r.Context(), sessionFlashKey),
	}
	renderPage(w, r, pageMeta{title: identity.Name, active: "profile"}, pages.Profile(data))
}
