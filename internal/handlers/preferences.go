package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	applog "creatives/internal/log"
	"creatives/internal/theme"
	"creatives/internal/views/pages"
)

type preferencesResponse struct {
	Mode    string `json:"mode"`
	Palette string `json:"palette"`
}

var errNoSelection = errors.New("no theme selection submitted")

// Themes renders the theme customization page.
func Themes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ws, err := viewWorkspace(r)
	if err != nil {
		applog.Error(r.Context(), "failed to open workspace for themes", "error", err)
		http.Error(w, "themes not available", http.StatusServiceUnavailable)
		return
	}
	renderPage(w, r, pageMeta{title: "Themes", active: "themes"}, pages.Themes(ws.Theme.Setting(), ws.Theme.Tokens()))
}

// UpdatePreferences applies a mode, palette or mode toggle to the origin's
// theme and answers with the resulting setting.
func UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		applog.Debug(r.Context(), "preferences update with unsupported method", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ws, err := currentWorkspace(r)
	if err != nil {
		applog.Error(r.Context(), "failed to open workspace for preferences", "error", err)
		http.Error(w, "preferences not available", http.StatusServiceUnavailable)
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse preferences form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	if err := applyPreferences(r, ws.Theme); err != nil {
		if errors.Is(err, theme.ErrUnknownMode) || errors.Is(err, theme.ErrUnknownPalette) || errors.Is(err, errNoSelection) {
			applog.Debug(r.Context(), "received invalid theme selection", "error", err)
			http.Error(w, "invalid theme selection", http.StatusBadRequest)
			return
		}
		applog.Error(r.Context(), "failed to persist theme preferences", "error", err)
		http.Error(w, "failed to save preferences", http.StatusInternalServerError)
		return
	}

	setting := ws.Theme.Setting()
	applog.Debug(r.Context(), "theme preferences updated", "mode", setting.Mode.String(), "palette", setting.Palette.String())

	if !isHTMX(r) && !wantsJSON(r) {
		redirectTo(w, r, backTo(r, "/themes"))
		return
	}
	response := preferencesResponse{Mode: setting.Mode.String(), Palette: setting.Palette.String()}
	w.Header().Set("Content-Type", "application/json")
	if isHTMX(r) {
		w.Header().Set("HX-Refresh", "true")
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		applog.Error(r.Context(), "failed to encode preferences response", "error", err)
	}
}

func applyPreferences(r *http.Request, store *theme.Store) error {
	ctx := r.Context()
	applied := false

	if formBool(r.FormValue("toggle")) {
		if _, err := store.ToggleMode(ctx); err != nil {
			return err
		}
		applied = true
	}
	if value := strings.TrimSpace(r.FormValue("mode")); value != "" {
		mode, err := theme.ParseMode(value)
		if err != nil {
			return err
		}
		if err := store.SetMode(ctx, mode); err != nil {
			return err
		}
		applied = true
	}
	if value := strings.TrimSpace(r.FormValue("palette")); value != "" {
		palette, err := theme.ParsePalette(value)
		if err != nil {
			return err
		}
		if err := store.SetPalette(ctx, palette); err != nil {
			return err
		}
		applied = true
	}
	if !applied {
		return errNoSelection
	}
	return nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
