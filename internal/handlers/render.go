package handlers

import (
	"net/http"

	"github.com/a-h/templ"

	applog "creatives/internal/log"
	"creatives/internal/views/components"
	"creatives/internal/views/layout"
	"creatives/models"
)

type pageMeta struct {
	title  string
	active string
	query  string
	search bool
}

// renderPage writes component inside the page shell, or alone for HTMX
// requests that swap a fragment.
func renderPage(w http.ResponseWriter, r *http.Request, meta pageMeta, component templ.Component) {
	if isHTMX(r) {
		renderComponent(w, r, component)
		return
	}

	shell := layout.ShellFrom(nil)
	var identity *models.Identity
	if ws, err := viewWorkspace(r); err == nil {
		shell = layout.ShellFrom(ws.Document)
		if current, ok := ws.Content.Identity(); ok {
			identity = &current
		}
	} else {
		applog.Debug(r.Context(), "rendering page without workspace", "error", err)
	}

	header := components.Header(components.HeaderData{
		Identity:   identity,
		Query:      meta.query,
		ShowSearch: meta.search,
		Active:     meta.active,
	})
	renderComponent(w, r, layout.Layout(meta.title, shell, header, component))
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render component", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// isHTMX reports whether the request came from an htmx swap or boosted link.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true"
}
