package handlers

import (
	"net/http"

	"creatives/internal/content"
	applog "creatives/internal/log"
	"creatives/internal/views/pages"
)

// Home renders the feed of published posts, filtered by the q, category and
// sort query parameters.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ws, err := viewWorkspace(r)
	if err != nil {
		applog.Error(r.Context(), "failed to open workspace for feed", "error", err)
		http.Error(w, "feed not available", http.StatusServiceUnavailable)
		return
	}

	filter := content.FeedFilterFrom(r.URL.Query())
	data := pages.FeedData{
		Filter: filter,
		Posts:  content.Feed(ws.Content.Posts(), filter),
	}
	if identity, ok := ws.Content.Identity(); ok {
		data.Identity = &identity
	}

	applog.Debug(r.Context(), "rendering feed", "posts", len(data.Posts), "category", filter.Category, "sort", filter.Sort)
	renderPage(w, r, pageMeta{title: "Feed", active: "feed", query: filter.Query, search: true}, pages.Feed(data))
}
