package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"creatives/internal/content"
	applog "creatives/internal/log"
	"creatives/internal/views/components"
	"creatives/internal/views/pages"
	"creatives/models"
)

// LikePost toggles the like flag of a post. HTMX requests get the updated
// like control back; others are redirected to the referring page.
func LikePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := pages.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ws, err := currentWorkspace(r)
	if err != nil {
		applog.Error(r.Context(), "failed to open workspace for like", "error", err)
		http.Error(w, "likes not available", http.StatusServiceUnavailable)
		return
	}

	post, found, err := ws.Content.ToggleLike(r.Context(), id)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		applog.Error(r.Context(), "failed to persist like", "error", err, "postID", id)
	}

	applog.Debug(r.Context(), "like toggled", "postID", id, "liked", post.Liked, "likes", post.LikeCount)
	if isHTMX(r) {
		renderComponent(w, r, components.LikeButton(post, true))
		return
	}
	redirectTo(w, r, backTo(r, "/"))
}

// UpdatePost merges the submitted fields into a post owned by the signed-in
// identity. Fields absent from the form are left untouched.
func UpdatePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := pages.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	ws, err := currentWorkspace(r)
	if err != nil {
		applog.Error(r.Context(), "failed to open workspace for update", "error", err)
		http.Error(w, "updates not available", http.StatusServiceUnavailable)
		return
	}
	identity, ok := ws.Content.Identity()
	if !ok {
		redirectToLogin(w, r)
		return
	}
	post, found := ws.Content.Post(id)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if post.OwnerID != identity.ID {
		applog.Debug(r.Context(), "update rejected for foreign post", "postID", id)
		w.WriteHeader(http.StatusForbidden)
		return
	}

	patch, err := patchFrom(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := ws.Content.UpdatePost(r.Context(), id, patch); err != nil {
		applog.Error(r.Context(), "failed to persist post update", "error", err, "postID", id)
		http.Error(w, "failed to save post", http.StatusInternalServerError)
		return
	}

	applog.Debug(r.Context(), "post updated", "postID", id)
	redirectTo(w, r, backTo(r, "/profile"))
}

type badFieldError string

func (e badFieldError) Error() string { return "invalid " + string(e) }

func patchFrom(r *http.Request) (content.PostPatch, error) {
	var patch content.PostPatch
	form := r.PostForm
	if form.Has("title") {
		title := strings.TrimSpace(form.Get("title"))
		if title == "" {
			return patch, badFieldError("title")
		}
		patch.Title = &title
	}
	if form.Has("description") {
		description := strings.TrimSpace(form.Get("description"))
		patch.Description = &description
	}
	if form.Has("image") {
		image := form.Get("image")
		patch.ImageRef = &image
	}
	if form.Has("tags") {
		patch.Tags = content.NormalizeTags(content.SplitTags(form.Get("tags")))
	}
	if form.Has("category") {
		category, ok := models.ParseCategory(form.Get("category"))
		if !ok {
			return patch, badFieldError("category")
		}
		patch.Category = &category
	}
	if form.Has("draft") {
		draft := formBool(form.Get("draft"))
		patch.IsDraft = &draft
	}
	return patch, nil
}

// backTo returns the local referring path, or fallback.
func backTo(r *http.Request, fallback string) string {
	referer := r.Header.Get("Referer")
	if referer == "" {
		return fallback
	}
	if i := strings.Index(referer, "://"); i >= 0 {
		rest := referer[i+3:]
		slash := strings.IndexByte(rest, '/')
		if slash < 0 {
			return fallback
		}
		if rest[:slash] != r.Host {
			return fallback
		}
		referer = rest[slash:]
	}
	if !strings.HasPrefix(referer, "/") || strings.HasPrefix(referer, "//") {
		return fallback
	}
	return referer
}
