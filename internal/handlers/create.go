package handlers

import (
	"errors"
	"net/http"
	"strings"

	"creatives/internal/content"
	applog "creatives/internal/log"
	"creatives/internal/upload"
	"creatives/internal/views/pages"
	"creatives/models"
)

const maxMultipartMemory = 32 << 20

// CreatePost renders the post creation form and accepts new posts.
func CreatePost(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		renderCreate(w, r, pages.CreateData{Form: pages.CreateForm{Category: models.CategoryDesign}})
	case http.MethodPost:
		ws, err := currentWorkspace(r)
		if err != nil || intake == nil {
			applog.Error(r.Context(), "post creation dependencies unavailable", "error", err)
			http.Error(w, "post creation not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			applog.Debug(r.Context(), "failed to parse post form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}

		form := createFormFrom(r)
		data := pages.CreateData{Form: form}
		if strings.TrimSpace(form.Title) == "" {
			data.Message = "Please add a title for your post."
			renderCreate(w, r, data)
			return
		}

		var files []upload.Candidate
		if r.MultipartForm != nil {
			files = upload.FromMultipart(r.MultipartForm.File["files"])
		}
		result, err := intake.Accept(files)
		if err != nil {
			applog.Error(r.Context(), "failed to read uploaded files", "error", err)
			data.Message = "Failed to create post. Please try again."
			renderCreate(w, r, data)
			return
		}
		for _, skipped := range result.Skipped {
			data.Skipped = append(data.Skipped, skipped.Name)
		}
		if len(result.Accepted) == 0 {
			data.Message = "Please upload at least one file."
			renderCreate(w, r, data)
			return
		}

		post, err := ws.Content.AddPost(r.Context(), content.PostDraft{
			Title:       form.Title,
			Description: form.Description,
			ImageRef:    result.Primary,
			Tags:        form.Tags,
			Category:    form.Category,
			IsDraft:     form.IsDraft,
		})
		if errors.Is(err, content.ErrUnauthenticated) {
			redirectToLogin(w, r)
			return
		}
		if err != nil {
			applog.Error(r.Context(), "failed to persist new post", "error", err, "postID", post.ID)
			data.Message = "Failed to create post. Please try again."
			renderCreate(w, r, data)
			return
		}

		applog.Debug(r.Context(), "post created", "postID", post.ID, "draft", post.IsDraft, "files", len(result.Accepted))
		success := "Post published successfully!"
		if post.IsDraft {
			success = "Draft saved successfully!"
		}
		renderCreate(w, r, pages.CreateData{
			Form:    pages.CreateForm{Category: models.CategoryDesign},
			Success: success,
			Skipped: data.Skipped,
		})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func createFormFrom(r *http.Request) pages.CreateForm {
	form := pages.CreateForm{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Tags:        content.NormalizeTags(content.SplitTags(r.FormValue("tags"))),
		Category:    models.CategoryDesign,
		IsDraft:     formBool(r.FormValue("draft")),
	}
	if category, ok := models.ParseCategory(r.FormValue("category")); ok {
		form.Category = category
	}
	return form
}

func formBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

func renderCreate(w http.ResponseWriter, r *http.Request, data pages.CreateData) {
	renderPage(w, r, pageMeta{title: "Create", active: "create"}, pages.Create(data))
}
