package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"creatives/internal/views/components"
	"creatives/models"
)

// CreateForm holds the submitted post fields.
type CreateForm struct {
	Title       string
	Description string
	Tags        []string
	Category    models.Category
	IsDraft     bool
}

// CreateData drives the post creation page.
type CreateData struct {
	Form    CreateForm
	Message string
	Success string
	// Skipped names files the upload intake rejected.
	Skipped []string
}

// Create renders the post creation form.
func Create(data CreateData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewWriter(w)
		m.Raw(`<section class="create" id="create"><h1>Share Your Work</h1>`)
		m.Render(ctx, components.Alert(components.AlertSuccess, data.Success))
		m.Render(ctx, components.Alert(components.AlertError, data.Message))
		if len(data.Skipped) > 0 {
			m.Render(ctx, components.Alert(components.AlertError,
				"Some files were skipped. Only images and videos under 10MB are allowed: "+strings.Join(data.Skipped, ", ")))
		}

		m.Raw(`<form method="post" action="/create" enctype="multipart/form-data">`)
		m.Raw(`<div class="dropzone"><p class="muted">Drag and drop your files here, or click to browse</p><p class="muted">Images and videos up to 10MB</p>`)
		m.Raw(`<input type="file" name="files" accept="image/*,video/*" multiple></div>`)
		m.Rawf(`<label>Title<input type="text" name="title" value="%s" required></label>`, components.Text(data.Form.Title))
		m.Rawf(`<label>Description<textarea name="description" rows="4">%s</textarea></label>`, components.Text(data.Form.Description))
		m.Rawf(`<label>Tags<input type="text" name="tags" value="%s" placeholder="branding, logo, minimalist"></label>`, components.Text(strings.Join(data.Form.Tags, ", ")))

		m.Raw(`<label>Category<select name="category">`)
		for _, category := range models.Categories() {
			selected := ""
			if category == data.Form.Category {
				selected = " selected"
			}
			m.Rawf(`<option value="%s"%s>%s</option>`, category, selected, capitalize(string(category)))
		}
		m.Raw(`</select></label>`)

		checked := ""
		if data.Form.IsDraft {
			checked = " checked"
		}
		m.Rawf(`<label class="checkbox"><input type="checkbox" name="draft" value="true"%s> Save as draft</label>`, checked)
		m.Raw(`<button type="submit">Publish</button></form></section>`)
		return m.Err()
	})
}
