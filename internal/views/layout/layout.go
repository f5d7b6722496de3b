// Package layout renders the page shell around every full-page response.
package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	apptheme "creatives/internal/theme"
	"creatives/internal/views/components"
)

// Shell carries the applied theme of the requesting origin.
type Shell struct {
	ModeClass string
	Style     string
}

// ShellFrom reads the applied mode class and custom properties from doc. A
// nil document yields the light default.
func ShellFrom(doc *apptheme.Document) Shell {
	if doc == nil {
		return Shell{ModeClass: apptheme.ModeLight.String()}
	}
	return Shell{ModeClass: doc.ModeClass(), Style: doc.InlineStyle()}
}

// Layout wraps content in the document shell. The theme's mode class goes on
// the root element and the palette tokens are inlined as custom properties.
func Layout(title string, shell Shell, header, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewWriter(w)
		m.Raw(`<!DOCTYPE html>`)
		m.Rawf(`<html lang="en" class="%s" style="%s">`, components.Text(shell.ModeClass), components.Text(shell.Style))
		m.Raw(`<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.Rawf(`<title>%s · Creatives</title>`, components.Text(title))
		m.Raw(`<link rel="stylesheet" href="/assets/app.css"><script src="https://unpkg.com/htmx.org@2.0.4" defer></script><script src="/assets/events.js" defer></script>`)
		m.Raw(`</head><body class="min-h-screen bg-background">`)
		m.Render(ctx, header)
		m.Raw(`<main id="content" class="container">`)
		m.Render(ctx, content)
		m.Raw(`</main></body></html>`)
		return m.Err()
	})
}
