package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	apptheme "creatives/internal/theme"
	"creatives/internal/views/components"
	viewtheme "creatives/internal/views/theme"
)

// Themes renders the mode and palette pickers plus a preview of the active
// token set.
func Themes(setting apptheme.Setting, tokens apptheme.TokenSet) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewWriter(w)
		m.Raw(`<section class="themes" id="themes"><h1>Customize Your Experience</h1>`)
		m.Raw(`<p class="muted">Choose your preferred theme and color mode to personalize your creative workspace</p>`)

		m.Raw(`<h2>Theme Mode</h2><div class="mode-options">`)
		for _, option := range viewtheme.ModeOptions() {
			writeOption(m, "mode", option, option.Value == setting.Mode.String())
		}
		m.Raw(`</div>`)
		m.Raw(`<form method="post" action="/preferences/theme" hx-post="/preferences/theme" hx-swap="none"><input type="hidden" name="toggle" value="1"><button type="submit">Toggle mode</button></form>`)

		m.Raw(`<h2>Color Palette</h2><div class="palette-options">`)
		for _, option := range viewtheme.PaletteOptions(setting.Mode) {
			writeOption(m, "palette", option, option.Value == setting.Palette.String())
		}
		m.Raw(`</div>`)

		m.Raw(`<h2>Preview</h2><dl class="token-preview">`)
		for _, token := range tokens.Tokens() {
			m.Rawf(`<div><dt>%s</dt><dd style="background: hsl(%s)">%s</dd></div>`,
				components.Text(token.Name), components.Text(token.Value), components.Text(token.Value))
		}
		m.Raw(`</dl></section>`)
		return m.Err()
	})
}

func writeOption(m *components.Writer, field string, option viewtheme.Option, selected bool) {
	state := "inactive"
	if selected {
		state = "active"
	}
	m.Rawf(`<form method="post" action="/preferences/theme" hx-post="/preferences/theme" hx-swap="none" data-%s="%s" data-state="%s">`,
		field, components.Text(option.Value), state)
	m.Rawf(`<input type="hidden" name="%s" value="%s"><button type="submit">`, field, components.Text(option.Value))
	if option.Swatch != "" {
		m.Rawf(`<span class="swatch" style="background: hsl(%s)"></span>`, components.Text(option.Swatch))
	}
	m.Rawf(`<strong>%s</strong><span class="muted">%s</span></button></form>`, components.Text(option.Label), components.Text(option.Description))
}
