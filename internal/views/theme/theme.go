// Package theme describes the selectable modes and palettes for rendering.
package theme

import (
	apptheme "creatives/internal/theme"
)

// Option represents a selectable theme value exposed to the UI.
type Option struct {
	Value       string
	Label       string
	Description string
	// Swatch is the primary token of the option, used for the preview dot.
	Swatch string
}

var paletteCopy = map[apptheme.Palette][2]string{
	apptheme.PaletteDefault: {"Default", "Classic neutral theme"},
	apptheme.PalettePurple:  {"Purple", "Creative and artistic"},
	apptheme.PaletteYellow:  {"Yellow", "Bright and energetic"},
	apptheme.PaletteGreen:   {"Green", "Natural and calming"},
	apptheme.PaletteBlue:    {"Blue", "Professional and trustworthy"},
	apptheme.PaletteRed:     {"Red", "Bold and passionate"},
	apptheme.PaletteOrange:  {"Orange", "Warm and friendly"},
}

// PaletteOptions lists every palette in display order, with swatches taken
// from the given mode.
func PaletteOptions(mode apptheme.Mode) []Option {
	palettes := apptheme.Palettes()
	options := make([]Option, 0, len(palettes))
	for _, palette := range palettes {
		text := paletteCopy[palette]
		options = append(options, Option{
			Value:       palette.String(),
			Label:       text[0],
			Description: text[1],
			Swatch:      apptheme.Lookup(palette, mode).Primary,
		})
	}
	return options
}

var modeCopy = map[apptheme.Mode][2]string{
	apptheme.ModeLight: {"Light", "Bright and clean interface"},
	apptheme.ModeDark:  {"Dark", "Easy on the eyes in low light"},
}

// ModeOptions lists every mode in display order.
func ModeOptions() []Option {
	modes := apptheme.Modes()
	options := make([]Option, 0, len(modes))
	for _, mode := range modes {
		text := modeCopy[mode]
		options = append(options, Option{Value: mode.String(), Label: text[0], Description: text[1]})
	}
	return options
}
