// Package theme owns the light/dark mode and color palette settings, the fixed
// palette token table and the application of the active tokens to a page.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMode    = errors.New("theme: unknown mode")
	ErrUnknownPalette = errors.New("theme: unknown palette")
)

// Mode is the light or dark presentation variant.
type Mode uint8

const (
	ModeLight Mode = iota
	ModeDark

	modeCount
)

var modeNames = [modeCount]string{
	ModeLight: "light",
	ModeDark:  "dark",
}

func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// ParseMode resolves a mode name, case-insensitively.
func ParseMode(value string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for i, name := range modeNames {
		if name == normalized {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, value)
}

// Modes lists every mode.
func Modes() []Mode {
	return []Mode{ModeLight, ModeDark}
}

// Palette is a named set of color tokens.
type Palette uint8

const (
	PaletteDefault Palette = iota
	PalettePurple
	PaletteYellow
	PaletteGreen
	PaletteBlue
	PaletteRed
	PaletteOrange

	paletteCount
)

var paletteNames = [paletteCount]string{
	PaletteDefault: "default",
	PalettePurple:  "purple",
	PaletteYellow:  "yellow",
	PaletteGreen:   "green",
	PaletteBlue:    "blue",
	PaletteRed:     "red",
	PaletteOrange:  "orange",
}

func (p Palette) String() string {
	if p < paletteCount {
		return paletteNames[p]
	}
	return fmt.Sprintf("Palette(%d)", uint8(p))
}

// ParsePalette resolves a palette name, case-insensitively.
func ParsePalette(value string) (Palette, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for i, name := range paletteNames {
		if name == normalized {
			return Palette(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPalette, value)
}

// Palettes lists every palette in display order.
func Palettes() []Palette {
	out := make([]Palette, 0, paletteCount)
	for p := Palette(0); p < paletteCount; p++ {
		out = append(out, p)
	}
	return out
}
