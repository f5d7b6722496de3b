package theme

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenSet is the fixed record of color tokens for one (palette, mode) pair.
// Values are HSL triplets consumed through CSS custom properties.
type TokenSet struct {
	Primary             string
	PrimaryForeground   string
	Secondary           string
	SecondaryForeground string
	Accent              string
	AccentForeground    string
	Muted               string
	MutedForeground     string
	Border              string
	Ring                string
}

// Token is a single named color value.
type Token struct {
	Name  string
	Value string
}

// Tokens returns the ten tokens in their canonical order.
func (t TokenSet) Tokens() []Token {
	return []Token{
		{"primary", t.Primary},
		{"primaryForeground", t.PrimaryForeground},
		{"secondary", t.Secondary},
		{"secondaryForeground", t.SecondaryForeground},
		{"accent", t.Accent},
		{"accentForeground", t.AccentForeground},
		{"muted", t.Muted},
		{"mutedForeground", t.MutedForeground},
		{"border", t.Border},
		{"ring", t.Ring},
	}
}

// CSSVariable converts a token name such as primaryForeground into the
// custom property --primary-foreground.
func CSSVariable(name string) string {
	var b strings.Builder
	b.WriteString("--")
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Lookup returns the token set for a palette and mode.
func Lookup(p Palette, m Mode) TokenSet {
	if p >= paletteCount || m >= modeCount {
		panic(fmt.Sprintf("theme: no tokens for %s/%s", p, m))
	}
	return table[p][m]
}

// table is indexed by palette then mode.
var table = [paletteCount][modeCount]TokenSet{
	PaletteDefault: {
		ModeLight: {
			Primary:             "222.2 84% 4.9%",
			PrimaryForeground:   "210 40% 98%",
			Secondary:           "210 40% 96%",
			SecondaryForeground: "222.2 84% 4.9%",
			Accent:              "210 40% 96%",
			AccentForeground:    "222.2 84% 4.9%",
			Muted:               "210 40% 96%",
			MutedForeground:     "215.4 16.3% 46.9%",
			Border:              "214.3 31.8% 91.4%",
			Ring:                "222.2 84% 4.9%",
		},
		ModeDark: {
			Primary:             "210 40% 98%",
			PrimaryForeground:   "222.2 84% 4.9%",
			Secondary:           "217.2 32.6% 17.5%",
			SecondaryForeground: "210 40% 98%",
			Accent:              "217.2 32.6% 17.5%",
			AccentForeground:    "210 40% 98%",
			Muted:               "217.2 32.6% 17.5%",
			MutedForeground:     "215 20.2% 65.1%",
			Border:              "217.2 32.6% 17.5%",
			Ring:                "212.7 26.8% 83.9%",
		},
	},
	PalettePurple: {
		ModeLight: {
			Primary:             "262.1 83.3% 57.8%",
			PrimaryForeground:   "210 40% 98%",
			Secondary:           "270 3% 96%",
			SecondaryForeground: "262.1 83.3% 57.8%",
			Accent:              "270 3% 96%",
			AccentForeground:    "262.1 83.3% 57.8%",
			Muted:               "270 3% 96%",
			MutedForeground:     "215.4 16.3% 46.9%",
			Border:              "270 6% 90%",
			Ring:                "262.1 83.3% 57.8%",
		},
		ModeDark: {
			Primary:             "263.4 70% 50.4%",
			PrimaryForeground:   "210 40% 98%",
			Secondary:           "270 3.7% 15.9%",
			SecondaryForeground: "210 40% 98%",
			Accent:              "270 3.7% 15.9%",
			AccentForeground:    "210 40% 98%",
			Muted:               "270 3.7% 15.9%",
			MutedForeground:     "264.4 6.1% 50%",
			Border:              "270 3.7% 15.9%",
			Ring:                "263.4 70% 50.4%",
		},
	},
	PaletteYellow: {
		ModeLight: {
			Primary:             "47.9 95.8% 53.1%",
			PrimaryForeground:   "26 83.3% 14.1%",
			Secondary:           "60 4.8% 95.9%",
			SecondaryForeground: "24 9.8% 10%",
			Accent:              "60 4.8% 95.9%",
			AccentForeground:    "24 9.8% 10%",
			Muted:               "60 4.8% 95.9%",
			MutedForeground:     "25 5.3% 44.7%",
			Border:              "60 9% 89%",
			Ring:                "47.9 95.8% 53.1%",
		},
		ModeDark: {
			Primary:             "47.9 95.8% 53.1%",
			PrimaryForeground:   "26 83.3% 14.1%",
			Secondary:           "12 6.5% 15.1%",
			SecondaryForeground: "210 40% 98%",
			Accent:              "12 6.5% 15.1%",
			AccentForeground:    "210 40% 98%",
			Muted:               "12 6.5% 15.1%",
			MutedForeground:     "24 5.4% 63.9%",
			Border:              "12 6.5% 15.1%",
			Ring:                "47.9 95.8% 53.1%",
		},
	},
	PaletteGreen: {
		ModeLight: {
			Primary:             "142.1 76.2% 36.3%",
			PrimaryForeground:   "355.7 100% 97.3%",
			Secondary:           "138 11% 96%",
			SecondaryForeground: "142.1 76.2% 36.3%",
			Accent:              "138 11% 96%",
			AccentForeground:    "142.1 76.2% 36.3%",
			Muted:               "138 11% 96%",
			MutedForeground:     "215.4 16.3% 46.9%",
			Border:              "138 13% 90%",
			Ring:                "142.1 76.2% 36.3%",
		},
		ModeDark: {
			Primary:             "142.1 70.6% 45.3%",
			PrimaryForeground:   "144.9 80.4% 10%",
			Secondary:           "138 3.5% 15.9%",
			SecondaryForeground: "210 40% 98%",
			Accent:              "138 3.5% 15.9%",
			AccentForeground:    "210 40% 98%",
			Muted:               "138 3.5% 15.9%",
			MutedForeground:     "142.1 4.1% 50%",
			Border:              "138 3.5% 15.9%",
			Ring:                "142.1 70.6% 45.3%",
		},
	},
	PaletteBlue: {
		ModeLight: {
			Primary:             "221.2 83.2% 53.3%",
			PrimaryForeground:   "210 40% 98%",
			Secondary:           "220 14.3% 95.9%",
			SecondaryForeground: "220.9 39.3% 11%",
			Accent:              "220 14.3% 95.9%",
			AccentForeground:    "220.9 39.3% 11%",
			Muted:               "220 14.3% 95.9%",
			MutedForeground:     "220 8.9% 46.1%",
			Border:              "220 13% 91%",
			Ring:                "221.2 83.2% 53.3%",
		},
		ModeDark: {
			Primary:             "217.2 91.2% 59.8%",
			PrimaryForeground:   "222.2 84% 4.9%",
			Secondary:           "217.2 32.6% 17.5%",
			SecondaryForeground: "210 40% 98%",
			Accent:              "217.2 32.6% 17.5%",
			AccentForeground:    "210 40% 98%",
			Muted:               "217.2 32.6% 17.5%",
			MutedForeground:     "215 20.2% 65.1%",
			Border:              "217.2 32.6% 17.5%",
			Ring:                "217.2 91.2% 59.8%",
		},
	},
	PaletteRed: {
		ModeLight: {
			Primary:             "0 72.2% 50.6%",
			PrimaryForeground:   "210 40% 98%",
			Secondary:           "0 0% 96.1%",
			SecondaryForeground: "0 0% 9%",
			Accent:              "0 0% 96.1%",
			AccentForeground:    "0 0% 9%",
			Muted:               "0 0% 96.1%",
			MutedForeground:     "0 0% 45.1%",
			Border:              "0 0% 89.8%",
			Ring:                "0 72.2% 50.6%",
		},
		ModeDark: {
			Primary:             "0 62.8% 30.6%",
			PrimaryForeground:   "210 40% 98%",
			Secondary:           "0 0% 14.9%",
			SecondaryForeground: "210 40% 98%",
			Accent:              "0 0% 14.9%",
			AccentForeground:    "210 40% 98%",
			Muted:               "0 0% 14.9%",
			MutedForeground:     "0 0% 63.9%",
			Border:              "0 0% 14.9%",
			Ring:                "0 62.8% 30.6%",
		},
	},
	PaletteOrange: {
		ModeLight: {
			Primary:             "24.6 95% 53.1%",
			PrimaryForeground:   "210 40% 98%",
			Secondary:           "60 4.8% 95.9%",
			SecondaryForeground: "24 9.8% 10%",
			Accent:              "60 4.8% 95.9%",
			AccentForeground:    "24 9.8% 10%",
			Muted:               "60 4.8% 95.9%",
			MutedForeground:     "25 5.3% 44.7%",
			Border:              "60 9% 89%",
			Ring:                "24.6 95% 53.1%",
		},
		ModeDark: {
			Primary:             "20.5 90.2% 48.2%",
			PrimaryForeground:   "210 40% 98%",
			Secondary:           "12 6.5% 15.1%",
			SecondaryForeground: "210 40% 98%",
			Accent:              "12 6.5% 15.1%",
			AccentForeground:    "210 40% 98%",
			Muted:               "12 6.5% 15.1%",
			MutedForeground:     "24 5.4% 63.9%",
			Border:              "12 6.5% 15.1%",
			Ring:                "20.5 90.2% 48.2%",
		},
	},
}

func init() {
	for p := Palette(0); p < paletteCount; p++ {
		for m := Mode(0); m < modeCount; m++ {
			for _, token := range table[p][m].Tokens() {
				if token.Value == "" {
					panic(fmt.Sprintf("theme: %s/%s is missing token %s", p, m, token.Name))
				}
			}
		}
	}
}
