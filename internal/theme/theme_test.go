package theme

import (
	"context"
	"errors"
	"testing"

	"creatives/internal/storage"
)

func TestParsePalette(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value   string
		want    Palette
		wantErr bool
	}{
		{"default", PaletteDefault, false},
		{"Purple", PalettePurple, false},
		{" orange ", PaletteOrange, false},
		{"magenta", 0, true},
		{"", 0, true},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePalette(tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPalette) {
					t.Fatalf("ParsePalette(%q) error = %v, want ErrUnknownPalette", tt.value, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ParsePalette(%q) = (%s, %v), want %s", tt.value, got, err, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	if mode, err := ParseMode("DARK"); err != nil || mode != ModeDark {
		t.Fatalf("ParseMode(DARK) = (%s, %v)", mode, err)
	}
	if _, err := ParseMode("sepia"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestEveryPaletteDefinesEveryToken(t *testing.T) {
	t.Parallel()

	cells := 0
	for _, palette := range Palettes() {
		for _, mode := range Modes() {
			cells++
			tokens := Lookup(palette, mode).Tokens()
			if len(tokens) != 10 {
				t.Fatalf("%s/%s has %d tokens, want 10", palette, mode, len(tokens))
			}
			for _, token := range tokens {
				if token.Value == "" {
					t.Fatalf("%s/%s is missing %s", palette, mode, token.Name)
				}
			}
		}
	}
	if cells != 14 {
		t.Fatalf("expected 14 palette entries, got %d", cells)
	}
}

func TestLookupMatchesKnownValues(t *testing.T) {
	t.Parallel()

	if got := Lookup(PalettePurple, ModeLight).Primary; got != "262.1 83.3% 57.8%" {
		t.Fatalf("purple/light primary = %q", got)
	}
	if got := Lookup(PaletteDefault, ModeDark).Ring; got != "212.7 26.8% 83.9%" {
		t.Fatalf("default/dark ring = %q", got)
	}
}

func TestCSSVariable(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"primary":             "--primary",
		"primaryForeground":   "--primary-foreground",
		"mutedForeground":     "--muted-foreground",
		"secondaryForeground": "--secondary-foreground",
	}
	for name, want := range cases {
		if got := CSSVariable(name); got != want {
			t.Fatalf("CSSVariable(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestNewStoreDefaults(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	store, err := NewStore(context.Background(), storage.NewMemory(), doc)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	if store.Setting() != DefaultSetting {
		t.Fatalf("expected default setting, got %+v", store.Setting())
	}
	if doc.ModeClass() != "light" {
		t.Fatalf("expected light class applied at startup, got %q", doc.ModeClass())
	}
	if got := doc.Property("--primary"); got != "222.2 84% 4.9%" {
		t.Fatalf("expected default primary applied, got %q", got)
	}
}

func TestSettingsSurviveRestart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := storage.NewMemory()

	store, err := NewStore(ctx, kv, NewDocument())
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	if err := store.SetPalette(ctx, PalettePurple); err != nil {
		t.Fatalf("SetPalette returned error: %v", err)
	}
	if err := store.SetMode(ctx, ModeDark); err != nil {
		t.Fatalf("SetMode returned error: %v", err)
	}

	if raw, _, _ := kv.Get(ctx, ModeKey); raw != "dark" {
		t.Fatalf("expected persisted mode dark, got %q", raw)
	}
	if raw, _, _ := kv.Get(ctx, PaletteKey); raw != "purple" {
		t.Fatalf("expected persisted palette purple, got %q", raw)
	}

	doc := NewDocument()
	restarted, err := NewStore(ctx, kv, doc)
	if err != nil {
		t.Fatalf("NewStore after restart returned error: %v", err)
	}
	want := Setting{Mode: ModeDark, Palette: PalettePurple}
	if restarted.Setting() != want {
		t.Fatalf("restored setting = %+v, want %+v", restarted.Setting(), want)
	}
	if got := doc.Property("--primary"); got != "263.4 70% 50.4%" {
		t.Fatalf("expected purple/dark primary applied after restart, got %q", got)
	}
}

func TestRestoreFallsBackPerSetting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := storage.NewMemory()
	_ = kv.Set(ctx, ModeKey, "sepia")
	_ = kv.Set(ctx, PaletteKey, "green")

	store, err := NewStore(ctx, kv, nil)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	want := Setting{Mode: ModeLight, Palette: PaletteGreen}
	if store.Setting() != want {
		t.Fatalf("restored setting = %+v, want %+v", store.Setting(), want)
	}
}

func TestToggleModeAppliesAndNotifies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	doc := NewDocument()
	store, err := NewStore(ctx, storage.NewMemory(), doc)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	var received []Setting
	unsubscribe := store.Subscribe(func(s Setting) { received = append(received, s) })

	mode, err := store.ToggleMode(ctx)
	if err != nil || mode != ModeDark {
		t.Fatalf("ToggleMode = (%s, %v), want dark", mode, err)
	}
	if doc.ModeClass() != "dark" {
		t.Fatalf("expected dark class, got %q", doc.ModeClass())
	}
	if got := doc.Property("--ring"); got != Lookup(PaletteDefault, ModeDark).Ring {
		t.Fatalf("expected dark ring applied, got %q", got)
	}
	if store.Tokens() != Lookup(PaletteDefault, ModeDark) {
		t.Fatalf("expected Tokens to follow the active pair, got %+v", store.Tokens())
	}

	unsubscribe()
	if _, err := store.ToggleMode(ctx); err != nil {
		t.Fatalf("ToggleMode returned error: %v", err)
	}
	if len(received) != 1 || received[0].Mode != ModeDark {
		t.Fatalf("expected exactly one notification before unsubscribe, got %+v", received)
	}
}

func TestSetRejectsOutOfRangeValues(t *testing.T) {
	t.Parallel()

	store, err := NewStore(context.Background(), storage.NewMemory(), nil)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	if err := store.SetMode(context.Background(), Mode(9)); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	if err := store.SetPalette(context.Background(), Palette(42)); !errors.Is(err, ErrUnknownPalette) {
		t.Fatalf("expected ErrUnknownPalette, got %v", err)
	}
}

func TestDocumentInlineStyle(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	doc.SetProperty("--ring", "1 2% 3%")
	doc.SetProperty("--border", "4 5% 6%")

	if got := doc.InlineStyle(); got != "--border: 4 5% 6%; --ring: 1 2% 3%;" {
		t.Fatalf("InlineStyle = %q", got)
	}
}
