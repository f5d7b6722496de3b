package theme

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	applog "creatives/internal/log"
	"creatives/internal/storage"
)

// Storage keys holding the two settings.
const (
	ModeKey    = "theme"
	PaletteKey = "colorMode"
)

// Setting is the active (mode, palette) pair.
type Setting struct {
	Mode    Mode
	Palette Palette
}

// DefaultSetting is used for any value missing from storage.
var DefaultSetting = Setting{Mode: ModeLight, Palette: PaletteDefault}

// Presenter is the presentation context the active tokens are pushed into.
type Presenter interface {
	SetModeClass(mode Mode)
	SetProperty(name, value string)
}

// Document is a Presenter that records the applied class and custom
// properties so a page shell can render them.
type Document struct {
	mu         sync.RWMutex
	mode       Mode
	properties map[string]string
}

// NewDocument returns an empty Document in light mode.
func NewDocument() *Document {
	return &Document{properties: make(map[string]string)}
}

func (d *Document) SetModeClass(mode Mode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mode = mode
}

func (d *Document) SetProperty(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.properties == nil {
		d.properties = make(map[string]string)
	}
	d.properties[name] = value
}

// ModeClass returns the class applied to the document root.
func (d *Document) ModeClass() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mode.String()
}

// Property returns the value of a custom property, or "" when unset.
func (d *Document) Property(name string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.properties[name]
}

// InlineStyle renders the custom properties as a style attribute value.
func (d *Document) InlineStyle() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.properties))
	for name := range d.properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s; ", name, d.properties[name])
	}
	return strings.TrimSpace(b.String())
}

// Store owns the theme setting of one origin.
type Store struct {
	mu        sync.Mutex
	kv        storage.Store
	presenter Presenter
	setting   Setting

	subscribers map[int]func(Setting)
	nextSub     int
}

// NewStore restores both settings from kv independently, falling back to the
// defaults for missing or unrecognised values, and applies the result once.
func NewStore(ctx context.Context, kv storage.Store, presenter Presenter) (*Store, error) {
	s := &Store{
		kv:          kv,
		presenter:   presenter,
		setting:     DefaultSetting,
		subscribers: make(map[int]func(Setting)),
	}

	rawMode, found, err := kv.Get(ctx, ModeKey)
	if err != nil {
		return nil, fmt.Errorf("restore mode: %w", err)
	}
	if found {
		if mode, err := ParseMode(rawMode); err == nil {
			s.setting.Mode = mode
		} else {
			applog.Debug(ctx, "ignoring stored mode", "value", rawMode)
		}
	}

	rawPalette, found, err := kv.Get(ctx, PaletteKey)
	if err != nil {
		return nil, fmt.Errorf("restore palette: %w", err)
	}
	if found {
		if palette, err := ParsePalette(rawPalette); err == nil {
			s.setting.Palette = palette
		} else {
			applog.Debug(ctx, "ignoring stored palette", "value", rawPalette)
		}
	}

	s.apply(s.setting)
	return s, nil
}

// Setting returns the active pair.
func (s *Store) Setting() Setting {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setting
}

// Tokens returns the token set for the active pair.
func (s *Store) Tokens() TokenSet {
	setting := s.Setting()
	return Lookup(setting.Palette, setting.Mode)
}

// SetMode switches between light and dark.
func (s *Store) SetMode(ctx context.Context, mode Mode) error {
	if mode >= modeCount {
		return fmt.Errorf("%w: %d", ErrUnknownMode, uint8(mode))
	}
	_, err := s.update(ctx, func(setting *Setting) { setting.Mode = mode })
	return err
}

// SetPalette selects one of the named palettes.
func (s *Store) SetPalette(ctx context.Context, palette Palette) error {
	if palette >= paletteCount {
		return fmt.Errorf("%w: %d", ErrUnknownPalette, uint8(palette))
	}
	_, err := s.update(ctx, func(setting *Setting) { setting.Palette = palette })
	return err
}

// ToggleMode flips light and dark and returns the new mode.
func (s *Store) ToggleMode(ctx context.Context) (Mode, error) {
	setting, err := s.update(ctx, func(setting *Setting) { setting.Mode = setting.Mode.Toggle() })
	return setting.Mode, err
}

// Subscribe registers fn to receive every new setting. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(Setting)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) update(ctx context.Context, mutate func(*Setting)) (Setting, error) {
	s.mu.Lock()
	mutate(&s.setting)
	setting := s.setting
	s.apply(setting)
	err := s.persist(ctx, setting)
	listeners := make([]func(Setting), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(setting)
	}
	return setting, err
}

func (s *Store) apply(setting Setting) {
	if s.presenter == nil {
		return
	}
	s.presenter.SetModeClass(setting.Mode)
	for _, token := range Lookup(setting.Palette, setting.Mode).Tokens() {
		s.presenter.SetProperty(CSSVariable(token.Name), token.Value)
	}
}

func (s *Store) persist(ctx context.Context, setting Setting) error {
	if err := s.kv.Set(ctx, ModeKey, setting.Mode.String()); err != nil {
		return fmt.Errorf("persist mode: %w", err)
	}
	if err := s.kv.Set(ctx, PaletteKey, setting.Palette.String()); err != nil {
		return fmt.Errorf("persist palette: %w", err)
	}
	return nil
}
