// Package origin maps browser origins to their isolated content and theme
// state.
package origin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"creatives/internal/content"
	applog "creatives/internal/log"
	"creatives/internal/storage"
	"creatives/internal/theme"
	"creatives/models"
)

// ErrEmptyID is returned when an origin id is blank.
var ErrEmptyID = errors.New("origin id is empty")

// Workspace is the state owned by one origin.
type Workspace struct {
	ID       string
	Content  *content.Store
	Theme    *theme.Store
	Document *theme.Document
}

// Options configures a Registry.
type Options struct {
	// Authenticator is shared by every origin's content store.
	Authenticator content.Authenticator
	Seed          []models.Post
	// IdleTimeout is how long an unused workspace stays cached. Zero keeps
	// workspaces until the process exits.
	IdleTimeout time.Duration
	Now         func() time.Time
}

type entry struct {
	once      sync.Once
	workspace *Workspace
	err       error
	lastUsed  time.Time
	pins      int
}

// Registry lazily opens and caches workspaces over one durable backend.
type Registry struct {
	backend storage.Store
	opts    Options

	mu      sync.Mutex
	entries map[string]*entry

	guestOnce sync.Once
	guest     *Workspace
	guestErr  error
}

// NewRegistry returns a Registry storing every origin under its own prefix
// of backend.
func NewRegistry(backend storage.Store, opts Options) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{
		backend: backend,
		opts:    opts,
		entries: make(map[string]*entry),
	}
}

// Open returns the workspace of originID, restoring it from storage on first
// use. Concurrent calls for the same origin share one workspace.
func (r *Registry) Open(ctx context.Context, originID string) (*Workspace, error) {
	ws, release, err := r.open(ctx, originID, false)
	if err != nil {
		return nil, err
	}
	release()
	return ws, nil
}

// Acquire opens originID and keeps it cached until release is called,
// however long it sits idle.
func (r *Registry) Acquire(ctx context.Context, originID string) (*Workspace, func(), error) {
	return r.open(ctx, originID, true)
}

func (r *Registry) open(ctx context.Context, originID string, pin bool) (*Workspace, func(), error) {
	originID = strings.TrimSpace(originID)
	if originID == "" {
		return nil, nil, ErrEmptyID
	}

	r.mu.Lock()
	e, ok := r.entries[originID]
	if !ok {
		e = &entry{}
		r.entries[originID] = e
	}
	e.lastUsed = r.opts.Now()
	if pin {
		e.pins++
	}
	r.mu.Unlock()

	var once sync.Once
	release := func() {
		if !pin {
			return
		}
		once.Do(func() {
			r.mu.Lock()
			e.pins--
			e.lastUsed = r.opts.Now()
			r.mu.Unlock()
		})
	}

	e.once.Do(func() {
		e.workspace, e.err = r.build(ctx, originID)
	})
	if e.err != nil {
		release()
		r.mu.Lock()
		if r.entries[originID] == e {
			delete(r.entries, originID)
		}
		r.mu.Unlock()
		return nil, nil, e.err
	}
	return e.workspace, release, nil
}

// Guest returns the shared workspace shown to visitors that have no origin
// yet. It is backed by process memory and never written to the backend;
// anything that changes state must open a real origin instead.
func (r *Registry) Guest(ctx context.Context) (*Workspace, error) {
	r.guestOnce.Do(func() {
		guest := NewRegistry(storage.NewMemory(), Options{
			Authenticator: r.opts.Authenticator,
			Seed:          r.opts.Seed,
		})
		r.guest, r.guestErr = guest.build(ctx, "guest")
	})
	return r.guest, r.guestErr
}

// Prune drops workspaces unused for longer than the idle timeout and not
// held through Acquire. It returns how many were dropped.
func (r *Registry) Prune() int {
	if r.opts.IdleTimeout <= 0 {
		return 0
	}
	cutoff := r.opts.Now().Add(-r.opts.IdleTimeout)

	r.mu.Lock()
	defer r.mu.Unlock()
	dropped := 0
	for id, e := range r.entries {
		if e.pins > 0 || e.lastUsed.After(cutoff) {
			continue
		}
		delete(r.entries, id)
		dropped++
	}
	return dropped
}

// Len reports how many origins are cached.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) build(ctx context.Context, originID string) (*Workspace, error) {
	kv := storage.NewScoped(r.backend, storage.OriginPrefix(originID))

	contentStore, err := content.NewStore(ctx, kv, content.Options{
		Authenticator: r.opts.Authenticator,
		Seed:          r.opts.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("open content for origin %s: %w", originID, err)
	}

	document := theme.NewDocument()
	themeStore, err := theme.NewStore(ctx, kv, document)
	if err != nil {
		return nil, fmt.Errorf("open theme for origin %s: %w", originID, err)
	}

	applog.Debug(ctx, "origin workspace opened", "origin", originID)
	return &Workspace{
		ID:       originID,
		Content:  contentStore,
		Theme:    themeStore,
		Document: document,
	}, nil
}
