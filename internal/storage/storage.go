// Package storage defines the string-keyed persistence contract shared by the
// session, content and theme stores, along with in-process implementations.
package storage

import (
	"context"
	"strings"
	"sync"
)

// Store is a string-keyed storage surviving across sessions until cleared.
// A missing key is not an error: Get reports found=false.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Memory is a process-local Store. The zero value is ready to use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string]string)
	}
	m.entries[key] = value
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Len reports the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Scoped confines every key to a prefix of an underlying store, giving each
// origin its own namespace inside one durable backend.
type Scoped struct {
	prefix string
	next   Store
}

// NewScoped wraps next so that key k is stored as prefix+k.
func NewScoped(next Store, prefix string) *Scoped {
	return &Scoped{prefix: prefix, next: next}
}

// OriginPrefix returns the namespace prefix used for an origin id.
func OriginPrefix(originID string) string {
	return "origin:" + strings.TrimSpace(originID) + ":"
}

func (s *Scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.next.Get(ctx, s.prefix+key)
}

func (s *Scoped) Set(ctx context.Context, key, value string) error {
	return s.next.Set(ctx, s.prefix+key, value)
}

func (s *Scoped) Remove(ctx context.Context, key string) error {
	return s.next.Remove(ctx, s.prefix+key)
}
