package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SessionPrefix namespaces browser session records inside a backend.
const SessionPrefix = "session:"

type sessionRecord struct {
	Data   []byte    `json:"data"`
	Expiry time.Time `json:"expiry"`
}

// SessionStore keeps scs session data in a Store, so the session that binds
// a browser to its origin lives in the same backend as the origin itself.
type SessionStore struct {
	next Store
	now  func() time.Time
}

// NewSessionStore returns a SessionStore over next.
func NewSessionStore(next Store) *SessionStore {
	return &SessionStore{next: next, now: time.Now}
}

func (s *SessionStore) Find(token string) ([]byte, bool, error) {
	return s.FindCtx(context.Background(), token)
}

func (s *SessionStore) Commit(token string, b []byte, expiry time.Time) error {
	return s.CommitCtx(context.Background(), token, b, expiry)
}

func (s *SessionStore) Delete(token string) error {
	return s.DeleteCtx(context.Background(), token)
}

// FindCtx returns the session data for token. Expired records are removed
// and reported as missing.
func (s *SessionStore) FindCtx(ctx context.Context, token string) ([]byte, bool, error) {
	raw, found, err := s.next.Get(ctx, SessionPrefix+token)
	if err != nil || !found {
		return nil, false, err
	}
	var record sessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, false, s.next.Remove(ctx, SessionPrefix+token)
	}
	if !record.Expiry.After(s.now()) {
		return nil, false, s.next.Remove(ctx, SessionPrefix+token)
	}
	return record.Data, true, nil
}

func (s *SessionStore) CommitCtx(ctx context.Context, token string, b []byte, expiry time.Time) error {
	raw, err := json.Marshal(sessionRecord{Data: b, Expiry: expiry.UTC()})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.next.Set(ctx, SessionPrefix+token, string(raw))
}

func (s *SessionStore) DeleteCtx(ctx context.Context, token string) error {
	return s.next.Remove(ctx, SessionPrefix+token)
}
