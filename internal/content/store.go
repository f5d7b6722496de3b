// Package content holds the session and content state of one origin: the
// signed-in identity and the post collection, with their persistence.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	applog "creatives/internal/log"
	"creatives/internal/storage"
	"creatives/models"
)

// Storage keys holding the identity and post snapshots.
const (
	IdentityKey = "user"
	PostsKey    = "posts"
)

// JustNow is the created label given to new posts.
const JustNow = "Just now"

var (
	// ErrTransport reports a failed authentication round trip.
	ErrTransport = errors.New("authentication request failed")
	// ErrUnauthenticated reports an operation that needs a signed-in identity.
	ErrUnauthenticated = errors.New("no identity is signed in")
)

// Event names the part of the state that changed.
type Event string

const (
	EventIdentity Event = "identity"
	EventPosts    Event = "posts"
	EventLoading  Event = "loading"
)

// PostDraft carries the fields a creator supplies for a new post.
type PostDraft struct {
	Title       string
	Description string
	ImageRef    string
	Tags        []string
	Category    models.Category
	IsDraft     bool
}

// PostPatch carries the fields to merge into an existing post. Nil fields are
// left untouched.
type PostPatch struct {
	Title       *string
	Description *string
	ImageRef    *string
	Tags        []string
	Category    *models.Category
	IsDraft     *bool
}

// Options configures a Store.
type Options struct {
	Authenticator Authenticator
	// Seed is the collection used when storage holds no posts.
	Seed []models.Post
	Now  func() time.Time
}

// Store is the session and content state of one origin. All methods are safe
// for concurrent use; subscribers are notified after the lock is released.
type Store struct {
	mu       sync.Mutex
	kv       storage.Store
	auth     Authenticator
	ids      *postIDs
	identity *models.Identity
	posts    []models.Post

	restoring bool
	pending   int

	subscribers map[int]func(Event)
	nextSub     int
}

// NewStore restores the identity and posts of an origin from kv.
func NewStore(ctx context.Context, kv storage.Store, opts Options) (*Store, error) {
	auth := opts.Authenticator
	if auth == nil {
		auth = NewSimulated(DefaultSignInDelay, DefaultSignUpDelay)
	}

	s := &Store{
		kv:          kv,
		auth:        auth,
		ids:         newPostIDs(opts.Now),
		restoring:   true,
		subscribers: make(map[int]func(Event)),
	}

	if err := s.restore(ctx, opts.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) restore(ctx context.Context, seed []models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rawUser, found, err := s.kv.Get(ctx, IdentityKey)
	if err != nil {
		return fmt.Errorf("restore identity: %w", err)
	}
	if found {
		var identity models.Identity
		if err := json.Unmarshal([]byte(rawUser), &identity); err != nil {
			applog.Error(ctx, "discarding unreadable identity snapshot", "error", err)
		} else {
			s.identity = &identity
		}
	}

	rawPosts, found, err := s.kv.Get(ctx, PostsKey)
	if err != nil {
		return fmt.Errorf("restore posts: %w", err)
	}
	restored := false
	if found {
		var posts []models.Post
		if err := json.Unmarshal([]byte(rawPosts), &posts); err != nil {
			applog.Error(ctx, "discarding unreadable posts snapshot", "error", err)
		} else {
			s.posts = posts
			restored = true
		}
	}
	if !restored {
		s.posts = clonePosts(seed)
	}

	for i := range s.posts {
		repairLikes(&s.posts[i])
		s.ids.observe(s.posts[i].ID)
	}

	// The seed is written by the first mutation, so origins that only browse
	// leave nothing behind in the backend.
	s.restoring = false
	applog.Debug(ctx, "content store restored", "signedIn", s.identity != nil, "posts", len(s.posts), "seeded", !restored)
	return nil
}

// Loading reports whether restoration or an authentication round trip is in progress.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restoring || s.pending > 0
}

// Identity returns the signed-in identity, if any.
func (s *Store) Identity() (models.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, true
}

// Posts returns the full collection, newest first.
func (s *Store) Posts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePosts(s.posts)
}

// Post returns the post with the given id.
func (s *Store) Post(id int64) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.posts[i].Clone(), true
	}
	return models.Post{}, false
}

// PostsForCurrentIdentity returns the posts owned by the signed-in identity,
// or nothing when nobody is signed in.
func (s *Store) PostsForCurrentIdentity() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return []models.Post{}
	}
	owned := make([]models.Post, 0)
	for _, post := range s.posts {
		if post.OwnerID == s.identity.ID {
			owned = append(owned, post.Clone())
		}
	}
	return owned
}

// SignIn runs the sign-in round trip and activates the resulting identity.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	s.beginLoading()
	identity, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		s.endLoading()
		return err
	}
	return s.activate(ctx, identity)
}

// SignUp runs the sign-up round trip and activates the new identity. The post
// collection is left untouched.
func (s *Store) SignUp(ctx context.Context, form SignUpForm) error {
	s.beginLoading()
	identity, err := s.auth.SignUp(ctx, form)
	if err != nil {
		s.endLoading()
		return err
	}
	return s.activate(ctx, identity)
}

// SignOut clears the identity and its snapshot. Posts are kept.
func (s *Store) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.identity = nil
	err := s.kv.Remove(ctx, IdentityKey)
	s.mu.Unlock()

	s.notify(EventIdentity)
	if err != nil {
		return fmt.Errorf("remove identity: %w", err)
	}
	return nil
}

// UpdateProfile changes the display name and bio of the signed-in identity.
func (s *Store) UpdateProfile(ctx context.Context, name, bio string) error {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return ErrUnauthenticated
	}
	s.identity.Name = name
	s.identity.Bio = bio
	err := s.persistIdentityLocked(ctx, *s.identity)
	s.mu.Unlock()

	s.notify(EventIdentity)
	return err
}

// AddPost prepends a new post owned by the signed-in identity. Without an
// identity nothing changes and ErrUnauthenticated is returned.
func (s *Store) AddPost(ctx context.Context, draft PostDraft) (models.Post, error) {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return models.Post{}, ErrUnauthenticated
	}

	post := models.Post{
		ID:           s.ids.next(),
		OwnerID:      s.identity.ID,
		Title:        draft.Title,
		Description:  draft.Description,
		ImageRef:     draft.ImageRef,
		Tags:         NormalizeTags(draft.Tags),
		LikeCount:    0,
		CommentCount: 0,
		CreatedLabel: JustNow,
		Liked:        false,
		Category:     draft.Category,
		IsDraft:      draft.IsDraft,
	}
	s.posts = append([]models.Post{post}, s.posts...)
	err := s.persistPostsLocked(ctx)
	s.mu.Unlock()

	s.notify(EventPosts)
	return post.Clone(), err
}

// UpdatePost merges patch into the post with the given id. It reports false
// without error when no post matches.
func (s *Store) UpdatePost(ctx context.Context, id int64, patch PostPatch) (bool, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}

	post := &s.posts[i]
	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Description != nil {
		post.Description = *patch.Description
	}
	if patch.ImageRef != nil {
		post.ImageRef = *patch.ImageRef
	}
	if patch.Tags != nil {
		post.Tags = NormalizeTags(patch.Tags)
	}
	if patch.Category != nil {
		post.Category = *patch.Category
	}
	if patch.IsDraft != nil {
		post.IsDraft = *patch.IsDraft
	}
	err := s.persistPostsLocked(ctx)
	s.mu.Unlock()

	s.notify(EventPosts)
	return true, err
}

// ToggleLike flips the liked flag of a post and moves its like count by one.
// It reports false without error when no post matches.
func (s *Store) ToggleLike(ctx context.Context, id int64) (models.Post, bool, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Post{}, false, nil
	}

	post := &s.posts[i]
	if post.Liked {
		post.Liked = false
		if post.LikeCount > 0 {
			post.LikeCount--
		}
	} else {
		post.Liked = true
		post.LikeCount++
	}
	updated := post.Clone()
	err := s.persistPostsLocked(ctx)
	s.mu.Unlock()

	s.notify(EventPosts)
	return updated, true, err
}

// Subscribe registers fn to be called after every state change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Event)) func() {
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

func (s *Store) activate(ctx context.Context, identity models.Identity) error {
	s.mu.Lock()
	s.identity = &identity
	err := s.persistIdentityLocked(ctx, identity)
	s.pending--
	s.mu.Unlock()

	s.notify(EventIdentity)
	s.notify(EventLoading)
	return err
}

func (s *Store) beginLoading() {
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()
	s.notify(EventLoading)
}

func (s *Store) endLoading() {
	s.mu.Lock()
	s.pending--
	s.mu.Unlock()
	s.notify(EventLoading)
}

func (s *Store) notify(event Event) {
	s.mu.Lock()
	listeners := make([]func(Event), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(event)
	}
}

func (s *Store) indexLocked(id int64) int {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistIdentityLocked(ctx context.Context, identity models.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := s.kv.Set(ctx, IdentityKey, string(data)); err != nil {
		return fmt.Errorf("persist identity: %w", err)
	}
	return nil
}

func (s *Store) persistPostsLocked(ctx context.Context) error {
	posts := s.posts
	if posts == nil {
		posts = []models.Post{}
	}
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}
	if err := s.kv.Set(ctx, PostsKey, string(data)); err != nil {
		return fmt.Errorf("persist posts: %w", err)
	}
	return nil
}

// repairLikes restores the liked/likeCount invariant on restored data.
func repairLikes(post *models.Post) {
	if post.LikeCount < 0 {
		post.LikeCount = 0
	}
	if post.Liked && post.LikeCount < 1 {
		post.LikeCount = 1
	}
}

func clonePosts(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	for i, post := range posts {
		out[i] = post.Clone()
	}
	return out
}
