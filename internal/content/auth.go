package content

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"creatives/models"
)

// Default simulated round-trip durations.
const (
	DefaultSignInDelay = 1500 * time.Millisecond
	DefaultSignUpDelay = 2 * time.Second
)

// SignUpForm carries the registration fields. Field validation is the
// caller's job; the store trusts what it receives.
type SignUpForm struct {
	Name     string
	Username string
	Email    string
	Bio      string
	Password string
}

// Authenticator performs the sign-in and sign-up round trips.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (models.Identity, error)
	SignUp(ctx context.Context, form SignUpForm) (models.Identity, error)
}

// CanonicalProfile is the profile every sign-in resolves to.
func CanonicalProfile() models.Identity {
	return models.Identity{
		ID:        "1",
		Name:      "John Doe",
		Username:  "johndoe",
		Email:     "john@example.com",
		Bio:       "Digital artist and designer passionate about creating beautiful experiences.",
		AvatarRef: models.PlaceholderAvatar,
	}
}

// Simulated accepts every credential after a fixed delay. The password is
// never inspected.
type Simulated struct {
	SignInDelay time.Duration
	SignUpDelay time.Duration
	NewID       func() string
}

// NewSimulated returns a Simulated authenticator with the given delays.
func NewSimulated(signIn, signUp time.Duration) *Simulated {
	return &Simulated{SignInDelay: signIn, SignUpDelay: signUp, NewID: uuid.NewString}
}

func (s *Simulated) SignIn(ctx context.Context, email, _ string) (models.Identity, error) {
	if err := roundTrip(ctx, s.SignInDelay); err != nil {
		return models.Identity{}, err
	}
	identity := CanonicalProfile()
	identity.Email = email
	return identity, nil
}

func (s *Simulated) SignUp(ctx context.Context, form SignUpForm) (models.Identity, error) {
	if err := roundTrip(ctx, s.SignUpDelay); err != nil {
		return models.Identity{}, err
	}
	newID := s.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return models.Identity{
		ID:        newID(),
		Name:      form.Name,
		Username:  form.Username,
		Email:     form.Email,
		Bio:       form.Bio,
		AvatarRef: models.PlaceholderAvatar,
	}, nil
}

func roundTrip(ctx context.Context, delay time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrTransport, ctx.Err())
	case <-timer.C:
		return nil
	}
}
