package mock

import (
	"context"
	"encoding/json"
	"testing"

	"creatives/internal/db"
	"creatives/internal/storage"
	"creatives/models"
)

func TestNewSeedsDemoOrigin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database, err := New(ctx)
	if err != nil {
		t.Fatalf("mock database initialization failed: %v", err)
	}

	scope := storage.NewScoped(db.NewStore(database), storage.OriginPrefix(DemoOrigin))

	raw, found, err := scope.Get(ctx, "user")
	if err != nil || !found {
		t.Fatalf("expected seeded identity, found=%t err=%v", found, err)
	}
	var identity models.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		t.Fatalf("decode identity: %v", err)
	}
	if identity.Username != "johndoe" {
		t.Fatalf("unexpected seeded username %q", identity.Username)
	}

	if mode, _, _ := scope.Get(ctx, "theme"); mode != "dark" {
		t.Fatalf("expected seeded dark mode, got %q", mode)
	}
	if palette, _, _ := scope.Get(ctx, "colorMode"); palette != "purple" {
		t.Fatalf("expected seeded purple palette, got %q", palette)
	}
}
