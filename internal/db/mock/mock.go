package mock

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"creatives/internal/db"
	applog "creatives/internal/log"
	"creatives/internal/storage"
	"creatives/models"
)

// DemoOrigin is the origin namespace seeded by New.
const DemoOrigin = "demo"

// New returns an in-memory sqlite database seeded with a signed-in demo origin.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:creatives-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database", "origin", DemoOrigin)

	scope := storage.NewScoped(db.NewStore(database), storage.OriginPrefix(DemoOrigin))

	identity := models.Identity{
		ID:        "1",
		Name:      "John Doe",
		Username:  "johndoe",
		Email:     "john@example.com",
		Bio:       "Digital artist and designer passionate about creating beautiful experiences.",
		AvatarRef: models.PlaceholderAvatar,
	}
	snapshot, err := json.Marshal(identity)
	if err != nil {
		return err
	}

	entries := []struct{ key, value string }{
		{"user", string(snapshot)},
		{"theme", "dark"},
		{"colorMode", "purple"},
	}
	for _, entry := range entries {
		if err := scope.Set(ctx, entry.key, entry.value); err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
