package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"creatives/models"
)

// Store persists origin storage entries in the storage_entries table.
type Store struct {
	db *gorm.DB
}

// NewStore wraps a migrated database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s.db == nil {
		return "", false, gorm.ErrInvalidDB
	}

	var entry models.StorageEntry
	err := s.db.WithContext(ctx).Where("storage_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load entry %q: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.db == nil {
		return gorm.ErrInvalidDB
	}

	entry := models.StorageEntry{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("save entry %q: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if s.db == nil {
		return gorm.ErrInvalidDB
	}

	if err := s.db.WithContext(ctx).Where("storage_key = ?", key).Delete(&models.StorageEntry{}).Error; err != nil {
		return fmt.Errorf("remove entry %q: %w", key, err)
	}
	return nil
}
