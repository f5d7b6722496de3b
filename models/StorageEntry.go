package models

import "time"

// StorageEntry is a single key-value row of the durable origin storage.
type StorageEntry struct {
	Key       string `gorm:"primaryKey;column:storage_key;size:255"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
