package session

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mps-cell/mps-dashboard/models"
)

// Storage is the key/value persistence behind the session store.
// It stands in for the browser-local storage the dashboard previously
// relied on, so tests can swap in an in-memory double.
type Storage interface {
	// Get returns the value for a key; ok is false when the key is absent
	Get(key string) (value string, ok bool, err error)

	// Set writes a key/value pair, overwriting any previous value
	Set(key, value string) error

	// Remove deletes a key; removing an absent key is not an error
	Remove(key string) error
}

// GormStorage implements Storage on a local SQLite database
type GormStorage struct {
	db *gorm.DB
}

// NewGormStorage opens (or creates) the session database at path
// and migrates the session table
func NewGormStorage(path string) (*GormStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	if err := db.AutoMigrate(&models.SessionEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session database: %w", err)
	}

	return &GormStorage{db: db}, nil
}

// NewGormStorageFromDB wraps an existing gorm connection (primarily for testing)
func NewGormStorageFromDB(db *gorm.DB) (*GormStorage, error) {
	if err := db.AutoMigrate(&models.SessionEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session database: %w", err)
	}
	return &GormStorage{db: db}, nil
}

// Get returns the stored value for a key
func (s *GormStorage) Get(key string) (string, bool, error) {
	var entry models.SessionEntry
	err := s.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session entry: %w", err)
	}
	return entry.Value, true, nil
}

// Set writes a key/value pair
func (s *GormStorage) Set(key, value string) error {
	entry := models.SessionEntry{Key: key, Value: value}
	if err := s.db.Save(&entry).Error; err != nil {
		return fmt.Errorf("failed to write session entry: %w", err)
	}
	return nil
}

// Remove deletes a key
func (s *GormStorage) Remove(key string) error {
	if err := s.db.Delete(&models.SessionEntry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to remove session entry: %w", err)
	}
	return nil
}
