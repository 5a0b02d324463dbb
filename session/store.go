package session

import (
	"fmt"

	"github.com/mps-cell/mps-dashboard/models"
)

// Storage keys for the persisted session. The three entries are always
// written and cleared together.
const (
	KeyAccessToken   = "access_token"
	KeyAuthenticated = "isAuthenticated"
	KeyUser          = "user"
)

// Store holds the authenticated identity: a bearer token and the
// cached user record, both persisted through a Storage backend
type Store struct {
	storage Storage
}

var storeInstance *Store

// InitStore initializes the session store with a storage backend
func InitStore(storage Storage) *Store {
	storeInstance = NewStore(storage)
	return storeInstance
}

// GetStore returns the initialized session store instance
func GetStore() *Store {
	return storeInstance
}

// SetStore sets the session store instance (primarily for testing)
func SetStore(store *Store) {
	storeInstance = store
}

// NewStore creates a session store on top of a storage backend
func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// SetSession persists the token, the authenticated flag and the user record
func (s *Store) SetSession(token string, user models.User) error {
	if err := s.storage.Set(KeyAccessToken, token); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.storage.Set(KeyAuthenticated, "true"); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.storage.Set(KeyUser, string(user)); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a token is present in storage
func (s *Store) IsAuthenticated() bool {
	_, ok, err := s.storage.Get(KeyAccessToken)
	if err != nil {
		return false
	}
	return ok
}

// Token returns the stored access token, or an empty string when absent
func (s *Store) Token() string {
	value, ok, err := s.storage.Get(KeyAccessToken)
	if err != nil || !ok {
		return ""
	}
	return value
}

// User returns the cached user record, or nil when absent
func (s *Store) User() models.User {
	value, ok, err := s.storage.Get(KeyUser)
	if err != nil || !ok {
		return nil
	}
	return models.User(value)
}

// ClearSession removes the token, the flag and the user record.
// Clearing an already-empty session is a no-op.
func (s *Store) ClearSession() error {
	if err := s.storage.Remove(KeyAccessToken); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := s.storage.Remove(KeyAuthenticated); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := s.storage.Remove(KeyUser); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
