package session

import "sync"

// MockStorage is an in-memory implementation of Storage for testing
type MockStorage struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewMockStorage creates a new in-memory storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		entries: make(map[string]string),
	}
}

// Get returns the stored value for a key
func (m *MockStorage) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]
	return value, ok, nil
}

// Set writes a key/value pair
func (m *MockStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = value
	return nil
}

// Remove deletes a key
func (m *MockStorage) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

// Len returns the number of stored keys (test helper)
func (m *MockStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}
