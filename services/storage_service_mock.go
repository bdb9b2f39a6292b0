package services

import (
	"fmt"
	"sync"
)

// MockStorage is an in-memory FileStorage for testing
type MockStorage struct {
	mu          sync.RWMutex
	files       map[string][]byte // URL -> content
	deleted     []string
	FailSave    bool
	FailDelete  bool
}

// NewMockStorage creates a new mock storage backend
func NewMockStorage() *MockStorage {
	return &MockStorage{
		files: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global storage backend
func (m *MockStorage) SetAsMockForTesting() {
	SetStorage(m)
}

func (m *MockStorage) Save(key string, data []byte, contentType string) (string, error) {
	if m.FailSave {
		return "", fmt.Errorf("mock storage save failure")
	}
	url := "mock://bucket/" + key
	m.mu.Lock()
	m.files[url] = append([]byte(nil), data...)
	m.mu.Unlock()
	return url, nil
}

func (m *MockStorage) Delete(url string) error {
	if m.FailDelete {
		return fmt.Errorf("mock storage delete failure")
	}
	m.mu.Lock()
	delete(m.files, url)
	m.deleted = append(m.deleted, url)
	m.mu.Unlock()
	return nil
}

// FileCount returns how many files are currently stored
func (m *MockStorage) FileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

// DeletedURLs returns the URLs deleted so far
func (m *MockStorage) DeletedURLs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.deleted...)
}
