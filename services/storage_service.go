package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage persists uploaded image bytes and resolves them to a URL the
// frontend can load. The rest of the system treats the URL as opaque.
type FileStorage interface {
	// Save writes the file under key and returns its public URL or path.
	Save(key string, data []byte, contentType string) (string, error)

	// Delete removes the stored file behind a previously returned URL.
	// Unknown or foreign URLs are ignored.
	Delete(url string) error
}

var storageInstance FileStorage

// InitStorage sets the process-wide storage backend
func InitStorage(storage FileStorage) FileStorage {
	storageInstance = storage
	return storageInstance
}

// GetStorage returns the initialized storage backend
func GetStorage() FileStorage {
	return storageInstance
}

// SetStorage sets the storage backend (primarily for testing)
func SetStorage(storage FileStorage) {
	storageInstance = storage
}

// LocalStorage stores uploads on the local filesystem and serves them from
// the /api/uploads route.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage creates a disk-backed storage rooted at baseDir
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{
		baseDir: baseDir,
		baseURL: "/api/uploads",
	}
}

func (s *LocalStorage) Save(key string, data []byte, contentType string) (string, error) {
	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *LocalStorage) Delete(url string) error {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return nil
	}
	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(key))
	// Paranoia against keys escaping the upload root.
	if rel, err := filepath.Rel(s.baseDir, fullPath); err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("refusing to delete outside upload dir: %s", url)
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// ResolveLocalPath maps an upload key back to its on-disk path, guarding
// against directory traversal. Used by the route that serves local uploads.
func (s *LocalStorage) ResolveLocalPath(key string) (string, error) {
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid upload path: %s", key)
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(key)), nil
}
