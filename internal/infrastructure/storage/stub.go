package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// Ensure StubStorage implements ObjectStorage
var _ catalogapp.ObjectStorage = (*StubStorage)(nil)

// StubStorage is an in-memory ObjectStorage for development and tests. URLs
// it hands out are not real; uploads are recorded when RecordUpload is
// called, which tests use to drive the confirmation flow.
type StubStorage struct {
	mu      sync.RWMutex
	objects map[string]bool
	baseURL string
}

// NewStubStorage creates a StubStorage
func NewStubStorage(baseURL string) *StubStorage {
	if baseURL == "" {
		baseURL = "https://storage.invalid"
	}
	return &StubStorage{
		objects: make(map[string]bool),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// GenerateUploadURL returns a fake presigned PUT URL and records the key as
// uploaded so the confirmation flow works without a real store
func (s *StubStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if expiresIn <= 0 {
		expiresIn = defaultPresignExpiration
	}

	s.RecordUpload(storageKey)

	expiresAt := time.Now().Add(expiresIn)
	return s.baseURL + "/upload/" + storageKey, expiresAt, nil
}

// GenerateDownloadURL returns a fake presigned GET URL
func (s *StubStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if expiresIn <= 0 {
		expiresIn = defaultPresignExpiration
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.baseURL + "/download/" + storageKey, expiresAt, nil
}

// DeleteObject forgets the key
func (s *StubStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// ObjectExists reports whether the key was uploaded
func (s *StubStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects[storageKey], nil
}

// PublicURL returns the stable URL for the key
func (s *StubStorage) PublicURL(storageKey string) string {
	if storageKey == "" {
		return ""
	}
	return s.baseURL + "/" + strings.TrimPrefix(storageKey, "/")
}

// RecordUpload marks the key as present
func (s *StubStorage) RecordUpload(storageKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = true
}
