package catalog

import (
	"context"
	"time"
)

// ObjectStorage abstracts the object store holding product and blog images.
// Uploads go through presigned URLs so image bytes never pass through the
// API process.
type ObjectStorage interface {
	// GenerateUploadURL returns a presigned PUT URL for the key
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned GET URL for the key
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes the object, if it exists
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists reports whether the key holds an object
	ObjectExists(ctx context.Context, storageKey string) (bool, error)

	// PublicURL returns the stable URL stored on entities that reference
	// the object
	PublicURL(storageKey string) string
}
