package storage

import (
	"fmt"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New builds the ObjectStorage named by the configuration
func New(cfg config.StorageConfig, logger *zap.Logger) (catalogapp.ObjectStorage, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(cfg, WithLogger(logger))
	case "stub", "":
		return NewStubStorage(cfg.PublicBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage provider: %q", cfg.Provider)
	}
}
