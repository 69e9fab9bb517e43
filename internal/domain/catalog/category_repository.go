package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByIDForTenant finds a category by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Category, error)

	// FindBySlug finds a category by its slug within a tenant
	FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*Category, error)

	// FindAllForTenant finds all categories for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Category, error)

	// FindRoots finds all root categories for a tenant
	FindRoots(ctx context.Context, tenantID uuid.UUID) ([]Category, error)

	// FindChildren finds the direct children of a category
	FindChildren(ctx context.Context, tenantID, parentID uuid.UUID) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// CountForTenant counts categories for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountChildren counts the direct children of a category
	CountChildren(ctx context.Context, tenantID, parentID uuid.UUID) (int64, error)

	// ExistsByName checks if a category with the given name exists in the tenant
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)

	// ExistsBySlug checks if a category with the given slug exists in the tenant
	ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error)
}
