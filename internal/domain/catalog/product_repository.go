package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForTenant finds a product by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU within a tenant
	FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*Product, error)

	// FindBySlug finds a product by its slug within a tenant
	FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*Product, error)

	// FindAllForTenant finds all products for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindActive finds active products for a tenant (public catalog)
	FindActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindByCategory finds products in a specific category
	FindByCategory(ctx context.Context, tenantID, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)

	// Save creates or updates a product and its variants
	Save(ctx context.Context, product *Product) error

	// SaveWithLock saves using the version column for optimistic locking
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// CountForTenant counts products for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountActive counts active products for a tenant
	CountActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByCategory counts products in a specific category
	CountByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int64, error)

	// ExistsBySKU checks if a product with the given SKU exists in the tenant
	ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error)

	// ExistsBySlug checks if a product with the given slug exists in the tenant
	ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error)

	// IncrementViewCount bumps the view counter without touching the version
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	// FindVariantByID finds a variant by ID within a tenant
	FindVariantByID(ctx context.Context, tenantID, variantID uuid.UUID) (*ProductVariant, error)

	// SaveVariant creates or updates a single variant
	SaveVariant(ctx context.Context, variant *ProductVariant) error

	// DeleteVariant deletes a variant
	DeleteVariant(ctx context.Context, tenantID, variantID uuid.UUID) error

	// ExistsVariantBySKU checks if a variant with the given SKU exists in the tenant
	ExistsVariantBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error)
}
