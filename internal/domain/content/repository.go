package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// BlogPostRepository defines the interface for blog post persistence
type BlogPostRepository interface {
	// FindByID finds a post by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*BlogPost, error)

	// FindByIDForTenant finds a post by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*BlogPost, error)

	// FindBySlug finds a post by its slug within a tenant
	FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*BlogPost, error)

	// FindAllForTenant finds all posts for a tenant (admin listing)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]BlogPost, error)

	// FindPublished finds published posts, newest publication first
	FindPublished(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]BlogPost, error)

	// Save creates or updates a post
	Save(ctx context.Context, post *BlogPost) error

	// Delete deletes a post
	Delete(ctx context.Context, id uuid.UUID) error

	// CountForTenant counts posts for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountPublished counts published posts for a tenant
	CountPublished(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsBySlug checks if a post with the given slug exists in the tenant
	ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error)

	// IncrementViewCount bumps the view counter without touching the version
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

// FeedPostRepository defines the interface for feed post persistence
type FeedPostRepository interface {
	// FindByID finds a feed post by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*FeedPost, error)

	// FindByIDForTenant finds a feed post by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FeedPost, error)

	// FindByPlatformPostID finds a post by its platform identity
	FindByPlatformPostID(ctx context.Context, tenantID uuid.UUID, platform Platform, platformPostID string) (*FeedPost, error)

	// FindVisible finds visible posts, newest platform timestamp first
	FindVisible(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FeedPost, error)

	// FindAllForTenant finds all feed posts for a tenant (admin listing)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FeedPost, error)

	// Save creates or updates a feed post
	Save(ctx context.Context, post *FeedPost) error

	// Delete deletes a feed post
	Delete(ctx context.Context, id uuid.UUID) error

	// CountVisible counts visible posts for a tenant
	CountVisible(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountForTenant counts all feed posts for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByPlatformPostID checks if the platform post was already ingested
	ExistsByPlatformPostID(ctx context.Context, tenantID uuid.UUID, platform Platform, platformPostID string) (bool, error)
}
