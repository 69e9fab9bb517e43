package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for cart persistence. All reads and
// writes are scoped to one user within one tenant.
type Repository interface {
	// FindByID finds a cart line by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CartItem, error)

	// FindByUser returns all cart lines of a user, oldest first
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]CartItem, error)

	// FindByUserAndProduct finds the user's line for a (product, variant) pair
	FindByUserAndProduct(ctx context.Context, tenantID, userID, productID uuid.UUID, variantID *uuid.UUID) (*CartItem, error)

	// Save creates or updates a cart line
	Save(ctx context.Context, item *CartItem) error

	// Delete deletes a cart line
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser removes all cart lines of a user
	DeleteByUser(ctx context.Context, tenantID, userID uuid.UUID) error

	// ReplaceForUser atomically replaces the user's cart with the given
	// lines. On error the previous cart state is preserved.
	ReplaceForUser(ctx context.Context, tenantID, userID uuid.UUID, items []CartItem) error

	// CountByUser counts the user's cart lines
	CountByUser(ctx context.Context, tenantID, userID uuid.UUID) (int64, error)
}
