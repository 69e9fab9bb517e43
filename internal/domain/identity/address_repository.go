package identity

import (
	"context"

	"github.com/google/uuid"
)

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	// FindByID finds an address by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)

	// FindByIDForTenant finds an address by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Address, error)

	// FindByUser returns all addresses of a user
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]Address, error)

	// FindDefault finds the user's default address of a type, if any
	FindDefault(ctx context.Context, tenantID, userID uuid.UUID, addrType AddressType) (*Address, error)

	// Save creates or updates an address
	Save(ctx context.Context, address *Address) error

	// SetDefault marks the address as the default of its type and clears
	// the previous default in the same transaction.
	SetDefault(ctx context.Context, address *Address) error

	// Delete deletes an address
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByUserAndType counts a user's addresses of the given type
	CountByUserAndType(ctx context.Context, tenantID, userID uuid.UUID, addrType AddressType) (int64, error)
}
