package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAddressRepository implements identity.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by its ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Address, error) {
	var address identity.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// FindByIDForTenant finds an address by ID within a tenant
func (r *GormAddressRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.Address, error) {
	var address identity.Address
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// FindByUser returns all addresses of a user, defaults first
func (r *GormAddressRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]identity.Address, error) {
	var addresses []identity.Address
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("is_default DESC, created_at ASC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// FindDefault finds the user's default address of a type, if any
func (r *GormAddressRepository) FindDefault(ctx context.Context, tenantID, userID uuid.UUID, addrType identity.AddressType) (*identity.Address, error) {
	var address identity.Address
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ? AND type = ? AND is_default = ?",
			tenantID, userID, addrType, true).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, address *identity.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

// SetDefault marks the address as the default of its type and clears the
// previous default in the same transaction, so a user never has two defaults
// of one type.
func (r *GormAddressRepository) SetDefault(ctx context.Context, address *identity.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&identity.Address{}).
			Where("tenant_id = ? AND user_id = ? AND type = ? AND is_default = ? AND id <> ?",
				address.TenantID, address.UserID, address.Type, true, address.ID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Save(address).Error
	})
}

// Delete deletes an address
func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Address{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByUserAndType counts a user's addresses of the given type
func (r *GormAddressRepository) CountByUserAndType(ctx context.Context, tenantID, userID uuid.UUID, addrType identity.AddressType) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Address{}).
		Where("tenant_id = ? AND user_id = ? AND type = ?", tenantID, userID, addrType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormAddressRepository implements AddressRepository
var _ identity.AddressRepository = (*GormAddressRepository)(nil)
