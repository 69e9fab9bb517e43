package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// AddressService handles a user's saved addresses
type AddressService struct {
	addressRepo identity.AddressRepository
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo identity.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// Create saves a new address. The first address of a type automatically
// becomes the default.
func (s *AddressService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateAddressRequest) (*AddressResponse, error) {
	addrType := identity.AddressType(req.Type)

	address, err := identity.NewAddress(tenantID, userID, addrType, req.Recipient, req.Line1, req.City, req.PostalCode, req.Country)
	if err != nil {
		return nil, err
	}
	if err := address.Update(req.Recipient, req.Phone, req.Line1, req.Line2, req.City, req.State, req.PostalCode, req.Country); err != nil {
		return nil, err
	}

	count, err := s.addressRepo.CountByUserAndType(ctx, tenantID, userID, addrType)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		address.MarkDefault()
		if err := s.addressRepo.SetDefault(ctx, address); err != nil {
			return nil, err
		}
	} else {
		if err := s.addressRepo.Save(ctx, address); err != nil {
			return nil, err
		}
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// List returns all addresses of the user, defaults first
func (s *AddressService) List(ctx context.Context, tenantID, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	return ToAddressResponses(addresses), nil
}

// GetByID returns one of the user's addresses
func (s *AddressService) GetByID(ctx context.Context, tenantID, userID, addressID uuid.UUID) (*AddressResponse, error) {
	address, err := s.findOwnedAddress(ctx, tenantID, userID, addressID)
	if err != nil {
		return nil, err
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// Update replaces an address's fields. Type and ownership never change.
func (s *AddressService) Update(ctx context.Context, tenantID, userID, addressID uuid.UUID, req UpdateAddressRequest) (*AddressResponse, error) {
	address, err := s.findOwnedAddress(ctx, tenantID, userID, addressID)
	if err != nil {
		return nil, err
	}

	if err := address.Update(req.Recipient, req.Phone, req.Line1, req.Line2, req.City, req.State, req.PostalCode, req.Country); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// SetDefault makes the address the default of its type, clearing the
// previous default in the same transaction
func (s *AddressService) SetDefault(ctx context.Context, tenantID, userID, addressID uuid.UUID) (*AddressResponse, error) {
	address, err := s.findOwnedAddress(ctx, tenantID, userID, addressID)
	if err != nil {
		return nil, err
	}

	address.MarkDefault()
	if err := s.addressRepo.SetDefault(ctx, address); err != nil {
		return nil, err
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// Delete removes an address. The default of a type cannot be deleted; the
// user has to promote another address first.
func (s *AddressService) Delete(ctx context.Context, tenantID, userID, addressID uuid.UUID) error {
	address, err := s.findOwnedAddress(ctx, tenantID, userID, addressID)
	if err != nil {
		return err
	}

	if address.IsDefault {
		return shared.ErrCannotDeleteDefault
	}

	return s.addressRepo.Delete(ctx, address.ID)
}

// findOwnedAddress loads an address and verifies ownership
func (s *AddressService) findOwnedAddress(ctx context.Context, tenantID, userID, addressID uuid.UUID) (*identity.Address, error) {
	address, err := s.addressRepo.FindByIDForTenant(ctx, tenantID, addressID)
	if err != nil {
		return nil, err
	}
	if !address.BelongsTo(userID) {
		return nil, shared.ErrNotFound
	}
	return address, nil
}
