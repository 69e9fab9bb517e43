package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// AddressType distinguishes shipping from billing addresses
type AddressType string

const (
	AddressTypeShipping AddressType = "SHIPPING"
	AddressTypeBilling  AddressType = "BILLING"
)

// IsValid checks if the type is a known AddressType
func (t AddressType) IsValid() bool {
	return t == AddressTypeShipping || t == AddressTypeBilling
}

// Address is a user's saved address. At most one address per (user, type)
// is the default; the repository swaps defaults transactionally.
type Address struct {
	shared.TenantAggregateRoot
	UserID     uuid.UUID   `gorm:"type:uuid;not null;index:idx_address_user"`
	Type       AddressType `gorm:"type:varchar(20);not null"`
	Recipient  string      `gorm:"type:varchar(200);not null"`
	Phone      string      `gorm:"type:varchar(50)"`
	Line1      string      `gorm:"type:varchar(200);not null"`
	Line2      string      `gorm:"type:varchar(200)"`
	City       string      `gorm:"type:varchar(100);not null"`
	State      string      `gorm:"type:varchar(100)"`
	PostalCode string      `gorm:"type:varchar(20);not null"`
	Country    string      `gorm:"type:varchar(2);not null"`
	IsDefault  bool        `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// NewAddress creates a new address for a user
func NewAddress(tenantID, userID uuid.UUID, addrType AddressType, recipient, line1, city, postalCode, country string) (*Address, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if !addrType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ADDRESS_TYPE", "Address type must be SHIPPING or BILLING")
	}
	if strings.TrimSpace(recipient) == "" {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient cannot be empty")
	}
	if strings.TrimSpace(line1) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address line cannot be empty")
	}
	if strings.TrimSpace(city) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "City cannot be empty")
	}
	if strings.TrimSpace(postalCode) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Postal code cannot be empty")
	}
	if len(country) != 2 {
		return nil, shared.NewDomainError("INVALID_COUNTRY", "Country must be a two-letter ISO code")
	}

	return &Address{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		Type:                addrType,
		Recipient:           strings.TrimSpace(recipient),
		Line1:               strings.TrimSpace(line1),
		City:                strings.TrimSpace(city),
		PostalCode:          strings.TrimSpace(postalCode),
		Country:             strings.ToUpper(country),
	}, nil
}

// Update replaces the address fields. The type and ownership never change
// after creation.
func (a *Address) Update(recipient, phone, line1, line2, city, state, postalCode, country string) error {
	if strings.TrimSpace(recipient) == "" {
		return shared.NewDomainError("INVALID_RECIPIENT", "Recipient cannot be empty")
	}
	if strings.TrimSpace(line1) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address line cannot be empty")
	}
	if strings.TrimSpace(city) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "City cannot be empty")
	}
	if strings.TrimSpace(postalCode) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Postal code cannot be empty")
	}
	if len(country) != 2 {
		return shared.NewDomainError("INVALID_COUNTRY", "Country must be a two-letter ISO code")
	}

	a.Recipient = strings.TrimSpace(recipient)
	a.Phone = strings.TrimSpace(phone)
	a.Line1 = strings.TrimSpace(line1)
	a.Line2 = strings.TrimSpace(line2)
	a.City = strings.TrimSpace(city)
	a.State = strings.TrimSpace(state)
	a.PostalCode = strings.TrimSpace(postalCode)
	a.Country = strings.ToUpper(country)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// MarkDefault flags this address as the default of its type
func (a *Address) MarkDefault() {
	a.IsDefault = true
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// UnmarkDefault clears the default flag
func (a *Address) UnmarkDefault() {
	a.IsDefault = false
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// BelongsTo reports whether the address is owned by the given user
func (a *Address) BelongsTo(userID uuid.UUID) bool {
	return a.UserID == userID
}
