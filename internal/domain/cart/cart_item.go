package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CartItem is one line of a user's cart. A user has at most one line per
// (product, variant) pair; adding the same pair again merges quantities.
// Prices are not stored here: the checkout snapshot always reads current
// catalog prices.
type CartItem struct {
	shared.TenantAggregateRoot
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_cart_user"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index"`
	VariantID *uuid.UUID `gorm:"type:uuid"`
	Quantity  int64      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCartItem creates a new cart line
func NewCartItem(tenantID, userID, productID uuid.UUID, variantID *uuid.UUID, quantity int64) (*CartItem, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	item := &CartItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		ProductID:           productID,
		VariantID:           variantID,
		Quantity:            quantity,
	}

	item.AddDomainEvent(NewCartItemAddedEvent(item))

	return item, nil
}

// UpdateQuantity replaces the line quantity. Zero or negative quantities are
// rejected; removal is an explicit operation.
func (i *CartItem) UpdateQuantity(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	i.Quantity = quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// IncreaseQuantity merges an additional quantity into the line
func (i *CartItem) IncreaseQuantity(delta int64) error {
	if delta <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	i.Quantity += delta
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// MatchesVariant reports whether the line refers to the given variant
// (nil means the base product).
func (i *CartItem) MatchesVariant(variantID *uuid.UUID) bool {
	if i.VariantID == nil && variantID == nil {
		return true
	}
	if i.VariantID == nil || variantID == nil {
		return false
	}
	return *i.VariantID == *variantID
}
