package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductVariant is a purchasable variation of a product (size, color).
// Variants carry their own SKU, price, and stock; they are child entities of
// the product aggregate.
type ProductVariant struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_variant_tenant_sku,priority:1"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU        string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_variant_tenant_sku,priority:2"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Price      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Stock      int64           `gorm:"not null;default:0"`
	Attributes string          `gorm:"type:jsonb"`
	IsActive   bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// NewProductVariant creates a new variant under the given product
func NewProductVariant(tenantID, productID uuid.UUID, sku, name string, price valueobject.Money) (*ProductVariant, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	now := time.Now()
	return &ProductVariant{
		ID:         uuid.New(),
		TenantID:   tenantID,
		ProductID:  productID,
		SKU:        strings.ToUpper(sku),
		Name:       name,
		Price:      price.Amount(),
		Stock:      0,
		Attributes: "{}",
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Update updates the variant's name and price
func (v *ProductVariant) Update(name string, price valueobject.Money) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if price.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	v.Name = name
	v.Price = price.Amount()
	v.UpdatedAt = time.Now()

	return nil
}

// SetStock sets the absolute stock level of the variant
func (v *ProductVariant) SetStock(stock int64) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	v.Stock = stock
	v.UpdatedAt = time.Now()

	return nil
}

// SetAttributes sets variant attributes as a JSON object
func (v *ProductVariant) SetAttributes(attributes string) error {
	if attributes == "" {
		attributes = "{}"
	}
	trimmed := strings.TrimSpace(attributes)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return shared.NewDomainError("INVALID_ATTRIBUTES", "Attributes must be a valid JSON object")
	}

	v.Attributes = trimmed
	v.UpdatedAt = time.Now()

	return nil
}

// GetPriceMoney returns the variant price as Money value object
func (v *ProductVariant) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(v.Price)
}
