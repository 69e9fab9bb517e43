package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest represents a request to add a line to the cart
type AddItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id"`
	Quantity  int64      `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest represents a request to change a line quantity
type UpdateItemRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// SyncItemRequest is one line of a wholesale cart replacement
type SyncItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id"`
	Quantity  int64      `json:"quantity" binding:"required,min=1"`
}

// SyncRequest replaces the whole cart with the given lines
type SyncRequest struct {
	Items []SyncItemRequest `json:"items" binding:"dive"`
}

// ItemResponse represents one cart line enriched with catalog data
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	VariantID   *uuid.UUID      `json:"variant_id"`
	ProductName string          `json:"product_name"`
	VariantName string          `json:"variant_name,omitempty"`
	SKU         string          `json:"sku"`
	ImageURL    string          `json:"image_url"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// CartResponse represents the user's cart
type CartResponse struct {
	Items      []ItemResponse  `json:"items"`
	ItemCount  int             `json:"item_count"`
	TotalItems int64           `json:"total_items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// Issue is one finding of a cart validation pass
type Issue struct {
	ItemID    uuid.UUID  `json:"item_id"`
	ProductID uuid.UUID  `json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Code      string     `json:"code"`
	Message   string     `json:"message"`
}

// ValidationResponse is the result of a non-mutating cart validation
type ValidationResponse struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}
