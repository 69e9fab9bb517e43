package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/order"
)

// CheckoutRequest represents a request to convert the cart into an order
type CheckoutRequest struct {
	ShippingAddressID uuid.UUID `json:"shipping_address_id" binding:"required"`
	BillingAddressID  uuid.UUID `json:"billing_address_id" binding:"required"`
	PaymentMethod     string    `json:"payment_method" binding:"required,max=50"`
}

// ProcessPaymentRequest represents a payment attempt against an order
type ProcessPaymentRequest struct {
	Method    string          `json:"method" binding:"required,max=50"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	CardToken string          `json:"card_token" binding:"max=200"`
}

// CancelRequest represents a request to cancel a pending order
type CancelRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// UpdateStatusRequest represents an admin fulfillment transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListFilter represents filter options for order lists
type ListFilter struct {
	Status        string     `form:"status"`
	PaymentStatus string     `form:"payment_status"`
	UserID        *uuid.UUID `form:"user_id"`
	Search        string     `form:"search"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ItemResponse represents one order line snapshot
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	VariantID   *uuid.UUID      `json:"variant_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// Response represents an order in API responses
type Response struct {
	ID                uuid.UUID       `json:"id"`
	OrderNumber       string          `json:"order_number"`
	UserID            uuid.UUID       `json:"user_id"`
	Items             []ItemResponse  `json:"items"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Total             decimal.Decimal `json:"total"`
	Status            string          `json:"status"`
	PaymentStatus     string          `json:"payment_status"`
	PaymentMethod     string          `json:"payment_method"`
	ShippingAddressID uuid.UUID       `json:"shipping_address_id"`
	BillingAddressID  uuid.UUID       `json:"billing_address_id"`
	PaidAt            *time.Time      `json:"paid_at"`
	ShippedAt         *time.Time      `json:"shipped_at"`
	DeliveredAt       *time.Time      `json:"delivered_at"`
	CancelledAt       *time.Time      `json:"cancelled_at"`
	CancelReason      string          `json:"cancel_reason,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ListResponse represents an order list item without lines
type ListResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	UserID        uuid.UUID       `json:"user_id"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	ItemCount     int             `json:"item_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PaymentResponse reports the outcome of a payment attempt
type PaymentResponse struct {
	Order         Response  `json:"order"`
	Approved      bool      `json:"approved"`
	TransactionID string    `json:"transaction_id,omitempty"`
	DeclineReason string    `json:"decline_reason,omitempty"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// ToItemResponse converts a domain OrderItem to ItemResponse
func ToItemResponse(item *order.OrderItem) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		VariantID:   item.VariantID,
		ProductName: item.ProductName,
		ProductSKU:  item.ProductSKU,
		UnitPrice:   item.UnitPrice,
		Quantity:    item.Quantity,
		Amount:      item.Amount,
	}
}

// ToResponse converts a domain Order to Response
func ToResponse(o *order.Order) Response {
	items := make([]ItemResponse, 0, len(o.Items))
	for i := range o.Items {
		items = append(items, ToItemResponse(&o.Items[i]))
	}

	return Response{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		UserID:            o.UserID,
		Items:             items,
		Subtotal:          o.Subtotal,
		Total:             o.Total,
		Status:            o.Status.String(),
		PaymentStatus:     string(o.PaymentStatus),
		PaymentMethod:     o.PaymentMethod,
		ShippingAddressID: o.ShippingAddressID,
		BillingAddressID:  o.BillingAddressID,
		PaidAt:            o.PaidAt,
		ShippedAt:         o.ShippedAt,
		DeliveredAt:       o.DeliveredAt,
		CancelledAt:       o.CancelledAt,
		CancelReason:      o.CancelReason,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

// ToListResponses converts domain Orders to list responses
func ToListResponses(orders []order.Order) []ListResponse {
	responses := make([]ListResponse, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		responses = append(responses, ListResponse{
			ID:            o.ID,
			OrderNumber:   o.OrderNumber,
			UserID:        o.UserID,
			Total:         o.Total,
			Status:        o.Status.String(),
			PaymentStatus: string(o.PaymentStatus),
			ItemCount:     len(o.Items),
			CreatedAt:     o.CreatedAt,
		})
	}
	return responses
}
