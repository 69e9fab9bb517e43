package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Fulfillment moves forward one step at a time; only pending orders can be
// cancelled.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipped
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "UNPAID"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

// OrderItem is an immutable price snapshot taken at checkout. Later catalog
// edits never change what the customer agreed to pay.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	VariantID   *uuid.UUID      `gorm:"type:uuid"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	ProductSKU  string          `gorm:"type:varchar(50);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity    int64           `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order line snapshot
func NewOrderItem(orderID, productID uuid.UUID, variantID *uuid.UUID, productName, productSKU string, unitPrice valueobject.Money, quantity int64) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		VariantID:   variantID,
		ProductName: productName,
		ProductSKU:  productSKU,
		UnitPrice:   unitPrice.Amount(),
		Quantity:    quantity,
		Amount:      unitPrice.Amount().Mul(decimal.NewFromInt(quantity)),
		CreatedAt:   time.Now(),
	}, nil
}

// GetUnitPriceMoney returns the unit price as Money value object
func (i *OrderItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.UnitPrice)
}

// GetAmountMoney returns the line amount as Money value object
func (i *OrderItem) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.Amount)
}

// Order is the aggregate root for a customer order. It owns the fulfillment
// state machine and the payment state.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber       string        `gorm:"type:varchar(50);not null;uniqueIndex:idx_order_tenant_number,priority:2"`
	UserID            uuid.UUID     `gorm:"type:uuid;not null;index"`
	Items             []OrderItem   `gorm:"foreignKey:OrderID"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status            Status        `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaymentStatus     PaymentStatus `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	PaymentMethod     string        `gorm:"type:varchar(50)"`
	ShippingAddressID uuid.UUID     `gorm:"type:uuid;not null"`
	BillingAddressID  uuid.UUID     `gorm:"type:uuid;not null"`
	PaidAt            *time.Time
	ShippedAt         *time.Time
	DeliveredAt       *time.Time
	CancelledAt       *time.Time
	CancelReason      string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new pending order without items. Items are added via
// AddItem before the order is persisted.
func NewOrder(tenantID uuid.UUID, orderNumber string, userID, shippingAddressID, billingAddressID uuid.UUID, paymentMethod string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if shippingAddressID == uuid.Nil || billingAddressID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping and billing addresses are required")
	}

	o := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		UserID:              userID,
		Subtotal:            decimal.Zero,
		Total:               decimal.Zero,
		Status:              StatusPending,
		PaymentStatus:       PaymentStatusUnpaid,
		PaymentMethod:       paymentMethod,
		ShippingAddressID:   shippingAddressID,
		BillingAddressID:    billingAddressID,
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// AddItem appends a snapshot line and recalculates totals. Items can only be
// added while the order is pending and unpaid.
func (o *Order) AddItem(productID uuid.UUID, variantID *uuid.UUID, productName, productSKU string, unitPrice valueobject.Money, quantity int64) error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Items can only be added to a pending order")
	}

	item, err := NewOrderItem(o.ID, productID, variantID, productName, productSKU, unitPrice, quantity)
	if err != nil {
		return err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return nil
}

// recalculateTotals recomputes Subtotal and Total from the items
func (o *Order) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	o.Subtotal = subtotal
	// Shipping and tax are out of scope; total equals subtotal.
	o.Total = subtotal
}

// UpdateStatus moves the order one step forward in the fulfillment flow.
// Cancellation must go through Cancel so stock is restored.
func (o *Order) UpdateStatus(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if target == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Use Cancel to cancel an order")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", "Cannot transition from "+o.Status.String()+" to "+target.String())
	}

	oldStatus := o.Status
	o.Status = target
	now := time.Now()
	switch target {
	case StatusShipped:
		o.ShippedAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	}
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus, target))

	return nil
}

// Cancel cancels a pending order. The caller restores stock in the same
// transaction that persists this state change.
func (o *Order) Cancel(reason string) error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be cancelled")
	}
	if len(reason) > 500 {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason cannot exceed 500 characters")
	}

	oldStatus := o.Status
	o.Status = StatusCancelled
	o.CancelReason = reason
	now := time.Now()
	o.CancelledAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus, StatusCancelled))

	return nil
}

// MarkPaid records a successful payment
func (o *Order) MarkPaid(method string) error {
	if o.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay a cancelled order")
	}
	if o.PaymentStatus != PaymentStatusUnpaid {
		return shared.NewDomainError("INVALID_STATE", "Order is not awaiting payment")
	}

	o.PaymentStatus = PaymentStatusPaid
	if method != "" {
		o.PaymentMethod = method
	}
	now := time.Now()
	o.PaidAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

// MarkRefunded records a refund of a paid order
func (o *Order) MarkRefunded() error {
	if o.PaymentStatus != PaymentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Only paid orders can be refunded")
	}

	o.PaymentStatus = PaymentStatusRefunded
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// IsPaid returns true if the order has been paid
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// GetTotalMoney returns the order total as Money value object
func (o *Order) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Total)
}

// GetSubtotalMoney returns the order subtotal as Money value object
func (o *Order) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Subtotal)
}
