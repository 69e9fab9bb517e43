package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ErrOrderNumberTaken reports that another checkout claimed the generated
// order number first. Callers regenerate and retry.
var ErrOrderNumberTaken = shared.NewDomainError("ALREADY_EXISTS", "Order number already taken")

// StockAdjustment names one stock movement performed alongside an order
// write. VariantID nil targets the base product row.
type StockAdjustment struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int64
}

// Repository defines the interface for order persistence. Checkout and
// cancellation are transactional: the order write, the stock movements, and
// the cart cleanup commit or roll back together.
type Repository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForTenant finds an order by ID within a tenant, items included
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its number within a tenant
	FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*Order, error)

	// FindByUser returns a user's orders, newest first
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAllForTenant returns all orders of a tenant (admin listing)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Order, error)

	// CountByUser counts a user's orders
	CountByUser(ctx context.Context, tenantID, userID uuid.UUID, filter shared.Filter) (int64, error)

	// CountForTenant counts all orders of a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save persists status and payment changes of an existing order
	Save(ctx context.Context, o *Order) error

	// SaveWithLock saves using the version column for optimistic locking
	SaveWithLock(ctx context.Context, o *Order) error

	// CreateFromCheckout inserts the order with its items, decrements stock
	// per adjustment with a conditional update, and clears the user's cart,
	// all in one transaction. Returns shared.ErrInsufficientStock when any
	// decrement finds too little stock and ErrOrderNumberTaken when a
	// concurrent checkout won the generated number; nothing is persisted in
	// either case.
	CreateFromCheckout(ctx context.Context, o *Order, decrements []StockAdjustment) error

	// CancelWithRestock persists the cancelled order and adds the quantities
	// back to stock in one transaction.
	CancelWithRestock(ctx context.Context, o *Order, restocks []StockAdjustment) error

	// GenerateOrderNumber produces the next order number for the tenant,
	// formatted ORD-YYYYMMDD-NNNNN with a per-day sequence.
	GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
