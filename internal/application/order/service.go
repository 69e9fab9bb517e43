package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/infrastructure/payment"
)

// Service owns checkout, payment, and the fulfillment state machine
type Service struct {
	orderRepo   order.Repository
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	addressRepo identity.AddressRepository
	gateway     payment.Gateway
}

// NewService creates a new order Service
func NewService(
	orderRepo order.Repository,
	cartRepo cart.Repository,
	productRepo catalog.ProductRepository,
	addressRepo identity.AddressRepository,
	gateway payment.Gateway,
) *Service {
	return &Service{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		gateway:     gateway,
	}
}

// Checkout converts the user's cart into a pending order. Stock decrements,
// the order insert, and the cart cleanup happen in a single transaction; a
// concurrent sale of the last unit surfaces as INSUFFICIENT_STOCK.
func (s *Service) Checkout(ctx context.Context, tenantID, userID uuid.UUID, req CheckoutRequest) (*Response, error) {
	items, err := s.cartRepo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.ErrEmptyCart
	}

	if err := s.resolveOwnedAddress(ctx, tenantID, userID, req.ShippingAddressID); err != nil {
		return nil, err
	}
	if err := s.resolveOwnedAddress(ctx, tenantID, userID, req.BillingAddressID); err != nil {
		return nil, err
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(tenantID, orderNumber, userID, req.ShippingAddressID, req.BillingAddressID, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	decrements := make([]order.StockAdjustment, 0, len(items))
	for i := range items {
		item := &items[i]

		product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Product in cart no longer exists")
			}
			return nil, err
		}
		if !product.IsActive() {
			return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Product %s is no longer available", product.Name))
		}

		name := product.Name
		sku := product.SKU
		price := product.Price
		stock := product.Stock

		if item.VariantID != nil {
			variant := product.FindVariant(*item.VariantID)
			if variant == nil {
				return nil, shared.NewDomainError("NOT_FOUND", "Product variant in cart no longer exists")
			}
			name = fmt.Sprintf("%s (%s)", product.Name, variant.Name)
			sku = variant.SKU
			price = variant.Price
			stock = variant.Stock
		}

		if item.Quantity > stock {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", fmt.Sprintf("Insufficient stock for %s", name))
		}

		if err := o.AddItem(item.ProductID, item.VariantID, name, sku, valueobject.NewMoneyUSD(price), item.Quantity); err != nil {
			return nil, err
		}
		decrements = append(decrements, order.StockAdjustment{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}

	// The conditional decrement inside the transaction is the authoritative
	// stock check; the read above only produces a friendlier early error.
	// A lost race on the generated order number gets a fresh number and
	// another attempt.
	for attempt := 0; ; attempt++ {
		err := s.orderRepo.CreateFromCheckout(ctx, o, decrements)
		if err == nil {
			break
		}
		if !errors.Is(err, order.ErrOrderNumberTaken) || attempt >= 2 {
			return nil, err
		}
		number, numErr := s.orderRepo.GenerateOrderNumber(ctx, tenantID)
		if numErr != nil {
			return nil, numErr
		}
		o.OrderNumber = number
	}

	response := ToResponse(o)
	return &response, nil
}

// ProcessPayment charges the order total through the gateway. A declined
// charge is reported in the response, not as an error.
func (s *Service) ProcessPayment(ctx context.Context, tenantID, userID, orderID uuid.UUID, req ProcessPaymentRequest) (*PaymentResponse, error) {
	o, err := s.findOwnedOrder(ctx, tenantID, userID, orderID)
	if err != nil {
		return nil, err
	}

	if o.IsCancelled() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot pay a cancelled order")
	}
	if o.PaymentStatus != order.PaymentStatusUnpaid {
		return nil, shared.NewDomainError("INVALID_STATE", "Order is not awaiting payment")
	}
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	if !req.Amount.Equal(o.Total) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must equal the order total")
	}

	result, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		TenantID:  tenantID,
		OrderID:   o.ID,
		Amount:    req.Amount,
		Currency:  string(valueobject.DefaultCurrency),
		Method:    req.Method,
		CardToken: req.CardToken,
	})
	if err != nil {
		return nil, err
	}

	if !result.Approved {
		response := ToResponse(o)
		return &PaymentResponse{
			Order:         response,
			Approved:      false,
			DeclineReason: result.DeclineReason,
			ProcessedAt:   result.ProcessedAt,
		}, nil
	}

	if err := o.MarkPaid(req.Method); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	response := ToResponse(o)
	return &PaymentResponse{
		Order:         response,
		Approved:      true,
		TransactionID: result.TransactionID,
		ProcessedAt:   result.ProcessedAt,
	}, nil
}

// Cancel cancels a pending order and restores stock in the same transaction.
// A paid order is refunded through the gateway and marked REFUNDED.
func (s *Service) Cancel(ctx context.Context, tenantID, userID, orderID uuid.UUID, req CancelRequest) (*Response, error) {
	o, err := s.findOwnedOrder(ctx, tenantID, userID, orderID)
	if err != nil {
		return nil, err
	}

	return s.cancel(ctx, tenantID, o, req.Reason)
}

// CancelAsAdmin cancels any user's pending order
func (s *Service) CancelAsAdmin(ctx context.Context, tenantID, orderID uuid.UUID, req CancelRequest) (*Response, error) {
	o, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	return s.cancel(ctx, tenantID, o, req.Reason)
}

func (s *Service) cancel(ctx context.Context, tenantID uuid.UUID, o *order.Order, reason string) (*Response, error) {
	wasPaid := o.IsPaid()

	if err := o.Cancel(reason); err != nil {
		return nil, err
	}
	if wasPaid {
		result, err := s.gateway.Refund(ctx, payment.RefundRequest{
			TenantID: tenantID,
			OrderID:  o.ID,
			Amount:   o.Total,
			Currency: string(valueobject.DefaultCurrency),
		})
		if err != nil {
			return nil, err
		}
		if !result.Approved {
			return nil, shared.NewDomainError("INVALID_STATE", "Refund was not approved")
		}
		if err := o.MarkRefunded(); err != nil {
			return nil, err
		}
	}

	restocks := make([]order.StockAdjustment, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		restocks = append(restocks, order.StockAdjustment{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}

	if err := s.orderRepo.CancelWithRestock(ctx, o, restocks); err != nil {
		return nil, err
	}

	response := ToResponse(o)
	return &response, nil
}

// UpdateStatus moves an order one step forward in the fulfillment flow
// (admin operation). Cancellation must go through Cancel.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, req UpdateStatusRequest) (*Response, error) {
	target := order.Status(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown order status")
	}

	o, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.UpdateStatus(target); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	response := ToResponse(o)
	return &response, nil
}

// GetByID returns a user's order by ID
func (s *Service) GetByID(ctx context.Context, tenantID, userID, orderID uuid.UUID) (*Response, error) {
	o, err := s.findOwnedOrder(ctx, tenantID, userID, orderID)
	if err != nil {
		return nil, err
	}

	response := ToResponse(o)
	return &response, nil
}

// GetByIDAsAdmin returns any order of the tenant by ID
func (s *Service) GetByIDAsAdmin(ctx context.Context, tenantID, orderID uuid.UUID) (*Response, error) {
	o, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	response := ToResponse(o)
	return &response, nil
}

// GetByOrderNumber returns a user's order by its number
func (s *Service) GetByOrderNumber(ctx context.Context, tenantID, userID uuid.UUID, orderNumber string) (*Response, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, tenantID, orderNumber)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.ErrNotFound
	}

	response := ToResponse(o)
	return &response, nil
}

// List returns a user's orders with pagination
func (s *Service) List(ctx context.Context, tenantID, userID uuid.UUID, filter ListFilter) ([]ListResponse, int64, error) {
	f := buildFilter(filter)

	orders, err := s.orderRepo.FindByUser(ctx, tenantID, userID, f)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.CountByUser(ctx, tenantID, userID, f)
	if err != nil {
		return nil, 0, err
	}

	return ToListResponses(orders), total, nil
}

// ListAsAdmin returns all orders of the tenant with pagination
func (s *Service) ListAsAdmin(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]ListResponse, int64, error) {
	f := buildFilter(filter)
	if filter.UserID != nil {
		f.Filters["user_id"] = *filter.UserID
	}

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}

	return ToListResponses(orders), total, nil
}

// findOwnedOrder loads an order and verifies ownership. Other users' orders
// surface as NOT_FOUND.
func (s *Service) findOwnedOrder(ctx context.Context, tenantID, userID, orderID uuid.UUID) (*order.Order, error) {
	o, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return o, nil
}

// resolveOwnedAddress verifies the address exists and belongs to the user
func (s *Service) resolveOwnedAddress(ctx context.Context, tenantID, userID, addressID uuid.UUID) error {
	address, err := s.addressRepo.FindByIDForTenant(ctx, tenantID, addressID)
	if err != nil {
		return err
	}
	if !address.BelongsTo(userID) {
		return shared.ErrNotFound
	}
	return nil
}

// buildFilter converts the request filter into a repository filter
func buildFilter(filter ListFilter) shared.Filter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	filters := make(map[string]interface{})
	if filter.Status != "" {
		filters["status"] = filter.Status
	}
	if filter.PaymentStatus != "" {
		filters["payment_status"] = filter.PaymentStatus
	}

	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  filters,
	}
}
