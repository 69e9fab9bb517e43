package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// Service handles cart operations. Every operation is scoped to one user in
// one tenant; prices are always read from the catalog, never stored.
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
}

// NewService creates a new cart Service
func NewService(cartRepo cart.Repository, productRepo catalog.ProductRepository) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// line holds a cart item joined with its catalog data
type line struct {
	item      *cart.CartItem
	product   *catalog.Product
	variant   *catalog.ProductVariant
	unitPrice decimal.Decimal
	stock     int64
}

// AddItem adds a product to the cart. An existing line for the same
// (product, variant) pair is merged; the merged quantity must not exceed
// stock. The second return value reports whether a new line was created.
func (s *Service) AddItem(ctx context.Context, tenantID, userID uuid.UUID, req AddItemRequest) (*ItemResponse, bool, error) {
	product, variant, err := s.resolveCatalogEntry(ctx, tenantID, req.ProductID, req.VariantID)
	if err != nil {
		return nil, false, err
	}

	stock := product.Stock
	if variant != nil {
		stock = variant.Stock
	}

	existing, err := s.cartRepo.FindByUserAndProduct(ctx, tenantID, userID, req.ProductID, req.VariantID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}

	if existing != nil {
		if existing.Quantity+req.Quantity > stock {
			return nil, false, shared.ErrInsufficientStock
		}
		if err := existing.IncreaseQuantity(req.Quantity); err != nil {
			return nil, false, err
		}
		if err := s.cartRepo.Save(ctx, existing); err != nil {
			return nil, false, err
		}
		response := toItemResponse(&line{item: existing, product: product, variant: variant})
		return &response, false, nil
	}

	if req.Quantity > stock {
		return nil, false, shared.ErrInsufficientStock
	}

	item, err := cart.NewCartItem(tenantID, userID, req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		return nil, false, err
	}
	if err := s.cartRepo.Save(ctx, item); err != nil {
		return nil, false, err
	}

	response := toItemResponse(&line{item: item, product: product, variant: variant})
	return &response, true, nil
}

// UpdateItem replaces the quantity of a cart line
func (s *Service) UpdateItem(ctx context.Context, tenantID, userID, itemID uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.findOwnedItem(ctx, tenantID, userID, itemID)
	if err != nil {
		return nil, err
	}

	product, variant, err := s.resolveCatalogEntry(ctx, tenantID, item.ProductID, item.VariantID)
	if err != nil {
		return nil, err
	}

	stock := product.Stock
	if variant != nil {
		stock = variant.Stock
	}
	if req.Quantity > stock {
		return nil, shared.ErrInsufficientStock
	}

	if err := item.UpdateQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := toItemResponse(&line{item: item, product: product, variant: variant})
	return &response, nil
}

// RemoveItem deletes a cart line. Removal is idempotent: a line that is
// already gone, or that belongs to someone else, reads as already removed.
func (s *Service) RemoveItem(ctx context.Context, tenantID, userID, itemID uuid.UUID) error {
	item, err := s.findOwnedItem(ctx, tenantID, userID, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	return s.cartRepo.Delete(ctx, item.ID)
}

// Clear removes all cart lines of the user
func (s *Service) Clear(ctx context.Context, tenantID, userID uuid.UUID) error {
	return s.cartRepo.DeleteByUser(ctx, tenantID, userID)
}

// Get returns the user's cart with catalog data joined in. Lines whose
// product disappeared are included with zero price so the client can render
// and remove them.
func (s *Service) Get(ctx context.Context, tenantID, userID uuid.UUID) (*CartResponse, error) {
	items, err := s.cartRepo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	lines, err := s.loadLines(ctx, tenantID, items)
	if err != nil {
		return nil, err
	}

	return toCartResponse(lines), nil
}

// Sync replaces the whole cart with the given lines in one transaction. The
// first invalid product aborts the sync and the previous cart survives.
func (s *Service) Sync(ctx context.Context, tenantID, userID uuid.UUID, req SyncRequest) (*CartResponse, error) {
	newItems := make([]cart.CartItem, 0, len(req.Items))
	for _, entry := range req.Items {
		product, variant, err := s.resolveCatalogEntry(ctx, tenantID, entry.ProductID, entry.VariantID)
		if err != nil {
			return nil, err
		}

		stock := product.Stock
		if variant != nil {
			stock = variant.Stock
		}
		if entry.Quantity > stock {
			return nil, shared.ErrInsufficientStock
		}

		item, err := cart.NewCartItem(tenantID, userID, entry.ProductID, entry.VariantID, entry.Quantity)
		if err != nil {
			return nil, err
		}
		newItems = append(newItems, *item)
	}

	if err := s.cartRepo.ReplaceForUser(ctx, tenantID, userID, newItems); err != nil {
		return nil, err
	}

	return s.Get(ctx, tenantID, userID)
}

// Validate checks every cart line against current catalog state without
// mutating anything
func (s *Service) Validate(ctx context.Context, tenantID, userID uuid.UUID) (*ValidationResponse, error) {
	items, err := s.cartRepo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	issues := make([]Issue, 0)
	for i := range items {
		item := &items[i]

		product, variant, err := s.resolveCatalogEntry(ctx, tenantID, item.ProductID, item.VariantID)
		if err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				issues = append(issues, Issue{
					ItemID:    item.ID,
					ProductID: item.ProductID,
					VariantID: item.VariantID,
					Code:      domainErr.Code,
					Message:   domainErr.Message,
				})
				continue
			}
			return nil, err
		}

		stock := product.Stock
		if variant != nil {
			stock = variant.Stock
		}
		if item.Quantity > stock {
			issues = append(issues, Issue{
				ItemID:    item.ID,
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Code:      "INSUFFICIENT_STOCK",
				Message:   fmt.Sprintf("Only %d in stock", stock),
			})
		}
	}

	return &ValidationResponse{
		Valid:  len(issues) == 0,
		Issues: issues,
	}, nil
}

// Count returns the number of cart lines of the user
func (s *Service) Count(ctx context.Context, tenantID, userID uuid.UUID) (int64, error) {
	return s.cartRepo.CountByUser(ctx, tenantID, userID)
}

// resolveCatalogEntry loads the product (and variant, when requested) and
// verifies both are purchasable
func (s *Service) resolveCatalogEntry(ctx context.Context, tenantID, productID uuid.UUID, variantID *uuid.UUID) (*catalog.Product, *catalog.ProductVariant, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, nil, err
	}
	if !product.IsActive() {
		return nil, nil, shared.NewDomainError("INVALID_STATE", "Product is not available")
	}

	if variantID == nil {
		return product, nil, nil
	}

	variant := product.FindVariant(*variantID)
	if variant == nil {
		return nil, nil, shared.NewDomainError("NOT_FOUND", "Product variant not found")
	}
	if !variant.IsActive {
		return nil, nil, shared.NewDomainError("INVALID_STATE", "Product variant is not available")
	}

	return product, variant, nil
}

// findOwnedItem loads a cart line and verifies ownership. Lines of other
// users or tenants surface as NOT_FOUND, never as FORBIDDEN.
func (s *Service) findOwnedItem(ctx context.Context, tenantID, userID, itemID uuid.UUID) (*cart.CartItem, error) {
	item, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.TenantID != tenantID || item.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

// loadLines joins cart items with their catalog rows in one query
func (s *Service) loadLines(ctx context.Context, tenantID uuid.UUID, items []cart.CartItem) ([]line, error) {
	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]line, 0, len(items))
	for i := range items {
		item := &items[i]
		l := line{item: item}
		if product, ok := byID[item.ProductID]; ok {
			l.product = product
			if item.VariantID != nil {
				l.variant = product.FindVariant(*item.VariantID)
			}
		}
		lines = append(lines, l)
	}

	return lines, nil
}

// toItemResponse builds the response for one line
func toItemResponse(l *line) ItemResponse {
	response := ItemResponse{
		ID:        l.item.ID,
		ProductID: l.item.ProductID,
		VariantID: l.item.VariantID,
		Quantity:  l.item.Quantity,
		UnitPrice: decimal.Zero,
		LineTotal: decimal.Zero,
	}

	if l.product != nil {
		response.ProductName = l.product.Name
		response.SKU = l.product.SKU
		response.ImageURL = l.product.ImageURL
		response.UnitPrice = l.product.Price
	}
	if l.variant != nil {
		response.VariantName = l.variant.Name
		response.SKU = l.variant.SKU
		response.UnitPrice = l.variant.Price
	}

	response.LineTotal = response.UnitPrice.Mul(decimal.NewFromInt(l.item.Quantity))
	return response
}

// toCartResponse aggregates lines into the cart view
func toCartResponse(lines []line) *CartResponse {
	response := &CartResponse{
		Items:    make([]ItemResponse, 0, len(lines)),
		Subtotal: decimal.Zero,
	}

	for i := range lines {
		item := toItemResponse(&lines[i])
		response.Items = append(response.Items, item)
		response.TotalItems += item.Quantity
		response.Subtotal = response.Subtotal.Add(item.LineTotal)
	}
	response.ItemCount = len(response.Items)

	return response
}
