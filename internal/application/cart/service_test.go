package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.CartItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]cart.CartItem, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindByUserAndProduct(ctx context.Context, tenantID, userID, productID uuid.UUID, variantID *uuid.UUID) (*cart.CartItem, error) {
	args := m.Called(ctx, tenantID, userID, productID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, item *cart.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUser(ctx context.Context, tenantID, userID uuid.UUID) error {
	args := m.Called(ctx, tenantID, userID)
	return args.Error(0)
}

func (m *MockCartRepository) ReplaceForUser(ctx context.Context, tenantID, userID uuid.UUID, items []cart.CartItem) error {
	args := m.Called(ctx, tenantID, userID, items)
	return args.Error(0)
}

func (m *MockCartRepository) CountByUser(ctx context.Context, tenantID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductReader is a mock implementation of catalog.ProductRepository
// covering the subset the cart service touches
type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductReader) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductReader) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductReader) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductReader) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductReader) FindActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductReader) FindByCategory(ctx context.Context, tenantID, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductReader) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductReader) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductReader) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductReader) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductReader) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductReader) CountActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductReader) CountByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductReader) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, tenantID, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductReader) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error) {
	args := m.Called(ctx, tenantID, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductReader) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductReader) FindVariantByID(ctx context.Context, tenantID, variantID uuid.UUID) (*catalog.ProductVariant, error) {
	args := m.Called(ctx, tenantID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariant), args.Error(1)
}

func (m *MockProductReader) SaveVariant(ctx context.Context, variant *catalog.ProductVariant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockProductReader) DeleteVariant(ctx context.Context, tenantID, variantID uuid.UUID) error {
	args := m.Called(ctx, tenantID, variantID)
	return args.Error(0)
}

func (m *MockProductReader) ExistsVariantBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, tenantID, sku)
	return args.Bool(0), args.Error(1)
}

func newCartService() (*Service, *MockCartRepository, *MockProductReader) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductReader)
	return NewService(cartRepo, productRepo), cartRepo, productRepo
}

func newTestProduct(t *testing.T, tenantID uuid.UUID, price string, stock int64) *catalog.Product {
	t.Helper()
	money, err := valueobject.NewMoneyUSDFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct(tenantID, "TEE-RED", "Red Tee", money)
	require.NoError(t, err)
	require.NoError(t, product.SetStock(stock))
	return product
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("creates a new line", func(t *testing.T) {
		svc, cartRepo, productRepo := newCartService()
		product := newTestProduct(t, tenantID, "25", 10)

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", ctx, tenantID, userID, product.ID, (*uuid.UUID)(nil)).Return(nil, shared.ErrNotFound)
		cartRepo.On("Save", ctx, mock.AnythingOfType("*cart.CartItem")).Return(nil)

		resp, created, err := svc.AddItem(ctx, tenantID, userID, AddItemRequest{
			ProductID: product.ID,
			Quantity:  2,
		})

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(2), resp.Quantity)
		assert.True(t, resp.LineTotal.Equal(decimal.NewFromInt(50)))
	})

	t.Run("merges into an existing line", func(t *testing.T) {
		svc, cartRepo, productRepo := newCartService()
		product := newTestProduct(t, tenantID, "25", 10)
		existing, err := cart.NewCartItem(tenantID, userID, product.ID, nil, 3)
		require.NoError(t, err)

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", ctx, tenantID, userID, product.ID, (*uuid.UUID)(nil)).Return(existing, nil)
		cartRepo.On("Save", ctx, existing).Return(nil)

		resp, created, err := svc.AddItem(ctx, tenantID, userID, AddItemRequest{
			ProductID: product.ID,
			Quantity:  2,
		})

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, int64(5), resp.Quantity)
	})

	t.Run("merged quantity cannot exceed stock", func(t *testing.T) {
		svc, cartRepo, productRepo := newCartService()
		product := newTestProduct(t, tenantID, "25", 4)
		existing, err := cart.NewCartItem(tenantID, userID, product.ID, nil, 3)
		require.NoError(t, err)

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", ctx, tenantID, userID, product.ID, (*uuid.UUID)(nil)).Return(existing, nil)

		_, _, err = svc.AddItem(ctx, tenantID, userID, AddItemRequest{
			ProductID: product.ID,
			Quantity:  2,
		})

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects inactive product", func(t *testing.T) {
		svc, _, productRepo := newCartService()
		product := newTestProduct(t, tenantID, "25", 10)
		require.NoError(t, product.Deactivate())

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)

		_, _, err := svc.AddItem(ctx, tenantID, userID, AddItemRequest{
			ProductID: product.ID,
			Quantity:  1,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("uses variant stock and price", func(t *testing.T) {
		svc, cartRepo, productRepo := newCartService()
		product := newTestProduct(t, tenantID, "25", 0)
		variant, err := catalog.NewProductVariant(tenantID, product.ID, "TEE-RED-L", "Red Tee L", valueobject.NewMoneyUSD(decimal.NewFromInt(27)))
		require.NoError(t, err)
		require.NoError(t, variant.SetStock(3))
		product.Variants = []catalog.ProductVariant{*variant}

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", ctx, tenantID, userID, product.ID, &variant.ID).Return(nil, shared.ErrNotFound)
		cartRepo.On("Save", ctx, mock.AnythingOfType("*cart.CartItem")).Return(nil)

		resp, created, err := svc.AddItem(ctx, tenantID, userID, AddItemRequest{
			ProductID: product.ID,
			VariantID: &variant.ID,
			Quantity:  2,
		})

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "TEE-RED-L", resp.SKU)
		assert.True(t, resp.UnitPrice.Equal(decimal.NewFromInt(27)))
	})

	t.Run("unknown variant is not found", func(t *testing.T) {
		svc, _, productRepo := newCartService()
		product := newTestProduct(t, tenantID, "25", 10)
		variantID := uuid.New()

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)

		_, _, err := svc.AddItem(ctx, tenantID, userID, AddItemRequest{
			ProductID: product.ID,
			VariantID: &variantID,
			Quantity:  1,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestCartService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("updates quantity within stock", func(t *testing.T) {
		svc, cartRepo, productRepo := newCartService()
		product := newTestProduct(t, tenantID, "25", 10)
		item, err := cart.NewCartItem(tenantID, userID, product.ID, nil, 2)
		require.NoError(t, err)

		cartRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		cartRepo.On("Save", ctx, item).Return(nil)

		resp, err := svc.UpdateItem(ctx, tenantID, userID, item.ID, UpdateItemRequest{Quantity: 5})

		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.Quantity)
	})

	t.Run("rejects quantity above stock", func(t *testing.T) {
		svc, cartRepo, productRepo := newCartService()
		product := newTestProduct(t, tenantID, "25", 4)
		item, err := cart.NewCartItem(tenantID, userID, product.ID, nil, 2)
		require.NoError(t, err)

		cartRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)

		_, err = svc.UpdateItem(ctx, tenantID, userID, item.ID, UpdateItemRequest{Quantity: 5})

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("another user's line is not found", func(t *testing.T) {
		svc, cartRepo, _ := newCartService()
		item, err := cart.NewCartItem(tenantID, uuid.New(), uuid.New(), nil, 2)
		require.NoError(t, err)

		cartRepo.On("FindByID", ctx, item.ID).Return(item, nil)

		_, err = svc.UpdateItem(ctx, tenantID, userID, item.ID, UpdateItemRequest{Quantity: 1})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("deletes an owned line", func(t *testing.T) {
		svc, cartRepo, _ := newCartService()
		item, err := cart.NewCartItem(tenantID, userID, uuid.New(), nil, 2)
		require.NoError(t, err)

		cartRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		cartRepo.On("Delete", ctx, item.ID).Return(nil)

		require.NoError(t, svc.RemoveItem(ctx, tenantID, userID, item.ID))
		cartRepo.AssertCalled(t, "Delete", ctx, item.ID)
	})

	t.Run("removing an already removed line succeeds", func(t *testing.T) {
		svc, cartRepo, _ := newCartService()
		itemID := uuid.New()

		cartRepo.On("FindByID", ctx, itemID).Return(nil, shared.ErrNotFound)

		require.NoError(t, svc.RemoveItem(ctx, tenantID, userID, itemID))
		cartRepo.AssertNotCalled(t, "Delete", ctx, itemID)
	})

	t.Run("another user's line reads as already removed", func(t *testing.T) {
		svc, cartRepo, _ := newCartService()
		item, err := cart.NewCartItem(tenantID, uuid.New(), uuid.New(), nil, 1)
		require.NoError(t, err)

		cartRepo.On("FindByID", ctx, item.ID).Return(item, nil)

		require.NoError(t, svc.RemoveItem(ctx, tenantID, userID, item.ID))
		cartRepo.AssertNotCalled(t, "Delete", ctx, item.ID)
	})
}

func TestCartService_Sync(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("replaces the cart", func(t *testing.T) {
		svc, cartRepo, productRepo := newCartService()
		product := newTestProduct(t, tenantID, "25", 10)

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		cartRepo.On("ReplaceForUser", ctx, tenantID, userID, mock.AnythingOfType("[]cart.CartItem")).Return(nil)
		cartRepo.On("FindByUser", ctx, tenantID, userID).Return([]cart.CartItem{}, nil)

		resp, err := svc.Sync(ctx, tenantID, userID, SyncRequest{
			Items: []SyncItemRequest{{ProductID: product.ID, Quantity: 2}},
		})

		require.NoError(t, err)
		assert.NotNil(t, resp)
		cartRepo.AssertExpectations(t)
	})

	t.Run("first invalid product aborts", func(t *testing.T) {
		svc, cartRepo, productRepo := newCartService()
		productID := uuid.New()

		productRepo.On("FindByIDForTenant", ctx, tenantID, productID).Return(nil, shared.ErrNotFound)

		_, err := svc.Sync(ctx, tenantID, userID, SyncRequest{
			Items: []SyncItemRequest{{ProductID: productID, Quantity: 2}},
		})

		require.Error(t, err)
		cartRepo.AssertNotCalled(t, "ReplaceForUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCartService_Validate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	svc, cartRepo, productRepo := newCartService()

	okProduct := newTestProduct(t, tenantID, "25", 10)
	goneID := uuid.New()

	okItem, err := cart.NewCartItem(tenantID, userID, okProduct.ID, nil, 2)
	require.NoError(t, err)
	overItem, err := cart.NewCartItem(tenantID, userID, okProduct.ID, nil, 99)
	require.NoError(t, err)
	goneItem, err := cart.NewCartItem(tenantID, userID, goneID, nil, 1)
	require.NoError(t, err)

	cartRepo.On("FindByUser", ctx, tenantID, userID).Return([]cart.CartItem{*okItem, *overItem, *goneItem}, nil)
	productRepo.On("FindByIDForTenant", ctx, tenantID, okProduct.ID).Return(okProduct, nil)
	productRepo.On("FindByIDForTenant", ctx, tenantID, goneID).Return(nil, shared.ErrNotFound)

	resp, err := svc.Validate(ctx, tenantID, userID)

	require.NoError(t, err)
	assert.False(t, resp.Valid)
	require.Len(t, resp.Issues, 2)
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Issues[0].Code)
	assert.Equal(t, "NOT_FOUND", resp.Issues[1].Code)
}

func TestCartService_Get(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("empty cart", func(t *testing.T) {
		svc, cartRepo, _ := newCartService()

		cartRepo.On("FindByUser", ctx, tenantID, userID).Return([]cart.CartItem{}, nil)

		resp, err := svc.Get(ctx, tenantID, userID)

		require.NoError(t, err)
		assert.Equal(t, 0, resp.ItemCount)
		assert.True(t, resp.Subtotal.IsZero())
	})

	t.Run("sums line totals", func(t *testing.T) {
		svc, cartRepo, productRepo := newCartService()
		product := newTestProduct(t, tenantID, "25", 10)
		item, err := cart.NewCartItem(tenantID, userID, product.ID, nil, 3)
		require.NoError(t, err)

		cartRepo.On("FindByUser", ctx, tenantID, userID).Return([]cart.CartItem{*item}, nil)
		productRepo.On("FindByIDs", ctx, tenantID, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)

		resp, err := svc.Get(ctx, tenantID, userID)

		require.NoError(t, err)
		assert.Equal(t, 1, resp.ItemCount)
		assert.Equal(t, int64(3), resp.TotalItems)
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(75)))
	})
}
