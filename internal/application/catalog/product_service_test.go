package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, tenantID, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, tenantID, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error) {
	args := m.Called(ctx, tenantID, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindVariantByID(ctx context.Context, tenantID, variantID uuid.UUID) (*catalog.ProductVariant, error) {
	args := m.Called(ctx, tenantID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) SaveVariant(ctx context.Context, variant *catalog.ProductVariant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteVariant(ctx context.Context, tenantID, variantID uuid.UUID) error {
	args := m.Called(ctx, tenantID, variantID)
	return args.Error(0)
}

func (m *MockProductRepository) ExistsVariantBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, tenantID, sku)
	return args.Bool(0), args.Error(1)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*catalog.Category, error) {
	args := m.Called(ctx, tenantID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindRoots(ctx context.Context, tenantID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindChildren(ctx context.Context, tenantID, parentID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, tenantID, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) CountChildren(ctx context.Context, tenantID, parentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error) {
	args := m.Called(ctx, tenantID, slug)
	return args.Bool(0), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStorage) PublicURL(storageKey string) string {
	args := m.Called(storageKey)
	return args.String(0)
}

func newProductService() (*ProductService, *MockProductRepository, *MockCategoryRepository, *MockObjectStorage) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	storage := new(MockObjectStorage)
	return NewProductService(productRepo, categoryRepo, storage), productRepo, categoryRepo, storage
}

func mustNewProduct(t *testing.T, tenantID uuid.UUID, sku, name, price string) *catalog.Product {
	t.Helper()
	money, err := valueobject.NewMoneyUSDFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct(tenantID, sku, name, money)
	require.NoError(t, err)
	return product
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates product with derived slug", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()

		productRepo.On("ExistsBySKU", ctx, tenantID, "TEE-RED").Return(false, nil)
		productRepo.On("ExistsBySlug", ctx, tenantID, "red-tee").Return(false, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateProductRequest{
			SKU:   "tee-red",
			Name:  "Red Tee",
			Price: decimal.NewFromInt(25),
		})

		require.NoError(t, err)
		assert.Equal(t, "TEE-RED", resp.SKU)
		assert.Equal(t, "red-tee", resp.Slug)
		assert.Equal(t, "active", resp.Status)
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate SKU", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()

		productRepo.On("ExistsBySKU", ctx, tenantID, "TEE-RED").Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CreateProductRequest{
			SKU:   "TEE-RED",
			Name:  "Red Tee",
			Price: decimal.NewFromInt(25),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()

		productRepo.On("ExistsBySKU", ctx, tenantID, "TEE-RED").Return(false, nil)
		productRepo.On("ExistsBySlug", ctx, tenantID, "red-tee").Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CreateProductRequest{
			SKU:   "TEE-RED",
			Name:  "Red Tee",
			Price: decimal.NewFromInt(25),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		svc, productRepo, categoryRepo, _ := newProductService()
		categoryID := uuid.New()

		productRepo.On("ExistsBySKU", ctx, tenantID, "TEE-RED").Return(false, nil)
		categoryRepo.On("FindByIDForTenant", ctx, tenantID, categoryID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, tenantID, CreateProductRequest{
			SKU:        "TEE-RED",
			Name:       "Red Tee",
			Price:      decimal.NewFromInt(25),
			CategoryID: &categoryID,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	})

	t.Run("sets optional fields", func(t *testing.T) {
		svc, productRepo, categoryRepo, _ := newProductService()
		categoryID := uuid.New()
		category, err := catalog.NewCategory(tenantID, "Shirts", nil)
		require.NoError(t, err)
		stock := int64(10)

		productRepo.On("ExistsBySKU", ctx, tenantID, "TEE-RED").Return(false, nil)
		productRepo.On("ExistsBySlug", ctx, tenantID, "red-tee").Return(false, nil)
		categoryRepo.On("FindByIDForTenant", ctx, tenantID, categoryID).Return(category, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateProductRequest{
			SKU:         "TEE-RED",
			Name:        "Red Tee",
			Description: "A very red tee",
			Price:       decimal.NewFromInt(25),
			Stock:       &stock,
			CategoryID:  &categoryID,
			ImageURL:    "https://cdn.example.com/red-tee.jpg",
		})

		require.NoError(t, err)
		assert.Equal(t, "A very red tee", resp.Description)
		assert.Equal(t, int64(10), resp.Stock)
		assert.Equal(t, &categoryID, resp.CategoryID)
		assert.Equal(t, "https://cdn.example.com/red-tee.jpg", resp.ImageURL)
	})
}

func TestProductService_GetBySlug(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("returns active product and bumps view count", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		product := mustNewProduct(t, tenantID, "TEE-RED", "Red Tee", "25")

		productRepo.On("FindBySlug", ctx, tenantID, "red-tee").Return(product, nil)
		productRepo.On("IncrementViewCount", ctx, product.ID).Return(nil)

		resp, err := svc.GetBySlug(ctx, tenantID, "red-tee")

		require.NoError(t, err)
		assert.Equal(t, product.ID, resp.ID)
		productRepo.AssertExpectations(t)
	})

	t.Run("hides inactive products", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		product := mustNewProduct(t, tenantID, "TEE-RED", "Red Tee", "25")
		require.NoError(t, product.Deactivate())

		productRepo.On("FindBySlug", ctx, tenantID, "red-tee").Return(product, nil)

		_, err := svc.GetBySlug(ctx, tenantID, "red-tee")

		assert.ErrorIs(t, err, shared.ErrNotFound)
		productRepo.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything)
	})

	t.Run("failed view count bump does not fail the read", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		product := mustNewProduct(t, tenantID, "TEE-RED", "Red Tee", "25")

		productRepo.On("FindBySlug", ctx, tenantID, "red-tee").Return(product, nil)
		productRepo.On("IncrementViewCount", ctx, product.ID).Return(assert.AnError)

		_, err := svc.GetBySlug(ctx, tenantID, "red-tee")

		assert.NoError(t, err)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("applies pagination defaults", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()

		expected := shared.Filter{Page: 1, PageSize: 20, Filters: map[string]interface{}{}}
		productRepo.On("FindAllForTenant", ctx, tenantID, expected).Return([]catalog.Product{}, nil)
		productRepo.On("CountForTenant", ctx, tenantID, expected).Return(int64(0), nil)

		_, total, err := svc.List(ctx, tenantID, ProductListFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		productRepo.AssertExpectations(t)
	})

	t.Run("passes filters through", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		inStock := true

		expected := shared.Filter{
			Page:     2,
			PageSize: 10,
			Search:   "tee",
			Filters:  map[string]interface{}{"status": "active", "in_stock": true},
		}
		productRepo.On("FindAllForTenant", ctx, tenantID, expected).Return([]catalog.Product{}, nil)
		productRepo.On("CountForTenant", ctx, tenantID, expected).Return(int64(42), nil)

		_, total, err := svc.List(ctx, tenantID, ProductListFilter{
			Search:   "tee",
			Status:   "active",
			InStock:  &inStock,
			Page:     2,
			PageSize: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(42), total)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("updates price and stock", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		product := mustNewProduct(t, tenantID, "TEE-RED", "Red Tee", "25")
		price := decimal.NewFromInt(30)
		stock := int64(7)

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(nil)

		resp, err := svc.Update(ctx, tenantID, product.ID, UpdateProductRequest{
			Price: &price,
			Stock: &stock,
		})

		require.NoError(t, err)
		assert.True(t, resp.Price.Equal(decimal.NewFromInt(30)))
		assert.Equal(t, int64(7), resp.Stock)
	})

	t.Run("rejects slug already taken", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		product := mustNewProduct(t, tenantID, "TEE-RED", "Red Tee", "25")
		slug := "blue-tee"

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		productRepo.On("ExistsBySlug", ctx, tenantID, "blue-tee").Return(true, nil)

		_, err := svc.Update(ctx, tenantID, product.ID, UpdateProductRequest{Slug: &slug})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		productRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestProductService_StatusTransitions(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("deactivate then activate", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		product := mustNewProduct(t, tenantID, "TEE-RED", "Red Tee", "25")

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(nil)

		resp, err := svc.Deactivate(ctx, tenantID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "inactive", resp.Status)

		resp, err = svc.Activate(ctx, tenantID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("activating an active product fails", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		product := mustNewProduct(t, tenantID, "TEE-RED", "Red Tee", "25")

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)

		_, err := svc.Activate(ctx, tenantID, product.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_ACTIVE", domainErr.Code)
	})
}

func TestProductService_Variants(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("adds variant", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		product := mustNewProduct(t, tenantID, "TEE-RED", "Red Tee", "25")
		stock := int64(5)

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		productRepo.On("ExistsVariantBySKU", ctx, tenantID, "TEE-RED-L").Return(false, nil)
		productRepo.On("SaveVariant", ctx, mock.AnythingOfType("*catalog.ProductVariant")).Return(nil)

		resp, err := svc.AddVariant(ctx, tenantID, product.ID, CreateVariantRequest{
			SKU:        "tee-red-l",
			Name:       "Red Tee L",
			Price:      decimal.NewFromInt(27),
			Stock:      &stock,
			Attributes: `{"size":"L"}`,
		})

		require.NoError(t, err)
		assert.Equal(t, "TEE-RED-L", resp.SKU)
		assert.Equal(t, int64(5), resp.Stock)
		assert.Equal(t, `{"size":"L"}`, resp.Attributes)
	})

	t.Run("rejects duplicate variant SKU", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		product := mustNewProduct(t, tenantID, "TEE-RED", "Red Tee", "25")

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		productRepo.On("ExistsVariantBySKU", ctx, tenantID, "TEE-RED-L").Return(true, nil)

		_, err := svc.AddVariant(ctx, tenantID, product.ID, CreateVariantRequest{
			SKU:   "TEE-RED-L",
			Name:  "Red Tee L",
			Price: decimal.NewFromInt(27),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("variant of another product is not found", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		otherProductID := uuid.New()
		variant, err := catalog.NewProductVariant(tenantID, otherProductID, "TEE-RED-L", "Red Tee L", valueobject.NewMoneyUSD(decimal.NewFromInt(27)))
		require.NoError(t, err)

		productRepo.On("FindVariantByID", ctx, tenantID, variant.ID).Return(variant, nil)

		_, err = svc.UpdateVariant(ctx, tenantID, uuid.New(), variant.ID, UpdateVariantRequest{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_GenerateImageUploadURL(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	svc, productRepo, _, storage := newProductService()
	product := mustNewProduct(t, tenantID, "TEE-RED", "Red Tee", "25")
	expiresAt := time.Now().Add(uploadURLExpiration)

	productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
	storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "image/jpeg", uploadURLExpiration).
		Return("https://storage.example.com/upload", expiresAt, nil)
	storage.On("PublicURL", mock.AnythingOfType("string")).Return("https://cdn.example.com/object")

	resp, err := svc.GenerateImageUploadURL(ctx, tenantID, product.ID, UploadURLRequest{
		FileName:    "photo.jpg",
		ContentType: "image/jpeg",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/upload", resp.UploadURL)
	assert.Contains(t, resp.StorageKey, "products/"+tenantID.String())
	assert.Contains(t, resp.StorageKey, ".jpg")
	assert.Equal(t, expiresAt, resp.ExpiresAt)
}
