package catalog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

const uploadURLExpiration = 15 * time.Minute

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	storage      ObjectStorage
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	storage ObjectStorage,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, tenantID, strings.ToUpper(req.SKU))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, tenantID, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	product, err := catalog.NewProduct(tenantID, req.SKU, req.Name, valueobject.NewMoneyUSD(req.Price))
	if err != nil {
		return nil, err
	}

	if req.Slug != "" {
		if err := product.SetSlug(req.Slug); err != nil {
			return nil, err
		}
	}

	exists, err = s.productRepo.ExistsBySlug(ctx, tenantID, product.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		product.SetCategory(req.CategoryID)
	}

	if req.ImageURL != "" {
		if err := product.SetImageURL(req.ImageURL); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID returns a product by ID for admin views
func (s *ProductService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetBySlug returns an active product by slug for the public catalog. The
// view counter is bumped best-effort; a failed bump never fails the read.
func (s *ProductService) GetBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, tenantID, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.ErrNotFound
	}

	_ = s.productRepo.IncrementViewCount(ctx, product.ID)

	response := ToProductResponse(product)
	return &response, nil
}

// List returns products for a tenant with pagination (admin view)
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) ([]ProductListResponse, int64, error) {
	f := s.buildFilter(filter)

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}

	return ToProductListResponses(products), total, nil
}

// ListActive returns active products for the public catalog
func (s *ProductService) ListActive(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) ([]ProductListResponse, int64, error) {
	filter.Status = ""
	f := s.buildFilter(filter)

	products, err := s.productRepo.FindActive(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.CountActive(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}

	return ToProductListResponses(products), total, nil
}

// ListByCategory returns products of a category for the public catalog
func (s *ProductService) ListByCategory(ctx context.Context, tenantID, categoryID uuid.UUID, filter ProductListFilter) ([]ProductListResponse, int64, error) {
	if err := s.validateCategory(ctx, tenantID, categoryID); err != nil {
		return nil, 0, err
	}

	f := s.buildFilter(filter)

	products, err := s.productRepo.FindByCategory(ctx, tenantID, categoryID, f)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.CountByCategory(ctx, tenantID, categoryID)
	if err != nil {
		return nil, 0, err
	}

	return ToProductListResponses(products), total, nil
}

// Update updates a product's information
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Slug != nil && *req.Slug != product.Slug {
		exists, err := s.productRepo.ExistsBySlug(ctx, tenantID, *req.Slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
		}
		if err := product.SetSlug(*req.Slug); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		if err := product.SetPrice(valueobject.NewMoneyUSD(*req.Price)); err != nil {
			return nil, err
		}
	}

	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, tenantID, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}

	if req.ImageURL != nil {
		if err := product.SetImageURL(*req.ImageURL); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Activate makes a product visible in the public catalog
func (s *ProductService) Activate(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	return s.changeStatus(ctx, tenantID, id, func(p *catalog.Product) error {
		return p.Activate()
	})
}

// Deactivate hides a product from the public catalog
func (s *ProductService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	return s.changeStatus(ctx, tenantID, id, func(p *catalog.Product) error {
		return p.Deactivate()
	})
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	return s.productRepo.Delete(ctx, product.ID)
}

// AddVariant adds a new variant to a product
func (s *ProductService) AddVariant(ctx context.Context, tenantID, productID uuid.UUID, req CreateVariantRequest) (*VariantResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsVariantBySKU(ctx, tenantID, strings.ToUpper(req.SKU))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Variant with this SKU already exists")
	}

	variant, err := catalog.NewProductVariant(tenantID, product.ID, req.SKU, req.Name, valueobject.NewMoneyUSD(req.Price))
	if err != nil {
		return nil, err
	}

	if req.Stock != nil {
		if err := variant.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if req.Attributes != "" {
		if err := variant.SetAttributes(req.Attributes); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveVariant(ctx, variant); err != nil {
		return nil, err
	}

	response := ToVariantResponse(variant)
	return &response, nil
}

// UpdateVariant updates an existing variant
func (s *ProductService) UpdateVariant(ctx context.Context, tenantID, productID, variantID uuid.UUID, req UpdateVariantRequest) (*VariantResponse, error) {
	variant, err := s.productRepo.FindVariantByID(ctx, tenantID, variantID)
	if err != nil {
		return nil, err
	}
	if variant.ProductID != productID {
		return nil, shared.ErrNotFound
	}

	if req.Name != nil || req.Price != nil {
		name := variant.Name
		price := variant.Price
		if req.Name != nil {
			name = *req.Name
		}
		if req.Price != nil {
			price = *req.Price
		}
		if err := variant.Update(name, valueobject.NewMoneyUSD(price)); err != nil {
			return nil, err
		}
	}

	if req.Stock != nil {
		if err := variant.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if req.Attributes != nil {
		if err := variant.SetAttributes(*req.Attributes); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveVariant(ctx, variant); err != nil {
		return nil, err
	}

	response := ToVariantResponse(variant)
	return &response, nil
}

// DeleteVariant removes a variant from a product
func (s *ProductService) DeleteVariant(ctx context.Context, tenantID, productID, variantID uuid.UUID) error {
	variant, err := s.productRepo.FindVariantByID(ctx, tenantID, variantID)
	if err != nil {
		return err
	}
	if variant.ProductID != productID {
		return shared.ErrNotFound
	}

	return s.productRepo.DeleteVariant(ctx, tenantID, variantID)
}

// GenerateImageUploadURL returns a presigned URL for uploading a product image.
// The storage key is namespaced per tenant and product.
func (s *ProductService) GenerateImageUploadURL(ctx context.Context, tenantID, productID uuid.UUID, req UploadURLRequest) (*UploadURLResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	ext := path.Ext(req.FileName)
	storageKey := fmt.Sprintf("products/%s/%s/%s%s", tenantID, product.ID, uuid.New(), ext)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, uploadURLExpiration)
	if err != nil {
		return nil, err
	}

	return &UploadURLResponse{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		PublicURL:  s.storage.PublicURL(storageKey),
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmImageUpload records an uploaded image as the product's image
func (s *ProductService) ConfirmImageUpload(ctx context.Context, tenantID, productID uuid.UUID, storageKey string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "Uploaded object not found in storage")
	}

	if err := product.SetImageURL(s.storage.PublicURL(storageKey)); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// changeStatus loads a product, applies a status transition, and persists it
func (s *ProductService) changeStatus(ctx context.Context, tenantID, id uuid.UUID, transition func(*catalog.Product) error) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := transition(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// validateCategory ensures the category exists in the tenant
func (s *ProductService) validateCategory(ctx context.Context, tenantID, categoryID uuid.UUID) error {
	_, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, categoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return err
	}
	return nil
}

// buildFilter converts the request filter into a repository filter
func (s *ProductService) buildFilter(filter ProductListFilter) shared.Filter {
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
	if filter.CategoryID != nil {
		filters["category_id"] = *filter.CategoryID
	}
	if filter.MinPrice != nil {
		filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		filters["max_price"] = *filter.MaxPrice
	}
	if filter.InStock != nil {
		filters["in_stock"] = *filter.InStock
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
