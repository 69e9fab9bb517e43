package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU         string           `json:"sku" binding:"required,min=1,max=50"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Slug        string           `json:"slug" binding:"omitempty,max=220"`
	Description string           `json:"description" binding:"max=5000"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	Stock       *int64           `json:"stock" binding:"omitempty,min=0"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	ImageURL    string           `json:"image_url" binding:"omitempty,max=500"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Slug        *string          `json:"slug" binding:"omitempty,max=220"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int64           `json:"stock" binding:"omitempty,min=0"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	ImageURL    *string          `json:"image_url" binding:"omitempty,max=500"`
}

// CreateVariantRequest represents a request to add a variant to a product
type CreateVariantRequest struct {
	SKU        string          `json:"sku" binding:"required,min=1,max=50"`
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	Stock      *int64          `json:"stock" binding:"omitempty,min=0"`
	Attributes string          `json:"attributes"`
}

// UpdateVariantRequest represents a request to update a variant
type UpdateVariantRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Price      *decimal.Decimal `json:"price"`
	Stock      *int64           `json:"stock" binding:"omitempty,min=0"`
	Attributes *string          `json:"attributes"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=active inactive"`
	CategoryID *uuid.UUID `form:"category_id"`
	MinPrice   *float64   `form:"min_price"`
	MaxPrice   *float64   `form:"max_price"`
	InStock    *bool      `form:"in_stock"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// VariantResponse represents a product variant in API responses
type VariantResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int64           `json:"stock"`
	Attributes string          `json:"attributes"`
	IsActive   bool            `json:"is_active"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	SKU         string            `json:"sku"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	Stock       int64             `json:"stock"`
	CategoryID  *uuid.UUID        `json:"category_id"`
	ImageURL    string            `json:"image_url"`
	Status      string            `json:"status"`
	ViewCount   int64             `json:"view_count"`
	Variants    []VariantResponse `json:"variants"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Version     int               `json:"version"`
}

// ProductListResponse represents a list item for products
type ProductListResponse struct {
	ID         uuid.UUID       `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Slug       string          `json:"slug"`
	Price      decimal.Decimal `json:"price"`
	Stock      int64           `json:"stock"`
	CategoryID *uuid.UUID      `json:"category_id"`
	ImageURL   string          `json:"image_url"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=100"`
	Slug     string     `json:"slug" binding:"omitempty,max=120"`
	ParentID *uuid.UUID `json:"parent_id"`
	ImageURL string     `json:"image_url" binding:"omitempty,max=500"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Slug     *string `json:"slug" binding:"omitempty,max=120"`
	ImageURL *string `json:"image_url" binding:"omitempty,max=500"`
	IsActive *bool   `json:"is_active"`
}

// CategoryListFilter represents filter options for category list
type CategoryListFilter struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ParentID  *uuid.UUID `json:"parent_id"`
	ImageURL  string     `json:"image_url"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CategoryTreeResponse is a category with its direct children
type CategoryTreeResponse struct {
	CategoryResponse
	Children []CategoryResponse `json:"children"`
}

// UploadURLRequest asks for a presigned image upload URL
type UploadURLRequest struct {
	FileName    string `json:"file_name" binding:"required,max=200"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// UploadURLResponse carries the presigned URL back to the client
type UploadURLResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	PublicURL  string    `json:"public_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ToVariantResponse converts a domain ProductVariant to VariantResponse
func ToVariantResponse(v *catalog.ProductVariant) VariantResponse {
	return VariantResponse{
		ID:         v.ID,
		ProductID:  v.ProductID,
		SKU:        v.SKU,
		Name:       v.Name,
		Price:      v.Price,
		Stock:      v.Stock,
		Attributes: v.Attributes,
		IsActive:   v.IsActive,
	}
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	variants := make([]VariantResponse, 0, len(p.Variants))
	for i := range p.Variants {
		variants = append(variants, ToVariantResponse(&p.Variants[i]))
	}

	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
		Status:      string(p.Status),
		ViewCount:   p.ViewCount,
		Variants:    variants,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToProductListResponses converts domain Products to list responses
func ToProductListResponses(products []catalog.Product) []ProductListResponse {
	responses := make([]ProductListResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		responses = append(responses, ProductListResponse{
			ID:         p.ID,
			SKU:        p.SKU,
			Name:       p.Name,
			Slug:       p.Slug,
			Price:      p.Price,
			Stock:      p.Stock,
			CategoryID: p.CategoryID,
			ImageURL:   p.ImageURL,
			Status:     string(p.Status),
			CreatedAt:  p.CreatedAt,
		})
	}
	return responses
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		ParentID:  c.ParentID,
		ImageURL:  c.ImageURL,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCategoryResponses converts domain Categories to responses
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses
}
