package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// ProductHandler handles catalog product endpoints, both the public
// storefront reads and the admin management surface.
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) listMeta(filter catalogapp.ProductListFilter) (int, int) {
	page, pageSize := filter.Page, filter.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	return page, pageSize
}

// ListPublic handles GET /api/v1/catalog/products. Only active products are
// visible to the storefront.
func (h *ProductHandler) ListPublic(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	products, total, err := h.productService.ListActive(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := h.listMeta(filter)
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// GetBySlug handles GET /api/v1/catalog/products/:slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.productService.GetBySlug(c.Request.Context(), tenantID, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListByCategory handles GET /api/v1/catalog/categories/:id/products
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	categoryID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	products, total, err := h.productService.ListByCategory(c.Request.Context(), tenantID, categoryID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := h.listMeta(filter)
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// List handles GET /api/v1/admin/products
func (h *ProductHandler) List(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}

	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := h.listMeta(filter)
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// Get handles GET /api/v1/admin/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.productService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Create handles POST /api/v1/admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.productService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Update handles PUT /api/v1/admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.productService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate handles POST /api/v1/admin/products/:id/activate
func (h *ProductHandler) Activate(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.productService.Activate(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deactivate handles POST /api/v1/admin/products/:id/deactivate
func (h *ProductHandler) Deactivate(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.productService.Deactivate(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddVariant handles POST /api/v1/admin/products/:id/variants
func (h *ProductHandler) AddVariant(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	productID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.productService.AddVariant(c.Request.Context(), tenantID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// UpdateVariant handles PUT /api/v1/admin/products/:id/variants/:variantId
func (h *ProductHandler) UpdateVariant(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	productID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	variantID, ok := h.pathID(c, "variantId")
	if !ok {
		return
	}

	var req catalogapp.UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.productService.UpdateVariant(c.Request.Context(), tenantID, productID, variantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteVariant handles DELETE /api/v1/admin/products/:id/variants/:variantId
func (h *ProductHandler) DeleteVariant(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	productID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	variantID, ok := h.pathID(c, "variantId")
	if !ok {
		return
	}

	if err := h.productService.DeleteVariant(c.Request.Context(), tenantID, productID, variantID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GenerateImageUploadURL handles POST /api/v1/admin/products/:id/images/upload-url
func (h *ProductHandler) GenerateImageUploadURL(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	productID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.productService.GenerateImageUploadURL(c.Request.Context(), tenantID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

type confirmUploadRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
}

// ConfirmImageUpload handles POST /api/v1/admin/products/:id/images/confirm
func (h *ProductHandler) ConfirmImageUpload(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	productID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req confirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.productService.ConfirmImageUpload(c.Request.Context(), tenantID, productID, req.StorageKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
