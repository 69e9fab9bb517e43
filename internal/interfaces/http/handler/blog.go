package handler

import (
	"github.com/gin-gonic/gin"
	contentapp "github.com/storefront/backend/internal/application/content"
)

// BlogHandler handles public blog reads and the admin authoring surface
type BlogHandler struct {
	BaseHandler
	blogService *contentapp.BlogService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogService *contentapp.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// ListPublished handles GET /api/v1/blog/posts
func (h *BlogHandler) ListPublished(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter contentapp.PublicListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.blogService.ListPublished(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp.Posts, resp.Total, resp.Page, resp.PageSize)
}

// GetPublishedBySlug handles GET /api/v1/blog/posts/:slug
func (h *BlogHandler) GetPublishedBySlug(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.blogService.GetPublishedBySlug(c.Request.Context(), tenantID, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /api/v1/admin/blog/posts
func (h *BlogHandler) List(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}

	var filter contentapp.BlogListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.blogService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp.Posts, resp.Total, resp.Page, resp.PageSize)
}

// Get handles GET /api/v1/admin/blog/posts/:id
func (h *BlogHandler) Get(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.blogService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Create handles POST /api/v1/admin/blog/posts
func (h *BlogHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req contentapp.CreateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.blogService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Update handles PUT /api/v1/admin/blog/posts/:id
func (h *BlogHandler) Update(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req contentapp.UpdateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.blogService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Publish handles POST /api/v1/admin/blog/posts/:id/publish
func (h *BlogHandler) Publish(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.blogService.Publish(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Archive handles POST /api/v1/admin/blog/posts/:id/archive
func (h *BlogHandler) Archive(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.blogService.Archive(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/admin/blog/posts/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.blogService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GenerateCoverUploadURL handles POST /api/v1/admin/blog/posts/:id/cover/upload-url
func (h *BlogHandler) GenerateCoverUploadURL(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req contentapp.CoverUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.blogService.GenerateCoverUploadURL(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ConfirmCoverUpload handles POST /api/v1/admin/blog/posts/:id/cover/confirm
func (h *BlogHandler) ConfirmCoverUpload(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req confirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.blogService.ConfirmCoverUpload(c.Request.Context(), tenantID, id, req.StorageKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
