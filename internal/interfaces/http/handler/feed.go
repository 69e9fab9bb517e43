package handler

import (
	"github.com/gin-gonic/gin"
	contentapp "github.com/storefront/backend/internal/application/content"
)

// FeedHandler handles the social feed wall
type FeedHandler struct {
	BaseHandler
	feedService *contentapp.FeedService
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService *contentapp.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// ListVisible handles GET /api/v1/feed
func (h *FeedHandler) ListVisible(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter contentapp.FeedListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.feedService.ListVisible(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp.Posts, resp.Total, resp.Page, resp.PageSize)
}

// List handles GET /api/v1/admin/feed
func (h *FeedHandler) List(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}

	var filter contentapp.FeedListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.feedService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp.Posts, resp.Total, resp.Page, resp.PageSize)
}

// Ingest handles POST /api/v1/admin/feed
func (h *FeedHandler) Ingest(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}

	var req contentapp.IngestFeedPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.feedService.Ingest(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Show handles POST /api/v1/admin/feed/:id/show
func (h *FeedHandler) Show(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.feedService.Show(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Hide handles POST /api/v1/admin/feed/:id/hide
func (h *FeedHandler) Hide(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.feedService.Hide(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/admin/feed/:id
func (h *FeedHandler) Delete(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.feedService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
