package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/content"
)

// CreateBlogPostRequest represents a new blog post
type CreateBlogPostRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Body    string `json:"body"`
	Excerpt string `json:"excerpt" binding:"max=500"`
}

// UpdateBlogPostRequest updates a post's content
type UpdateBlogPostRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Body    string `json:"body"`
	Excerpt string `json:"excerpt" binding:"max=500"`
}

// BlogListFilter represents filter options for the admin post list
type BlogListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=draft published archived"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// PublicListFilter represents pagination for public listings
type PublicListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// BlogPostResponse represents a blog post in API responses
type BlogPostResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Body        string     `json:"body"`
	Excerpt     string     `json:"excerpt"`
	CoverURL    string     `json:"cover_url"`
	Status      string     `json:"status"`
	AuthorID    uuid.UUID  `json:"author_id"`
	PublishedAt *time.Time `json:"published_at"`
	ViewCount   int64      `json:"view_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// BlogPostListResponse represents a paginated list of posts
type BlogPostListResponse struct {
	Posts    []BlogPostResponse `json:"posts"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// CoverUploadURLRequest asks for a presigned cover upload URL
type CoverUploadURLRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// CoverUploadURLResponse carries the presigned upload URL
type CoverUploadURLResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	PublicURL  string    `json:"public_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IngestFeedPostRequest represents a social post to mirror on the storefront
type IngestFeedPostRequest struct {
	Platform       string    `json:"platform" binding:"required,oneof=instagram tiktok x"`
	PlatformPostID string    `json:"platform_post_id" binding:"required,max=100"`
	Caption        string    `json:"caption"`
	MediaURL       string    `json:"media_url" binding:"required,max=500"`
	Permalink      string    `json:"permalink" binding:"max=500"`
	PostedAt       time.Time `json:"posted_at" binding:"required"`
}

// FeedListFilter represents filter options for the admin feed list
type FeedListFilter struct {
	Platform string `form:"platform" binding:"omitempty,oneof=instagram tiktok x"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// FeedPostResponse represents a feed post in API responses
type FeedPostResponse struct {
	ID             uuid.UUID `json:"id"`
	Platform       string    `json:"platform"`
	PlatformPostID string    `json:"platform_post_id"`
	Caption        string    `json:"caption"`
	MediaURL       string    `json:"media_url"`
	Permalink      string    `json:"permalink"`
	PostedAt       time.Time `json:"posted_at"`
	IsVisible      bool      `json:"is_visible"`
	CreatedAt      time.Time `json:"created_at"`
}

// FeedListResponse represents a paginated list of feed posts
type FeedListResponse struct {
	Posts    []FeedPostResponse `json:"posts"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// ToBlogPostResponse converts a domain BlogPost to BlogPostResponse
func ToBlogPostResponse(p *content.BlogPost) BlogPostResponse {
	return BlogPostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Body:        p.Body,
		Excerpt:     p.Excerpt,
		CoverURL:    p.CoverURL,
		Status:      string(p.Status),
		AuthorID:    p.AuthorID,
		PublishedAt: p.PublishedAt,
		ViewCount:   p.ViewCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToBlogPostResponses converts domain BlogPosts to responses
func ToBlogPostResponses(posts []content.BlogPost) []BlogPostResponse {
	responses := make([]BlogPostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, ToBlogPostResponse(&posts[i]))
	}
	return responses
}

// ToFeedPostResponse converts a domain FeedPost to FeedPostResponse
func ToFeedPostResponse(p *content.FeedPost) FeedPostResponse {
	return FeedPostResponse{
		ID:             p.ID,
		Platform:       string(p.Platform),
		PlatformPostID: p.PlatformPostID,
		Caption:        p.Caption,
		MediaURL:       p.MediaURL,
		Permalink:      p.Permalink,
		PostedAt:       p.PostedAt,
		IsVisible:      p.IsVisible,
		CreatedAt:      p.CreatedAt,
	}
}

// ToFeedPostResponses converts domain FeedPosts to responses
func ToFeedPostResponses(posts []content.FeedPost) []FeedPostResponse {
	responses := make([]FeedPostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, ToFeedPostResponse(&posts[i]))
	}
	return responses
}
