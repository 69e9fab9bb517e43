package content

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/content"
	"github.com/storefront/backend/internal/domain/shared"
)

// coverUploadURLExpiration is how long a presigned cover upload URL stays valid
const coverUploadURLExpiration = 15 * time.Minute

// ObjectStorage is the subset of blob storage operations the blog needs for
// cover images. Satisfied by the storage factory's implementations.
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
	PublicURL(storageKey string) string
}

// BlogService handles blog post management and public reads
type BlogService struct {
	blogRepo content.BlogPostRepository
	storage  ObjectStorage
}

// NewBlogService creates a new BlogService
func NewBlogService(blogRepo content.BlogPostRepository, storage ObjectStorage) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
		storage:  storage,
	}
}

// Create creates a new draft post authored by the given user
func (s *BlogService) Create(ctx context.Context, tenantID, authorID uuid.UUID, req CreateBlogPostRequest) (*BlogPostResponse, error) {
	post, err := content.NewBlogPost(tenantID, authorID, req.Title, req.Body)
	if err != nil {
		return nil, err
	}
	if req.Excerpt != "" {
		if err := post.Update(req.Title, req.Body, req.Excerpt); err != nil {
			return nil, err
		}
	}

	exists, err := s.blogRepo.ExistsBySlug(ctx, tenantID, post.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("A post with slug '%s' already exists", post.Slug))
	}

	if err := s.blogRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	response := ToBlogPostResponse(post)
	return &response, nil
}

// GetByID returns a post regardless of status (admin operation)
func (s *BlogService) GetByID(ctx context.Context, tenantID, postID uuid.UUID) (*BlogPostResponse, error) {
	post, err := s.blogRepo.FindByIDForTenant(ctx, tenantID, postID)
	if err != nil {
		return nil, err
	}

	response := ToBlogPostResponse(post)
	return &response, nil
}

// List returns posts of the tenant with pagination (admin operation)
func (s *BlogService) List(ctx context.Context, tenantID uuid.UUID, filter BlogListFilter) (*BlogPostListResponse, error) {
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

	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  filters,
	}

	posts, err := s.blogRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.blogRepo.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}

	return &BlogPostListResponse{
		Posts:    ToBlogPostResponses(posts),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Update updates a post's content. Drafts get a fresh slug from the title;
// published posts keep theirs.
func (s *BlogService) Update(ctx context.Context, tenantID, postID uuid.UUID, req UpdateBlogPostRequest) (*BlogPostResponse, error) {
	post, err := s.blogRepo.FindByIDForTenant(ctx, tenantID, postID)
	if err != nil {
		return nil, err
	}

	oldSlug := post.Slug
	if err := post.Update(req.Title, req.Body, req.Excerpt); err != nil {
		return nil, err
	}

	if post.Slug != oldSlug {
		exists, err := s.blogRepo.ExistsBySlug(ctx, tenantID, post.Slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("A post with slug '%s' already exists", post.Slug))
		}
	}

	if err := s.blogRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	response := ToBlogPostResponse(post)
	return &response, nil
}

// Publish makes a post publicly visible
func (s *BlogService) Publish(ctx context.Context, tenantID, postID uuid.UUID) (*BlogPostResponse, error) {
	return s.changeStatus(ctx, tenantID, postID, func(p *content.BlogPost) error {
		return p.Publish()
	})
}

// Archive removes a post from the public site without deleting it
func (s *BlogService) Archive(ctx context.Context, tenantID, postID uuid.UUID) (*BlogPostResponse, error) {
	return s.changeStatus(ctx, tenantID, postID, func(p *content.BlogPost) error {
		return p.Archive()
	})
}

// Delete removes a post permanently
func (s *BlogService) Delete(ctx context.Context, tenantID, postID uuid.UUID) error {
	post, err := s.blogRepo.FindByIDForTenant(ctx, tenantID, postID)
	if err != nil {
		return err
	}
	return s.blogRepo.Delete(ctx, post.ID)
}

// GenerateCoverUploadURL returns a presigned URL to upload a cover image
func (s *BlogService) GenerateCoverUploadURL(ctx context.Context, tenantID, postID uuid.UUID, req CoverUploadURLRequest) (*CoverUploadURLResponse, error) {
	post, err := s.blogRepo.FindByIDForTenant(ctx, tenantID, postID)
	if err != nil {
		return nil, err
	}

	ext := path.Ext(req.FileName)
	storageKey := fmt.Sprintf("blog/%s/%s/%s%s", tenantID, post.ID, uuid.New(), ext)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, coverUploadURLExpiration)
	if err != nil {
		return nil, err
	}

	return &CoverUploadURLResponse{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		PublicURL:  s.storage.PublicURL(storageKey),
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmCoverUpload records an uploaded image as the post's cover
func (s *BlogService) ConfirmCoverUpload(ctx context.Context, tenantID, postID uuid.UUID, storageKey string) (*BlogPostResponse, error) {
	post, err := s.blogRepo.FindByIDForTenant(ctx, tenantID, postID)
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

	if err := post.SetCoverURL(s.storage.PublicURL(storageKey)); err != nil {
		return nil, err
	}
	if err := s.blogRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	response := ToBlogPostResponse(post)
	return &response, nil
}

// GetPublishedBySlug returns a published post for the public site. Reading
// bumps the view counter; a failed bump never fails the read.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*BlogPostResponse, error) {
	post, err := s.blogRepo.FindBySlug(ctx, tenantID, slug)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		return nil, shared.ErrNotFound
	}

	_ = s.blogRepo.IncrementViewCount(ctx, post.ID)
	post.ViewCount++

	response := ToBlogPostResponse(post)
	return &response, nil
}

// ListPublished returns published posts for the public site, newest first
func (s *BlogService) ListPublished(ctx context.Context, tenantID uuid.UUID, filter PublicListFilter) (*BlogPostListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}

	posts, err := s.blogRepo.FindPublished(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.blogRepo.CountPublished(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}

	return &BlogPostListResponse{
		Posts:    ToBlogPostResponses(posts),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// changeStatus loads a post, applies a status transition, and persists it
func (s *BlogService) changeStatus(ctx context.Context, tenantID, postID uuid.UUID, transition func(*content.BlogPost) error) (*BlogPostResponse, error) {
	post, err := s.blogRepo.FindByIDForTenant(ctx, tenantID, postID)
	if err != nil {
		return nil, err
	}

	if err := transition(post); err != nil {
		return nil, err
	}
	if err := s.blogRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	response := ToBlogPostResponse(post)
	return &response, nil
}
