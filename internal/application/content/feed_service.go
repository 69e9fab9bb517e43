package content

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/content"
	"github.com/storefront/backend/internal/domain/shared"
)

// FeedService handles the social feed mirrored on the storefront
type FeedService struct {
	feedRepo content.FeedPostRepository
}

// NewFeedService creates a new FeedService
func NewFeedService(feedRepo content.FeedPostRepository) *FeedService {
	return &FeedService{feedRepo: feedRepo}
}

// Ingest stores a platform post. Re-ingesting the same platform post is
// rejected; use UpdateCaption flows instead.
func (s *FeedService) Ingest(ctx context.Context, tenantID uuid.UUID, req IngestFeedPostRequest) (*FeedPostResponse, error) {
	platform := content.Platform(req.Platform)

	exists, err := s.feedRepo.ExistsByPlatformPostID(ctx, tenantID, platform, strings.TrimSpace(req.PlatformPostID))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "This platform post has already been ingested")
	}

	post, err := content.NewFeedPost(tenantID, platform, req.PlatformPostID, req.Caption, req.MediaURL, req.PostedAt)
	if err != nil {
		return nil, err
	}
	post.Permalink = strings.TrimSpace(req.Permalink)

	if err := s.feedRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	response := ToFeedPostResponse(post)
	return &response, nil
}

// Show makes a post visible on the public feed (admin operation)
func (s *FeedService) Show(ctx context.Context, tenantID, postID uuid.UUID) (*FeedPostResponse, error) {
	return s.changeVisibility(ctx, tenantID, postID, (*content.FeedPost).Show)
}

// Hide removes a post from the public feed (admin operation)
func (s *FeedService) Hide(ctx context.Context, tenantID, postID uuid.UUID) (*FeedPostResponse, error) {
	return s.changeVisibility(ctx, tenantID, postID, (*content.FeedPost).Hide)
}

// Delete removes a feed post permanently (admin operation)
func (s *FeedService) Delete(ctx context.Context, tenantID, postID uuid.UUID) error {
	post, err := s.feedRepo.FindByIDForTenant(ctx, tenantID, postID)
	if err != nil {
		return err
	}
	return s.feedRepo.Delete(ctx, post.ID)
}

// List returns all feed posts of the tenant with pagination (admin operation)
func (s *FeedService) List(ctx context.Context, tenantID uuid.UUID, filter FeedListFilter) (*FeedListResponse, error) {
	f := s.buildFilter(&filter)

	posts, err := s.feedRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.feedRepo.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}

	return &FeedListResponse{
		Posts:    ToFeedPostResponses(posts),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// ListVisible returns visible feed posts for the public site, newest first
func (s *FeedService) ListVisible(ctx context.Context, tenantID uuid.UUID, filter FeedListFilter) (*FeedListResponse, error) {
	f := s.buildFilter(&filter)

	posts, err := s.feedRepo.FindVisible(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.feedRepo.CountVisible(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}

	return &FeedListResponse{
		Posts:    ToFeedPostResponses(posts),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *FeedService) changeVisibility(ctx context.Context, tenantID, postID uuid.UUID, transition func(*content.FeedPost)) (*FeedPostResponse, error) {
	post, err := s.feedRepo.FindByIDForTenant(ctx, tenantID, postID)
	if err != nil {
		return nil, err
	}

	transition(post)
	if err := s.feedRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	response := ToFeedPostResponse(post)
	return &response, nil
}

func (s *FeedService) buildFilter(filter *FeedListFilter) shared.Filter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	filters := make(map[string]interface{})
	if filter.Platform != "" {
		filters["platform"] = filter.Platform
	}

	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  filters,
	}
}
