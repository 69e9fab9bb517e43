package content

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/content"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFeedPostRepository is a mock implementation of content.FeedPostRepository
type MockFeedPostRepository struct {
	mock.Mock
}

func (m *MockFeedPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.FeedPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.FeedPost), args.Error(1)
}

func (m *MockFeedPostRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*content.FeedPost, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.FeedPost), args.Error(1)
}

func (m *MockFeedPostRepository) FindByPlatformPostID(ctx context.Context, tenantID uuid.UUID, platform content.Platform, platformPostID string) (*content.FeedPost, error) {
	args := m.Called(ctx, tenantID, platform, platformPostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.FeedPost), args.Error(1)
}

func (m *MockFeedPostRepository) FindVisible(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]content.FeedPost, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]content.FeedPost), args.Error(1)
}

func (m *MockFeedPostRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]content.FeedPost, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]content.FeedPost), args.Error(1)
}

func (m *MockFeedPostRepository) Save(ctx context.Context, post *content.FeedPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockFeedPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFeedPostRepository) CountVisible(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeedPostRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeedPostRepository) ExistsByPlatformPostID(ctx context.Context, tenantID uuid.UUID, platform content.Platform, platformPostID string) (bool, error) {
	args := m.Called(ctx, tenantID, platform, platformPostID)
	return args.Bool(0), args.Error(1)
}

func mustNewFeedPost(t *testing.T, tenantID uuid.UUID, platformPostID string) *content.FeedPost {
	t.Helper()
	post, err := content.NewFeedPost(tenantID, content.PlatformInstagram, platformPostID, "caption", "https://cdn.example.com/m.jpg", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	return post
}

func TestFeedService_Ingest(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	postedAt := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	t.Run("stores a new platform post", func(t *testing.T) {
		feedRepo := new(MockFeedPostRepository)
		svc := NewFeedService(feedRepo)

		feedRepo.On("ExistsByPlatformPostID", ctx, tenantID, content.PlatformInstagram, "ig-123").Return(false, nil)
		feedRepo.On("Save", ctx, mock.AnythingOfType("*content.FeedPost")).Return(nil)

		resp, err := svc.Ingest(ctx, tenantID, IngestFeedPostRequest{
			Platform:       "instagram",
			PlatformPostID: "ig-123",
			Caption:        "New drop",
			MediaURL:       "https://cdn.example.com/m.jpg",
			Permalink:      "https://instagram.com/p/ig-123 ",
			PostedAt:       postedAt,
		})

		require.NoError(t, err)
		assert.Equal(t, "instagram", resp.Platform)
		assert.Equal(t, "https://instagram.com/p/ig-123", resp.Permalink)
		assert.True(t, resp.IsVisible)
	})

	t.Run("rejects a duplicate platform post", func(t *testing.T) {
		feedRepo := new(MockFeedPostRepository)
		svc := NewFeedService(feedRepo)

		feedRepo.On("ExistsByPlatformPostID", ctx, tenantID, content.PlatformInstagram, "ig-123").Return(true, nil)

		_, err := svc.Ingest(ctx, tenantID, IngestFeedPostRequest{
			Platform:       "instagram",
			PlatformPostID: "ig-123",
			MediaURL:       "https://cdn.example.com/m.jpg",
			PostedAt:       postedAt,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		feedRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unsupported platform", func(t *testing.T) {
		feedRepo := new(MockFeedPostRepository)
		svc := NewFeedService(feedRepo)

		feedRepo.On("ExistsByPlatformPostID", ctx, tenantID, content.Platform("myspace"), "ms-1").Return(false, nil)

		_, err := svc.Ingest(ctx, tenantID, IngestFeedPostRequest{
			Platform:       "myspace",
			PlatformPostID: "ms-1",
			MediaURL:       "https://cdn.example.com/m.jpg",
			PostedAt:       postedAt,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PLATFORM", domainErr.Code)
	})
}

func TestFeedService_Visibility(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	feedRepo := new(MockFeedPostRepository)
	svc := NewFeedService(feedRepo)
	post := mustNewFeedPost(t, tenantID, "ig-123")

	feedRepo.On("FindByIDForTenant", ctx, tenantID, post.ID).Return(post, nil)
	feedRepo.On("Save", ctx, post).Return(nil)

	resp, err := svc.Hide(ctx, tenantID, post.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsVisible)

	resp, err = svc.Show(ctx, tenantID, post.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsVisible)
}

func TestFeedService_ListVisible(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	feedRepo := new(MockFeedPostRepository)
	svc := NewFeedService(feedRepo)
	post := mustNewFeedPost(t, tenantID, "ig-123")

	expectedFilter := shared.Filter{
		Page:     1,
		PageSize: 20,
		Filters:  map[string]interface{}{"platform": "instagram"},
	}
	feedRepo.On("FindVisible", ctx, tenantID, expectedFilter).Return([]content.FeedPost{*post}, nil)
	feedRepo.On("CountVisible", ctx, tenantID, expectedFilter).Return(int64(1), nil)

	resp, err := svc.ListVisible(ctx, tenantID, FeedListFilter{Platform: "instagram"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "ig-123", resp.Posts[0].PlatformPostID)
}

func TestFeedService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	feedRepo := new(MockFeedPostRepository)
	svc := NewFeedService(feedRepo)
	post := mustNewFeedPost(t, tenantID, "ig-123")

	feedRepo.On("FindByIDForTenant", ctx, tenantID, post.ID).Return(post, nil)
	feedRepo.On("Delete", ctx, post.ID).Return(nil)

	require.NoError(t, svc.Delete(ctx, tenantID, post.ID))
	feedRepo.AssertExpectations(t)
}
