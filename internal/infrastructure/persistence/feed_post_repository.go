package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/content"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormFeedPostRepository implements content.FeedPostRepository using GORM
type GormFeedPostRepository struct {
	db *gorm.DB
}

// NewGormFeedPostRepository creates a new GormFeedPostRepository
func NewGormFeedPostRepository(db *gorm.DB) *GormFeedPostRepository {
	return &GormFeedPostRepository{db: db}
}

// FindByID finds a feed post by its ID
func (r *GormFeedPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.FeedPost, error) {
	var post content.FeedPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// FindByIDForTenant finds a feed post by ID within a tenant
func (r *GormFeedPostRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*content.FeedPost, error) {
	var post content.FeedPost
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// FindByPlatformPostID finds a post by its platform identity
func (r *GormFeedPostRepository) FindByPlatformPostID(ctx context.Context, tenantID uuid.UUID, platform content.Platform, platformPostID string) (*content.FeedPost, error) {
	var post content.FeedPost
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND platform = ? AND platform_post_id = ?",
			tenantID, platform, platformPostID).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// FindVisible finds visible posts, newest platform timestamp first
func (r *GormFeedPostRepository) FindVisible(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]content.FeedPost, error) {
	var posts []content.FeedPost
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&content.FeedPost{}).
			Where("tenant_id = ? AND is_visible = ?", tenantID, true),
		filter,
		"posted_at DESC",
	)
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindAllForTenant finds all feed posts for a tenant
func (r *GormFeedPostRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]content.FeedPost, error) {
	var posts []content.FeedPost
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&content.FeedPost{}).Where("tenant_id = ?", tenantID),
		filter,
		"posted_at DESC",
	)
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Save creates or updates a feed post
func (r *GormFeedPostRepository) Save(ctx context.Context, post *content.FeedPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete deletes a feed post
func (r *GormFeedPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&content.FeedPost{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountVisible counts visible posts for a tenant
func (r *GormFeedPostRepository) CountVisible(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&content.FeedPost{}).
			Where("tenant_id = ? AND is_visible = ?", tenantID, true),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForTenant counts all feed posts for a tenant
func (r *GormFeedPostRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&content.FeedPost{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByPlatformPostID checks if the platform post was already ingested
func (r *GormFeedPostRepository) ExistsByPlatformPostID(ctx context.Context, tenantID uuid.UUID, platform content.Platform, platformPostID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&content.FeedPost{}).
		Where("tenant_id = ? AND platform = ? AND platform_post_id = ?",
			tenantID, platform, platformPostID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormFeedPostRepository) applyFilter(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, FeedPostSortFields, "posted_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order(defaultOrder)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormFeedPostRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("caption ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "platform":
			query = query.Where("platform = ?", value)
		case "is_visible":
			query = query.Where("is_visible = ?", value)
		}
	}

	return query
}

// Ensure GormFeedPostRepository implements FeedPostRepository
var _ content.FeedPostRepository = (*GormFeedPostRepository)(nil)
