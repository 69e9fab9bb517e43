package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/content"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBlogPostRepository implements content.BlogPostRepository using GORM
type GormBlogPostRepository struct {
	db *gorm.DB
}

// NewGormBlogPostRepository creates a new GormBlogPostRepository
func NewGormBlogPostRepository(db *gorm.DB) *GormBlogPostRepository {
	return &GormBlogPostRepository{db: db}
}

// FindByID finds a post by its ID
func (r *GormBlogPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.BlogPost, error) {
	var post content.BlogPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// FindByIDForTenant finds a post by ID within a tenant
func (r *GormBlogPostRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*content.BlogPost, error) {
	var post content.BlogPost
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

// FindBySlug finds a post by its slug within a tenant
func (r *GormBlogPostRepository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*content.BlogPost, error) {
	var post content.BlogPost
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// FindAllForTenant finds all posts for a tenant
func (r *GormBlogPostRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]content.BlogPost, error) {
	var posts []content.BlogPost
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&content.BlogPost{}).Where("tenant_id = ?", tenantID),
		filter,
		"created_at DESC",
	)
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindPublished finds published posts, newest publication first
func (r *GormBlogPostRepository) FindPublished(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]content.BlogPost, error) {
	var posts []content.BlogPost
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&content.BlogPost{}).
			Where("tenant_id = ? AND status = ?", tenantID, content.BlogPostStatusPublished),
		filter,
		"published_at DESC",
	)
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Save creates or updates a post
func (r *GormBlogPostRepository) Save(ctx context.Context, post *content.BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete deletes a post
func (r *GormBlogPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&content.BlogPost{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts posts for a tenant
func (r *GormBlogPostRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&content.BlogPost{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountPublished counts published posts for a tenant
func (r *GormBlogPostRepository) CountPublished(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&content.BlogPost{}).
			Where("tenant_id = ? AND status = ?", tenantID, content.BlogPostStatusPublished),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySlug checks if a post with the given slug exists in the tenant
func (r *GormBlogPostRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&content.BlogPost{}).
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementViewCount bumps the view counter without touching the version
func (r *GormBlogPostRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&content.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// applyFilter applies filter options to the query
func (r *GormBlogPostRepository) applyFilter(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, BlogPostSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order(defaultOrder)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBlogPostRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "author_id":
			query = query.Where("author_id = ?", value)
		}
	}

	return query
}

// Ensure GormBlogPostRepository implements BlogPostRepository
var _ content.BlogPostRepository = (*GormBlogPostRepository)(nil)
