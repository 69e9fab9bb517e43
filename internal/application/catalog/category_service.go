package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
	}

	if req.ParentID != nil {
		_, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
	}

	category, err := catalog.NewCategory(tenantID, req.Name, req.ParentID)
	if err != nil {
		return nil, err
	}

	if req.Slug != "" {
		if err := category.SetSlug(req.Slug); err != nil {
			return nil, err
		}
	}

	exists, err = s.categoryRepo.ExistsBySlug(ctx, tenantID, category.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
	}

	if req.ImageURL != "" {
		if err := category.Update(req.Name, req.ImageURL); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID returns a category by ID
func (s *CategoryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetBySlug returns a category by slug
func (s *CategoryService) GetBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, tenantID, slug)
	if err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// List returns categories for a tenant with pagination
func (s *CategoryService) List(ctx context.Context, tenantID uuid.UUID, filter CategoryListFilter) ([]CategoryResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	filters := make(map[string]interface{})
	if filter.IsActive != nil {
		filters["is_active"] = *filter.IsActive
	}

	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  filters,
	}

	categories, err := s.categoryRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.categoryRepo.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}

	return ToCategoryResponses(categories), total, nil
}

// Roots returns the root categories of a tenant
func (s *CategoryService) Roots(ctx context.Context, tenantID uuid.UUID) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindRoots(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

// Children returns the direct children of a category
func (s *CategoryService) Children(ctx context.Context, tenantID, parentID uuid.UUID) ([]CategoryResponse, error) {
	_, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, parentID)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.FindChildren(ctx, tenantID, parentID)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

// Tree returns root categories each with their direct children
func (s *CategoryService) Tree(ctx context.Context, tenantID uuid.UUID) ([]CategoryTreeResponse, error) {
	roots, err := s.categoryRepo.FindRoots(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	tree := make([]CategoryTreeResponse, 0, len(roots))
	for i := range roots {
		children, err := s.categoryRepo.FindChildren(ctx, tenantID, roots[i].ID)
		if err != nil {
			return nil, err
		}
		tree = append(tree, CategoryTreeResponse{
			CategoryResponse: ToCategoryResponse(&roots[i]),
			Children:         ToCategoryResponses(children),
		})
	}

	return tree, nil
}

// Update updates a category's information
func (s *CategoryService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		exists, err := s.categoryRepo.ExistsByName(ctx, tenantID, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
		}
	}

	if req.Name != nil || req.ImageURL != nil {
		name := category.Name
		imageURL := category.ImageURL
		if req.Name != nil {
			name = *req.Name
		}
		if req.ImageURL != nil {
			imageURL = *req.ImageURL
		}
		if err := category.Update(name, imageURL); err != nil {
			return nil, err
		}
	}

	if req.Slug != nil && *req.Slug != category.Slug {
		exists, err := s.categoryRepo.ExistsBySlug(ctx, tenantID, *req.Slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
		}
		if err := category.SetSlug(*req.Slug); err != nil {
			return nil, err
		}
	}

	if req.IsActive != nil {
		if *req.IsActive {
			category.Activate()
		} else {
			category.Deactivate()
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete deletes a category. Categories with child categories cannot be
// deleted; products referencing the category are detached by the database.
func (s *CategoryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	children, err := s.categoryRepo.CountChildren(ctx, tenantID, category.ID)
	if err != nil {
		return err
	}
	if children > 0 {
		return shared.ErrCategoryHasChildren
	}

	return s.categoryRepo.Delete(ctx, category.ID)
}
