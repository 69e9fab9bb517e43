package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustNewCategory(t *testing.T, tenantID uuid.UUID, name string, parentID *uuid.UUID) *catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory(tenantID, name, parentID)
	require.NoError(t, err)
	return category
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates root category", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)

		repo.On("ExistsByName", ctx, tenantID, "Shirts").Return(false, nil)
		repo.On("ExistsBySlug", ctx, tenantID, "shirts").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateCategoryRequest{Name: "Shirts"})

		require.NoError(t, err)
		assert.Equal(t, "Shirts", resp.Name)
		assert.Equal(t, "shirts", resp.Slug)
		assert.Nil(t, resp.ParentID)
		assert.True(t, resp.IsActive)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)

		repo.On("ExistsByName", ctx, tenantID, "Shirts").Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CreateCategoryRequest{Name: "Shirts"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown parent", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)
		parentID := uuid.New()

		repo.On("ExistsByName", ctx, tenantID, "Shirts").Return(false, nil)
		repo.On("FindByIDForTenant", ctx, tenantID, parentID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, tenantID, CreateCategoryRequest{Name: "Shirts", ParentID: &parentID})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PARENT", domainErr.Code)
	})

	t.Run("custom slug overrides derived slug", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)

		repo.On("ExistsByName", ctx, tenantID, "Shirts").Return(false, nil)
		repo.On("ExistsBySlug", ctx, tenantID, "summer-shirts").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateCategoryRequest{Name: "Shirts", Slug: "summer-shirts"})

		require.NoError(t, err)
		assert.Equal(t, "summer-shirts", resp.Slug)
	})
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("renames and deactivates", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)
		category := mustNewCategory(t, tenantID, "Shirts", nil)
		name := "Tops"
		inactive := false

		repo.On("FindByIDForTenant", ctx, tenantID, category.ID).Return(category, nil)
		repo.On("ExistsByName", ctx, tenantID, "Tops").Return(false, nil)
		repo.On("Save", ctx, category).Return(nil)

		resp, err := svc.Update(ctx, tenantID, category.ID, UpdateCategoryRequest{
			Name:     &name,
			IsActive: &inactive,
		})

		require.NoError(t, err)
		assert.Equal(t, "Tops", resp.Name)
		assert.False(t, resp.IsActive)
	})

	t.Run("rejects name already taken", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)
		category := mustNewCategory(t, tenantID, "Shirts", nil)
		name := "Tops"

		repo.On("FindByIDForTenant", ctx, tenantID, category.ID).Return(category, nil)
		repo.On("ExistsByName", ctx, tenantID, "Tops").Return(true, nil)

		_, err := svc.Update(ctx, tenantID, category.ID, UpdateCategoryRequest{Name: &name})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("deletes leaf category", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)
		category := mustNewCategory(t, tenantID, "Shirts", nil)

		repo.On("FindByIDForTenant", ctx, tenantID, category.ID).Return(category, nil)
		repo.On("CountChildren", ctx, tenantID, category.ID).Return(int64(0), nil)
		repo.On("Delete", ctx, category.ID).Return(nil)

		err := svc.Delete(ctx, tenantID, category.ID)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects category with children", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)
		category := mustNewCategory(t, tenantID, "Shirts", nil)

		repo.On("FindByIDForTenant", ctx, tenantID, category.ID).Return(category, nil)
		repo.On("CountChildren", ctx, tenantID, category.ID).Return(int64(2), nil)

		err := svc.Delete(ctx, tenantID, category.ID)

		assert.ErrorIs(t, err, shared.ErrCategoryHasChildren)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_Tree(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo)

	root := mustNewCategory(t, tenantID, "Clothing", nil)
	child := mustNewCategory(t, tenantID, "Shirts", &root.ID)

	repo.On("FindRoots", ctx, tenantID).Return([]catalog.Category{*root}, nil)
	repo.On("FindChildren", ctx, tenantID, root.ID).Return([]catalog.Category{*child}, nil)

	tree, err := svc.Tree(ctx, tenantID)

	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "Clothing", tree[0].Name)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Shirts", tree[0].Children[0].Name)
}
