package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)
	user := newTestUser(t, tenantID, "jane@example.com", "s3cret-pass")

	userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	name := "Jane Q. Doe"
	resp, err := svc.UpdateProfile(ctx, tenantID, user.ID, UpdateProfileRequest{DisplayName: &name})

	require.NoError(t, err)
	assert.Equal(t, "Jane Q. Doe", resp.DisplayName)
	userRepo.AssertExpectations(t)
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)
	user := newTestUser(t, tenantID, "jane@example.com", "s3cret-pass")

	expectedFilter := shared.Filter{
		Page:     1,
		PageSize: 20,
		Filters:  map[string]interface{}{"status": "active"},
	}

	userRepo.On("FindAllForTenant", ctx, tenantID, expectedFilter).Return([]identity.User{*user}, nil)
	userRepo.On("CountForTenant", ctx, tenantID, expectedFilter).Return(int64(1), nil)

	users, total, err := svc.List(ctx, tenantID, UserListFilter{Status: "active"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "jane@example.com", users[0].Email)
}

func TestUserService_StatusTransitions(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("deactivate then activate", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)
		user := newTestUser(t, tenantID, "jane@example.com", "s3cret-pass")

		userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		resp, err := svc.Deactivate(ctx, tenantID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "deactivated", resp.Status)

		resp, err = svc.Activate(ctx, tenantID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("activating an active account fails", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)
		user := newTestUser(t, tenantID, "jane@example.com", "s3cret-pass")

		userRepo.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)

		_, err := svc.Activate(ctx, tenantID, user.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_ACTIVE", domainErr.Code)
	})
}
