package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// UserService handles profile reads and admin user management
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns the current user's profile
func (s *UserService) GetProfile(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// UpdateProfile updates the current user's profile
func (s *UserService) UpdateProfile(ctx context.Context, tenantID, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List returns users of the tenant with pagination (admin operation)
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter UserListFilter) ([]UserResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	filters := make(map[string]interface{})
	if filter.Role != "" {
		filters["role"] = filter.Role
	}
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

	users, err := s.userRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}

	return ToUserResponses(users), total, nil
}

// GetByID returns any user of the tenant (admin operation)
func (s *UserService) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	return s.GetProfile(ctx, tenantID, userID)
}

// Activate re-enables a deactivated account (admin operation)
func (s *UserService) Activate(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	return s.changeStatus(ctx, tenantID, userID, func(u *identity.User) error {
		return u.Activate()
	})
}

// Deactivate disables an account (admin operation)
func (s *UserService) Deactivate(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	return s.changeStatus(ctx, tenantID, userID, func(u *identity.User) error {
		return u.Deactivate()
	})
}

func (s *UserService) changeStatus(ctx context.Context, tenantID, userID uuid.UUID, transition func(*identity.User) error) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if err := transition(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}
