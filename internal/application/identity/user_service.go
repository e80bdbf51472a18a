package identity

import (
	"context"
	"errors"

	"github.com/ergolife/storefront/internal/domain/identity"
	"github.com/ergolife/storefront/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrCannotDeleteSelf prevents an administrator from removing their own account
var ErrCannotDeleteSelf = shared.NewDomainError("CANNOT_DELETE_SELF", "You cannot delete your own account")

// UserService handles administrator user management
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{userRepo: userRepo, logger: logger}
}

// List returns a page of users
func (s *UserService) List(ctx context.Context, query ListUsersQuery) (*shared.Paginated[UserResponse], error) {
	filter := query.Filter()
	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]UserResponse, len(users))
	for i, u := range users {
		items[i] = ToUserResponse(u)
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetByID returns a single user
func (s *UserService) GetByID(ctx context.Context, id uint) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Create creates an account with any role
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	role := identity.RoleUser
	if req.Role != "" {
		parsed, err := identity.ParseRole(req.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	user, err := identity.NewUserWithRole(req.Name, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}
	user.Avatar = req.Avatar
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created by admin", zap.Uint("user_id", user.ID), zap.String("role", string(role)))
	resp := ToUserResponse(user)
	return &resp, nil
}

// Update edits profile, role and optionally password
func (s *UserService) Update(ctx context.Context, id uint, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if identity.NormalizeEmail(req.Email) != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailTaken
		}
	}

	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(req.Name, req.Email, req.Avatar); err != nil {
		return nil, err
	}
	if err := user.SetRole(role); err != nil {
		return nil, err
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes an account. actorID is the administrator performing it.
func (s *UserService) Delete(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return ErrCannotDeleteSelf
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return err
	}
	s.logger.Info("User deleted by admin", zap.Uint("user_id", id), zap.Uint("actor_id", actorID))
	return nil
}

// Count returns the number of accounts
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}
