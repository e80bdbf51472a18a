package identity

import (
	"context"
	"testing"

	"github.com/ergolife/storefront/internal/domain/identity"
	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := NewUserService(repo, nil)

	users := []*identity.User{
		createTestUser(2, "staff@ergolife.com", "demo123", identity.RoleStaff),
	}
	repo.On("FindAll", ctx, mock.MatchedBy(func(f identity.UserFilter) bool {
		return f.Role == identity.RoleStaff && f.Page == 1 && f.PageSize == 20
	})).Return(users, int64(1), nil)

	page, err := svc.List(ctx, ListUsersQuery{Role: "STAFF"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "staff@ergolife.com", page.Items[0].Email)
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := NewUserService(repo, nil)

	repo.On("ExistsByEmail", ctx, "staff2@ergolife.com").Return(false, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	resp, err := svc.Create(ctx, CreateUserRequest{
		Name: "Staff Two", Email: "staff2@ergolife.com", Password: "secret1", Role: "STAFF",
	})
	require.NoError(t, err)
	assert.Equal(t, "STAFF", resp.Role)

	t.Run("defaults to USER", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, nil)
		repo.On("ExistsByEmail", ctx, "plain@ergolife.com").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := svc.Create(ctx, CreateUserRequest{Name: "Plain", Email: "plain@ergolife.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "USER", resp.Role)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("changes role and keeps password when empty", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, nil)
		user := createTestUser(4, "user@ergolife.com", "demo123", identity.RoleUser)
		oldHash := user.PasswordHash

		repo.On("FindByID", ctx, uint(4)).Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		resp, err := svc.Update(ctx, 4, UpdateUserRequest{Name: "Renamed", Email: "USER@ergolife.com", Role: "STAFF"})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", resp.Name)
		assert.Equal(t, "STAFF", resp.Role)
		assert.Equal(t, oldHash, user.PasswordHash)
		repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("email taken by someone else", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, nil)
		repo.On("FindByID", ctx, uint(4)).Return(createTestUser(4, "user@ergolife.com", "demo123", identity.RoleUser), nil)
		repo.On("ExistsByEmail", ctx, "staff@ergolife.com").Return(true, nil)

		_, err := svc.Update(ctx, 4, UpdateUserRequest{Name: "X", Email: "staff@ergolife.com", Role: "USER"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := NewUserService(repo, nil)

	assert.ErrorIs(t, svc.Delete(ctx, 3, 3), ErrCannotDeleteSelf)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	repo.On("Delete", ctx, uint(5)).Return(nil)
	repo.On("Delete", ctx, uint(6)).Return(shared.ErrNotFound)

	assert.NoError(t, svc.Delete(ctx, 3, 5))
	err := svc.Delete(ctx, 3, 6)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "USER_NOT_FOUND", domainErr.Code)
}
