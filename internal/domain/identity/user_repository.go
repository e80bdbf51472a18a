package identity

import (
	"context"

	"github.com/ergolife/storefront/internal/domain/shared"
)

// UserFilter narrows a user listing
type UserFilter struct {
	shared.Filter
	Role Role
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// Delete deletes a user by ID
	Delete(ctx context.Context, id uint) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll returns users matching the filter with the total count
	FindAll(ctx context.Context, filter UserFilter) ([]*User, int64, error)

	// ExistsByEmail checks if an email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByRole checks if at least one user holds the role
	ExistsByRole(ctx context.Context, role Role) (bool, error)

	// Count returns the total number of users
	Count(ctx context.Context) (int64, error)
}
