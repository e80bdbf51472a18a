package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with the USER role", func(t *testing.T) {
		user, err := NewUser("Nguyễn Văn A", "  User@Ergolife.com ", "secret1")

		require.NoError(t, err)
		assert.Equal(t, "Nguyễn Văn A", user.Name)
		assert.Equal(t, "user@ergolife.com", user.Email)
		assert.Equal(t, RoleUser, user.Role)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "secret1", user.PasswordHash)
		assert.True(t, user.VerifyPassword("secret1"))
		assert.False(t, user.VerifyPassword("secret2"))
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewUser("  ", "a@b.com", "secret1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Name cannot be empty")
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser("A", "not-an-email", "secret1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("A", "a@b.com", "12345")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 6 characters")
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUserWithRole("A", "a@b.com", "secret1", Role("ROOT"))
		assert.Error(t, err)
	})
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{" STAFF ", RoleStaff, false},
		{"User", RoleUser, false},
		{"guest", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUser_RoleChecks(t *testing.T) {
	user, err := NewUser("A", "a@b.com", "secret1")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin())
	assert.False(t, user.IsStaff())

	require.NoError(t, user.SetRole(RoleStaff))
	assert.False(t, user.IsAdmin())
	assert.True(t, user.IsStaff())

	require.NoError(t, user.SetRole(RoleAdmin))
	assert.True(t, user.IsAdmin())
	assert.True(t, user.IsStaff())

	assert.Error(t, user.SetRole(Role("nope")))
	assert.Equal(t, RoleAdmin, user.Role)
}

func TestUser_UpdateProfile(t *testing.T) {
	user, err := NewUser("A", "a@b.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, user.UpdateProfile("B", "B@C.com", "https://i.pravatar.cc/150?u=1"))
	assert.Equal(t, "B", user.Name)
	assert.Equal(t, "b@c.com", user.Email)
	assert.NotEmpty(t, user.Avatar)

	assert.Error(t, user.UpdateProfile("B", "bad", ""))
	assert.Equal(t, "b@c.com", user.Email)
}

func TestUser_SetPassword(t *testing.T) {
	user, err := NewUser("A", "a@b.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, user.SetPassword("another1"))
	assert.True(t, user.VerifyPassword("another1"))
	assert.False(t, user.VerifyPassword("secret1"))

	assert.Error(t, user.SetPassword("123"))
	assert.True(t, user.VerifyPassword("another1"))
}
