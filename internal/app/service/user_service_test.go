package service

import (
	"testing"

	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.CreateUser("Admin", "secret123", "")
	require.NoError(t, err)

	assert.Contains(t, user.ID, "user-")
	assert.Equal(t, "admin", user.Username, "username is normalized to lowercase")
	assert.Equal(t, model.RoleAdmin, user.Role, "role defaults to admin")
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, util.VerifyPassword(user.PasswordHash, "secret123"))
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.CreateUser("", "secret123", model.RoleAdmin)
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = f.users.CreateUser("admin", "", model.RoleAdmin)
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestUserService_CreateUser_DuplicateUsername(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.CreateUser("admin", "secret123", model.RoleAdmin)
	require.NoError(t, err)

	// duplicate check is case-insensitive
	_, err = f.users.CreateUser("ADMIN", "other456", model.RoleStaff)
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestUserService_UpdateUserPassword(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.CreateUser("admin", "secret123", model.RoleAdmin)
	require.NoError(t, err)

	updated, err := f.users.UpdateUserPassword(user.ID, "newpass456")
	require.NoError(t, err)
	assert.True(t, util.VerifyPassword(updated.PasswordHash, "newpass456"))
	assert.False(t, util.VerifyPassword(updated.PasswordHash, "secret123"))

	_, err = f.users.UpdateUserPassword("user-missing", "x")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.users.UpdateUserPassword(user.ID, "")
	assert.ErrorIs(t, err, ErrPasswordRequired)
}
