package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/cryptox"
	"github.com/dmitrijs2005/orgvault/internal/rbac"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/repomanager"
)

func newUserTestServices(t *testing.T) (*OrgService, *UserService, *models.Org) {
	t.Helper()

	m := repomanager.NewInMemoryRepositoryManager()
	orgService := NewOrgService(nil, m)
	userService := NewUserService(nil, m)

	org, err := orgService.Create(context.Background(), "acme")
	require.NoError(t, err)

	return orgService, userService, org
}

func TestUserServiceCreate(t *testing.T) {
	_, s, org := newUserTestServices(t)

	user, err := s.Create(context.Background(), org.ID, "alice", "correct-horse", []rbac.Role{rbac.RoleEditor})
	require.NoError(t, err)
	assert.Equal(t, org.ID, user.OrgID)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.Equal(t, "Editor", user.Roles)

	// The stored password is a hash that verifies, never the plaintext.
	assert.NotEqual(t, "correct-horse", user.Password)
	assert.NoError(t, cryptox.VerifyPassword("correct-horse", user.Password))
}

func TestUserServiceCreateValidation(t *testing.T) {
	_, s, org := newUserTestServices(t)

	cases := []struct {
		name     string
		username string
		password string
		roles    []rbac.Role
	}{
		{"empty username", "", "correct-horse", []rbac.Role{rbac.RoleViewer}},
		{"short password", "alice", "short", []rbac.Role{rbac.RoleViewer}},
		{"no roles", "alice", "correct-horse", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), org.ID, tc.username, tc.password, tc.roles)
			assert.True(t, common.IsValidation(err))
		})
	}

	_, err := s.Create(context.Background(), "missing-org", "alice", "correct-horse", []rbac.Role{rbac.RoleViewer})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUserServiceCreateDuplicateUsername(t *testing.T) {
	_, s, org := newUserTestServices(t)

	_, err := s.Create(context.Background(), org.ID, "alice", "correct-horse", []rbac.Role{rbac.RoleViewer})
	require.NoError(t, err)

	_, err = s.Create(context.Background(), org.ID, "alice", "another-pass", []rbac.Role{rbac.RoleViewer})
	assert.True(t, common.IsValidation(err))
}

func TestUserServiceCreateLimit(t *testing.T) {
	_, s, org := newUserTestServices(t)

	for i := 0; i < maxUsersPerOrg; i++ {
		_, err := s.Create(context.Background(), org.ID, fmt.Sprintf("user-%d", i), "correct-horse", []rbac.Role{rbac.RoleViewer})
		require.NoError(t, err)
	}

	_, err := s.Create(context.Background(), org.ID, "one-too-many", "correct-horse", []rbac.Role{rbac.RoleViewer})
	assert.True(t, common.IsValidation(err))
}

func TestUserServiceUpdateStatusAndRoles(t *testing.T) {
	_, s, org := newUserTestServices(t)

	user, err := s.Create(context.Background(), org.ID, "alice", "correct-horse", []rbac.Role{rbac.RoleViewer})
	require.NoError(t, err)

	require.NoError(t, s.UpdateStatus(context.Background(), user.ID, models.UserStatusInactive))
	got, err := s.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive())

	assert.True(t, common.IsValidation(s.UpdateStatus(context.Background(), user.ID, "frozen")))

	require.NoError(t, s.UpdateRoles(context.Background(), user.ID, []rbac.Role{rbac.RoleAdmin, rbac.RoleViewer}))
	got, err = s.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Admin,Viewer", got.Roles)

	assert.True(t, common.IsValidation(s.UpdateRoles(context.Background(), user.ID, nil)))
}

func TestUserServiceChangePassword(t *testing.T) {
	_, s, org := newUserTestServices(t)

	user, err := s.Create(context.Background(), org.ID, "alice", "correct-horse", []rbac.Role{rbac.RoleViewer})
	require.NoError(t, err)

	err = s.ChangePassword(context.Background(), user.ID, "wrong-password", "brand-new-pass")
	assert.True(t, common.IsValidation(err))

	require.NoError(t, s.ChangePassword(context.Background(), user.ID, "correct-horse", "brand-new-pass"))

	got, err := s.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NoError(t, cryptox.VerifyPassword("brand-new-pass", got.Password))
}

func TestUserServiceSetPassword(t *testing.T) {
	_, s, org := newUserTestServices(t)

	user, err := s.Create(context.Background(), org.ID, "alice", "correct-horse", []rbac.Role{rbac.RoleViewer})
	require.NoError(t, err)

	require.NoError(t, s.SetPassword(context.Background(), user.ID, "admin-reset-pass"))

	got, err := s.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NoError(t, cryptox.VerifyPassword("admin-reset-pass", got.Password))

	assert.True(t, common.IsValidation(s.SetPassword(context.Background(), user.ID, "short")))
}
