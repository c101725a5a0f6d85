package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/cryptox"
	"github.com/dmitrijs2005/orgvault/internal/logging"
	"github.com/dmitrijs2005/orgvault/internal/rbac"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
)

type fakeOrgRepo struct {
	orgs map[string]*models.Org
}

func (f *fakeOrgRepo) Create(ctx context.Context, org *models.Org) (*models.Org, error) {
	f.orgs[org.ID] = org
	return org, nil
}

func (f *fakeOrgRepo) Get(ctx context.Context, id string) (*models.Org, error) {
	org, ok := f.orgs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return org, nil
}

func (f *fakeOrgRepo) FindByName(ctx context.Context, name string) (*models.Org, error) {
	for _, org := range f.orgs {
		if org.Name == name {
			return org, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeOrgRepo) FindAdmin(ctx context.Context) (*models.Org, error) {
	for _, org := range f.orgs {
		if org.Admin {
			return org, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeOrgRepo) List(ctx context.Context) ([]*models.Org, error) {
	result := make([]*models.Org, 0, len(f.orgs))
	for _, org := range f.orgs {
		result = append(result, org)
	}
	return result, nil
}

func (f *fakeOrgRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.orgs)), nil
}

func (f *fakeOrgRepo) Delete(ctx context.Context, id string) error {
	delete(f.orgs, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Get(ctx context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUserRepo) ListByOrg(ctx context.Context, orgID string) ([]*models.User, error) {
	var result []*models.User
	for _, user := range f.users {
		if user.OrgID == orgID {
			result = append(result, user)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) CountByOrg(ctx context.Context, orgID string) (int64, error) {
	list, _ := f.ListByOrg(ctx, orgID)
	return int64(len(list)), nil
}

func (f *fakeUserRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	user, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	user.Status = status
	return nil
}

func (f *fakeUserRepo) UpdateRoles(ctx context.Context, id string, roles string) error {
	user, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	user.Roles = roles
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	user.Password = passwordHash
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestResolver(t *testing.T) (*Resolver, *fakeOrgRepo, *fakeUserRepo) {
	t.Helper()

	hash, err := cryptox.HashPassword("correct-horse")
	require.NoError(t, err)

	orgRepo := &fakeOrgRepo{orgs: map[string]*models.Org{
		"org-1": {ID: "org-1", Name: "acme"},
	}}
	userRepo := &fakeUserRepo{users: map[string]*models.User{
		"user-1": {
			ID:       "user-1",
			OrgID:    "org-1",
			Username: "alice",
			Password: hash,
			Status:   models.UserStatusActive,
			Roles:    "Editor",
		},
	}}

	return NewResolver(orgRepo, userRepo, testSecret, time.Hour, discardLogger()), orgRepo, userRepo
}

func TestAuthenticateSuccess(t *testing.T) {
	resolver, _, _ := newTestResolver(t)

	resp, err := resolver.Authenticate(context.Background(), &Credentials{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "user-1", resp.User.ID)
	require.NotEmpty(t, resp.Token)

	payload, err := VerifyAuthToken(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", payload.UserID)
	assert.Equal(t, "org-1", payload.OrgID)
	assert.Equal(t, ScopeAuthVault, payload.Scope)
}

func TestAuthenticateUnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	resolver, _, _ := newTestResolver(t)

	_, errUnknown := resolver.Authenticate(context.Background(), &Credentials{Username: "mallory", Password: "whatever-pass"})
	_, errWrong := resolver.Authenticate(context.Background(), &Credentials{Username: "alice", Password: "wrong-password"})

	assert.ErrorIs(t, errUnknown, common.ErrorInvalidPassword)
	assert.ErrorIs(t, errWrong, common.ErrorInvalidPassword)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestAuthenticateInactiveUser(t *testing.T) {
	resolver, _, userRepo := newTestResolver(t)
	userRepo.users["user-1"].Status = models.UserStatusInactive

	_, err := resolver.Authenticate(context.Background(), &Credentials{Username: "alice", Password: "correct-horse"})
	assert.ErrorIs(t, err, common.ErrorInactiveUser)
}

func TestAuthenticateMissingOrg(t *testing.T) {
	resolver, orgRepo, _ := newTestResolver(t)
	delete(orgRepo.orgs, "org-1")

	_, err := resolver.Authenticate(context.Background(), &Credentials{Username: "alice", Password: "correct-horse"})
	assert.ErrorIs(t, err, common.ErrorInvalidOrg)
}

func TestAuthenticateValidation(t *testing.T) {
	resolver, _, _ := newTestResolver(t)

	cases := []Credentials{
		{Username: "", Password: "correct-horse"},
		{Username: "this-username-is-far-too-long-really", Password: "correct-horse"},
		{Username: "alice", Password: "short"},
	}
	for _, c := range cases {
		_, err := resolver.Authenticate(context.Background(), &c)
		assert.True(t, common.IsValidation(err), "credentials %+v", c)
	}
}

func TestAuthenticateTokenSuccess(t *testing.T) {
	resolver, _, _ := newTestResolver(t)

	resp, err := resolver.Authenticate(context.Background(), &Credentials{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	actor, err := resolver.AuthenticateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", actor.UserID)
	assert.Equal(t, "org-1", actor.OrgID)
	assert.True(t, actor.HasAuthScope())
	assert.True(t, actor.HasVaultScope())
	assert.NotEmpty(t, actor.Permissions)
}

func TestAuthenticateTokenRoleChangeAppliesImmediately(t *testing.T) {
	resolver, _, userRepo := newTestResolver(t)

	resp, err := resolver.Authenticate(context.Background(), &Credentials{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, userRepo.UpdateRoles(context.Background(), "user-1", "Viewer"))

	actor, err := resolver.AuthenticateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, []rbac.Role{rbac.RoleViewer}, actor.Roles)
	assert.False(t, actor.HasPermissions([]rbac.Permission{rbac.PermEntriesCreate}))
	assert.True(t, actor.HasPermissions([]rbac.Permission{rbac.PermEntriesView}))
}

func TestAuthenticateTokenInvalid(t *testing.T) {
	resolver, _, _ := newTestResolver(t)

	_, err := resolver.AuthenticateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, common.ErrorInvalidAuthToken)
}

func TestAuthenticateTokenOrgMismatch(t *testing.T) {
	resolver, orgRepo, userRepo := newTestResolver(t)

	resp, err := resolver.Authenticate(context.Background(), &Credentials{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	// The user was moved to another org after the token was issued.
	orgRepo.orgs["org-2"] = &models.Org{ID: "org-2", Name: "globex"}
	userRepo.users["user-1"].OrgID = "org-2"

	_, err = resolver.AuthenticateToken(context.Background(), resp.Token)
	assert.ErrorIs(t, err, common.ErrorUserNotFound)
}

func TestAuthenticateTokenDeletedUser(t *testing.T) {
	resolver, _, userRepo := newTestResolver(t)

	resp, err := resolver.Authenticate(context.Background(), &Credentials{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, userRepo.Delete(context.Background(), "user-1"))

	_, err = resolver.AuthenticateToken(context.Background(), resp.Token)
	assert.ErrorIs(t, err, common.ErrorUserNotFound)
}
