package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/repomanager"
)

func TestOrgServiceCreate(t *testing.T) {
	s := NewOrgService(nil, repomanager.NewInMemoryRepositoryManager())

	org, err := s.Create(context.Background(), "acme")
	require.NoError(t, err)
	assert.NotEmpty(t, org.ID)
	assert.Equal(t, "acme", org.Name)
	assert.False(t, org.Admin)

	_, err = s.Create(context.Background(), "acme")
	assert.True(t, common.IsValidation(err), "duplicate name must be rejected")

	_, err = s.Create(context.Background(), "")
	assert.True(t, common.IsValidation(err))
}

func TestOrgServiceCreateLimit(t *testing.T) {
	s := NewOrgService(nil, repomanager.NewInMemoryRepositoryManager())

	for i := 0; i < maxOrgs; i++ {
		_, err := s.Create(context.Background(), fmt.Sprintf("org-%d", i))
		require.NoError(t, err)
	}

	_, err := s.Create(context.Background(), "one-too-many")
	assert.True(t, common.IsValidation(err))
}

func TestOrgServiceDeleteAdminOrgRefused(t *testing.T) {
	s := NewOrgService(nil, repomanager.NewInMemoryRepositoryManager())

	admin, created, err := s.EnsureAdminOrg(context.Background(), "system-admin")
	require.NoError(t, err)
	require.True(t, created)

	err = s.Delete(context.Background(), admin.ID)
	assert.ErrorIs(t, err, common.ErrorForbidden)

	org, err := s.Create(context.Background(), "acme")
	require.NoError(t, err)
	require.NoError(t, s.Delete(context.Background(), org.ID))

	_, err = s.Get(context.Background(), org.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestOrgServiceEnsureAdminOrgIdempotent(t *testing.T) {
	s := NewOrgService(nil, repomanager.NewInMemoryRepositoryManager())

	first, created, err := s.EnsureAdminOrg(context.Background(), "system-admin")
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, first.Admin)

	second, created, err := s.EnsureAdminOrg(context.Background(), "system-admin")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	orgs, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, orgs, 1)
}
