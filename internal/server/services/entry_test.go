package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/server/config"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/repomanager"
)

func strptr(s string) *string { return &s }

func newEntryTestServices(t *testing.T) (*EntryService, *models.Vault) {
	t.Helper()

	m := repomanager.NewInMemoryRepositoryManager()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.MasterKey = testMasterKey

	org, err := NewOrgService(nil, m).Create(context.Background(), "acme")
	require.NoError(t, err)
	vault, err := NewVaultService(nil, m, cfg).Create(context.Background(), org.ID, "production")
	require.NoError(t, err)

	return NewEntryService(nil, m, cfg), vault
}

func TestEntryServiceCreateSealsFields(t *testing.T) {
	s, vault := newEntryTestServices(t)

	entry, err := s.Create(context.Background(), vault.ID, &EntryFields{
		Label:    "db password",
		Username: strptr("app"),
		Password: strptr("s3cr3t"),
	})
	require.NoError(t, err)

	assert.Equal(t, "db password", entry.Label)
	assert.Equal(t, models.EntryStatusActive, entry.Status)

	// Stored fields are envelope ciphertext, never the plaintext.
	require.True(t, entry.CipherUsername.Valid)
	assert.NotContains(t, entry.CipherUsername.String, "app")
	assert.True(t, strings.HasPrefix(entry.CipherUsername.String, "xc20p:"))
	require.True(t, entry.CipherPassword.Valid)
	assert.NotContains(t, entry.CipherPassword.String, "s3cr3t")

	// Absent fields stay absent.
	assert.False(t, entry.CipherNotes.Valid)
	assert.False(t, entry.CipherExtraNotes.Valid)
}

func TestEntryServiceGetOpensFields(t *testing.T) {
	s, vault := newEntryTestServices(t)

	entry, err := s.Create(context.Background(), vault.ID, &EntryFields{
		Label:    "db password",
		Username: strptr("app"),
		Password: strptr("s3cr3t"),
		Notes:    strptr("rotate monthly"),
	})
	require.NoError(t, err)

	secrets, err := s.Get(context.Background(), entry.ID)
	require.NoError(t, err)
	require.NotNil(t, secrets.Username)
	assert.Equal(t, "app", *secrets.Username)
	require.NotNil(t, secrets.Password)
	assert.Equal(t, "s3cr3t", *secrets.Password)
	require.NotNil(t, secrets.Notes)
	assert.Equal(t, "rotate monthly", *secrets.Notes)
	assert.Nil(t, secrets.ExtraNotes)
}

func TestEntryServiceListStaysSealed(t *testing.T) {
	s, vault := newEntryTestServices(t)

	_, err := s.Create(context.Background(), vault.ID, &EntryFields{Label: "b", Password: strptr("s3cr3t")})
	require.NoError(t, err)
	_, err = s.Create(context.Background(), vault.ID, &EntryFields{Label: "a"})
	require.NoError(t, err)

	entries, err := s.ListByVault(context.Background(), vault.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Label)
	for _, e := range entries {
		if e.CipherPassword.Valid {
			assert.NotContains(t, e.CipherPassword.String, "s3cr3t")
		}
	}
}

func TestEntryServiceUpdateReplacesWholesale(t *testing.T) {
	s, vault := newEntryTestServices(t)

	entry, err := s.Create(context.Background(), vault.ID, &EntryFields{
		Label:    "db password",
		Username: strptr("app"),
		Password: strptr("s3cr3t"),
	})
	require.NoError(t, err)

	// Omitting a field in an update clears it.
	updated, err := s.Update(context.Background(), entry.ID, &EntryFields{
		Label:    "db password v2",
		Password: strptr("n3w-s3cr3t"),
	})
	require.NoError(t, err)
	assert.Equal(t, "db password v2", updated.Label)
	assert.False(t, updated.CipherUsername.Valid)

	secrets, err := s.Get(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Nil(t, secrets.Username)
	require.NotNil(t, secrets.Password)
	assert.Equal(t, "n3w-s3cr3t", *secrets.Password)
}

func TestEntryServiceSetStatus(t *testing.T) {
	s, vault := newEntryTestServices(t)

	entry, err := s.Create(context.Background(), vault.ID, &EntryFields{Label: "db password"})
	require.NoError(t, err)

	require.NoError(t, s.SetStatus(context.Background(), entry.ID, models.EntryStatusArchived))
	got, err := s.GetRecord(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EntryStatusArchived, got.Status)

	assert.True(t, common.IsValidation(s.SetStatus(context.Background(), entry.ID, "gone")))
}

func TestEntryServiceCreateLimit(t *testing.T) {
	s, vault := newEntryTestServices(t)

	for i := 0; i < maxEntriesPerVault; i++ {
		_, err := s.Create(context.Background(), vault.ID, &EntryFields{Label: fmt.Sprintf("entry-%d", i)})
		require.NoError(t, err)
	}

	_, err := s.Create(context.Background(), vault.ID, &EntryFields{Label: "one-too-many"})
	assert.True(t, common.IsValidation(err))
}

func TestEntryServiceCreateValidation(t *testing.T) {
	s, vault := newEntryTestServices(t)

	_, err := s.Create(context.Background(), vault.ID, &EntryFields{Label: ""})
	assert.True(t, common.IsValidation(err))

	_, err = s.Create(context.Background(), "missing-vault", &EntryFields{Label: "x"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
