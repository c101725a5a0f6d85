package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/cryptox"
	"github.com/dmitrijs2005/orgvault/internal/server/config"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/repomanager"
)

// VaultService manages vaults. Every vault stores a test cipher: its own id
// encrypted under the master key at creation time. VerifyMasterKey decrypts
// it to prove the running server still holds the key the vault was sealed
// with, without touching any entry.
type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	masterKey   string
}

func NewVaultService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *VaultService {
	return &VaultService{db: db, repomanager: m, masterKey: cfg.MasterKey}
}

func validateVaultName(name string) error {
	if len(name) < 1 || len(name) > 50 {
		return common.NewValidationError("vault name must be 1-50 characters")
	}
	return nil
}

func (s *VaultService) Create(ctx context.Context, orgID, name string) (*models.Vault, error) {
	if err := validateVaultName(name); err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Orgs(s.db).Get(ctx, orgID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Vaults(s.db)

	count, err := repo.CountByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("error counting vaults: %w", err)
	}
	if count >= maxVaultsPerOrg {
		return nil, common.NewValidationError("vault limit reached for org (%d)", maxVaultsPerOrg)
	}

	id := common.GenerateID()
	testCipher, err := cryptox.Encrypt(s.masterKey, id)
	if err != nil {
		return nil, fmt.Errorf("error sealing test cipher: %w", err)
	}

	vault := &models.Vault{ID: id, OrgID: orgID, Name: name, TestCipher: testCipher}
	created, err := repo.Create(ctx, vault)
	if err != nil {
		return nil, fmt.Errorf("error creating vault: %w", err)
	}
	return created, nil
}

func (s *VaultService) Get(ctx context.Context, id string) (*models.Vault, error) {
	return s.repomanager.Vaults(s.db).Get(ctx, id)
}

func (s *VaultService) ListByOrg(ctx context.Context, orgID string) ([]*models.Vault, error) {
	return s.repomanager.Vaults(s.db).ListByOrg(ctx, orgID)
}

// VerifyMasterKey decrypts the vault's test cipher and checks it yields the
// vault id. A failure means the configured master key is not the one the
// vault's entries were sealed with.
func (s *VaultService) VerifyMasterKey(ctx context.Context, id string) error {
	vault, err := s.repomanager.Vaults(s.db).Get(ctx, id)
	if err != nil {
		return err
	}

	plain, err := cryptox.Decrypt(s.masterKey, vault.TestCipher)
	if err != nil {
		return fmt.Errorf("error opening test cipher: %w", err)
	}
	if plain != vault.ID {
		return fmt.Errorf("test cipher mismatch for vault %s", vault.ID)
	}
	return nil
}

func (s *VaultService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Vaults(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting vault: %w", err)
	}
	return nil
}
