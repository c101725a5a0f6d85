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

// EntryFields carries the plaintext secret fields of an entry as supplied by
// a client. A nil pointer means the field is absent and stays absent.
type EntryFields struct {
	Label      string
	Username   *string
	Password   *string
	Notes      *string
	ExtraNotes *string
}

// EntrySecrets is a single entry with its cipher fields opened. Only the
// single-entry read path produces it; listings stay ciphertext-only.
type EntrySecrets struct {
	Entry      *models.Entry
	Username   *string
	Password   *string
	Notes      *string
	ExtraNotes *string
}

// EntryService manages stored secrets. Plaintext exists only inside requests:
// fields are sealed under the master key before hitting the repository and
// opened only on a single-entry read.
type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	masterKey   string
}

func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *EntryService {
	return &EntryService{db: db, repomanager: m, masterKey: cfg.MasterKey}
}

func validateEntryLabel(label string) error {
	if len(label) < 1 || len(label) > 100 {
		return common.NewValidationError("entry label must be 1-100 characters")
	}
	return nil
}

// sealField encrypts an optional plaintext field into its stored form.
func (s *EntryService) sealField(plain *string) (sql.NullString, error) {
	if plain == nil {
		return sql.NullString{}, nil
	}
	cipher, err := cryptox.Encrypt(s.masterKey, *plain)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: cipher, Valid: true}, nil
}

// openField decrypts an optional stored field back to plaintext.
func (s *EntryService) openField(stored sql.NullString) (*string, error) {
	if !stored.Valid {
		return nil, nil
	}
	plain, err := cryptox.Decrypt(s.masterKey, stored.String)
	if err != nil {
		return nil, err
	}
	return &plain, nil
}

func (s *EntryService) sealFields(entry *models.Entry, fields *EntryFields) error {
	var err error
	if entry.CipherUsername, err = s.sealField(fields.Username); err != nil {
		return fmt.Errorf("error sealing username: %w", err)
	}
	if entry.CipherPassword, err = s.sealField(fields.Password); err != nil {
		return fmt.Errorf("error sealing password: %w", err)
	}
	if entry.CipherNotes, err = s.sealField(fields.Notes); err != nil {
		return fmt.Errorf("error sealing notes: %w", err)
	}
	if entry.CipherExtraNotes, err = s.sealField(fields.ExtraNotes); err != nil {
		return fmt.Errorf("error sealing extra notes: %w", err)
	}
	return nil
}

func (s *EntryService) Create(ctx context.Context, vaultID string, fields *EntryFields) (*models.Entry, error) {
	if err := validateEntryLabel(fields.Label); err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Vaults(s.db).Get(ctx, vaultID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Entries(s.db)

	count, err := repo.CountByVault(ctx, vaultID)
	if err != nil {
		return nil, fmt.Errorf("error counting entries: %w", err)
	}
	if count >= maxEntriesPerVault {
		return nil, common.NewValidationError("entry limit reached for vault (%d)", maxEntriesPerVault)
	}

	entry := &models.Entry{
		ID:      common.GenerateID(),
		VaultID: vaultID,
		Label:   fields.Label,
		Status:  models.EntryStatusActive,
	}
	if err := s.sealFields(entry, fields); err != nil {
		return nil, err
	}

	created, err := repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}
	return created, nil
}

// GetRecord returns the stored entry without opening any cipher field. The
// authorization middleware uses it to resolve the entry's vault.
func (s *EntryService) GetRecord(ctx context.Context, id string) (*models.Entry, error) {
	return s.repomanager.Entries(s.db).Get(ctx, id)
}

// Get returns a single entry with every present cipher field opened.
func (s *EntryService) Get(ctx context.Context, id string) (*EntrySecrets, error) {
	entry, err := s.repomanager.Entries(s.db).Get(ctx, id)
	if err != nil {
		return nil, err
	}

	secrets := &EntrySecrets{Entry: entry}
	if secrets.Username, err = s.openField(entry.CipherUsername); err != nil {
		return nil, fmt.Errorf("error opening username: %w", err)
	}
	if secrets.Password, err = s.openField(entry.CipherPassword); err != nil {
		return nil, fmt.Errorf("error opening password: %w", err)
	}
	if secrets.Notes, err = s.openField(entry.CipherNotes); err != nil {
		return nil, fmt.Errorf("error opening notes: %w", err)
	}
	if secrets.ExtraNotes, err = s.openField(entry.CipherExtraNotes); err != nil {
		return nil, fmt.Errorf("error opening extra notes: %w", err)
	}
	return secrets, nil
}

func (s *EntryService) ListByVault(ctx context.Context, vaultID string) ([]*models.Entry, error) {
	return s.repomanager.Entries(s.db).ListByVault(ctx, vaultID)
}

// Update replaces the label and every cipher field wholesale. There is no
// partial update: an omitted field is cleared, matching what clients send.
func (s *EntryService) Update(ctx context.Context, id string, fields *EntryFields) (*models.Entry, error) {
	if err := validateEntryLabel(fields.Label); err != nil {
		return nil, err
	}

	repo := s.repomanager.Entries(s.db)

	entry, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.Label = fields.Label
	if err := s.sealFields(entry, fields); err != nil {
		return nil, err
	}

	if err := repo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("error updating entry: %w", err)
	}
	return entry, nil
}

func (s *EntryService) SetStatus(ctx context.Context, id, status string) error {
	if status != models.EntryStatusActive && status != models.EntryStatusArchived {
		return common.NewValidationError("status must be %q or %q", models.EntryStatusActive, models.EntryStatusArchived)
	}

	repo := s.repomanager.Entries(s.db)

	entry, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	entry.Status = status
	if err := repo.Update(ctx, entry); err != nil {
		return fmt.Errorf("error updating entry: %w", err)
	}
	return nil
}

func (s *EntryService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Entries(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting entry: %w", err)
	}
	return nil
}
