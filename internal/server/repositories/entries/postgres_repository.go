package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/dbx"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
)

const entryColumns = `id, vault_id, label, cipher_username, cipher_password,
	cipher_notes, cipher_extra_notes, status, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {

	query :=
		`INSERT INTO entries (id, vault_id, label, cipher_username, cipher_password,
		                      cipher_notes, cipher_extra_notes, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.VaultID, entry.Label,
		entry.CipherUsername, entry.CipherPassword, entry.CipherNotes, entry.CipherExtraNotes,
		entry.Status).
		Scan(&entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`

	entry := &models.Entry{}
	err := scanEntry(r.db.QueryRowContext(ctx, query, id).Scan, entry)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) ListByVault(ctx context.Context, vaultID string) ([]*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE vault_id = $1 ORDER BY label ASC`

	rows, err := r.db.QueryContext(ctx, query, vaultID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*models.Entry
	for rows.Next() {
		entry := &models.Entry{}
		if err := scanEntry(rows.Scan, entry); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func (r *PostgresRepository) CountByVault(ctx context.Context, vaultID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM entries WHERE vault_id = $1`, vaultID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

// Update overwrites the mutable columns. Ciphertext columns are replaced
// wholesale; there is no partial update of an envelope.
func (r *PostgresRepository) Update(ctx context.Context, entry *models.Entry) error {

	query :=
		`UPDATE entries
		 SET label = $2, cipher_username = $3, cipher_password = $4,
		     cipher_notes = $5, cipher_extra_notes = $6, status = $7, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Label,
		entry.CipherUsername, entry.CipherPassword, entry.CipherNotes, entry.CipherExtraNotes,
		entry.Status)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanEntry(scan func(dest ...any) error, entry *models.Entry) error {
	return scan(&entry.ID, &entry.VaultID, &entry.Label,
		&entry.CipherUsername, &entry.CipherPassword, &entry.CipherNotes, &entry.CipherExtraNotes,
		&entry.Status, &entry.CreatedAt, &entry.UpdatedAt)
}
