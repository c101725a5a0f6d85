package vaults

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/dbx"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
)

const vaultColumns = `id, org_id, name, test_cipher, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, vault *models.Vault) (*models.Vault, error) {

	query :=
		`INSERT INTO vaults (id, org_id, name, test_cipher)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		vault.ID, vault.OrgID, vault.Name, vault.TestCipher).
		Scan(&vault.CreatedAt, &vault.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return vault, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Vault, error) {
	query := `SELECT ` + vaultColumns + ` FROM vaults WHERE id = $1`

	vault := &models.Vault{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&vault.ID, &vault.OrgID, &vault.Name, &vault.TestCipher, &vault.CreatedAt, &vault.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return vault, nil
}

func (r *PostgresRepository) ListByOrg(ctx context.Context, orgID string) ([]*models.Vault, error) {
	query := `SELECT ` + vaultColumns + ` FROM vaults WHERE org_id = $1 ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*models.Vault
	for rows.Next() {
		vault := &models.Vault{}
		if err := rows.Scan(&vault.ID, &vault.OrgID, &vault.Name, &vault.TestCipher,
			&vault.CreatedAt, &vault.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, vault)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func (r *PostgresRepository) CountByOrg(ctx context.Context, orgID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM vaults WHERE org_id = $1`, orgID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vaults WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
