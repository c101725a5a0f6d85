package orgs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/dbx"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, org *models.Org) (*models.Org, error) {

	query :=
		`INSERT INTO orgs (id, name, admin)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		org.ID, org.Name, org.Admin).Scan(&org.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return org, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Org, error) {
	query :=
		`SELECT id, name, admin, created_at FROM orgs
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) FindByName(ctx context.Context, name string) (*models.Org, error) {
	query :=
		`SELECT id, name, admin, created_at FROM orgs
		 WHERE name = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, name))
}

func (r *PostgresRepository) FindAdmin(ctx context.Context) (*models.Org, error) {
	query :=
		`SELECT id, name, admin, created_at FROM orgs
		 WHERE admin = true
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query))
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Org, error) {
	query :=
		`SELECT id, name, admin, created_at FROM orgs
		 ORDER BY name ASC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*models.Org
	for rows.Next() {
		org := &models.Org{}
		if err := rows.Scan(&org.ID, &org.Name, &org.Admin, &org.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM orgs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM orgs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Org, error) {
	org := &models.Org{}
	err := row.Scan(&org.ID, &org.Name, &org.Admin, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return org, nil
}
