package vaults

import (
	"context"

	"github.com/dmitrijs2005/orgvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, vault *models.Vault) (*models.Vault, error)
	Get(ctx context.Context, id string) (*models.Vault, error)
	ListByOrg(ctx context.Context, orgID string) ([]*models.Vault, error)
	CountByOrg(ctx context.Context, orgID string) (int64, error)
	Delete(ctx context.Context, id string) error
}
