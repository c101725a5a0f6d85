package entries

import (
	"context"

	"github.com/dmitrijs2005/orgvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	Get(ctx context.Context, id string) (*models.Entry, error)
	ListByVault(ctx context.Context, vaultID string) ([]*models.Entry, error)
	CountByVault(ctx context.Context, vaultID string) (int64, error)
	Update(ctx context.Context, entry *models.Entry) error
	Delete(ctx context.Context, id string) error
}
