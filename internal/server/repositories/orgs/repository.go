package orgs

import (
	"context"

	"github.com/dmitrijs2005/orgvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, org *models.Org) (*models.Org, error)
	Get(ctx context.Context, id string) (*models.Org, error)
	FindByName(ctx context.Context, name string) (*models.Org, error)
	FindAdmin(ctx context.Context) (*models.Org, error)
	List(ctx context.Context) ([]*models.Org, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}
