package users

import (
	"context"

	"github.com/dmitrijs2005/orgvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ListByOrg(ctx context.Context, orgID string) ([]*models.User, error)
	CountByOrg(ctx context.Context, orgID string) (int64, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	UpdateRoles(ctx context.Context, id string, roles string) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
