// Package services contains server-side business logic: org, user, vault and
// entry operations with validation, capacity limits and envelope encryption
// of stored secrets. Tenant and permission checks live in the web middleware,
// not here.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/repomanager"
)

// Hard capacity limits. The product targets a single small deployment;
// anything bigger deserves a different storage design.
const (
	maxOrgs            = 10
	maxUsersPerOrg     = 50
	maxVaultsPerOrg    = 20
	maxEntriesPerVault = 1000
)

// OrgService manages tenants. The admin org is special: exactly one exists,
// it is created by EnsureAdminOrg during setup, and it can never be deleted.
type OrgService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewOrgService(db *sql.DB, m repomanager.RepositoryManager) *OrgService {
	return &OrgService{db: db, repomanager: m}
}

func validateOrgName(name string) error {
	if len(name) < 1 || len(name) > 50 {
		return common.NewValidationError("org name must be 1-50 characters")
	}
	return nil
}

// Create adds a regular (non-admin) org.
func (s *OrgService) Create(ctx context.Context, name string) (*models.Org, error) {
	if err := validateOrgName(name); err != nil {
		return nil, err
	}

	repo := s.repomanager.Orgs(s.db)

	if _, err := repo.FindByName(ctx, name); err == nil {
		return nil, common.NewValidationError("org name %q is already taken", name)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching org: %w", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting orgs: %w", err)
	}
	if count >= maxOrgs {
		return nil, common.NewValidationError("org limit reached (%d)", maxOrgs)
	}

	org := &models.Org{ID: common.GenerateID(), Name: name}
	created, err := repo.Create(ctx, org)
	if err != nil {
		return nil, fmt.Errorf("error creating org: %w", err)
	}
	return created, nil
}

func (s *OrgService) Get(ctx context.Context, id string) (*models.Org, error) {
	return s.repomanager.Orgs(s.db).Get(ctx, id)
}

func (s *OrgService) List(ctx context.Context) ([]*models.Org, error) {
	return s.repomanager.Orgs(s.db).List(ctx)
}

// Delete removes an org. The admin org is refused outright.
func (s *OrgService) Delete(ctx context.Context, id string) error {
	repo := s.repomanager.Orgs(s.db)

	org, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if org.Admin {
		return common.ErrorForbidden
	}
	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting org: %w", err)
	}
	return nil
}

// EnsureAdminOrg returns the admin org, creating it with the given name if it
// does not exist yet. The second result reports whether a new org was
// created. Safe to call repeatedly.
func (s *OrgService) EnsureAdminOrg(ctx context.Context, name string) (*models.Org, bool, error) {
	repo := s.repomanager.Orgs(s.db)

	org, err := repo.FindAdmin(ctx)
	if err == nil {
		return org, false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, false, fmt.Errorf("error searching admin org: %w", err)
	}

	if err := validateOrgName(name); err != nil {
		return nil, false, err
	}
	if _, err := repo.FindByName(ctx, name); err == nil {
		return nil, false, common.NewValidationError("org name %q is already taken", name)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, false, fmt.Errorf("error searching org: %w", err)
	}

	org = &models.Org{ID: common.GenerateID(), Name: name, Admin: true}
	created, err := repo.Create(ctx, org)
	if err != nil {
		return nil, false, fmt.Errorf("error creating admin org: %w", err)
	}
	return created, true, nil
}
