package repomanager

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/dbx"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/entries"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/orgs"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/users"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/vaults"
)

// InMemoryRepositoryManager backs the repositories with plain maps. It is
// meant for tests: the dbx.DBTX arguments are ignored and no migrations run.
type InMemoryRepositoryManager struct {
	orgs    *inMemoryOrgs
	users   *inMemoryUsers
	vaults  *inMemoryVaults
	entries *inMemoryEntries
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		orgs:    &inMemoryOrgs{items: map[string]*models.Org{}},
		users:   &inMemoryUsers{items: map[string]*models.User{}},
		vaults:  &inMemoryVaults{items: map[string]*models.Vault{}},
		entries: &inMemoryEntries{items: map[string]*models.Entry{}},
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Orgs(db dbx.DBTX) orgs.Repository {
	return m.orgs
}

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Vaults(db dbx.DBTX) vaults.Repository {
	return m.vaults
}

func (m *InMemoryRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return m.entries
}

type inMemoryOrgs struct {
	items map[string]*models.Org
}

func (r *inMemoryOrgs) Create(ctx context.Context, org *models.Org) (*models.Org, error) {
	org.CreatedAt = time.Now()
	r.items[org.ID] = org
	return org, nil
}

func (r *inMemoryOrgs) Get(ctx context.Context, id string) (*models.Org, error) {
	org, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return org, nil
}

func (r *inMemoryOrgs) FindByName(ctx context.Context, name string) (*models.Org, error) {
	for _, org := range r.items {
		if org.Name == name {
			return org, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *inMemoryOrgs) FindAdmin(ctx context.Context) (*models.Org, error) {
	for _, org := range r.items {
		if org.Admin {
			return org, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *inMemoryOrgs) List(ctx context.Context) ([]*models.Org, error) {
	result := make([]*models.Org, 0, len(r.items))
	for _, org := range r.items {
		result = append(result, org)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *inMemoryOrgs) Count(ctx context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *inMemoryOrgs) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type inMemoryUsers struct {
	items map[string]*models.User
}

func (r *inMemoryUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.items[user.ID] = user
	return user, nil
}

func (r *inMemoryUsers) Get(ctx context.Context, id string) (*models.User, error) {
	user, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return user, nil
}

func (r *inMemoryUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.items {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *inMemoryUsers) ListByOrg(ctx context.Context, orgID string) ([]*models.User, error) {
	var result []*models.User
	for _, user := range r.items {
		if user.OrgID == orgID {
			result = append(result, user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (r *inMemoryUsers) CountByOrg(ctx context.Context, orgID string) (int64, error) {
	list, _ := r.ListByOrg(ctx, orgID)
	return int64(len(list)), nil
}

func (r *inMemoryUsers) UpdateStatus(ctx context.Context, id string, status string) error {
	user, ok := r.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	user.Status = status
	user.UpdatedAt = time.Now()
	return nil
}

func (r *inMemoryUsers) UpdateRoles(ctx context.Context, id string, roles string) error {
	user, ok := r.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	user.Roles = roles
	user.UpdatedAt = time.Now()
	return nil
}

func (r *inMemoryUsers) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	user, ok := r.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	user.Password = passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

func (r *inMemoryUsers) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type inMemoryVaults struct {
	items map[string]*models.Vault
}

func (r *inMemoryVaults) Create(ctx context.Context, vault *models.Vault) (*models.Vault, error) {
	now := time.Now()
	vault.CreatedAt = now
	vault.UpdatedAt = now
	r.items[vault.ID] = vault
	return vault, nil
}

func (r *inMemoryVaults) Get(ctx context.Context, id string) (*models.Vault, error) {
	vault, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return vault, nil
}

func (r *inMemoryVaults) ListByOrg(ctx context.Context, orgID string) ([]*models.Vault, error) {
	var result []*models.Vault
	for _, vault := range r.items {
		if vault.OrgID == orgID {
			result = append(result, vault)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *inMemoryVaults) CountByOrg(ctx context.Context, orgID string) (int64, error) {
	list, _ := r.ListByOrg(ctx, orgID)
	return int64(len(list)), nil
}

func (r *inMemoryVaults) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type inMemoryEntries struct {
	items map[string]*models.Entry
}

func (r *inMemoryEntries) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	r.items[entry.ID] = entry
	return entry, nil
}

func (r *inMemoryEntries) Get(ctx context.Context, id string) (*models.Entry, error) {
	entry, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return entry, nil
}

func (r *inMemoryEntries) ListByVault(ctx context.Context, vaultID string) ([]*models.Entry, error) {
	var result []*models.Entry
	for _, entry := range r.items {
		if entry.VaultID == vaultID {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Label < result[j].Label })
	return result, nil
}

func (r *inMemoryEntries) CountByVault(ctx context.Context, vaultID string) (int64, error) {
	list, _ := r.ListByVault(ctx, vaultID)
	return int64(len(list)), nil
}

func (r *inMemoryEntries) Update(ctx context.Context, entry *models.Entry) error {
	if _, ok := r.items[entry.ID]; !ok {
		return common.ErrorNotFound
	}
	entry.UpdatedAt = time.Now()
	r.items[entry.ID] = entry
	return nil
}

func (r *inMemoryEntries) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}
