package web

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/orgvault/internal/server/models"
	"github.com/dmitrijs2005/orgvault/internal/server/services"
)

// Response DTOs. Stored records never go out verbatim: the user view drops
// the password hash, the vault view drops the test cipher, and the entry
// list view drops every cipher column.

type orgView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

func newOrgView(org *models.Org) orgView {
	return orgView{ID: org.ID, Name: org.Name, Admin: org.Admin, CreatedAt: org.CreatedAt}
}

type userView struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	Username  string    `json:"username"`
	Status    string    `json:"status"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserView(user *models.User) userView {
	return userView{
		ID:        user.ID,
		OrgID:     user.OrgID,
		Username:  user.Username,
		Status:    user.Status,
		Roles:     strings.Split(user.Roles, ","),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type vaultView struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newVaultView(vault *models.Vault) vaultView {
	return vaultView{
		ID:        vault.ID,
		OrgID:     vault.OrgID,
		Name:      vault.Name,
		CreatedAt: vault.CreatedAt,
		UpdatedAt: vault.UpdatedAt,
	}
}

type entryListView struct {
	ID        string    `json:"id"`
	VaultID   string    `json:"vault_id"`
	Label     string    `json:"label"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newEntryListView(entry *models.Entry) entryListView {
	return entryListView{
		ID:        entry.ID,
		VaultID:   entry.VaultID,
		Label:     entry.Label,
		Status:    entry.Status,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}

// entryView is the single-entry read: the list view plus opened secrets.
type entryView struct {
	entryListView
	Username   *string `json:"username"`
	Password   *string `json:"password"`
	Notes      *string `json:"notes"`
	ExtraNotes *string `json:"extra_notes"`
}

func newEntryView(secrets *services.EntrySecrets) entryView {
	return entryView{
		entryListView: newEntryListView(secrets.Entry),
		Username:      secrets.Username,
		Password:      secrets.Password,
		Notes:         secrets.Notes,
		ExtraNotes:    secrets.ExtraNotes,
	}
}
