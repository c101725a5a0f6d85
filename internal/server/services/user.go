package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/cryptox"
	"github.com/dmitrijs2005/orgvault/internal/rbac"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/repomanager"
)

// UserService manages org members: creation, status, roles and passwords.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

func validateUsername(username string) error {
	if len(username) < 1 || len(username) > 30 {
		return common.NewValidationError("username must be 1-30 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 100 {
		return common.NewValidationError("password must be 8-100 characters")
	}
	return nil
}

// Create adds a user to an org. Usernames are unique across the whole
// deployment, not per org, because they are the login key.
func (s *UserService) Create(ctx context.Context, orgID, username, password string, roles []rbac.Role) (*models.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, common.NewValidationError("at least one role is required")
	}

	if _, err := s.repomanager.Orgs(s.db).Get(ctx, orgID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	count, err := repo.CountByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}
	if count >= maxUsersPerOrg {
		return nil, common.NewValidationError("user limit reached for org (%d)", maxUsersPerOrg)
	}

	if _, err := repo.FindByUsername(ctx, username); err == nil {
		return nil, common.NewValidationError("username %q is already taken", username)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:       common.GenerateID(),
		OrgID:    orgID,
		Username: username,
		Password: hash,
		Status:   models.UserStatusActive,
		Roles:    rbac.JoinRoles(roles),
	}
	created, err := repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).Get(ctx, id)
}

func (s *UserService) ListByOrg(ctx context.Context, orgID string) ([]*models.User, error) {
	return s.repomanager.Users(s.db).ListByOrg(ctx, orgID)
}

func (s *UserService) UpdateStatus(ctx context.Context, id, status string) error {
	if status != models.UserStatusActive && status != models.UserStatusInactive {
		return common.NewValidationError("status must be %q or %q", models.UserStatusActive, models.UserStatusInactive)
	}
	return s.repomanager.Users(s.db).UpdateStatus(ctx, id, status)
}

func (s *UserService) UpdateRoles(ctx context.Context, id string, roles []rbac.Role) error {
	if len(roles) == 0 {
		return common.NewValidationError("at least one role is required")
	}
	return s.repomanager.Users(s.db).UpdateRoles(ctx, id, rbac.JoinRoles(roles))
}

// SetPassword replaces a user's password without knowing the old one. This
// is the administrative reset path; self-service goes through ChangePassword.
func (s *UserService) SetPassword(ctx context.Context, id, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	return s.repomanager.Users(s.db).UpdatePassword(ctx, id, hash)
}

// ChangePassword verifies the current password before storing the new one.
func (s *UserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := cryptox.VerifyPassword(oldPassword, user.Password); err != nil {
		if errors.Is(err, cryptox.ErrIncorrectPassword) {
			return common.NewValidationError("incorrect password")
		}
		return fmt.Errorf("error verifying password: %w", err)
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	return repo.UpdatePassword(ctx, id, hash)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Users(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}
