package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/cryptox"
	"github.com/dmitrijs2005/orgvault/internal/logging"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/orgs"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/users"
)

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Credentials) Validate() error {
	if len(c.Username) < 1 || len(c.Username) > 30 {
		return common.NewValidationError("username must be 1-30 characters")
	}
	if len(c.Password) < 8 || len(c.Password) > 100 {
		return common.NewValidationError("password must be 8-100 characters")
	}
	return nil
}

// AuthResponse is the result of a successful login.
type AuthResponse struct {
	User  *models.User
	Token string
}

// Resolver authenticates credentials and tokens against the stored user and
// org records. It holds only read-only state (signing secret, token
// validity); every call re-reads the backing store.
type Resolver struct {
	orgs          orgs.Repository
	users         users.Repository
	secret        []byte
	tokenValidity time.Duration
	logger        logging.Logger
}

func NewResolver(orgRepo orgs.Repository, userRepo users.Repository, secret []byte, tokenValidity time.Duration, logger logging.Logger) *Resolver {
	return &Resolver{
		orgs:          orgRepo,
		users:         userRepo,
		secret:        secret,
		tokenValidity: tokenValidity,
		logger:        logger,
	}
}

// Authenticate validates credentials and issues a token with the
// "auth vault" scope.
//
// A missing username and a wrong password both fail with
// ErrorInvalidPassword so responses never reveal which usernames exist.
func (r *Resolver) Authenticate(ctx context.Context, credentials *Credentials) (*AuthResponse, error) {
	if err := credentials.Validate(); err != nil {
		return nil, err
	}

	user, err := r.users.FindByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidPassword
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.IsActive() {
		return nil, common.ErrorInactiveUser
	}

	org, err := r.orgs.Get(ctx, user.OrgID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidOrg
		}
		return nil, fmt.Errorf("find org: %w", err)
	}

	if err := cryptox.VerifyPassword(credentials.Password, user.Password); err != nil {
		if errors.Is(err, cryptox.ErrIncorrectPassword) {
			return nil, common.ErrorInvalidPassword
		}
		// A hash that cannot be verified is an internal problem; keep the
		// detail out of the response.
		r.logger.Error(ctx, "password verification failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}

	payload := &ActorPayload{
		UserID: user.ID,
		OrgID:  org.ID,
		Scope:  ScopeAuthVault,
	}

	token, err := CreateAuthToken(payload, r.secret, r.tokenValidity)
	if err != nil {
		r.logger.Error(ctx, "token creation failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}

	return &AuthResponse{User: user, Token: token}, nil
}

// AuthenticateToken verifies a token and builds an Actor from the current
// org and user records. Claims are never trusted for anything but identity:
// the user and org are re-loaded on every call, so role and permission
// changes apply on the next request, not the next login.
func (r *Resolver) AuthenticateToken(ctx context.Context, token string) (*Actor, error) {
	payload, err := VerifyAuthToken(token, r.secret)
	if err != nil {
		return nil, err
	}

	org, err := r.orgs.Get(ctx, payload.OrgID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidOrg
		}
		return nil, fmt.Errorf("find org: %w", err)
	}

	user, err := r.users.Get(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.OrgID != org.ID {
		return nil, common.ErrorUserNotFound
	}

	actor, err := NewActor(payload, user)
	if err != nil {
		// Stored roles that fail to parse mean a corrupt record.
		r.logger.Error(ctx, "stored roles failed to parse", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}

	return actor, nil
}
