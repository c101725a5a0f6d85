// Package server wires the application together: logger, database,
// repositories, services, the auth resolver and the HTTP server, plus the
// interactive setup routine that bootstraps the admin org.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/cryptox"
	"github.com/dmitrijs2005/orgvault/internal/dbx"
	"github.com/dmitrijs2005/orgvault/internal/logging"
	"github.com/dmitrijs2005/orgvault/internal/rbac"
	"github.com/dmitrijs2005/orgvault/internal/server/auth"
	"github.com/dmitrijs2005/orgvault/internal/server/config"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
	"github.com/dmitrijs2005/orgvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/orgvault/internal/server/services"
	"github.com/dmitrijs2005/orgvault/internal/server/web"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	web         *web.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	orgService := services.NewOrgService(db, m)
	userService := services.NewUserService(db, m)
	vaultService := services.NewVaultService(db, m, cfg)
	entryService := services.NewEntryService(db, m, cfg)

	resolver := auth.NewResolver(m.Orgs(db), m.Users(db),
		[]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration, logger)

	webServer := web.NewServer(logger, resolver, orgService, userService, vaultService, entryService, db)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repomanager: m,
		web:         webServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until the context is cancelled or a signal arrives, then
// shuts down gracefully.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.web.Router(),
	}

	go func() {
		app.logger.Info(ctx, "starting server", "addr", app.config.EndpointAddrHTTP)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "server error", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err)
	}
}

// Setup bootstraps the admin org and its SystemAdmin user inside one
// transaction. Running it again is a no-op when both already exist.
func (app *App) Setup(ctx context.Context, orgName, username, password string) error {
	if len(username) < 1 || len(username) > 30 {
		return common.NewValidationError("username must be 1-30 characters")
	}
	if len(password) < 8 || len(password) > 100 {
		return common.NewValidationError("password must be 8-100 characters")
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return dbx.WithTx(ctx, app.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		orgRepo := app.repomanager.Orgs(tx)
		userRepo := app.repomanager.Users(tx)

		org, err := orgRepo.FindAdmin(ctx)
		if errors.Is(err, common.ErrorNotFound) {
			org, err = orgRepo.Create(ctx, &models.Org{
				ID:    common.GenerateID(),
				Name:  orgName,
				Admin: true,
			})
			if err != nil {
				return fmt.Errorf("error creating admin org: %w", err)
			}
			app.logger.Info(ctx, "admin org created", "org_id", org.ID, "name", org.Name)
		} else if err != nil {
			return fmt.Errorf("error searching admin org: %w", err)
		}

		existing, err := userRepo.FindByUsername(ctx, username)
		if err == nil {
			if existing.OrgID != org.ID {
				return common.NewValidationError("username %q is already taken", username)
			}
			app.logger.Info(ctx, "admin user already exists", "user_id", existing.ID)
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error searching user: %w", err)
		}

		user, err := userRepo.Create(ctx, &models.User{
			ID:       common.GenerateID(),
			OrgID:    org.ID,
			Username: username,
			Password: hash,
			Status:   models.UserStatusActive,
			Roles:    rbac.JoinRoles([]rbac.Role{rbac.RoleSystemAdmin}),
		})
		if err != nil {
			return fmt.Errorf("error creating admin user: %w", err)
		}
		app.logger.Info(ctx, "admin user created", "user_id", user.ID, "username", user.Username)
		return nil
	})
}
