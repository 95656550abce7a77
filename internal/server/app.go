// Package server initializes and runs the backend: database, migrations,
// token verification, and the HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkravets/linkjournal/internal/logging"
	"github.com/mkravets/linkjournal/internal/server/auth"
	"github.com/mkravets/linkjournal/internal/server/config"
	"github.com/mkravets/linkjournal/internal/server/httpserver"
	"github.com/mkravets/linkjournal/internal/server/identity"
	"github.com/mkravets/linkjournal/internal/server/repositories/repomanager"
	"github.com/mkravets/linkjournal/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpserver.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, slog.LevelInfo)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	verifier, identitySvc, err := buildAuth(ctx, cfg, rm, db)
	if err != nil {
		return nil, err
	}

	h := httpserver.NewHandler(
		logger,
		verifier,
		services.NewTopicService(rm.Topics(db)),
		services.NewJournalService(rm.Journals(db)),
		services.NewUserService(rm.Users(db)),
		services.NewUploadService(cfg),
		identitySvc,
	)

	srv := httpserver.New(cfg, logger, h.Router())

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

// buildAuth selects the token verifier for the configured mode. Dev mode
// also brings up the built-in identity provider endpoints.
func buildAuth(ctx context.Context, cfg *config.Config, rm repomanager.RepositoryManager, db *sql.DB) (auth.Verifier, *identity.Service, error) {
	switch cfg.AuthMode {
	case config.AuthModeDev:
		svc := identity.NewService(db, rm, cfg)
		return auth.NewHS256Verifier([]byte(cfg.SecretKey)), svc, nil
	case config.AuthModeFirebase:
		verifier, err := auth.NewFirebaseVerifier(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("firebase init error: %w", err)
		}
		return verifier, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown auth mode: %q", cfg.AuthMode)
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			app.logger.Error(ctx, "server failed", "err", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := app.server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown error", "err", err)
		}
		<-errCh
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "err", err)
	}
}
