package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/mkravets/linkjournal/internal/client/config"
	"github.com/mkravets/linkjournal/internal/client/credstore"
	"github.com/mkravets/linkjournal/internal/client/identity"
	"github.com/mkravets/linkjournal/internal/client/media"
	"github.com/mkravets/linkjournal/internal/client/session"
	"github.com/mkravets/linkjournal/internal/client/store"
	"github.com/mkravets/linkjournal/internal/client/transport"
	"github.com/mkravets/linkjournal/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the client data layer behind the interactive commands.
type App struct {
	config   *config.Config
	logger   logging.Logger
	session  *session.Session
	store    *store.Store
	uploader *media.Uploader
	reader   *bufio.Reader
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := credstore.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "initializing session database", "error", err)
		return nil, err
	}

	creds := credstore.NewSQLiteRepository(db)
	provider := identity.NewRESTProvider(c.IdentityBaseURL, c.IdentityAPIKey, logger)
	sess := session.New(provider, creds, logger, c.TokenRefreshInterval)
	apiClient := transport.NewHTTPClient(c.APIBaseURL, sess, logger)

	return &App{
		config:   c,
		logger:   logger,
		session:  sess,
		store:    store.New(apiClient, logger),
		uploader: media.NewUploader(apiClient, logger),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Account() != nil
}

// Run restores any persisted session and then blocks in the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.session.Close()

	if account, err := a.session.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "restoring session", "error", err)
	} else if account != nil {
		printlnFn("Welcome back,", account.Email)
	}

	a.Root(ctx)
}
