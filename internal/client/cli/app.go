package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/config"
	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/casekeeper/internal/client/storage"
	"github.com/dmitrijs2005/casekeeper/internal/client/store"
	"github.com/dmitrijs2005/casekeeper/internal/client/syncer"
	"github.com/dmitrijs2005/casekeeper/internal/docgen"
	"github.com/dmitrijs2005/casekeeper/internal/logging"
)

const requestTimeout = 30 * time.Second

// syncService is the part of syncer.Orchestrator the REPL drives.
type syncService interface {
	Start(ctx context.Context)
	Signup(ctx context.Context, email, password, name string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Mode() syncer.Mode
	Auth() models.AuthState
	Flush(ctx context.Context)
	Close()
}

type App struct {
	config *config.Config
	store  *store.Store
	sync   syncService
	prefs  *storage.Preferences
	gen    *docgen.Generator
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	closers []func() error
}

// NewApp wires the client from c. The caller must call Close.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewFileLogger(c.LogFile, zapcore.InfoLevel)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	db, err := storage.InitDatabase(ctx, c.DBPath)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	repo := metadata.NewSQLiteRepository(db)
	st := store.New()
	local := storage.NewLocal(repo, logger)
	remote := client.NewHTTPClient(c.ServerURL, &http.Client{Timeout: requestTimeout})

	a := &App{
		config: c,
		store:  st,
		prefs:  storage.NewPreferences(repo, logger),
		gen:    docgen.Default(),
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		now:    time.Now,
	}
	a.sync = syncer.New(st, local, remote, newTermNotifier(a.out), logger, c.SyncDelay)
	a.closers = []func() error{
		db.Close,
		// zap reports EINVAL when syncing a terminal; that is not a failure.
		func() error { _ = logger.Sync(); return nil },
	}
	return a, nil
}

// Run starts syncing and blocks in the REPL until the user exits or stdin
// closes.
func (a *App) Run(ctx context.Context) {
	a.sync.Start(ctx)
	a.printf("Welcome to casekeeper (type 'help' for commands)\n")
	runREPL(ctx, a, a.prompt, a.reader)
}

// Close pushes any pending change and releases resources.
func (a *App) Close(ctx context.Context) error {
	a.sync.Flush(ctx)
	a.sync.Close()

	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) isSignedIn() bool {
	return a.sync.Auth().Enabled()
}

func (a *App) prompt() string {
	who := "offline"
	if auth := a.sync.Auth(); auth.Enabled() {
		who = auth.Email
		if who == "" {
			who = auth.UserID
		}
	}
	return fmt.Sprintf("ck (%s %s)> ", who, a.sync.Mode())
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
