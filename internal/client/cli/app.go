package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/nekolist/internal/client/client"
	"github.com/dmitrijs2005/nekolist/internal/client/config"
	"github.com/dmitrijs2005/nekolist/internal/client/models"
	"github.com/dmitrijs2005/nekolist/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/nekolist/internal/client/session"
	"github.com/dmitrijs2005/nekolist/internal/client/viewmodel"
	"github.com/dmitrijs2005/nekolist/internal/filex"
	"github.com/dmitrijs2005/nekolist/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config   *config.Config
	api      client.Client
	sessions *session.Store
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	closeDB  func() error

	mu     sync.Mutex
	mode   Mode
	screen *viewmodel.ViewModel
}

// NewApp builds the client stack from c. A session database that cannot be
// opened is logged and replaced by a store that keeps nothing.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	sessions, closeDB := openSessionStore(ctx, c.SessionDSN, log)

	api, err := client.New(c.ServerURL, sessions, log)
	if err != nil {
		_ = closeDB()
		return nil, err
	}

	a := newApp(c, api, sessions, log, os.Stdin, os.Stdout)
	a.closeDB = closeDB
	return a, nil
}

func newApp(c *config.Config, api client.Client, sessions *session.Store, log logging.Logger, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		config:   c,
		api:      api,
		sessions: sessions,
		log:      log.With("component", "cli"),
		reader:   bufio.NewReader(in),
		out:      out,
		closeDB:  func() error { return nil },
	}
}

func openSessionStore(ctx context.Context, dsn string, log logging.Logger) (*session.Store, func() error) {
	noop := func() error { return nil }

	if dsn == "" {
		return session.NewStore(session.NewMemoryBackend(), log), noop
	}

	if err := filex.EnsureParentDir(dsn); err != nil {
		log.Warn(ctx, "session database unavailable, sessions will not be kept", "dsn", dsn, "error", err)
		return session.NewStore(nil, log), noop
	}
	db, err := client.InitDatabase(ctx, dsn)
	if err != nil {
		log.Warn(ctx, "session database unavailable, sessions will not be kept", "dsn", dsn, "error", err)
		return session.NewStore(nil, log), noop
	}
	return session.NewStore(metadata.NewSQLiteRepository(db), log), db.Close
}

// Run checks connectivity, starts the status watcher and blocks in the REPL
// until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer func() {
		if err := a.closeDB(); err != nil {
			a.log.Warn(ctx, "closing session database", "error", err)
		}
	}()

	a.printf("Welcome to nekolist (type 'help' for commands)\n")
	a.checkOnline(ctx)

	if sess, ok := a.currentSession(ctx); ok {
		a.printf("Signed in as %s <%s>\n", sess.Name, sess.Email)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	a.closeScreen()
}

func (a *App) currentSession(ctx context.Context) (models.Session, bool) {
	return a.sessions.Load(ctx)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.currentSession(context.Background())
	return ok
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
		a.printf("Switched to %s mode\n", mode)
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.log.Debug(ctx, "ping failed", "error", err)
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// mountScreen replaces the current collection view with one backed by fetch.
func (a *App) mountScreen(ctx context.Context, fetch viewmodel.Fetcher) (*viewmodel.ViewModel, error) {
	vm := viewmodel.New(fetch, a.api, viewmodel.WithLogger(a.log))

	a.mu.Lock()
	prev := a.screen
	a.screen = vm
	a.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	return vm, vm.Mount(ctx)
}

func (a *App) currentScreen() *viewmodel.ViewModel {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.screen
}

func (a *App) closeScreen() {
	a.mu.Lock()
	vm := a.screen
	a.screen = nil
	a.mu.Unlock()

	if vm != nil {
		vm.Close()
	}
}
