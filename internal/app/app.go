package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/database"
	"github.com/vancomm/sweeper/internal/journal"
	"github.com/vancomm/sweeper/internal/middleware"
	"github.com/vancomm/sweeper/internal/repository"
	"github.com/vancomm/sweeper/internal/sessions"
	"github.com/vancomm/sweeper/internal/store"
)

type App struct {
	logger  *slog.Logger
	router  *http.ServeMux
	store   store.Store
	journal journal.Journal
	games   *sessions.Manager
	session *config.Session
	board   *config.Board
	ws      *config.WebSocket

	closers []io.Closer
}

func New(logger *slog.Logger) *App {
	router := http.NewServeMux()

	app := &App{
		logger: logger,
		router: router,
	}

	return app
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

func (a *App) openStore(ctx context.Context) error {
	cfg, err := config.NewStore()
	if err != nil {
		return err
	}

	switch cfg.Driver {
	case config.MemoryStore:
		a.store = store.NewMemory()
	case config.SqliteStore:
		db, err := database.OpenSqlite(ctx, cfg.SqlitePath)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, db)
		st, err := store.NewSqlite(ctx, db, "game_session")
		if err != nil {
			return err
		}
		a.store = st
	case config.PostgresStore:
		pool, migrator, err := database.ConnectAndMigrate(ctx)
		if err != nil {
			return fmt.Errorf("unable to connect to db: %w", err)
		}
		a.closers = append(a.closers, closerFunc(func() error {
			pool.Close()
			srcErr, dbErr := migrator.Close()
			return errors.Join(srcErr, dbErr)
		}))
		a.store = repository.NewStore(repository.New(pool))
	}

	a.logger.Info("game session store opened", slog.String("driver", string(cfg.Driver)))
	return nil
}

func (a *App) openJournal() error {
	filename := config.JournalFile()
	if filename == "" {
		a.journal = journal.Nop()
		return nil
	}
	j, err := journal.NewRotating(filename)
	if err != nil {
		return fmt.Errorf("unable to open move journal: %w", err)
	}
	a.journal = j
	a.logger.Info("move journal opened", slog.String("file", filename))
	return nil
}

// setup reads the configuration and opens every resource the routes need.
func (a *App) setup(ctx context.Context) error {
	session, err := config.NewSession()
	if err != nil {
		return err
	}
	a.session = session

	board, err := config.NewBoard()
	if err != nil {
		return err
	}
	a.board = board

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	if err := a.openStore(ctx); err != nil {
		return err
	}
	if err := a.openJournal(); err != nil {
		return err
	}

	a.games = sessions.NewManager(a.logger, a.store, a.journal, createRand())
	a.loadRoutes()
	return nil
}

func (a *App) Handler() http.Handler {
	var h http.Handler = a.router
	if base := strings.TrimSuffix(config.BasePath(), "/"); base != "" {
		mux := http.NewServeMux()
		mux.Handle(base+"/", http.StripPrefix(base, a.router))
		h = mux
	}
	return middleware.Wrap(
		h,
		middleware.Logging(a.logger),
		middleware.Auth(a.logger, a.session),
		middleware.Cors(),
	)
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("unable to close resource", slog.Any("error", err))
		}
	}
}

func (a *App) Start(ctx context.Context) error {
	if err := a.setup(ctx); err != nil {
		a.close()
		return err
	}
	defer a.close()

	addr := config.Port()
	server := &http.Server{
		Addr:    addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", addr))
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
