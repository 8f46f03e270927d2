// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/protesilaos/denote-journal/internal/api"
	"github.com/protesilaos/denote-journal/internal/creator"
	"github.com/protesilaos/denote-journal/internal/index"
	"github.com/protesilaos/denote-journal/internal/journal"
	"github.com/protesilaos/denote-journal/internal/journalservice"
	"github.com/protesilaos/denote-journal/internal/mcpserver"
	"github.com/protesilaos/denote-journal/internal/prompt"
	"github.com/protesilaos/denote-journal/internal/sse"
	"github.com/protesilaos/denote-journal/internal/storage"
	"github.com/protesilaos/denote-journal/internal/templates"
)

// newLogger initializes the structured JSON logger and installs it as the
// process default.
func newLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// buildService wires storage, index, and the resolution engine from the
// configuration. The prompter may be nil for non-interactive surfaces;
// prompt-dependent config then falls back to seeded defaults. The
// returned DB must be closed by the caller.
func buildService(cfg *Config, prompter journal.Prompter) (*journalservice.Service, *index.DB, storage.Provider, error) {
	if err := os.MkdirAll(cfg.Collection.Path, 0o755); err != nil {
		return nil, nil, nil, fmt.Errorf("create collection dir: %w", err)
	}

	store, err := storage.NewFS(cfg.Collection.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init storage: %w", err)
	}

	journalDir, err := store.EnsureDir(cfg.Collection.JournalDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init journal dir: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init index: %w", err)
	}

	keywords, err := journal.NewKeywordSet(cfg.Collection.Keywords)
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	title, err := cfg.Collection.Title.Format()
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	if title.IsPrompt() && prompter == nil {
		slog.Warn("title format is 'prompt' but this surface is non-interactive; new entries get the date seed as title")
	}
	order := cfg.Collection.ComponentOrder()

	noteCreator, err := creator.New(store, order, cfg.Collection.Extension)
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	resolver := journal.NewResolver(journal.Config{
		Keywords: keywords,
		Order:    order,
		Dir:      journalDir,
		Title:    title,
	}, store, noteCreator, templates.NewDir(cfg.Collection.TemplatesDir), prompter)

	svc := journalservice.NewService(store, db, resolver)
	return svc, db, store, nil
}

// ResolveEntry performs a one-shot locate-or-create for the given date
// text (empty means today) and returns the resolution.
func ResolveEntry(ctx context.Context, cfg *Config, dateText string) (journal.Resolution, error) {
	newLogger(cfg)

	// The one-shot CLI path is interactive: titles and template choices
	// can be asked on the terminal, with answers on stdin.
	svc, db, _, err := buildService(cfg, prompt.New(os.Stdin, os.Stderr))
	if err != nil {
		return journal.Resolution{}, err
	}
	defer db.Close()

	return svc.Resolve(ctx, dateText)
}

// RunMCP starts the MCP stdio server.
func RunMCP(_ context.Context, cfg *Config) error {
	// MCP uses stdout for its protocol; keep logs on stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	// Stdio carries the MCP protocol, so there is no terminal to ask on.
	svc, db, store, err := buildService(cfg, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	return mcpserver.New(svc).ServeStdio()
}

// Run starts the HTTP server, the file watcher, and the SSE broker.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config
	logger := newLogger(cfg)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("collection_path", cfg.Collection.Path),
		slog.String("journal_dir", cfg.Collection.JournalDir),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	svc, db, store, err := buildService(cfg, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	// Run initial sync.
	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start file watcher with SSE callback.
	g.Go(func() error {
		return index.Watch(gCtx, db, store, cfg.Collection.Path, logger, func(kind, path string) {
			broker.PublishEntryEvent(kind, path)
		})
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
