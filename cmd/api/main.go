package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"skynotes/internal/bsky"
	"skynotes/internal/config"
	"skynotes/internal/content"
	"skynotes/internal/http"
	"skynotes/internal/publisher"
	"skynotes/internal/scheduler"
	"skynotes/internal/service"
	"skynotes/internal/session"
	"skynotes/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	mirror, err := storage.OpenMirror(cfg.MirrorPath)
	if err != nil {
		log.Fatalf("Failed to open mirror: %v", err)
	}
	defer func() {
		_ = mirror.Close()
	}()

	noteRepo := storage.NewNoteRepo(db)
	sessionRepo := storage.NewSessionRepo(db, storage.DefaultSessionName)
	mirrorSync := storage.NewMirrorSync(noteRepo, mirror)
	if n, err := mirrorSync.Sync(ctx); err != nil {
		slog.Warn("Initial mirror sync failed", "error", err)
	} else {
		slog.Info("Mirror initialized", "path", cfg.MirrorPath, "notes", n)
	}

	bskyClient := bsky.NewClient(cfg.BskyBaseURL, cfg.BskyTimeout)
	sessions := session.NewProvider(sessionRepo, bskyClient)

	if cfg.BskyIdentifier != "" {
		if _, err := sessions.Login(ctx, cfg.BskyIdentifier, cfg.BskyAppPassword); err != nil {
			slog.Error("Startup login failed; notes will fail with no session until a login succeeds", "identifier", cfg.BskyIdentifier, "error", err)
		} else {
			slog.Info("Logged in to Bluesky", "identifier", cfg.BskyIdentifier)
		}
	}

	fetcher := content.NewHTTPFetcher(cfg.LinkPreviewTimeout)
	transformer := content.NewTransformer(fetcher)
	submitter := publisher.NewSubmitter(bskyClient, fetcher, cfg.MaxBlobBytes)
	dispatcher := scheduler.NewDispatcher(noteRepo, sessions, transformer, submitter, mirrorSync)

	deps := &http.Deps{
		NoteService:    service.NewNoteService(noteRepo, dispatcher, mirror, mirrorSync),
		SessionService: service.NewSessionService(sessions),
		Mirror:         mirror,
		Store:          db,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		dispatcher.Run(ctx, cfg.TickInterval)
	}()

	srv := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           http.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting API server", "addr", srv.Addr, "bsky", cfg.BskyBaseURL, "tick_interval", cfg.TickInterval)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("API server shutdown failed", "error", err)
	}

	// Let an in-flight tick finish before the stores close.
	wg.Wait()
	slog.Info("Stopped")
}
