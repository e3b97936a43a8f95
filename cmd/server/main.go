package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/hgross/secretview/internal/config"
	"github.com/hgross/secretview/internal/platform/logging"
	"github.com/hgross/secretview/internal/secrets"
	"github.com/hgross/secretview/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupStore(cfg *config.Config, clock clockwork.Clock) *secrets.Store {
	if cfg.SecretsMode == config.ModeProduction {
		loader, err := secrets.NewGitHubLoader(cfg.GitHubToken, cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubSecretsPath, cfg.FetchTimeout)
		if err != nil {
			slog.Error("Invalid remote secrets configuration", "error", err)
			os.Exit(1)
		}
		return secrets.NewStore(loader, "github", clock)
	}
	return secrets.NewStore(secrets.NewEnvLoader(), "env", clock)
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "secrets_mode", cfg.SecretsMode)

	store := setupStore(cfg, clock)

	// Warm the store so the first request doesn't pay the fetch. Failure is
	// not fatal: the store retries on demand and the status endpoint reports
	// the problem.
	warmCtx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout+time.Second)
	if err := store.Initialize(warmCtx); err != nil {
		slog.Warn("Initial secrets load failed; will retry on first request", "error", err)
	}
	cancel()

	srv := server.NewServer(cfg, store, clock)
	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
