package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nabinkhair42/pocket-due/internal/config"
	"github.com/nabinkhair42/pocket-due/internal/server"
	"github.com/nabinkhair42/pocket-due/internal/storage"
	"github.com/nabinkhair42/pocket-due/internal/storage/postgres"
	"github.com/nabinkhair42/pocket-due/internal/storage/sqlite"
	"github.com/nabinkhair42/pocket-due/pkg/logging"
)

func main() {
	logging.Setup()
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err, "driver", cfg.DBDriver)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DBDriver)

	srv := server.New(cfg, store)

	go func() {
		slog.Info("PocketDue API listening", "address", cfg.HTTPAddress(), "env", cfg.Env)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		slog.Error("Graceful shutdown error", "error", err)
	}
}

func openStore(cfg config.Config) (storage.Store, error) {
	if cfg.DBDriver == config.DriverPostgres {
		return postgres.New(context.Background(), cfg.DatabaseURL)
	}
	return sqlite.New(cfg.DBPath)
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found; relying on existing environment")
	}
}
