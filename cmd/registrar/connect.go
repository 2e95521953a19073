package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/doodlesbykumbi/registrar/pkg/config"
	"github.com/doodlesbykumbi/registrar/pkg/store"
)

func loadConfig() (*config.RegistrarConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.RegistrarConfig) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// openCatalog connects to the server and switches to the configured
// catalog. On error the connection is already closed.
func openCatalog(ctx context.Context, cfg *config.RegistrarConfig, opts ...store.Option) (*store.Conn, error) {
	opts = append([]store.Option{store.WithLogLevel(cfg.SlogLevel())}, opts...)
	conn, err := store.Connect(ctx, cfg.Store(), opts...)
	if err != nil {
		return nil, err
	}
	if err := conn.SelectCatalog(ctx, cfg.DBCatalog); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}
