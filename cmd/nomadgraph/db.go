package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"nomadgraph/internal/config"
	"nomadgraph/internal/nomad"
	"nomadgraph/internal/store"
	"nomadgraph/internal/store/bolt"
	"nomadgraph/internal/store/postgres"
)

const configFile = "nomadgraph.yaml"

func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		return postgres.New(ctx, cfg.Store.DSN)
	case config.BackendBolt:
		return bolt.New(ctx, cfg.Store.URI, cfg.Store.Username, cfg.Store.Password, cfg.Store.Database)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

func openRemote(cfg *config.ProjectConfig, logger *zap.Logger) *nomad.Client {
	return nomad.NewClient(nomad.Config{
		BaseURL:   cfg.Nomad.BaseURL,
		Token:     cfg.Nomad.Token,
		PageSize:  cfg.Nomad.PageSize,
		MaxPages:  cfg.Nomad.MaxPages,
		RateLimit: cfg.Nomad.RateLimit,
		RateBurst: cfg.Nomad.RateBurst,
	}, logger)
}

func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}
