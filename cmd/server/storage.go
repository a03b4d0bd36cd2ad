package main

import (
	"context"
	"fmt"
	"log/slog"

	dbfs "github.com/garnizeh/ideabridge/db"
	"github.com/garnizeh/ideabridge/internal/config"
	"github.com/garnizeh/ideabridge/internal/db"
	"github.com/garnizeh/ideabridge/internal/repository/memory"
	"github.com/garnizeh/ideabridge/internal/repository/redis"
	"github.com/garnizeh/ideabridge/internal/repository/sqlite"
	"github.com/garnizeh/ideabridge/pkg/repository"
)

// openProfiles opens the configured backend. The returned func releases it.
func openProfiles(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Profiles, func() error, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		m := memory.New()
		return m, m.Close, nil

	case config.BackendSQLite:
		conn, err := db.New(ctx, cfg.DatabasePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.DatabasePath, err)
		}
		if cfg.MigrateOnStart {
			if err := db.Migrate(ctx, conn, dbfs.Migrations); err != nil {
				conn.Close()
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		return sqlite.New(conn, logger), conn.Close, nil

	case config.BackendRedis:
		r, err := redis.New(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix, logger)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
