// Package bootstrap opens the infrastructure selected by config. Both the
// server and the seed command start from here.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hocus-focus/config"
	"github.com/oksasatya/hocus-focus/internal/domain/repository"
	"github.com/oksasatya/hocus-focus/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/hocus-focus/internal/infrastructure/postgres"
	"github.com/oksasatya/hocus-focus/internal/infrastructure/redisstore"
	"github.com/oksasatya/hocus-focus/internal/infrastructure/session"
	"github.com/oksasatya/hocus-focus/internal/storage"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
)

type Infra struct {
	Backend storage.Backend
	// Redis is nil unless a component is configured to use it.
	Redis redis.UniversalClient

	closers []func()
}

// Open connects to whatever STORAGE_DRIVER and SESSION_STORE name. Postgres
// migrations run before the backend is handed out.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Infra, error) {
	in := &Infra{}

	if cfg.NeedsRedis() {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		in.closers = append(in.closers, func() { _ = rdb.Close() })
		if err := helpers.PingRedis(ctx, rdb, 5*time.Second); err != nil {
			in.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		in.Redis = rdb
	}

	switch cfg.StorageDriver {
	case config.StorageMemory:
		in.Backend = memory.NewBackend()
	case config.StorageRedis:
		in.Backend = redisstore.NewBackend(in.Redis, cfg.RedisKeyPrefix)
	case config.StoragePostgres:
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			in.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			in.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		in.closers = append(in.closers, pool.Close)
		in.Backend = pginfra.NewBackend(pool)
	default:
		in.Close()
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	logger.WithFields(logrus.Fields{
		"storage":  cfg.StorageDriver,
		"sessions": cfg.SessionStore,
	}).Info("infrastructure ready")
	return in, nil
}

// Sessions returns the session store SESSION_STORE selects.
func (in *Infra) Sessions(cfg *config.Config) repository.SessionRepository {
	if cfg.SessionStore == config.StorageRedis && in.Redis != nil {
		return session.NewRedisStore(in.Redis)
	}
	return session.NewMemoryStore()
}

// Close releases connections in reverse order of opening.
func (in *Infra) Close() {
	for i := len(in.closers) - 1; i >= 0; i-- {
		in.closers[i]()
	}
	in.closers = nil
}
