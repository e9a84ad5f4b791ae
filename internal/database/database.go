package database

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/LootCrates_Go/internal/logger"
)

// PoolConfig sizes the postgres connection pool
type PoolConfig struct {
	ConnString  string
	MaxConns    int
	MaxIdleTime time.Duration
	MaxLifetime time.Duration
}

// NewPool creates a PostgreSQL connection pool and verifies it with a ping
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	if cfg.MaxConns > 0 {
		config.MaxConns = int32(min(cfg.MaxConns, math.MaxInt32))
	}
	config.MinConns = min(DefaultMinConnections, config.MaxConns)
	if cfg.MaxLifetime > 0 {
		config.MaxConnLifetime = cfg.MaxLifetime
	}
	if cfg.MaxIdleTime > 0 {
		config.MaxConnIdleTime = cfg.MaxIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	logger.FromContext(ctx).Info(LogMsgSuccessfullyConnectedToDatabase, LogFieldBackend, BackendPostgres)
	return pool, nil
}
