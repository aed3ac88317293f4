package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connection pool sizing for this service's workload: short point reads and
// single-row writes, with write bursts capped upstream by the auth rate
// limiter. Lifetimes stay under typical LB idle timeouts.
const (
	poolMaxConns        = 16
	poolMinConns        = 4
	poolConnLifetime    = 45 * time.Minute
	poolConnIdleTime    = 15 * time.Minute
	poolHealthCheck     = 30 * time.Second
	postgresDialTimeout = 10 * time.Second
)

type PostgresDB struct {
	Pool *pgxpool.Pool
}

// NewPostgresDB opens a pgx pool against dsn and verifies connectivity before
// returning.
func NewPostgresDB(dsn string) (*PostgresDB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	config.MaxConns = poolMaxConns
	config.MinConns = poolMinConns
	config.MaxConnLifetime = poolConnLifetime
	config.MaxConnIdleTime = poolConnIdleTime
	config.HealthCheckPeriod = poolHealthCheck

	ctx, cancel := context.WithTimeout(context.Background(), postgresDialTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresDB{Pool: pool}, nil
}

func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

func (db *PostgresDB) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
