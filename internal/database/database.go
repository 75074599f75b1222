package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"kitchen-guide/internal/auth"
	"kitchen-guide/internal/config"
)

// NewPool creates a new PostgreSQL connection pool.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Configure pool settings
	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute
	poolConfig.ConnConfig.ConnectTimeout = time.Duration(cfg.AcquireTimeout) * time.Second

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Int("min_connections", cfg.MinConnections).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("database connection pool created successfully")

	return pool, nil
}

// schema defines the four catalog tables. Category and shift values are
// enforced with CHECK constraints; preparation steps cascade on delete and
// carry a composite uniqueness constraint on (preparation_id, step_number).
const schema = `
	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		supplier_name VARCHAR(255) NOT NULL,
		product_name VARCHAR(255) NOT NULL,
		location VARCHAR(255) NOT NULL,
		picture_url TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS preparations (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		category VARCHAR(20) NOT NULL CHECK (category IN ('fruit', 'bread', 'vegetable', 'meat', 'seafood')),
		shift VARCHAR(20) NOT NULL CHECK (shift IN ('breakfast', 'lunch', 'both')),
		location VARCHAR(255) NOT NULL,
		picture_url TEXT NOT NULL DEFAULT '',
		steps TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS preparation_steps (
		id UUID PRIMARY KEY,
		preparation_id UUID NOT NULL REFERENCES preparations(id) ON DELETE CASCADE,
		step_number INTEGER NOT NULL CHECK (step_number > 0),
		description TEXT NOT NULL,
		picture_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (preparation_id, step_number)
	);

	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_preparations_created_at ON preparations(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_preparation_steps_preparation_id ON preparation_steps(preparation_id);
`

// Migrate creates the schema and seeds the default administrative account.
// The admin placeholder password must be rotated before production use.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	hash, err := auth.HashPassword("changeme")
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	tag, err := pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash)
		VALUES (gen_random_uuid(), 'admin', 'admin@localhost', $1)
		ON CONFLICT (username) DO NOTHING
	`, hash)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if tag.RowsAffected() > 0 {
		logger.Warn().Msg("seeded default admin account with placeholder password; rotate it before production use")
	}

	logger.Info().Msg("database schema is up to date")

	return nil
}
