package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"kitchen-guide/internal/model"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	logger  zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
// Operations fail with a timeout error when no pool connection can be
// acquired within the given duration.
func NewUserRepository(pool *pgxpool.Pool, timeout time.Duration, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:    pool,
		timeout: timeout,
		logger:  logger.With().Str("repository", "user").Logger(),
	}
}

const userColumns = "id, username, email, password_hash, is_active, created_at, updated_at"

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user with a pre-hashed password. A duplicate
// username or email surfaces as a conflict.
func (r *userRepository) Create(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	u, err := scanUser(r.pool.QueryRow(ctx, query, uuid.New(), username, email, passwordHash))
	if err != nil {
		r.logger.Error().Err(err).Str("username", username).Msg("failed to insert user")
		return nil, fmt.Errorf("failed to insert user: %w", mapError(err))
	}

	r.logger.Debug().Str("user_id", u.ID.String()).Msg("user created")

	return u, nil
}

// GetByID retrieves an active user by ID.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_active = TRUE`
	return r.getOne(ctx, query, id)
}

// GetByUsername retrieves an active user by username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND is_active = TRUE`
	return r.getOne(ctx, query, username)
}

// GetByEmail retrieves an active user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_active = TRUE`
	return r.getOne(ctx, query, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	u, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", mapError(err))
	}
	return u, nil
}
