package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"kitchen-guide/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Create inserts a new product, assigning its id and timestamps.
	Create(ctx context.Context, form *model.ProductForm, pictureURL string) (*model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetAll retrieves all products, newest first.
	GetAll(ctx context.Context) ([]model.Product, error)

	// Update replaces the product's fields and refreshes updated_at.
	Update(ctx context.Context, id uuid.UUID, form *model.ProductForm, pictureURL string) (*model.Product, error)

	// Search finds products whose name or supplier matches the query.
	Search(ctx context.Context, query string) ([]model.Product, error)
}

// PreparationRepository defines data access for preparations and their steps.
type PreparationRepository interface {
	// Create inserts a new preparation, assigning its id and timestamps.
	Create(ctx context.Context, form *model.PreparationForm, pictureURL string) (*model.Preparation, error)

	// GetByID retrieves a single preparation by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Preparation, error)

	// GetAll retrieves all preparations, newest first.
	GetAll(ctx context.Context) ([]model.Preparation, error)

	// Update replaces the preparation's fields and refreshes updated_at.
	Update(ctx context.Context, id uuid.UUID, form *model.PreparationForm, pictureURL string) (*model.Preparation, error)

	// Delete removes a preparation; its steps are removed by cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// Search finds preparations whose name matches the query.
	Search(ctx context.Context, query string) ([]model.Preparation, error)

	// CreateStep inserts one step for a preparation.
	CreateStep(ctx context.Context, preparationID uuid.UUID, stepNumber int, description, pictureURL string) (*model.PreparationStep, error)

	// ListSteps retrieves a preparation's steps in ascending step order.
	ListSteps(ctx context.Context, preparationID uuid.UUID) ([]model.PreparationStep, error)
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user with a pre-hashed password.
	Create(ctx context.Context, username, email, passwordHash string) (*model.User, error)

	// GetByID retrieves an active user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByUsername retrieves an active user by username.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// GetByEmail retrieves an active user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Postgres error codes mapped to domain errors.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// withTimeout bounds a database operation, pool acquisition included. HTTP
// request contexts carry no deadline of their own, so without this a
// saturated pool would park the request until the client gives up.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// mapError translates driver-level failures into domain errors. Unique
// violations become conflicts, check violations become validation errors,
// and exhausted deadlines on the connection pool become timeouts.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return model.ErrConflict
		case pgCheckViolation:
			return model.NewValidationError("Value is outside the allowed set")
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return model.ErrTimeout
	}
	return err
}
