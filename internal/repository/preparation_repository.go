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

// preparationRepository implements the PreparationRepository interface using PostgreSQL.
type preparationRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	logger  zerolog.Logger
}

// NewPreparationRepository creates a new PostgreSQL-backed preparation repository.
// Operations fail with a timeout error when no pool connection can be
// acquired within the given duration.
func NewPreparationRepository(pool *pgxpool.Pool, timeout time.Duration, logger zerolog.Logger) PreparationRepository {
	return &preparationRepository{
		pool:    pool,
		timeout: timeout,
		logger:  logger.With().Str("repository", "preparation").Logger(),
	}
}

const preparationColumns = "id, name, category, shift, location, picture_url, steps, created_at, updated_at"

const stepColumns = "id, preparation_id, step_number, description, picture_url, created_at, updated_at"

func scanPreparation(row pgx.Row) (*model.Preparation, error) {
	var p model.Preparation
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.Shift,
		&p.Location,
		&p.PictureURL,
		&p.Steps,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new preparation, assigning its id and timestamps.
func (r *preparationRepository) Create(ctx context.Context, form *model.PreparationForm, pictureURL string) (*model.Preparation, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO preparations (id, name, category, shift, location, picture_url, steps)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + preparationColumns

	id := uuid.New()
	p, err := scanPreparation(r.pool.QueryRow(ctx, query,
		id, form.Name, form.Category, form.Shift, form.Location, pictureURL, form.Steps))
	if err != nil {
		r.logger.Error().Err(err).Str("name", form.Name).Msg("failed to insert preparation")
		return nil, fmt.Errorf("failed to insert preparation: %w", mapError(err))
	}

	r.logger.Debug().Str("preparation_id", p.ID.String()).Msg("preparation created")

	return p, nil
}

// GetByID retrieves a single preparation by its ID.
func (r *preparationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Preparation, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + preparationColumns + ` FROM preparations WHERE id = $1`

	p, err := scanPreparation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("preparation_id", id.String()).Msg("preparation not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("preparation_id", id.String()).Msg("failed to query preparation")
		return nil, fmt.Errorf("failed to query preparation: %w", mapError(err))
	}

	return p, nil
}

// GetAll retrieves all preparations, newest first.
func (r *preparationRepository) GetAll(ctx context.Context) ([]model.Preparation, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + preparationColumns + ` FROM preparations ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query preparations")
		return nil, fmt.Errorf("failed to query preparations: %w", mapError(err))
	}
	defer rows.Close()

	return collectPreparations(rows, r.logger)
}

// Update replaces the preparation's fields and refreshes updated_at.
func (r *preparationRepository) Update(ctx context.Context, id uuid.UUID, form *model.PreparationForm, pictureURL string) (*model.Preparation, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		UPDATE preparations
		SET name = $2, category = $3, shift = $4, location = $5, picture_url = $6,
		    steps = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING ` + preparationColumns

	p, err := scanPreparation(r.pool.QueryRow(ctx, query,
		id, form.Name, form.Category, form.Shift, form.Location, pictureURL, form.Steps))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("preparation_id", id.String()).Msg("failed to update preparation")
		return nil, fmt.Errorf("failed to update preparation: %w", mapError(err))
	}

	return p, nil
}

// Delete removes a preparation; its steps are removed by the schema's
// ON DELETE CASCADE.
func (r *preparationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM preparations WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("preparation_id", id.String()).Msg("failed to delete preparation")
		return fmt.Errorf("failed to delete preparation: %w", mapError(err))
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPreparationNotFound
	}

	r.logger.Debug().Str("preparation_id", id.String()).Msg("preparation deleted")

	return nil
}

// Search finds preparations whose name matches the query.
func (r *preparationRepository) Search(ctx context.Context, query string) ([]model.Preparation, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	sql := `
		SELECT ` + preparationColumns + `
		FROM preparations
		WHERE name ILIKE $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, sql, "%"+query+"%")
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search preparations")
		return nil, fmt.Errorf("failed to search preparations: %w", mapError(err))
	}
	defer rows.Close()

	return collectPreparations(rows, r.logger)
}

// CreateStep inserts one step for a preparation. A duplicate step number
// for the same preparation surfaces as a conflict.
func (r *preparationRepository) CreateStep(ctx context.Context, preparationID uuid.UUID, stepNumber int, description, pictureURL string) (*model.PreparationStep, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO preparation_steps (id, preparation_id, step_number, description, picture_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + stepColumns

	var s model.PreparationStep
	err := r.pool.QueryRow(ctx, query, uuid.New(), preparationID, stepNumber, description, pictureURL).Scan(
		&s.ID,
		&s.PreparationID,
		&s.StepNumber,
		&s.Description,
		&s.PictureURL,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("preparation_id", preparationID.String()).
			Int("step_number", stepNumber).
			Msg("failed to insert preparation step")
		return nil, fmt.Errorf("failed to insert preparation step: %w", mapError(err))
	}

	return &s, nil
}

// ListSteps retrieves a preparation's steps in ascending step order.
func (r *preparationRepository) ListSteps(ctx context.Context, preparationID uuid.UUID) ([]model.PreparationStep, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT ` + stepColumns + `
		FROM preparation_steps
		WHERE preparation_id = $1
		ORDER BY step_number ASC`

	rows, err := r.pool.Query(ctx, query, preparationID)
	if err != nil {
		r.logger.Error().Err(err).Str("preparation_id", preparationID.String()).Msg("failed to query preparation steps")
		return nil, fmt.Errorf("failed to query preparation steps: %w", mapError(err))
	}
	defer rows.Close()

	var steps []model.PreparationStep
	for rows.Next() {
		var s model.PreparationStep
		err := rows.Scan(&s.ID, &s.PreparationID, &s.StepNumber, &s.Description, &s.PictureURL, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan preparation step row")
			return nil, fmt.Errorf("failed to scan preparation step: %w", err)
		}
		steps = append(steps, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating preparation step rows")
		return nil, fmt.Errorf("error iterating preparation steps: %w", mapError(err))
	}

	return steps, nil
}

func collectPreparations(rows pgx.Rows, logger zerolog.Logger) ([]model.Preparation, error) {
	var preparations []model.Preparation
	for rows.Next() {
		p, err := scanPreparation(rows)
		if err != nil {
			logger.Error().Err(err).Msg("failed to scan preparation row")
			return nil, fmt.Errorf("failed to scan preparation: %w", err)
		}
		preparations = append(preparations, *p)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("error iterating preparation rows")
		return nil, fmt.Errorf("error iterating preparations: %w", mapError(err))
	}

	return preparations, nil
}
