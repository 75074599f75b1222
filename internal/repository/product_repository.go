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

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	logger  zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
// Operations fail with a timeout error when no pool connection can be
// acquired within the given duration.
func NewProductRepository(pool *pgxpool.Pool, timeout time.Duration, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:    pool,
		timeout: timeout,
		logger:  logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = "id, supplier_name, product_name, location, picture_url, description, created_at, updated_at"

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID,
		&p.SupplierName,
		&p.ProductName,
		&p.Location,
		&p.PictureURL,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product, assigning its id and timestamps.
func (r *productRepository) Create(ctx context.Context, form *model.ProductForm, pictureURL string) (*model.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO products (id, supplier_name, product_name, location, picture_url, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + productColumns

	id := uuid.New()
	p, err := scanProduct(r.pool.QueryRow(ctx, query,
		id, form.SupplierName, form.ProductName, form.Location, pictureURL, form.Description))
	if err != nil {
		r.logger.Error().Err(err).Str("product_name", form.ProductName).Msg("failed to insert product")
		return nil, fmt.Errorf("failed to insert product: %w", mapError(err))
	}

	r.logger.Debug().Str("product_id", p.ID.String()).Msg("product created")

	return p, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", mapError(err))
	}

	return p, nil
}

// GetAll retrieves all products, newest first.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", mapError(err))
	}
	defer rows.Close()

	return collectProducts(rows, r.logger)
}

// Update replaces the product's fields and refreshes updated_at.
func (r *productRepository) Update(ctx context.Context, id uuid.UUID, form *model.ProductForm, pictureURL string) (*model.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		UPDATE products
		SET supplier_name = $2, product_name = $3, location = $4, picture_url = $5,
		    description = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := scanProduct(r.pool.QueryRow(ctx, query,
		id, form.SupplierName, form.ProductName, form.Location, pictureURL, form.Description))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", mapError(err))
	}

	return p, nil
}

// Search finds products whose name or supplier matches the query.
func (r *productRepository) Search(ctx context.Context, query string) ([]model.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	sql := `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_name ILIKE $1 OR supplier_name ILIKE $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, sql, "%"+query+"%")
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", mapError(err))
	}
	defer rows.Close()

	return collectProducts(rows, r.logger)
}

func collectProducts(rows pgx.Rows, logger zerolog.Logger) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", mapError(err))
	}

	return products, nil
}
