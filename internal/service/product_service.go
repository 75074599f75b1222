package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"kitchen-guide/internal/model"
	"kitchen-guide/internal/repository"
	"kitchen-guide/internal/storage"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	store       storage.Store
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, store storage.Store, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		store:       store,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Create validates the form, stores the optional image, and inserts the product.
func (s *productService) Create(ctx context.Context, form *model.ProductForm, image *ImageUpload) (*model.Product, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	pictureURL, err := saveImage(ctx, s.store, image)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.Create(ctx, form, pictureURL)
	if err != nil {
		s.logger.Error().Err(err).Str("product_name", form.ProductName).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("product_name", product.ProductName).
		Msg("product created")

	return product, nil
}

// Get retrieves a single product by ID.
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// List retrieves all products, newest first.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// Update validates the form and replaces the product's fields, keeping the
// existing picture when no new image is attached.
func (s *productService) Update(ctx context.Context, id uuid.UUID, form *model.ProductForm, image *ImageUpload) (*model.Product, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if existing == nil {
		return nil, model.ErrProductNotFound
	}

	pictureURL := existing.PictureURL
	if image != nil {
		pictureURL, err = saveImage(ctx, s.store, image)
		if err != nil {
			return nil, err
		}
	}

	product, err := s.productRepo.Update(ctx, id, form, pictureURL)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Search finds products by name or supplier.
func (s *productService) Search(ctx context.Context, query string) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}

	products, err := s.productRepo.Search(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

// saveImage stores an optional upload and returns its reference URL, or an
// empty string when no image was attached.
func saveImage(ctx context.Context, store storage.Store, image *ImageUpload) (string, error) {
	if image == nil || len(image.Data) == 0 {
		return "", nil
	}
	return store.Save(ctx, image.Data, image.Filename)
}
