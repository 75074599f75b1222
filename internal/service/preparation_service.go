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

// preparationService implements PreparationService.
type preparationService struct {
	prepRepo repository.PreparationRepository
	store    storage.Store
	logger   zerolog.Logger
}

// NewPreparationService creates a new preparation service.
func NewPreparationService(prepRepo repository.PreparationRepository, store storage.Store, logger zerolog.Logger) PreparationService {
	return &preparationService{
		prepRepo: prepRepo,
		store:    store,
		logger:   logger.With().Str("service", "preparation").Logger(),
	}
}

// Create validates the form, stores the optional images, inserts the
// preparation, and numbers its steps sequentially from one. The image
// writes are not transactional with the inserts: a failure in between can
// leave an orphaned file behind, which is accepted.
func (s *preparationService) Create(ctx context.Context, form *model.PreparationForm, image *ImageUpload, steps []model.StepInput) (*model.Preparation, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	pictureURL, err := saveImage(ctx, s.store, image)
	if err != nil {
		return nil, err
	}

	prep, err := s.prepRepo.Create(ctx, form, pictureURL)
	if err != nil {
		s.logger.Error().Err(err).Str("name", form.Name).Msg("failed to create preparation")
		return nil, fmt.Errorf("failed to create preparation: %w", err)
	}

	for i, step := range steps {
		stepPictureURL := ""
		if len(step.ImageData) > 0 {
			stepPictureURL, err = s.store.Save(ctx, step.ImageData, step.ImageName)
			if err != nil {
				return nil, err
			}
		}

		if _, err := s.prepRepo.CreateStep(ctx, prep.ID, i+1, step.Description, stepPictureURL); err != nil {
			s.logger.Error().
				Err(err).
				Str("preparation_id", prep.ID.String()).
				Int("step_number", i+1).
				Msg("failed to create preparation step")
			return nil, fmt.Errorf("failed to create preparation step: %w", err)
		}
	}

	s.logger.Info().
		Str("preparation_id", prep.ID.String()).
		Str("name", prep.Name).
		Int("steps", len(steps)).
		Msg("preparation created")

	return prep, nil
}

// Get retrieves a preparation with its steps in ascending order.
func (s *preparationService) Get(ctx context.Context, id uuid.UUID) (*PreparationDetail, error) {
	prep, err := s.prepRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("preparation_id", id.String()).Msg("failed to get preparation")
		return nil, fmt.Errorf("failed to get preparation: %w", err)
	}
	if prep == nil {
		return nil, model.ErrPreparationNotFound
	}

	steps, err := s.prepRepo.ListSteps(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("preparation_id", id.String()).Msg("failed to list preparation steps")
		return nil, fmt.Errorf("failed to list preparation steps: %w", err)
	}

	return &PreparationDetail{Preparation: *prep, Steps: steps}, nil
}

// List retrieves all preparations, newest first.
func (s *preparationService) List(ctx context.Context) ([]model.Preparation, error) {
	preparations, err := s.prepRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list preparations")
		return nil, fmt.Errorf("failed to list preparations: %w", err)
	}

	s.logger.Debug().Int("count", len(preparations)).Msg("retrieved preparations")

	return preparations, nil
}

// Update validates the form and replaces the preparation's fields, keeping
// the existing picture when no new image is attached.
func (s *preparationService) Update(ctx context.Context, id uuid.UUID, form *model.PreparationForm, image *ImageUpload) (*model.Preparation, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.prepRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get preparation: %w", err)
	}
	if existing == nil {
		return nil, model.ErrPreparationNotFound
	}

	pictureURL := existing.PictureURL
	if image != nil {
		pictureURL, err = saveImage(ctx, s.store, image)
		if err != nil {
			return nil, err
		}
	}

	prep, err := s.prepRepo.Update(ctx, id, form, pictureURL)
	if err != nil {
		s.logger.Error().Err(err).Str("preparation_id", id.String()).Msg("failed to update preparation")
		return nil, fmt.Errorf("failed to update preparation: %w", err)
	}
	if prep == nil {
		return nil, model.ErrPreparationNotFound
	}

	return prep, nil
}

// Delete removes a preparation and, by cascade, all of its steps.
func (s *preparationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.prepRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("preparation_id", id.String()).Msg("failed to delete preparation")
		return err
	}

	s.logger.Info().Str("preparation_id", id.String()).Msg("preparation deleted")

	return nil
}

// AddStep appends one step with an explicit step number.
func (s *preparationService) AddStep(ctx context.Context, preparationID uuid.UUID, stepNumber int, description string, image *ImageUpload) (*model.PreparationStep, error) {
	if stepNumber < 1 {
		return nil, model.NewValidationError("Step number must be a positive integer")
	}
	if strings.TrimSpace(description) == "" {
		return nil, model.NewValidationError("Step description cannot be empty")
	}

	prep, err := s.prepRepo.GetByID(ctx, preparationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get preparation: %w", err)
	}
	if prep == nil {
		return nil, model.ErrPreparationNotFound
	}

	pictureURL, err := saveImage(ctx, s.store, image)
	if err != nil {
		return nil, err
	}

	step, err := s.prepRepo.CreateStep(ctx, preparationID, stepNumber, description, pictureURL)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("preparation_id", preparationID.String()).
			Int("step_number", stepNumber).
			Msg("failed to add preparation step")
		return nil, err
	}

	return step, nil
}

// Search finds preparations by name.
func (s *preparationService) Search(ctx context.Context, query string) ([]model.Preparation, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}

	preparations, err := s.prepRepo.Search(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search preparations")
		return nil, fmt.Errorf("failed to search preparations: %w", err)
	}

	return preparations, nil
}
