package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kitchen-guide/internal/model"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, form *model.ProductForm, pictureURL string) (*model.Product, error) {
	args := m.Called(ctx, form, pictureURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id uuid.UUID, form *model.ProductForm, pictureURL string) (*model.Product, error) {
	args := m.Called(ctx, id, form, pictureURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, query string) ([]model.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

// MockStore is a mock implementation of storage.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, content []byte, originalFilename string) (string, error) {
	args := m.Called(ctx, content, originalFilename)
	return args.String(0), args.Error(1)
}

func validProductForm() *model.ProductForm {
	return &model.ProductForm{
		SupplierName: "Harvest Co",
		ProductName:  "Sourdough Loaf",
		Location:     "Dry store, shelf 2",
		Description:  "Daily delivery",
	}
}

func TestProductService_Create(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	testProduct := &model.Product{
		ID:           uuid.New(),
		SupplierName: "Harvest Co",
		ProductName:  "Sourdough Loaf",
		CreatedAt:    time.Now(),
	}

	t.Run("Success without image", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockStore)
		service := NewProductService(mockRepo, mockStore, logger)

		form := validProductForm()
		mockRepo.On("Create", ctx, form, "").Return(testProduct, nil)

		product, err := service.Create(ctx, form, nil)

		require.NoError(t, err)
		assert.Equal(t, testProduct, product)
		mockRepo.AssertExpectations(t)
		mockStore.AssertNotCalled(t, "Save")
	})

	t.Run("Success with image", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockStore)
		service := NewProductService(mockRepo, mockStore, logger)

		form := validProductForm()
		image := &ImageUpload{Data: []byte("bytes"), Filename: "loaf.jpg"}
		mockStore.On("Save", ctx, image.Data, "loaf.jpg").Return("/static/uploads/abc.jpg", nil)
		mockRepo.On("Create", ctx, form, "/static/uploads/abc.jpg").Return(testProduct, nil)

		product, err := service.Create(ctx, form, image)

		require.NoError(t, err)
		assert.Equal(t, testProduct, product)
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("Validation error skips storage and repository", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockStore)
		service := NewProductService(mockRepo, mockStore, logger)

		form := validProductForm()
		form.ProductName = ""

		product, err := service.Create(ctx, form, nil)

		require.Error(t, err)
		assert.Nil(t, product)
		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
		mockRepo.AssertNotCalled(t, "Create")
		mockStore.AssertNotCalled(t, "Save")
	})

	t.Run("Storage error skips repository", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockStore)
		service := NewProductService(mockRepo, mockStore, logger)

		form := validProductForm()
		image := &ImageUpload{Data: []byte("gif bytes"), Filename: "loaf.gif"}
		mockStore.On("Save", ctx, image.Data, "loaf.gif").Return("", model.ErrUnsupportedMediaType)

		product, err := service.Create(ctx, form, image)

		require.ErrorIs(t, err, model.ErrUnsupportedMediaType)
		assert.Nil(t, product)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockStore)
		service := NewProductService(mockRepo, mockStore, logger)

		form := validProductForm()
		mockRepo.On("Create", ctx, form, "").Return(nil, errors.New("database error"))

		product, err := service.Create(ctx, form, nil)

		require.Error(t, err)
		assert.Nil(t, product)
	})
}

func TestProductService_Get(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	testProduct := &model.Product{ID: uuid.New(), ProductName: "Sourdough Loaf"}

	tests := []struct {
		name        string
		mockReturn  *model.Product
		mockError   error
		expectedErr error
	}{
		{name: "Success", mockReturn: testProduct},
		{name: "Not found", mockReturn: nil, expectedErr: model.ErrProductNotFound},
		{name: "Repository error", mockReturn: nil, mockError: errors.New("database error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := NewProductService(mockRepo, new(MockStore), logger)

			id := uuid.New()
			mockRepo.On("GetByID", ctx, id).Return(tt.mockReturn, tt.mockError)

			product, err := service.Get(ctx, id)

			if tt.mockError != nil {
				require.Error(t, err)
				assert.Nil(t, product)
			} else if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, product)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockReturn, product)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_Update(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	existing := &model.Product{
		ID:         uuid.New(),
		PictureURL: "/static/uploads/old.jpg",
	}

	t.Run("Keeps existing picture when no image attached", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockStore)
		service := NewProductService(mockRepo, mockStore, logger)

		form := validProductForm()
		updated := &model.Product{ID: existing.ID, PictureURL: existing.PictureURL}
		mockRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
		mockRepo.On("Update", ctx, existing.ID, form, "/static/uploads/old.jpg").Return(updated, nil)

		product, err := service.Update(ctx, existing.ID, form, nil)

		require.NoError(t, err)
		assert.Equal(t, "/static/uploads/old.jpg", product.PictureURL)
		mockStore.AssertNotCalled(t, "Save")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Replaces picture when image attached", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockStore)
		service := NewProductService(mockRepo, mockStore, logger)

		form := validProductForm()
		image := &ImageUpload{Data: []byte("bytes"), Filename: "new.png"}
		updated := &model.Product{ID: existing.ID, PictureURL: "/static/uploads/new.png"}
		mockRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
		mockStore.On("Save", ctx, image.Data, "new.png").Return("/static/uploads/new.png", nil)
		mockRepo.On("Update", ctx, existing.ID, form, "/static/uploads/new.png").Return(updated, nil)

		product, err := service.Update(ctx, existing.ID, form, image)

		require.NoError(t, err)
		assert.Equal(t, "/static/uploads/new.png", product.PictureURL)
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo, new(MockStore), logger)

		id := uuid.New()
		mockRepo.On("GetByID", ctx, id).Return(nil, nil)

		product, err := service.Update(ctx, id, validProductForm(), nil)

		require.ErrorIs(t, err, model.ErrProductNotFound)
		assert.Nil(t, product)
	})
}

func TestProductService_Search(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	testProducts := []model.Product{
		{ID: uuid.New(), ProductName: "Sourdough Loaf"},
	}

	t.Run("Delegates query to repository", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo, new(MockStore), logger)

		mockRepo.On("Search", ctx, "sour").Return(testProducts, nil)

		products, err := service.Search(ctx, "sour")

		require.NoError(t, err)
		assert.Equal(t, testProducts, products)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Blank query lists everything", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo, new(MockStore), logger)

		mockRepo.On("GetAll", ctx).Return(testProducts, nil)

		products, err := service.Search(ctx, "   ")

		require.NoError(t, err)
		assert.Equal(t, testProducts, products)
		mockRepo.AssertNotCalled(t, "Search")
	})
}
