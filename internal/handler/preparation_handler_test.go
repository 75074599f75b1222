package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kitchen-guide/internal/model"
	"kitchen-guide/internal/service"
)

// MockPreparationService is a mock implementation of PreparationService.
type MockPreparationService struct {
	mock.Mock
}

func (m *MockPreparationService) Create(ctx context.Context, form *model.PreparationForm, image *service.ImageUpload, steps []model.StepInput) (*model.Preparation, error) {
	args := m.Called(ctx, form, image, steps)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Preparation), args.Error(1)
}

func (m *MockPreparationService) Get(ctx context.Context, id uuid.UUID) (*service.PreparationDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PreparationDetail), args.Error(1)
}

func (m *MockPreparationService) List(ctx context.Context) ([]model.Preparation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Preparation), args.Error(1)
}

func (m *MockPreparationService) Update(ctx context.Context, id uuid.UUID, form *model.PreparationForm, image *service.ImageUpload) (*model.Preparation, error) {
	args := m.Called(ctx, id, form, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Preparation), args.Error(1)
}

func (m *MockPreparationService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPreparationService) AddStep(ctx context.Context, preparationID uuid.UUID, stepNumber int, description string, image *service.ImageUpload) (*model.PreparationStep, error) {
	args := m.Called(ctx, preparationID, stepNumber, description, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PreparationStep), args.Error(1)
}

func (m *MockPreparationService) Search(ctx context.Context, query string) ([]model.Preparation, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Preparation), args.Error(1)
}

func preparationFields() map[string]string {
	return map[string]string{
		"name":     "Diced Pumpkin",
		"category": "vegetable",
		"shift":    "lunch",
		"location": "Cold room A",
		"steps":    "Peel, deseed, dice",
	}
}

func TestPreparationHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success redirects to detail page", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		created := &model.Preparation{ID: uuid.New(), Name: "Diced Pumpkin"}
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(form *model.PreparationForm) bool {
			return form.Name == "Diced Pumpkin" &&
				form.Category == model.CategoryVegetable &&
				form.Shift == model.ShiftLunch
		}), (*service.ImageUpload)(nil), mock.Anything).Return(created, nil)

		req := multipartRequest(t, "/preparation", preparationFields())
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/preparation/"+created.ID.String(), rec.Header().Get("Location"))
		mockService.AssertExpectations(t)
	})

	t.Run("Step fields arrive in ascending order", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		created := &model.Preparation{ID: uuid.New()}
		mockService.On("Create", mock.Anything, mock.Anything, (*service.ImageUpload)(nil),
			mock.MatchedBy(func(steps []model.StepInput) bool {
				return len(steps) == 3 &&
					steps[0].Description == "Peel" &&
					steps[1].Description == "Deseed" &&
					steps[2].Description == "Dice"
			})).Return(created, nil)

		fields := preparationFields()
		fields["step_description_3"] = "Dice"
		fields["step_description_1"] = "Peel"
		fields["step_description_2"] = "Deseed"
		req := multipartRequest(t, "/preparation", fields)
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Blank step descriptions are skipped", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		created := &model.Preparation{ID: uuid.New()}
		mockService.On("Create", mock.Anything, mock.Anything, (*service.ImageUpload)(nil),
			mock.MatchedBy(func(steps []model.StepInput) bool {
				return len(steps) == 1 && steps[0].Description == "Dice"
			})).Return(created, nil)

		fields := preparationFields()
		fields["step_description_1"] = "   "
		fields["step_description_2"] = "Dice"
		req := multipartRequest(t, "/preparation", fields)
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Step image is attached to its step", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		created := &model.Preparation{ID: uuid.New()}
		mockService.On("Create", mock.Anything, mock.Anything, (*service.ImageUpload)(nil),
			mock.MatchedBy(func(steps []model.StepInput) bool {
				return len(steps) == 1 &&
					steps[0].ImageName == "peel.jpg" &&
					string(steps[0].ImageData) == "step image"
			})).Return(created, nil)

		fields := preparationFields()
		fields["step_description_1"] = "Peel"
		req := multipartRequest(t, "/preparation", fields,
			fileField{field: "step_image_1", filename: "peel.jpg", content: []byte("step image")})
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Image without a description is ignored", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		created := &model.Preparation{ID: uuid.New()}
		mockService.On("Create", mock.Anything, mock.Anything, (*service.ImageUpload)(nil),
			mock.MatchedBy(func(steps []model.StepInput) bool {
				return len(steps) == 0
			})).Return(created, nil)

		req := multipartRequest(t, "/preparation", preparationFields(),
			fileField{field: "step_image_5", filename: "orphan.jpg", content: []byte("orphan")})
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Invalid category returns 400", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		mockService.On("Create", mock.Anything, mock.Anything, (*service.ImageUpload)(nil), mock.Anything).
			Return(nil, model.NewValidationError("Invalid preparation category"))

		fields := preparationFields()
		fields["category"] = "dessert"
		req := multipartRequest(t, "/preparation", fields)
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPreparationHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success includes steps", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		id := uuid.New()
		detail := &service.PreparationDetail{
			Preparation: model.Preparation{ID: id, Name: "Diced Pumpkin"},
			Steps: []model.PreparationStep{
				{StepNumber: 1, Description: "Peel"},
				{StepNumber: 2, Description: "Dice"},
			},
		}
		mockService.On("Get", mock.Anything, id).Return(detail, nil)

		req := httptest.NewRequest(http.MethodGet, "/preparation/"+id.String(), nil)
		rec := httptest.NewRecorder()

		handler.GetByID(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Diced Pumpkin")
		assert.Contains(t, rec.Body.String(), "Peel")
	})

	t.Run("Not found", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		id := uuid.New()
		mockService.On("Get", mock.Anything, id).Return(nil, model.ErrPreparationNotFound)

		req := httptest.NewRequest(http.MethodGet, "/preparation/"+id.String(), nil)
		rec := httptest.NewRecorder()

		handler.GetByID(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPreparationHandler_AddStep(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success redirects to detail page", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		id := uuid.New()
		step := &model.PreparationStep{ID: uuid.New(), PreparationID: id, StepNumber: 4}
		mockService.On("AddStep", mock.Anything, id, 4, "Garnish", (*service.ImageUpload)(nil)).
			Return(step, nil)

		req := multipartRequest(t, "/preparation/"+id.String()+"/step", map[string]string{
			"step_number": "4",
			"description": "Garnish",
		})
		rec := httptest.NewRecorder()

		handler.AddStep(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/preparation/"+id.String(), rec.Header().Get("Location"))
		mockService.AssertExpectations(t)
	})

	t.Run("Non-numeric step number returns 400", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		id := uuid.New()
		req := multipartRequest(t, "/preparation/"+id.String()+"/step", map[string]string{
			"step_number": "four",
			"description": "Garnish",
		})
		rec := httptest.NewRecorder()

		handler.AddStep(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "AddStep")
	})

	t.Run("Taken step number returns 409", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		id := uuid.New()
		mockService.On("AddStep", mock.Anything, id, 2, "Garnish", (*service.ImageUpload)(nil)).
			Return(nil, model.ErrConflict)

		req := multipartRequest(t, "/preparation/"+id.String()+"/step", map[string]string{
			"step_number": "2",
			"description": "Garnish",
		})
		rec := httptest.NewRecorder()

		handler.AddStep(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestPreparationHandler_Delete(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success redirects to listing", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		id := uuid.New()
		mockService.On("Delete", mock.Anything, id).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/preparation/"+id.String()+"/delete", nil)
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/preparations", rec.Header().Get("Location"))
	})

	t.Run("Unknown preparation returns 404", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		id := uuid.New()
		mockService.On("Delete", mock.Anything, id).Return(model.ErrPreparationNotFound)

		req := httptest.NewRequest(http.MethodPost, "/preparation/"+id.String()+"/delete", nil)
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("GET is rejected", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		req := httptest.NewRequest(http.MethodGet, "/preparation/"+uuid.NewString()+"/delete", nil)
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		mockService.AssertNotCalled(t, "Delete")
	})
}

func TestPreparationHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockPreparationService)
	handler := NewPreparationHandler(mockService, testMaxUpload, logger)

	preps := []model.Preparation{
		{ID: uuid.New(), Name: "Diced Pumpkin"},
	}
	mockService.On("List", mock.Anything).Return(preps, nil)

	req := httptest.NewRequest(http.MethodGet, "/preparations", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Diced Pumpkin")
}

func TestPreparationHandler_EditForm(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Prefills values and marks the current selections", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		id := uuid.New()
		detail := &service.PreparationDetail{
			Preparation: model.Preparation{
				ID:       id,
				Name:     "Diced Pumpkin",
				Category: model.CategoryVegetable,
				Shift:    model.ShiftLunch,
				Location: "Cold room",
				Steps:    "Peel, dice, store",
			},
		}
		mockService.On("Get", mock.Anything, id).Return(detail, nil)

		req := httptest.NewRequest(http.MethodGet, "/preparation/"+id.String()+"/edit", nil)
		rec := httptest.NewRecorder()

		handler.EditForm(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		body := rec.Body.String()
		assert.Contains(t, body, `action="/preparation/`+id.String()+`/update"`)
		assert.Contains(t, body, `value="Diced Pumpkin"`)
		assert.Contains(t, body, `value="vegetable" selected`)
		assert.Contains(t, body, `value="lunch" selected`)
		assert.NotContains(t, body, `value="meat" selected`)
		assert.NotContains(t, body, `value="breakfast" selected`)
		assert.Contains(t, body, ">Peel, dice, store</textarea>")
	})

	t.Run("Not found", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		id := uuid.New()
		mockService.On("Get", mock.Anything, id).Return(nil, model.ErrPreparationNotFound)

		req := httptest.NewRequest(http.MethodGet, "/preparation/"+id.String()+"/edit", nil)
		rec := httptest.NewRecorder()

		handler.EditForm(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Rejects POST", func(t *testing.T) {
		mockService := new(MockPreparationService)
		handler := NewPreparationHandler(mockService, testMaxUpload, logger)

		req := httptest.NewRequest(http.MethodPost, "/preparation/"+uuid.NewString()+"/edit", nil)
		rec := httptest.NewRecorder()

		handler.EditForm(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		mockService.AssertNotCalled(t, "Get")
	})
}
