package handler

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"kitchen-guide/internal/model"
	"kitchen-guide/internal/service"
)

// PreparationHandler handles preparation-related HTTP requests.
type PreparationHandler struct {
	service   service.PreparationService
	maxUpload int64
	logger    zerolog.Logger
}

// NewPreparationHandler creates a new preparation handler.
func NewPreparationHandler(service service.PreparationService, maxUpload int64, logger zerolog.Logger) *PreparationHandler {
	return &PreparationHandler{
		service:   service,
		maxUpload: maxUpload,
		logger:    logger.With().Str("handler", "preparation").Logger(),
	}
}

// List handles GET /preparations requests, returning preparations newest first.
func (h *PreparationHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	preparations, err := h.service.List(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, preparations)
}

// NewForm handles GET /preparation/new requests.
func (h *PreparationHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeHTML(w, http.StatusOK, newPreparationFormHTML)
}

// Create handles POST /preparation multipart requests, including per-step
// description and image fields, and redirects to the new detail page.
func (h *PreparationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	form, image, steps, err := h.parseForm(w, r)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	prep, err := h.service.Create(r.Context(), form, image, steps)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	http.Redirect(w, r, "/preparation/"+prep.ID.String(), http.StatusSeeOther)
}

// GetByID handles GET /preparation/{id} requests, returning the
// preparation with its steps in ascending order.
func (h *PreparationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, ok := parseIDPath(r.URL.Path, "/preparation/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid preparation ID", h.logger)
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// EditForm handles GET /preparation/{id}/edit requests, serving the edit
// form prefilled with the preparation's current values.
func (h *PreparationHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/edit")
	id, ok := parseIDPath(path, "/preparation/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid preparation ID", h.logger)
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeHTML(w, http.StatusOK, renderPreparationEditForm(&detail.Preparation))
}

// Update handles POST /preparation/{id}/update requests.
func (h *PreparationHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/update")
	id, ok := parseIDPath(path, "/preparation/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid preparation ID", h.logger)
		return
	}

	form, image, _, err := h.parseForm(w, r)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	prep, err := h.service.Update(r.Context(), id, form, image)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	http.Redirect(w, r, "/preparation/"+prep.ID.String(), http.StatusSeeOther)
}

// AddStep handles POST /preparation/{id}/step requests, appending one
// step with an explicit number. A taken number is a conflict.
func (h *PreparationHandler) AddStep(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/step")
	id, ok := parseIDPath(path, "/preparation/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid preparation ID", h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		if isBodyTooLarge(err) {
			writeDomainError(w, model.ErrPayloadTooLarge, h.logger)
			return
		}
		writeDomainError(w, model.NewValidationError("Invalid multipart form data"), h.logger)
		return
	}

	stepNumber, err := strconv.Atoi(r.FormValue("step_number"))
	if err != nil {
		writeDomainError(w, model.NewValidationError("Step number must be a positive integer"), h.logger)
		return
	}

	image, err := readFile(r, "picture")
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if _, err := h.service.AddStep(r.Context(), id, stepNumber, r.FormValue("description"), image); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	http.Redirect(w, r, "/preparation/"+id.String(), http.StatusSeeOther)
}

// Delete handles POST /preparation/{id}/delete requests. Steps are
// removed along with the preparation.
func (h *PreparationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/delete")
	id, ok := parseIDPath(path, "/preparation/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid preparation ID", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	http.Redirect(w, r, "/preparations", http.StatusSeeOther)
}

// parseForm extracts the preparation fields, the optional main picture,
// and any step_description_N / step_image_N pairs from a multipart
// request. Steps are returned in ascending field-number order; the
// service renumbers them sequentially.
func (h *PreparationHandler) parseForm(w http.ResponseWriter, r *http.Request) (*model.PreparationForm, *service.ImageUpload, []model.StepInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		if isBodyTooLarge(err) {
			return nil, nil, nil, model.ErrPayloadTooLarge
		}
		return nil, nil, nil, model.NewValidationError("Invalid multipart form data")
	}

	form := &model.PreparationForm{
		Name:     r.FormValue("name"),
		Category: model.Category(r.FormValue("category")),
		Shift:    model.Shift(r.FormValue("shift")),
		Location: r.FormValue("location"),
		Steps:    r.FormValue("steps"),
	}

	image, err := readFile(r, "picture")
	if err != nil {
		return nil, nil, nil, err
	}

	steps, err := parseStepFields(r)
	if err != nil {
		return nil, nil, nil, err
	}

	return form, image, steps, nil
}

// parseStepFields collects the numbered step fields from the parsed
// multipart form.
func parseStepFields(r *http.Request) ([]model.StepInput, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	byNumber := make(map[int]model.StepInput)
	var numbers []int

	for field, values := range r.MultipartForm.Value {
		num, ok := stepFieldNumber(field, "step_description_")
		if !ok || len(values) == 0 {
			continue
		}
		description := strings.TrimSpace(values[0])
		if description == "" {
			continue
		}
		byNumber[num] = model.StepInput{Description: description}
		numbers = append(numbers, num)
	}

	for field := range r.MultipartForm.File {
		num, ok := stepFieldNumber(field, "step_image_")
		if !ok {
			continue
		}
		step, exists := byNumber[num]
		if !exists {
			// Image without a description is ignored, matching the
			// description-driven step model.
			continue
		}

		upload, err := readFile(r, field)
		if err != nil {
			return nil, err
		}
		if upload != nil {
			step.ImageData = upload.Data
			step.ImageName = upload.Filename
			byNumber[num] = step
		}
	}

	sort.Ints(numbers)

	steps := make([]model.StepInput, 0, len(numbers))
	for _, num := range numbers {
		steps = append(steps, byNumber[num])
	}

	return steps, nil
}

// stepFieldNumber extracts the numeric suffix of a step form field.
func stepFieldNumber(field, prefix string) (int, bool) {
	if !strings.HasPrefix(field, prefix) {
		return 0, false
	}
	num, err := strconv.Atoi(strings.TrimPrefix(field, prefix))
	if err != nil || num < 1 {
		return 0, false
	}
	return num, true
}
