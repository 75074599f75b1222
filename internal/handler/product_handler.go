package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"kitchen-guide/internal/model"
	"kitchen-guide/internal/service"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service   service.ProductService
	maxUpload int64
	logger    zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, maxUpload int64, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service:   service,
		maxUpload: maxUpload,
		logger:    logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET / requests, returning products newest first.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	products, err := h.service.List(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// NewForm handles GET /product/new requests.
func (h *ProductHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeHTML(w, http.StatusOK, newProductFormHTML)
}

// Create handles POST /product multipart requests and redirects to the
// new product's detail page.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	form, image, err := h.parseForm(w, r)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), form, image)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	http.Redirect(w, r, "/product/"+product.ID.String(), http.StatusSeeOther)
}

// GetByID handles GET /product/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, ok := parseIDPath(r.URL.Path, "/product/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// EditForm handles GET /product/{id}/edit requests, serving the edit form
// prefilled with the product's current values.
func (h *ProductHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/edit")
	id, ok := parseIDPath(path, "/product/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeHTML(w, http.StatusOK, renderProductEditForm(product))
}

// Update handles POST /product/{id}/update requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/update")
	id, ok := parseIDPath(path, "/product/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	form, image, err := h.parseForm(w, r)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, form, image)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	http.Redirect(w, r, "/product/"+product.ID.String(), http.StatusSeeOther)
}

// parseForm extracts the product fields and the optional picture from a
// multipart request, enforcing the upload size limit before reading.
func (h *ProductHandler) parseForm(w http.ResponseWriter, r *http.Request) (*model.ProductForm, *service.ImageUpload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		if isBodyTooLarge(err) {
			return nil, nil, model.ErrPayloadTooLarge
		}
		return nil, nil, model.NewValidationError("Invalid multipart form data")
	}

	form := &model.ProductForm{
		SupplierName: r.FormValue("supplier_name"),
		ProductName:  r.FormValue("product_name"),
		Location:     r.FormValue("location"),
		Description:  r.FormValue("description"),
	}

	image, err := readFile(r, "picture")
	if err != nil {
		return nil, nil, err
	}

	return form, image, nil
}

// readFile reads an optional uploaded file from the multipart form.
func readFile(r *http.Request, field string) (*service.ImageUpload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, model.NewValidationError("Invalid file upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, model.NewValidationError("Failed to read uploaded file")
	}

	if len(data) == 0 {
		return nil, nil
	}

	return &service.ImageUpload{Data: data, Filename: header.Filename}, nil
}

// isBodyTooLarge reports whether the error came from exceeding the
// MaxBytesReader limit.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// parseIDPath extracts a UUID path segment following the given prefix.
func parseIDPath(path, prefix string) (uuid.UUID, bool) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
