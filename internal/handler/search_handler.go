package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"kitchen-guide/internal/model"
	"kitchen-guide/internal/service"
)

// SearchHandler queries products and preparations together.
type SearchHandler struct {
	products     service.ProductService
	preparations service.PreparationService
	logger       zerolog.Logger
}

// SearchResponse is the combined search result payload.
type SearchResponse struct {
	Query        string              `json:"query"`
	Products     []model.Product     `json:"products"`
	Preparations []model.Preparation `json:"preparations"`
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(products service.ProductService, preparations service.PreparationService, logger zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		products:     products,
		preparations: preparations,
		logger:       logger.With().Str("handler", "search").Logger(),
	}
}

// Search handles GET /search?q= requests.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	query := r.URL.Query().Get("q")

	products, err := h.products.Search(r.Context(), query)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	preparations, err := h.preparations.Search(r.Context(), query)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:        query,
		Products:     products,
		Preparations: preparations,
	})
}
