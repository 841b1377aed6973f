// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/service"
	"github.com/abgdnv/gocatalog/internal/validation"
	"github.com/abgdnv/gocatalog/pkg/web"
	"github.com/go-chi/chi/v5"
)

const (
	defaultLimit  = 10
	defaultOffset = 0

	msgNotFound = "product not found"
	msgDeleted  = "product deleted successfully"
)

type Handler struct {
	service  service.ProductService
	validate *validation.Validator
	logger   *slog.Logger
}

// NewHandler creates a new Handler with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validation.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the catalog.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Patch("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "ID", id)
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// FindAll retrieves a page of products. Missing or invalid paging parameters fall back to defaults.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	limit := web.QueryGtOrDefault(r, "limit", 0, defaultLimit)
	offset := web.QueryGteOrDefault(r, "offset", 0, defaultOffset)

	h.logger.DebugContext(r.Context(), "Received request to find all products", "limit", limit, "offset", offset)
	list, err := h.service.FindAll(r.Context(), offset, limit)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := decode[service.ProductCreateDto](h, w, r)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to create product", "name", input.Name)

	created, err := h.service.Create(r.Context(), *input)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

// Update applies a partial update to a product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	input, ok := decode[service.ProductUpdateDto](h, w, r)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update product", "ID", id)

	updated, err := h.service.Update(r.Context(), id, *input)
	if err != nil {
		h.respondServiceError(w, r, err, "ID", id)
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to delete product", "ID", id)

	if _, err := h.service.DeleteByID(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err, "ID", id)
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.RespondJSON(w, h.logger, http.StatusOK, msgDeleted)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// decode reads the request body and validates it into a T.
// On failure the 400 response has already been written.
func decode[T any](h *Handler, w http.ResponseWriter, r *http.Request) (*T, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Error reading request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	input, err := validation.Validate[T](h.validate, body)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Validation errors occurred", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return input, true
}

// respondServiceError maps a service error to its HTTP status.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, attrs ...any) {
	switch {
	case errors.Is(err, perrors.ErrProductNotFound):
		h.logger.WarnContext(r.Context(), "Product not found", attrs...)
		web.RespondError(w, h.logger, http.StatusNotFound, msgNotFound)
	default:
		h.logger.ErrorContext(r.Context(), "Error processing product request", append(attrs, "error", err)...)
		web.RespondError(w, h.logger, http.StatusInternalServerError, err.Error())
	}
}
