// Package rest provides HTTP handlers for shopping item operations.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	serrors "shoplist/internal/errors"
	"shoplist/internal/service"
	"shoplist/pkg/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

const (
	msgItemNotFound    = "Item not found"
	msgItemDeleted     = "Item deleted successfully"
	msgFieldsRequired  = "Name and quantity are required"
	msgInvalidBody     = "Invalid request body"
	msgInternalFailure = "Internal server error"
)

type Handler struct {
	service  service.ItemService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the items API with the provided service.
func NewHandler(service service.ItemService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the shopping list API.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/items", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/api/health", h.HealthCheck)
}

// FindAll returns the full item list.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving item list", "error", err)
		web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgInternalFailure)
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved item list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindByID retrieves an item by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, serrors.ErrItemNotFound) {
			mLogger.WarnContext(r.Context(), "Item not found", "ID", id)
			web.RespondMessage(w, mLogger, http.StatusNotFound, msgItemNotFound)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving item", "ID", id, "error", err)
		web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgInternalFailure)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Create handles the creation of a new item. Name and quantity must both
// be present in the body; beyond presence the payload is accepted as-is.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var createDto service.ItemCreateDto
	if err := json.NewDecoder(r.Body).Decode(&createDto); err != nil {
		mLogger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondMessage(w, mLogger, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := h.validate.Struct(createDto); err != nil {
		mLogger.WarnContext(r.Context(), "Create payload failed validation", "error", err)
		web.RespondMessage(w, mLogger, http.StatusBadRequest, msgFieldsRequired)
		return
	}

	created, err := h.service.Create(r.Context(), createDto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating item", "error", err)
		web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgInternalFailure)
		return
	}
	mLogger.InfoContext(r.Context(), "Item created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// Update applies a partial update to an existing item.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var updateDto service.ItemUpdateDto
	if err := json.NewDecoder(r.Body).Decode(&updateDto); err != nil {
		mLogger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondMessage(w, mLogger, http.StatusBadRequest, msgInvalidBody)
		return
	}

	updated, err := h.service.Update(r.Context(), id, updateDto)
	if err != nil {
		if errors.Is(err, serrors.ErrItemNotFound) {
			mLogger.WarnContext(r.Context(), "Item not found for update", "ID", id)
			web.RespondMessage(w, mLogger, http.StatusNotFound, msgItemNotFound)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating item", "ID", id, "error", err)
		web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgInternalFailure)
		return
	}
	mLogger.InfoContext(r.Context(), "Item updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID deletes an item and echoes the removed record.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	deleted, err := h.service.DeleteByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, serrors.ErrItemNotFound) {
			mLogger.WarnContext(r.Context(), "Item not found for deletion", "ID", id)
			web.RespondMessage(w, mLogger, http.StatusNotFound, msgItemNotFound)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting item", "ID", id, "error", err)
		web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgInternalFailure)
		return
	}
	mLogger.InfoContext(r.Context(), "Item deleted successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{
		"message": msgItemDeleted,
		"item":    deleted,
	})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
