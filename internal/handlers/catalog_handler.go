package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/menu-builder/internal/models"
	"github.com/Lixing-Zhang/menu-builder/internal/repository"
	"github.com/Lixing-Zhang/menu-builder/internal/service"
	"github.com/go-chi/chi/v5"
)

// CatalogHandler serves the browse screen
type CatalogHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service *service.MenuService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger,
	}
}

// ListCatalog handles GET /api/catalog?course=
// Returns the predefined dishes, each flagged when a same-named dish is on the menu
func (h *CatalogHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("course")

	view, err := h.service.Browse(r.Context(), filter)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCourse) {
			h.logger.Warn("invalid course filter", "course", filter)
			WriteError(w, http.StatusBadRequest, "Invalid course", h.logger)
			return
		}

		h.logger.Error("failed to browse catalog", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, view, h.logger)
}

// AddFromCatalog handles POST /api/catalog/{dishId}
// - 201: dish added to the menu
// - 404: dish not in the catalog
// - 409: a dish with the same name is already on the menu
func (h *CatalogHandler) AddFromCatalog(w http.ResponseWriter, r *http.Request) {
	dishID := chi.URLParam(r, "dishId")

	item, err := h.service.AddFromCatalog(r.Context(), dishID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDishNotFound):
			h.logger.Info("dish not found", "dishId", dishID)
			WriteError(w, http.StatusNotFound, "Dish not found", h.logger)
		case errors.Is(err, service.ErrAlreadyAdded):
			h.logger.Info("dish already on menu", "dishId", dishID)
			WriteError(w, http.StatusConflict, "Dish is already on the menu", h.logger)
		default:
			h.logger.Error("failed to add dish", "dishId", dishID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	h.logger.Info("catalog dish added", "dishId", dishID, "item_id", item.ID, "name", item.Name)
	WriteJSON(w, http.StatusCreated, item, h.logger)
}
