package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/menu-builder/internal/models"
	"github.com/Lixing-Zhang/menu-builder/internal/service"
	"github.com/go-chi/chi/v5"
)

// MenuHandler serves the create dish form and the categorized menu list
type MenuHandler struct {
	service *service.MenuService
	log     *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, log *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		log:     log,
	}
}

// ItemsResponse is the body of GET /api/menu
type ItemsResponse struct {
	Total int               `json:"total"`
	Items []models.MenuItem `json:"items"`
}

// RemoveResponse is the body of DELETE /api/menu/{itemId}
type RemoveResponse struct {
	Removed bool `json:"removed"`
}

// ListItems handles GET /api/menu?course=
func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	course := r.URL.Query().Get("course")

	items, err := h.service.ListItems(course)
	if err != nil {
		h.log.Warn("invalid course filter", "course", course)
		WriteError(w, http.StatusBadRequest, "Invalid course", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, ItemsResponse{Total: len(items), Items: items}, h.log)
}

// Sections handles GET /api/menu/sections
func (h *MenuHandler) Sections(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.service.Sections(), h.log)
}

// CreateDish handles POST /api/menu
func (h *MenuHandler) CreateDish(w http.ResponseWriter, r *http.Request) {
	var form service.DishForm

	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.log.Warn("failed to decode dish form", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	item, err := h.service.CreateDish(form)
	if err != nil {
		h.log.Info("dish form rejected", "error", err)

		switch {
		case errors.Is(err, service.ErrMissingInformation):
			WriteError(w, http.StatusBadRequest, "Missing Information: Please fill in all fields.", h.log)
		case errors.Is(err, service.ErrInvalidPrice):
			WriteError(w, http.StatusBadRequest, "Invalid Price: Please enter a valid price.", h.log)
		case errors.Is(err, models.ErrInvalidCourse):
			WriteError(w, http.StatusBadRequest, "Invalid course", h.log)
		default:
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, item, h.log)
	h.log.Info("dish created", "item_id", item.ID, "name", item.Name, "course", item.Course)
}

// RemoveItem handles DELETE /api/menu/{itemId}.
// Removing an unknown id is not an error; the body reports whether anything was removed.
func (h *MenuHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	removed := h.service.RemoveItem(itemID)
	if removed {
		h.log.Info("menu item removed", "item_id", itemID)
	}

	WriteJSON(w, http.StatusOK, RemoveResponse{Removed: removed}, h.log)
}
