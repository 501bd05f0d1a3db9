package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// menuCounter is the slice of the menu store the health check reports on
type menuCounter interface {
	GetTotalItems() int
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	menu   menuCounter
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(menu menuCounter, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		menu:   menu,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	MenuItems int       `json:"menuItems"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
		MenuItems: h.menu.GetTotalItems(),
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
