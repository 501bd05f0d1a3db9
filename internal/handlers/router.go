package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/menu-builder/internal/config"
	"github.com/Lixing-Zhang/menu-builder/internal/events"
	"github.com/Lixing-Zhang/menu-builder/internal/middleware"
	"github.com/Lixing-Zhang/menu-builder/internal/repository"
	"github.com/Lixing-Zhang/menu-builder/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDeps are the shared components every route is served from
type RouterDeps struct {
	Service     *service.MenuService
	Store       repository.MenuStore
	Broadcaster *events.Broadcaster
	Auth        config.AuthConfig
	CORS        config.CORSConfig
	Logger      *slog.Logger
}

// NewRouter wires HTTP routes to the menu service
func NewRouter(d RouterDeps) http.Handler {
	healthHandler := NewHealthHandler(d.Store, d.Logger)
	catalogHandler := NewCatalogHandler(d.Service, d.Logger)
	menuHandler := NewMenuHandler(d.Service, d.Logger)
	eventsHandler := NewEventsHandler(d.Store, d.Broadcaster, d.Logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(d.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		// Change feeds are long-lived and stay outside the request timeout
		r.Get("/menu/events", eventsHandler.StreamSSE)
		r.Get("/menu/ws", eventsHandler.ServeWebSocket)

		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(60 * time.Second))

			// Browse screen
			r.Get("/catalog", catalogHandler.ListCatalog)

			// Categorized list
			r.Get("/menu", menuHandler.ListItems)
			r.Get("/menu/sections", menuHandler.Sections)

			r.Group(func(r chi.Router) {
				r.Use(middleware.APIKeyAuth(d.Auth))

				r.Post("/catalog/{dishId}", catalogHandler.AddFromCatalog)
				r.Post("/menu", menuHandler.CreateDish)
				r.Delete("/menu/{itemId}", menuHandler.RemoveItem)
			})
		})
	})

	return r
}
