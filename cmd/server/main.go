package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/menu-builder/internal/catalog"
	"github.com/Lixing-Zhang/menu-builder/internal/config"
	"github.com/Lixing-Zhang/menu-builder/internal/events"
	"github.com/Lixing-Zhang/menu-builder/internal/handlers"
	"github.com/Lixing-Zhang/menu-builder/internal/models"
	"github.com/Lixing-Zhang/menu-builder/internal/repository"
	"github.com/Lixing-Zhang/menu-builder/internal/service"
	"github.com/Lixing-Zhang/menu-builder/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine, the process environment still applies
	envErr := godotenv.Load()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	if envErr != nil {
		log.Debug("no .env file loaded", "error", envErr)
	}

	log.Info("starting menu builder server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"auth_enabled", cfg.Auth.Enabled,
	)

	ctx := context.Background()

	dishes, err := loadCatalog(ctx, cfg.Catalog, log)
	if err != nil {
		log.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	// The single menu store every route reads and mutates
	menuStore := repository.NewInMemoryMenuStore()
	catalogRepo := repository.NewInMemoryCatalogRepository(dishes)
	menuService := service.NewMenuService(menuStore, catalogRepo)

	broadcaster := events.NewBroadcaster(menuStore, cfg.Events.BufferSize, log)

	menuStore.Subscribe(func(ev repository.Event) {
		log.Debug("menu changed", "type", ev.Type, "item_id", ev.Item.ID, "total", ev.Total, "version", ev.Version)
	})

	r := handlers.NewRouter(handlers.RouterDeps{
		Service:     menuService,
		Store:       menuStore,
		Broadcaster: broadcaster,
		Auth:        cfg.Auth,
		CORS:        cfg.CORS,
		Logger:      log,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Close feeds first so streaming handlers return and Shutdown can finish
	broadcaster.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// loadCatalog returns the built-in dishes unless override sources are configured
func loadCatalog(ctx context.Context, cfg config.CatalogConfig, log *slog.Logger) ([]models.Dish, error) {
	if len(cfg.Sources) == 0 {
		dishes := catalog.Seed()
		log.Info("using built-in catalog", "dishes", len(dishes))
		return dishes, nil
	}

	dishes, err := catalog.NewLoader().Load(ctx, cfg.Sources)
	if err != nil {
		return nil, err
	}

	log.Info("catalog loaded", "sources", len(cfg.Sources), "dishes", len(dishes))
	return dishes, nil
}
