// Package app contains the application setup for the shoplist server.
package app

import (
	"log/slog"
	"net/http"

	"shoplist/internal/config"
	"shoplist/internal/service"
	"shoplist/internal/store"
	"shoplist/internal/transport/rest"
	"shoplist/pkg/server"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	ItemService service.ItemService
	Logger      *slog.Logger
}

func SetupDependencies(dbPool *pgxpool.Pool, logger *slog.Logger) *Dependencies {
	iService := service.NewService(store.NewPgStore(dbPool))

	return &Dependencies{
		ItemService: iService,
		Logger:      logger,
	}
}

// SetupHttpHandler initializes the router and routes for the shoplist API.
// Also used by tests to build the full handler chain without a listener.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the shoplist API.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	itemHandler := rest.NewHandler(deps.ItemService, deps.Logger)
	itemHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures the HTTP server for the shoplist API.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
