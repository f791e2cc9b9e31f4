package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	producthandler "shopeasy/internal/handlers/product"
	"shopeasy/internal/models"
	"shopeasy/internal/routes"
	productservice "shopeasy/internal/service/product"
	"shopeasy/pkg/middleware"
)

type ProductStorage interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, input models.ProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type App struct {
	log            *slog.Logger
	port           int
	allowedOrigins []string
	storage        ProductStorage
}

func New(log *slog.Logger, port int, allowedOrigins []string, storage ProductStorage) *App {
	return &App{
		log:            log,
		port:           port,
		allowedOrigins: allowedOrigins,
		storage:        storage,
	}
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

func (a *App) Run() error {
	const op = "app.Run"

	service := productservice.New(a.log, a.storage)
	handler := producthandler.New(a.log, service)

	mux := http.NewServeMux()
	routes.New(handler).Register(mux)

	opts := middleware.DefaultCORSOptions()
	if len(a.allowedOrigins) > 0 {
		opts.AllowedOrigins = a.allowedOrigins
	}
	cors := middleware.CORS(opts)

	a.log.Info("Starting HTTP server", slog.Int("port", a.port))

	if err := http.ListenAndServe(
		fmt.Sprintf(":%d", a.port),
		cors(mux),
	); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
