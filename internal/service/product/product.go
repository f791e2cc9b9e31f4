package productservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	databaseerrors "shopeasy/internal/database"
	"shopeasy/internal/models"
	serviceerrors "shopeasy/internal/service"
	"shopeasy/pkg/lib/logger/sl"
)

type ProductStorage interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, input models.ProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type ProductApiService struct {
	log     *slog.Logger
	storage ProductStorage
}

func New(log *slog.Logger, storage ProductStorage) *ProductApiService {
	return &ProductApiService{
		log:     log,
		storage: storage,
	}
}

func classifyCtx(ctx context.Context, log *slog.Logger, op string) error {
	select {
	case <-ctx.Done():
		err := ctx.Err()
		if errors.Is(err, context.Canceled) {
			log.Warn("context canceled", sl.Err(err))
			return fmt.Errorf("%s: %w", op, serviceerrors.ErrContextCanceled)
		} else if errors.Is(err, context.DeadlineExceeded) {
			log.Warn("deadline exceeded", sl.Err(err))
			return fmt.Errorf("%s: %w", op, serviceerrors.ErrDeadlineExceeded)
		} else if err != nil {
			log.Error("unexpected error", sl.Err(err))
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	default:
		return nil
	}
}

func classifyStorageErr(err error, log *slog.Logger, op string) error {
	if errors.Is(err, context.Canceled) {
		log.Warn("context canceled", sl.Err(serviceerrors.ErrContextCanceled))
		return fmt.Errorf("%s: %w", op, serviceerrors.ErrContextCanceled)
	} else if errors.Is(err, context.DeadlineExceeded) {
		log.Warn("deadline exceeded", sl.Err(serviceerrors.ErrDeadlineExceeded))
		return fmt.Errorf("%s: %w", op, serviceerrors.ErrDeadlineExceeded)
	} else if errors.Is(err, databaseerrors.ErrNotFound) {
		log.Warn("product not found", sl.Err(serviceerrors.ErrNotFound))
		return fmt.Errorf("%s: %w", op, serviceerrors.ErrNotFound)
	}

	log.Error("Storage operation failed", sl.Err(err))
	return fmt.Errorf("%s: %w", op, err)
}

func (p *ProductApiService) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "service.product.ListProducts"
	log := p.log.With("op", op)

	if err := classifyCtx(ctx, log, op); err != nil {
		return nil, err
	}

	products, err := p.storage.ListProducts(ctx)
	if err != nil {
		return nil, classifyStorageErr(err, log, op)
	}

	return products, nil
}

func (p *ProductApiService) CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	const op = "service.product.CreateProduct"
	log := p.log.With("op", op)

	if err := classifyCtx(ctx, log, op); err != nil {
		return models.Product{}, err
	}

	product, err := p.storage.CreateProduct(ctx, input)
	if err != nil {
		return models.Product{}, classifyStorageErr(err, log, op)
	}

	return product, nil
}

func (p *ProductApiService) UpdateProduct(ctx context.Context, id string, input models.ProductInput) (models.Product, error) {
	const op = "service.product.UpdateProduct"
	log := p.log.With("op", op)

	if err := classifyCtx(ctx, log, op); err != nil {
		return models.Product{}, err
	}

	product, err := p.storage.UpdateProduct(ctx, id, input)
	if err != nil {
		return models.Product{}, classifyStorageErr(err, log, op)
	}

	return product, nil
}

func (p *ProductApiService) DeleteProduct(ctx context.Context, id string) error {
	const op = "service.product.DeleteProduct"
	log := p.log.With("op", op)

	if err := classifyCtx(ctx, log, op); err != nil {
		return err
	}

	if err := p.storage.DeleteProduct(ctx, id); err != nil {
		return classifyStorageErr(err, log, op)
	}

	return nil
}
