package mocks

import (
	"shopeasy/internal/models"

	"context"

	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}
func (m *Service) CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(models.Product), args.Error(1)
}
func (m *Service) UpdateProduct(ctx context.Context, id string, input models.ProductInput) (models.Product, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(models.Product), args.Error(1)
}
func (m *Service) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
