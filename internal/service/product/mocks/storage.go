package mocks

import (
	"context"
	"shopeasy/internal/models"

	"github.com/stretchr/testify/mock"
)

type Storage struct {
	mock.Mock
}

func (m *Storage) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}
func (m *Storage) CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(models.Product), args.Error(1)
}
func (m *Storage) UpdateProduct(ctx context.Context, id string, input models.ProductInput) (models.Product, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(models.Product), args.Error(1)
}
func (m *Storage) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
